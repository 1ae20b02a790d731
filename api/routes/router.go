package routes

import (
	"net/http"
	"time"

	"theatre/internal/bookings"
	"theatre/internal/movies"
	"theatre/internal/notifications"
	"theatre/internal/payments"
	"theatre/internal/screens"
	"theatre/internal/shared/config"
	"theatre/internal/shared/database"
	"theatre/internal/tickets"
	"theatre/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher notifications.Producer

	// Exposed so main can run startup tasks against the wired services.
	SeatCatalog screens.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Producer) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	pg := r.db.GetPostgreSQL()
	cacheSvc := cache.NewService(r.db.GetRedisClient())

	movieRepo := movies.NewRepository(pg)
	screenRepo := screens.NewRepository(pg)
	bookingRepo := bookings.NewRepository(pg)

	seatCatalog := screens.NewService(screenRepo, movieRepo, bookingRepo, cacheSvc, r.config)
	r.SeatCatalog = seatCatalog

	movieSvc := movies.NewService(movieRepo, screenRepo)
	paymentSvc := payments.NewService(payments.NewGateway(r.config.Payment), r.config.Payment)
	ticketSvc := tickets.NewService(tickets.NewRepository(pg))

	bookingSvc := bookings.NewService(bookingRepo, movieRepo, seatCatalog, paymentSvc, ticketSvc, r.publisher)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		movies.SetupMovieRoutes(api, movies.NewController(movieSvc), r.config)
		screens.SetupSeatMapRoutes(api, screens.NewController(seatCatalog))
		bookings.SetupBookingRoutes(api, bookings.NewController(bookingSvc), r.config)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "theatre-booking",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "theatre-booking",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}
