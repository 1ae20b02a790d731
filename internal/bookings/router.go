package bookings

import (
	"theatre/internal/shared/config"
	"theatre/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures authenticated booking lifecycle routes.
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuthWithConfig(cfg))
	{
		bookings.POST("", controller.Reserve)                           // POST /api/v1/bookings
		bookings.GET("", controller.List)                               // GET /api/v1/bookings
		bookings.GET("/:id", controller.Get)                            // GET /api/v1/bookings/:id
		bookings.DELETE("/:id", controller.Cancel)                      // DELETE /api/v1/bookings/:id
		bookings.POST("/:id/create-payment", controller.CreatePayment)  // POST /api/v1/bookings/:id/create-payment
		bookings.POST("/:id/verify-payment", controller.VerifyPayment)  // POST /api/v1/bookings/:id/verify-payment
		bookings.GET("/:id/ticket", controller.GetTicket)               // GET /api/v1/bookings/:id/ticket
	}

	admin := rg.Group("/admin")
	admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		admin.GET("/stats", controller.AdminStats) // GET /api/v1/admin/stats
	}
}
