package movies

import (
	"theatre/internal/shared/config"
	"theatre/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupMovieRoutes configures the movie catalog routes. Listing is public;
// catalog writes are admin-only.
func SetupMovieRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	movies := rg.Group("/movies")
	{
		movies.GET("", controller.List) // GET /api/v1/movies

		authed := movies.Group("")
		authed.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
		{
			authed.POST("", controller.Create)       // POST /api/v1/movies
			authed.DELETE("/:id", controller.Delete) // DELETE /api/v1/movies/:id
		}
	}
}
