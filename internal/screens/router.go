package screens

import (
	"github.com/gin-gonic/gin"
)

// SetupSeatMapRoutes configures the public seat-map query route.
func SetupSeatMapRoutes(rg *gin.RouterGroup, controller *Controller) {
	movies := rg.Group("/movies")
	{
		movies.GET("/:id/seat-map", controller.GetSeatMap) // GET /api/v1/movies/:id/seat-map
	}
}
