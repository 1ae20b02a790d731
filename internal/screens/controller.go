package screens

import (
	"net/http"

	"theatre/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetSeatMap handles GET /api/v1/movies/:id/seat-map
func (c *Controller) GetSeatMap(ctx *gin.Context) {
	movieID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid movie id", nil, nil)
		return
	}

	seatMap, err := c.service.GetSeatMap(ctx.Request.Context(), movieID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "seat map retrieved", seatMap, nil)
}
