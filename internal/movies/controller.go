package movies

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

// List handles GET /api/v1/movies
func (c *Controller) List(ctx *gin.Context) {
	movies, err := c.service.List(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "movies retrieved", gin.H{
		"movies": movies,
		"count":  len(movies),
	}, nil)
}

// Create handles POST /api/v1/movies
func (c *Controller) Create(ctx *gin.Context) {
	var req CreateMovieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid request body", nil, err.Error())
		return
	}

	movie, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "movie created", movie, nil)
}

// Delete handles DELETE /api/v1/movies/:id
func (c *Controller) Delete(ctx *gin.Context) {
	movieID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid movie id", nil, nil)
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), movieID); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "movie deleted", nil, nil)
}
