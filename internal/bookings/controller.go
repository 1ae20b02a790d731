package bookings

import (
	"net/http"

	"theatre/internal/shared/middleware"
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

// Reserve handles POST /api/v1/bookings
func (c *Controller) Reserve(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "authentication required", nil, nil)
		return
	}

	var req ReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.Reserve(ctx.Request.Context(), userID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "booking reserved", booking, nil)
}

// List handles GET /api/v1/bookings
func (c *Controller) List(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "authentication required", nil, nil)
		return
	}

	bookings, err := c.service.ListUserBookings(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "bookings retrieved", gin.H{
		"bookings": bookings,
		"count":    len(bookings),
	}, nil)
}

// Get handles GET /api/v1/bookings/:id
func (c *Controller) Get(ctx *gin.Context) {
	userID, bookingID, ok := c.identify(ctx)
	if !ok {
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), userID, bookingID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "booking retrieved", booking, nil)
}

// Cancel handles DELETE /api/v1/bookings/:id
func (c *Controller) Cancel(ctx *gin.Context) {
	userID, bookingID, ok := c.identify(ctx)
	if !ok {
		return
	}

	if err := c.service.Cancel(ctx.Request.Context(), userID, bookingID); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "booking cancelled and seats released", nil, nil)
}

// CreatePayment handles POST /api/v1/bookings/:id/create-payment
func (c *Controller) CreatePayment(ctx *gin.Context) {
	userID, bookingID, ok := c.identify(ctx)
	if !ok {
		return
	}

	order, err := c.service.CreatePaymentOrder(ctx.Request.Context(), userID, bookingID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "payment order created", order, nil)
}

// VerifyPayment handles POST /api/v1/bookings/:id/verify-payment
func (c *Controller) VerifyPayment(ctx *gin.Context) {
	userID, bookingID, ok := c.identify(ctx)
	if !ok {
		return
	}

	var req VerifyPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid request body", nil, err.Error())
		return
	}

	confirmation, err := c.service.VerifyPayment(ctx.Request.Context(), userID, bookingID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "payment verified and booking confirmed", confirmation, nil)
}

// GetTicket handles GET /api/v1/bookings/:id/ticket
func (c *Controller) GetTicket(ctx *gin.Context) {
	userID, bookingID, ok := c.identify(ctx)
	if !ok {
		return
	}

	ticket, err := c.service.GetTicket(ctx.Request.Context(), userID, bookingID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "ticket retrieved", ticket, nil)
}

// AdminStats handles GET /api/v1/admin/stats
func (c *Controller) AdminStats(ctx *gin.Context) {
	stats, err := c.service.Stats(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "booking stats retrieved", stats, nil)
}

// identify pulls the caller's user id and the booking id path parameter,
// writing the error response itself when either is missing.
func (c *Controller) identify(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "authentication required", nil, nil)
		return uuid.Nil, uuid.Nil, false
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid booking id", nil, nil)
		return uuid.Nil, uuid.Nil, false
	}

	return userID, bookingID, true
}
