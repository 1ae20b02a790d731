package response

import (
	"errors"
	"net/http"

	"theatre/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errs interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errs,
	})
}

// RespondError maps a domain error to its HTTP representation. Conflict
// responses carry the colliding seat id so the client can refresh the seat
// map and retry, distinguished from generic errors.
func RespondError(c *gin.Context, err error) {
	var (
		validationErr *apperrors.ValidationError
		conflictErr   *apperrors.ConflictError
		notFoundErr   *apperrors.NotFoundError
		gatewayErr    *apperrors.PaymentGatewayError
		signatureErr  *apperrors.SignatureMismatchError
	)

	switch {
	case errors.As(err, &validationErr):
		var details interface{}
		if len(validationErr.InvalidSeats) > 0 {
			details = gin.H{"invalid_seats": validationErr.InvalidSeats}
		}
		RespondJSON(c, "error", http.StatusBadRequest, validationErr.Message, nil, details)
	case errors.As(err, &conflictErr):
		RespondJSON(c, "error", http.StatusConflict, conflictErr.Error(), nil, gin.H{
			"conflict_seat": conflictErr.SeatID,
			"retryable":     true,
		})
	case errors.As(err, &notFoundErr):
		RespondJSON(c, "error", http.StatusNotFound, notFoundErr.Error(), nil, nil)
	case errors.As(err, &signatureErr):
		RespondJSON(c, "error", http.StatusBadRequest, signatureErr.Error(), nil, gin.H{
			"code": "SIGNATURE_MISMATCH",
		})
	case errors.As(err, &gatewayErr):
		status := http.StatusBadGateway
		if gatewayErr.StatusCode >= 400 && gatewayErr.StatusCode < 600 {
			status = gatewayErr.StatusCode
		}
		RespondJSON(c, "error", status, "payment gateway request failed", nil, gin.H{
			"detail": gatewayErr.Message,
		})
	default:
		RespondJSON(c, "error", http.StatusInternalServerError, "internal server error", nil, nil)
	}
}
