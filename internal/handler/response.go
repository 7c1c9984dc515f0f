package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourops/internal/repository"
	"tourops/internal/service"
	"tourops/internal/voucher"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository/voucher errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidReservationID),
		errors.Is(err, service.ErrInvalidClientName),
		errors.Is(err, service.ErrInvalidClientPhone),
		errors.Is(err, service.ErrInvalidTourName),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidAdults),
		errors.Is(err, service.ErrInvalidChildren),
		errors.Is(err, service.ErrInvalidTotal),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidPaymentStatus),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrMissingClientEmail):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrReservationCancelled),
		errors.Is(err, service.ErrReservationCompleted),
		errors.Is(err, service.ErrReservationNotCompleted),
		errors.Is(err, service.ErrAlreadyRated):
		return http.StatusConflict

	// Voucher assembly rejected the reservation data
	case errors.Is(err, voucher.ErrMalformedReservation):
		return http.StatusUnprocessableEntity

	// Rendering backend unavailable - caller may retry
	case errors.Is(err, voucher.ErrRenderBackend):
		return http.StatusServiceUnavailable

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
