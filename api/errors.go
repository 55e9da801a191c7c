package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"brickyard.GO/core/apperr"
)

// HTTPStatus maps engine errors to response codes. Validation problems are
// field-level 400s; conflicts (double approval, stale adjustment snapshot)
// are 409 and should not be retried blindly; insufficient stock is a 422 the
// operator can recover from; everything else is a 500.
func HTTPStatus(err error) int {
	switch {
	case apperr.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrAlreadyApproved), errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case apperr.IsInsufficientStock(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ErrorJSON writes the standard error body for an engine error.
func ErrorJSON(c echo.Context, err error) error {
	return c.JSON(HTTPStatus(err), echo.Map{"error": err.Error()})
}
