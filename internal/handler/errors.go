package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/backoffice/internal/service"
)

// respondError turns a service error into the JSON error response every
// handler uses.  Unclassified errors are reported as 500 with their message.
func respondError(c echo.Context, err error) error {
	var ve *service.ValidationError
	var he *echo.HTTPError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation_failed", "fields": ve.Fields})
	case errors.As(err, &he):
		return c.JSON(he.Code, echo.Map{"error": he.Message})
	case errors.Is(err, service.ErrNoFile):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "file_not_found", "message": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found", "message": err.Error()})
	case errors.Is(err, service.ErrDuplicate), errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict", "message": err.Error()})
	case errors.Is(err, service.ErrInvalidSort):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_sort", "message": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal_error", "message": err.Error()})
	}
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}
