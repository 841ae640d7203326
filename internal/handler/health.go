package handler // declare the package name; contains HTTP handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness and database reachability for load
// balancers and monitoring systems.
type HealthHandler struct {
	DB *sql.DB
}

// Health answers "ok" with 200 when the database responds to a ping within
// two seconds, and 503 otherwise.
func (h *HealthHandler) Health(c echo.Context) error {
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.PingContext(ctx); err != nil {
			return c.String(http.StatusServiceUnavailable, "database unavailable")
		}
	}
	return c.String(http.StatusOK, "ok")
}
