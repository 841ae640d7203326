package middleware

// identity.go keeps the caller's username in one place.  JWTAuth and Actor
// write it; the permission guard and the rate limiter read it back.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/backoffice/internal/service"
)

const (
	usernameKey = "username"
	anonymous   = "anon"
)

func setIdentity(c echo.Context, username string) {
	c.Set(usernameKey, username)
	req := c.Request()
	c.SetRequest(req.WithContext(service.WithActor(req.Context(), username)))
}

// currentUser returns the caller's username, or "anon" when nobody has been
// identified.
func currentUser(c echo.Context) string {
	if s, ok := c.Get(usernameKey).(string); ok && s != "" {
		return s
	}
	return anonymous
}
