package middleware // middleware holds the echo middleware shared by the /v1 routes

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/backoffice/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and records the token subject as the caller.  The username is stored in
// the echo context under "username" and in the request context through
// service.WithActor so that services can stamp uploads and audit events.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			username, err := utils.ParseAccessToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			setIdentity(c, username)
			return next(c)
		}
	}
}

// OptionalJWT records the subject of a valid Bearer token and lets every
// request through.  It runs ahead of the rate limiter so that per-user keys
// see the caller; JWTAuth still rejects on the guarded routes.
func OptionalJWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				if username, err := utils.ParseAccessToken(secret, strings.TrimPrefix(auth, "Bearer ")); err == nil {
					setIdentity(c, username)
				}
			}
			return next(c)
		}
	}
}

// Actor names the caller when authentication is disabled.  The X-User
// header wins over fallback; an identity already set by JWTAuth is kept.
func Actor(fallback string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if currentUser(c) == anonymous {
				name := strings.TrimSpace(c.Request().Header.Get("X-User"))
				if name == "" {
					name = fallback
				}
				if name != "" {
					setIdentity(c, name)
				}
			}
			return next(c)
		}
	}
}
