package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// PermissionChecker answers whether a user holds a named permission.
// *service.PermissionResolver satisfies it.
type PermissionChecker interface {
	Has(ctx context.Context, username, permission string) (bool, error)
}

// RequirePermission aborts the request unless the identified caller holds
// perm.  Anonymous callers get 401, callers without the permission 403.  It
// must run after JWTAuth.
func RequirePermission(checker PermissionChecker, perm string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := currentUser(c)
			if user == anonymous {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
			}
			ok, err := checker.Has(c.Request().Context(), user, perm)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "permission lookup failed"})
			}
			if !ok {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden", "permission": perm})
			}
			return next(c)
		}
	}
}
