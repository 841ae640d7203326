package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/iliyamo/backoffice/internal/handler"
	"github.com/iliyamo/backoffice/internal/middleware"
)

// Options configures the middleware chain of the /v1 and /api groups.
type Options struct {
	AuthEnabled bool
	JWTSecret   string
	Permissions middleware.PermissionChecker // required when AuthEnabled
	Log         *zap.Logger
	RateLimit   echo.MiddlewareFunc // nil disables rate limiting
	Cache       echo.MiddlewareFunc // nil disables the response cache
}

// API is the /v1 route group, the /api group kept for the older clients
// and the per-route guards built from Options.
type API struct {
	Group  *echo.Group
	Legacy *echo.Group
	opts   Options
}

// RegisterRoutes registers the unauthenticated operational endpoints.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/healthz", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// NewAPI creates the /v1 and /api groups.  Every route gets metrics,
// request logging and the rate limiter.  The caller is identified before
// the limiter: from a valid bearer token when authentication is enabled,
// otherwise from X-User with "admin" as the default.
func NewAPI(e *echo.Echo, opts Options) *API {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.AuthEnabled && opts.Permissions == nil {
		panic("router: AuthEnabled requires a PermissionChecker")
	}
	a := &API{opts: opts}
	a.Group = e.Group("/v1", a.chain()...)
	a.Legacy = e.Group("/api", a.chain()...)
	return a
}

func (a *API) chain() []echo.MiddlewareFunc {
	mws := []echo.MiddlewareFunc{middleware.Metrics(), middleware.RequestLogger(a.opts.Log)}
	if a.opts.AuthEnabled {
		mws = append(mws, middleware.OptionalJWT(a.opts.JWTSecret))
	} else {
		mws = append(mws, middleware.Actor("admin"))
	}
	if a.opts.RateLimit != nil {
		mws = append(mws, a.opts.RateLimit)
	}
	return mws
}

// guard returns the middlewares protecting a write route with perm.
func (a *API) guard(perm string) []echo.MiddlewareFunc {
	if !a.opts.AuthEnabled {
		return nil
	}
	return []echo.MiddlewareFunc{
		middleware.JWTAuth(a.opts.JWTSecret),
		middleware.RequirePermission(a.opts.Permissions, perm),
	}
}

// cached wraps read-only routes with the response cache when configured.
func (a *API) cached() []echo.MiddlewareFunc {
	if a.opts.Cache == nil {
		return nil
	}
	return []echo.MiddlewareFunc{a.opts.Cache}
}
