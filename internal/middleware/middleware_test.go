package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/backoffice/internal/service"
)

func newCtx(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error { return c.String(http.StatusOK, "ok") }

type fakeChecker struct {
	perms map[string][]string
	err   error
}

func (f fakeChecker) Has(_ context.Context, username, permission string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, p := range f.perms[username] {
		if p == permission {
			return true, nil
		}
	}
	return false, nil
}

func signed(t *testing.T, secret, sub string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestJWTAuth(t *testing.T) {
	mw := JWTAuth("secret")

	c, rec := newCtx(http.MethodPost, "/v1/products")
	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing bearer token")

	c, rec = newCtx(http.MethodPost, "/v1/products")
	c.Request().Header.Set("Authorization", "Bearer "+signed(t, "wrong", "mrossi"))
	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c, rec = newCtx(http.MethodPost, "/v1/products")
	c.Request().Header.Set("Authorization", "Bearer "+signed(t, "secret", "mrossi"))
	var actor string
	require.NoError(t, mw(func(c echo.Context) error {
		actor = service.ActorFrom(c.Request().Context())
		return okHandler(c)
	})(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mrossi", actor)
	assert.Equal(t, "mrossi", currentUser(c))
}

func TestActor(t *testing.T) {
	c, _ := newCtx(http.MethodGet, "/v1/files")
	require.NoError(t, Actor("admin")(okHandler)(c))
	assert.Equal(t, "admin", currentUser(c))

	c, _ = newCtx(http.MethodGet, "/v1/files")
	c.Request().Header.Set("X-User", "lbianchi")
	require.NoError(t, Actor("admin")(okHandler)(c))
	assert.Equal(t, "lbianchi", service.ActorFrom(c.Request().Context()))

	c, _ = newCtx(http.MethodGet, "/v1/files")
	setIdentity(c, "fromtoken")
	c.Request().Header.Set("X-User", "spoofed")
	require.NoError(t, Actor("admin")(okHandler)(c))
	assert.Equal(t, "fromtoken", currentUser(c))
}

func TestRequirePermission(t *testing.T) {
	checker := fakeChecker{perms: map[string][]string{"mrossi": {"PRODUCT_CREATE"}}}
	mw := RequirePermission(checker, "PRODUCT_CREATE")

	c, rec := newCtx(http.MethodPost, "/v1/products")
	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c, rec = newCtx(http.MethodPost, "/v1/products")
	setIdentity(c, "lbianchi")
	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "PRODUCT_CREATE")

	c, rec = newCtx(http.MethodPost, "/v1/products")
	setIdentity(c, "mrossi")
	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newCtx(http.MethodPost, "/v1/products")
	setIdentity(c, "mrossi")
	require.NoError(t, RequirePermission(fakeChecker{err: errors.New("db down")}, "PRODUCT_CREATE")(okHandler)(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMetricsCountsByRoutePattern(t *testing.T) {
	read := func() float64 {
		m := &dto.Metric{}
		require.NoError(t, httpRequests.WithLabelValues(http.MethodGet, "/v1/products/:id", "200").Write(m))
		return m.GetCounter().GetValue()
	}
	before := read()

	c, _ := newCtx(http.MethodGet, "/v1/products/7")
	c.SetPath("/v1/products/:id")
	require.NoError(t, Metrics()(okHandler)(c))

	assert.Equal(t, before+1, read())
}

func TestOptionalJWTNeverRejects(t *testing.T) {
	mw := OptionalJWT("secret")
	var seen string
	capture := func(c echo.Context) error {
		seen = currentUser(c)
		return okHandler(c)
	}

	c, rec := newCtx(http.MethodGet, "/v1/products")
	require.NoError(t, mw(capture)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, anonymous, seen)

	c, rec = newCtx(http.MethodGet, "/v1/products")
	c.Request().Header.Set("Authorization", "Bearer "+signed(t, "wrong", "mrossi"))
	require.NoError(t, mw(capture)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, anonymous, seen)

	c, rec = newCtx(http.MethodGet, "/v1/products")
	c.Request().Header.Set("Authorization", "Bearer "+signed(t, "secret", "mrossi"))
	require.NoError(t, mw(capture)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mrossi", seen)
}
