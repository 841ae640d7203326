package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/backoffice/internal/config"
)

// fakeScripter answers EvalSha with a canned token bucket result.
type fakeScripter struct {
	redis.Scripter
	result []interface{}
	err    error
	keys   []string
}

func (f *fakeScripter) EvalSha(_ context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	f.keys = append(f.keys, keys...)
	return redis.NewCmdResult(f.result, f.err)
}

func rateCfg() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       10,
		RefillTokens:   1,
		RefillInterval: time.Second,
		TTL:            time.Minute,
		KeyStrategy:    "ip_route",
		Prefix:         "rl",
	}
}

func TestTokenBucketAllows(t *testing.T) {
	fs := &fakeScripter{result: []interface{}{int64(1), int64(9), int64(0)}}
	c, rec := newCtx(http.MethodGet, "/v1/products")
	c.SetPath("/v1/products")

	require.NoError(t, newTokenBucket(rateCfg(), fs, nil)(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "10", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "9", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, []string{"rl:ip:192.0.2.1:route:GET /v1/products"}, fs.keys)
}

func TestTokenBucketBlocks(t *testing.T) {
	fs := &fakeScripter{result: []interface{}{int64(0), int64(0), int64(1500)}}
	c, rec := newCtx(http.MethodGet, "/v1/products")

	require.NoError(t, newTokenBucket(rateCfg(), fs, nil)(okHandler)(c))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "too_many_requests")
}

func TestTokenBucketFailsOpen(t *testing.T) {
	fs := &fakeScripter{err: errors.New("connection refused")}
	c, rec := newCtx(http.MethodGet, "/v1/products")

	require.NoError(t, newTokenBucket(rateCfg(), fs, nil)(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestNewTokenBucketWithoutRedis(t *testing.T) {
	c, rec := newCtx(http.MethodGet, "/v1/products")
	require.NoError(t, NewTokenBucket(rateCfg(), nil, nil)(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuildRateKey(t *testing.T) {
	cfg := rateCfg()
	c, _ := newCtx(http.MethodPost, "/v1/files")
	c.SetPath("/v1/files")
	setIdentity(c, "mrossi")

	cases := map[string]string{
		"ip":         "rl:ip:192.0.2.1",
		"user":       "rl:user:mrossi",
		"route":      "rl:route:POST /v1/files",
		"ip_user":    "rl:ip:192.0.2.1:user:mrossi",
		"user_route": "rl:user:mrossi:route:POST /v1/files",
		"":           "rl:ip:192.0.2.1:user:mrossi:route:POST /v1/files",
	}
	for strategy, want := range cases {
		cfg.KeyStrategy = strategy
		assert.Equal(t, want, buildRateKey(cfg, c), strategy)
	}
}
