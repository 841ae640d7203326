package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/backoffice/internal/config"
)

var responseCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "backoffice_response_cache_lookups_total",
	Help: "Response cache lookups by result (hit, miss).",
}, []string{"result"})

// cacheStore is the part of *redis.Client the response cache needs.
type cacheStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SetEx(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// captureWriter tees the response body into buf while forwarding it.  Once
// more than limit bytes were written the copy is dropped and overflow set,
// so oversized responses are served but never cached.
type captureWriter struct {
	http.ResponseWriter
	status   int
	buf      bytes.Buffer
	limit    int
	overflow bool
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if !cw.overflow {
		if cw.limit > 0 && cw.buf.Len()+len(b) > cw.limit {
			cw.overflow = true
			cw.buf.Reset()
		} else {
			cw.buf.Write(b)
		}
	}
	return cw.ResponseWriter.Write(b)
}

// cacheKeyFrom hashes the request parts selected by KeyStrategy under the
// configured prefix.
func cacheKeyFrom(cfg config.CacheConfig, c echo.Context) string {
	r := c.Request()
	var parts []string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		parts = []string{"route", c.Path()}
	case "method_route":
		parts = []string{"method", r.Method, "route", c.Path()}
	case "method_route_query":
		parts = []string{"method", r.Method, "route", c.Path(), "q", r.URL.RawQuery}
	default: // route_query
		parts = []string{"route", c.Path(), "q", r.URL.RawQuery}
	}
	sum := sha1.Sum([]byte(strings.Join(parts, ":")))
	return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
}

// encodePayload packs [4 bytes status][4 bytes header length][header JSON][body].
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	hdr, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8, 8+len(hdr)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdr)))
	out = append(out, hdr...)
	return append(out, body...), nil
}

func decodePayload(bs []byte) (int, http.Header, []byte, error) {
	if len(bs) < 8 {
		return 0, nil, nil, errors.New("short payload")
	}
	status := int(binary.BigEndian.Uint32(bs[0:4]))
	hlen := int(binary.BigEndian.Uint32(bs[4:8]))
	if hlen < 0 || 8+hlen > len(bs) {
		return 0, nil, nil, errors.New("bad header length")
	}
	hdr := http.Header{}
	if hlen > 0 {
		if err := json.Unmarshal(bs[8:8+hlen], &hdr); err != nil {
			return 0, nil, nil, err
		}
	}
	return status, hdr, bs[8+hlen:], nil
}

// NewRedisCache replays cached 200 responses of the configured methods,
// headers included, and marks each response with X-Cache HIT or MISS.
// Without Redis, or when disabled, it is a no-op.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client, log *zap.Logger) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passThrough
	}
	return newResponseCache(cfg, rdb, log)
}

func newResponseCache(cfg config.CacheConfig, store cacheStore, log *zap.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}
			key := cacheKeyFrom(cfg, c)
			resp := c.Response()

			if bs, err := store.Get(c.Request().Context(), key).Bytes(); err == nil {
				status, hdr, body, err := decodePayload(bs)
				if err == nil {
					responseCacheLookups.WithLabelValues("hit").Inc()
					for k, vals := range hdr {
						if strings.EqualFold(k, echo.HeaderContentLength) || strings.EqualFold(k, "X-Cache") {
							continue
						}
						for _, v := range vals {
							resp.Header().Add(k, v)
						}
					}
					resp.Header().Set("X-Cache", "HIT")
					resp.WriteHeader(status)
					_, err = resp.Write(body)
					return err
				}
				log.Warn("discarding corrupt cache entry", zap.String("key", key), zap.Error(err))
			} else if !errors.Is(err, redis.Nil) {
				log.Warn("response cache read failed", zap.String("key", key), zap.Error(err))
			}
			responseCacheLookups.WithLabelValues("miss").Inc()

			cw := &captureWriter{ResponseWriter: resp.Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
			resp.Writer = cw
			resp.Header().Set("X-Cache", "MISS")
			if err := next(c); err != nil {
				return err
			}
			if cw.status != http.StatusOK || cw.overflow {
				return nil
			}
			hdr := resp.Header().Clone()
			hdr.Del("X-Cache")
			payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes())
			if err != nil {
				return nil
			}
			if err := store.SetEx(context.Background(), key, payload, ttl).Err(); err != nil {
				log.Warn("response cache write failed", zap.String("key", key), zap.Error(err))
			}
			return nil
		}
	}
}
