package service

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	permissionCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backoffice_permission_cache_hits_total",
		Help: "Permission lookups served from the resolver cache.",
	})
	permissionCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backoffice_permission_cache_misses_total",
		Help: "Permission lookups that had to query the database.",
	})
)

// PermissionAdmin is the permission that implies every other one.
const PermissionAdmin = "SYSTEM_ADMIN"

// permissionSource loads the effective permission names of a username.
type permissionSource interface {
	PermissionNamesOf(ctx context.Context, username string) ([]string, error)
}

// PermissionResolver answers "may this user do X" from the user's active
// profiles and their active permissions.  Results are kept in an LRU with a
// TTL and dropped wholesale whenever grants or assignments change.
type PermissionResolver struct {
	src   permissionSource
	cache *expirable.LRU[string, map[string]struct{}]
}

// NewPermissionResolver creates a resolver holding up to size users for ttl.
func NewPermissionResolver(src permissionSource, size int, ttl time.Duration) *PermissionResolver {
	return &PermissionResolver{
		src:   src,
		cache: expirable.NewLRU[string, map[string]struct{}](size, nil, ttl),
	}
}

func (r *PermissionResolver) set(ctx context.Context, username string) (map[string]struct{}, error) {
	if set, ok := r.cache.Get(username); ok {
		permissionCacheHits.Inc()
		return set, nil
	}
	permissionCacheMisses.Inc()
	names, err := r.src.PermissionNamesOf(ctx, username)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	r.cache.Add(username, set)
	return set, nil
}

// Permissions returns the effective permission names of username.
func (r *PermissionResolver) Permissions(ctx context.Context, username string) ([]string, error) {
	set, err := r.set(ctx, username)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	return out, nil
}

// Has reports whether username holds permission, or SYSTEM_ADMIN.
func (r *PermissionResolver) Has(ctx context.Context, username, permission string) (bool, error) {
	set, err := r.set(ctx, username)
	if err != nil {
		return false, err
	}
	if _, ok := set[PermissionAdmin]; ok {
		return true, nil
	}
	_, ok := set[permission]
	return ok, nil
}

// Purge forgets every cached user.  Safe on a nil resolver.
func (r *PermissionResolver) Purge() {
	if r == nil {
		return
	}
	r.cache.Purge()
}
