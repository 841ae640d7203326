// Package service holds the business rules between HTTP handlers and the
// repositories: filter branching, validation, uniqueness checks, event
// publication and the demo features.
package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/iliyamo/backoffice/internal/repository"
)

// Re-exported so handlers only need this package to classify errors.
var (
	ErrNotFound    = repository.ErrNotFound
	ErrConflict    = repository.ErrConflict
	ErrInvalidSort = repository.ErrInvalidSort
)

// ErrDuplicate is returned when a unique name, username or email is taken.
var ErrDuplicate = errors.New("already exists")

// ErrNoFile is returned when a download is requested for an entity that
// has no stored blob.
var ErrNoFile = errors.New("no file attached")

// ValidationError collects per-field messages.  It is returned before any
// repository call is made.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// err returns e when at least one field failed, nil otherwise.
func (e *ValidationError) err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

type actorKey struct{}

// WithActor stores the name of the user performing the request.
func WithActor(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, actorKey{}, name)
}

// ActorFrom returns the name stored by WithActor, or "".
func ActorFrom(ctx context.Context) string {
	s, _ := ctx.Value(actorKey{}).(string)
	return s
}
