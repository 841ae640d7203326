// Package paging holds the page/sort request types shared by every list
// endpoint and the Grid controller that drives a paged listing.
package paging

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize is used when no size is requested.
	DefaultPageSize = 5
	// MaxPageSize caps the rows returned by a single page.
	MaxPageSize = 100
	// DefaultSortProperty is the tie-break column applied when no sort is given.
	DefaultSortProperty = "id"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Order is one ORDER BY term.
type Order struct {
	Property  string    `json:"property"`
	Direction Direction `json:"direction"`
}

// PageRequest selects a 0-based page of Size rows ordered by Sort.
type PageRequest struct {
	Page int
	Size int
	Sort []Order
}

// Offset is the number of rows skipped before this page.
func (p PageRequest) Offset() int { return p.Page * p.Size }

// Page is one slice of a paged query together with the total row count.
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Size  int
}

// TotalPages is the number of pages needed to show every row.
func (p Page[T]) TotalPages() int { return TotalPages(p.Total, p.Size) }

// QueryFunc loads one page for the given request and free-text filter.
type QueryFunc[T any] func(ctx context.Context, pr PageRequest, filter string) (Page[T], error)

// NewPageRequest normalises page, size and sort: page is never negative,
// size falls into [1, MaxPageSize] with DefaultPageSize for zero, and an
// empty sort becomes ascending by id.
func NewPageRequest(page, size int, sort []Order) PageRequest {
	if page < 0 {
		page = 0
	}
	switch {
	case size == 0:
		size = DefaultPageSize
	case size < 1:
		size = 1
	case size > MaxPageSize:
		size = MaxPageSize
	}
	if len(sort) == 0 {
		sort = []Order{{Property: DefaultSortProperty, Direction: Asc}}
	}
	return PageRequest{Page: page, Size: size, Sort: sort}
}

// ParseSort reads "name,desc;price" style expressions.  Terms are separated
// by ';', each term is a property optionally followed by ",asc" or ",desc".
// Blank terms are skipped; an unknown direction defaults to ascending.
func ParseSort(expr string) []Order {
	var out []Order
	for _, term := range strings.Split(expr, ";") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		prop, dir, _ := strings.Cut(term, ",")
		prop = strings.TrimSpace(prop)
		if prop == "" {
			continue
		}
		d := Asc
		if strings.EqualFold(strings.TrimSpace(dir), "desc") {
			d = Desc
		}
		out = append(out, Order{Property: prop, Direction: d})
	}
	return out
}

// FromQuery builds a request from the `page`, `size` and `sort` query
// parameters.  Malformed numbers fall back to the defaults.
func FromQuery(q url.Values) PageRequest {
	page, _ := strconv.Atoi(strings.TrimSpace(q.Get("page")))
	size, _ := strconv.Atoi(strings.TrimSpace(q.Get("size")))
	return NewPageRequest(page, size, ParseSort(q.Get("sort")))
}

// TotalPages is ceil(total/size); zero rows yield zero pages.
func TotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
