package paging

import (
	"context"
	"sync"
)

// Grid drives a paged listing: it owns the current page, size, sort and
// filter and re-queries on every interaction.  Loads may overlap; each one
// takes a generation number and a result older than the latest issued load
// is dropped, so the most recent interaction decides what is shown.
type Grid[T any] struct {
	query QueryFunc[T]

	mu     sync.Mutex
	req    PageRequest
	filter string
	gen    uint64

	items []T
	total int64
	err   error
}

// View is the serialisable state of a grid after a load.
type View[T any] struct {
	Items      []T        `json:"items"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Size       int        `json:"size"`
	TotalPages int        `json:"total_pages"`
	Navigation Navigation `json:"navigation"`
}

// NewGrid returns a grid positioned on pr with an empty filter.  Nothing is
// loaded until one of the navigation methods or Refresh is called.
func NewGrid[T any](query QueryFunc[T], pr PageRequest) *Grid[T] {
	return &Grid[T]{query: query, req: NewPageRequest(pr.Page, pr.Size, pr.Sort)}
}

// WithFilter sets the filter text without loading, for restoring a grid
// from request parameters before the first Refresh.
func (g *Grid[T]) WithFilter(filter string) *Grid[T] {
	g.mu.Lock()
	g.filter = filter
	g.mu.Unlock()
	return g
}

// SetFilter replaces the filter text, returns to the first page and reloads.
func (g *Grid[T]) SetFilter(ctx context.Context, filter string) error {
	g.mu.Lock()
	g.filter = filter
	g.req.Page = 0
	g.mu.Unlock()
	return g.load(ctx)
}

// SetSort replaces the sort orders, returns to the first page and reloads.
func (g *Grid[T]) SetSort(ctx context.Context, sort []Order) error {
	g.mu.Lock()
	g.req = NewPageRequest(0, g.req.Size, sort)
	g.mu.Unlock()
	return g.load(ctx)
}

// SetPageSize changes the page size, returns to the first page and reloads.
func (g *Grid[T]) SetPageSize(ctx context.Context, size int) error {
	g.mu.Lock()
	g.req = NewPageRequest(0, size, g.req.Sort)
	g.mu.Unlock()
	return g.load(ctx)
}

// GoTo moves to page (0-based) and reloads.  The page is clamped to the
// last known page count.
func (g *Grid[T]) GoTo(ctx context.Context, page int) error {
	g.mu.Lock()
	if tp := TotalPages(g.total, g.req.Size); tp > 0 && page > tp-1 {
		page = tp - 1
	}
	if page < 0 {
		page = 0
	}
	g.req.Page = page
	g.mu.Unlock()
	return g.load(ctx)
}

// First moves to the first page.
func (g *Grid[T]) First(ctx context.Context) error { return g.GoTo(ctx, 0) }

// Prev moves one page back.
func (g *Grid[T]) Prev(ctx context.Context) error { return g.GoTo(ctx, g.current()-1) }

// Next moves one page forward.
func (g *Grid[T]) Next(ctx context.Context) error { return g.GoTo(ctx, g.current()+1) }

// Last moves to the last known page.
func (g *Grid[T]) Last(ctx context.Context) error {
	g.mu.Lock()
	tp := TotalPages(g.total, g.req.Size)
	g.mu.Unlock()
	return g.GoTo(ctx, tp-1)
}

// Refresh reloads the current page.
func (g *Grid[T]) Refresh(ctx context.Context) error { return g.load(ctx) }

func (g *Grid[T]) current() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.req.Page
}

func (g *Grid[T]) load(ctx context.Context) error {
	g.mu.Lock()
	g.gen++
	gen := g.gen
	req := g.req
	req.Sort = append([]Order(nil), g.req.Sort...)
	filter := g.filter
	g.mu.Unlock()

	page, err := g.query(ctx, req, filter)

	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.gen {
		// a newer load was issued while this one ran
		return err
	}
	g.err = err
	if err != nil {
		return err
	}
	g.items = page.Items
	g.total = page.Total
	return nil
}

// Err is the error of the latest load, if any.
func (g *Grid[T]) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

// View snapshots the state of the grid.
func (g *Grid[T]) View() View[T] {
	g.mu.Lock()
	defer g.mu.Unlock()
	items := g.items
	if items == nil {
		items = []T{}
	}
	tp := TotalPages(g.total, g.req.Size)
	return View[T]{
		Items:      items,
		Total:      g.total,
		Page:       g.req.Page,
		Size:       g.req.Size,
		TotalPages: tp,
		Navigation: BuildNavigation(g.req.Page, tp),
	}
}
