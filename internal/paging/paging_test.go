package paging

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageRequestDefaults(t *testing.T) {
	pr := NewPageRequest(-3, 0, nil)
	assert.Equal(t, 0, pr.Page)
	assert.Equal(t, DefaultPageSize, pr.Size)
	assert.Equal(t, []Order{{Property: "id", Direction: Asc}}, pr.Sort)

	assert.Equal(t, MaxPageSize, NewPageRequest(0, 5000, nil).Size)
	assert.Equal(t, 1, NewPageRequest(0, -4, nil).Size)
}

func TestParseSort(t *testing.T) {
	got := ParseSort(" name,desc ; price ;;quantity,ASC;,desc")
	assert.Equal(t, []Order{
		{Property: "name", Direction: Desc},
		{Property: "price", Direction: Asc},
		{Property: "quantity", Direction: Asc},
	}, got)
	assert.Empty(t, ParseSort(""))
}

func TestFromQuery(t *testing.T) {
	q := url.Values{"page": {"2"}, "size": {"10"}, "sort": {"name,desc"}}
	pr := FromQuery(q)
	assert.Equal(t, 2, pr.Page)
	assert.Equal(t, 10, pr.Size)
	assert.Equal(t, 20, pr.Offset())
	assert.Equal(t, []Order{{Property: "name", Direction: Desc}}, pr.Sort)

	pr = FromQuery(url.Values{"page": {"x"}})
	assert.Equal(t, 0, pr.Page)
	assert.Equal(t, DefaultPageSize, pr.Size)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 4, TotalPages(18, 5))
	assert.Equal(t, 4, TotalPages(20, 5))
	assert.Equal(t, 1, TotalPages(1, 5))
	assert.Equal(t, 0, TotalPages(0, 5))
}

// sliceQuery pages over n integers, honouring the request offset.
func sliceQuery(n int) QueryFunc[int] {
	return func(_ context.Context, pr PageRequest, _ string) (Page[int], error) {
		var items []int
		for i := pr.Offset(); i < n && len(items) < pr.Size; i++ {
			items = append(items, i)
		}
		return Page[int]{Items: items, Total: int64(n), Page: pr.Page, Size: pr.Size}, nil
	}
}

func TestGridEighteenRowsFivePerPage(t *testing.T) {
	ctx := context.Background()
	g := NewGrid(sliceQuery(18), NewPageRequest(0, 5, nil))
	require.NoError(t, g.Refresh(ctx))

	v := g.View()
	assert.Equal(t, 4, v.TotalPages)
	assert.Len(t, v.Items, 5)
	assert.Equal(t, "Page 1 of 4", v.Navigation.Label)

	require.NoError(t, g.Last(ctx))
	v = g.View()
	assert.Equal(t, 3, v.Page)
	assert.Equal(t, []int{15, 16, 17}, v.Items)

	require.NoError(t, g.Next(ctx))
	assert.Equal(t, 3, g.View().Page, "next on the last page stays put")

	require.NoError(t, g.Prev(ctx))
	assert.Equal(t, 2, g.View().Page)
}

func TestGridFilterAndSortResetToFirstPage(t *testing.T) {
	ctx := context.Background()
	var seen []string
	q := func(ctx context.Context, pr PageRequest, filter string) (Page[int], error) {
		seen = append(seen, filter)
		return sliceQuery(30)(ctx, pr, filter)
	}
	g := NewGrid(q, NewPageRequest(0, 5, nil))
	require.NoError(t, g.GoTo(ctx, 4))
	assert.Equal(t, 4, g.View().Page)

	require.NoError(t, g.SetFilter(ctx, "lap"))
	assert.Equal(t, 0, g.View().Page)
	assert.Equal(t, "lap", seen[len(seen)-1])

	require.NoError(t, g.GoTo(ctx, 2))
	require.NoError(t, g.SetSort(ctx, []Order{{Property: "name", Direction: Desc}}))
	assert.Equal(t, 0, g.View().Page)
}

func TestGridLatestLoadWins(t *testing.T) {
	ctx := context.Background()
	release := make(chan struct{})
	started := make(chan struct{})
	q := func(ctx context.Context, pr PageRequest, filter string) (Page[int], error) {
		if filter == "slow" {
			close(started)
			<-release
			return Page[int]{Items: []int{-1}, Total: 1, Page: pr.Page, Size: pr.Size}, nil
		}
		return Page[int]{Items: []int{42}, Total: 1, Page: pr.Page, Size: pr.Size}, nil
	}
	g := NewGrid(q, NewPageRequest(0, 5, nil))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = g.SetFilter(ctx, "slow")
	}()
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("slow load never started")
	}
	require.NoError(t, g.SetFilter(ctx, "fast"))
	close(release)
	wg.Wait()

	assert.Equal(t, []int{42}, g.View().Items)
}

func TestGridEmptyView(t *testing.T) {
	g := NewGrid(sliceQuery(0), NewPageRequest(0, 5, nil))
	require.NoError(t, g.Refresh(context.Background()))
	v := g.View()
	assert.NotNil(t, v.Items)
	assert.Equal(t, 0, v.TotalPages)
	assert.Empty(t, v.Navigation.Controls)
}

func TestGridWithFilterKeepsPage(t *testing.T) {
	var got string
	q := func(ctx context.Context, pr PageRequest, filter string) (Page[int], error) {
		got = filter
		return sliceQuery(18)(ctx, pr, filter)
	}
	g := NewGrid(q, NewPageRequest(2, 5, nil)).WithFilter("mouse")
	require.NoError(t, g.Refresh(context.Background()))
	assert.Equal(t, "mouse", got)
	assert.Equal(t, 2, g.View().Page)
	assert.Equal(t, []int{10, 11, 12, 13, 14}, g.View().Items)
}
