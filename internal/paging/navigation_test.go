package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pageLabels(n Navigation) []string {
	var out []string
	for _, c := range n.Controls {
		switch c.Kind {
		case ControlPage:
			out = append(out, c.Label)
		case ControlEllipsis:
			out = append(out, "…")
		}
	}
	return out
}

func TestBuildNavigationSinglePage(t *testing.T) {
	assert.Empty(t, BuildNavigation(0, 1).Controls)
	assert.Empty(t, BuildNavigation(0, 0).Controls)
}

func TestBuildNavigationAllPagesShown(t *testing.T) {
	n := BuildNavigation(1, 4)
	assert.Equal(t, []string{"1", "2", "3", "4"}, pageLabels(n))
	assert.Equal(t, "Page 2 of 4", n.Label)

	first, prev := n.Controls[0], n.Controls[1]
	assert.Equal(t, ControlFirst, first.Kind)
	assert.False(t, first.Disabled)
	assert.Equal(t, 0, prev.Page)
}

func TestBuildNavigationCollapsesWindow(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "…"}, pageLabels(BuildNavigation(0, 10)))
	assert.Equal(t, []string{"…", "4", "5", "6", "7", "8", "…"}, pageLabels(BuildNavigation(5, 10)))
	assert.Equal(t, []string{"…", "6", "7", "8", "9", "10"}, pageLabels(BuildNavigation(9, 10)))
}

func TestBuildNavigationEdgesDisabled(t *testing.T) {
	n := BuildNavigation(0, 3)
	assert.True(t, n.Controls[0].Disabled)
	assert.True(t, n.Controls[1].Disabled)

	n = BuildNavigation(2, 3)
	last := n.Controls[len(n.Controls)-1]
	next := n.Controls[len(n.Controls)-2]
	assert.True(t, last.Disabled)
	assert.True(t, next.Disabled)
	assert.Equal(t, 2, next.Page)

	for _, c := range n.Controls {
		if c.Kind == ControlPage && c.Page == 2 {
			assert.True(t, c.Current)
		}
	}
}
