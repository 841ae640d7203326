package paging

import "fmt"

// Control kinds emitted by BuildNavigation.
const (
	ControlFirst    = "first"
	ControlPrev     = "prev"
	ControlPage     = "page"
	ControlEllipsis = "ellipsis"
	ControlNext     = "next"
	ControlLast     = "last"
)

// windowSize is the number of page buttons shown around the current page.
const windowSize = 5

// Control is one pagination button.  Page is 0-based; Label is what the
// user sees (1-based for page buttons).
type Control struct {
	Kind     string `json:"kind"`
	Page     int    `json:"page"`
	Label    string `json:"label"`
	Current  bool   `json:"current,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Navigation is the rendered pager: buttons plus the "Page x of y" label.
type Navigation struct {
	Controls []Control `json:"controls"`
	Label    string    `json:"label"`
}

// BuildNavigation produces the pager for current (0-based) out of
// totalPages.  With at most one page there are no controls.  With more than
// five pages only a five-page window around current is shown, with
// ellipsis markers toward the hidden ends.
func BuildNavigation(current, totalPages int) Navigation {
	if totalPages <= 1 {
		label := ""
		if totalPages == 1 {
			label = "Page 1 of 1"
		}
		return Navigation{Label: label}
	}
	if current < 0 {
		current = 0
	}
	if current > totalPages-1 {
		current = totalPages - 1
	}
	first := current == 0
	last := current == totalPages-1

	ctrls := []Control{
		{Kind: ControlFirst, Page: 0, Label: "«", Disabled: first},
		{Kind: ControlPrev, Page: max(current-1, 0), Label: "‹", Disabled: first},
	}

	start, end := 0, totalPages-1
	if totalPages > windowSize {
		start = current - windowSize/2
		if start < 0 {
			start = 0
		}
		end = start + windowSize - 1
		if end > totalPages-1 {
			end = totalPages - 1
			start = end - windowSize + 1
		}
	}
	if start > 0 {
		ctrls = append(ctrls, Control{Kind: ControlEllipsis, Page: start - 1, Label: "…", Disabled: true})
	}
	for i := start; i <= end; i++ {
		ctrls = append(ctrls, Control{Kind: ControlPage, Page: i, Label: fmt.Sprint(i + 1), Current: i == current})
	}
	if end < totalPages-1 {
		ctrls = append(ctrls, Control{Kind: ControlEllipsis, Page: end + 1, Label: "…", Disabled: true})
	}

	ctrls = append(ctrls,
		Control{Kind: ControlNext, Page: min(current+1, totalPages-1), Label: "›", Disabled: last},
		Control{Kind: ControlLast, Page: totalPages - 1, Label: "»", Disabled: last},
	)
	return Navigation{
		Controls: ctrls,
		Label:    fmt.Sprintf("Page %d of %d", current+1, totalPages),
	}
}
