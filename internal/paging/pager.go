// Package paging implements the page arithmetic shared by every paginated
// claim list: fixed page size, 1-based pages, and clamping whenever the
// underlying list changes length.
package paging

import (
	"fmt"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/lipgloss"
)

// Pager tracks the current page of a list on top of a bubbles paginator.
// Pages are 1-based at this boundary. The page count is derived from the
// list length every time the length changes.
type Pager struct {
	pg     paginator.Model
	length int
}

// New creates a pager with the given page size. Sizes below 1 become 1.
func New(perPage int) Pager {
	if perPage < 1 {
		perPage = 1
	}
	pg := paginator.New()
	pg.PerPage = perPage
	pg.Type = paginator.Dots
	pg.ActiveDot = activeDot
	pg.InactiveDot = inactiveDot
	pg.ArabicFormat = "%d/%d"
	return Pager{pg: pg}
}

// TotalPages returns ceil(n / perPage).
func TotalPages(n, perPage int) int {
	if n <= 0 || perPage <= 0 {
		return 0
	}
	return (n + perPage - 1) / perPage
}

// PerPage returns the page size.
func (p Pager) PerPage() int { return p.pg.PerPage }

// Len returns the list length the pager was last told about.
func (p Pager) Len() int { return p.length }

// Page returns the current 1-based page.
func (p Pager) Page() int { return p.pg.Page + 1 }

// TotalPages returns the page count for the current length, 0 when empty.
func (p Pager) TotalPages() int { return TotalPages(p.length, p.pg.PerPage) }

// SetLength records a new list length and pulls the page back into range.
func (p *Pager) SetLength(n int) {
	if n < 0 {
		n = 0
	}
	p.length = n
	// An empty list still has one (empty) page.
	p.pg.TotalPages = 1
	p.pg.SetTotalPages(n)
	p.clamp()
}

// Reset returns to page 1 for a list of length n.
func (p *Pager) Reset(n int) {
	p.pg.Page = 0
	p.SetLength(n)
}

func (p *Pager) clamp() {
	if last := p.pg.TotalPages - 1; p.pg.Page > last {
		p.pg.Page = last
	}
	if p.pg.Page < 0 {
		p.pg.Page = 0
	}
}

// Bounds returns the half-open slice range of the current page.
func (p Pager) Bounds() (start, end int) {
	return p.pg.GetSliceBounds(p.length)
}

// Slice returns the items visible on the pager's current page.
func Slice[T any](p Pager, items []T) []T {
	start, end := p.Bounds()
	end = min(end, len(items))
	start = min(start, end)
	return items[start:end]
}

// ItemsOnPage returns how many items the current page shows.
func (p Pager) ItemsOnPage() int { return p.pg.ItemsOnPage(p.length) }

// OnFirstPage reports whether First and Prev are disabled.
func (p Pager) OnFirstPage() bool { return p.pg.OnFirstPage() }

// OnLastPage reports whether Next and Last are disabled.
func (p Pager) OnLastPage() bool { return p.pg.OnLastPage() }

// First jumps to page 1.
func (p *Pager) First() { p.pg.Page = 0 }

// Prev moves back one page unless already on the first.
func (p *Pager) Prev() { p.pg.PrevPage() }

// Next moves forward one page unless already on the last.
func (p *Pager) Next() { p.pg.NextPage() }

// Last jumps to the final page.
func (p *Pager) Last() { p.pg.Page = p.pg.TotalPages - 1 }

// HandleKey applies a navigation key. Returns false for keys it does not own.
func (p *Pager) HandleKey(key string) bool {
	switch key {
	case "[", "home":
		p.First()
	case "h", "left", "pgup":
		p.Prev()
	case "l", "right", "pgdown":
		p.Next()
	case "]", "end":
		p.Last()
	default:
		return false
	}
	return true
}

var (
	activeDot   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("•")
	inactiveDot = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("•")
	enabledNav  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	disabledNav = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// maxDots is the page count above which dots give way to "3/12".
const maxDots = 12

// View renders the navigation controls, dimming the ones that are disabled.
// Empty when everything fits on one page.
func (p Pager) View() string {
	if p.pg.TotalPages <= 1 {
		return ""
	}

	pg := p.pg
	if pg.TotalPages > maxDots {
		pg.Type = paginator.Arabic
	}

	nav := func(label string, disabled bool) string {
		if disabled {
			return disabledNav.Render(label)
		}
		return enabledNav.Render(label)
	}

	return fmt.Sprintf("%s %s  %s  %s %s",
		nav("«", p.OnFirstPage()),
		nav("‹", p.OnFirstPage()),
		pg.View(),
		nav("›", p.OnLastPage()),
		nav("»", p.OnLastPage()),
	)
}
