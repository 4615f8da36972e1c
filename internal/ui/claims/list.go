package claims

import (
	"fmt"
	"strings"

	"github.com/abelbrown/factguard/internal/factcheck"
	"github.com/abelbrown/factguard/internal/paging"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	indexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(5).
			Align(lipgloss.Right)

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("62")).
			Bold(true)

	cursorMark = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Render("▸")

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Row renders one claim. index is the claim's 1-based position in the whole
// list, not within the page.
func Row(c *factcheck.Claim, index int, selected bool, width int) string {
	if c == nil {
		return ""
	}

	mark := " "
	if selected {
		mark = cursorMark
	}

	prefix := mark + indexStyle.Render(fmt.Sprintf("%d.", index)) + " "
	badge := Badge(c.Tag)

	avail := width - lipgloss.Width(prefix) - lipgloss.Width(badge) - 1
	if avail < 10 {
		avail = 10
	}
	if selected {
		// The highlighted row shows the whole claim, wrapped to the text column.
		text := selectedStyle.Width(avail).Render(collapse(c.Text))
		if badge == "" {
			return lipgloss.JoinHorizontal(lipgloss.Top, prefix, text)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, prefix, text, " "+badge)
	}

	text := textStyle.Render(truncate(c.Text, avail))
	if badge == "" {
		return prefix + text
	}
	return prefix + text + " " + badge
}

// List renders the pager's current page of items. cursor is an index within
// the page, or -1 for no highlight.
func List(items []*factcheck.Claim, p paging.Pager, cursor, width int) string {
	if len(items) == 0 {
		return emptyStyle.Render("  No claims")
	}

	start, _ := p.Bounds()
	page := paging.Slice(p, items)

	var b strings.Builder
	for i, c := range page {
		b.WriteString(Row(c, start+i+1, i == cursor, width))
		b.WriteByte('\n')
	}

	if nav := p.View(); nav != "" {
		b.WriteString("\n  " + nav)
		b.WriteByte('\n')
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("  %d claims, page %d of %d",
		len(items), p.Page(), max(1, p.TotalPages()))))
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate shortens s to n terminal cells, ending with an ellipsis.
func truncate(s string, n int) string {
	return ansi.Truncate(collapse(s), max(n, 1), "…")
}
