// Package claims renders extracted claims: the likelihood tag badge, a
// single numbered row, and a page of rows with navigation controls.
package claims

import (
	"github.com/abelbrown/factguard/internal/factcheck"
	"github.com/charmbracelet/lipgloss"
)

// Badge colors per tag. Unknown tags fall back to gray.
var (
	colorPurple  = lipgloss.Color("141")
	colorRed     = lipgloss.Color("203")
	colorYellow  = lipgloss.Color("221")
	colorEmerald = lipgloss.Color("42")
	colorGray    = lipgloss.Color("245")
)

var badgeBase = lipgloss.NewStyle().
	Foreground(lipgloss.Color("232")).
	Bold(true).
	Padding(0, 1)

// TagColor maps a tag to its badge color.
func TagColor(tag string) lipgloss.Color {
	switch tag {
	case factcheck.TagNearlyImpossible:
		return colorPurple
	case factcheck.TagUnlikely:
		return colorRed
	case factcheck.TagDoubtful:
		return colorYellow
	case factcheck.TagCommon:
		return colorEmerald
	default:
		return colorGray
	}
}

// TagStyle returns the badge style for a tag.
func TagStyle(tag string) lipgloss.Style {
	return badgeBase.Background(TagColor(tag))
}

// Badge renders the tag as a colored badge. An empty tag renders nothing.
func Badge(tag string) string {
	if tag == "" {
		return ""
	}
	return TagStyle(tag).Render(tag)
}
