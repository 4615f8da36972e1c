package results

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abelbrown/factguard/internal/factcheck"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

var (
	colorGreen  = lipgloss.Color("42")
	colorYellow = lipgloss.Color("221")
	colorRed    = lipgloss.Color("203")
	colorBlue   = lipgloss.Color("75")
	colorMuted  = lipgloss.Color("244")
	colorText   = lipgloss.Color("252")
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	discrepancyStyle = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder(), false, false, false, true).
				BorderForeground(colorRed).
				PaddingLeft(2)

	titleStyle   = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	snippetStyle = lipgloss.NewStyle().Foreground(colorMuted)
	linkStyle    = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	metaStyle    = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	headingStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true).Underline(true)
	labelStyle   = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	bodyStyle    = lipgloss.NewStyle().Foreground(colorText)
)

// Tier buckets a 0-100 score for coloring.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

// ScoreTier maps a percentage to its tier: above 70 high, above 40 medium.
func ScoreTier(pct float64) Tier {
	switch {
	case pct > 70:
		return TierHigh
	case pct > 40:
		return TierMedium
	default:
		return TierLow
	}
}

// Color returns the display color of the tier.
func (t Tier) Color() lipgloss.Color {
	switch t {
	case TierHigh:
		return colorGreen
	case TierMedium:
		return colorYellow
	default:
		return colorRed
	}
}

// SourceTypeLabel is the badge text for a source type.
func SourceTypeLabel(t factcheck.SourceType) string {
	switch t {
	case factcheck.SourceAcademic:
		return "Academic source"
	case factcheck.SourceGovernment:
		return "Government source"
	default:
		return "Other source"
	}
}

func sourceTypeStyle(t factcheck.SourceType) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1)
	switch t {
	case factcheck.SourceAcademic:
		return base.Foreground(lipgloss.Color("17")).Background(lipgloss.Color("153"))
	case factcheck.SourceGovernment:
		return base.Foreground(lipgloss.Color("22")).Background(lipgloss.Color("157"))
	default:
		return base.Foreground(lipgloss.Color("236")).Background(lipgloss.Color("252"))
	}
}

// Contribution formats a contribution score with one decimal, e.g. "85.0%".
func Contribution(score float64) string {
	return strconv.FormatFloat(score*100, 'f', 1, 64) + "%"
}

// SourceCard renders one piece of evidence.
func SourceCard(s factcheck.Source, width int) string {
	title := s.Title
	if title == "" {
		title = "Untitled source"
	}
	snippet := s.Snippet
	if snippet == "" {
		snippet = "No summary available"
	}

	pct := s.ContributionScore * 100
	score := lipgloss.NewStyle().
		Foreground(ScoreTier(pct).Color()).
		Bold(true).
		Render("Contribution: " + Contribution(s.ContributionScore))

	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	var lines []string
	lines = append(lines, titleStyle.Render(title)+" "+sourceTypeStyle(s.SourceType).Render(SourceTypeLabel(s.SourceType)))
	lines = append(lines, score)
	if meta := bibliography(s); meta != "" {
		lines = append(lines, metaStyle.Render(meta))
	}
	lines = append(lines, snippetStyle.Render(wrapText(snippet, inner)))
	if s.Abstract != "" && s.Abstract != s.Snippet {
		lines = append(lines, snippetStyle.Render(wrapText("Abstract: "+s.Abstract, inner)))
	}
	if s.Link != "" {
		lines = append(lines, linkStyle.Render("↗ "+s.Link))
	}

	// Width excludes the border.
	return cardStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// bibliography joins whichever of authors, year, journal and citations are set.
func bibliography(s factcheck.Source) string {
	var parts []string
	if len(s.Authors) > 0 {
		authors := s.Authors
		suffix := ""
		if len(authors) > 3 {
			authors = authors[:3]
			suffix = " et al."
		}
		parts = append(parts, strings.Join(authors, ", ")+suffix)
	}
	if s.Year > 0 {
		parts = append(parts, strconv.Itoa(s.Year))
	}
	if s.Journal != "" {
		parts = append(parts, s.Journal)
	}
	if s.Citations > 0 {
		parts = append(parts, fmt.Sprintf("%d citations", s.Citations))
	}
	return strings.Join(parts, " · ")
}

// DiscrepancyCard renders a claim, the source contradicting it, and why.
func DiscrepancyCard(d factcheck.Discrepancy, width int) string {
	inner := width - 3
	if inner < 20 {
		inner = 20
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("Claim"))
	b.WriteByte('\n')
	b.WriteString(bodyStyle.Render(wrapText(d.Claim, inner)))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Contradicting source"))
	b.WriteByte('\n')
	b.WriteString(SourceCard(d.Source, inner))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Explanation"))
	b.WriteByte('\n')
	b.WriteString(bodyStyle.Render(wrapText(d.Explanation, inner)))

	return discrepancyStyle.Render(b.String())
}

// wrapText wraps text to fit within width display cells. Lines break at
// spaces where possible; runs without spaces, such as Chinese text, are cut
// by cell width. Blank-line separated paragraphs are kept apart; single
// newlines are folded.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var paragraphs []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.Join(strings.Fields(para), " ")
		if para == "" {
			continue
		}
		paragraphs = append(paragraphs, wrap.String(wordwrap.String(para, width), width))
	}

	return strings.Join(paragraphs, "\n\n")
}
