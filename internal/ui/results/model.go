// Package results renders a verdict: the banner, the explanation, every
// source ranked by contribution, the discrepancies, and a paginated list of
// the checked claims with expandable details.
package results

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/abelbrown/factguard/internal/factcheck"
	"github.com/abelbrown/factguard/internal/logging"
	"github.com/abelbrown/factguard/internal/paging"
	"github.com/abelbrown/factguard/internal/ui/claims"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

// DefaultPageSize is the number of claims per page on the results screen.
const DefaultPageSize = 10

// footerLines is the height reserved below the viewport for the key hints.
const footerLines = 2

const scrollFPS = 60

// FrameMsg advances the scroll animation by one frame.
type FrameMsg struct{}

// Options configures a Model.
type Options struct {
	PageSize int
	Markdown bool   // render the explanation through glamour
	Theme    string // glamour style name, or "auto"
}

// Model is the results panel.
type Model struct {
	results  *factcheck.Results
	sources  []factcheck.Source
	pager    paging.Pager
	cursor   int          // row within the current claims page
	expanded map[int]bool // keyed by absolute claim index

	viewport viewport.Model

	// Smooth scrolling: the viewport offset follows a spring toward the target.
	spring       harmonica.Spring
	scrollPos    float64
	scrollVel    float64
	scrollTarget float64
	scrolling    bool

	markdown bool
	theme    string
	renderer *glamour.TermRenderer
	width    int
	height   int
}

// New creates an empty results panel.
func New(opts Options) Model {
	if opts.PageSize < 1 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Theme == "" {
		opts.Theme = "auto"
	}
	return Model{
		pager:    paging.New(opts.PageSize),
		expanded: make(map[int]bool),
		viewport: viewport.New(80, 20),
		spring:   harmonica.NewSpring(harmonica.FPS(scrollFPS), 6.0, 0.8),
		markdown: opts.Markdown,
		theme:    opts.Theme,
		width:    80,
		height:   22,
	}
}

// SetResults replaces the displayed verdict. Page, cursor, expansion state
// and scroll position all start over.
func (m *Model) SetResults(r *factcheck.Results) {
	m.results = r
	m.sources = nil
	n := 0
	if r != nil {
		m.sources = r.AllSources()
		n = len(r.Claims)
	}
	m.pager.Reset(n)
	m.cursor = 0
	m.expanded = make(map[int]bool)
	m.refresh()
	m.viewport.GotoTop()
	m.scrollPos, m.scrollVel, m.scrollTarget = 0, 0, 0
	m.scrolling = false
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-footerLines, 1)
	if m.markdown {
		m.renderer = newRenderer(m.theme, m.contentWidth())
	}
	m.refresh()
}

func newRenderer(theme string, width int) *glamour.TermRenderer {
	style := glamour.WithAutoStyle()
	if theme != "auto" {
		style = glamour.WithStandardStyle(theme)
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		logging.Warn("markdown renderer unavailable", "theme", theme, "err", err)
		return nil
	}
	return r
}

// Update handles navigation within the panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.results == nil {
		return m, nil
	}
	if _, ok := msg.(FrameMsg); ok {
		return m, m.stepScroll()
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	key := keyMsg.String()
	switch key {
	case "j", "down":
		if m.cursor < m.pager.ItemsOnPage()-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter", " ":
		start, _ := m.pager.Bounds()
		if m.pager.ItemsOnPage() > 0 {
			m.Toggle(start + m.cursor)
		}
	case "J", "ctrl+n":
		return m, m.scrollBy(1)
	case "K", "ctrl+p":
		return m, m.scrollBy(-1)
	case "g":
		return m, m.scrollTo(0)
	case "G":
		return m, m.scrollTo(float64(m.maxOffset()))
	default:
		if !m.pager.HandleKey(key) {
			return m, nil
		}
		m.cursor = 0
	}

	m.refresh()
	return m, nil
}

func (m *Model) scrollBy(lines float64) tea.Cmd {
	base := float64(m.viewport.YOffset)
	if m.scrolling {
		base = m.scrollTarget
	}
	return m.scrollTo(base + lines)
}

// scrollTo sets the scroll target and starts the frame loop if it is idle.
func (m *Model) scrollTo(target float64) tea.Cmd {
	m.scrollTarget = math.Max(0, math.Min(target, float64(m.maxOffset())))
	if m.scrolling {
		return nil
	}
	m.scrollPos = float64(m.viewport.YOffset)
	m.scrollVel = 0
	m.scrolling = true
	return nextFrame()
}

func (m *Model) stepScroll() tea.Cmd {
	if !m.scrolling {
		return nil
	}
	m.scrollPos, m.scrollVel = m.spring.Update(m.scrollPos, m.scrollVel, m.scrollTarget)
	if math.Abs(m.scrollPos-m.scrollTarget) < 0.01 && math.Abs(m.scrollVel) < 0.01 {
		m.scrollPos, m.scrollVel = m.scrollTarget, 0
		m.scrolling = false
	}
	m.viewport.SetYOffset(int(math.Round(m.scrollPos)))
	if m.scrolling {
		return nextFrame()
	}
	return nil
}

func nextFrame() tea.Cmd {
	return tea.Tick(time.Second/scrollFPS, func(time.Time) tea.Msg {
		return FrameMsg{}
	})
}

func (m Model) maxOffset() int {
	return max(m.viewport.TotalLineCount()-m.viewport.Height, 0)
}

// Scrolling reports whether a scroll animation is in progress.
func (m Model) Scrolling() bool { return m.scrolling }

// YOffset returns the first visible line of the panel.
func (m Model) YOffset() int { return m.viewport.YOffset }

// Toggle flips the expanded state of the claim at absolute index i.
func (m *Model) Toggle(i int) {
	if m.results == nil || i < 0 || i >= len(m.results.Claims) {
		return
	}
	if m.expanded[i] {
		delete(m.expanded, i)
	} else {
		m.expanded[i] = true
	}
	m.refresh()
}

// Expanded reports whether the claim at absolute index i is expanded.
func (m Model) Expanded(i int) bool { return m.expanded[i] }

// Results returns the displayed verdict, nil before the first check.
func (m Model) Results() *factcheck.Results { return m.results }

// HasResults reports whether there is anything to show.
func (m Model) HasResults() bool { return m.results != nil }

// Sources returns every source in display order.
func (m Model) Sources() []factcheck.Source { return m.sources }

// Pager returns the claims pager.
func (m Model) Pager() paging.Pager { return m.pager }

func (m *Model) refresh() {
	m.viewport.SetContent(m.Content())
}

func (m Model) contentWidth() int {
	return max(m.width-2, 30)
}

// View renders the scrollable panel and its key hints.
func (m Model) View() string {
	if m.results == nil {
		return ""
	}
	hint := snippetStyle.Render(fmt.Sprintf(
		"j/k select · enter expand · h/l page · J/K scroll · g/G top/bottom  %3.0f%%",
		m.viewport.ScrollPercent()*100))
	return m.viewport.View() + "\n\n" + hint
}

// Content renders the full panel without scrolling.
func (m Model) Content() string {
	r := m.results
	if r == nil {
		return ""
	}
	width := m.contentWidth()

	sections := []string{m.verdictView(width)}

	sections = append(sections, headingStyle.Render(fmt.Sprintf("Sources (%d)", len(m.sources))))
	if len(m.sources) == 0 {
		sections = append(sections, snippetStyle.Render("ⓘ No relevant sources were found"))
	}
	for _, s := range m.sources {
		sections = append(sections, SourceCard(s, width))
	}

	if len(r.Discrepancies) > 0 {
		sections = append(sections, headingStyle.Render(fmt.Sprintf("Discrepancies found (%d)", len(r.Discrepancies))))
		for _, d := range r.Discrepancies {
			sections = append(sections, DiscrepancyCard(d, width))
		}
	}

	if len(r.Claims) > 0 {
		sections = append(sections, headingStyle.Render(fmt.Sprintf("Checked claims (%d)", len(r.Claims))))
		sections = append(sections, m.claimsView(width))
	}

	return strings.Join(sections, "\n\n")
}

// Verdict returns the icon and label for a verdict.
func Verdict(isFact bool) (icon, label string) {
	if isFact {
		return "✅", "Largely accurate"
	}
	return "❌", "Possibly inaccurate"
}

func (m Model) verdictView(width int) string {
	r := m.results
	icon, label := Verdict(r.IsFact)

	color := colorRed
	if r.IsFact {
		color = colorGreen
	}

	title := lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon + "  " + label)
	conf := lipgloss.NewStyle().
		Foreground(confidenceColor(r.Confidence)).
		Render(fmt.Sprintf("Confidence: %d%%", r.ConfidencePercent()))

	body := title + "\n" + conf
	if expl := m.explanation(width - 4); expl != "" {
		body += "\n\n" + expl
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(width - 2).
		Render(body)
}

// confidenceColor tiers a reported confidence. A zero score means the
// service reported none and renders gray.
func confidenceColor(score float64) lipgloss.Color {
	if score <= 0 {
		return colorMuted
	}
	return ScoreTier(score * 100).Color()
}

func (m Model) explanation(width int) string {
	text := strings.TrimSpace(m.results.Explanation)
	if text == "" {
		return ""
	}
	if m.markdown && m.renderer != nil {
		out, err := m.renderer.Render(text)
		if err == nil {
			return strings.Trim(out, "\n")
		}
		logging.Debug("markdown render failed, using plain text", "err", err)
	}
	return bodyStyle.Render(wrapText(text, width))
}

func (m Model) claimsView(width int) string {
	all := m.results.Claims
	start, _ := m.pager.Bounds()
	page := paging.Slice(m.pager, all)

	var b strings.Builder
	for i := range page {
		abs := start + i
		marker := "▸"
		if m.expanded[abs] {
			marker = "▾"
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			snippetStyle.Render(marker),
			claims.Row(&page[i], abs+1, i == m.cursor, width-2)))
		b.WriteByte('\n')
		if m.expanded[abs] {
			b.WriteString(m.claimDetail(page[i], width-8))
			b.WriteByte('\n')
		}
	}
	if nav := m.pager.View(); nav != "" {
		b.WriteString("\n  " + nav)
	}
	return strings.TrimRight(b.String(), "\n")
}

// claimDetail lists the tag, uncommonness and any discrepancies raised
// against the claim.
func (m Model) claimDetail(c factcheck.Claim, width int) string {
	var lines []string
	if c.Tag != "" {
		lines = append(lines, "Likelihood: "+claims.Badge(c.Tag))
	}
	if c.Uncommonness > 0 {
		lines = append(lines, fmt.Sprintf("Uncommonness: %d", c.Uncommonness))
	}

	found := false
	for _, d := range m.results.Discrepancies {
		if d.Claim != c.Text {
			continue
		}
		found = true
		title := d.Source.Title
		if title == "" {
			title = "Untitled source"
		}
		lines = append(lines, labelStyle.Render("Contradicted by: ")+title)
		if d.Explanation != "" {
			lines = append(lines, snippetStyle.Render(wrapText(d.Explanation, width)))
		}
	}
	if !found {
		lines = append(lines, snippetStyle.Render("No contradicting sources found"))
	}

	return lipgloss.NewStyle().PaddingLeft(8).Render(strings.Join(lines, "\n"))
}
