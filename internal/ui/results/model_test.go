package results

import (
	"fmt"
	"strings"
	"testing"

	"github.com/abelbrown/factguard/internal/factcheck"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func newPanel() Model {
	m := New(Options{})
	m.SetSize(100, 40)
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m, _ = m.Update(keyMsg(k))
	}
	return m
}

func manyClaims(n int) []factcheck.Claim {
	cs := make([]factcheck.Claim, n)
	for i := range cs {
		cs[i] = factcheck.Claim{Text: fmt.Sprintf("claim-%02d", i+1), Tag: factcheck.TagDoubtful}
	}
	return cs
}

func TestScoreTier(t *testing.T) {
	tests := []struct {
		pct  float64
		want Tier
	}{
		{100, TierHigh},
		{70.1, TierHigh},
		{70, TierMedium},
		{40.1, TierMedium},
		{40, TierLow},
		{10, TierLow},
		{0, TierLow},
	}
	for _, tt := range tests {
		if got := ScoreTier(tt.pct); got != tt.want {
			t.Errorf("ScoreTier(%v) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestConfidenceColor(t *testing.T) {
	tests := []struct {
		score float64
		want  lipgloss.Color
	}{
		{0, colorMuted},
		{-1, colorMuted},
		{0.1, colorRed},
		{0.35, colorRed},
		{0.41, colorYellow},
		{0.71, colorGreen},
		{1, colorGreen},
	}
	for _, tt := range tests {
		if got := confidenceColor(tt.score); got != tt.want {
			t.Errorf("confidenceColor(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestSourceTypeLabel(t *testing.T) {
	tests := map[factcheck.SourceType]string{
		factcheck.SourceAcademic:   "Academic source",
		factcheck.SourceGovernment: "Government source",
		factcheck.SourceNews:       "Other source",
		factcheck.SourceBlog:       "Other source",
		"":                         "Other source",
	}
	for st, want := range tests {
		if got := SourceTypeLabel(st); got != want {
			t.Errorf("SourceTypeLabel(%q) = %q, want %q", st, got, want)
		}
	}
}

func TestContribution(t *testing.T) {
	tests := map[float64]string{
		0:      "0.0%",
		0.85:   "85.0%",
		0.1234: "12.3%",
		1:      "100.0%",
	}
	for score, want := range tests {
		if got := Contribution(score); got != want {
			t.Errorf("Contribution(%v) = %q, want %q", score, got, want)
		}
	}
}

func TestSourceCardFallbacksAndBibliography(t *testing.T) {
	card := SourceCard(factcheck.Source{SourceType: factcheck.SourceAcademic}, 80)
	for _, want := range []string{"Untitled source", "No summary available", "Academic source", "0.0%"} {
		if !strings.Contains(card, want) {
			t.Errorf("card missing %q:\n%s", want, card)
		}
	}

	card = SourceCard(factcheck.Source{
		Title:     "Paper",
		Snippet:   "s",
		Authors:   []string{"A", "B", "C", "D"},
		Year:      2021,
		Journal:   "Nature",
		Citations: 12,
	}, 100)
	for _, want := range []string{"A, B, C et al.", "2021", "Nature", "12 citations"} {
		if !strings.Contains(card, want) {
			t.Errorf("card missing %q:\n%s", want, card)
		}
	}
}

func TestDiscrepancyCard(t *testing.T) {
	card := DiscrepancyCard(factcheck.Discrepancy{
		Claim:       "the moon is cheese",
		Source:      factcheck.Source{Title: "NASA"},
		Explanation: "it is rock",
	}, 80)
	for _, want := range []string{"Claim", "the moon is cheese", "Contradicting source", "NASA", "Explanation", "it is rock"} {
		if !strings.Contains(card, want) {
			t.Errorf("discrepancy card missing %q", want)
		}
	}
}

func maxLineWidth(s string) int {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		w = max(w, lipgloss.Width(line))
	}
	return w
}

func TestCardsFitWidthWithWideText(t *testing.T) {
	src := factcheck.Source{
		Title:   strings.Repeat("中国国家航天局", 6),
		Snippet: strings.Repeat("从近地轨道用肉眼几乎无法分辨长城", 5),
		Link:    "https://www.cnsa.gov.cn/",
	}
	d := factcheck.Discrepancy{
		Claim:       strings.Repeat("长城在太空中肉眼可见", 8),
		Source:      src,
		Explanation: strings.Repeat("宇航员的报告表明长城过窄", 7) + "。",
	}

	if w := maxLineWidth(SourceCard(src, 60)); w > 60 {
		t.Errorf("source card width = %d, want <= 60", w)
	}

	card := DiscrepancyCard(d, 60)
	if w := maxLineWidth(card); w > 60 {
		t.Errorf("discrepancy card width = %d, want <= 60", w)
	}
	if !strings.Contains(card, "长城在太空中") {
		t.Error("discrepancy card should keep the claim text")
	}
}

func TestContentFitsWidthWithWideText(t *testing.T) {
	m := newPanel()
	m.SetResults(&factcheck.Results{
		Confidence:  0.35,
		Explanation: strings.Repeat("该说法与多项观测记录不符", 12),
		Claims:      []factcheck.Claim{{Text: strings.Repeat("长城在太空中肉眼可见", 8), Tag: factcheck.TagUnlikely}},
	})
	m.Toggle(0)

	if w := maxLineWidth(m.Content()); w > 98 {
		t.Errorf("content width = %d, want <= 98", w)
	}
}

func TestSourcesSortedByContribution(t *testing.T) {
	m := newPanel()
	m.SetResults(&factcheck.Results{
		Sources: []factcheck.Source{
			{Title: "low", ContributionScore: 0.1},
			{Title: "tie-a", ContributionScore: 0.5},
		},
		AcademicSources: []factcheck.Source{
			{Title: "high", ContributionScore: 0.9},
			{Title: "tie-b", ContributionScore: 0.5},
			{Title: "missing"},
		},
	})

	var got []string
	for _, s := range m.Sources() {
		got = append(got, s.Title)
	}
	want := "high,tie-a,tie-b,low,missing"
	if strings.Join(got, ",") != want {
		t.Errorf("order = %v, want %s", got, want)
	}

	content := m.Content()
	if strings.Index(content, "high") > strings.Index(content, "tie-a") {
		t.Error("rendered order should follow contribution")
	}
}

func TestEmptySourcesAndNoDiscrepancies(t *testing.T) {
	m := newPanel()
	m.SetResults(&factcheck.Results{IsFact: true, Confidence: 0.9})

	content := m.Content()
	if !strings.Contains(content, "No relevant sources were found") {
		t.Error("empty sources should show the empty state")
	}
	if strings.Contains(content, "Discrepancies") {
		t.Error("discrepancy section should be omitted when empty")
	}
	if !strings.Contains(content, "Largely accurate") || !strings.Contains(content, "90%") {
		t.Errorf("verdict banner wrong:\n%s", content)
	}
}

func TestDiscrepancySectionShown(t *testing.T) {
	m := newPanel()
	m.SetResults(&factcheck.Results{
		Discrepancies: []factcheck.Discrepancy{{Claim: "x", Explanation: "y"}},
	})
	if !strings.Contains(m.Content(), "Discrepancies found (1)") {
		t.Error("discrepancy section should be present")
	}
}

func TestInaccurateVerdictScenario(t *testing.T) {
	m := newPanel()
	m.SetResults(&factcheck.Results{
		IsFact:      false,
		Confidence:  0.1,
		Explanation: "...",
		Sources:     []factcheck.Source{},
		Claims:      []factcheck.Claim{{Text: "the sky is green", Tag: factcheck.TagUnlikely}},
	})

	content := m.Content()
	for _, want := range []string{"❌", "Possibly inaccurate", "Confidence: 10%"} {
		if !strings.Contains(content, want) {
			t.Errorf("content missing %q", want)
		}
	}
	if ScoreTier(m.Results().Confidence*100) != TierLow {
		t.Error("10% confidence should be in the low tier")
	}
}

func TestClaimsPaginationAndExpansion(t *testing.T) {
	m := newPanel()
	m.SetResults(&factcheck.Results{Claims: manyClaims(23)})

	if m.Pager().TotalPages() != 3 {
		t.Fatalf("total pages = %d, want 3", m.Pager().TotalPages())
	}
	if strings.Contains(m.Content(), "claim-11") {
		t.Error("page 1 should not show claim 11")
	}

	m = press(m, "l", "j", "enter")
	if m.Pager().Page() != 2 {
		t.Fatalf("page = %d, want 2", m.Pager().Page())
	}
	if !m.Expanded(11) {
		t.Error("second row of page 2 is absolute index 11")
	}
	if !strings.Contains(m.Content(), "No contradicting sources found") {
		t.Error("expanded claim should show its details")
	}

	m = press(m, "enter")
	if m.Expanded(11) {
		t.Error("second toggle should collapse")
	}

	m = press(m, "]")
	if m.Pager().Page() != 3 || m.Pager().ItemsOnPage() != 3 {
		t.Errorf("last page = %d with %d items", m.Pager().Page(), m.Pager().ItemsOnPage())
	}
}

func TestExpansionResetOnNewResults(t *testing.T) {
	m := newPanel()
	m.SetResults(&factcheck.Results{Claims: manyClaims(15)})
	m = press(m, "enter", "l")
	if !m.Expanded(0) {
		t.Fatal("claim 0 should be expanded")
	}

	m.SetResults(&factcheck.Results{Claims: manyClaims(15)})
	if m.Expanded(0) {
		t.Error("expansion should reset when results are replaced")
	}
	if m.Pager().Page() != 1 {
		t.Errorf("page = %d, want 1", m.Pager().Page())
	}
}

func TestClaimDetailShowsMatchingDiscrepancy(t *testing.T) {
	m := newPanel()
	m.SetResults(&factcheck.Results{
		Claims: []factcheck.Claim{{Text: "a", Uncommonness: 4}},
		Discrepancies: []factcheck.Discrepancy{
			{Claim: "a", Source: factcheck.Source{Title: "Encyclopedia"}, Explanation: "wrong"},
			{Claim: "b", Source: factcheck.Source{Title: "Other"}},
		},
	})
	m.Toggle(0)

	detail := m.claimDetail(m.Results().Claims[0], 60)
	if !strings.Contains(detail, "Encyclopedia") || !strings.Contains(detail, "Uncommonness: 4") {
		t.Errorf("detail = %q", detail)
	}
	if strings.Contains(detail, "Other") {
		t.Error("detail should only list discrepancies for this claim")
	}
}

func TestToggleOutOfRange(t *testing.T) {
	m := newPanel()
	m.SetResults(&factcheck.Results{Claims: manyClaims(2)})
	m.Toggle(5)
	m.Toggle(-1)
	if m.Expanded(5) || m.Expanded(-1) {
		t.Error("out of range toggles should be ignored")
	}
}

func TestUpdateWithoutResults(t *testing.T) {
	m := newPanel()
	m, cmd := m.Update(keyMsg("l"))
	if cmd != nil || m.View() != "" {
		t.Error("empty panel should ignore input and render nothing")
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "one two", 20, "one two"},
		{"wraps", "one two three", 8, "one two\nthree"},
		{"paragraphs", "a b\n\nc", 10, "a b\n\nc"},
		{"folds single newline", "a\nb", 10, "a b"},
		{"zero width", "a b", 0, "a b"},
		{"no spaces", "长城在太空中肉眼可见", 8, "长城在太\n空中肉眼\n可见"},
		{"mixed", "NASA 称长城在太空中肉眼不可见", 12, "NASA\n称长城在太空\n中肉眼不可见"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapText(tt.text, tt.width); got != tt.want {
				t.Errorf("wrapText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func settle(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; i < 1000 && m.Scrolling(); i++ {
		m, _ = m.Update(FrameMsg{})
	}
	if m.Scrolling() {
		t.Fatal("scroll animation never settled")
	}
	return m
}

func TestSpringScrollSettlesOnTarget(t *testing.T) {
	sources := make([]factcheck.Source, 30)
	for i := range sources {
		sources[i] = factcheck.Source{Title: fmt.Sprintf("source-%02d", i), Snippet: "evidence"}
	}
	m := newPanel()
	m.SetResults(&factcheck.Results{Sources: sources})
	bottom := m.maxOffset()
	if bottom == 0 {
		t.Fatal("content should be taller than the panel")
	}

	m, cmd := m.Update(keyMsg("G"))
	if cmd == nil || !m.Scrolling() {
		t.Fatal("G should start the animation")
	}
	if m.YOffset() != 0 {
		t.Error("offset should only move on frames")
	}

	m = settle(t, m)
	if m.YOffset() != bottom {
		t.Errorf("after G: offset = %d, want %d", m.YOffset(), bottom)
	}

	m = settle(t, press(m, "K", "K"))
	if m.YOffset() != bottom-2 {
		t.Errorf("after K K: offset = %d, want %d", m.YOffset(), bottom-2)
	}

	m = settle(t, press(m, "g"))
	if m.YOffset() != 0 {
		t.Errorf("after g: offset = %d, want 0", m.YOffset())
	}
}

func TestScrollTargetClamped(t *testing.T) {
	m := newPanel()
	m.SetResults(&factcheck.Results{IsFact: true})

	m = settle(t, press(m, "K", "J", "J"))
	if m.YOffset() != 0 {
		t.Errorf("short content should not scroll, offset = %d", m.YOffset())
	}
}

func TestFrameIgnoredWhenIdle(t *testing.T) {
	m := newPanel()
	m.SetResults(&factcheck.Results{})
	if _, cmd := m.Update(FrameMsg{}); cmd != nil {
		t.Error("idle panel should not schedule frames")
	}
}

func TestNewResultsStopScroll(t *testing.T) {
	sources := make([]factcheck.Source, 30)
	m := newPanel()
	m.SetResults(&factcheck.Results{Sources: sources})
	m = press(m, "G")

	m.SetResults(&factcheck.Results{})
	if m.Scrolling() || m.YOffset() != 0 {
		t.Errorf("new results should reset scroll: scrolling=%v offset=%d", m.Scrolling(), m.YOffset())
	}
}
