package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/abelbrown/factguard/internal/factcheck"
	"github.com/abelbrown/factguard/internal/otel"
	"github.com/abelbrown/factguard/internal/ui/form"
	"github.com/abelbrown/factguard/internal/ui/results"
	tea "github.com/charmbracelet/bubbletea"
)

// stubBackend returns canned responses.
type stubBackend struct {
	claims  []factcheck.Claim
	results *factcheck.Results
	calls   int
}

func (s *stubBackend) ExtractClaims(context.Context, factcheck.ExtractRequest) ([]factcheck.Claim, error) {
	s.calls++
	return s.claims, nil
}

func (s *stubBackend) Check(context.Context, factcheck.CheckRequest) (*factcheck.Results, error) {
	s.calls++
	return s.results, nil
}

func newTestApp(b form.Backend, ring *otel.RingBuffer) App {
	app := NewApp(AppConfig{
		Backend: b,
		Form:    form.Options{Interval: time.Millisecond},
		Obs:     ObsConfig{Ring: ring},
		BaseURL: "http://localhost:8000",
	})
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	return model.(App)
}

// drive feeds msg to the app and keeps feeding every message the returned
// commands produce, except progress ticks, until nothing is left.
func drive(t *testing.T, app App, msg tea.Msg) App {
	t.Helper()
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		model, cmd := app.Update(next)
		app = model.(App)
		for _, m := range runCmd(cmd) {
			if _, tick := m.(form.TickMsg); tick {
				continue
			}
			queue = append(queue, m)
		}
	}
	return app
}

func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestAppNotReady(t *testing.T) {
	app := NewApp(AppConfig{Backend: &stubBackend{}})
	if app.View() != "Loading..." {
		t.Errorf("View before size = %q", app.View())
	}
}

func TestAppChrome(t *testing.T) {
	app := newTestApp(&stubBackend{}, nil)
	view := app.View()

	for _, want := range []string{"FactGuard", "AI-powered fact-checking assistant", "All rights reserved", "ctrl+s", "http://localhost:8000"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestInaccurateClaimEndToEnd(t *testing.T) {
	b := &stubBackend{
		claims: []factcheck.Claim{{Text: "the sky is green", Tag: factcheck.TagUnlikely}},
		results: &factcheck.Results{
			IsFact:        false,
			Confidence:    0.1,
			Explanation:   "...",
			Sources:       []factcheck.Source{},
			Discrepancies: []factcheck.Discrepancy{},
		},
	}
	app := newTestApp(b, nil)
	app.form.SetInput("the sky is green", "")

	app = drive(t, app, tea.KeyMsg{Type: tea.KeyCtrlS})

	if app.Form().Step() != form.StepReviewing {
		t.Fatalf("step = %v, want reviewing", app.Form().Step())
	}
	claims := app.Form().Claims()
	if len(claims) != 1 || claims[0].Tag != factcheck.TagUnlikely {
		t.Fatalf("working set = %+v", claims)
	}
	view := app.View()
	if !strings.Contains(view, "the sky is green") || !strings.Contains(view, factcheck.TagUnlikely) {
		t.Errorf("preview should show the tagged claim:\n%s", view)
	}

	app = drive(t, app, tea.KeyMsg{Type: tea.KeyEnter})

	if app.Focus() != PaneResults {
		t.Fatalf("focus = %v, want results", app.Focus())
	}
	if app.Results().Results() != b.results {
		t.Error("results panel should hold the returned verdict")
	}
	view = app.View()
	for _, want := range []string{"Possibly inaccurate", "Confidence: 10%", "No relevant sources were found"} {
		if !strings.Contains(view, want) {
			t.Errorf("results view missing %q", want)
		}
	}
	if b.calls != 2 {
		t.Errorf("backend calls = %d, want 2", b.calls)
	}
}

func TestResultsReplacedWholesale(t *testing.T) {
	app := newTestApp(&stubBackend{}, nil)

	first := &factcheck.Results{IsFact: true, Claims: []factcheck.Claim{{Text: "a"}}}
	second := &factcheck.Results{IsFact: false}

	app = drive(t, app, form.ResultsReadyMsg{Results: first})
	app = drive(t, app, form.ResultsReadyMsg{Results: second})

	if app.Results().Results() != second {
		t.Error("second results should replace the first")
	}
	if strings.Contains(app.View(), "Largely accurate") {
		t.Error("stale verdict still rendered")
	}
}

func TestFocusSwitching(t *testing.T) {
	app := newTestApp(&stubBackend{}, nil)

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	app = model.(App)
	if app.Focus() != PaneForm {
		t.Error("ctrl+r without results should stay on the form")
	}

	app = drive(t, app, form.ResultsReadyMsg{Results: &factcheck.Results{}})
	if app.Focus() != PaneResults {
		t.Fatal("new results should take focus")
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(App)
	if app.Focus() != PaneForm {
		t.Error("esc in results should return to the form")
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	app = model.(App)
	if app.Focus() != PaneResults {
		t.Error("ctrl+r should switch to results once they exist")
	}
}

func TestResultsScrollAnimates(t *testing.T) {
	sources := make([]factcheck.Source, 40)
	for i := range sources {
		sources[i] = factcheck.Source{Title: "source", Snippet: "evidence", ContributionScore: 0.5}
	}
	app := newTestApp(&stubBackend{}, nil)
	app = drive(t, app, form.ResultsReadyMsg{Results: &factcheck.Results{Sources: sources}})

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	app = model.(App)
	if cmd == nil || !app.Results().Scrolling() {
		t.Fatal("G should start a scroll animation")
	}

	for i := 0; i < 1000 && app.Results().Scrolling(); i++ {
		model, _ = app.Update(results.FrameMsg{})
		app = model.(App)
	}
	if app.Results().Scrolling() {
		t.Fatal("scroll animation never settled")
	}
	if app.Results().YOffset() == 0 {
		t.Error("frames should reach the results panel and move it down")
	}
}

func TestQuitKeys(t *testing.T) {
	app := newTestApp(&stubBackend{}, nil)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}

	app = drive(t, app, form.ResultsReadyMsg{Results: &factcheck.Results{}})
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q on results should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q on results should quit")
	}
}

func TestKeysRouteToForm(t *testing.T) {
	app := newTestApp(&stubBackend{}, nil)

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	app = model.(App)

	if cmd != nil {
		t.Error("empty submit should not start a request")
	}
	if app.Form().Alert() == "" {
		t.Error("form should raise the empty-input alert")
	}
}
