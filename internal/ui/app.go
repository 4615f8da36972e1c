// Package ui provides the Bubble Tea TUI for FactGuard.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/factguard/internal/otel"
	"github.com/abelbrown/factguard/internal/ui/form"
	"github.com/abelbrown/factguard/internal/ui/results"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Pane identifies which half of the app has keyboard focus.
type Pane int

const (
	PaneForm Pane = iota
	PaneResults
)

// chromeLines is the height taken by header, nav, footer and status bar.
const chromeLines = 9

// ObsConfig groups observability dependencies.
type ObsConfig struct {
	Events *otel.Logger
	Ring   *otel.RingBuffer
}

// AppConfig holds everything the root model needs.
type AppConfig struct {
	Backend form.Backend
	Form    form.Options
	Results results.Options
	Obs     ObsConfig
	BaseURL string // shown in the status bar
}

// App is the root Bubble Tea model. It owns layout and focus; the form owns
// the workflow and the results panel owns the verdict.
type App struct {
	form    form.Model
	results results.Model
	focus   Pane

	events  *otel.Logger
	ring    *otel.RingBuffer
	baseURL string

	debugVisible bool
	width        int
	height       int
	ready        bool
	year         int
}

// NewApp creates the root model.
func NewApp(cfg AppConfig) App {
	if cfg.Form.Events == nil {
		cfg.Form.Events = cfg.Obs.Events
	}
	return App{
		form:    form.New(cfg.Backend, cfg.Form),
		results: results.New(cfg.Results),
		events:  cfg.Obs.Events,
		ring:    cfg.Obs.Ring,
		baseURL: cfg.BaseURL,
		year:    time.Now().Year(),
	}
}

// Init starts the form's cursor blink.
func (a App) Init() tea.Cmd {
	return a.form.Init()
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if otel.TraceEnabled() {
		a.events.Emit(otel.Event{
			Level: otel.LevelDebug,
			Kind:  otel.KindMsgReceived,
			Comp:  "ui",
			Msg:   fmt.Sprintf("%T", msg),
		})
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		body := max(a.height-chromeLines, 5)
		a.form.SetSize(a.width-4, body)
		a.results.SetSize(a.width-4, body)
		return a, nil

	case form.ResultsReadyMsg:
		a.results.SetResults(msg.Results)
		a.focus = PaneResults
		return a, nil

	case results.FrameMsg:
		var cmd tea.Cmd
		a.results, cmd = a.results.Update(msg)
		return a, cmd

	case tea.MouseMsg:
		if a.focus == PaneResults {
			var cmd tea.Cmd
			a.results, cmd = a.results.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Ticks, responses, spinner and cursor blink all belong to the form.
	var cmd tea.Cmd
	a.form, cmd = a.form.Update(msg)
	return a, cmd
}

// handleKeyMsg processes keyboard input.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if otel.TraceEnabled() {
		a.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindKeyPress, Comp: "ui", Msg: key})
	}

	switch key {
	case "ctrl+c":
		return a, tea.Quit
	case "ctrl+d":
		a.debugVisible = !a.debugVisible
		return a, nil
	}

	if a.debugVisible {
		if key == "esc" {
			a.debugVisible = false
		}
		return a, nil
	}

	if key == "ctrl+r" {
		return a.toggleFocus(), nil
	}

	if a.focus == PaneResults {
		switch key {
		case "q":
			return a, tea.Quit
		case "esc":
			a.focus = PaneForm
			return a, nil
		}
		var cmd tea.Cmd
		a.results, cmd = a.results.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.form, cmd = a.form.Update(msg)
	return a, cmd
}

func (a App) toggleFocus() App {
	switch {
	case a.focus == PaneResults:
		a.focus = PaneForm
	case a.results.HasResults() && !a.form.Loading():
		a.focus = PaneResults
	}
	return a
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	if a.debugVisible {
		overlay := debugOverlay(a.ring, a.width, a.height-1)
		if overlay == "" {
			overlay = Body.Render("No event buffer attached.")
		}
		return lipgloss.JoinVertical(lipgloss.Left, overlay, debugStatusBar(a.width))
	}

	var body string
	if a.focus == PaneResults {
		body = a.results.View()
	} else {
		body = a.form.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.headerView(),
		a.navView(),
		Body.Render(body),
		a.footerView(),
		a.statusBar(),
	)
}

func (a App) headerView() string {
	hero := HeroTitle.Render("FactGuard") + "\n" +
		HeroTagline.Render("AI-powered fact-checking assistant")
	return Header.Width(a.width).Render(hero)
}

func (a App) navView() string {
	check := NavTab.Render("Check")
	if a.focus == PaneForm {
		check = NavTabActive.Render("Check")
	}

	label := "Results"
	var res string
	switch {
	case !a.results.HasResults():
		res = NavTabDisabled.Render(label)
	case a.focus == PaneResults:
		res = NavTabActive.Render(label)
	default:
		res = NavTab.Render(label)
	}
	return check + res
}

func (a App) footerView() string {
	return Footer.Width(a.width).Render(fmt.Sprintf("© %d FactGuard. All rights reserved.", a.year))
}

// statusBar renders key hints for the focused pane and the service address.
func (a App) statusBar() string {
	var hints []string
	hint := func(k, desc string) {
		hints = append(hints, StatusBarKey.Render(k)+StatusBarText.Render(":"+desc))
	}

	if a.focus == PaneResults {
		hint("esc", "form")
		hint("J/K", "scroll")
		hint("q", "quit")
	} else {
		hint("ctrl+s", "analyze")
		hint("esc", "cancel")
		if a.results.HasResults() {
			hint("ctrl+r", "results")
		}
	}
	hint("ctrl+d", "debug")
	hint("ctrl+c", "quit")

	left := strings.Join(hints, "  ")
	right := StatusBarText.Render(a.form.Step().String())
	if a.baseURL != "" {
		right += StatusBarText.Render("  " + a.baseURL)
	}

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return StatusBar.Width(a.width).Render(left + strings.Repeat(" ", gap) + right)
}

// Focus returns the pane that receives keys (for testing).
func (a App) Focus() Pane {
	return a.focus
}

// Form returns the submission form (for testing).
func (a App) Form() form.Model {
	return a.form
}

// Results returns the results panel (for testing).
func (a App) Results() results.Model {
	return a.results
}
