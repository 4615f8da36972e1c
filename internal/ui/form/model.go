// Package form is the submission workflow: it collects text or a URL, asks
// the service for checkable claims, lets the user prune them, then submits
// the survivors for verification and hands the verdict off.
package form

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/abelbrown/factguard/internal/factcheck"
	"github.com/abelbrown/factguard/internal/logging"
	"github.com/abelbrown/factguard/internal/otel"
	"github.com/abelbrown/factguard/internal/paging"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// User-facing alerts. Transport details never appear here.
const (
	alertEmptyInput    = "Please enter text or a URL to check"
	alertNoClaims      = "No checkable claims were found, please try different input"
	alertExtractFailed = "Claim extraction failed, please try again"
	alertNoneSelected  = "Please keep at least one claim to check"
	alertCheckFailed   = "Fact check failed, please try again"
)

// Simulated progress: +progressStep every interval while below progressCeiling.
// It never reaches 100 while a request is outstanding.
const (
	progressStep    = 5
	progressCeiling = 90
	progressDone    = 100
)

const (
	DefaultPageSize = 5
	DefaultInterval = 500 * time.Millisecond
)

// Backend is the service the form talks to. *factcheck.Client satisfies it.
type Backend interface {
	ExtractClaims(ctx context.Context, req factcheck.ExtractRequest) ([]factcheck.Claim, error)
	Check(ctx context.Context, req factcheck.CheckRequest) (*factcheck.Results, error)
}

// Options configures a Model. Zero values fall back to defaults.
type Options struct {
	PageSize int
	Interval time.Duration
	Events   *otel.Logger
}

type focusField int

const (
	focusText focusField = iota
	focusURL
)

// Model is the submission form.
type Model struct {
	backend  Backend
	events   *otel.Logger
	interval time.Duration

	text  textarea.Model
	url   textinput.Model
	focus focusField

	claims   []*factcheck.Claim
	original string
	loading  bool
	progress int
	step     Step
	preview  bool
	pager    paging.Pager
	cursor   int // row within the current page
	alert    string

	attempt       string
	extractTicker string // attempt the extract ticker is running for, "" when stopped
	checkTicker   string

	bar     progress.Model
	spinner spinner.Model
	width   int
	height  int
}

// New creates a form backed by b.
func New(b Backend, opts Options) Model {
	if opts.PageSize < 1 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}

	ta := textarea.New()
	ta.Placeholder = "Paste the text you want to fact-check..."
	ta.ShowLineNumbers = false
	ta.SetHeight(4)
	ta.SetWidth(60)
	ta.Focus()

	ti := textinput.New()
	ti.Placeholder = "https://..."
	ti.Prompt = "URL › "
	ti.Width = 56

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	return Model{
		backend:  b,
		events:   opts.Events,
		interval: opts.Interval,
		text:     ta,
		url:      ti,
		pager:    paging.New(opts.PageSize),
		bar: progress.New(
			progress.WithGradient("#F59E0B", "#FDE68A"),
			progress.WithoutPercentage(),
			progress.WithWidth(50),
		),
		spinner: sp,
	}
}

// Init starts the cursor blinking in the text area.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// SetSize updates the layout width and height.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	inner := width - 6
	if inner < 20 {
		inner = 20
	}
	m.text.SetWidth(inner)
	m.url.Width = inner - lipgloss.Width(m.url.Prompt) - 1
	m.bar.Width = min(inner, 60)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		return m.handleTick(msg)

	case ExtractedMsg:
		return m.handleExtracted(msg)

	case CheckedMsg:
		return m.handleChecked(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other input-internal messages.
	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.alert != "" {
		m.alert = ""
		return m, nil
	}

	if msg.String() == "esc" {
		return m.Cancel()
	}

	switch m.step {
	case StepReviewing:
		return m.handleReviewKey(msg)
	case StepExtracting, StepConfirming:
		return m, nil
	}

	switch msg.String() {
	case "ctrl+s":
		return m.Submit()
	case "tab", "shift+tab":
		return m.toggleFocus()
	}
	return m.updateInputs(msg)
}

func (m Model) handleReviewKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "enter", "y":
		return m.Confirm()
	case "d", "x", "delete":
		if c := m.Selected(); c != nil {
			m = m.RemoveClaim(c)
		}
		return m, nil
	case "j", "down":
		if m.cursor < m.pager.ItemsOnPage()-1 {
			m.cursor++
		}
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if m.pager.HandleKey(key) {
		m.cursor = 0
	}
	return m, nil
}

func (m Model) updateInputs(msg tea.Msg) (Model, tea.Cmd) {
	if m.step != StepIdle && m.step != StepDone {
		return m, nil
	}
	var cmd tea.Cmd
	switch m.focus {
	case focusText:
		m.text, cmd = m.text.Update(msg)
	case focusURL:
		m.url, cmd = m.url.Update(msg)
	}
	return m, cmd
}

func (m Model) toggleFocus() (Model, tea.Cmd) {
	if m.focus == focusText {
		m.focus = focusURL
		m.text.Blur()
		return m, m.url.Focus()
	}
	m.focus = focusText
	m.url.Blur()
	return m, m.text.Focus()
}

// Submit validates the inputs and starts claim extraction.
func (m Model) Submit() (Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	text, url := m.inputs()
	if text == "" && url == "" {
		m.alert = alertEmptyInput
		m.events.Emit(otel.Event{
			Level: otel.LevelWarn,
			Kind:  otel.KindValidation,
			Comp:  "form",
			Msg:   factcheck.NewValidationError(factcheck.OpExtract, "empty input").Error(),
		})
		return m, nil
	}

	m.preview = false
	m.claims = nil
	m.cursor = 0
	m.pager.Reset(0)
	m.progress = 0
	m.loading = true
	m.step = StepExtracting
	m.attempt = uuid.NewString()

	m.events.Emit(otel.Event{
		Level:   otel.LevelInfo,
		Kind:    otel.KindExtractStart,
		Comp:    "form",
		Attempt: m.attempt,
	})

	return m, tea.Batch(
		m.startTicker(PhaseExtract),
		m.spinner.Tick,
		extractCmd(m.backend, m.attempt, factcheck.NewExtractRequest(text, url)),
	)
}

func (m Model) handleExtracted(msg ExtractedMsg) (Model, tea.Cmd) {
	if msg.Attempt != m.attempt || m.step != StepExtracting {
		m.emitStale(PhaseExtract, msg.Attempt)
		return m, nil
	}

	// Extraction settles back to zero progress on every path.
	m.stopTicker(PhaseExtract)
	m.attempt = ""
	m.loading = false
	m.progress = 0

	if msg.Err != nil {
		m.step = StepIdle
		m.alert = alertExtractFailed
		logging.Error("claim extraction failed", "err", msg.Err, "code", factcheck.Code(msg.Err))
		m.events.Emit(otel.Event{
			Level:   otel.LevelError,
			Kind:    otel.KindExtractError,
			Comp:    "form",
			Attempt: msg.Attempt,
			Dur:     msg.Dur,
			Status:  statusOf(msg.Err),
			Err:     msg.Err.Error(),
		})
		return m, nil
	}

	text, url := m.inputs()
	m.original = text
	if m.original == "" {
		m.original = url
	}

	if len(msg.Claims) == 0 {
		m.step = StepIdle
		m.alert = alertNoClaims
		m.events.Emit(otel.Event{
			Level:   otel.LevelWarn,
			Kind:    otel.KindExtractEmpty,
			Comp:    "form",
			Attempt: msg.Attempt,
			Dur:     msg.Dur,
			Msg:     factcheck.NewEmptyResultError().Error(),
		})
		return m, nil
	}

	m.claims = make([]*factcheck.Claim, len(msg.Claims))
	for i := range msg.Claims {
		c := msg.Claims[i]
		m.claims[i] = &c
	}
	m.pager.Reset(len(m.claims))
	m.cursor = 0
	m.preview = true
	m.step = StepReviewing

	m.events.Emit(otel.Event{
		Level:   otel.LevelInfo,
		Kind:    otel.KindExtractComplete,
		Comp:    "form",
		Attempt: msg.Attempt,
		Dur:     msg.Dur,
		Count:   len(m.claims),
	})
	return m, nil
}

// RemoveClaim drops c from the working set. Only the exact claim is removed,
// even if another claim has the same text and tag.
func (m Model) RemoveClaim(c *factcheck.Claim) Model {
	kept := make([]*factcheck.Claim, 0, len(m.claims))
	removed := false
	for _, existing := range m.claims {
		if existing == c {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	if !removed {
		return m
	}

	m.claims = kept
	m.pager.SetLength(len(kept))
	m.clampCursor()

	m.events.Emit(otel.Event{
		Level: otel.LevelInfo,
		Kind:  otel.KindClaimRemove,
		Comp:  "form",
		Count: len(kept),
	})
	return m
}

// Confirm submits the remaining claims for verification.
func (m Model) Confirm() (Model, tea.Cmd) {
	if m.loading || m.step != StepReviewing {
		return m, nil
	}
	if len(m.claims) == 0 {
		m.alert = alertNoneSelected
		m.events.Emit(otel.Event{
			Level: otel.LevelWarn,
			Kind:  otel.KindValidation,
			Comp:  "form",
			Msg:   factcheck.NewValidationError(factcheck.OpCheck, "no claims selected").Error(),
		})
		return m, nil
	}

	text, url := m.inputs()
	req := factcheck.NewCheckRequest(text, url, m.Claims())

	m.preview = false
	m.loading = true
	m.step = StepConfirming
	m.progress = 0
	m.attempt = uuid.NewString()

	m.events.Emit(otel.Event{
		Level:   otel.LevelInfo,
		Kind:    otel.KindCheckStart,
		Comp:    "form",
		Attempt: m.attempt,
		Count:   len(req.Claims),
	})

	return m, tea.Batch(
		m.startTicker(PhaseCheck),
		m.spinner.Tick,
		checkCmd(m.backend, m.attempt, req),
	)
}

func (m Model) handleChecked(msg CheckedMsg) (Model, tea.Cmd) {
	if msg.Attempt != m.attempt || m.step != StepConfirming {
		m.emitStale(PhaseCheck, msg.Attempt)
		return m, nil
	}

	m.stopTicker(PhaseCheck)
	m.attempt = ""
	m.loading = false

	if msg.Err != nil || msg.Results == nil {
		err := msg.Err
		if err == nil {
			err = factcheck.NewTransportError(factcheck.OpCheck, 0, "empty response", nil)
		}
		m.progress = 0
		m.step = StepIdle
		m.alert = alertCheckFailed
		logging.Error("fact check failed", "err", err, "code", factcheck.Code(err))
		m.events.Emit(otel.Event{
			Level:   otel.LevelError,
			Kind:    otel.KindCheckError,
			Comp:    "form",
			Attempt: msg.Attempt,
			Dur:     msg.Dur,
			Status:  statusOf(err),
			Err:     err.Error(),
		})
		return m, nil
	}

	m.progress = progressDone
	m.step = StepDone

	m.events.Emit(otel.Event{
		Level:   otel.LevelInfo,
		Kind:    otel.KindCheckComplete,
		Comp:    "form",
		Attempt: msg.Attempt,
		Dur:     msg.Dur,
		Count:   len(msg.Results.AllSources()),
		Extra:   map[string]any{"is_fact": msg.Results.IsFact, "confidence": msg.Results.Confidence},
	})

	results := msg.Results
	return m, func() tea.Msg { return ResultsReadyMsg{Results: results} }
}

// Cancel resets the form to its initial state from any step. A request that
// is still in flight is not aborted; its response arrives stale and is dropped.
func (m Model) Cancel() (Model, tea.Cmd) {
	if m.attempt != "" {
		m.events.Emit(otel.Event{
			Level:   otel.LevelInfo,
			Kind:    otel.KindCancel,
			Comp:    "form",
			Attempt: m.attempt,
			Msg:     m.step.String(),
		})
	}

	m.stopTicker(PhaseExtract)
	m.stopTicker(PhaseCheck)
	m.attempt = ""

	m.text.Reset()
	m.url.Reset()
	m.claims = nil
	m.original = ""
	m.preview = false
	m.progress = 0
	m.step = StepIdle
	m.pager.Reset(0)
	m.cursor = 0
	m.loading = false

	m.focus = focusText
	m.url.Blur()
	return m, m.text.Focus()
}

// startTicker arms the ticker for phase and returns its first tick.
func (m *Model) startTicker(phase Phase) tea.Cmd {
	*m.ticker(phase) = m.attempt
	return m.tick(phase, m.attempt)
}

// stopTicker disarms the ticker for phase. The pending tick is dropped when
// it arrives.
func (m *Model) stopTicker(phase Phase) {
	*m.ticker(phase) = ""
}

func (m *Model) ticker(phase Phase) *string {
	if phase == PhaseCheck {
		return &m.checkTicker
	}
	return &m.extractTicker
}

func (m Model) tick(phase Phase, attempt string) tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return TickMsg{Phase: phase, Attempt: attempt}
	})
}

func (m Model) handleTick(msg TickMsg) (Model, tea.Cmd) {
	if msg.Attempt == "" || msg.Attempt != *m.ticker(msg.Phase) {
		return m, nil
	}
	if m.progress < progressCeiling {
		m.progress += progressStep
	}
	return m, m.tick(msg.Phase, msg.Attempt)
}

func (m *Model) clampCursor() {
	n := m.pager.ItemsOnPage()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) emitStale(phase Phase, attempt string) {
	m.events.Emit(otel.Event{
		Level:   otel.LevelDebug,
		Kind:    otel.KindStaleResponse,
		Comp:    "form",
		Attempt: attempt,
		Msg:     string(phase),
	})
}

func (m Model) inputs() (text, url string) {
	return strings.TrimSpace(m.text.Value()), strings.TrimSpace(m.url.Value())
}

func statusOf(err error) int {
	var fe *factcheck.Error
	if errors.As(err, &fe) {
		return fe.StatusCode
	}
	return 0
}

func extractCmd(b Backend, attempt string, req factcheck.ExtractRequest) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		claims, err := b.ExtractClaims(context.Background(), req)
		return ExtractedMsg{Attempt: attempt, Claims: claims, Err: err, Dur: time.Since(start)}
	}
}

func checkCmd(b Backend, attempt string, req factcheck.CheckRequest) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		results, err := b.Check(context.Background(), req)
		return CheckedMsg{Attempt: attempt, Results: results, Err: err, Dur: time.Since(start)}
	}
}

// SetInput replaces the text and URL fields.
func (m *Model) SetInput(text, url string) {
	m.text.SetValue(text)
	m.url.SetValue(url)
}

// Claims returns a copy of the working set in display order.
func (m Model) Claims() []factcheck.Claim {
	out := make([]factcheck.Claim, len(m.claims))
	for i, c := range m.claims {
		out[i] = *c
	}
	return out
}

// ClaimRefs returns the working set itself, for identity-based removal.
func (m Model) ClaimRefs() []*factcheck.Claim { return m.claims }

// Selected returns the highlighted claim in the review list.
func (m Model) Selected() *factcheck.Claim {
	page := paging.Slice(m.pager, m.claims)
	if m.cursor < 0 || m.cursor >= len(page) {
		return nil
	}
	return page[m.cursor]
}

func (m Model) Step() Step           { return m.step }
func (m Model) Loading() bool        { return m.loading }
func (m Model) Progress() int        { return m.progress }
func (m Model) PreviewVisible() bool { return m.preview }
func (m Model) Alert() string        { return m.alert }
func (m Model) Original() string     { return m.original }
func (m Model) Pager() paging.Pager  { return m.pager }
func (m Model) Attempt() string      { return m.attempt }

// TickerActive reports whether the progress ticker for p is running.
func (m Model) TickerActive(p Phase) bool { return *m.ticker(p) != "" }
