package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/abelbrown/factguard/internal/otel"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDebugOverlayNilRing(t *testing.T) {
	result := debugOverlay(nil, 80, 24)
	if result != "" {
		t.Errorf("debugOverlay(nil) should return empty string, got %q", result)
	}
}

func TestDebugOverlayRendersStats(t *testing.T) {
	ring := otel.NewRingBuffer(64)
	ring.Push(otel.Event{Kind: otel.KindExtractStart, Time: time.Now()})
	ring.Push(otel.Event{Kind: otel.KindExtractComplete, Time: time.Now()})
	ring.Push(otel.Event{Kind: otel.KindCheckStart, Time: time.Now()})
	ring.Push(otel.Event{Kind: otel.KindCheckError, Time: time.Now()})
	ring.Push(otel.Event{Kind: otel.KindStaleResponse, Time: time.Now()})

	result := debugOverlay(ring, 120, 40)

	if !strings.Contains(result, "Request Stats") {
		t.Error("overlay should contain 'Request Stats' header")
	}
	if !strings.Contains(result, "1 started, 1 complete, 0 empty, 0 errors") {
		t.Errorf("overlay should show extract stats, got:\n%s", result)
	}
	if !strings.Contains(result, "1 started, 0 complete, 1 errors") {
		t.Errorf("overlay should show check stats, got:\n%s", result)
	}
	if !strings.Contains(result, "1 stale") {
		t.Errorf("overlay should count stale responses, got:\n%s", result)
	}
	if !strings.Contains(result, "5 / 64 events") {
		t.Errorf("overlay should show buffer stats, got:\n%s", result)
	}
}

func TestDebugOverlayRecentEvents(t *testing.T) {
	ring := otel.NewRingBuffer(64)
	ring.Push(otel.Event{Kind: otel.KindExtractStart, Time: time.Now(), Msg: "hello world"})
	ring.Push(otel.Event{Kind: otel.KindCheckError, Time: time.Now(), Err: "timeout"})
	ring.Push(otel.Event{Kind: otel.KindCheckStart, Time: time.Now(), Attempt: "abcdef1234567890", Count: 3})

	result := debugOverlay(ring, 120, 40)

	if !strings.Contains(result, "Recent Events") {
		t.Error("overlay should contain 'Recent Events' header")
	}
	if !strings.Contains(result, "hello world") {
		t.Errorf("overlay should show event message, got:\n%s", result)
	}
	if !strings.Contains(result, "ERR:timeout") {
		t.Errorf("overlay should show error, got:\n%s", result)
	}
	if !strings.Contains(result, "att:abcdef12") || !strings.Contains(result, "n=3") {
		t.Errorf("overlay should show truncated attempt ID and count, got:\n%s", result)
	}
}

func TestDebugOverlayTruncation(t *testing.T) {
	ring := otel.NewRingBuffer(64)
	for i := 0; i < 30; i++ {
		ring.Push(otel.Event{Kind: otel.KindExtractStart, Time: time.Now()})
	}

	// Very small height should still render without panic
	result := debugOverlay(ring, 80, 10)
	if result == "" {
		t.Error("overlay should still render with small height")
	}

	lines := strings.Count(result, "\n")
	if lines > 20 { // generous bound accounting for lipgloss borders
		t.Errorf("overlay should be truncated, got %d lines", lines)
	}
}

func TestDebugToggle(t *testing.T) {
	ring := otel.NewRingBuffer(16)
	app := newTestApp(&stubBackend{}, ring)

	if app.debugVisible {
		t.Error("debug should be hidden initially")
	}

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	updated := model.(App)
	if !updated.debugVisible {
		t.Error("ctrl+d should show debug overlay")
	}

	view := updated.View()
	if !strings.Contains(view, "[DEBUG]") {
		t.Errorf("debug view should contain '[DEBUG]', got:\n%s", view)
	}

	// Keys other than esc and ctrl+d do not reach the form.
	model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	updated = model.(App)
	if updated.Form().Alert() != "" {
		t.Error("form should not see keys while the overlay is open")
	}

	model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyEsc})
	updated = model.(App)
	if updated.debugVisible {
		t.Error("esc should hide debug overlay")
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		dur  time.Duration
		want string
	}{
		{0, "0ms"},
		{50 * time.Millisecond, "50ms"},
		{999 * time.Millisecond, "999ms"},
		{1500 * time.Millisecond, "1.5s"},
		{30 * time.Second, "30.0s"},
		{90 * time.Second, "2m"}, // 1.5 minutes rounds to 2 with %.0f
		{5 * time.Minute, "5m"},
	}
	for _, tt := range tests {
		got := formatAge(tt.dur)
		if got != tt.want {
			t.Errorf("formatAge(%v) = %q, want %q", tt.dur, got, tt.want)
		}
	}
}

func TestFormatAgeNegative(t *testing.T) {
	got := formatAge(-5 * time.Second)
	if got != "0ms" {
		t.Errorf("formatAge(-5s) = %q, want \"0ms\"", got)
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("几乎不可能的事", 4); got != "几乎不可" {
		t.Errorf("truncateRunes = %q", got)
	}
	if got := truncateRunes("short", 10); got != "short" {
		t.Errorf("truncateRunes = %q", got)
	}
}
