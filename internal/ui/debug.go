package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abelbrown/factguard/internal/otel"
)

// debugPanelChrome is the number of terminal lines consumed by DebugPanel's
// border (top + bottom = 2) and vertical padding (top + bottom = 2).
// Must be updated if DebugPanel style changes.
const debugPanelChrome = 4

// debugOverlay renders the debug panel showing request stats and recent events.
// Pure function with no side effects. Returns empty string if ring is nil.
func debugOverlay(ring *otel.RingBuffer, width, height int) string {
	if ring == nil {
		return ""
	}

	stats := ring.Stats()
	recent := ring.Last(20)

	var lines []string
	lines = append(lines, DebugHeaderStyle.Render("Request Stats"))
	lines = append(lines, fmt.Sprintf("  Extract:    %d started, %d complete, %d empty, %d errors",
		stats[otel.KindExtractStart], stats[otel.KindExtractComplete],
		stats[otel.KindExtractEmpty], stats[otel.KindExtractError]))
	lines = append(lines, fmt.Sprintf("  Check:      %d started, %d complete, %d errors",
		stats[otel.KindCheckStart], stats[otel.KindCheckComplete], stats[otel.KindCheckError]))
	lines = append(lines, fmt.Sprintf("  Form:       %d rejected, %d removed, %d cancelled, %d stale",
		stats[otel.KindValidation], stats[otel.KindClaimRemove],
		stats[otel.KindCancel], stats[otel.KindStaleResponse]))
	lines = append(lines, fmt.Sprintf("  Buffer:     %d / %d events", ring.Len(), ring.Cap()))
	lines = append(lines, "")

	lines = append(lines, DebugHeaderStyle.Render("Recent Events"))
	for _, e := range recent {
		line := fmt.Sprintf("  %6s  %-18s", formatAge(time.Since(e.Time)), string(e.Kind))
		if e.DurMs > 0 || e.Dur > 0 {
			d := e.Dur
			if d == 0 {
				d = time.Duration(e.DurMs * float64(time.Millisecond))
			}
			line += "  " + formatAge(d)
		}
		if e.Count > 0 {
			line += fmt.Sprintf("  n=%d", e.Count)
		}
		if e.Msg != "" {
			line += "  " + truncateRunes(e.Msg, 40)
		}
		if e.Err != "" {
			line += "  " + DebugErrorStyle.Render("ERR:"+truncateRunes(e.Err, 30))
		}
		if e.Attempt != "" {
			line += "  att:" + truncateRunes(e.Attempt, 8)
		}
		lines = append(lines, line)
	}

	// Truncate to fit terminal height (subtract chrome added by DebugPanel border/padding)
	maxHeight := height - debugPanelChrome
	if maxHeight < 1 {
		maxHeight = 1
	}
	if len(lines) > maxHeight {
		lines = lines[:maxHeight]
	}

	panelWidth := 96
	if panelWidth > width-4 {
		panelWidth = width - 4
	}
	if panelWidth < 20 {
		panelWidth = 20
	}

	return DebugPanel.Width(panelWidth).Render(strings.Join(lines, "\n"))
}

// formatAge formats a duration as a compact human string.
// Handles negative durations from clock skew by clamping to "0ms".
func formatAge(d time.Duration) string {
	if d < 0 {
		return "0ms"
	}
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
}

// truncateRunes shortens s to at most n runes, without an ellipsis.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// debugStatusBar renders the status bar for the debug overlay.
func debugStatusBar(width int) string {
	keys := StatusBarKey.Render("ctrl+d") + StatusBarText.Render(":close")
	return StatusBar.Width(width).Render("  [DEBUG]  " + keys)
}
