package form

import (
	"time"

	"github.com/abelbrown/factguard/internal/factcheck"
)

// Phase names one of the two request phases. Each has its own progress ticker.
type Phase string

const (
	PhaseExtract Phase = "extract"
	PhaseCheck   Phase = "check"
)

// ExtractedMsg is sent when /extract_claims returns.
type ExtractedMsg struct {
	Attempt string
	Claims  []factcheck.Claim
	Err     error
	Dur     time.Duration
}

// CheckedMsg is sent when /check returns.
type CheckedMsg struct {
	Attempt string
	Results *factcheck.Results
	Err     error
	Dur     time.Duration
}

// TickMsg advances the simulated progress of one phase. Ticks for an attempt
// that is no longer active are dropped and not rescheduled.
type TickMsg struct {
	Phase   Phase
	Attempt string
}

// ResultsReadyMsg hands a completed verdict to whoever displays results.
// It replaces any previous results wholesale.
type ResultsReadyMsg struct {
	Results *factcheck.Results
}
