// Package otel records what the client did as typed events.
//
// Events are serialized as JSONL by an asynchronous Logger and, optionally,
// kept in a RingBuffer that the debug overlay reads from. This is the
// diagnostic channel: transport failures land here in full while the user
// only sees a generic retry message.
package otel

import (
	"encoding/json"
	"time"
)

// Level defines event severity for filtering.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind identifies the category of an event.
// Dot-delimited: "<phase>.<action>".
type EventKind string

const (
	// Extraction phase
	KindExtractStart    EventKind = "extract.start"
	KindExtractComplete EventKind = "extract.complete"
	KindExtractEmpty    EventKind = "extract.empty"
	KindExtractError    EventKind = "extract.error"

	// Verification phase
	KindCheckStart    EventKind = "check.start"
	KindCheckComplete EventKind = "check.complete"
	KindCheckError    EventKind = "check.error"

	// A response arrived for an attempt the user already abandoned.
	KindStaleResponse EventKind = "check.stale"

	// Form events
	KindValidation  EventKind = "form.validation"
	KindClaimRemove EventKind = "form.remove"
	KindCancel      EventKind = "form.cancel"

	// UI events
	KindKeyPress EventKind = "ui.key"

	// System events
	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"
	KindError    EventKind = "sys.error"

	// Trace events, only emitted when FACTGUARD_TRACE is set
	KindMsgReceived EventKind = "trace.msg_received"
)

// Event is a single observability record. Every field except Kind and Time
// is optional.
type Event struct {
	Time      time.Time      `json:"t"`
	Level     Level          `json:"level,omitempty"`
	Kind      EventKind      `json:"kind"`
	Comp      string         `json:"comp,omitempty"` // "form", "client", "ui", "main"
	SessionID string         `json:"session_id,omitempty"`
	Attempt   string         `json:"attempt,omitempty"` // one extract or check round trip
	Dur       time.Duration  `json:"-"`
	DurMs     float64        `json:"dur_ms,omitempty"`
	Count     int            `json:"count,omitempty"` // claims or sources involved
	Status    int            `json:"status,omitempty"`
	Err       string         `json:"err,omitempty"`
	Msg       string         `json:"msg,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// MarshalJSON converts Dur to DurMs on the way out.
func (e Event) MarshalJSON() ([]byte, error) {
	type plain Event
	p := plain(e)
	if e.Dur > 0 {
		p.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(p)
}

// IsError reports whether the event describes a failure.
func (e Event) IsError() bool {
	return e.Level == LevelError || e.Err != ""
}
