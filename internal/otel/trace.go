package otel

import (
	"os"
	"sync/atomic"
)

var traceEnabled atomic.Bool

func init() {
	traceEnabled.Store(os.Getenv("FACTGUARD_TRACE") != "")
}

// TraceEnabled reports whether FACTGUARD_TRACE is set. When false, the UI
// skips building per-message trace events entirely.
func TraceEnabled() bool {
	return traceEnabled.Load()
}

// setTraceEnabled overrides the flag in tests.
func setTraceEnabled(v bool) {
	traceEnabled.Store(v)
}
