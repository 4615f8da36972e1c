package otel

// The drain goroutine is the only reader of l.ch and the only writer to l.w.
// l.mu guards the ring pointer alone; the ring has its own lock, and drain
// releases l.mu before pushing so the two are never held together.

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// queueSize is the capacity of the async write channel.
const queueSize = 1024

type queued struct {
	line []byte
	ev   Event
}

// Logger serializes events as JSONL on a background goroutine.
// A nil *Logger is valid and discards everything, so components can take
// one as an optional dependency.
type Logger struct {
	mu        sync.Mutex
	ring      *RingBuffer
	sessionID string
	ch        chan queued
	w         io.Writer
	dropped   atomic.Uint64
	closed    atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
}

// NewLogger starts a Logger writing to w. Call Close to flush.
func NewLogger(w io.Writer) *Logger {
	l := &Logger{
		sessionID: uuid.NewString(),
		ch:        make(chan queued, queueSize),
		w:         w,
		done:      make(chan struct{}),
	}
	go l.drain()
	return l
}

// NewNullLogger returns a Logger that discards output but still feeds an
// attached ring buffer.
func NewNullLogger() *Logger {
	return NewLogger(io.Discard)
}

func (l *Logger) drain() {
	defer close(l.done)
	for q := range l.ch {
		if _, err := l.w.Write(q.line); err != nil {
			l.dropped.Add(1)
		}

		l.mu.Lock()
		ring := l.ring
		l.mu.Unlock()

		if ring != nil {
			ring.Push(q.ev)
		}
	}
}

// SessionID identifies this run of the client in every event.
func (l *Logger) SessionID() string {
	if l == nil {
		return ""
	}
	return l.sessionID
}

// Emit queues an event. Never blocks: when the queue is full or the logger
// is closed the event is counted as dropped.
func (l *Logger) Emit(e Event) {
	if l == nil {
		return
	}
	// Close can win the race between the closed check and the send.
	defer func() {
		if recover() != nil {
			l.dropped.Add(1)
		}
	}()

	if l.closed.Load() {
		l.dropped.Add(1)
		return
	}

	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	e.SessionID = l.sessionID

	line, err := json.Marshal(e)
	if err != nil {
		l.dropped.Add(1)
		return
	}
	line = append(line, '\n')

	select {
	case l.ch <- queued{line: line, ev: e}:
	default:
		l.dropped.Add(1)
	}
}

// Info emits an info-level event.
func (l *Logger) Info(kind EventKind, comp, msg string) {
	l.Emit(Event{Level: LevelInfo, Kind: kind, Comp: comp, Msg: msg})
}

// Warn emits a warn-level event.
func (l *Logger) Warn(kind EventKind, comp, msg string) {
	l.Emit(Event{Level: LevelWarn, Kind: kind, Comp: comp, Msg: msg})
}

// Error emits an error-level event. A nil err is logged as an empty string.
func (l *Logger) Error(kind EventKind, comp string, err error) {
	var s string
	if err != nil {
		s = err.Error()
	}
	l.Emit(Event{Level: LevelError, Kind: kind, Comp: comp, Err: s})
}

// SetRingBuffer attaches a ring buffer for the debug overlay.
func (l *Logger) SetRingBuffer(ring *RingBuffer) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ring = ring
}

// Dropped returns how many events never made it to the writer.
func (l *Logger) Dropped() uint64 {
	if l == nil {
		return 0
	}
	return l.dropped.Load()
}

// Close drains pending events and stops the writer goroutine. Emit calls
// racing with Close are dropped, not panicked.
func (l *Logger) Close() {
	if l == nil {
		return
	}
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.ch)
		<-l.done

		if d := l.dropped.Load(); d > 0 {
			fmt.Fprintf(os.Stderr, "factguard: %d events dropped during session %s\n", d, l.sessionID)
		}
	})
}
