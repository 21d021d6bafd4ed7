package elimination

import (
	"fmt"
	"io"
	"strings"
)

// EventKind classifies a trace event.
type EventKind int

const (
	// EventRule is emitted once per high-level rule call, after it completes.
	EventRule EventKind = iota
	// EventUnlink is emitted for every edge the engine removes.
	EventUnlink
	// EventAssert is emitted when an ordering rule registers an assertion.
	EventAssert
	// EventSatisfied is emitted when an assertion is deregistered.
	EventSatisfied
	// EventReset is emitted by Reset.
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventRule:
		return "rule"
	case EventUnlink:
		return "unlink"
	case EventAssert:
		return "assert"
	case EventSatisfied:
		return "satisfied"
	case EventReset:
		return "reset"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one line of diagnostic output. Items are already formatted as
// (category, label) pairs.
type Event struct {
	Kind    EventKind
	Op      string
	Items   []string
	Detail  string
	Removed int
	Edges   int
}

func (e Event) String() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Op != "" {
		b.WriteString(" ")
		b.WriteString(e.Op)
	}
	if len(e.Items) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(e.Items, " "))
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Kind == EventRule || e.Kind == EventReset {
		fmt.Fprintf(&b, " (removed=%d edges=%d)", e.Removed, e.Edges)
	}
	return b.String()
}

// Tracer receives diagnostic events. Tracing carries no semantics; a
// Solver behaves identically with any tracer attached.
type Tracer interface {
	Trace(e Event)
}

// DefaultTracer discards every event.
type DefaultTracer struct{}

func (DefaultTracer) Trace(_ Event) {
}

// LoggingTracer writes one line per event to Writer.
type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(e Event) {
	fmt.Fprintln(t.Writer, e.String())
}
