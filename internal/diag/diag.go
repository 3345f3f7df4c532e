// Package diag implements the error channel (component C9): a fan-in of
// lexical, syntactic, and semantic diagnostics, reported with severity and
// span, that the core never aborts on.
package diag

import (
	"fmt"
	"sync/atomic"

	"github.com/anishon/cfront/internal/span"
)

// A Severity classifies a Diagnostic.
type Severity int

// The severities, in increasing order of urgency.
const (
	Note Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Note:
		return "note"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "severity(?)"
	}
}

// A Diagnostic is one reported lex, parse, or semantic problem.
type Diagnostic struct {
	Span     span.Span
	Severity Severity
	Kind     string // e.g. "lex/unknown-symbol", "parse/expect-but-found", "sema/redefined"
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s (%s)", d.Span, d.Severity, d.Message, d.Kind)
}

// DefaultCapacity is the bound used by NewChannel's zero-value caller.
// Chosen to match the lexer/parser token queue bound of spec.md §5.
const DefaultCapacity = 256

// A Channel is a bounded, multi-producer fan-in of Diagnostics. Emit backs
// up the reporting goroutine rather than dropping diagnostics, the same
// backpressure policy spec.md §5 specifies for the token queue.
type Channel struct {
	ch      chan Diagnostic
	hadErr  atomic.Bool
}

// NewChannel returns a Channel buffered to capacity diagnostics. A
// capacity of zero uses DefaultCapacity.
func NewChannel(capacity int) *Channel {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Channel{
		ch: make(chan Diagnostic, capacity),
	}
}

// Emit reports a Diagnostic. It may block if the channel is full.
func (c *Channel) Emit(d Diagnostic) {
	if d.Severity == Error {
		c.hadErr.Store(true)
	}
	c.ch <- d
}

// Errorf is a convenience wrapper building an Error-severity Diagnostic.
func (c *Channel) Errorf(s span.Span, kind, format string, args ...interface{}) {
	c.Emit(Diagnostic{Span: s, Severity: Error, Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// Warnf is a convenience wrapper building a Warning-severity Diagnostic.
func (c *Channel) Warnf(s span.Span, kind, format string, args ...interface{}) {
	c.Emit(Diagnostic{Span: s, Severity: Warning, Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// Close signals that no further Diagnostics will be emitted. The driver
// must call Close exactly once, after every producer goroutine has
// finished, then drain via Drain.
func (c *Channel) Close() {
	close(c.ch)
}

// Drain reads every Diagnostic until Close, in emission order. It is meant
// to be called once, by the driver, after parsing completes — the core
// itself never drains its own channel (spec.md §4.9).
func (c *Channel) Drain() []Diagnostic {
	var out []Diagnostic
	for d := range c.ch {
		out = append(out, d)
	}
	return out
}

// HadError reports whether any Error-severity Diagnostic has been emitted
// so far. This is the `had_error` latch of spec.md §7, letting the driver
// refuse downstream passes without draining the channel first.
func (c *Channel) HadError() bool {
	return c.hadErr.Load()
}
