// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"strings"

	"github.com/go-logfmt/logfmt"
)

// Sink is an append-only ordered sequence of span events with a finalize
// operation. It is shared by every RuleContext in a single engine run but,
// per §5 of the correlation design, is mutated only by the single-threaded
// driver - Sink itself does no locking.
type Sink struct {
	spans     []Event
	finalized bool
}

// NewSink returns an empty, unfinalized Sink.
func NewSink() *Sink { return &Sink{} }

// Append adds a span event to the sink. It panics if the sink was already
// finalized: that can only happen from a driver bug, never from trace
// input, so it is not modeled as a returned error.
func (s *Sink) Append(span Event) {
	if s.finalized {
		panic("trace: Append called on a finalized Sink")
	}
	s.spans = append(s.spans, span)
}

// Finalize closes the sink for further writes and returns the read-only
// Output view. Calling Finalize twice is a no-op past the first call.
func (s *Sink) Finalize() *Output {
	s.finalized = true
	return &Output{spans: s.spans}
}

// Output is the finalized, read-only, by-index view of the spans a run
// produced. M (Len()) equals the number of successful PopProcess pairings
// across all rules.
type Output struct {
	spans []Event
}

// Len returns the number of spans in the output.
func (o *Output) Len() int { return len(o.spans) }

// At returns the span at position i, 0 <= i < Len().
func (o *Output) At(i int) Event { return o.spans[i] }

// All returns the spans in emission order. The returned slice is owned by
// the caller; Output never mutates it after returning.
func (o *Output) All() []Event {
	out := make([]Event, len(o.spans))
	copy(out, o.spans)
	return out
}

// String renders the output as a logfmt dump, one span per line, for
// debugging and for test failure messages.
func (o *Output) String() string {
	var b strings.Builder
	enc := logfmt.NewEncoder(&b)
	for _, s := range o.spans {
		enc.EncodeKeyvals(
			"name", s.Name,
			"process", s.Process,
			"thread", s.Thread,
			"start", s.Start,
			"end", s.End,
			"duration", s.Duration(),
		)
		enc.EndRecord()
	}
	return strings.TrimSuffix(b.String(), "\n")
}
