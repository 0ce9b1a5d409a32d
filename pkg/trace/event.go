// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trace holds the data model shared by the rule and correlate
// packages: the input Event, its structural EventKey, and the finalized
// Output sequence of synthesized spans.
package trace

import "fmt"

// Event is an immutable record describing one trace event. Events are
// produced once by an upstream decoding stage and are read-only for the
// remainder of a correlation run.
type Event struct {
	Name     string
	Type     string
	Category string
	Process  string
	Thread   string
	Start    int64 // nanoseconds since trace origin
	End      int64 // equal to Start for instantaneous events
	ArgSetID uint64

	ArgKeys   []string
	ArgValues []string
}

// NewEvent validates and returns an Event. It is the only constructor:
// len(argKeys) must equal len(argValues), the invariant every other package
// in this module relies on without re-checking.
func NewEvent(name, typ, category, process, thread string, start, end int64, argSetID uint64, argKeys, argValues []string) (Event, error) {
	if len(argKeys) != len(argValues) {
		return Event{}, fmt.Errorf("trace: event %q has %d arg keys but %d arg values", name, len(argKeys), len(argValues))
	}
	return Event{
		Name:      name,
		Type:      typ,
		Category:  category,
		Process:   process,
		Thread:    thread,
		Start:     start,
		End:       end,
		ArgSetID:  argSetID,
		ArgKeys:   argKeys,
		ArgValues: argValues,
	}, nil
}

// Duration returns End-Start.
func (e Event) Duration() int64 { return e.End - e.Start }

// ArgValue returns the value for the first occurrence of name in ArgKeys,
// or the empty string if name does not appear.
func (e Event) ArgValue(name string) string {
	for i, k := range e.ArgKeys {
		if k == name {
			return e.ArgValues[i]
		}
	}
	return ""
}

// Opcode is a shorthand for the well-known "debug.OPCODE" argument, the
// alternative matching predicate rules may key on alongside a name regex.
const OpcodeArgKey = "debug.OPCODE"

// Opcode returns ArgValue(OpcodeArgKey).
func (e Event) Opcode() string { return e.ArgValue(OpcodeArgKey) }

// Sequence is a finalized, index-addressable run of input events. The
// upstream producer guarantees events are sorted by Start non-decreasing;
// the engine does not re-sort, and correlate.Engine.Run, the one place the
// guarantee is checked, rejects unsorted input at the start of every run.
type Sequence []Event

// Len returns the number of events in the sequence.
func (s Sequence) Len() int { return len(s) }

// At returns the event at index i. It panics if i is out of range, the same
// contract as a slice index: reading beyond the input count is an invariant
// violation (spec error class 2), not a recoverable condition.
func (s Sequence) At(i int) Event { return s[i] }
