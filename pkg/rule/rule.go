// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rule defines the Rule strategy the correlation engine dispatches
// against each input event, and its default, regex/opcode-configurable
// implementation.
package rule

import "github.com/tracecorrelate/spanner/pkg/trace"

// Action is the closed set of classifications Rule.Examine can return for
// one event. It drives an exhaustive dispatch in correlate.RuleContext -
// a tagged variant, not a class hierarchy, per the strategy shape this
// package follows throughout.
type Action int

const (
	// None means the event is irrelevant to this rule. No key is returned.
	None Action = iota
	// Ignore means the event is recognized but intentionally skipped.
	Ignore
	// Push means the event is a start; push its index for the key.
	Push
	// Replace means the event is a start in a non-recursive rule: pop and
	// discard any existing top for the key, then push this index.
	Replace
	// PopDiscard means the event is a stop that removes the top start
	// without emitting a span.
	PopDiscard
	// PopProcess means the event is a stop to be paired with the top start,
	// emitting a span.
	PopProcess
)

// String implements fmt.Stringer for readable test failures and logs.
func (a Action) String() string {
	switch a {
	case None:
		return "None"
	case Ignore:
		return "Ignore"
	case Push:
		return "Push"
	case Replace:
		return "Replace"
	case PopDiscard:
		return "PopDiscard"
	case PopProcess:
		return "PopProcess"
	default:
		return "Action(?)"
	}
}

// StopBehavior controls whether, after this rule acts on an event,
// subsequent rules in the driver's list also see that event. The four
// values form a strict total order used by RuleContext's truth table:
// OnMatch < OnAction < OnProcess < Never.
type StopBehavior int

const (
	// OnMatch stops propagation whenever this rule recognized the event at
	// all (any action other than None).
	OnMatch StopBehavior = iota
	// OnAction stops propagation on Push, Replace, PopDiscard, or a paired
	// PopProcess, but lets later rules see an Ignore or an unmatched
	// PopProcess.
	OnAction
	// OnProcess stops propagation only when a PopProcess actually paired
	// and emitted a span.
	OnProcess
	// Never never stops propagation; every rule listed after this one sees
	// every event this rule sees.
	Never
)

// String implements fmt.Stringer.
func (sb StopBehavior) String() string {
	switch sb {
	case OnMatch:
		return "OnMatch"
	case OnAction:
		return "OnAction"
	case OnProcess:
		return "OnProcess"
	case Never:
		return "Never"
	default:
		return "StopBehavior(?)"
	}
}

// Looser reports whether sb is strictly looser (lets more events through)
// than other, using the fixed order OnMatch < OnAction < OnProcess < Never.
func (sb StopBehavior) Looser(other StopBehavior) bool { return sb > other }

// Rule is the strategy interface the engine dispatches against each event.
type Rule interface {
	// Examine classifies an event relative to this rule. When the action
	// requires a key (Push, Replace, PopDiscard, PopProcess), ok is true
	// and key is populated; for None and Ignore ok is false.
	Examine(e trace.Event) (action Action, key trace.EventKey, ok bool)

	// Process builds a span event from a matched start/stop pair. The
	// contract: span.Start == start.Start, span.End == stop.Start,
	// span.Duration() == stop.Start-start.Start, and span.Name is
	// start.Name with its trailing "_Start"/"_Stop" suffix removed.
	Process(start, stop trace.Event) trace.Event

	// StopBehavior reports this rule's propagation threshold.
	StopBehavior() StopBehavior
}
