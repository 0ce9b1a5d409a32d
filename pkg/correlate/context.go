// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package correlate

import (
	"github.com/tracecorrelate/spanner/pkg/rule"
	"github.com/tracecorrelate/spanner/pkg/trace"
)

// Verdict is what a RuleContext reports back to the driver after
// processing one event: whether later rules should still see it.
type Verdict int

const (
	// Continue lets later rules in the driver's list see this event.
	Continue Verdict = iota
	// Stop prevents later rules from seeing this event.
	Stop
)

// stack is a LIFO of input-sequence indices: pending starts not yet paired
// for one EventKey. Every index pushed is smaller than the index currently
// being processed, since the driver walks the sequence in increasing order.
type stack []int

func (s stack) empty() bool { return len(s) == 0 }

func (s stack) top() int { return s[len(s)-1] }

func (s stack) pop() stack { return s[:len(s)-1] }

// RuleContext wraps one Rule with the mutable per-key stack state a
// correlation run accumulates. Each RuleContext privately owns its stack
// map; it never reads another context's state, so multiple contexts can
// share one output Sink with no locking (see Engine).
type RuleContext struct {
	rule          rule.Rule
	sink          *trace.Sink
	stacks        map[trace.EventKey]stack
	diag          Diagnostics
	matchFailures int64
}

// Diagnostics receives non-fatal notices a RuleContext emits while running
// - currently one kind: a PopProcess with nothing to pair. Pending starts
// left open at end-of-run produce no notice; they are only counted in the
// engine's match-failure metric. These are never errors (spec §7.3): real
// traces truncate spans at both ends.
// A nil Diagnostics is valid and simply drops every notice.
type Diagnostics interface {
	Notice(msg string, kv ...any)
}

type noopDiagnostics struct{}

func (noopDiagnostics) Notice(string, ...any) {}

// NewRuleContext returns a RuleContext for rule r, appending matched spans
// to the shared sink. If diag is nil, notices are dropped.
func NewRuleContext(r rule.Rule, sink *trace.Sink, diag Diagnostics) *RuleContext {
	if diag == nil {
		diag = noopDiagnostics{}
	}
	return &RuleContext{
		rule:   r,
		sink:   sink,
		stacks: make(map[trace.EventKey]stack),
		diag:   diag,
	}
}

// ProcessEvent asks the wrapped rule to classify events[index], applies the
// action to the per-key stack, and returns whether later rules should still
// see this event.
func (c *RuleContext) ProcessEvent(events trace.Sequence, index int) Verdict {
	e := events.At(index)
	// ok is false for Ignore as well as None (Ignore carries no key), so
	// the action, not ok, decides whether the event is irrelevant.
	action, key, _ := c.rule.Examine(e)
	if action == rule.None {
		return Continue // None always continues
	}

	sb := c.rule.StopBehavior()

	switch action {
	case rule.Ignore:
		// OnMatch is the only threshold an Ignore ever crosses.
		if sb.Looser(rule.OnMatch) {
			return Continue
		}
		return Stop

	case rule.Push:
		c.push(key, index)
		return continueIf(sb.Looser(rule.OnAction))

	case rule.Replace:
		c.replace(key, index)
		return continueIf(sb.Looser(rule.OnAction))

	case rule.PopDiscard:
		c.popDiscard(key)
		return continueIf(sb.Looser(rule.OnAction))

	case rule.PopProcess:
		paired := c.popProcess(events, key, index)
		if paired {
			return continueIf(sb.Looser(rule.OnProcess))
		}
		// a PopProcess that found no pair behaves like an unmatched stop:
		// OnMatch is the threshold it crosses.
		c.matchFailures++
		c.diag.Notice("pop-process found no pending start", "index", index, "event", e.Name)
		return continueIf(sb.Looser(rule.OnMatch))
	}

	return Continue
}

func continueIf(cond bool) Verdict {
	if cond {
		return Continue
	}
	return Stop
}

func (c *RuleContext) push(key trace.EventKey, index int) {
	c.stacks[key] = append(c.stacks[key], index)
}

func (c *RuleContext) replace(key trace.EventKey, index int) {
	s := c.stacks[key]
	if !s.empty() {
		s = s.pop() // discard the existing top
	}
	c.stacks[key] = append(s, index)
}

func (c *RuleContext) popDiscard(key trace.EventKey) {
	s, found := c.stacks[key]
	if !found || s.empty() {
		return
	}
	s = s.pop()
	if s.empty() {
		delete(c.stacks, key)
	} else {
		c.stacks[key] = s
	}
}

// popProcess pops the matching start for key, if any, builds a span via the
// wrapped rule, and appends it to the sink. It reports whether a pair was
// found. This implements the spec's "pop one" interpretation of
// DoPopProcess (SPEC_FULL.md §6, decision 2): exactly one pending start is
// consumed per successful pairing, never two.
func (c *RuleContext) popProcess(events trace.Sequence, key trace.EventKey, index int) bool {
	s, found := c.stacks[key]
	if !found || s.empty() {
		return false
	}
	startIdx := s.top()
	s = s.pop()
	if s.empty() {
		delete(c.stacks, key)
	} else {
		c.stacks[key] = s
	}
	span := c.rule.Process(events.At(startIdx), events.At(index))
	c.sink.Append(span)
	return true
}

// pendingCount returns the number of keys still holding a non-empty stack,
// used by tests asserting the "empty stacks are pruned" invariant.
func (c *RuleContext) pendingCount() int { return len(c.stacks) }

// pendingStarts returns the total number of still-pending start indices
// across every key, counted at end-of-run as match failures: starts with
// no matching stop, per spec §7.3, are not errors but are worth reporting.
func (c *RuleContext) pendingStarts() int64 {
	var n int64
	for _, s := range c.stacks {
		n += int64(len(s))
	}
	return n
}
