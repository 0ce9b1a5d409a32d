// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package correlate

import (
	"context"

	"github.com/tracecorrelate/spanner/pkg/rule"
	"github.com/tracecorrelate/spanner/pkg/telemetry"
	"github.com/tracecorrelate/spanner/pkg/trace"
)

// Engine is the top-level driver: it owns one RuleContext per configured
// rule, in order, sharing a single output Sink, and walks an input
// sequence once in increasing index order.
type Engine struct {
	rules   []rule.Rule
	diag    Diagnostics
	metrics telemetry.MetricsSink
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithDiagnostics routes every RuleContext's non-fatal notices to diag.
func WithDiagnostics(diag Diagnostics) Option {
	return func(e *Engine) { e.diag = diag }
}

// WithMetrics reports this engine's per-run counters (events processed,
// spans emitted, match failures) to sink after every Run.
func WithMetrics(sink telemetry.MetricsSink) Option {
	return func(e *Engine) { e.metrics = sink }
}

// NewEngine returns an Engine that will run the given rules, in order. Rule
// order is significant and caller-supplied: it is the only way to express
// "try this specialization before the fallback".
func NewEngine(rules []rule.Rule, opts ...Option) *Engine {
	e := &Engine{rules: rules}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run performs one pass over events and returns the finalized span output.
// It returns an *InvariantError, never partial output, if events is not
// sorted by Start non-decreasing - the one invariant this package chooses
// to validate per §7.2, since a violation here would otherwise silently
// corrupt every rule's stack ordering.
//
// ctx is accepted for the conventional reason any blocking entry point
// takes one, but Run never inspects ctx.Err(): there are no timeouts and
// no cancellation (spec §5) - once started, a run always proceeds to
// completion over every event, even if the caller's context is already
// canceled when Run is called.
//
// Within one pass, rules are tried in list order for every event; a
// rule's StopBehavior threshold can only suppress rules listed after it,
// never ones listed before it, so list order is part of a rule set's
// meaning (see RuleContext.ProcessEvent).
func (e *Engine) Run(ctx context.Context, events trace.Sequence) (*trace.Output, error) {
	if err := validateMonotonic(events); err != nil {
		return nil, err
	}

	sink := trace.NewSink()
	contexts := make([]*RuleContext, len(e.rules))
	for i, r := range e.rules {
		contexts[i] = NewRuleContext(r, sink, e.diag)
	}

	for i := 0; i < events.Len(); i++ {
		for _, rc := range contexts {
			if rc.ProcessEvent(events, i) == Stop {
				break
			}
		}
	}

	out := sink.Finalize()
	e.reportMetrics(events, contexts, out)
	return out, nil
}

func (e *Engine) reportMetrics(events trace.Sequence, contexts []*RuleContext, out *trace.Output) {
	if e.metrics == nil {
		return
	}
	m := telemetry.Metrics{
		EventsProcessed: int64(events.Len()),
		SpansEmitted:    int64(out.Len()),
	}
	for _, rc := range contexts {
		m.MatchFailures += rc.matchFailures + rc.pendingStarts()
	}
	m.Report(e.metrics)
}

func validateMonotonic(events trace.Sequence) error {
	var prev int64
	for i := 0; i < events.Len(); i++ {
		start := events.At(i).Start
		if i > 0 && start < prev {
			return &InvariantError{Reason: "input events are not sorted by start timestamp non-decreasing"}
		}
		prev = start
	}
	return nil
}
