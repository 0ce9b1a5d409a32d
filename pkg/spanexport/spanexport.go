// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package spanexport converts a finalized trace.Output into spans emitted
// through an OpenTelemetry TracerProvider, so a host can forward the
// engine's synthesized spans into any OTel-compatible backend instead of
// (or alongside) a table-projection stage.
//
// It is grounded on the teacher's event/otel/tracer.go, which bridges the
// event package's own Start/End event pairs into otel's trace.Tracer API
// using a map keyed by event ID to remember each open span's context.
// This package cannot reuse that keying scheme directly: trace.Output's
// spans carry no event-ID parent links, only timestamps, since a
// correlation engine's output format (spec.md §3) has no parent field.
// Instead it reconstructs nesting the way a flame-graph builder does: a
// span's OTel parent is the innermost span with the same process and
// thread that is still open at the child's start. Only the start is
// checked: a span that overlaps a parent's end without being contained in
// it is nested under that parent just the same.
package spanexport

import (
	"context"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	tr "github.com/tracecorrelate/spanner/pkg/trace"
)

// sinceOrigin converts a trace-origin-relative nanosecond timestamp into a
// time.Time so it can be passed to OTel's WithTimestamp span options. The
// trace origin is treated as the Unix epoch: OTel backends need an
// absolute time, and the engine's input never carries a real wall-clock
// origin to anchor to, so this is a deliberate, documented simplification
// rather than an attempt at wall-clock accuracy.
func sinceOrigin(ns int64) time.Time { return time.Unix(0, ns) }

func attrString(key, value string) attribute.KeyValue { return attribute.String(key, value) }

// Export replays every span in out through tracer, in Start order,
// reconstructing a parent/child hierarchy per (process, thread) from which
// spans are still open at each span's start, and returns once every span has been started and
// ended. instrumentationName identifies this module to the OTel backend.
func Export(ctx context.Context, tp trace.TracerProvider, instrumentationName string, out *tr.Output) {
	tracer := tp.Tracer(instrumentationName)
	spans := orderedByStart(out)

	type openSpan struct {
		end int64
		ctx context.Context
	}
	stacks := map[[2]string][]openSpan{}

	for _, s := range spans {
		key := [2]string{s.Process, s.Thread}
		stack := stacks[key]
		for len(stack) > 0 && stack[len(stack)-1].end <= s.Start {
			stack = stack[:len(stack)-1]
		}
		parentCtx := ctx
		if len(stack) > 0 {
			parentCtx = stack[len(stack)-1].ctx
		}

		spanCtx, otelSpan := tracer.Start(parentCtx, s.Name, trace.WithTimestamp(sinceOrigin(s.Start)))
		setAttributes(otelSpan, s)
		stack = append(stack, openSpan{end: s.End, ctx: spanCtx})
		stacks[key] = stack

		// The span is already finalized (start and end are both known),
		// so it is ended immediately after being started - there is no
		// "live" span to hold open the way a real-time tracer would.
		otelSpan.End(trace.WithTimestamp(sinceOrigin(s.End)))
	}
}

func setAttributes(span trace.Span, s tr.Event) {
	span.SetAttributes(
		attrString("process", s.Process),
		attrString("thread", s.Thread),
		attrString("category", s.Category),
		attrString("type", s.Type),
	)
	for i, k := range s.ArgKeys {
		span.SetAttributes(attrString("arg."+k, s.ArgValues[i]))
	}
}

func orderedByStart(out *tr.Output) []tr.Event {
	spans := out.All()
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		// wider intervals (later end) sort first so an outer span is
		// opened before an inner one that starts at the same instant.
		return spans[i].End > spans[j].End
	})
	return spans
}
