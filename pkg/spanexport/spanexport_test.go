// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spanexport

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	tr "github.com/tracecorrelate/spanner/pkg/trace"
)

type capturingExporter struct {
	spans []sdktrace.ReadOnlySpan
}

func (e *capturingExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	e.spans = append(e.spans, spans...)
	return nil
}

func (e *capturingExporter) Shutdown(context.Context) error { return nil }

func mustSink(t *testing.T, spans ...tr.Event) *tr.Output {
	t.Helper()
	sink := tr.NewSink()
	for _, s := range spans {
		sink.Append(s)
	}
	return sink.Finalize()
}

func TestExportEmitsOneSpanPerInputSpan(t *testing.T) {
	exp := &capturingExporter{}
	bsp := sdktrace.NewSimpleSpanProcessor(exp)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bsp))
	defer tp.Shutdown(context.Background())

	out := mustSink(t,
		tr.Event{Name: "A", Process: "P", Thread: "T", Start: 10, End: 40},
		tr.Event{Name: "B", Process: "P", Thread: "T", Start: 20, End: 30},
	)

	Export(context.Background(), tp, "spanexport_test", out)

	if len(exp.spans) != 2 {
		t.Fatalf("exported %d spans, want 2", len(exp.spans))
	}
}

func TestExportNestsContainedSpans(t *testing.T) {
	exp := &capturingExporter{}
	bsp := sdktrace.NewSimpleSpanProcessor(exp)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bsp))
	defer tp.Shutdown(context.Background())

	// "inner" (20-30) is contained within "outer" (10-40) on the same
	// process/thread, so it should be exported as outer's child.
	out := mustSink(t,
		tr.Event{Name: "inner", Process: "P", Thread: "T", Start: 20, End: 30},
		tr.Event{Name: "outer", Process: "P", Thread: "T", Start: 10, End: 40},
	)

	Export(context.Background(), tp, "spanexport_test", out)

	var outer, inner sdktrace.ReadOnlySpan
	for _, s := range exp.spans {
		switch s.Name() {
		case "outer":
			outer = s
		case "inner":
			inner = s
		}
	}
	if outer == nil || inner == nil {
		t.Fatalf("expected both outer and inner spans to be exported, got %d spans", len(exp.spans))
	}
	if inner.Parent().SpanID() != outer.SpanContext().SpanID() {
		t.Errorf("inner span's parent = %v, want outer's span ID %v", inner.Parent().SpanID(), outer.SpanContext().SpanID())
	}
}
