// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package telemetry

// MetricsSink receives the engine's own counters - events processed, spans
// emitted, match failures - through the same pipe diagnostics flow
// through, rather than a package-global counter. This recovers the
// teacher's event.Kind split between LogKind and MetricKind (event/common.go)
// applied to the engine's own observability instead of to user trace data:
// a host wires MetricsSink into whatever metrics backend it already has
// (Prometheus, OTel, a zap counter field) without this module picking one.
type MetricsSink interface {
	Count(name string, delta int64)
}

// Metrics are the three named counters Engine.Run maintains for one run.
type Metrics struct {
	EventsProcessed int64
	SpansEmitted    int64
	MatchFailures   int64
}

// Report delivers the final counter values to sink. A nil sink is valid
// and simply drops them, like Discard does for Logger.
func (m Metrics) Report(sink MetricsSink) {
	if sink == nil {
		return
	}
	sink.Count("events_processed", m.EventsProcessed)
	sink.Count("spans_emitted", m.SpansEmitted)
	sink.Count("match_failures", m.MatchFailures)
}

// loggerMetricsSink adapts a Logger into a MetricsSink by logging each
// counter at Info level, the simplest sink for a caller that only has a
// Logger and no metrics backend wired up yet.
type loggerMetricsSink struct{ logger Logger }

// NewLoggerMetricsSink returns a MetricsSink that reports counters through
// logger.Info, grounded on the teacher's DurationMetric/MetricKey pattern
// of carrying metric values as ordinary labeled events (event/common.go).
func NewLoggerMetricsSink(logger Logger) MetricsSink {
	return &loggerMetricsSink{logger: logger}
}

func (s *loggerMetricsSink) Count(name string, delta int64) {
	if s.logger != nil {
		s.logger.Info("metric", "name", name, "value", delta)
	}
}
