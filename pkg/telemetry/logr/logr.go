// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logr is a logr.LogSink implementation backed by a
// telemetry.Logger, adapted from the teacher's event/adapter/logr, which
// does the same thing for the event package's own Event/Label pipe.
package logr

import (
	"github.com/go-logr/logr"

	"github.com/tracecorrelate/spanner/pkg/telemetry"
)

type sink struct {
	target  telemetry.Logger
	nameSep string
	name    string
	kv      []any
}

var _ logr.LogSink = (*sink)(nil)

// NewLogSink returns a logr.LogSink that forwards every record to target.
// nameSep joins successive WithName segments, matching logr's own naming
// convention.
func NewLogSink(target telemetry.Logger, nameSep string) logr.LogSink {
	return &sink{target: target, nameSep: nameSep}
}

// Init receives optional runtime information; this sink has no use for it.
func (s *sink) Init(logr.RuntimeInfo) {}

// Enabled reports whether this sink is active at the given verbosity
// level. The sink has no verbosity filtering of its own - that decision
// belongs to target - so it is always enabled.
func (s *sink) Enabled(int) bool { return true }

// Info logs a non-error message at the given verbosity level.
func (s *sink) Info(level int, msg string, keysAndValues ...interface{}) {
	kv := s.mergedKV(keysAndValues, "level", level)
	if s.name != "" {
		kv = append(kv, "logger", s.name)
	}
	s.target.Info(msg, kv...)
}

// Error logs an error alongside a message and key/value pairs.
func (s *sink) Error(err error, msg string, keysAndValues ...interface{}) {
	kv := s.mergedKV(keysAndValues, "error", err)
	if s.name != "" {
		kv = append(kv, "logger", s.name)
	}
	s.target.Error(msg, kv...)
}

func (s *sink) mergedKV(keysAndValues []interface{}, extraKey string, extraValue interface{}) []any {
	kv := make([]any, 0, len(s.kv)+len(keysAndValues)+2)
	kv = append(kv, s.kv...)
	kv = append(kv, keysAndValues...)
	kv = append(kv, extraKey, extraValue)
	return kv
}

// WithName returns a LogSink whose name has name appended, joined by
// nameSep, matching the teacher's successive-suffix behavior.
func (s *sink) WithName(name string) logr.LogSink {
	s2 := *s
	if s.name == "" {
		s2.name = name
	} else {
		s2.name = s.name + s.nameSep + name
	}
	return &s2
}

// WithValues returns a LogSink that always includes the given key/value
// pairs in every subsequent record.
func (s *sink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	s2 := *s
	s2.kv = append(append([]any(nil), s.kv...), keysAndValues...)
	return &s2
}
