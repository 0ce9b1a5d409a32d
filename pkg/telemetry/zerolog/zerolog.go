// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package zerolog adapts a telemetry.Logger into a zerolog.Hook, the same
// way pkg/telemetry/logrus and pkg/telemetry/gokit adapt it into their
// respective libraries. zerolog was in the teacher's require block
// (golang.org/x/exp's go.mod lists github.com/rs/zerolog) but, unlike
// logrus and go-kit, had no adapter of its own in the source tree; this
// completes the set the teacher started.
package zerolog

import (
	"github.com/rs/zerolog"

	"github.com/tracecorrelate/spanner/pkg/telemetry"
)

type hook struct {
	target telemetry.Logger
}

var _ zerolog.Hook = (*hook)(nil)

// NewHook returns a zerolog.Hook that forwards every logged message to
// target, so a host already using zerolog's global logger sees this
// module's diagnostics flow through the same sink.
//
//	logger := zerolog.New(io.Discard).Hook(zerologadapter.NewHook(target))
func NewHook(target telemetry.Logger) zerolog.Hook {
	return &hook{target: target}
}

func (h *hook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	switch level {
	case zerolog.DebugLevel, zerolog.TraceLevel:
		h.target.Debug(msg)
	case zerolog.WarnLevel:
		h.target.Warn(msg)
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		h.target.Error(msg)
	default:
		h.target.Info(msg)
	}
}
