// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logrus provides a logrus.Formatter that routes entries through a
// telemetry.Logger instead of writing bytes, grounded on the teacher's
// elogging/elogrus, which does the same for the event package.
//
// Usage mirrors the teacher's:
//
//	logrus.SetFormatter(logrusadapter.NewFormatter(target))
//	logrus.SetOutput(io.Discard)
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/tracecorrelate/spanner/pkg/telemetry"
)

type formatter struct {
	target telemetry.Logger
}

var _ logrus.Formatter = (*formatter)(nil)

// NewFormatter returns a logrus.Formatter that forwards each entry to
// target instead of producing bytes. Logrus always calls the Formatter
// before writing its output, so the formatter both formats and delivers
// the record; callers must set the logger's output to io.Discard, exactly
// as elogrus.NewFormatter documents.
func NewFormatter(target telemetry.Logger) logrus.Formatter {
	return &formatter{target: target}
}

func (f *formatter) Format(e *logrus.Entry) ([]byte, error) {
	kv := make([]any, 0, len(e.Data)*2+2)
	for k, v := range e.Data {
		kv = append(kv, k, v)
	}
	kv = append(kv, "level", e.Level.String())
	switch {
	case e.Level <= logrus.ErrorLevel:
		f.target.Error(e.Message, kv...)
	case e.Level == logrus.WarnLevel:
		f.target.Warn(e.Message, kv...)
	case e.Level == logrus.DebugLevel, e.Level == logrus.TraceLevel:
		f.target.Debug(e.Message, kv...)
	default:
		f.target.Info(e.Message, kv...)
	}
	return nil, nil
}
