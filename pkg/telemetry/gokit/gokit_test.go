// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gokit

import "testing"

type fakeLogger struct {
	msg string
	kv  []any
}

func (f *fakeLogger) Debug(string, ...any) {}
func (f *fakeLogger) Info(msg string, kv ...any) {
	f.msg = msg
	f.kv = kv
}
func (f *fakeLogger) Warn(string, ...any)  {}
func (f *fakeLogger) Error(string, ...any) {}

func TestLogExtractsMessageAndForwardsKeyvals(t *testing.T) {
	l := &fakeLogger{}
	logger := NewLogger(l)
	if err := logger.Log("msg", "hello", "count", 3); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if l.msg != "hello" {
		t.Errorf("msg = %q, want %q", l.msg, "hello")
	}
	if len(l.kv) != 2 || l.kv[0] != "count" || l.kv[1] != 3 {
		t.Errorf("kv = %v, want [count 3]", l.kv)
	}
}
