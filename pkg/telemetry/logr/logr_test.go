// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logr

import "testing"

type fakeLogger struct {
	infoMsg, errMsg string
	infoKV, errKV   []any
}

func (f *fakeLogger) Debug(string, ...any) {}
func (f *fakeLogger) Info(msg string, kv ...any) {
	f.infoMsg = msg
	f.infoKV = kv
}
func (f *fakeLogger) Warn(string, ...any) {}
func (f *fakeLogger) Error(msg string, kv ...any) {
	f.errMsg = msg
	f.errKV = kv
}

func TestInfoForwardsLevelAndKeyvals(t *testing.T) {
	l := &fakeLogger{}
	s := NewLogSink(l, "/")
	s.Info(2, "hello", "k", "v")
	if l.infoMsg != "hello" {
		t.Errorf("infoMsg = %q, want %q", l.infoMsg, "hello")
	}
	found := false
	for i := 0; i+1 < len(l.infoKV); i += 2 {
		if l.infoKV[i] == "level" && l.infoKV[i+1] == 2 {
			found = true
		}
	}
	if !found {
		t.Errorf("kv %v does not include level=2", l.infoKV)
	}
}

func TestWithNameJoinsSuccessiveSegments(t *testing.T) {
	l := &fakeLogger{}
	s := NewLogSink(l, "/")
	s = s.WithName("a").WithName("b")
	s.Info(0, "hello")
	found := false
	for i := 0; i+1 < len(l.infoKV); i += 2 {
		if l.infoKV[i] == "logger" && l.infoKV[i+1] == "a/b" {
			found = true
		}
	}
	if !found {
		t.Errorf("kv %v does not include logger=a/b", l.infoKV)
	}
}

func TestWithValuesArePreservedAcrossCalls(t *testing.T) {
	l := &fakeLogger{}
	s := NewLogSink(l, "/").WithValues("req", "123")
	s.Error(nil, "failed")
	found := false
	for i := 0; i+1 < len(l.errKV); i += 2 {
		if l.errKV[i] == "req" && l.errKV[i+1] == "123" {
			found = true
		}
	}
	if !found {
		t.Errorf("kv %v does not include req=123", l.errKV)
	}
}
