// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import "testing"

func TestNewEventRejectsMismatchedArgs(t *testing.T) {
	_, err := NewEvent("A_Start", "t", "c", "P", "T", 0, 0, 1,
		[]string{"a", "b"}, []string{"1"})
	if err == nil {
		t.Fatal("expected an error for mismatched arg key/value lengths")
	}
}

func TestArgValueFirstOccurrence(t *testing.T) {
	e, err := NewEvent("A_Start", "t", "c", "P", "T", 0, 0, 1,
		[]string{"k", "k"}, []string{"first", "second"})
	if err != nil {
		t.Fatal(err)
	}
	if got := e.ArgValue("k"); got != "first" {
		t.Errorf("ArgValue(%q) = %q, want %q", "k", got, "first")
	}
	if got := e.ArgValue("missing"); got != "" {
		t.Errorf("ArgValue(missing) = %q, want empty", got)
	}
}

func TestDuration(t *testing.T) {
	e, _ := NewEvent("A_Start", "t", "c", "P", "T", 100, 150, 1, nil, nil)
	if got := e.Duration(); got != 50 {
		t.Errorf("Duration() = %d, want 50", got)
	}
}

func TestOpcode(t *testing.T) {
	e, _ := NewEvent("Foo", "t", "c", "P", "T", 0, 0, 1,
		[]string{OpcodeArgKey}, []string{"1"})
	if got := e.Opcode(); got != "1" {
		t.Errorf("Opcode() = %q, want %q", got, "1")
	}
}
