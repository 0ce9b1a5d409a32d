// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import "strings"

// extraSep separates the ordered additional-field values packed into
// EventKey.extra. It is a control character that cannot appear in a trace
// event's string arguments, so two distinct Extra sequences of the same
// length never collide when joined. Sequences of different lengths can
// (nil and [""] both join to ""); one rule always builds the same number
// of extra values, so keys within one RuleContext are unaffected.
const extraSep = "\x00"

// EventKey identifies a correlation bucket: the per-rule, per-key stack of
// pending starts a RuleContext maintains. Two keys are equal iff all of
// their constituent fields are equal, null equals null, and non-null
// fields compare by string equality - which is exactly Go's built-in
// struct equality once "present" is tracked alongside each nullable field,
// so EventKey needs no bespoke Equal or Hash method and can be used
// directly as a map key.
type EventKey struct {
	name, hasName       string
	opCode, hasOpCode   string
	process, hasProcess string
	thread, hasThread   string
	extra               string // extra field values, joined by extraSep
}

// nullField packs a nullable string field into the (value, "present" marker)
// pair EventKey stores per field. Go structs compare field-by-field, so
// using a second string as a boolean-ish marker (rather than a bool) keeps
// EventKey a single kind of field throughout and keeps the zero value
// ("", "") reading naturally as "absent".
const present = "\x01"

func nullField(v *string) (string, string) {
	if v == nil {
		return "", ""
	}
	return *v, present
}

// NewEventKey builds an EventKey from nullable name/opcode/process/thread
// fields and an ordered list of additional field values (never nil inside
// the slice - a missing additional field is represented by the empty
// string, per the default rule's "missing -> empty string" convention in
// §4.1 of the correlation rules, not by omitting it from extra).
func NewEventKey(name, opCode, process, thread *string, extra []string) EventKey {
	n, hn := nullField(name)
	o, ho := nullField(opCode)
	p, hp := nullField(process)
	t, ht := nullField(thread)
	return EventKey{
		name: n, hasName: hn,
		opCode: o, hasOpCode: ho,
		process: p, hasProcess: hp,
		thread: t, hasThread: ht,
		extra: strings.Join(extra, extraSep),
	}
}

func ptr(s string) *string { return &s }

// Ptr returns a non-nil pointer to s, a convenience for building the
// nullable arguments to NewEventKey from a known-present string.
func Ptr(s string) *string { return ptr(s) }
