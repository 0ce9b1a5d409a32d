// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package correlate implements the per-rule state machine (RuleContext)
// and the top-level driver (Engine) that together scan a chronologically
// ordered event sequence and synthesize span events.
package correlate

import "fmt"

// InvariantError reports a violated invariant of the input sequence:
// non-monotonic start timestamps, which Engine.Run checks before every run.
// An out-of-range index is not reported this way; trace.Sequence.At panics
// instead. Per spec, this aborts the run; no partial output is kept.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("correlate: invariant violation: %s", e.Reason)
}
