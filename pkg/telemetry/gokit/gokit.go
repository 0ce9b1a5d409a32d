// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gokit adapts a telemetry.Logger into a go-kit log.Logger, for
// hosts that already wire go-kit's logging through their stack. Grounded
// on the teacher's event/adapter/gokit, which does the same for the
// event package.
package gokit

import (
	"fmt"

	"github.com/go-kit/kit/log"

	"github.com/tracecorrelate/spanner/pkg/telemetry"
)

type logger struct {
	target telemetry.Logger
}

// NewLogger returns a go-kit log.Logger that forwards every record to
// target's Info method. go-kit's Logger has no leveled methods of its
// own - keyvals carry a "level" key by convention instead - so Log always
// calls Info and leaves level interpretation to target.
func NewLogger(target telemetry.Logger) log.Logger {
	return &logger{target: target}
}

// Log implements go-kit's log.Logger. keyvals alternates string keys and
// values; a "msg" or "message" key is pulled out as the record's message,
// exactly as the teacher's adapter does.
func (l *logger) Log(keyvals ...interface{}) error {
	var msg string
	kv := make([]any, 0, len(keyvals))
	for i := 0; i < len(keyvals); i += 2 {
		key, _ := keyvals[i].(string)
		var value interface{}
		if i+1 < len(keyvals) {
			value = keyvals[i+1]
		}
		if key == "msg" || key == "message" {
			msg = fmt.Sprint(value)
			continue
		}
		kv = append(kv, key, value)
	}
	l.target.Info(msg, kv...)
	return nil
}
