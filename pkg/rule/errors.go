// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rule

import "fmt"

// ConfigError reports a rule constructed with an invalid configuration -
// one of spec's "configuration errors": fatal at construction time, never
// retried.
type ConfigError struct {
	Rule   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("rule: invalid configuration for %s: %s", e.Rule, e.Reason)
}
