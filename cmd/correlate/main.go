// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command correlate is a minimal example driver for the correlation
// engine: it reads a JSON array of events and a JSON array of rule
// configurations, runs the engine, and prints the resulting spans.
//
// It is glue, not a trace-file format implementation - the host program
// this engine is a component of owns real file decoding (spec.md §1); this
// command exists only to exercise the engine end-to-end from the command
// line.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tracecorrelate/spanner/pkg/correlate"
	"github.com/tracecorrelate/spanner/pkg/rule"
	"github.com/tracecorrelate/spanner/pkg/telemetry"
	"github.com/tracecorrelate/spanner/pkg/trace"
)

func main() {
	eventsPath := flag.String("events", "", "path to a JSON file containing an array of events")
	rulesPath := flag.String("rules", "", "path to a JSON file containing an array of rule configs")
	verbose := flag.Bool("v", false, "log diagnostics at debug level")
	flag.Parse()

	if *eventsPath == "" || *rulesPath == "" {
		fmt.Fprintln(os.Stderr, "usage: correlate -events events.json -rules rules.json")
		os.Exit(2)
	}

	events, err := readEvents(*eventsPath)
	if err != nil {
		log.Fatalf("reading events: %v", err)
	}
	rules, err := readRules(*rulesPath)
	if err != nil {
		log.Fatalf("reading rules: %v", err)
	}

	logger := telemetry.Discard
	if *verbose {
		logger, err = telemetry.NewDefault()
		if err != nil {
			log.Fatalf("setting up logger: %v", err)
		}
	}

	engine := correlate.NewEngine(rules,
		correlate.WithDiagnostics(telemetry.Notifier{Logger: logger}),
		correlate.WithMetrics(telemetry.NewLoggerMetricsSink(logger)),
	)
	out, err := engine.Run(context.Background(), events)
	if err != nil {
		log.Fatalf("run: %v", err)
	}

	fmt.Println(out)
}

// jsonEvent is the on-disk shape for one input event.
type jsonEvent struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Category  string   `json:"category"`
	Process   string   `json:"process"`
	Thread    string   `json:"thread"`
	Start     int64    `json:"start"`
	End       int64    `json:"end"`
	ArgSetID  uint64   `json:"argSetId"`
	ArgKeys   []string `json:"argKeys"`
	ArgValues []string `json:"argValues"`
}

func readEvents(path string) (trace.Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var raw []jsonEvent
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, err
	}
	seq := make(trace.Sequence, len(raw))
	for i, r := range raw {
		e, err := trace.NewEvent(r.Name, r.Type, r.Category, r.Process, r.Thread, r.Start, r.End, r.ArgSetID, r.ArgKeys, r.ArgValues)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		seq[i] = e
	}
	return seq, nil
}

// jsonRule is the on-disk shape for one Configurable rule.
type jsonRule struct {
	StartNameRegex string   `json:"startNameRegex"`
	StopNameRegex  string   `json:"stopNameRegex"`
	StartOpcode    string   `json:"startOpcode"`
	StopOpcode     string   `json:"stopOpcode"`
	KeyFields      []string `json:"keyFields"` // any of "name", "opcode", "process", "thread"
	AllowRecursion bool     `json:"allowRecursion"`
	StopBehavior   string   `json:"stopBehavior"` // "onMatch", "onAction", "onProcess", "never"
	ArgPairs       []struct {
		StartKey string `json:"startKey"`
		StopKey  string `json:"stopKey"`
	} `json:"argPairs"`
}

func readRules(path string) ([]rule.Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var raw []jsonRule
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, err
	}
	rules := make([]rule.Rule, len(raw))
	for i, r := range raw {
		sb, err := parseStopBehavior(r.StopBehavior)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		var argPairs []rule.ArgPair
		for _, p := range r.ArgPairs {
			argPairs = append(argPairs, rule.ArgPair{StartKey: p.StartKey, StopKey: p.StopKey})
		}
		cr, err := rule.NewConfigurable(rule.Config{
			StartNameRegex: r.StartNameRegex,
			StopNameRegex:  r.StopNameRegex,
			StartOpcode:    r.StartOpcode,
			StopOpcode:     r.StopOpcode,
			KeyFields:      parseKeyFields(r.KeyFields),
			AllowRecursion: r.AllowRecursion,
			Stop:           sb,
			ArgPairs:       argPairs,
		})
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		rules[i] = cr
	}
	return rules, nil
}

func parseKeyFields(fields []string) rule.KeyField {
	var kf rule.KeyField
	for _, f := range fields {
		switch f {
		case "name":
			kf |= rule.KeyEventName
		case "opcode":
			kf |= rule.KeyOpCode
		case "process":
			kf |= rule.KeyProcess
		case "thread":
			kf |= rule.KeyThread
		}
	}
	return kf
}

func parseStopBehavior(s string) (rule.StopBehavior, error) {
	switch s {
	case "", "onMatch":
		return rule.OnMatch, nil
	case "onAction":
		return rule.OnAction, nil
	case "onProcess":
		return rule.OnProcess, nil
	case "never":
		return rule.Never, nil
	default:
		return 0, fmt.Errorf("unknown stopBehavior %q", s)
	}
}
