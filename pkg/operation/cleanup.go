// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/toolbelt/pkg/status"
	"github.com/walteh/toolbelt/pkg/sweep"
)

// 🧹 CleanupArgs are the per-invocation sweep settings, flags already merged
type CleanupArgs struct {
	Roots []string
	// Extensions replaces the configured list when non-empty
	Extensions []string
	// Patterns are added to the configured patterns
	Patterns []string
	DryRun   bool
	// Remover defaults to deleting from disk
	Remover sweep.Remover
}

// CleanupOperation sweeps temporary files from one or more roots
type CleanupOperation struct {
	opts    Options
	args    CleanupArgs
	rules   sweep.RuleSet
	summary sweep.Summary
}

var _ Operation = (*CleanupOperation)(nil)

// 🏭 NewCleanupOperation builds the rule set from config and args
func NewCleanupOperation(opts Options, args CleanupArgs) (*CleanupOperation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(args.Roots) == 0 {
		return nil, errors.Errorf("at least one directory is required")
	}

	rules, err := RulesFor(opts, args)
	if err != nil {
		return nil, err
	}

	return &CleanupOperation{opts: opts, args: args, rules: rules}, nil
}

// RulesFor merges the built-in rules with config and per-run overrides.
func RulesFor(opts Options, args CleanupArgs) (sweep.RuleSet, error) {
	rules := sweep.DefaultRuleSet()
	cfg := opts.Config.Cleanup

	switch {
	case len(args.Extensions) > 0:
		rules = rules.WithExtensions(args.Extensions)
	case len(cfg.Extensions) > 0:
		rules = rules.WithExtensions(cfg.Extensions)
	}
	rules.JunkNames = append(rules.JunkNames, cfg.JunkNames...)
	rules = rules.WithPatterns(cfg.Patterns...).WithPatterns(args.Patterns...)

	if err := rules.Validate(); err != nil {
		return rules, errors.Errorf("cleanup rules: %w", err)
	}
	return rules, nil
}

func (o *CleanupOperation) Name() string { return "cleanup" }

// Summary is set once Execute has swept every root.
func (o *CleanupOperation) Summary() sweep.Summary { return o.summary }

// 🏃 Execute sweeps every root and fails when any item error was counted
func (o *CleanupOperation) Execute(ctx context.Context) error {
	logger := o.opts.Logger
	title := "cleanup"
	if o.args.DryRun {
		title += " (dry run)"
	}
	logger.Header(fmt.Sprintf("%s %s", title, strings.Join(o.args.Roots, " ")))
	logger.Zerolog().Debug().
		Strs("extensions", o.rules.Extensions).
		Strs("patterns", o.rules.Patterns).
		Msg("sweep rules")

	sweeper := &sweep.Sweeper{
		Rules:   o.rules,
		DryRun:  o.args.DryRun,
		Remover: o.args.Remover,
		Logger:  logger,
	}
	o.summary = sweeper.SweepAll(ctx, o.args.Roots)

	if err := o.summarize(); err != nil {
		return err
	}

	if o.summary.Failed() {
		return errors.Errorf("%w: %d errors", ErrIncomplete, o.summary.Errors)
	}
	if o.args.DryRun {
		logger.Successf("dry run found %d temporary files", o.summary.Found)
	} else {
		logger.Successf("deleted %d temporary files", o.summary.Deleted)
	}
	return nil
}

func (o *CleanupOperation) summarize() error {
	sum := o.summary
	acted := "Deleted"
	if sum.DryRun {
		acted = "Would delete"
	}

	var rows []status.Row
	for _, rep := range sum.Reports {
		n := rep.Deleted
		if sum.DryRun {
			n = rep.Found
		}
		rows = append(rows, status.Row{
			Label: rep.Root,
			Value: fmt.Sprintf("found %d, %s %d, errors %d", rep.Found, strings.ToLower(acted), n, rep.Errors),
		})
	}
	t := sum.Tally()
	if sum.DryRun {
		t.Acted = sum.Found
	}
	rows = append(rows,
		status.Row{Label: "Examined", Value: fmt.Sprint(t.Examined)},
		status.Row{Label: "Found", Value: fmt.Sprint(sum.Found)},
		status.Row{Label: acted, Value: fmt.Sprint(t.Acted)},
		status.Row{Label: "Errors", Value: fmt.Sprint(sum.Errors)},
	)

	out, err := status.RenderSummary("Cleanup summary", rows)
	if err != nil {
		return errors.Errorf("rendering summary: %w", err)
	}
	o.opts.Logger.Block(out)
	return nil
}
