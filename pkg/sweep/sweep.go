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

package sweep

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/walteh/toolbelt/pkg/log"
	"github.com/walteh/toolbelt/pkg/status"
)

// 🗑️ Remover deletes a single file. Dry runs never reach it.
type Remover interface {
	Remove(path string) error
}

// OSRemover removes files from the local filesystem.
type OSRemover struct{}

func (OSRemover) Remove(path string) error {
	return os.Remove(path)
}

// 🧹 Sweeper removes, or in dry-run mode only lists, temporary files
type Sweeper struct {
	Rules   RuleSet
	DryRun  bool
	Remover Remover
	Logger  *log.Logger
}

// 📋 Report is the outcome of sweeping one root
type Report struct {
	Root     string
	Examined int
	Found    int
	Deleted  int
	Errors   int
	Matches  []string
}

// Tally converts the report into the shared run report.
func (r Report) Tally() status.Tally {
	return status.Tally{Examined: r.Examined, Acted: r.Deleted, Errors: r.Errors}
}

// 📊 Summary aggregates the reports of a multi-root sweep
type Summary struct {
	DryRun  bool
	Reports []Report
	Found   int
	Deleted int
	Errors  int
}

// Failed reports whether any root produced an error.
func (s Summary) Failed() bool {
	return s.Errors > 0
}

// Tally converts the summary into the shared run report.
func (s Summary) Tally() status.Tally {
	var t status.Tally
	for _, r := range s.Reports {
		t.Add(r.Tally())
	}
	return t
}

func (s *Sweeper) logger() *log.Logger {
	if s.Logger == nil {
		return log.Nop()
	}
	return s.Logger
}

func (s *Sweeper) remover() Remover {
	if s.Remover == nil {
		return OSRemover{}
	}
	return s.Remover
}

// SweepAll sweeps every root in order and sums the counts.
func (s *Sweeper) SweepAll(ctx context.Context, roots []string) Summary {
	sum := Summary{DryRun: s.DryRun}
	for _, root := range roots {
		rep := s.Sweep(ctx, root)
		sum.Reports = append(sum.Reports, rep)
		sum.Found += rep.Found
		sum.Deleted += rep.Deleted
		sum.Errors += rep.Errors
	}
	return sum
}

// 🏃 Sweep walks root once. A root that is missing or not a directory counts
// as one error. Directories whose name starts with "." are never entered.
// Failures on single files are counted and the walk goes on.
func (s *Sweeper) Sweep(ctx context.Context, root string) Report {
	logger := s.logger()
	rep := Report{Root: root}

	info, err := os.Stat(root)
	if err != nil {
		logger.Errorf("cannot sweep %s: %v", root, err)
		rep.Errors = 1
		return rep
	}
	if !info.IsDir() {
		logger.Errorf("cannot sweep %s: not a directory", root)
		rep.Errors = 1
		return rep
	}

	logger.Zerolog().Debug().Str("root", root).Bool("dry_run", s.DryRun).Strs("extensions", s.Rules.Extensions).Msg("sweeping")

	kind := "sweep"
	if s.DryRun {
		kind = "dry-run"
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			rep.Errors++
			logger.Errorf("reading %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				logger.Zerolog().Debug().Str("dir", path).Msg("skipping hidden directory")
				return filepath.SkipDir
			}
			return nil
		}

		rep.Examined++
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		if !s.Rules.IsTempFile(d.Name(), rel) {
			return nil
		}

		rep.Found++
		rep.Matches = append(rep.Matches, path)

		if s.DryRun {
			logger.LogFileOperation(ctx, status.FileOperation{Path: path, Kind: kind, Status: status.StatusWouldDelete})
			return nil
		}

		if err := s.remover().Remove(path); err != nil {
			rep.Errors++
			logger.LogFileOperation(ctx, status.FileOperation{Path: path, Kind: kind, Status: status.StatusFailed, Err: err})
			return nil
		}
		rep.Deleted++
		logger.LogFileOperation(ctx, status.FileOperation{Path: path, Kind: kind, Status: status.StatusDeleted})
		return nil
	})
	if walkErr != nil {
		rep.Errors++
		logger.Errorf("sweep of %s stopped: %v", root, walkErr)
	}

	return rep
}
