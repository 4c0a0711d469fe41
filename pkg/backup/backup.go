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

package backup

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/toolbelt/pkg/archive"
	"github.com/walteh/toolbelt/pkg/log"
)

var (
	ErrSourceNotFound     = errors.Base("source not found")
	ErrSourceNotDir       = errors.Base("source is not a directory")
	ErrVerificationFailed = errors.Base("verification failed")
	ErrDestinationSource  = errors.Base("destination is the source")
)

// 🗂️ Mode selects how the source tree is reproduced
type Mode int

const (
	ModeCopy    Mode = iota // plain directory copy
	ModeArchive             // single ZIP container
)

func (m Mode) String() string {
	if m == ModeArchive {
		return "archive"
	}
	return "copy"
}

// 🔧 Options configures a single backup run
type Options struct {
	Source      string
	Destination string
	Compress    bool
	// Exclude holds doublestar patterns matched against slash paths relative to Source.
	Exclude []string
	Logger  *log.Logger
}

// ⚠️ Skipped records a path left out of a walk and why
type Skipped struct {
	Path string
	Err  error
}

// 📦 Result describes a finished backup
type Result struct {
	Mode        Mode
	Source      string // absolute
	Destination string // absolute; ends in .zip in archive mode
	SourceSize  SizeResult
	ArchiveSize int64
	Files       int   // files copied or archived
	Bytes       int64 // bytes copied or archived (uncompressed)
	Skipped     []Skipped
	// Partial counts archive entries that were started but cut short by a
	// read error; they are also listed in Skipped.
	Partial int

	exclude []string
}

// Ratio is 1 - archive/source, or 0 when there is nothing to compare.
func (r *Result) Ratio() float64 {
	if r.Mode != ModeArchive || r.SourceSize.Total <= 0 {
		return 0
	}
	return 1 - float64(r.ArchiveSize)/float64(r.SourceSize.Total)
}

// 🏃 Run reproduces opts.Source at opts.Destination.
//
// Per-file failures are recorded in Result.Skipped and the run continues.
// Directory-level failures abort the run and are returned.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Nop()
	}

	src, err := checkSource(opts.Source)
	if err != nil {
		return nil, err
	}

	if opts.Destination == "" {
		return nil, errors.New("destination is required")
	}
	dst, err := filepath.Abs(opts.Destination)
	if err != nil {
		return nil, errors.Errorf("resolving destination: %w", err)
	}

	for _, p := range opts.Exclude {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Errorf("invalid exclude pattern %q", p)
		}
	}

	res := &Result{
		Mode:        ModeCopy,
		Source:      src,
		Destination: dst,
		exclude:     opts.Exclude,
	}
	if opts.Compress {
		res.Mode = ModeArchive
		res.Destination = WithArchiveExt(dst)
	}

	if samePath(src, res.Destination) {
		return nil, errors.Errorf("%w: %s", ErrDestinationSource, opts.Destination)
	}

	f := filter{exclude: opts.Exclude, avoid: res.Destination}

	res.SourceSize = sourceSize(ctx, src, f)
	for _, s := range res.SourceSize.Skipped {
		logger.Zerolog().Debug().Err(s.Err).Str("path", s.Path).Msg("size accounting skipped path")
	}
	logger.Zerolog().Info().
		Str("source", src).
		Str("destination", res.Destination).
		Stringer("mode", res.Mode).
		Int64("source_bytes", res.SourceSize.Total).
		Int("source_files", res.SourceSize.Files).
		Msg("starting backup")

	switch res.Mode {
	case ModeArchive:
		err = archiveTree(ctx, res, f, logger)
	default:
		err = copyTree(ctx, res, f, logger)
	}
	if err != nil {
		return res, err
	}

	if res.Mode == ModeArchive {
		info, err := os.Stat(res.Destination)
		if err != nil {
			return res, errors.Errorf("stat archive: %w", err)
		}
		res.ArchiveSize = info.Size()
	}

	return res, nil
}

func checkSource(source string) (string, error) {
	if source == "" {
		return "", errors.Errorf("%w: no source given", ErrSourceNotFound)
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", errors.Errorf("resolving source: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Errorf("%w: %s", ErrSourceNotFound, source)
		}
		return "", errors.Errorf("checking source: %w", err)
	}
	if !info.IsDir() {
		return "", errors.Errorf("%w: %s", ErrSourceNotDir, source)
	}
	return abs, nil
}

// samePath reports whether a and b name the same existing file or directory,
// following symlinks.
func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// WithArchiveExt appends the archive extension when path lacks it.
func WithArchiveExt(path string) string {
	if strings.EqualFold(filepath.Ext(path), archive.Ext) {
		return path
	}
	return path + archive.Ext
}
