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
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/toolbelt/pkg/archive"
	"github.com/walteh/toolbelt/pkg/log"
	"github.com/walteh/toolbelt/pkg/status"
)

var (
	errNotRegular = errors.Base("not a regular file")
	errSameFile   = errors.Base("destination file is the source file")
)

// visitFunc handles one regular file; a returned error skips just that file.
type visitFunc func(path, rel string) (int64, error)

// walkTree drives both backup modes. Unreadable directories and a vanished
// source are fatal; anything that goes wrong with a single file is recorded.
func walkTree(ctx context.Context, res *Result, f filter, logger *log.Logger, onDir func(rel string) error, onFile visitFunc) error {
	return filepath.WalkDir(res.Source, func(path string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			if d == nil || d.IsDir() {
				return errors.Errorf("reading %s: %w", path, err)
			}
			res.skip(ctx, logger, path, status.StatusFailed, err)
			return nil
		}

		rel, err := filepath.Rel(res.Source, path)
		if err != nil {
			return errors.Errorf("relative path for %s: %w", path, err)
		}
		if rel == "." {
			return nil
		}

		if f.skip(path, rel, d) {
			logger.LogFileOperation(ctx, status.FileOperation{Path: rel, Kind: res.Mode.String(), Status: status.StatusSkipped})
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if onDir == nil {
				return nil
			}
			return onDir(rel)
		}

		if !d.Type().IsRegular() {
			res.skip(ctx, logger, path, status.StatusSkipped, errNotRegular)
			return nil
		}

		n, err := onFile(path, rel)
		if err != nil {
			res.skip(ctx, logger, path, status.StatusFailed, err)
			return nil
		}
		res.Files++
		res.Bytes += n

		done := status.StatusCopied
		if res.Mode == ModeArchive {
			done = status.StatusArchived
		}
		logger.LogFileOperation(ctx, status.FileOperation{Path: rel, Kind: res.Mode.String(), Status: done, Size: n})
		return nil
	})
}

func (r *Result) skip(ctx context.Context, logger *log.Logger, path string, st status.FileStatus, err error) {
	r.Skipped = append(r.Skipped, Skipped{Path: path, Err: err})

	shown := path
	if rel, rerr := filepath.Rel(r.Source, path); rerr == nil {
		shown = rel
	}
	logger.LogFileOperation(ctx, status.FileOperation{Path: shown, Kind: r.Mode.String(), Status: st, Err: err})
}

// copyTree duplicates the source into the destination directory, overwriting
// files that already exist at the same relative path.
func copyTree(ctx context.Context, res *Result, f filter, logger *log.Logger) error {
	if err := os.MkdirAll(res.Destination, 0o755); err != nil {
		return errors.Errorf("creating destination: %w", err)
	}

	onDir := func(rel string) error {
		if err := os.MkdirAll(filepath.Join(res.Destination, rel), 0o755); err != nil {
			return errors.Errorf("creating directory %s: %w", rel, err)
		}
		return nil
	}
	onFile := func(path, rel string) (int64, error) {
		return copyFile(path, filepath.Join(res.Destination, rel))
	}

	if err := walkTree(ctx, res, f, logger, onDir, onFile); err != nil {
		return errors.Errorf("copying tree: %w", err)
	}
	return nil
}

// archiveTree writes every source file into a single archive. Entry names are
// slash paths relative to the source root.
func archiveTree(ctx context.Context, res *Result, f filter, logger *log.Logger) error {
	if err := os.MkdirAll(filepath.Dir(res.Destination), 0o755); err != nil {
		return errors.Errorf("creating destination directory: %w", err)
	}

	w, err := archive.Create(res.Destination)
	if err != nil {
		return err
	}

	onFile := func(path, rel string) (int64, error) {
		n, err := w.Add(filepath.ToSlash(rel), path)
		if errors.Is(err, archive.ErrPartialEntry) {
			res.Partial++
		}
		return n, err
	}

	if err := walkTree(ctx, res, f, logger, nil, onFile); err != nil {
		_ = w.Close()
		return errors.Errorf("archiving tree: %w", err)
	}
	return w.Close()
}

func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, errors.Errorf("opening source file: %w", err)
	}
	defer in.Close()

	// Opening dst with O_TRUNC would empty src if both are the same file.
	if info, err := in.Stat(); err == nil {
		if dinfo, err := os.Stat(dst); err == nil && os.SameFile(info, dinfo) {
			return 0, errSameFile
		}
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, errors.Errorf("creating destination file: %w", err)
	}

	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dst)
		return n, errors.Errorf("copying contents: %w", err)
	}
	return n, nil
}
