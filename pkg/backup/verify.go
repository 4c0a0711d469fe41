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
	"crypto/sha256"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/toolbelt/pkg/archive"
	"github.com/walteh/toolbelt/pkg/log"
)

// ✅ VerifyMode selects how a directory copy is checked
type VerifyMode string

const (
	// VerifyCount accepts a copy holding at least CountThreshold of the source entries.
	VerifyCount VerifyMode = "count"
	// VerifyHash requires a byte-identical copy of every readable source file.
	VerifyHash VerifyMode = "hash"
)

// CountThreshold tolerates entries skipped because they were unreadable.
const CountThreshold = 0.9

// ParseVerifyMode maps a flag or config value to a VerifyMode; empty means count.
func ParseVerifyMode(s string) (VerifyMode, error) {
	switch VerifyMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", VerifyCount:
		return VerifyCount, nil
	case VerifyHash:
		return VerifyHash, nil
	default:
		return "", errors.Errorf("unknown verify mode %q (want count or hash)", s)
	}
}

// 🔍 Verify checks a finished backup. It never modifies the filesystem; a
// failed check is reported as ErrVerificationFailed.
func Verify(ctx context.Context, res *Result, mode VerifyMode, logger *log.Logger) error {
	if logger == nil {
		logger = log.Nop()
	}
	if res == nil {
		return errors.Errorf("%w: no backup result", ErrVerificationFailed)
	}

	if res.Mode == ModeArchive {
		return verifyArchive(res, logger)
	}

	switch mode {
	case VerifyHash:
		return verifyHashes(ctx, res, logger)
	default:
		return verifyCount(ctx, res, logger)
	}
}

func verifyArchive(res *Result, logger *log.Logger) error {
	n, err := archive.Test(res.Destination)
	if err != nil {
		return errors.Errorf("%w: %s", ErrVerificationFailed, err)
	}
	if want := res.Files + res.Partial; n != want {
		return errors.Errorf("%w: archive holds %d entries, expected %d", ErrVerificationFailed, n, want)
	}
	logger.Zerolog().Debug().Int("entries", n).Str("archive", res.Destination).Msg("archive integrity ok")
	return nil
}

func verifyCount(ctx context.Context, res *Result, logger *log.Logger) error {
	f := filter{exclude: res.exclude, avoid: res.Destination}
	srcCount, err := countEntries(ctx, res.Source, f)
	if err != nil {
		return errors.Errorf("%w: counting source: %s", ErrVerificationFailed, err)
	}
	dstCount, err := countEntries(ctx, res.Destination, filter{})
	if err != nil {
		return errors.Errorf("%w: counting destination: %s", ErrVerificationFailed, err)
	}

	logger.Zerolog().Debug().Int("source_entries", srcCount).Int("destination_entries", dstCount).Msg("entry counts")

	if float64(dstCount) < float64(srcCount)*CountThreshold {
		return errors.Errorf("%w: destination has %d entries, source has %d", ErrVerificationFailed, dstCount, srcCount)
	}
	return nil
}

// countEntries counts files and directories below root, root excluded.
func countEntries(ctx context.Context, root string, f filter) (int, error) {
	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			if path == root {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return err
		}
		if f.skip(path, rel, d) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		count++
		return nil
	})
	return count, err
}

func verifyHashes(ctx context.Context, res *Result, logger *log.Logger) error {
	f := filter{exclude: res.exclude, avoid: res.Destination}
	var mismatched []string

	err := filepath.WalkDir(res.Source, func(path string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			if d != nil && d.IsDir() && path != res.Source {
				return filepath.SkipDir
			}
			if path == res.Source {
				return err
			}
			return nil
		}
		rel, err := filepath.Rel(res.Source, path)
		if err != nil || rel == "." {
			return err
		}
		if f.skip(path, rel, d) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		want, err := hashFile(path)
		if err != nil {
			// unreadable sources were skipped by the copy too
			logger.Zerolog().Debug().Err(err).Str("file", rel).Msg("cannot hash source file")
			return nil
		}
		got, err := hashFile(filepath.Join(res.Destination, rel))
		if err != nil || got != want {
			mismatched = append(mismatched, rel)
		}
		return nil
	})
	if err != nil {
		return errors.Errorf("%w: walking source: %s", ErrVerificationFailed, err)
	}

	if len(mismatched) > 0 {
		shown := mismatched
		if len(shown) > 5 {
			shown = shown[:5]
		}
		return errors.Errorf("%w: %d file(s) differ or are missing: %s",
			ErrVerificationFailed, len(mismatched), strings.Join(shown, ", "))
	}
	return nil
}

func hashFile(path string) ([sha256.Size]byte, error) {
	var sum [sha256.Size]byte
	f, err := os.Open(path)
	if err != nil {
		return sum, err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return sum, err
	}
	copy(sum[:], h.Sum(nil))
	return sum, nil
}
