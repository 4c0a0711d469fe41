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
	"io/fs"
	"path/filepath"
)

// 📏 SizeResult is the outcome of best-effort size accounting.
// Unreadable entries never abort the walk; they are listed in Skipped so the
// caller can decide whether a partial total is acceptable.
type SizeResult struct {
	Total   int64
	Files   int
	Skipped []Skipped
}

// Complete reports whether every entry was accounted for.
func (s SizeResult) Complete() bool {
	return len(s.Skipped) == 0
}

// SourceSize sums the sizes of all regular files under root.
func SourceSize(ctx context.Context, root string) SizeResult {
	return sourceSize(ctx, root, filter{})
}

func sourceSize(ctx context.Context, root string, f filter) SizeResult {
	var res SizeResult
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			res.Skipped = append(res.Skipped, Skipped{Path: path, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, rerr := filepath.Rel(root, path)
		if rerr != nil || rel == "." {
			return nil
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
		info, err := d.Info()
		if err != nil {
			res.Skipped = append(res.Skipped, Skipped{Path: path, Err: err})
			return nil
		}
		res.Total += info.Size()
		res.Files++
		return nil
	})
	return res
}
