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
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// filter decides which walked entries take part in a backup.
type filter struct {
	exclude []string
	// avoid is the absolute destination; it is never descended into or archived,
	// which keeps a destination nested inside the source from copying itself.
	avoid string
}

func (f filter) skip(path, rel string, d fs.DirEntry) bool {
	if f.avoid != "" && path == f.avoid {
		return true
	}
	slash := filepath.ToSlash(rel)
	for _, p := range f.exclude {
		if ok, _ := doublestar.Match(p, slash); ok {
			return true
		}
		if d != nil && d.IsDir() {
			if ok, _ := doublestar.Match(p, slash+"/"); ok {
				return true
			}
		}
	}
	return false
}
