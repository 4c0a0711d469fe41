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

package status

// 📊 FileStatus is the outcome of acting on one file
type FileStatus int

const (
	StatusUnknown     FileStatus = iota
	StatusCopied                 // File was copied into a directory backup
	StatusArchived               // File was written into an archive
	StatusDeleted                // File was removed by a sweep
	StatusWouldDelete            // File matched during a dry run
	StatusSkipped                // File was left out (excluded, not regular)
	StatusFailed                 // Acting on the file failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusCopied:
		return "copied"
	case StatusArchived:
		return "archived"
	case StatusDeleted:
		return "deleted"
	case StatusWouldDelete:
		return "would delete"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 FileOperation describes one per-file action for display
type FileOperation struct {
	Path   string     // Path as shown to the user
	Kind   string     // Operation kind (backup/archive/sweep)
	Status FileStatus // Outcome
	Size   int64      // File size in bytes, when known
	Err    error      // Failure cause for StatusFailed
}

// 🧮 Tally is the transient run report of a single invocation
type Tally struct {
	Examined int // Items looked at
	Acted    int // Items copied, archived or deleted
	Errors   int // Per-item failures
}

// Add folds other into t.
func (t *Tally) Add(other Tally) {
	t.Examined += other.Examined
	t.Acted += other.Acted
	t.Errors += other.Errors
}

// OK reports whether no errors were counted.
func (t Tally) OK() bool {
	return t.Errors == 0
}
