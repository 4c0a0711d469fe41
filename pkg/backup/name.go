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
	"path/filepath"
	"time"

	"github.com/walteh/toolbelt/pkg/archive"
)

// AutoNameLayout is the timestamp layout used in generated names.
const AutoNameLayout = "20060102_150405"

// 🏷️ AutoName derives <base>_backup_<YYYYMMDD_HHMMSS>[.zip] from source, so
// repeated runs do not collide.
func AutoName(source string, now time.Time, compress bool) string {
	base := filepath.Base(filepath.Clean(source))
	if base == "." || base == string(filepath.Separator) || base == "" {
		if abs, err := filepath.Abs(source); err == nil {
			base = filepath.Base(abs)
		}
	}
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "root"
	}

	name := base + "_backup_" + now.Format(AutoNameLayout)
	if compress {
		name += archive.Ext
	}
	return name
}
