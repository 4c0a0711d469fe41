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
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// DefaultExtensions are the suffixes treated as temporary when none are configured.
var DefaultExtensions = []string{".log", ".tmp", ".cache"}

// 📏 RuleSet classifies files as temporary. It is not modified during a sweep.
type RuleSet struct {
	Extensions       []string // filename suffixes, e.g. ".log"
	JunkNames        []string // exact OS junk filenames
	BytecodeSuffixes []string // compiled bytecode suffixes
	CacheDirs        []string // directory names whose contents are all temporary
	Patterns         []string // doublestar patterns against the slash path relative to the root
}

// DefaultRuleSet returns the stock rules.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Extensions:       append([]string(nil), DefaultExtensions...),
		JunkNames:        []string{".DS_Store", "Thumbs.db", "desktop.ini"},
		BytecodeSuffixes: []string{".pyc", ".pyo"},
		CacheDirs:        []string{"__pycache__"},
	}
}

// WithExtensions returns a copy of r using exts instead of its extension list.
func (r RuleSet) WithExtensions(exts []string) RuleSet {
	r.Extensions = NormalizeExtensions(exts)
	return r
}

// WithPatterns returns a copy of r with extra doublestar patterns appended.
func (r RuleSet) WithPatterns(patterns ...string) RuleSet {
	r.Patterns = append(append([]string(nil), r.Patterns...), patterns...)
	return r
}

// NormalizeExtensions trims entries, drops empty ones and ensures a leading dot.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

// Validate checks that every pattern compiles.
func (r RuleSet) Validate() error {
	for _, p := range r.Patterns {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid pattern %q", p)
		}
	}
	return nil
}

// 🔍 IsTempFile reports whether the file called name, found at path, is
// temporary. It is a pure function of its inputs and the rule set.
func (r RuleSet) IsTempFile(name, path string) bool {
	for _, ext := range r.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}

	for _, junk := range r.JunkNames {
		if name == junk {
			return true
		}
	}

	// hidden editor backups and swap files: .foo.swp~
	if len(name) > 1 && strings.HasPrefix(name, ".") && strings.HasSuffix(name, "~") {
		return true
	}

	for _, suffix := range r.BytecodeSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}

	slash := filepath.ToSlash(path)
	if len(r.CacheDirs) > 0 {
		for _, seg := range strings.Split(slash, "/") {
			for _, dir := range r.CacheDirs {
				if seg == dir {
					return true
				}
			}
		}
	}

	for _, p := range r.Patterns {
		if ok, _ := doublestar.Match(p, slash); ok {
			return true
		}
	}

	return false
}
