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

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/walteh/toolbelt/cmd/toolbelt/opts"
	"github.com/walteh/toolbelt/pkg/config"
)

// VersionInfo is what `toolbelt version` reports
type VersionInfo struct {
	Version    string `json:"version"`
	Module     string `json:"module"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
	Revision   string `json:"revision,omitempty"`
	Time       string `json:"time,omitempty"`
	Modified   bool   `json:"modified"`
	ConfigPath string `json:"config_path"`
}

// GetVersionInfo reads the embedded build info; outside a module build the
// version stays "dev".
func GetVersionInfo() *VersionInfo {
	info := &VersionInfo{
		Version:    "dev",
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
		ConfigPath: config.DefaultPath(),
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.Module = bi.Main.Path
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.time":
			info.Time = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// WriteVersion prints info as aligned text, or as JSON when asJSON is set.
func WriteVersion(w io.Writer, info *VersionInfo, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	rev := info.Revision
	if rev == "" {
		rev = "unknown"
	}
	if info.Modified {
		rev += " (dirty)"
	}
	_, err := fmt.Fprintf(w, "🧰 toolbelt %s\n  revision  %s\n  go        %s (%s)\n  config    %s\n",
		info.Version, rev, info.GoVersion, info.Platform, info.ConfigPath)
	return err
}

// NewVersionCmd creates the version command. It never reads the config file,
// so it keeps working when that file is broken.
func NewVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "version",
		Short:       "Print version and build information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{opts.SkipLoad: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return WriteVersion(cmd.OutOrStdout(), GetVersionInfo(), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}
