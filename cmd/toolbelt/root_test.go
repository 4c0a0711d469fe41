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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/toolbelt/cmd/toolbelt/commands"
	"github.com/walteh/toolbelt/pkg/archive"
	"github.com/walteh/toolbelt/pkg/operation"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	pterm.DisableStyling()
	os.Exit(m.Run())
}

// run executes the CLI with an isolated config file.
func run(t *testing.T, config string, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(config), 0644))

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config=" + path}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("content of "+name), 0644))
	}
}

func TestBackupCommand(t *testing.T) {
	src := t.TempDir()
	writeFiles(t, src, "a.txt", "nested/b.txt")

	t.Run("copy", func(t *testing.T) {
		dst := filepath.Join(t.TempDir(), "copy")
		out, err := run(t, "", "backup", src, dst, "--verify")
		require.NoError(t, err, out)
		assert.FileExists(t, filepath.Join(dst, "nested", "b.txt"))
		assert.Contains(t, out, "verification passed")
	})

	t.Run("compress_from_config", func(t *testing.T) {
		dst := filepath.Join(t.TempDir(), "arch")
		out, err := run(t, "backup:\n  compress: true\n", "backup", src, dst)
		require.NoError(t, err, out)

		names, err := archive.List(dst + ".zip")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a.txt", "nested/b.txt"}, names)
	})

	t.Run("flag_overrides_config", func(t *testing.T) {
		dst := filepath.Join(t.TempDir(), "plain")
		out, err := run(t, "backup:\n  compress: true\n", "backup", src, dst, "--compress=false")
		require.NoError(t, err, out)
		assert.DirExists(t, dst)
		assert.NoFileExists(t, dst+".zip")
	})

	t.Run("auto_name", func(t *testing.T) {
		parent := t.TempDir()
		out, err := run(t, "", "backup", src, parent, "--auto-name", "--compress")
		require.NoError(t, err, out)

		matches, err := filepath.Glob(filepath.Join(parent, filepath.Base(src)+"_backup_*.zip"))
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	})

	t.Run("destination_required", func(t *testing.T) {
		_, err := run(t, "", "backup", src)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "destination is required")
	})

	t.Run("missing_source", func(t *testing.T) {
		_, err := run(t, "", "backup", filepath.Join(src, "missing"), t.TempDir())
		require.Error(t, err)
	})

	t.Run("too_many_args", func(t *testing.T) {
		_, err := run(t, "", "backup", "a", "b", "c")
		require.Error(t, err)
	})
}

func TestCleanupCommand(t *testing.T) {
	t.Run("deletes", func(t *testing.T) {
		root := t.TempDir()
		writeFiles(t, root, "keep.txt", "debug.log", "x/y.tmp", ".git/ignored.log")

		out, err := run(t, "", "cleanup", root)
		require.NoError(t, err, out)
		assert.NoFileExists(t, filepath.Join(root, "debug.log"))
		assert.NoFileExists(t, filepath.Join(root, "x", "y.tmp"))
		assert.FileExists(t, filepath.Join(root, ".git", "ignored.log"), "hidden directories are pruned")
		assert.FileExists(t, filepath.Join(root, "keep.txt"))
	})

	t.Run("dry_run_from_config", func(t *testing.T) {
		root := t.TempDir()
		writeFiles(t, root, "debug.log")

		out, err := run(t, "cleanup:\n  dry_run: true\n", "cleanup", root)
		require.NoError(t, err, out)
		assert.FileExists(t, filepath.Join(root, "debug.log"))
		assert.Contains(t, out, "would delete")
	})

	t.Run("custom_extensions", func(t *testing.T) {
		root := t.TempDir()
		writeFiles(t, root, "a.bak", "b.log")

		out, err := run(t, "", "cleanup", root, "--extensions", ".bak")
		require.NoError(t, err, out)
		assert.NoFileExists(t, filepath.Join(root, "a.bak"))
		assert.FileExists(t, filepath.Join(root, "b.log"))
	})

	t.Run("missing_dir_fails", func(t *testing.T) {
		_, err := run(t, "", "cleanup", filepath.Join(t.TempDir(), "missing"))
		require.Error(t, err)
		assert.ErrorIs(t, err, operation.ErrIncomplete)
	})

	t.Run("no_args", func(t *testing.T) {
		_, err := run(t, "", "cleanup")
		require.Error(t, err)
	})
}

func TestHelloCommand(t *testing.T) {
	out, err := run(t, "", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, "Automation Script Running Successfully!")
	assert.Contains(t, out, "Current Time: ")
}

func TestTemplateCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	outPath := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(in, []byte("shout"), 0644))

	out, err := run(t, "", "template", "--input", in, "--output", outPath)
	require.NoError(t, err, out)
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "SHOUT", string(data))

	_, err = run(t, "", "template", "--input", filepath.Join(dir, "missing.txt"), "--output", outPath)
	require.Error(t, err)

	_, err = run(t, "", "template")
	require.Error(t, err, "--input is required")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "🧰 toolbelt ")
	assert.Contains(t, out, "config ")

	out, err = run(t, "", "version", "--json")
	require.NoError(t, err)
	var info commands.VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.ConfigPath)
}

func TestVersionIgnoresBrokenConfig(t *testing.T) {
	out, err := run(t, "log:\n  level: [not, a, level\n", "version")
	require.NoError(t, err, "version must not depend on the config file")
	assert.Contains(t, out, "🧰 toolbelt ")

	_, err = run(t, "log:\n  level: [not, a, level\n", "hello")
	require.Error(t, err, "other commands still load the config")
}

func TestInvalidConfig(t *testing.T) {
	_, err := run(t, "backup:\n  verify_mode: md5\n", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestVerboseLogging(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "keep.txt")

	out, err := run(t, "", "cleanup", root, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, " DBG ", "debug records are shown with --verbose")

	out, err = run(t, "", "cleanup", root)
	require.NoError(t, err)
	assert.NotContains(t, out, " DBG ")
}
