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

package operation

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/toolbelt/pkg/archive"
	"github.com/walteh/toolbelt/pkg/backup"
	"github.com/walteh/toolbelt/pkg/config"
	"github.com/walteh/toolbelt/pkg/log"
	"github.com/walteh/toolbelt/pkg/sysinfo"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func testOptions(t *testing.T) (Options, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return Options{
		Config: config.Default(),
		Logger: log.New(&buf, zerolog.DebugLevel),
	}, &buf
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "creating parent of %s", name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing %s", name)
	}
}

func TestOptionsValidate(t *testing.T) {
	_, err := NewBackupOperation(Options{Logger: log.Nop()}, BackupArgs{Source: "a", Destination: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config is required")

	_, err = NewCleanupOperation(Options{Config: config.Default()}, CleanupArgs{Roots: []string{"."}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logger is required")
}

func TestBackupOperationCopy(t *testing.T) {
	opts, buf := testOptions(t)
	src := t.TempDir()
	writeFiles(t, src, map[string]string{"a.txt": "alpha", "sub/b.txt": "bravo"})
	dst := filepath.Join(t.TempDir(), "out")

	op, err := NewBackupOperation(opts, BackupArgs{Source: src, Destination: dst, Verify: true})
	require.NoError(t, err)
	require.NoError(t, op.Execute(context.Background()))

	got, err := os.ReadFile(filepath.Join(dst, "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "bravo", string(got))

	require.NotNil(t, op.Result())
	assert.Equal(t, 2, op.Result().Files)
	assert.Contains(t, buf.String(), "Backup summary")
	assert.Contains(t, buf.String(), "passed (count)")
}

func TestBackupOperationArchive(t *testing.T) {
	opts, buf := testOptions(t)
	src := t.TempDir()
	writeFiles(t, src, map[string]string{"a.txt": "aaaaaaaaaaaaaaaaaaaaaaaa", "sub/b.txt": "bbbbbbbbbbbbbbbbbbbbbbbbbbbb"})
	dst := filepath.Join(t.TempDir(), "out")

	op, err := NewBackupOperation(opts, BackupArgs{Source: src, Destination: dst, Compress: true, Verify: true})
	require.NoError(t, err)
	require.NoError(t, op.Execute(context.Background()))

	names, err := archive.List(dst + archive.Ext)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "sub/b.txt"}, names)
	assert.Contains(t, buf.String(), "compression ratio")
	assert.Contains(t, buf.String(), "passed (archive)")
}

func TestBackupOperationAutoName(t *testing.T) {
	opts, _ := testOptions(t)
	src := filepath.Join(t.TempDir(), "docs")
	writeFiles(t, src, map[string]string{"readme.md": "# docs"})
	parent := t.TempDir()
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	op, err := NewBackupOperation(opts, BackupArgs{
		Source:      src,
		Destination: parent,
		Compress:    true,
		AutoName:    true,
		Now:         func() time.Time { return now },
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(parent, "docs_backup_20240309_140507.zip"), op.Target())

	require.NoError(t, op.Execute(context.Background()))
	assert.FileExists(t, op.Target())
}

func TestBackupOperationArgs(t *testing.T) {
	opts, _ := testOptions(t)

	tests := []struct {
		name        string
		cfg         func(cfg *config.Config)
		args        BackupArgs
		errContains string
		check       func(t *testing.T, op *BackupOperation)
	}{
		{
			name:        "missing_source",
			args:        BackupArgs{Destination: "x"},
			errContains: "source is required",
		},
		{
			name:        "missing_destination",
			args:        BackupArgs{Source: "x"},
			errContains: "destination is required",
		},
		{
			name: "auto_name_defaults_to_cwd",
			args: BackupArgs{Source: "x", AutoName: true, Now: func() time.Time { return time.Unix(0, 0).UTC() }},
			check: func(t *testing.T, op *BackupOperation) {
				assert.Equal(t, "x_backup_19700101_000000", op.Target())
			},
		},
		{
			name:        "bad_verify_mode",
			args:        BackupArgs{Source: "x", Destination: "y", VerifyMode: "crc"},
			errContains: "unknown verify mode",
		},
		{
			name: "verify_mode_from_config",
			cfg:  func(cfg *config.Config) { cfg.Backup.VerifyMode = "hash" },
			args: BackupArgs{Source: "x", Destination: "y"},
			check: func(t *testing.T, op *BackupOperation) {
				assert.Equal(t, backup.VerifyHash, op.mode)
			},
		},
		{
			name: "exclude_merges_config",
			cfg:  func(cfg *config.Config) { cfg.Backup.Exclude = []string{"*.iso"} },
			args: BackupArgs{Source: "x", Destination: "y", Exclude: []string{"tmp/**"}},
			check: func(t *testing.T, op *BackupOperation) {
				assert.Equal(t, []string{"*.iso", "tmp/**"}, op.args.Exclude)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := opts
			o.Config = config.Default()
			if tt.cfg != nil {
				tt.cfg(o.Config)
			}
			op, err := NewBackupOperation(o, tt.args)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			tt.check(t, op)
		})
	}
}

func TestBackupOperationMissingSource(t *testing.T) {
	opts, _ := testOptions(t)
	op, err := NewBackupOperation(opts, BackupArgs{Source: filepath.Join(t.TempDir(), "nope"), Destination: t.TempDir()})
	require.NoError(t, err)

	err = op.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, backup.ErrSourceNotFound)
}

func TestCleanupOperation(t *testing.T) {
	t.Run("active", func(t *testing.T) {
		opts, buf := testOptions(t)
		root := t.TempDir()
		writeFiles(t, root, map[string]string{"keep.txt": "", "debug.log": "", "a/b.tmp": ""})

		op, err := NewCleanupOperation(opts, CleanupArgs{Roots: []string{root}})
		require.NoError(t, err)
		require.NoError(t, op.Execute(context.Background()))

		assert.Equal(t, 2, op.Summary().Deleted)
		assert.NoFileExists(t, filepath.Join(root, "debug.log"))
		assert.FileExists(t, filepath.Join(root, "keep.txt"))
		assert.Contains(t, buf.String(), "Cleanup summary")
	})

	t.Run("dry_run", func(t *testing.T) {
		opts, buf := testOptions(t)
		root := t.TempDir()
		writeFiles(t, root, map[string]string{"debug.log": ""})

		op, err := NewCleanupOperation(opts, CleanupArgs{Roots: []string{root}, DryRun: true})
		require.NoError(t, err)
		require.NoError(t, op.Execute(context.Background()))

		assert.Equal(t, 1, op.Summary().Found)
		assert.Equal(t, 0, op.Summary().Deleted)
		assert.FileExists(t, filepath.Join(root, "debug.log"))
		assert.Contains(t, buf.String(), "Would delete")
	})

	t.Run("missing_root_fails", func(t *testing.T) {
		opts, _ := testOptions(t)
		good := t.TempDir()
		writeFiles(t, good, map[string]string{"x.tmp": ""})

		op, err := NewCleanupOperation(opts, CleanupArgs{Roots: []string{filepath.Join(good, "missing"), good}})
		require.NoError(t, err)

		err = op.Execute(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrIncomplete)
		assert.Equal(t, 1, op.Summary().Errors)
		assert.Equal(t, 1, op.Summary().Deleted, "remaining roots are still swept")
	})

	t.Run("no_roots", func(t *testing.T) {
		opts, _ := testOptions(t)
		_, err := NewCleanupOperation(opts, CleanupArgs{})
		require.Error(t, err)
	})
}

func TestRulesFor(t *testing.T) {
	cfg := config.Default()
	cfg.Cleanup.Extensions = []string{".bak"}
	cfg.Cleanup.JunkNames = []string{"npm-debug.log"}
	cfg.Cleanup.Patterns = []string{"build/**"}
	opts := Options{Config: cfg, Logger: log.Nop()}

	rules, err := RulesFor(opts, CleanupArgs{})
	require.NoError(t, err)
	assert.Equal(t, []string{".bak"}, rules.Extensions)
	assert.Contains(t, rules.JunkNames, "npm-debug.log")
	assert.Contains(t, rules.JunkNames, ".DS_Store")
	assert.Equal(t, []string{"build/**"}, rules.Patterns)

	rules, err = RulesFor(opts, CleanupArgs{Extensions: []string{"swp"}, Patterns: []string{"**/*.o"}})
	require.NoError(t, err)
	assert.Equal(t, []string{".swp"}, rules.Extensions, "flag extensions replace config")
	assert.Equal(t, []string{"build/**", "**/*.o"}, rules.Patterns, "flag patterns extend config")

	_, err = RulesFor(opts, CleanupArgs{Patterns: []string{"[bad"}})
	require.Error(t, err)
}

type fakeCollector struct {
	rep *sysinfo.Report
	err error
}

func (f fakeCollector) Collect(ctx context.Context) (*sysinfo.Report, error) {
	return f.rep, f.err
}

func fixtureReport() *sysinfo.Report {
	return &sysinfo.Report{
		CollectedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		OS:          sysinfo.OSInfo{Hostname: "build-01", OS: "linux", Architecture: "amd64"},
		CPU:         sysinfo.CPUInfo{LogicalCores: 8, PhysicalCores: 4},
		Memory:      sysinfo.MemoryInfo{Total: 16 << 30, Used: 4 << 30, UsedPercent: 25},
	}
}

func TestSysinfoOperation(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		opts, _ := testOptions(t)
		var out bytes.Buffer
		op, err := NewSysinfoOperation(opts, SysinfoArgs{
			Format:    sysinfo.FormatJSON,
			Stdout:    &out,
			Collector: fakeCollector{rep: fixtureReport()},
		})
		require.NoError(t, err)
		require.NoError(t, op.Execute(context.Background()))
		assert.Contains(t, out.String(), `"hostname": "build-01"`)
	})

	t.Run("file", func(t *testing.T) {
		opts, _ := testOptions(t)
		path := filepath.Join(t.TempDir(), "report.md")
		op, err := NewSysinfoOperation(opts, SysinfoArgs{
			Format:    sysinfo.FormatMarkdown,
			Output:    path,
			Collector: fakeCollector{rep: fixtureReport()},
		})
		require.NoError(t, err)
		require.NoError(t, op.Execute(context.Background()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "build-01")
	})

	t.Run("collector_error", func(t *testing.T) {
		opts, _ := testOptions(t)
		op, err := NewSysinfoOperation(opts, SysinfoArgs{Collector: fakeCollector{err: errors.New("boom")}})
		require.NoError(t, err)
		err = op.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestHelloOperation(t *testing.T) {
	var out bytes.Buffer
	op := NewHelloOperation(HelloArgs{
		Out: &out,
		Now: func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) },
	})
	require.NoError(t, op.Execute(context.Background()))
	assert.Equal(t, "🚀 Automation Script Running Successfully!\nCurrent Time: 2024-05-06 07:08:09\n", out.String())
}

func TestTemplateOperation(t *testing.T) {
	opts, _ := testOptions(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(in, []byte("hello world\n"), 0644))

	op, err := NewTemplateOperation(opts, TemplateArgs{Input: in, Output: out})
	require.NoError(t, err)
	require.NoError(t, op.Execute(context.Background()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "HELLO WORLD\n", string(data))

	op, err = NewTemplateOperation(opts, TemplateArgs{Input: filepath.Join(dir, "missing.txt"), Output: out})
	require.NoError(t, err)
	err = op.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewTemplateOperation(opts, TemplateArgs{})
	require.Error(t, err, "input is required")

	op, err = NewTemplateOperation(opts, TemplateArgs{Input: in})
	require.NoError(t, err)
	assert.Equal(t, DefaultTemplateOutput, op.args.Output)
}

type stubOperation struct {
	err   error
	calls int
}

func (s *stubOperation) Name() string { return "stub" }

func (s *stubOperation) Execute(ctx context.Context) error {
	s.calls++
	return s.err
}

func TestRunner(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(log.New(&buf, zerolog.InfoLevel))
	ticks := []time.Time{time.Unix(0, 0), time.Unix(0, int64(1500*time.Millisecond))}
	r.now = func() time.Time {
		next := ticks[0]
		ticks = ticks[1:]
		return next
	}

	ok := &stubOperation{}
	require.NoError(t, r.Run(context.Background(), ok))
	assert.Equal(t, 1, ok.calls)
	assert.Contains(t, buf.String(), "stub finished in 1.5s")

	r = NewRunner(nil)
	failing := &stubOperation{err: errors.New("nope")}
	err := r.Run(context.Background(), failing)
	require.Error(t, err)
	assert.Equal(t, "stub: nope", err.Error())
}
