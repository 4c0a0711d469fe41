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
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/toolbelt/pkg/backup"
	"github.com/walteh/toolbelt/pkg/status"
)

// 📦 BackupArgs are the per-invocation backup settings, flags already merged
type BackupArgs struct {
	Source string
	// Destination is the target path, or the parent directory with AutoName
	Destination string
	Compress    bool
	Verify      bool
	// VerifyMode falls back to the config value when empty
	VerifyMode string
	AutoName   bool
	// Exclude is added to the configured exclude patterns
	Exclude []string
	// Now defaults to time.Now
	Now func() time.Time
}

// BackupOperation runs one folder backup
type BackupOperation struct {
	opts   Options
	args   BackupArgs
	mode   backup.VerifyMode
	target string
	result *backup.Result
}

var _ Operation = (*BackupOperation)(nil)

// 🏭 NewBackupOperation validates args against the config
func NewBackupOperation(opts Options, args BackupArgs) (*BackupOperation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if args.Source == "" {
		return nil, errors.Errorf("source is required")
	}
	if args.Destination == "" {
		if !args.AutoName {
			return nil, errors.Errorf("destination is required unless auto-name is set")
		}
		args.Destination = "."
	}

	raw := args.VerifyMode
	if raw == "" {
		raw = opts.Config.Backup.VerifyMode
	}
	mode, err := backup.ParseVerifyMode(raw)
	if err != nil {
		return nil, err
	}

	if args.Now == nil {
		args.Now = time.Now
	}
	args.Exclude = append(append([]string(nil), opts.Config.Backup.Exclude...), args.Exclude...)

	target := args.Destination
	if args.AutoName {
		target = filepath.Join(args.Destination, backup.AutoName(args.Source, args.Now(), args.Compress))
	}

	return &BackupOperation{opts: opts, args: args, mode: mode, target: target}, nil
}

func (o *BackupOperation) Name() string { return "backup" }

// Result is set once Execute has run the backup.
func (o *BackupOperation) Result() *backup.Result { return o.result }

// Target is where the backup will be written before any .zip suffix is added.
func (o *BackupOperation) Target() string { return o.target }

// 🏃 Execute copies or archives the source, then verifies when asked
func (o *BackupOperation) Execute(ctx context.Context) error {
	logger := o.opts.Logger
	logger.Header(fmt.Sprintf("backup %s", o.args.Source))

	res, err := backup.Run(ctx, backup.Options{
		Source:      o.args.Source,
		Destination: o.target,
		Compress:    o.args.Compress,
		Exclude:     o.args.Exclude,
		Logger:      logger,
	})
	o.result = res
	if err != nil {
		return errors.Errorf("backing up %s: %w", o.args.Source, err)
	}

	logger.Successf("backup written to %s", res.Destination)
	if res.Mode == backup.ModeArchive {
		logger.Infof("compression ratio: %.1f%%", res.Ratio()*100)
	}

	verified := "skipped"
	var verr error
	if o.args.Verify {
		verr = backup.Verify(ctx, res, o.mode, logger)
		if verr != nil {
			verified = "failed"
			logger.Errorf("verification failed: %v", verr)
		} else {
			verified = "passed"
			logger.Success("verification passed")
		}
	}

	if err := o.summarize(res, verified); err != nil {
		return err
	}

	if verr != nil {
		return verr
	}
	return nil
}

func (o *BackupOperation) summarize(res *backup.Result, verified string) error {
	rows := []status.Row{
		{Label: "Mode", Value: res.Mode.String()},
		{Label: "Source", Value: res.Source},
		{Label: "Destination", Value: res.Destination},
		{Label: "Source size", Value: humanize.IBytes(uint64(res.SourceSize.Total))},
		{Label: "Files", Value: strconv.Itoa(res.Files)},
		{Label: "Bytes", Value: humanize.IBytes(uint64(res.Bytes))},
		{Label: "Skipped", Value: strconv.Itoa(len(res.Skipped))},
	}
	if res.Mode == backup.ModeArchive {
		rows = append(rows,
			status.Row{Label: "Archive size", Value: humanize.IBytes(uint64(res.ArchiveSize))},
			status.Row{Label: "Compression", Value: fmt.Sprintf("%.1f%%", res.Ratio()*100)},
		)
	}
	if o.args.Verify {
		rows = append(rows, status.Row{Label: "Verification", Value: fmt.Sprintf("%s (%s)", verified, o.verifyLabel(res))})
	} else {
		rows = append(rows, status.Row{Label: "Verification", Value: verified})
	}

	out, err := status.RenderSummary("Backup summary", rows)
	if err != nil {
		return errors.Errorf("rendering summary: %w", err)
	}
	o.opts.Logger.Block(out)
	return nil
}

func (o *BackupOperation) verifyLabel(res *backup.Result) string {
	if res.Mode == backup.ModeArchive {
		return "archive"
	}
	return string(o.mode)
}
