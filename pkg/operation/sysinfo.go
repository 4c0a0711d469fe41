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
	"io"
	"os"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/toolbelt/pkg/sysinfo"
)

// 🖥️ SysinfoArgs select the report format and destination
type SysinfoArgs struct {
	Format sysinfo.Format
	// Output is a file path; empty writes to Stdout
	Output string
	// Stdout defaults to os.Stdout
	Stdout io.Writer
	// Collector defaults to the host collector
	Collector sysinfo.Collector
}

// SysinfoOperation collects and writes one host report
type SysinfoOperation struct {
	opts Options
	args SysinfoArgs
}

var _ Operation = (*SysinfoOperation)(nil)

// 🏭 NewSysinfoOperation fills in defaults
func NewSysinfoOperation(opts Options, args SysinfoArgs) (*SysinfoOperation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if args.Format == "" {
		args.Format = sysinfo.FormatText
	}
	if args.Stdout == nil {
		args.Stdout = os.Stdout
	}
	if args.Collector == nil {
		args.Collector = sysinfo.NewCollector(opts.Logger)
	}
	return &SysinfoOperation{opts: opts, args: args}, nil
}

func (o *SysinfoOperation) Name() string { return "sysinfo" }

// 🏃 Execute collects the report and writes it
func (o *SysinfoOperation) Execute(ctx context.Context) error {
	rep, err := o.args.Collector.Collect(ctx)
	if err != nil {
		return errors.Errorf("collecting system info: %w", err)
	}

	if o.args.Output == "" {
		return sysinfo.Write(o.args.Stdout, rep, o.args.Format)
	}

	f, err := os.Create(o.args.Output)
	if err != nil {
		return errors.Errorf("creating %s: %w", o.args.Output, err)
	}
	if err := sysinfo.Write(f, rep, o.args.Format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Errorf("closing %s: %w", o.args.Output, err)
	}

	o.opts.Logger.Successf("system report written to %s", o.args.Output)
	return nil
}
