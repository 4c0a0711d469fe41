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
	"io"
	"os"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

// HelloArgs configure the hello sample
type HelloArgs struct {
	Out io.Writer
	Now func() time.Time
}

// 👋 HelloOperation prints a banner proving the tool runs
type HelloOperation struct {
	args HelloArgs
}

var _ Operation = (*HelloOperation)(nil)

// 🏭 NewHelloOperation fills in defaults
func NewHelloOperation(args HelloArgs) *HelloOperation {
	if args.Out == nil {
		args.Out = os.Stdout
	}
	if args.Now == nil {
		args.Now = time.Now
	}
	return &HelloOperation{args: args}
}

func (o *HelloOperation) Name() string { return "hello" }

func (o *HelloOperation) Execute(ctx context.Context) error {
	_, err := fmt.Fprintf(o.args.Out, "🚀 Automation Script Running Successfully!\nCurrent Time: %s\n",
		o.args.Now().Format(time.DateTime))
	return err
}

// DefaultTemplateOutput is used when no output path is given.
const DefaultTemplateOutput = "output.txt"

// 📝 TemplateArgs name the input and output files
type TemplateArgs struct {
	Input  string
	Output string
}

// TemplateOperation is the starting point for new commands: read the input,
// transform it, write the output.
type TemplateOperation struct {
	opts Options
	args TemplateArgs
}

var _ Operation = (*TemplateOperation)(nil)

// 🏭 NewTemplateOperation checks the required input
func NewTemplateOperation(opts Options, args TemplateArgs) (*TemplateOperation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if args.Input == "" {
		return nil, errors.Errorf("input is required")
	}
	if args.Output == "" {
		args.Output = DefaultTemplateOutput
	}
	return &TemplateOperation{opts: opts, args: args}, nil
}

func (o *TemplateOperation) Name() string { return "template" }

// Transform is the placeholder logic new commands replace.
func Transform(content string) string {
	return strings.ToUpper(content)
}

func (o *TemplateOperation) Execute(ctx context.Context) error {
	logger := o.opts.Logger
	logger.Info("starting template command")
	logger.Infof("input: %s", o.args.Input)
	logger.Infof("output: %s", o.args.Output)

	data, err := os.ReadFile(o.args.Input)
	if err != nil {
		return errors.Errorf("reading input: %w", err)
	}

	if err := os.WriteFile(o.args.Output, []byte(Transform(string(data))), 0o644); err != nil {
		return errors.Errorf("writing output: %w", err)
	}

	logger.Success("template command completed")
	return nil
}
