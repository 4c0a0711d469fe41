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
	"time"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/toolbelt/pkg/log"
)

// 🏃 Runner executes operations one at a time
type Runner struct {
	logger *log.Logger
	now    func() time.Time
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Nop()
	}
	return &Runner{
		logger: logger,
		now:    time.Now,
	}
}

// 🏃 Run executes op and logs how long it took
func (r *Runner) Run(ctx context.Context, op Operation) error {
	start := r.now()
	r.logger.Zerolog().Debug().Str("operation", op.Name()).Msg("starting operation")

	err := op.Execute(ctx)
	elapsed := r.now().Sub(start).Round(time.Millisecond)

	if err != nil {
		r.logger.Zerolog().Debug().
			Str("operation", op.Name()).
			Dur("elapsed", elapsed).
			Msg("operation failed")
		return errors.Errorf("%s: %w", op.Name(), err)
	}

	r.logger.Infof("%s finished in %s", op.Name(), elapsed)
	return nil
}
