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

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/toolbelt/pkg/config"
	"github.com/walteh/toolbelt/pkg/log"
)

// ErrIncomplete is returned when a run finished but counted item errors.
var ErrIncomplete = errors.Base("finished with errors")

// 🎯 Operation is one toolbelt command. Every command runs through it.
type Operation interface {
	// Name is used in run logs
	Name() string
	// Execute performs the whole operation in a single pass
	Execute(ctx context.Context) error
}

// 🔧 Options contains what every operation needs
type Options struct {
	// Config holds file-level defaults; flags are merged in by the caller
	Config *config.Config
	// Logger is built once per invocation with an explicit level
	Logger *log.Logger
}

func (o Options) validate() error {
	if o.Config == nil {
		return errors.Errorf("config is required")
	}
	if o.Logger == nil {
		return errors.Errorf("logger is required")
	}
	return nil
}
