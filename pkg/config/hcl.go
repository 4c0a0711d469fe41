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

package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// app is available to expressions, e.g. patterns = ["${app}-*.tmp"]
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"app": cty.StringVal(AppName),
		},
	}

	type hclConfig struct {
		Log *struct {
			Level *string `hcl:"level,optional"`
		} `hcl:"log,block"`
		Backup *struct {
			Compress   *bool    `hcl:"compress,optional"`
			Verify     *bool    `hcl:"verify,optional"`
			VerifyMode *string  `hcl:"verify_mode,optional"`
			AutoName   *bool    `hcl:"auto_name,optional"`
			Exclude    []string `hcl:"exclude,optional"`
		} `hcl:"backup,block"`
		Cleanup *struct {
			Extensions []string `hcl:"extensions,optional"`
			JunkNames  []string `hcl:"junk_names,optional"`
			Patterns   []string `hcl:"patterns,optional"`
			DryRun     *bool    `hcl:"dry_run,optional"`
		} `hcl:"cleanup,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Overlay onto defaults
	cfg := Default()
	if l := hclCfg.Log; l != nil && l.Level != nil {
		cfg.Log.Level = *l.Level
	}
	if b := hclCfg.Backup; b != nil {
		setBool(&cfg.Backup.Compress, b.Compress)
		setBool(&cfg.Backup.Verify, b.Verify)
		setBool(&cfg.Backup.AutoName, b.AutoName)
		if b.VerifyMode != nil {
			cfg.Backup.VerifyMode = *b.VerifyMode
		}
		cfg.Backup.Exclude = b.Exclude
	}
	if c := hclCfg.Cleanup; c != nil {
		cfg.Cleanup.Extensions = c.Extensions
		cfg.Cleanup.JunkNames = c.JunkNames
		cfg.Cleanup.Patterns = c.Patterns
		setBool(&cfg.Cleanup.DryRun, c.DryRun)
	}

	return cfg, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
