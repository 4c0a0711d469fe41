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
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// AppName names the per-user config directory.
const AppName = "toolbelt"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes on top of the defaults
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📝 LogConfig controls verbosity
type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

// 📦 BackupConfig holds defaults for the backup command
type BackupConfig struct {
	Compress   bool     `json:"compress" yaml:"compress"`
	Verify     bool     `json:"verify" yaml:"verify"`
	VerifyMode string   `json:"verify_mode" yaml:"verify_mode"`
	AutoName   bool     `json:"auto_name" yaml:"auto_name"`
	Exclude    []string `json:"exclude" yaml:"exclude"`
}

// 🧹 CleanupConfig holds defaults for the cleanup command.
// Empty lists fall back to the built-in rules.
type CleanupConfig struct {
	Extensions []string `json:"extensions" yaml:"extensions"`
	JunkNames  []string `json:"junk_names" yaml:"junk_names"`
	Patterns   []string `json:"patterns" yaml:"patterns"`
	DryRun     bool     `json:"dry_run" yaml:"dry_run"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Log     LogConfig     `json:"log" yaml:"log"`
	Backup  BackupConfig  `json:"backup" yaml:"backup"`
	Cleanup CleanupConfig `json:"cleanup" yaml:"cleanup"`

	location string
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info"},
		Backup: BackupConfig{VerifyMode: "count"},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/toolbelt/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Location returns the file the config was loaded from, if any.
func (cfg *Config) Location() string {
	return cfg.location
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	cfg.location = path
	return cfg, nil
}

// 🔎 Resolve loads explicit when given, otherwise the file at DefaultPath when
// it exists, otherwise Default.
func Resolve(ctx context.Context, explicit string) (*Config, error) {
	if explicit != "" {
		return Load(ctx, explicit)
	}
	path := DefaultPath()
	if _, err := os.Stat(path); err == nil {
		return Load(ctx, path)
	} else if !os.IsNotExist(err) {
		return nil, errors.Errorf("checking %s: %w", path, err)
	}
	return Default(), nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level)); err != nil {
		return errors.Errorf("log.level: %w", err)
	}

	switch strings.ToLower(cfg.Backup.VerifyMode) {
	case "":
		cfg.Backup.VerifyMode = "count"
	case "count", "hash":
	default:
		return errors.Errorf("backup.verify_mode must be count or hash, got %q", cfg.Backup.VerifyMode)
	}

	for _, p := range cfg.Backup.Exclude {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("backup.exclude: invalid pattern %q", p)
		}
	}
	for _, p := range cfg.Cleanup.Patterns {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("cleanup.patterns: invalid pattern %q", p)
		}
	}
	for _, ext := range cfg.Cleanup.Extensions {
		if strings.TrimSpace(ext) == "" || strings.ContainsAny(ext, "/\\") {
			return errors.Errorf("cleanup.extensions: invalid extension %q", ext)
		}
	}

	return nil
}

// Level returns the configured zerolog level, defaulting to info.
func (cfg *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil || cfg.Log.Level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	cfg := Default()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return cfg, nil
}
