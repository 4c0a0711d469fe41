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

package log

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/walteh/toolbelt/pkg/status"
)

// 🎯 Logger pairs a timestamped zerolog console logger with raw console lines.
// Progress and status messages go through zerolog; per-file action lines,
// headers and summary blocks are written to the console verbatim.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	runID   string
}

// 🏭 New creates a logger writing timestamped records and console lines to out.
// The level is owned by the returned logger; nothing global is touched.
func New(out io.Writer, level zerolog.Level) *Logger {
	runID := NewRunID(time.Now())
	zlog := zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.DateTime,
		NoColor:    color.NoColor,
	}).Level(level).With().Timestamp().Str("run_id", runID).Logger()
	return &Logger{
		zlog:    zlog,
		console: out,
		runID:   runID,
	}
}

// 🔇 Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{
		zlog:    zerolog.Nop(),
		console: io.Discard,
	}
}

// NewRunID returns a sortable identifier for one invocation.
func NewRunID(t time.Time) string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(t.UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// Zerolog exposes the structured logger for field-rich records.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zlog
}

// RunID returns the identifier attached to every record.
func (l *Logger) RunID() string {
	return l.runID
}

// Debug returns a debug event; it is a no-op below the configured level.
func (l *Logger) Debug() *zerolog.Event {
	return l.zlog.Debug()
}

// 📝 LogFileOperation prints a per-file action line and records it
func (l *Logger) LogFileOperation(ctx context.Context, op status.FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, status.FormatFileOperation(op))

	ev := l.zlog.Debug()
	if op.Status == status.StatusFailed {
		ev = l.zlog.Warn()
	}
	if op.Err != nil {
		ev = ev.Err(op.Err)
	}
	ev.Str("file", op.Path).
		Str("kind", op.Kind).
		Stringer("status", op.Status).
		Int64("size", op.Size).
		Msg("file operation")
}

// 📝 Block writes a pre-rendered block (summary tables, reports) verbatim
func (l *Logger) Block(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.console, s)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("toolbelt")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.zlog.Info().Msg("✅ " + color.New(color.FgGreen).Sprint(msg))
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.zlog.Warn().Msg("⚠️  " + color.New(color.FgYellow).Sprint(msg))
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.zlog.Error().Msg("❌ " + color.New(color.FgRed).Sprint(msg))
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
