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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	kindWidth   = 10 // Width for operation kind
	statusWidth = 14 // Width for status text
)

// 🎯 FormatFileOperation formats a file operation for display
func FormatFileOperation(op FileOperation) string {
	var prefix string
	switch op.Status {
	case StatusCopied, StatusArchived:
		prefix = color.GreenString("✓")
	case StatusDeleted:
		prefix = color.RedString("✗")
	case StatusWouldDelete:
		prefix = color.YellowString("?")
	case StatusFailed:
		prefix = color.New(color.FgRed, color.Bold).Sprint("!")
	default:
		prefix = color.HiBlackString("-")
	}

	namePart := fmt.Sprintf("%-*s", nameWidth, op.Path)
	kindPart := color.New(color.FgCyan).Sprint(fmt.Sprintf("%-*s", kindWidth, op.Kind))
	statusPart := fmt.Sprintf("%-*s", statusWidth, op.Status.String())

	line := fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		kindPart,
		statusPart,
	)
	if op.Err != nil {
		line += color.New(color.Faint).Sprint(op.Err.Error())
	}
	return line
}

// 📋 Row is one labelled value of a summary block
type Row struct {
	Label string
	Value string
}

// 📊 RenderSummary renders a titled two-column summary table
func RenderSummary(title string, rows []Row) (string, error) {
	data := pterm.TableData{{title, ""}}
	for _, r := range rows {
		data = append(data, []string{r.Label, r.Value})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return "", err
	}
	return out + "\n", nil
}
