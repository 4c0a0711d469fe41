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

package sysinfo

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/markdown"
	"gitlab.com/tozd/go/errors"
)

// Format selects the report layout
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", errors.Errorf("unknown format %q (want text, json or markdown)", s)
	}
}

// 📝 Write renders rep to w in the requested format
func Write(w io.Writer, rep *Report, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, rep)
	case FormatMarkdown:
		return writeMarkdown(w, rep)
	case FormatText, "":
		return writeText(w, rep)
	default:
		return errors.Errorf("unknown format %q", format)
	}
}

func writeJSON(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return errors.Errorf("encoding report: %w", err)
	}
	return nil
}

func writeText(w io.Writer, rep *Report) error {
	rule := strings.Repeat("=", 50)
	var b strings.Builder

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "🖥️  SYSTEM INFORMATION")
	fmt.Fprintln(&b, rule)

	fmt.Fprintln(&b, "\n🖥️  Operating System:")
	fmt.Fprintf(&b, "   Hostname: %s\n", rep.OS.Hostname)
	fmt.Fprintf(&b, "   System: %s\n", rep.OS.OS)
	if rep.OS.Platform != "" {
		fmt.Fprintf(&b, "   Platform: %s %s\n", rep.OS.Platform, rep.OS.PlatformVersion)
	}
	fmt.Fprintf(&b, "   Kernel: %s\n", rep.OS.KernelVersion)
	fmt.Fprintf(&b, "   Architecture: %s\n", rep.OS.Architecture)
	fmt.Fprintf(&b, "   Uptime: %s\n", uptime(rep.OS.UptimeSeconds))

	fmt.Fprintln(&b, "\n🔧 CPU Information:")
	if rep.CPU.Model != "" {
		fmt.Fprintf(&b, "   Model: %s\n", rep.CPU.Model)
	}
	fmt.Fprintf(&b, "   Physical Cores: %d\n", rep.CPU.PhysicalCores)
	fmt.Fprintf(&b, "   Total Cores: %d\n", rep.CPU.LogicalCores)
	fmt.Fprintf(&b, "   Current Usage: %.1f%%\n", rep.CPU.UsagePercent)
	if rep.CPU.MaxMHz > 0 {
		fmt.Fprintf(&b, "   Max Frequency: %.2fMHz\n", rep.CPU.MaxMHz)
	}

	fmt.Fprintln(&b, "\n💾 Memory Information:")
	fmt.Fprintf(&b, "   Total RAM: %s\n", humanize.IBytes(rep.Memory.Total))
	fmt.Fprintf(&b, "   Available RAM: %s\n", humanize.IBytes(rep.Memory.Available))
	fmt.Fprintf(&b, "   Used RAM: %s (%.1f%%)\n", humanize.IBytes(rep.Memory.Used), rep.Memory.UsedPercent)
	if rep.Memory.SwapTotal > 0 {
		fmt.Fprintf(&b, "   Swap Total: %s\n", humanize.IBytes(rep.Memory.SwapTotal))
		fmt.Fprintf(&b, "   Swap Used: %s (%.1f%%)\n", humanize.IBytes(rep.Memory.SwapUsed), rep.Memory.SwapUsedPercent)
	}

	fmt.Fprintln(&b, "\n💿 Disk Usage:")
	for _, d := range rep.Disks {
		fmt.Fprintf(&b, "   %s (%s):\n", d.Mountpoint, d.FileSystem)
		fmt.Fprintf(&b, "     Used: %s/%s (%.1f%% full)\n", humanize.IBytes(d.Used), humanize.IBytes(d.Total), d.UsedPercent)
		fmt.Fprintf(&b, "     Free: %s\n", humanize.IBytes(d.Free))
	}

	fmt.Fprintln(&b, "\n"+rule)
	fmt.Fprintln(&b, "✅ System information collected successfully!")
	fmt.Fprintln(&b, rule)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeMarkdown(w io.Writer, rep *Report) error {
	md := markdown.NewMarkdown(w)

	md.H1("System Information")
	md.PlainText("")
	md.PlainText("Collected " + rep.CollectedAt.Format("2006-01-02 15:04:05 MST"))
	md.PlainText("")

	md.H2("Operating System")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Hostname", rep.OS.Hostname},
			{"System", rep.OS.OS},
			{"Platform", strings.TrimSpace(rep.OS.Platform + " " + rep.OS.PlatformVersion)},
			{"Kernel", rep.OS.KernelVersion},
			{"Architecture", rep.OS.Architecture},
			{"Uptime", uptime(rep.OS.UptimeSeconds)},
		},
	})
	md.PlainText("")

	md.H2("CPU")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Model", rep.CPU.Model},
			{"Physical Cores", fmt.Sprint(rep.CPU.PhysicalCores)},
			{"Total Cores", fmt.Sprint(rep.CPU.LogicalCores)},
			{"Usage", fmt.Sprintf("%.1f%%", rep.CPU.UsagePercent)},
		},
	})
	md.PlainText("")

	md.H2("Memory")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Total", humanize.IBytes(rep.Memory.Total)},
			{"Available", humanize.IBytes(rep.Memory.Available)},
			{"Used", fmt.Sprintf("%s (%.1f%%)", humanize.IBytes(rep.Memory.Used), rep.Memory.UsedPercent)},
			{"Swap", fmt.Sprintf("%s / %s", humanize.IBytes(rep.Memory.SwapUsed), humanize.IBytes(rep.Memory.SwapTotal))},
		},
	})
	md.PlainText("")

	md.H2("Disks")
	rows := make([][]string, 0, len(rep.Disks))
	for _, d := range rep.Disks {
		rows = append(rows, []string{
			"`" + d.Mountpoint + "`",
			d.FileSystem,
			humanize.IBytes(d.Used),
			humanize.IBytes(d.Total),
			fmt.Sprintf("%.1f%%", d.UsedPercent),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Mountpoint", "File System", "Used", "Total", "Full"},
		Rows:   rows,
	})

	if err := md.Build(); err != nil {
		return errors.Errorf("building markdown: %w", err)
	}
	return nil
}

func uptime(seconds uint64) string {
	return (time.Duration(seconds) * time.Second).String()
}
