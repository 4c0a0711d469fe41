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

// Package sysinfo collects a snapshot of the host: operating system, CPU,
// memory and mounted disks.
package sysinfo

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/toolbelt/pkg/log"
)

// OSInfo describes the operating system
type OSInfo struct {
	Hostname        string `json:"hostname"`
	OS              string `json:"os"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version"`
	KernelVersion   string `json:"kernel_version"`
	Architecture    string `json:"architecture"`
	UptimeSeconds   uint64 `json:"uptime_seconds"`
}

// CPUInfo describes processor capacity and load
type CPUInfo struct {
	Model         string  `json:"model,omitempty"`
	PhysicalCores int     `json:"physical_cores"`
	LogicalCores  int     `json:"logical_cores"`
	MaxMHz        float64 `json:"max_mhz,omitempty"`
	UsagePercent  float64 `json:"usage_percent"`
}

// MemoryInfo describes RAM and swap usage in bytes
type MemoryInfo struct {
	Total           uint64  `json:"total"`
	Available       uint64  `json:"available"`
	Used            uint64  `json:"used"`
	UsedPercent     float64 `json:"used_percent"`
	SwapTotal       uint64  `json:"swap_total"`
	SwapUsed        uint64  `json:"swap_used"`
	SwapUsedPercent float64 `json:"swap_used_percent"`
}

// DiskInfo describes one mounted partition
type DiskInfo struct {
	Device      string  `json:"device"`
	Mountpoint  string  `json:"mountpoint"`
	FileSystem  string  `json:"file_system"`
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"used_percent"`
}

// 🖥️ Report combines everything collected in one pass
type Report struct {
	CollectedAt time.Time  `json:"collected_at"`
	OS          OSInfo     `json:"os"`
	CPU         CPUInfo    `json:"cpu"`
	Memory      MemoryInfo `json:"memory"`
	Disks       []DiskInfo `json:"disk"`
}

// Collector gathers a Report.
type Collector interface {
	Collect(ctx context.Context) (*Report, error)
}

// 🏭 NewCollector returns a Collector backed by gopsutil
func NewCollector(logger *log.Logger) Collector {
	if logger == nil {
		logger = log.Nop()
	}
	return &hostCollector{logger: logger, sample: 200 * time.Millisecond}
}

type hostCollector struct {
	logger *log.Logger
	sample time.Duration
}

func (c *hostCollector) Collect(ctx context.Context) (*Report, error) {
	rep := &Report{CollectedAt: time.Now()}

	hi, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, errors.Errorf("reading host info: %w", err)
	}
	rep.OS = OSInfo{
		Hostname:        hi.Hostname,
		OS:              hi.OS,
		Platform:        hi.Platform,
		PlatformVersion: hi.PlatformVersion,
		KernelVersion:   hi.KernelVersion,
		Architecture:    runtime.GOARCH,
		UptimeSeconds:   hi.Uptime,
	}

	rep.CPU, err = c.cpu(ctx)
	if err != nil {
		return nil, err
	}

	rep.Memory, err = c.memory(ctx)
	if err != nil {
		return nil, err
	}

	rep.Disks, err = c.disks(ctx)
	if err != nil {
		return nil, err
	}

	return rep, nil
}

func (c *hostCollector) cpu(ctx context.Context) (CPUInfo, error) {
	var info CPUInfo

	logical, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return info, errors.Errorf("counting logical cpus: %w", err)
	}
	info.LogicalCores = logical

	// physical counts are unavailable in some containers
	if physical, err := cpu.CountsWithContext(ctx, false); err == nil {
		info.PhysicalCores = physical
	} else {
		c.logger.Zerolog().Debug().Err(err).Msg("physical core count unavailable")
	}

	if stats, err := cpu.InfoWithContext(ctx); err == nil && len(stats) > 0 {
		info.Model = stats[0].ModelName
		info.MaxMHz = stats[0].Mhz
	} else if err != nil {
		c.logger.Zerolog().Debug().Err(err).Msg("cpu model unavailable")
	}

	usage, err := cpu.PercentWithContext(ctx, c.sample, false)
	if err != nil {
		return info, errors.Errorf("sampling cpu usage: %w", err)
	}
	if len(usage) > 0 {
		info.UsagePercent = usage[0]
	}
	return info, nil
}

func (c *hostCollector) memory(ctx context.Context) (MemoryInfo, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryInfo{}, errors.Errorf("reading memory: %w", err)
	}
	info := MemoryInfo{
		Total:       vm.Total,
		Available:   vm.Available,
		Used:        vm.Used,
		UsedPercent: vm.UsedPercent,
	}

	if sw, err := mem.SwapMemoryWithContext(ctx); err == nil {
		info.SwapTotal = sw.Total
		info.SwapUsed = sw.Used
		info.SwapUsedPercent = sw.UsedPercent
	} else {
		c.logger.Zerolog().Debug().Err(err).Msg("swap usage unavailable")
	}
	return info, nil
}

func (c *hostCollector) disks(ctx context.Context) ([]DiskInfo, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, errors.Errorf("listing partitions: %w", err)
	}

	var out []DiskInfo
	for _, p := range parts {
		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil || usage.Total == 0 {
			c.logger.Zerolog().Debug().Err(err).Str("mountpoint", p.Mountpoint).Msg("skipping partition")
			continue
		}
		out = append(out, DiskInfo{
			Device:      p.Device,
			Mountpoint:  p.Mountpoint,
			FileSystem:  p.Fstype,
			Total:       usage.Total,
			Used:        usage.Used,
			Free:        usage.Free,
			UsedPercent: usage.UsedPercent,
		})
	}
	return out, nil
}
