// Package sysinfo captures point-in-time snapshots of the host environment
// for display alongside generation reports.
package sysinfo

import (
	"context"
	"time"

	"github.com/keymill/keymill/internal/errors"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// Snapshot is a point-in-time capture of the host environment. Snapshots
// are informational only; nothing in the generation path depends on them.
type Snapshot struct {
	OSName        string    `json:"os_name"`
	OSVersion     string    `json:"os_version"`
	KernelVersion string    `json:"kernel_version"`
	CPUCount      int       `json:"cpu_count"`
	CPUBrand      string    `json:"cpu_brand"`
	TotalMemory   uint64    `json:"total_memory"`
	UsedMemory    uint64    `json:"used_memory"`
	CapturedAt    time.Time `json:"captured_at"`
}

// Provider supplies environment snapshots. The engine asks for one
// snapshot before a run and one after; no freshness or consistency is
// guaranteed between the two.
type Provider interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// HostProvider reads snapshots from the local host.
type HostProvider struct{}

// NewHostProvider creates a Provider backed by the local host.
func NewHostProvider() *HostProvider {
	return &HostProvider{}
}

// Snapshot captures the current host state. Probe failures return a
// retryable SYSINFO error; callers degrade to a report without
// environment sections rather than failing the run.
func (p *HostProvider) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{CapturedAt: time.Now()}

	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, errors.NewSysinfoError("host probe failed", err)
	}
	snap.OSName = info.Platform
	snap.OSVersion = info.PlatformVersion
	snap.KernelVersion = info.KernelVersion

	count, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return nil, errors.NewSysinfoError("cpu count probe failed", err)
	}
	snap.CPUCount = count

	// CPU brand is cosmetic; fall back instead of failing the probe.
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		snap.CPUBrand = infos[0].ModelName
	}
	if snap.CPUBrand == "" {
		snap.CPUBrand = "Unknown CPU"
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, errors.NewSysinfoError("memory probe failed", err)
	}
	snap.TotalMemory = vm.Total
	snap.UsedMemory = vm.Used

	return snap, nil
}
