// Package report assembles and renders the results of a finished
// generation run.
package report

import (
	"time"

	"github.com/keymill/keymill/internal/observability"
	"github.com/keymill/keymill/internal/sysinfo"
	"github.com/keymill/keymill/pkg/types"
)

// Report holds the measured results of one completed run. It is built
// strictly after the generation join barrier, from a buffer that no
// longer changes.
type Report struct {
	RunID       string                 `json:"run_id"`
	Records     uint64                 `json:"records"`
	ChunkSize   uint64                 `json:"chunk_size"`
	Chunks      uint64                 `json:"chunks"`
	Workers     int                    `json:"workers"`
	Elapsed     time.Duration          `json:"elapsed_ns"`
	RatePerSec  float64                `json:"rate_per_sec"`
	Sample      []types.Record         `json:"sample,omitempty"`
	Fingerprint string                 `json:"fingerprint,omitempty"`
	Fill        *observability.Summary `json:"fill_stats,omitempty"`
	Before      *sysinfo.Snapshot      `json:"environment_before,omitempty"`
	After       *sysinfo.Snapshot      `json:"environment_after,omitempty"`
}

// Options configure how Build assembles a report.
type Options struct {
	// RunID identifies the run the report describes
	RunID string

	// ChunkSize is the run's records-per-chunk setting
	ChunkSize uint64

	// Workers is the resolved worker count the run used
	Workers int

	// SampleSize is the number of leading records to echo
	SampleSize int

	// Fingerprint enables the whole-buffer fingerprint
	Fingerprint bool
}

// Build assembles the report for a finished buffer. The buffer is read,
// never written. The throughput rate is computed from a clamped elapsed
// time so it stays finite and strictly positive even when the run
// finishes faster than the clock resolution.
func Build(buf []byte, elapsed time.Duration, opts Options) *Report {
	n := uint64(len(buf)) / types.RecordSize

	if elapsed <= 0 {
		elapsed = time.Nanosecond
	}

	rep := &Report{
		RunID:      opts.RunID,
		Records:    n,
		ChunkSize:  opts.ChunkSize,
		Workers:    opts.Workers,
		Elapsed:    elapsed,
		RatePerSec: float64(n) / elapsed.Seconds(),
	}
	if opts.ChunkSize > 0 {
		rep.Chunks = n / opts.ChunkSize
	}

	sample := opts.SampleSize
	if sample < 0 {
		sample = 0
	}
	if uint64(sample) > n {
		sample = int(n)
	}
	if sample > 0 {
		rep.Sample = make([]types.Record, sample)
		for i := 0; i < sample; i++ {
			rep.Sample[i] = types.RecordAt(buf, uint64(i))
		}
	}

	if opts.Fingerprint {
		rep.Fingerprint = Fingerprint(buf)
	}

	return rep
}
