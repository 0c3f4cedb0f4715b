// Package engine drives a generation run through its lifecycle:
// plan, allocate, generate in parallel, report.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/keymill/keymill/internal/buffer"
	"github.com/keymill/keymill/internal/errors"
	"github.com/keymill/keymill/internal/observability"
	"github.com/keymill/keymill/internal/partition"
	"github.com/keymill/keymill/internal/report"
	"github.com/keymill/keymill/internal/sysinfo"
	"github.com/keymill/keymill/pkg/types"
)

// State tracks a run through its lifecycle. States advance in one
// direction only; a failed run stays where it failed.
type State string

const (
	StateConfigured State = "configured"
	StateAllocated  State = "allocated"
	StateGenerating State = "generating"
	StateCompleted  State = "completed"
	StateReported   State = "reported"
)

// RunConfig holds the parameters of one generation run.
type RunConfig struct {
	// Records is the total number of records to generate
	Records uint64

	// ChunkSize is the number of records per chunk
	ChunkSize uint64

	// Key is the run-wide AES-128 key
	Key types.Key

	// Workers caps concurrent fill tasks (0 = one per CPU)
	Workers int

	// SampleSize is the number of leading records echoed in the report
	SampleSize int

	// Fingerprint enables the report's buffer fingerprint
	Fingerprint bool
}

// Run is a single generation run. Runs move Configured → Allocated →
// Generating → Completed → Reported and are not reusable.
type Run struct {
	id      string
	cfg     RunConfig
	chunks  []types.Chunk
	workers int

	state   State
	buf     []byte
	elapsed time.Duration
	stats   *observability.FillStats

	before *sysinfo.Snapshot
	after  *sysinfo.Snapshot
}

// NewRun validates cfg, computes the chunk plan, and returns a Run in the
// Configured state. No buffer memory is reserved yet; invalid plans are
// rejected here, before any allocation.
func NewRun(cfg RunConfig) (*Run, error) {
	chunks, err := partition.Plan(cfg.Records, cfg.ChunkSize)
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Run{
		id:      uuid.NewString(),
		cfg:     cfg,
		chunks:  chunks,
		workers: workers,
		state:   StateConfigured,
		stats:   observability.NewFillStats(),
	}, nil
}

// ID returns the run's identifier.
func (r *Run) ID() string {
	return r.id
}

// State returns the run's current lifecycle state.
func (r *Run) State() State {
	return r.state
}

// Chunks returns the run's chunk plan.
func (r *Run) Chunks() []types.Chunk {
	return r.chunks
}

// Workers returns the resolved worker count.
func (r *Run) Workers() int {
	return r.workers
}

// Allocate reserves the zero-filled output buffer and advances the run
// to Allocated.
func (r *Run) Allocate() error {
	if r.state != StateConfigured {
		return r.invalidState("Allocate", StateConfigured)
	}

	buf, err := buffer.Allocate(r.cfg.Records)
	if err != nil {
		return err
	}

	r.buf = buf
	r.state = StateAllocated
	return nil
}

// Generate fills every chunk of the buffer in parallel and advances the
// run to Completed. It blocks until all chunk tasks have finished. The
// first task failure cancels the remaining tasks and fails the run; a
// failed run cannot be resumed.
func (r *Run) Generate(ctx context.Context) error {
	if r.state != StateAllocated {
		return r.invalidState("Generate", StateAllocated)
	}
	r.state = StateGenerating

	start := time.Now()
	if err := fillChunks(ctx, r.cfg.Key.Bytes(), r.chunks, r.buf, r.workers, r.stats); err != nil {
		return errors.NewWorkerError(errors.CodeTaskFailed, "generation failed", err)
	}
	r.elapsed = time.Since(start)

	r.state = StateCompleted
	return nil
}

// Report assembles the run report and advances the run to Reported. It
// runs strictly after Generate's join barrier; the buffer is complete
// and no longer written when it is sampled.
func (r *Run) Report() (*report.Report, error) {
	if r.state != StateCompleted {
		return nil, r.invalidState("Report", StateCompleted)
	}

	rep := report.Build(r.buf, r.elapsed, report.Options{
		RunID:       r.id,
		ChunkSize:   r.cfg.ChunkSize,
		Workers:     r.workers,
		SampleSize:  r.cfg.SampleSize,
		Fingerprint: r.cfg.Fingerprint,
	})
	rep.Before = r.before
	rep.After = r.after
	rep.Fill = r.stats.Summarize()

	r.state = StateReported
	return rep, nil
}

// Buffer exposes the generated output. It is valid once the run reaches
// Completed; from then on the contents never change.
func (r *Run) Buffer() ([]byte, error) {
	if r.state != StateCompleted && r.state != StateReported {
		return nil, r.invalidState("Buffer", StateCompleted)
	}
	return r.buf, nil
}

// Elapsed returns the measured generation time. Zero until the run
// completes.
func (r *Run) Elapsed() time.Duration {
	return r.elapsed
}

// Execute drives a full run: environment snapshot, allocate, generate,
// second snapshot, report. provider may be nil. Snapshot failures
// degrade the report instead of failing the run; everything else is
// fatal on first error.
func (r *Run) Execute(ctx context.Context, provider sysinfo.Provider) (*report.Report, error) {
	if provider != nil {
		if snap, err := provider.Snapshot(ctx); err == nil {
			r.before = snap
		}
	}

	if err := r.Allocate(); err != nil {
		return nil, err
	}

	if err := r.Generate(ctx); err != nil {
		return nil, err
	}

	if provider != nil {
		if snap, err := provider.Snapshot(ctx); err == nil {
			r.after = snap
		}
	}

	return r.Report()
}

func (r *Run) invalidState(op string, want State) error {
	return errors.New(errors.ErrCategoryInternal, errors.CodeInvalidState,
		fmt.Sprintf("%s requires state %q, run is %q", op, want, r.state))
}
