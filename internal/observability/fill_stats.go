// Package observability provides fill timing statistics for throughput
// monitoring and worker tuning.
package observability

import (
	"sort"
	"sync"
	"time"
)

// FillStats collects per-chunk fill timings during a run. Workers record
// into it concurrently; summaries are taken after the generation join.
type FillStats struct {
	mu    sync.RWMutex
	fills []ChunkFill
}

// ChunkFill holds the timing of one completed chunk fill.
type ChunkFill struct {
	ChunkIndex uint64
	Bytes      uint64
	Elapsed    time.Duration
}

// NewFillStats creates a new fill statistics collector.
func NewFillStats() *FillStats {
	return &FillStats{}
}

// RecordFill records a completed chunk fill.
// This method is O(1) and thread-safe.
func (s *FillStats) RecordFill(chunkIndex uint64, bytes uint64, elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fills = append(s.fills, ChunkFill{
		ChunkIndex: chunkIndex,
		Bytes:      bytes,
		Elapsed:    elapsed,
	})
}

// Summary holds aggregated fill statistics for a finished run.
type Summary struct {
	Chunks      int           `json:"chunks"`
	TotalBytes  uint64        `json:"total_bytes"`
	MinChunk    time.Duration `json:"min_chunk_ns"`
	MedianChunk time.Duration `json:"median_chunk_ns"`
	MaxChunk    time.Duration `json:"max_chunk_ns"`
	AvgChunk    time.Duration `json:"avg_chunk_ns"`
}

// Summarize aggregates all recorded fills.
// Returns nil when nothing was recorded.
func (s *FillStats) Summarize() *Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.fills) == 0 {
		return nil
	}

	durations := make([]time.Duration, len(s.fills))
	var total time.Duration
	var bytes uint64
	for i, f := range s.fills {
		durations[i] = f.Elapsed
		total += f.Elapsed
		bytes += f.Bytes
	}

	sort.Slice(durations, func(i, j int) bool {
		return durations[i] < durations[j]
	})

	return &Summary{
		Chunks:      len(durations),
		TotalBytes:  bytes,
		MinChunk:    durations[0],
		MedianChunk: durations[len(durations)/2],
		MaxChunk:    durations[len(durations)-1],
		AvgChunk:    total / time.Duration(len(durations)),
	}
}

// SlowestChunks returns the n slowest fills, sorted by elapsed time
// descending. Returns a copy of the stats; the collector keeps
// accepting records.
func (s *FillStats) SlowestChunks(n int) []ChunkFill {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || len(s.fills) == 0 {
		return []ChunkFill{}
	}

	// Copy before sorting so recording order is preserved internally
	fills := make([]ChunkFill, len(s.fills))
	copy(fills, s.fills)

	sort.Slice(fills, func(i, j int) bool {
		return fills[i].Elapsed > fills[j].Elapsed
	})

	if n > len(fills) {
		n = len(fills)
	}
	return fills[:n]
}
