package observability

import (
	"sync"
	"testing"
	"time"
)

// TestRecordFillConcurrent tests concurrent RecordFill calls for race conditions.
func TestRecordFillConcurrent(t *testing.T) {
	fs := NewFillStats()
	var wg sync.WaitGroup
	numGoroutines := 10
	fillsPerGoroutine := 100

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < fillsPerGoroutine; j++ {
				fs.RecordFill(uint64(id*fillsPerGoroutine+j), 16_000_000, time.Millisecond)
			}
		}(i)
	}

	wg.Wait()

	summary := fs.Summarize()
	if summary == nil {
		t.Fatal("expected a summary after recording")
	}
	if summary.Chunks != numGoroutines*fillsPerGoroutine {
		t.Errorf("expected %d chunks, got %d", numGoroutines*fillsPerGoroutine, summary.Chunks)
	}
	if summary.TotalBytes != uint64(numGoroutines*fillsPerGoroutine)*16_000_000 {
		t.Errorf("total bytes = %d", summary.TotalBytes)
	}
}

// TestSummarize tests min/median/max/avg aggregation.
func TestSummarize(t *testing.T) {
	fs := NewFillStats()
	fs.RecordFill(0, 100, 10*time.Millisecond)
	fs.RecordFill(1, 100, 20*time.Millisecond)
	fs.RecordFill(2, 100, 60*time.Millisecond)

	summary := fs.Summarize()
	if summary == nil {
		t.Fatal("expected a summary")
	}

	if summary.MinChunk != 10*time.Millisecond {
		t.Errorf("min = %v, want 10ms", summary.MinChunk)
	}
	if summary.MedianChunk != 20*time.Millisecond {
		t.Errorf("median = %v, want 20ms", summary.MedianChunk)
	}
	if summary.MaxChunk != 60*time.Millisecond {
		t.Errorf("max = %v, want 60ms", summary.MaxChunk)
	}
	if summary.AvgChunk != 30*time.Millisecond {
		t.Errorf("avg = %v, want 30ms", summary.AvgChunk)
	}
	if summary.TotalBytes != 300 {
		t.Errorf("total bytes = %d, want 300", summary.TotalBytes)
	}
}

// TestSummarizeEmpty tests that an empty collector summarizes to nil.
func TestSummarizeEmpty(t *testing.T) {
	fs := NewFillStats()
	if fs.Summarize() != nil {
		t.Error("empty collector should summarize to nil")
	}
}

// TestSlowestChunksOrdering tests that SlowestChunks returns results sorted by elapsed time.
func TestSlowestChunksOrdering(t *testing.T) {
	fs := NewFillStats()
	fs.RecordFill(0, 100, 10*time.Millisecond)
	fs.RecordFill(1, 100, 50*time.Millisecond)
	fs.RecordFill(2, 100, 30*time.Millisecond)

	slowest := fs.SlowestChunks(2)
	if len(slowest) != 2 {
		t.Fatalf("expected 2 fills, got %d", len(slowest))
	}

	if slowest[0].ChunkIndex != 1 || slowest[0].Elapsed != 50*time.Millisecond {
		t.Errorf("slowest = chunk %d (%v), want chunk 1 (50ms)", slowest[0].ChunkIndex, slowest[0].Elapsed)
	}
	if slowest[1].ChunkIndex != 2 || slowest[1].Elapsed != 30*time.Millisecond {
		t.Errorf("second slowest = chunk %d (%v), want chunk 2 (30ms)", slowest[1].ChunkIndex, slowest[1].Elapsed)
	}
}

// TestSlowestChunksClamps tests the n > recorded and n <= 0 edges.
func TestSlowestChunksClamps(t *testing.T) {
	fs := NewFillStats()
	fs.RecordFill(0, 100, time.Millisecond)

	if got := fs.SlowestChunks(10); len(got) != 1 {
		t.Errorf("expected clamp to 1 fill, got %d", len(got))
	}
	if got := fs.SlowestChunks(0); len(got) != 0 {
		t.Errorf("expected no fills for n=0, got %d", len(got))
	}
}
