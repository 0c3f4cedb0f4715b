package benchmark

import (
	"fmt"
	"os"
	"runtime"
	"testing"

	"github.com/joho/godotenv"
	"github.com/keymill/keymill/internal/config"
	"github.com/keymill/keymill/pkg/types"
)

// benchKey returns the key benchmarks generate under. It respects
// KEYMILL_BENCH_KEY from .env or the environment and falls back to the
// fixed demonstration key.
func benchKey(b *testing.B) types.Key {
	// Try loading .env from project root (../../.env relative to test/benchmark)
	_ = godotenv.Load("../../.env")

	hex := os.Getenv("KEYMILL_BENCH_KEY")
	if hex == "" {
		hex = config.DefaultKey
	}

	key, err := types.ParseKey(hex)
	if err != nil {
		b.Fatalf("invalid KEYMILL_BENCH_KEY: %v", err)
	}
	return key
}

// benchWorkers returns the worker count for generation benchmarks,
// overridable via KEYMILL_BENCH_WORKERS.
func benchWorkers(b *testing.B) int {
	_ = godotenv.Load("../../.env")

	if v := os.Getenv("KEYMILL_BENCH_WORKERS"); v != "" {
		var workers int
		if _, err := fmt.Sscanf(v, "%d", &workers); err == nil && workers > 0 {
			return workers
		}
		b.Logf("ignoring malformed KEYMILL_BENCH_WORKERS=%q", v)
	}
	return runtime.NumCPU()
}

// requireHeavy skips a benchmark unless heavy runs are explicitly
// enabled. Heavy benchmarks allocate buffers in the hundreds of
// megabytes to gigabytes.
func requireHeavy(b *testing.B) {
	_ = godotenv.Load("../../.env")

	if v := os.Getenv("KEYMILL_BENCH_HEAVY"); v != "true" && v != "1" {
		b.Skip("set KEYMILL_BENCH_HEAVY=1 to run heavy benchmarks")
	}
}
