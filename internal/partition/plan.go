// Package partition computes the chunk plan that divides a run's record
// range into equal, contiguous, non-overlapping chunks.
package partition

import (
	"fmt"

	"github.com/keymill/keymill/internal/errors"
	"github.com/keymill/keymill/internal/keystream"
	"github.com/keymill/keymill/pkg/types"
)

// Plan divides n records into chunks of c records each.
//
// All plan validation happens here, before any buffer exists: n and c must
// be positive, c must divide n exactly, and c must fit inside the counter
// span the IV scheme reserves per chunk. The returned chunks are ordered
// by index and cover record indices [0, n) exactly once.
func Plan(n, c uint64) ([]types.Chunk, error) {
	if n == 0 || c == 0 {
		return nil, errors.NewConfigError(errors.CodeEmptyRun,
			fmt.Sprintf("records (%d) and chunk size (%d) must be positive", n, c))
	}

	if n%c != 0 {
		return nil, errors.NewConfigError(errors.CodeIndivisibleRecordCount,
			fmt.Sprintf("records (%d) must be divisible by chunk size (%d)", n, c))
	}

	count := n / c
	if max := keystream.MaxChunkRecords(count); c > max {
		return nil, errors.NewConfigError(errors.CodeCounterSpanOverlap,
			fmt.Sprintf("chunk size %d exceeds the %d-record counter span available with %d chunks", c, max, count))
	}

	chunks := make([]types.Chunk, count)
	for i := uint64(0); i < count; i++ {
		chunks[i] = types.Chunk{
			Index:  i,
			Start:  i * c,
			Length: c,
		}
	}
	return chunks, nil
}
