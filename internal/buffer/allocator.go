// Package buffer allocates the contiguous output buffer for a run.
package buffer

import (
	"fmt"
	"math"

	"github.com/keymill/keymill/internal/errors"
	"github.com/keymill/keymill/pkg/types"
)

// MaxRecords is the largest record count whose byte size still fits in a
// single slice.
const MaxRecords = uint64(math.MaxInt) / types.RecordSize

// Allocate reserves zero-filled contiguous storage for n records. Record
// counts whose byte size cannot be represented fail with an ALLOCATION
// error before any memory is reserved. If the system cannot satisfy the
// reservation itself the runtime aborts; a partially generated buffer is
// never observable.
func Allocate(n uint64) ([]byte, error) {
	if n > MaxRecords {
		return nil, errors.NewAllocationError(errors.CodeSizeOverflow,
			fmt.Sprintf("%d records exceed the maximum of %d", n, MaxRecords))
	}
	return make([]byte, n*types.RecordSize), nil
}
