package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/keymill/keymill/internal/keystream"
	"github.com/keymill/keymill/internal/observability"
	"github.com/keymill/keymill/pkg/types"
	"golang.org/x/sync/errgroup"
)

// fillChunks fans one fill task per chunk out over at most workers
// goroutines and blocks until every task has finished. Each task owns its
// chunk's exclusive sub-slice of buf and shares nothing else but the
// read-only key, so the tasks need no locks. The first task failure
// cancels the tasks still pending and is returned after the join.
// Completed fills are timed into stats; stats may be nil.
func fillChunks(ctx context.Context, key []byte, chunks []types.Chunk, buf []byte, workers int, stats *observability.FillStats) error {
	if workers <= 0 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, chunk := range chunks {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			start := time.Now()
			iv := keystream.DeriveIV(chunk.Index)
			if err := keystream.Fill(key, iv.Bytes(), chunk.Span(buf)); err != nil {
				return fmt.Errorf("chunk %d: %w", chunk.Index, err)
			}
			if stats != nil {
				stats.RecordFill(chunk.Index, chunk.ByteLength(), time.Since(start))
			}
			return nil
		})
	}

	return g.Wait()
}
