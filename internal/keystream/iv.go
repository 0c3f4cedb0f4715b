// Package keystream derives per-chunk initialization vectors and fills
// buffer spans with AES-128 CTR keystream.
//
// Each chunk's IV embeds the chunk index little-endian in its low 8 bytes
// and leaves the high 8 bytes zero. CTR mode then increments the whole
// 16-byte IV as one big-endian counter, one step per record. MaxChunkRecords
// gives the exact chunk length at which neighbouring counter ranges would
// start to overlap; plans are rejected before that point, so every chunk
// owns a disjoint slice of the counter space and the chunks can be filled
// concurrently without coordination.
package keystream

import (
	"encoding/binary"

	"github.com/keymill/keymill/pkg/types"
)

// DeriveIV maps a chunk index to its 16-byte IV. The mapping is pure and
// key-independent: equal indices always yield equal IVs, distinct indices
// always differ.
func DeriveIV(chunkIndex uint64) types.IV {
	var iv types.IV
	binary.LittleEndian.PutUint64(iv[8:16], chunkIndex)
	return iv
}

// MaxChunkRecords returns the largest chunk length, in records, that keeps
// all chunk counter ranges disjoint for a plan of count chunks. Every extra
// byte the largest chunk index occupies moves the index's top byte one
// position down the big-endian counter, dividing the guaranteed distance
// between neighbouring chunk counters by 256.
func MaxChunkRecords(count uint64) uint64 {
	if count == 0 {
		return 0
	}
	width := uint(1)
	for v := count - 1; v > 0xFF; v >>= 8 {
		width++
	}
	return uint64(1) << (64 - 8*width)
}
