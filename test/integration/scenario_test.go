package integration

import (
	"bytes"
	"context"
	"crypto/aes"
	"encoding/binary"
	"testing"

	"github.com/keymill/keymill/internal/engine"
	"github.com/keymill/keymill/internal/keystream"
	"github.com/keymill/keymill/internal/partition"
	"github.com/keymill/keymill/pkg/types"
)

// counterBlock returns the CTR counter for offset k past iv, read as one
// 16-byte big-endian integer.
func counterBlock(iv types.IV, k uint64) []byte {
	hi := binary.BigEndian.Uint64(iv[0:8])
	lo := binary.BigEndian.Uint64(iv[8:16])
	sum := lo + k
	if sum < lo {
		hi++
	}

	out := make([]byte, 16)
	binary.BigEndian.PutUint64(out[0:8], hi)
	binary.BigEndian.PutUint64(out[8:16], sum)
	return out
}

// TestTwoChunkScenario walks the canonical demonstration run: two
// million records under the fixed 0x13 key, split into two chunks of one
// million records, and verifies the exact bytes at the chunk boundaries
// against the block cipher.
func TestTwoChunkScenario(t *testing.T) {
	const (
		records   = 2_000_000
		chunkSize = 1_000_000
	)
	key := mustKey(t, "13131313131313131313131313131313")

	chunks, err := partition.Plan(records, chunkSize)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[0].Start != 0 || chunks[0].Length != chunkSize {
		t.Errorf("chunk 0 = %+v", chunks[0])
	}
	if chunks[1].Start != chunkSize || chunks[1].Length != chunkSize {
		t.Errorf("chunk 1 = %+v", chunks[1])
	}

	// Chunk 0 seeds from the all-zero IV, chunk 1 from index 1 in the
	// low half, little-endian.
	iv0 := keystream.DeriveIV(0)
	iv1 := keystream.DeriveIV(1)
	if iv0 != (types.IV{}) {
		t.Errorf("iv0 = %s, want all zeros", iv0)
	}
	if iv1 != (types.IV{8: 0x01}) {
		t.Errorf("iv1 = %s, want byte 8 set to 0x01", iv1)
	}

	run, err := engine.NewRun(engine.RunConfig{
		Records:   records,
		ChunkSize: chunkSize,
		Key:       key,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := run.Execute(context.Background(), nil); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	buf, err := run.Buffer()
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != records*types.RecordSize {
		t.Fatalf("buffer length = %d, want %d", len(buf), records*types.RecordSize)
	}

	cipher, err := aes.NewCipher(key.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	encrypt := func(counter []byte) []byte {
		out := make([]byte, 16)
		cipher.Encrypt(out, counter)
		return out
	}

	// First and last blocks of each chunk, against the counter values the
	// IV scheme implies.
	checks := []struct {
		name    string
		offset  uint64
		counter []byte
	}{
		{"chunk 0 first record", 0, counterBlock(iv0, 0)},
		{"chunk 0 last record", (chunkSize - 1) * 16, counterBlock(iv0, chunkSize-1)},
		{"chunk 1 first record", chunkSize * 16, counterBlock(iv1, 0)},
		{"chunk 1 last record", (records - 1) * 16, counterBlock(iv1, chunkSize-1)},
	}

	for _, c := range checks {
		got := buf[c.offset : c.offset+16]
		if !bytes.Equal(got, encrypt(c.counter)) {
			t.Errorf("%s does not match the block cipher reference", c.name)
		}
	}

	// The two chunks start from distinct counters, so their first
	// records must differ.
	if bytes.Equal(buf[:16], buf[chunkSize*16:chunkSize*16+16]) {
		t.Error("chunk 0 and chunk 1 share their first record")
	}
}
