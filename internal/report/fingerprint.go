package report

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/spaolacci/murmur3"
)

// Fingerprint returns the 128-bit murmur3 hash of buf as 32 hex
// characters. Two runs with the same configuration yield the same
// fingerprint, so determinism can be checked without keeping or
// diffing whole buffers.
func Fingerprint(buf []byte) string {
	h := murmur3.New128()
	h.Write(buf)
	h1, h2 := h.Sum128()

	var out [16]byte
	binary.BigEndian.PutUint64(out[0:8], h1)
	binary.BigEndian.PutUint64(out[8:16], h2)
	return hex.EncodeToString(out[:])
}
