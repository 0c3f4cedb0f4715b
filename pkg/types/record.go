package types

import (
	"encoding/hex"
	"encoding/json"
)

const (
	// RecordSize is the fixed size of one generated record in bytes.
	RecordSize = 16

	// KeySize is the AES-128 key size in bytes.
	KeySize = 16

	// IVSize is the cipher initialization vector size in bytes.
	IVSize = 16

	// BlockSize is the cipher block size in bytes. One counter increment
	// yields one block of keystream, which is exactly one record.
	BlockSize = 16
)

// Record is one fixed-size unit of generated output. Records carry no
// internal structure; they are addressed only by their position in the
// output buffer.
type Record [RecordSize]byte

// RecordAt returns the record at index i of a generated buffer.
func RecordAt(buf []byte, i uint64) Record {
	var r Record
	copy(r[:], buf[i*RecordSize:(i+1)*RecordSize])
	return r
}

// Bytes returns the record as a byte slice.
func (r Record) Bytes() []byte {
	return r[:]
}

// String returns the record as lowercase hex.
func (r Record) String() string {
	return hex.EncodeToString(r[:])
}

// MarshalJSON encodes the record as a hex string rather than a byte array.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// Key is the run-wide AES-128 key. Every chunk of a run is generated from
// the same key; only the per-chunk IV varies.
type Key [KeySize]byte

// ParseKey decodes a 32-character hex string into a Key.
func ParseKey(s string) (Key, error) {
	var k Key
	raw, err := hex.DecodeString(s)
	if err != nil {
		return k, ErrInvalidKeyEncoding
	}
	if len(raw) != KeySize {
		return k, ErrInvalidKeyLength
	}
	copy(k[:], raw)
	return k, nil
}

// MustParseKey is like ParseKey but panics on invalid input.
// Useful for tests and fixed demonstration keys.
func MustParseKey(s string) Key {
	k, err := ParseKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Bytes returns the key as a byte slice.
func (k Key) Bytes() []byte {
	return k[:]
}

// String returns the key as lowercase hex.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// IV is a 16-byte cipher initialization vector. Each chunk of a run has
// its own IV, derived from the chunk index.
type IV [IVSize]byte

// Bytes returns the IV as a byte slice.
func (v IV) Bytes() []byte {
	return v[:]
}

// String returns the IV as lowercase hex.
func (v IV) String() string {
	return hex.EncodeToString(v[:])
}
