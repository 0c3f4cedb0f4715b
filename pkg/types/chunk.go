package types

// Chunk describes one contiguous run of records inside the output buffer.
// Chunks are descriptors only; they never own storage. Span resolves a
// chunk against the buffer it indexes.
type Chunk struct {
	// Index is the chunk's position in the plan, starting at 0
	Index uint64 `json:"index"`

	// Start is the record index of the chunk's first record
	Start uint64 `json:"start"`

	// Length is the number of records in the chunk
	Length uint64 `json:"length"`
}

// End returns the record index one past the chunk's last record.
func (c Chunk) End() uint64 {
	return c.Start + c.Length
}

// ByteOffset returns the buffer offset of the chunk's first byte.
func (c Chunk) ByteOffset() uint64 {
	return c.Start * RecordSize
}

// ByteLength returns the chunk's length in bytes.
func (c Chunk) ByteLength() uint64 {
	return c.Length * RecordSize
}

// Span returns the chunk's sub-slice of buf. Spans of distinct chunks in
// one plan never overlap, so each span may be written concurrently with
// the others without locks.
func (c Chunk) Span(buf []byte) []byte {
	return buf[c.ByteOffset() : c.ByteOffset()+c.ByteLength()]
}
