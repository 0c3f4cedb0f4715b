package types

import "testing"

func TestChunkGeometry(t *testing.T) {
	c := Chunk{Index: 2, Start: 2000, Length: 1000}

	if c.End() != 3000 {
		t.Errorf("End() = %d, want 3000", c.End())
	}
	if c.ByteOffset() != 2000*RecordSize {
		t.Errorf("ByteOffset() = %d, want %d", c.ByteOffset(), 2000*RecordSize)
	}
	if c.ByteLength() != 1000*RecordSize {
		t.Errorf("ByteLength() = %d, want %d", c.ByteLength(), 1000*RecordSize)
	}
}

func TestChunkSpan(t *testing.T) {
	buf := make([]byte, 4*RecordSize)
	c := Chunk{Index: 1, Start: 1, Length: 2}

	span := c.Span(buf)
	if len(span) != 2*RecordSize {
		t.Fatalf("span length = %d, want %d", len(span), 2*RecordSize)
	}

	// Span is a view, not a copy: writes through it land in the buffer.
	span[0] = 0xEE
	if buf[RecordSize] != 0xEE {
		t.Error("write through span did not reach the buffer")
	}
	if buf[RecordSize-1] != 0 || buf[3*RecordSize] != 0 {
		t.Error("span write touched bytes outside the chunk")
	}
}

func TestChunkSpansDisjoint(t *testing.T) {
	buf := make([]byte, 6*RecordSize)
	a := Chunk{Index: 0, Start: 0, Length: 3}
	b := Chunk{Index: 1, Start: 3, Length: 3}

	for i := range a.Span(buf) {
		a.Span(buf)[i] = 0xAA
	}
	for i := range b.Span(buf) {
		b.Span(buf)[i] = 0xBB
	}

	for i := uint64(0); i < 3*RecordSize; i++ {
		if buf[i] != 0xAA {
			t.Fatalf("buf[%d] = 0x%02x, want 0xAA", i, buf[i])
		}
	}
	for i := uint64(3 * RecordSize); i < 6*RecordSize; i++ {
		if buf[i] != 0xBB {
			t.Fatalf("buf[%d] = 0x%02x, want 0xBB", i, buf[i])
		}
	}
}
