package pttrace

import "testing"

func TestCursorReadBits(t *testing.T) {
	c := newCursor([]byte{0b10110010, 0b01000001})

	v, c, ok := c.readBits(4)
	if !ok || v != 0b1011 {
		t.Fatalf("readBits(4) = %04b, %v; want 1011, true", v, ok)
	}
	v, c, ok = c.readBits(8)
	if !ok || v != 0b00100100 {
		t.Fatalf("readBits(8) = %08b, %v; want 00100100, true", v, ok)
	}
	v, _, ok = c.readBits(4)
	if !ok || v != 0b0001 {
		t.Fatalf("readBits(4) = %04b, %v; want 0001, true", v, ok)
	}
}

func TestCursorReadBitsOutOfRange(t *testing.T) {
	c := newCursor([]byte{0xff})
	if _, _, ok := c.readBits(9); ok {
		t.Fatal("readBits(9) on single byte should fail")
	}
}

func TestCursorExpectBytes(t *testing.T) {
	c := newCursor([]byte{0x02, 0x23, 0xff})
	next, ok := c.expectBytes([]byte{0x02, 0x23})
	if !ok {
		t.Fatal("expectBytes should match")
	}
	if next.bit != 16 {
		t.Fatalf("bit = %d, want 16", next.bit)
	}

	if _, ok := c.expectBytes([]byte{0x02, 0x24}); ok {
		t.Fatal("expectBytes should not match on differing byte")
	}
}

func TestCursorExpectBytesRequiresByteAlignment(t *testing.T) {
	c := newCursor([]byte{0xff, 0x00})
	_, c, _ = c.readBits(1)
	if _, ok := c.expectBytes([]byte{0x00}); ok {
		t.Fatal("expectBytes should fail when not byte-aligned")
	}
}

func TestReadLELittleEndian(t *testing.T) {
	c := newCursor([]byte{0x01, 0x02, 0x03, 0x04})
	v, next, ok := readLE[uint32](c, 4)
	if !ok {
		t.Fatal("readLE should succeed")
	}
	if want := uint32(0x04030201); v != want {
		t.Fatalf("readLE = %#x, want %#x", v, want)
	}
	if next.bit != 32 {
		t.Fatalf("bit = %d, want 32", next.bit)
	}
}

func TestReadLEShortInput(t *testing.T) {
	c := newCursor([]byte{0x01, 0x02})
	if _, _, ok := readLE[uint32](c, 4); ok {
		t.Fatal("readLE should fail on truncated input")
	}
}

func TestCursorDoesNotMutateOnFailure(t *testing.T) {
	data := []byte{0xff}
	c := newCursor(data)
	if _, _, ok := c.readBits(9); ok {
		t.Fatal("expected failure")
	}
	if c.bit != 0 {
		t.Fatalf("original cursor mutated: bit = %d, want 0", c.bit)
	}
}
