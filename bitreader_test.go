package bcfz

import (
	"errors"
	"testing"
)

var bitSample = []byte{0b11001010, 0b11110000}

func TestReadBitOrder(t *testing.T) {
	br := NewBitReader(bitSample)
	want := []uint8{1, 1, 0, 0, 1, 0, 1, 0, 1, 1, 1, 1, 0, 0, 0, 0}
	for i, w := range want {
		b, err := br.ReadBit()
		if err != nil {
			t.Fatalf("bit %d: %v", i, err)
		}
		if b != w {
			t.Fatalf("bit %d: got %d want %d", i, b, w)
		}
	}
	if _, err := br.ReadBit(); !errors.Is(err, ErrEndOfStream) {
		t.Fatalf("want ErrEndOfStream, got %v", err)
	}
}

func TestReadUintLSBFirst(t *testing.T) {
	for _, n := range []uint8{8, 7} {
		br := NewBitReader(bitSample)
		v, err := br.ReadUintLSBFirst(n)
		if err != nil {
			t.Fatal(err)
		}
		if v != 83 {
			t.Fatalf("n=%d: got %d want 83", n, v)
		}
	}
}

func TestReadUintMSBFirst(t *testing.T) {
	br := NewBitReader(bitSample)
	v, err := br.ReadUintMSBFirst(8)
	if err != nil {
		t.Fatal(err)
	}
	if v != 202 {
		t.Fatalf("got %d want 202", v)
	}

	br = NewBitReader(bitSample)
	v, err = br.ReadUintMSBFirst(7)
	if err != nil {
		t.Fatal(err)
	}
	if v != 101 {
		t.Fatalf("got %d want 101", v)
	}
}

func TestReadOrdersAcrossByteBoundary(t *testing.T) {
	// 1100 1010 1111 0000: MSB 4 = 1100, then bits 1,0,1,0,1,1 LSB first = 110101.
	br := NewBitReader(bitSample)
	hi, err := br.ReadUintMSBFirst(4)
	if err != nil {
		t.Fatal(err)
	}
	lo, err := br.ReadUintLSBFirst(6)
	if err != nil {
		t.Fatal(err)
	}
	if hi != 0b1100 || lo != 0b110101 {
		t.Fatalf("got hi=%b lo=%b", hi, lo)
	}

	byteIdx, bitIdx := br.Position()
	if byteIdx != 1 || bitIdx != 2 || br.BitsRead() != 10 {
		t.Fatalf("position %d:%d bits=%d", byteIdx, bitIdx, br.BitsRead())
	}
}

func TestReadZeroWidth(t *testing.T) {
	br := NewBitReader(nil)
	v, err := br.ReadUintLSBFirst(0)
	if err != nil || v != 0 {
		t.Fatalf("got %d, %v", v, err)
	}
	if br.BitsRead() != 0 {
		t.Fatalf("zero-width read consumed %d bits", br.BitsRead())
	}
}

func TestReadFieldTooWide(t *testing.T) {
	br := NewBitReader(make([]byte, 16))
	if _, err := br.ReadUintMSBFirst(65); !errors.Is(err, ErrFieldTooWide) {
		t.Fatalf("want ErrFieldTooWide, got %v", err)
	}
}

func TestReadPartialFieldFails(t *testing.T) {
	br := NewBitReader([]byte{0xFF})
	if _, err := br.ReadUintMSBFirst(5); err != nil {
		t.Fatal(err)
	}
	if _, err := br.ReadUintLSBFirst(4); !errors.Is(err, ErrEndOfStream) {
		t.Fatalf("want ErrEndOfStream, got %v", err)
	}

	// The failed field is not counted.
	if byteIdx, bitIdx := br.Position(); byteIdx != 0 || bitIdx != 5 {
		t.Fatalf("position %d:%d after failed read", byteIdx, bitIdx)
	}
}

func TestReadBytesNegativeCount(t *testing.T) {
	br := NewBitReader([]byte{1, 2, 3})
	if _, err := br.ReadBytes(-1); !errors.Is(err, ErrNegativeCount) {
		t.Fatalf("want ErrNegativeCount, got %v", err)
	}
	if br.BitsRead() != 0 {
		t.Fatalf("bits=%d", br.BitsRead())
	}
}

func TestReadBytesUnaligned(t *testing.T) {
	// One leading bit shifts the payload: 1 0100 0111 0101 0000 000.
	br := NewBitReader([]byte{0b10100011, 0b10101000, 0b00000000})
	if _, err := br.ReadBit(); err != nil {
		t.Fatal(err)
	}
	got, err := br.ReadBytes(2)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 0x47 || got[1] != 0x50 {
		t.Fatalf("got % x", got)
	}
	if br.BitsRead() != 17 {
		t.Fatalf("bits=%d", br.BitsRead())
	}

	if _, err := br.ReadBytes(1); !errors.Is(err, ErrEndOfStream) {
		t.Fatalf("want ErrEndOfStream, got %v", err)
	}
}
