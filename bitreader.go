package bcfz

import (
	"bytes"
	"errors"
	"io"
	"math/bits"

	"github.com/icza/bitio"
)

// BitReader reads bits from a compressed body. Bits are taken from each byte
// most significant first; integers are assembled in one of two orders
// depending on the field being read.
type BitReader struct {
	in  *bitio.Reader
	pos uint64 // Bits consumed so far.
}

// NewBitReader returns a BitReader over data.
func NewBitReader(data []byte) *BitReader {
	return NewBitReaderFrom(bytes.NewReader(data))
}

// NewBitReaderFrom returns a BitReader over a stream.
func NewBitReaderFrom(r io.Reader) *BitReader {
	return &BitReader{in: bitio.NewReader(r)}
}

// Position returns the byte index and bit index (0-7) of the next unread bit.
// A failed read is not counted: Position then reports the start of the failed
// field, although the underlying stream may have been consumed past it.
func (br *BitReader) Position() (int64, uint8) {
	return int64(br.pos / 8), uint8(br.pos % 8)
}

// BitsRead returns the number of bits consumed so far.
func (br *BitReader) BitsRead() uint64 {
	return br.pos
}

// ReadBit returns the next bit.
func (br *BitReader) ReadBit() (uint8, error) {
	b, err := br.in.ReadBool()
	if err != nil {
		return 0, streamErr(err)
	}

	br.pos++
	if b {
		return 1, nil
	}

	return 0, nil
}

// ReadUintMSBFirst reads n bits; the first bit read is the most significant bit of the result.
func (br *BitReader) ReadUintMSBFirst(n uint8) (uint64, error) {
	if n == 0 {
		return 0, nil
	}
	if n > 64 {
		return 0, ErrFieldTooWide
	}

	v, err := br.in.ReadBits(n)
	if err != nil {
		return 0, streamErr(err)
	}

	br.pos += uint64(n)

	return v, nil
}

// ReadUintLSBFirst reads n bits; the first bit read is the least significant bit of the result.
func (br *BitReader) ReadUintLSBFirst(n uint8) (uint64, error) {
	v, err := br.ReadUintMSBFirst(n)
	if err != nil || n == 0 {
		return v, err
	}

	// Reversing the MSB-first value puts the first bit read at bit 0.
	return bits.Reverse64(v) >> (64 - n), nil
}

// ReadBytes reads n bytes, each assembled from the next 8 bits in stream order.
func (br *BitReader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}

	out := make([]byte, n)
	for i := range out {
		b, err := br.in.ReadByte()
		if err != nil {
			return nil, streamErr(err)
		}
		out[i] = b
		br.pos += 8
	}

	return out, nil
}

// streamErr maps exhaustion of the underlying reader to ErrEndOfStream.
func streamErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrEndOfStream
	}

	return err
}
