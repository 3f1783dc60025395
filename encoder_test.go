package bcfz

import (
	"bytes"
	"math/bits"
	"testing"

	"github.com/icza/bitio"
)

// chunkWriter builds BCFZ bodies chunk by chunk for tests.
type chunkWriter struct {
	t    testing.TB
	buf  bytes.Buffer
	w    *bitio.Writer
	bits int
}

func newChunkWriter(t testing.TB) *chunkWriter {
	cw := &chunkWriter{t: t}
	cw.w = bitio.NewWriter(&cw.buf)

	return cw
}

func (cw *chunkWriter) msb(v uint64, n uint8) {
	if n == 0 {
		return
	}
	if err := cw.w.WriteBits(v, n); err != nil {
		cw.t.Fatal(err)
	}
	cw.bits += int(n)
}

func (cw *chunkWriter) lsb(v uint64, n uint8) {
	if n == 0 {
		return
	}
	cw.msb(bits.Reverse64(v)>>(64-n), n)
}

// literal writes one literal chunk of up to 3 bytes.
func (cw *chunkWriter) literal(p ...byte) {
	if len(p) > 3 {
		cw.t.Fatalf("literal chunk too long: %d", len(p))
	}
	cw.lsb(0, 1)
	cw.lsb(uint64(len(p)), SelectorBits)
	for _, b := range p {
		cw.msb(uint64(b), 8)
	}
}

// backref writes one back-reference chunk with the given word size.
func (cw *chunkWriter) backref(wordSize uint8, offset, length uint64) {
	cw.lsb(1, 1)
	cw.msb(uint64(wordSize), WordSizeBits)
	cw.lsb(offset, wordSize)
	cw.lsb(length, wordSize)
}

// align pads with empty literal chunks until the stream ends on a byte boundary.
func (cw *chunkWriter) align() {
	for cw.bits%8 != 0 {
		cw.literal()
	}
}

func (cw *chunkWriter) bytes() []byte {
	if err := cw.w.Close(); err != nil {
		cw.t.Fatal(err)
	}

	return cw.buf.Bytes()
}

// maxWord is the largest offset or length a 4-bit word size can express.
const maxWord = 1<<15 - 1

// encode is a greedy reference encoder. With overlap false it never emits a
// length above its offset, so both copy modes decode its output identically.
func encode(t testing.TB, src []byte, searchLimit int, overlap bool) []byte {
	cw := newChunkWriter(t)
	var pending []byte

	flush := func() {
		for len(pending) > 0 {
			n := min(len(pending), 3)
			cw.literal(pending[:n]...)
			pending = pending[n:]
		}
	}

	i := 0
	for i < len(src) {
		bestLen := 0
		bestOff := 0

		maxCheck := min(i, searchLimit, maxWord)
		for off := 1; off <= maxCheck; off++ {
			limit := min(len(src)-i, maxWord)
			if !overlap {
				limit = min(limit, off)
			}

			length := 0
			for length < limit && src[i-off+length] == src[i+length] {
				length++
			}

			if length > bestLen {
				bestLen = length
				bestOff = off
			}
		}

		if bestLen >= 3 {
			flush()
			w := uint8(bits.Len(uint(max(bestOff, bestLen))))
			cw.backref(w, uint64(bestOff), uint64(bestLen))
			i += bestLen
			continue
		}

		pending = append(pending, src[i])
		i++
	}
	flush()

	return cw.bytes()
}
