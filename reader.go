package bcfz

import "io"

// countingReader reads from a byte source and counts the number of bytes read.
// It implements io.ByteReader so bitio pulls bytes through it one at a time.
type countingReader struct {
	base  io.ByteReader // The byte reader to read from.
	count int64         // The number of bytes read.
}

// singleByteReader reads r one byte at a time, so r is never read ahead.
type singleByteReader struct {
	r   io.Reader
	buf [1]byte
}

// ReadByte reads exactly one byte from the underlying reader.
func (s *singleByteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(s.r, s.buf[:]); err != nil {
		return 0, err
	}

	return s.buf[0], nil
}

// newCountingReader wraps r. Readers without ReadByte are read one byte at a
// time instead of through bufio, so nothing past the decoded block is consumed.
func newCountingReader(r io.Reader) *countingReader {
	if existing, ok := r.(io.ByteReader); ok {
		return &countingReader{base: existing}
	}

	return &countingReader{base: &singleByteReader{r: r}}
}

// ReadByte reads a byte from the reader and increments the count.
func (r *countingReader) ReadByte() (byte, error) {
	b, err := r.base.ReadByte()
	if err != nil {
		return 0, err
	}

	r.count++

	return b, nil
}

// Read fills p byte by byte so the count stays exact.
func (r *countingReader) Read(p []byte) (int, error) {
	for i := range p {
		b, err := r.ReadByte()
		if err != nil {
			return i, err
		}
		p[i] = b
	}

	return len(p), nil
}
