// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/bcfz

package bcfz

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Decode decompresses a BCFZ body (the bytes after the length header) into a
// new buffer of about expectedLen bytes. Options nil means DefaultOptions.
//
// Decoding stops once the output reaches expectedLen. The last chunk is always
// completed, so the result may be longer than expectedLen. If the input ends
// exactly where the next chunk flag would start, the shorter output is returned
// without error.
func Decode(src []byte, expectedLen int, opts *Options) ([]byte, error) {
	return decode(NewBitReader(src), expectedLen, opts)
}

// DecodeReader is Decode over a stream. It reads no further than the byte holding the last decoded bit.
func DecodeReader(r io.Reader, expectedLen int, opts *Options) ([]byte, error) {
	if r == nil {
		return nil, ErrNilReader
	}

	return decode(NewBitReaderFrom(newCountingReader(r)), expectedLen, opts)
}

// DecompressBlock decompresses src starting with the 4-byte little-endian length header.
func DecompressBlock(src []byte, opts *Options) ([]byte, error) {
	if len(src) < HeaderSize {
		return nil, ErrInputTooShort
	}

	outLen := binary.LittleEndian.Uint32(src[:HeaderSize])

	return Decode(src[HeaderSize:], int(outLen), opts)
}

// DecompressFromReader decompresses one length-prefixed block from r and returns consumed bytes.
func DecompressFromReader(r io.Reader, opts *Options) ([]byte, int64, error) {
	if r == nil {
		return nil, 0, ErrNilReader
	}

	countingReader := newCountingReader(r)

	var header [HeaderSize]byte
	if _, err := io.ReadFull(countingReader, header[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, countingReader.count, ErrInputTooShort
		}

		return nil, countingReader.count, err
	}

	outLen := binary.LittleEndian.Uint32(header[:])
	out, err := decode(NewBitReaderFrom(countingReader), int(outLen), opts)
	if err != nil {
		return nil, countingReader.count, err
	}

	return out, countingReader.count, nil
}

// HasMagic reports whether data starts with the BCFZ magic.
func HasMagic(data []byte) bool {
	return bytes.HasPrefix(data, []byte(Magic))
}

// decode runs the chunk loop until the output reaches outLen or the input ends on a chunk boundary.
func decode(br *BitReader, outLen int, opts *Options) ([]byte, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if outLen < 0 {
		return nil, ErrNegativeOutLen
	}

	opts.debug("bcfz: decode start", "expected", outLen, "copy", opts.Copy)

	out := make([]byte, 0, min(outLen, MaxPrealloc))

	for len(out) < outLen {
		chunkByte, chunkBit := br.Position()
		chunkOut := len(out)

		// fail builds a fatal error located at the start of the current chunk.
		fail := func(kind ErrorKind, field string, detail string) error {
			return &DecodeError{
				Kind:   kind,
				Field:  field,
				Offset: chunkByte,
				Bit:    chunkBit,
				Output: chunkOut,
				Detail: detail,
			}
		}

		// truncated converts end of stream inside a chunk into a fatal error.
		truncated := func(field string, err error) error {
			if errors.Is(err, ErrEndOfStream) {
				return fail(KindTruncatedChunk, field, "")
			}

			return fmt.Errorf("read %s: %w", field, err)
		}

		flag, err := br.ReadUintLSBFirst(1)
		if err != nil {
			if errors.Is(err, ErrEndOfStream) {
				opts.debug("bcfz: input ended before expected length", "expected", outLen, "got", len(out))
				break
			}

			return nil, err
		}

		// Flag 0 is a literal run, flag 1 is a back-reference.
		if flag == 0 {
			selector, err := br.ReadUintLSBFirst(SelectorBits)
			if err != nil {
				return nil, truncated("selector", err)
			}

			lit, err := br.ReadBytes(literalLengths[selector])
			if err != nil {
				return nil, truncated("literal", err)
			}

			out = append(out, lit...)
			continue
		}

		wordSize, err := br.ReadUintMSBFirst(WordSizeBits)
		if err != nil {
			return nil, truncated("word size", err)
		}
		offset, err := br.ReadUintLSBFirst(uint8(wordSize))
		if err != nil {
			return nil, truncated("offset", err)
		}
		length, err := br.ReadUintLSBFirst(uint8(wordSize))
		if err != nil {
			return nil, truncated("length", err)
		}

		if offset == 0 || offset > uint64(len(out)) {
			return nil, fail(KindInvalidBackreference, "offset",
				fmt.Sprintf("offset=%d output=%d", offset, len(out)))
		}

		need := int(length)
		if opts.Copy == CopyClamped && need > int(offset) {
			need = int(offset)
		}

		// rpos moves with the output: when need > offset the copy re-reads bytes
		// appended earlier in this loop (RLE-like extension).
		rpos := len(out) - int(offset)
		for k := 0; k < need; k++ {
			out = append(out, out[rpos+k])
		}
	}

	opts.debug("bcfz: decode done", "expected", outLen, "got", len(out), "bits", br.BitsRead())

	return out, nil
}
