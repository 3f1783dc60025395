// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/bcfz

package bcfz

import (
	"errors"
	"fmt"
)

// Package errors. Use errors.New for static messages, fmt.Errorf when values are needed.
var (
	ErrEndOfStream          = errors.New("end of bit stream")
	ErrTruncatedChunk       = errors.New("chunk truncated by end of input")
	ErrInvalidBackreference = errors.New("back-reference outside of output")
	ErrFieldTooWide         = errors.New("bit field wider than 64 bits")
	ErrNegativeCount        = errors.New("byte count must be non-negative")
	ErrInputTooShort        = errors.New("not enough data for length header")
	ErrNilReader            = errors.New("reader is nil")
	ErrNegativeOutLen       = errors.New("output length must be non-negative")
)

// ErrorKind classifies fatal decode failures.
type ErrorKind int

// Decode error kinds.
const (
	KindTruncatedChunk       ErrorKind = iota + 1 // Input ended inside an announced chunk.
	KindInvalidBackreference                      // Offset is zero or points before the output start.
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindTruncatedChunk:
		return "truncated chunk"
	case KindInvalidBackreference:
		return "invalid back-reference"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// DecodeError reports a fatal failure with the bit position where the failing chunk started.
type DecodeError struct {
	Kind   ErrorKind
	Field  string // Chunk field being read or checked ("flag", "length", "offset", ...).
	Offset int64  // Byte index of the chunk start in the compressed body.
	Bit    uint8  // Bit index (0-7, most significant first) within Offset.
	Output int    // Output length when the chunk started.
	Detail string
}

// Error implements error.
func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("bcfz: %s at byte %d bit %d (field %s, output %d)", e.Kind, e.Offset, e.Bit, e.Field, e.Output)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}

	return msg
}

// Unwrap maps the kind to its sentinel so errors.Is works on *DecodeError.
func (e *DecodeError) Unwrap() error {
	switch e.Kind {
	case KindTruncatedChunk:
		return ErrTruncatedChunk
	case KindInvalidBackreference:
		return ErrInvalidBackreference
	default:
		return nil
	}
}
