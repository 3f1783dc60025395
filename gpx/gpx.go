// Package gpx reads GuitarPro 6 containers: a BCFZ-compressed or plain BCFS
// sector filesystem holding the score and its side files.
package gpx

import (
	"bytes"
	"fmt"

	"github.com/woozymasta/bcfz"
)

// FileType is the container kind named by the first four bytes.
type FileType int

// Container kinds.
const (
	TypeUnknown FileType = iota
	TypeBCFS             // Uncompressed sector filesystem.
	TypeBCFZ             // BCFZ-compressed BCFS.
)

// MagicBCFS starts an uncompressed container.
const MagicBCFS = "BCFS"

// MagicSize is the length of both container magics.
const MagicSize = 4

// String returns the magic for known types.
func (t FileType) String() string {
	switch t {
	case TypeBCFS:
		return MagicBCFS
	case TypeBCFZ:
		return bcfz.Magic
	default:
		return "unknown"
	}
}

// File is one entry of a BCFS filesystem.
type File struct {
	Name string
	Data []byte
}

// Detect returns the container kind of data.
func Detect(data []byte) (FileType, error) {
	switch {
	case bytes.HasPrefix(data, []byte(MagicBCFS)):
		return TypeBCFS, nil
	case bcfz.HasMagic(data):
		return TypeBCFZ, nil
	default:
		return TypeUnknown, ErrUnknownFormat
	}
}

// Read unpacks a .gpx file. BCFZ input is decompressed with opts (nil means
// bcfz.DefaultOptions) and must contain a BCFS filesystem.
func Read(data []byte, opts *bcfz.Options) ([]File, error) {
	kind, err := Detect(data)
	if err != nil {
		return nil, err
	}

	if kind == TypeBCFS {
		return DecompressBCFS(data[MagicSize:])
	}

	payload, err := Payload(data, opts)
	if err != nil {
		return nil, err
	}

	inner, err := Detect(payload)
	switch {
	case err != nil:
		return nil, ErrMissingBCFS
	case inner == TypeBCFZ:
		return nil, ErrNestedBCFZ
	}

	return DecompressBCFS(payload[MagicSize:])
}

// Payload decompresses a BCFZ file (magic included) and returns the raw payload.
func Payload(data []byte, opts *bcfz.Options) ([]byte, error) {
	if !bcfz.HasMagic(data) {
		return nil, ErrUnknownFormat
	}

	out, err := bcfz.DecompressBlock(data[MagicSize:], opts)
	if err != nil {
		return nil, fmt.Errorf("decompress bcfz: %w", err)
	}

	return out, nil
}
