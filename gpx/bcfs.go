package gpx

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// BCFS layout constants. Offsets are relative to the data after the magic.
const (
	SectorSize     = 0x1000
	EntryFile      = 2    // Sector tag of a file entry.
	entryName      = 0x04 // NUL-padded file name.
	entryNameSize  = 127
	entrySize      = 0x8C // Little-endian int32 file size.
	entryBlockList = 0x94 // Little-endian int32 sector numbers, 0-terminated.
)

// DecompressBCFS walks the sector filesystem in data and returns its files in
// sector order. Entries whose declared size exceeds their blocks are skipped.
// The scan resumes after the highest block of each entry, so data sectors are
// never read as entries.
func DecompressBCFS(data []byte) ([]File, error) {
	var files []File

	// The first sector is the header; entries start at the second one.
	for offset := SectorSize; offset+3 < len(data); offset += SectorSize {
		if readInt32(data, offset) != EntryFile {
			continue
		}

		if offset+entrySize+4 > len(data) {
			return nil, fmt.Errorf("%w: size of entry at 0x%x", ErrCorruptContainer, offset)
		}
		size := int64(readInt32(data, offset+entrySize))

		var content []byte
		lastBlock := int64(0)
		for i := 0; int64(len(content)) < size; i++ {
			idx := offset + entryBlockList + 4*i
			if idx+4 > len(data) {
				return nil, fmt.Errorf("%w: block list of entry at 0x%x", ErrCorruptContainer, offset)
			}

			block := int64(readInt32(data, idx))
			if block == 0 {
				break
			}

			start := block * SectorSize
			if block < 0 || start+SectorSize > int64(len(data)) {
				return nil, fmt.Errorf("%w: block %d of entry at 0x%x", ErrCorruptContainer, block, offset)
			}
			// Distinct sectors can never add up to more than the image itself.
			if len(content)+SectorSize > len(data) {
				return nil, fmt.Errorf("%w: blocks of entry at 0x%x exceed image size", ErrCorruptContainer, offset)
			}
			content = append(content, data[start:start+SectorSize]...)
			lastBlock = max(lastBlock, block)
		}

		name := entryFileName(data, offset)
		offset = max(offset, int(lastBlock*SectorSize))

		if size < 0 || size > int64(len(content)) {
			continue
		}

		files = append(files, File{
			Name: name,
			Data: content[:size],
		})
	}

	return files, nil
}

// readInt32 reads a little-endian int32 at off, or 0 when it does not fit.
func readInt32(data []byte, off int) int32 {
	if off < 0 || off+4 > len(data) {
		return 0
	}

	return int32(binary.LittleEndian.Uint32(data[off:])) // #nosec G115 -- stored as signed
}

func entryFileName(data []byte, offset int) string {
	start := offset + entryName
	end := min(start+entryNameSize, len(data))
	name := data[start:end]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}

	return string(name)
}
