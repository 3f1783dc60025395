/*
Package bcfz implements decompression of BCFZ, the compression layer of GuitarPro 6 (.gpx) files.

Format: a bit stream read most significant bit first within each byte, preceded in files by
the "BCFZ" magic and a 4-byte little-endian expected output length.
Each chunk starts with a 1-bit flag:
  - 0: literal. A 2-bit selector (read LSB first) gives the byte count 0..3, followed by that many bytes.
  - 1: back-reference. A 4-bit word size w (read MSB first), then offset and length, w bits each (LSB first).
    Offset counts backward from the current end of output.

Decoding stops once the output reaches the expected length. Input that ends exactly on a chunk
boundary yields a short result without error; input that ends inside a chunk is a *DecodeError.

Use Decode(body, expectedLen, opts) when the length header is already parsed.
Use DecompressBlock(src, opts) when src starts with the length header.
Use DecompressFromReader(r, opts) to decode one length-prefixed block from a stream.
Use CompatOptions() to clamp back-reference copies to their offset like the GuitarPro reference readers.

# Examples

Decode a body with a known length:

	out, err := bcfz.Decode(body, expectedLen, nil)
	if err != nil {
		return err
	}

Decode a .gpx payload after the magic:

	if !bcfz.HasMagic(data) {
		return errNotBCFZ
	}
	out, err := bcfz.DecompressBlock(data[len(bcfz.Magic):], nil)

Report where a corrupt file failed:

	var derr *bcfz.DecodeError
	if errors.As(err, &derr) {
		log.Printf("corrupt at byte %d bit %d: %s", derr.Offset, derr.Bit, derr.Kind)
	}
*/
package bcfz
