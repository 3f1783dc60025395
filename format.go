package bcfz

// BCFZ format constants.
const (
	Magic        = "BCFZ"   // File magic preceding the length header in .gpx files.
	HeaderSize   = 4        // Little-endian uint32 expected output length.
	WordSizeBits = 4        // Width of the back-reference word-size field (read MSB first).
	SelectorBits = 2        // Width of the literal length selector (read LSB first).
	MaxPrealloc  = 64 << 20 // Output capacity reserved up front is capped at this many bytes.
)

// literalLengths maps the literal selector to the number of payload bytes that follow it.
// The selector carries the count directly; there is no separate length field.
var literalLengths = [1 << SelectorBits]int{0, 1, 2, 3}
