package bcfz

import "log/slog"

// CopyMode defines how a back-reference longer than its offset is expanded.
type CopyMode int

// Copy mode constants.
const (
	CopyOverlap CopyMode = iota // Copy length bytes, re-reading bytes written by the same chunk (default).
	CopyClamped                 // Copy min(length, offset) bytes, as the GuitarPro reference readers do.
)

// String returns the mode name.
func (m CopyMode) String() string {
	switch m {
	case CopyOverlap:
		return "overlap"
	case CopyClamped:
		return "clamped"
	default:
		return "unknown"
	}
}

// Options configures Decode and the block helpers.
type Options struct {
	// Copy selects the back-reference expansion rule.
	Copy CopyMode
	// Logger receives debug records about each decode call. Nil disables logging.
	Logger *slog.Logger
}

// DefaultOptions returns options for default behavior: overlapping copies, no logging.
func DefaultOptions() *Options {
	return &Options{
		Copy: CopyOverlap,
	}
}

// CompatOptions returns options matching the GuitarPro reference readers: clamped copies.
func CompatOptions() *Options {
	return &Options{
		Copy: CopyClamped,
	}
}

// debug logs through opts.Logger when one is set.
func (o *Options) debug(msg string, args ...any) {
	if o.Logger != nil {
		o.Logger.Debug(msg, args...)
	}
}
