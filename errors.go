package sonartel

import (
	"github.com/pkg/errors"
)

// Error taxonomy (spec §7).
var (
	// ErrBadFrame covers sync-pattern mismatch, record-type not in the
	// whitelist, or a size inconsistency discovered during decode.
	ErrBadFrame = errors.New("sonartel: bad frame")

	// ErrUnintelligible covers records that are structurally valid but
	// semantically impossible, e.g. a beam descriptor exceeding the
	// maximum beam count.
	ErrUnintelligible = errors.New("sonartel: unintelligible record")

	// ErrIO wraps an underlying reader/writer failure.
	ErrIO = errors.New("sonartel: io failure")

	// ErrOutOfMemory is surfaced when a variable-array allocation fails;
	// the affected count/capacity pair is reset to zero before this is
	// returned.
	ErrOutOfMemory = errors.New("sonartel: allocation failed")

	// ErrEOF signals a clean end of input.
	ErrEOF = errors.New("sonartel: eof")
)

// BadFrame wraps ErrBadFrame with context.
func BadFrame(msg string) error { return errors.Wrap(ErrBadFrame, msg) }

// Unintelligible wraps ErrUnintelligible with context.
func Unintelligible(msg string) error { return errors.Wrap(ErrUnintelligible, msg) }

// IOError wraps an underlying error as an I/O failure, preserving its
// message while keeping ErrIO first in the chain so errors.Is(err, ErrIO)
// holds regardless of what the underlying reader/writer returned.
func IOError(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(ErrIO, err.Error())
}

// OutOfMemory wraps ErrOutOfMemory with context.
func OutOfMemory(msg string) error { return errors.Wrap(ErrOutOfMemory, msg) }

// Is reports whether err (or anything it wraps) matches target.
func Is(err, target error) bool { return errors.Is(err, target) }
