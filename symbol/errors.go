package symbol

import (
	"errors"
	"fmt"
)

// Sentinel error kinds surfaced by the core. Callers match with errors.Is;
// each occurrence is wrapped in an *OffsetError carrying the offset at
// which it was detected, which unwraps to the sentinel.
var (
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrUnexpectedEnd   = errors.New("unexpected end of input")
	ErrInvalidLiteral  = errors.New("invalid literal")
	ErrInvalidEnumName = errors.New("invalid enum name")
	ErrInvalidEnum     = errors.New("invalid enum value")
	ErrNestingExceeded = errors.New("nesting limit exceeded")
	ErrOutOfRange      = errors.New("numeric value out of range")
	ErrCancelled       = errors.New("operation cancelled")
)

// OffsetError pairs a sentinel error kind with the byte/symbol offset at
// which it was detected, so callers can recover the offset without parsing
// the message text.
type OffsetError struct {
	Kind error
	At   int
	msg  string
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.At, e.msg)
}

func (e *OffsetError) Unwrap() error { return e.Kind }

// Offset returns the symbol offset the failure was detected at.
func (e *OffsetError) Offset() int { return e.At }

func offsetErr(kind error, offset int, format string, args ...any) error {
	return &OffsetError{Kind: kind, At: offset, msg: fmt.Sprintf(format, args...)}
}

// NewError builds an OffsetError for use by packages outside symbol (the
// composite formatters need to report NestingExceeded, which is detected
// during serialize, not while scanning input).
func NewError(kind error, offset int, format string, args ...any) error {
	return offsetErr(kind, offset, format, args...)
}
