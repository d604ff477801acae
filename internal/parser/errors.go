package parser

import (
	"errors"
	"fmt"
)

// ErrMalformedHeader is returned when a line has the shape of a message
// header but cannot be split into date, time, sender and body.
var ErrMalformedHeader = errors.New("malformed message header")

// FormatError rejects a whole input at the first header that does not
// decompose. No partial result accompanies it.
//
// The one source is a header-shaped line whose sender is empty once trimmed,
// such as "1/2/2024, 10:00 - : hi" or "1/2/2024, 10:00 -    : hi". Every
// other line either decomposes or is treated as a continuation.
type FormatError struct {
	Line int    // 1-based line number of the offending header
	Text string // the trimmed line
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid chat export format at line %d: %v (expected 'MM/DD/YYYY, HH:MM - Name: Message')", e.Line, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
