package document

import (
	"errors"
	"fmt"
)

// FormatError is the single error kind raised when JSON input does not
// match the document schema: a missing key, a wrong type, or an
// unrecognized block type tag. It is deterministic and not recoverable;
// callers are expected to reject the input outright.
type FormatError struct {
	msg string
}

func (e *FormatError) Error() string {
	return "document: " + e.msg
}

func formatErrorf(format string, args ...any) *FormatError {
	return &FormatError{msg: fmt.Sprintf(format, args...)}
}

// AsFormatError reports whether err is (or wraps) a FormatError and
// returns it if so.
func AsFormatError(err error) (*FormatError, bool) {
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
