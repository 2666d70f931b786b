package card

import (
	"errors"
	"fmt"
)

var (
	// ErrInputNotFound reports a missing record file or an input directory
	// without any records.
	ErrInputNotFound = errors.New("input not found")
	// ErrInvalidFormat reports a record file that is not a JSON object of
	// text values.
	ErrInvalidFormat = errors.New("invalid format")
)

// FormatError captures why a record file could not be parsed.
type FormatError struct {
	Path   string
	Detail string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid JSON in %s: %s", e.Path, e.Detail)
}

// Is lets errors.Is match FormatError against ErrInvalidFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}
