package bitmath

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArguments is returned when more than one of value, bytes and
	// bits is given to a constructor.
	ErrInvalidArguments = errors.New("bitmath: only one of value, bytes or bits may be given")
	// ErrInvalidType is returned when a number was required.
	ErrInvalidType = errors.New("bitmath: invalid type")
	// ErrParse is matched by every *ParseError.
	ErrParse                = errors.New("bitmath: parse error")
	ErrUnsupportedOperation = errors.New("bitmath: unsupported operation")
	ErrTemplate             = errors.New("bitmath: invalid template")
)

// ParseError describes input the parsers could not turn into a Size.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bitmath: can not parse %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

func parseErrorf(input, format string, args ...any) error {
	return &ParseError{Input: input, Reason: fmt.Sprintf(format, args...)}
}
