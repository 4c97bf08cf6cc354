package bencode

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedEnd  = errors.New("unexpected end of input")
	ErrInvalidInteger = errors.New("invalid integer")
	ErrInvalidString  = errors.New("invalid string length")
	ErrMalformedInput = errors.New("malformed input")
)

// SyntaxError reports where decoding stopped. Err is one of the sentinel
// errors above.
type SyntaxError struct {
	Offset int
	Err    error
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("bencode: %v at offset %d", e.Err, e.Offset)
	}
	return fmt.Sprintf("bencode: %v at offset %d: %s", e.Err, e.Offset, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
