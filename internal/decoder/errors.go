package decoder

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField          = errors.New("missing field")
	ErrWrongType             = errors.New("wrong type")
	ErrInconsistentPieceData = errors.New("pieces length is not a multiple of 20")
	ErrInputTooLarge         = errors.New("input exceeds size limit")
)

// FieldError ties an extraction failure to the metafile field that caused
// it, e.g. "info.piece length" or "announce-list[0][1]".
type FieldError struct {
	Field string
	Err   error
	Msg   string
}

func (e *FieldError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Field, e.Err, e.Msg)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
