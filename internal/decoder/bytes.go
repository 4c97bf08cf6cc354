package decoder

import (
	"fmt"
	"io"
)

// ReadAll reads r to the end. A positive limit caps how many bytes are
// accepted; anything larger fails with ErrInputTooLarge.
func ReadAll(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}

	result, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(result)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, limit)
	}

	return result, nil
}
