package bencode

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
)

// DefaultMaxDepth bounds list/dictionary nesting so adversarial input cannot
// exhaust the stack.
const DefaultMaxDepth = 512

type decodeOptions struct {
	maxDepth int
	logger   *slog.Logger
}

type DecodeOption func(*decodeOptions)

// WithMaxDepth sets the nesting limit. A value <= 0 disables the limit.
func WithMaxDepth(n int) DecodeOption {
	return func(o *decodeOptions) {
		o.maxDepth = n
	}
}

// WithLogger enables debug tracing of the decoder on logger.
func WithLogger(logger *slog.Logger) DecodeOption {
	return func(o *decodeOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

type decodeState struct {
	data     []byte
	pos      int
	depth    int
	maxDepth int
	logger   *slog.Logger
}

// Decode parses exactly one bencoded value from data. Bytes left over after
// the value are an error.
func Decode(data []byte, opts ...DecodeOption) (Value, error) {
	o := decodeOptions{
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}

	d := &decodeState{data: data, maxDepth: o.maxDepth, logger: o.logger}
	v, err := d.value()
	if err == nil && d.pos != len(d.data) {
		err = d.errorf(d.pos, ErrMalformedInput, "%d trailing bytes after top-level value", len(d.data)-d.pos)
	}
	if err != nil {
		d.logger.Debug("decode failed", slog.Any("error", err))
		return nil, err
	}

	return v, nil
}

func (d *decodeState) value() (Value, error) {
	if d.pos >= len(d.data) {
		return nil, d.errorf(d.pos, ErrUnexpectedEnd, "expected value")
	}

	switch c := d.data[d.pos]; {
	case c == 'i':
		return d.integer()
	case isDigit(c):
		return d.string()
	case c == 'l':
		return d.list()
	case c == 'd':
		return d.dict()
	default:
		return nil, d.errorf(d.pos, ErrMalformedInput, "unexpected byte %q at start of value", c)
	}
}

// integer parses i[-]digit+e. A zero may only stand alone, so i03e is
// rejected while i0e and i-0e are not.
func (d *decodeState) integer() (Value, error) {
	start := d.pos
	d.pos++

	numStart := d.pos
	if d.pos < len(d.data) && d.data[d.pos] == '-' {
		d.pos++
	}
	digitsStart := d.pos
	for d.pos < len(d.data) && isDigit(d.data[d.pos]) {
		d.pos++
	}

	if d.pos >= len(d.data) {
		return nil, d.errorf(start, ErrUnexpectedEnd, "unterminated integer")
	}
	if d.data[d.pos] != 'e' {
		return nil, d.errorf(d.pos, ErrInvalidInteger, "unexpected byte %q in integer", d.data[d.pos])
	}
	if d.pos == digitsStart {
		return nil, d.errorf(start, ErrInvalidInteger, "no digits")
	}
	if d.pos-digitsStart > 1 && d.data[digitsStart] == '0' {
		return nil, d.errorf(digitsStart, ErrInvalidInteger, "leading zero")
	}

	n, err := strconv.ParseInt(string(d.data[numStart:d.pos]), 10, 64)
	if err != nil {
		return nil, d.errorf(start, ErrInvalidInteger, "%s does not fit in 64 bits", d.data[numStart:d.pos])
	}
	d.pos++

	return Integer(n), nil
}

// string parses <length>:<bytes>. The returned String is a copy.
func (d *decodeState) string() (Value, error) {
	start := d.pos
	for d.pos < len(d.data) && isDigit(d.data[d.pos]) {
		d.pos++
	}

	if d.pos >= len(d.data) {
		return nil, d.errorf(start, ErrUnexpectedEnd, "missing ':' after string length")
	}
	if d.data[d.pos] != ':' {
		return nil, d.errorf(d.pos, ErrInvalidString, "unexpected byte %q in string length", d.data[d.pos])
	}

	length, err := strconv.Atoi(string(d.data[start:d.pos]))
	if err != nil {
		return nil, d.errorf(start, ErrInvalidString, "length %s out of range", d.data[start:d.pos])
	}
	d.pos++

	if length > len(d.data)-d.pos {
		return nil, d.errorf(start, ErrUnexpectedEnd, "string needs %d bytes, %d left", length, len(d.data)-d.pos)
	}

	s := make(String, length)
	copy(s, d.data[d.pos:d.pos+length])
	d.pos += length

	return s, nil
}

func (d *decodeState) list() (Value, error) {
	start := d.pos
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()
	d.pos++

	list := make(List, 0)
	for {
		if d.pos >= len(d.data) {
			return nil, d.errorf(start, ErrUnexpectedEnd, "unterminated list")
		}
		if d.data[d.pos] == 'e' {
			d.pos++
			break
		}

		item, err := d.value()
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}

	d.logger.Debug("decoded list", slog.Int("offset", start), slog.Int("items", len(list)))
	return list, nil
}

func (d *decodeState) dict() (Value, error) {
	start := d.pos
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()
	d.pos++

	dict := make(Dict)
	for {
		if d.pos >= len(d.data) {
			return nil, d.errorf(start, ErrUnexpectedEnd, "unterminated dictionary")
		}
		c := d.data[d.pos]
		if c == 'e' {
			d.pos++
			break
		}
		if !isDigit(c) {
			return nil, d.errorf(d.pos, ErrMalformedInput, "dictionary key must be a string, got %q", c)
		}

		key, err := d.string()
		if err != nil {
			return nil, err
		}
		value, err := d.value()
		if err != nil {
			return nil, err
		}

		// duplicate keys: last one wins
		dict[string(key.(String))] = value
	}

	d.logger.Debug("decoded dictionary", slog.Int("offset", start), slog.Int("keys", len(dict)))
	return dict, nil
}

func (d *decodeState) enter() error {
	d.depth++
	if d.maxDepth > 0 && d.depth > d.maxDepth {
		return d.errorf(d.pos, ErrMalformedInput, "nesting deeper than %d", d.maxDepth)
	}
	return nil
}

func (d *decodeState) leave() {
	d.depth--
}

func (d *decodeState) errorf(offset int, kind error, format string, args ...any) error {
	return &SyntaxError{Offset: offset, Err: kind, Msg: fmt.Sprintf(format, args...)}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
