package bencode

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// Encode returns the canonical encoding of v: dictionary keys are written in
// ascending raw byte order, everything else as-is.
func Encode(v Value) []byte {
	var buf bytes.Buffer
	encodeValue(&buf, v)
	return buf.Bytes()
}

// EncodeTo writes the canonical encoding of v to w.
func EncodeTo(w io.Writer, v Value) error {
	_, err := w.Write(Encode(v))
	return err
}

func encodeValue(buf *bytes.Buffer, v Value) {
	switch v := v.(type) {
	case Integer:
		buf.WriteByte('i')
		buf.WriteString(strconv.FormatInt(int64(v), 10))
		buf.WriteByte('e')

	case String:
		encodeString(buf, v)

	case List:
		buf.WriteByte('l')
		for _, item := range v {
			encodeValue(buf, item)
		}
		buf.WriteByte('e')

	case Dict:
		buf.WriteByte('d')
		for _, key := range v.Keys() {
			encodeString(buf, []byte(key))
			encodeValue(buf, v[key])
		}
		buf.WriteByte('e')

	default:
		// only reachable with a nil Value inside a hand-built tree
		panic(fmt.Sprintf("bencode: cannot encode %T", v))
	}
}

func encodeString(buf *bytes.Buffer, s []byte) {
	buf.WriteString(strconv.Itoa(len(s)))
	buf.WriteByte(':')
	buf.Write(s)
}
