// Package bencode implements the bencode format used by .torrent files.
//
// A decoded document is a tree of Values. Containers own their children and
// decoded strings never alias the input buffer, so the tree can outlive it.
package bencode

import "slices"

type Kind int

const (
	KindInteger Kind = iota
	KindString
	KindList
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindDict:
		return "dictionary"
	default:
		return "unknown"
	}
}

// Value is one of Integer, String, List or Dict.
type Value interface {
	Kind() Kind
	bencodeValue()
}

type Integer int64

// String is a byte string. It is not necessarily valid UTF-8.
type String []byte

type List []Value

// Dict maps raw key bytes to values. Go strings are used as keys only
// because slices are not comparable; no text encoding is implied.
type Dict map[string]Value

func (Integer) Kind() Kind { return KindInteger }
func (String) Kind() Kind  { return KindString }
func (List) Kind() Kind    { return KindList }
func (Dict) Kind() Kind    { return KindDict }

func (Integer) bencodeValue() {}
func (String) bencodeValue()  {}
func (List) bencodeValue()    {}
func (Dict) bencodeValue()    {}

func (d Dict) Get(key string) (Value, bool) {
	v, ok := d[key]
	return v, ok
}

// Keys returns the keys in canonical order, ascending by raw byte value.
func (d Dict) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
