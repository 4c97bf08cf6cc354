package bencode

import (
	"bytes"
	"sync"
	"testing"

	jackpal "github.com/jackpal/bencode-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	zeebo "github.com/zeebo/bencode"
)

func TestRoundTripCanonical(t *testing.T) {
	inputs := []string{
		"i0e",
		"i-42e",
		"0:",
		"4:spam",
		"le",
		"de",
		"l4:spam4:eggse",
		"d3:cow3:moo4:spam4:eggse",
		"d4:spaml1:a1:bee",
		"d8:announce8:http://t4:infod6:lengthi10e4:name5:f.txt12:piece lengthi5e6:pieces0:ee",
		"lli1eel9:test testelee",
		"d1:\x00i1e1:\xffl2:\x01\x02ee",
	}
	for _, input := range inputs {
		input := input
		t.Run(input, func(t *testing.T) {
			v, err := Decode([]byte(input))
			require.NoError(t, err)
			assert.Equal(t, []byte(input), Encode(v))
		})
	}
}

func TestRoundTripCanonicalizes(t *testing.T) {
	var tests = []struct {
		name     string
		input    string
		expected string
	}{
		{name: "unsorted dictionary", input: "d1:bi1e1:ai2ee", expected: "d1:ai2e1:bi1ee"},
		{name: "negative zero", input: "i-0e", expected: "i0e"},
		{name: "duplicate keys", input: "d1:ai1e1:ai2ee", expected: "d1:ai2ee"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			v, err := Decode([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(Encode(v)))
		})
	}
}

// Other encoders in the ecosystem produce canonical output too; ours must
// agree with them byte for byte.
func TestRoundTripInterop(t *testing.T) {
	doc := map[string]interface{}{
		"announce": "http://tracker.example.com/announce",
		"comment":  "interop",
		"info": map[string]interface{}{
			"name":         "sample.txt",
			"length":       int64(90000),
			"piece length": int64(32768),
			"pieces":       string(bytes.Repeat([]byte{0xab}, 60)),
		},
		"url-list": []interface{}{"http://a", "http://b"},
	}

	var tests = []struct {
		name   string
		encode func(t *testing.T) []byte
	}{
		{
			name: "jackpal/bencode-go",
			encode: func(t *testing.T) []byte {
				var buf bytes.Buffer
				require.NoError(t, jackpal.Marshal(&buf, doc))
				return buf.Bytes()
			},
		},
		{
			name: "zeebo/bencode",
			encode: func(t *testing.T) []byte {
				b, err := zeebo.EncodeBytes(doc)
				require.NoError(t, err)
				return b
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			given := tt.encode(t)
			v, err := Decode(given)
			require.NoError(t, err)

			info, ok := v.(Dict)["info"].(Dict)
			require.True(t, ok)
			assert.Equal(t, Integer(32768), info["piece length"])
			assert.Equal(t, given, Encode(v))
		})
	}
}

func TestDecodeConcurrent(t *testing.T) {
	inputs := [][]byte{
		[]byte("d3:cow3:moo4:spam4:eggse"),
		[]byte("l4:spami-1ee"),
		[]byte("d1:bi1e1:ai2ee"),
	}

	var wg sync.WaitGroup
	results := make([][]byte, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Decode(inputs[i%len(inputs)])
			if err != nil {
				return
			}
			results[i] = Encode(v)
		}(i)
	}
	wg.Wait()

	expected := []string{"d3:cow3:moo4:spam4:eggse", "l4:spami-1ee", "d1:ai2e1:bi1ee"}
	for i, r := range results {
		assert.Equal(t, expected[i%len(expected)], string(r))
	}
}
