package ir

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalBasic(t *testing.T) {
	huge, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)

	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", String("hello"), `"hello"`},
		{"empty string", "", `""`},
		{"int", NewInt(42), "42"},
		{"negative int", int64(-100), "-100"},
		{"go int", 7, "7"},
		{"big int", huge, "123456789012345678901234567890"},
		{"bool", true, "true"},
		{"empty array", Array{}, "[]"},
		{"empty object", Object{}, "{}"},
		{"string slice", []string{"1", "2"}, `["1","2"]`},
		{"mixed slice", []any{"a", 1, false}, `["a",1,false]`},
		{"simple object", map[string]any{"a": 1}, `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestMarshalCanonicalSortedKeys(t *testing.T) {
	obj := Object{
		"zebra": NewInt(1),
		"alpha": NewInt(2),
		"beta":  Object{"y": Bool(true), "x": Bool(false)},
	}
	out, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"beta":{"x":false,"y":true},"zebra":1}`, string(out))
}

func TestSortedKeysUTF16(t *testing.T) {
	// U+1F600 encodes to a surrogate pair starting 0xD83D, which sorts before
	// U+FF21 in UTF-16 even though its UTF-8 bytes sort after.
	obj := Object{"\uff21": NewInt(1), "\U0001F600": NewInt(2)}
	assert.Equal(t, []string{"\U0001F600", "\uff21"}, obj.SortedKeys())
}

func TestMarshalCanonicalNoHTMLEscape(t *testing.T) {
	out, err := MarshalCanonical("a<b>&c >>> d")
	require.NoError(t, err)
	assert.Equal(t, `"a<b>&c >>> d"`, string(out))
}

func TestMarshalCanonicalNFC(t *testing.T) {
	decomposed := "e\u0301"
	out, err := MarshalCanonical(decomposed)
	require.NoError(t, err)
	assert.Equal(t, "\"\u00e9\"", string(out))
}

func TestMarshalCanonicalLineSeparators(t *testing.T) {
	out, err := MarshalCanonical("a\u2028b\u2029c")
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\u2029c\"", string(out))

	out, err = MarshalCanonical(`x\u2028`)
	require.NoError(t, err)
	assert.Equal(t, `"x\\u2028"`, string(out))
}

func TestMarshalCanonicalRejects(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"nil", nil},
		{"float", 1.5},
		{"nested float", map[string]any{"a": []any{float32(1)}}},
		{"nil big int", (*big.Int)(nil)},
		{"struct", struct{}{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MarshalCanonical(tt.input)
			assert.Error(t, err)
		})
	}
}
