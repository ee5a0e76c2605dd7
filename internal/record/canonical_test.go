package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_KeyOrderAndNoHTMLEscape(t *testing.T) {
	obj := Object{"b": String("<&>"), "a": Int(1)}
	b, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":"<&>"}`, string(b))
}

func TestMarshalCanonical_NFC(t *testing.T) {
	// "e" + combining acute accent normalizes to a single code point.
	b, err := MarshalCanonical(String("e\u0301"))
	require.NoError(t, err)
	assert.Equal(t, "\"\u00e9\"", string(b))
}

func TestMarshalCanonical_LineSeparators(t *testing.T) {
	b, err := MarshalCanonical(String("a\u2028b"))
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\"", string(b))

	// A literal backslash followed by u2028 text stays escaped.
	b, err = MarshalCanonical(String(`a\u2028`))
	require.NoError(t, err)
	assert.Equal(t, `"a\\u2028"`, string(b))
}

func TestMarshalCanonical_GoValues(t *testing.T) {
	b, err := MarshalCanonical(map[string]any{
		"keys":  []any{"1", "2"},
		"count": 2,
		"price": 1.5,
		"none":  nil,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"count":2,"keys":["1","2"],"none":null,"price":1.5}`, string(b))
}

func TestFingerprint(t *testing.T) {
	a := []Object{{"id": Int(1)}, {"id": Int(2)}}
	b := []Object{{"id": Int(1)}, {"id": Int(2)}}
	c := []Object{{"id": Int(2)}, {"id": Int(1)}}

	fa, err := Fingerprint(a)
	require.NoError(t, err)
	fb, err := Fingerprint(b)
	require.NoError(t, err)
	fc, err := Fingerprint(c)
	require.NoError(t, err)

	assert.Equal(t, fa, fb)
	assert.NotEqual(t, fa, fc)
	assert.Len(t, fa, 64)
}

func TestDigest_IgnoresKeyOrder(t *testing.T) {
	type ev struct {
		B int               `json:"b"`
		A map[string]string `json:"a"`
	}
	d1, err := Digest(DomainEvent, ev{B: 1, A: map[string]string{"x": "1", "y": "2"}})
	require.NoError(t, err)
	d2, err := Digest(DomainEvent, map[string]any{"a": map[string]any{"y": "2", "x": "1"}, "b": 1})
	require.NoError(t, err)
	assert.Equal(t, d1, d2)

	other, err := Digest(DomainDataSource, map[string]any{"a": map[string]any{"y": "2", "x": "1"}, "b": 1})
	require.NoError(t, err)
	assert.NotEqual(t, d1, other)

	_, err = Digest(DomainEvent, make(chan int))
	assert.Error(t, err)
}
