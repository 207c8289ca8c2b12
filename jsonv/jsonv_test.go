package jsonv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleObject(t *testing.T) {
	v, err := Parse(`{"key": 123}`, nil)
	require.NoError(t, err)
	assert.True(t, v.IsObject())
	size, err := v.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)

	inner, err := v.Get("key")
	require.NoError(t, err)
	n, err := inner.GetInt()
	require.NoError(t, err)
	assert.Equal(t, int64(123), n)
}

func TestParseNestedArray(t *testing.T) {
	v, err := Parse(`{"key": [1, 2, 3]}`, nil)
	require.NoError(t, err)

	arr, err := v.Get("key")
	require.NoError(t, err)
	assert.True(t, arr.IsArray())

	last, err := arr.At(-1)
	require.NoError(t, err)
	n, err := last.GetInt()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestUnicodeEscapeDecodesToUTF8(t *testing.T) {
	v, err := Parse("\"\\u3042\"", nil)
	require.NoError(t, err)
	s, err := v.GetString()
	require.NoError(t, err)
	assert.Equal(t, "あ", s)
	assert.Equal(t, []byte{0xE3, 0x81, 0x82}, []byte(s))
}

func TestDuplicateKeyLaterValueWins(t *testing.T) {
	v, err := Parse(`{"k": 1, "k": 2}`, nil)
	require.NoError(t, err)
	val, err := v.Get("k")
	require.NoError(t, err)
	n, err := val.GetInt()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestLineAndHashComments(t *testing.T) {
	text := `{
		// a line comment
		"a": 1, # another line comment
		/* a block
		   comment */
		"b": 2
	}`
	v, err := Parse(text, nil)
	require.NoError(t, err)
	size, err := v.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)
}

func TestFloatAndExponentLiterals(t *testing.T) {
	v, err := Parse(`[1.5, -2.5e3, 0.25, 4E-2]`, nil)
	require.NoError(t, err)
	for i, want := range []float64{1.5, -2500, 0.25, 0.04} {
		item, err := v.At(i)
		require.NoError(t, err)
		f, err := item.GetFloat()
		require.NoError(t, err)
		assert.InDelta(t, want, f, 1e-9)
	}
}

func TestGetIntOnStringReportsTypeMismatch(t *testing.T) {
	v, err := Parse(`"not a number"`, nil)
	require.NoError(t, err)
	_, err = v.GetInt()
	assert.Error(t, err)
}

func TestArrayOutOfRangeReportsError(t *testing.T) {
	v, err := Parse(`[1, 2]`, nil)
	require.NoError(t, err)
	_, err = v.At(5)
	assert.Error(t, err)
}

func TestMissingKeyReturnsNullNotError(t *testing.T) {
	v, err := Parse(`{"a": 1}`, nil)
	require.NoError(t, err)
	got, err := v.Get("missing")
	require.NoError(t, err)
	assert.True(t, got.IsNull())
}

func TestToJSONCompactQuotesStrings(t *testing.T) {
	v := NewObject(map[string]Value{"name": NewString(`say "hi"`)})
	got := v.ToJSON(false)
	assert.Equal(t, `{"name": "say \"hi\""}`, got)
}

func TestToJSONPrettyIndentsNestedStructures(t *testing.T) {
	v := NewArray([]Value{NewInt(1), NewInt(2)})
	got := v.ToJSON(true)
	assert.Equal(t, "[\n    1,\n    2\n]", got)
}

func TestValueEqualityIsStructural(t *testing.T) {
	a := NewObject(map[string]Value{"x": NewInt(1), "y": NewArray([]Value{NewInt(2)})})
	b := NewObject(map[string]Value{"x": NewInt(1), "y": NewArray([]Value{NewInt(2)})})
	c := NewObject(map[string]Value{"x": NewInt(1), "y": NewArray([]Value{NewInt(3)})})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestWalkVisitsEveryNode(t *testing.T) {
	v, err := Parse(`{"a": [1, {"b": 2}]}`, nil)
	require.NoError(t, err)

	var paths [][]string
	Walk(v, func(path []string, val Value) {
		cp := make([]string, len(path))
		copy(cp, path)
		paths = append(paths, cp)
	})
	assert.Len(t, paths, 5) // root, a, a[0], a[1], a[1].b
}

func TestSyntaxErrorOnMalformedInput(t *testing.T) {
	_, err := Parse(`{"a": }`, nil)
	assert.Error(t, err)
}

func TestEmptyObjectAndArray(t *testing.T) {
	v, err := Parse(`{}`, nil)
	require.NoError(t, err)
	size, err := v.Size()
	require.NoError(t, err)
	assert.Equal(t, 0, size)

	v2, err := Parse(`[]`, nil)
	require.NoError(t, err)
	size2, err := v2.Size()
	require.NoError(t, err)
	assert.Equal(t, 0, size2)
}
