package codec

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBzip2RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewBzip2Writer(&buf, 0)
	require.NoError(t, err)
	_, err = w.Write([]byte("bzip2 engine round trip payload"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := NewBzip2Reader(&buf)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "bzip2 engine round trip payload", string(got))
}

func TestXzRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewXzWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write([]byte("xz engine round trip payload"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := NewXzReader(&buf)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "xz engine round trip payload", string(got))
}
