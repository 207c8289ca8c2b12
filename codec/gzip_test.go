package codec

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGzRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewGzWriter(&buf, 0)
	require.NoError(t, err)
	_, err = w.Write([]byte("the quick brown fox jumps over the lazy dog"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := NewGzReader(&buf)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "the quick brown fox jumps over the lazy dog", string(got))
}

func TestGzHeaderBytesMatchFixedFields(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewGzWriter(&buf, 0)
	require.NoError(t, err)
	_, err = w.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	header := buf.Bytes()[:10]
	assert.Equal(t, []byte{0x1f, 0x8b, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03}, header)
}

func TestGzCorruptedTrailerDetected(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewGzWriter(&buf, 0)
	require.NoError(t, err)
	_, err = w.Write([]byte("data for corruption test"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	corrupted := buf.Bytes()
	corrupted[len(corrupted)-1] ^= 0xFF

	r, err := NewGzReader(bytes.NewReader(corrupted))
	require.NoError(t, err)
	_, err = io.ReadAll(r)
	assert.Error(t, err)
}

func TestGzRejectsBadMagic(t *testing.T) {
	_, err := NewGzReader(bytes.NewReader([]byte{0x00, 0x00, 0x00}))
	assert.Error(t, err)
}

func TestGzEmptyInputRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewGzWriter(&buf, 0)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := NewGzReader(&buf)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, got)
}
