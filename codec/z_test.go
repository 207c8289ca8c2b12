package codec

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTripZ(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := NewZWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := NewZReader(&buf)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	return got
}

func TestZRoundTripSmallInput(t *testing.T) {
	data := []byte("hello, hello, hello, world world world")
	assert.Equal(t, data, roundTripZ(t, data))
}

func TestZRoundTripEmptyInput(t *testing.T) {
	assert.Equal(t, []byte{}, roundTripZ(t, nil))
}

func TestZRoundTripSingleByte(t *testing.T) {
	assert.Equal(t, []byte{'x'}, roundTripZ(t, []byte{'x'}))
}

func TestZRoundTripRepetitiveLargeInput(t *testing.T) {
	// Long enough to grow the code width past the initial 9 bits (to 10
	// bits); the dictionary does not fill, so no ratio check or CLEAR occurs.
	var data []byte
	for i := 0; i < 20000; i++ {
		data = append(data, byte('a'+i%7))
	}
	assert.Equal(t, data, roundTripZ(t, data))
}

func TestZRoundTripRandomInput(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	data := make([]byte, 5000)
	rng.Read(data)
	assert.Equal(t, data, roundTripZ(t, data))
}

func TestZMagicHeaderWritten(t *testing.T) {
	var buf bytes.Buffer
	w := NewZWriter(&buf)
	_, err := w.Write([]byte("abc"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	out := buf.Bytes()
	require.GreaterOrEqual(t, len(out), 3)
	assert.Equal(t, byte(0x1f), out[0])
	assert.Equal(t, byte(0x9d), out[1])
	assert.NotZero(t, out[2]&0x80, "block-compress flag should be set")
}

func TestZReaderRejectsBadMagic(t *testing.T) {
	r := NewZReader(bytes.NewReader([]byte{0x00, 0x00, 0x00, 0x00}))
	_, err := io.ReadAll(r)
	assert.Error(t, err)
}

func TestZWriteMultipleChunks(t *testing.T) {
	var buf bytes.Buffer
	w := NewZWriter(&buf)
	parts := [][]byte{[]byte("chunk one "), []byte("chunk two "), []byte("chunk three")}
	for _, p := range parts {
		_, err := w.Write(p)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	r := NewZReader(&buf)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("chunk one chunk two chunk three"), got)
}
