package codec

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormatRecognizesAllMagics(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want Format
	}{
		{"gzip", []byte{0x1f, 0x8b, 0x08, 0x00}, FormatGzip},
		{"bzip2", []byte{0x42, 0x5a, 0x68, 0x39}, FormatBzip2},
		{"xz", []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}, FormatXz},
		{"z", []byte{0x1f, 0x9d, 0x90}, FormatZ},
	}
	for _, c := range cases {
		got, ok := DetectFormat(c.data)
		assert.True(t, ok, c.name)
		assert.Equal(t, c.want, got, c.name)
	}
}

func TestDetectFormatRejectsUnknownMagic(t *testing.T) {
	_, ok := DetectFormat([]byte{0x00, 0x01, 0x02})
	assert.False(t, ok)
}

func TestGzipEngineRoundTripThroughFormatDispatch(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(FormatGzip, &buf, 0)
	require.NoError(t, err)
	_, err = w.Write([]byte("round trip via format dispatch"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	format, ok := DetectFormat(buf.Bytes())
	require.True(t, ok)
	assert.Equal(t, FormatGzip, format)

	r, err := NewReader(FormatGzip, &buf)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "round trip via format dispatch", string(got))
}

func TestStreamWriterThenReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	sw, err := OpenWriter(FormatZ, &buf, 0)
	require.NoError(t, err)
	_, err = sw.Write([]byte("stream adapter payload"))
	require.NoError(t, err)
	require.NoError(t, sw.Close())

	sr, err := OpenReader(FormatZ, &buf)
	require.NoError(t, err)
	got, err := io.ReadAll(sr)
	require.NoError(t, err)
	assert.Equal(t, "stream adapter payload", string(got))
	require.NoError(t, sr.Close())
}

func TestDetectAndOpenReaderSniffsGzip(t *testing.T) {
	var buf bytes.Buffer
	gw, err := NewGzWriter(&buf, 0)
	require.NoError(t, err)
	_, err = gw.Write([]byte("sniffed payload"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	rc, format, err := DetectAndOpenReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, FormatGzip, format)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "sniffed payload", string(got))
}
