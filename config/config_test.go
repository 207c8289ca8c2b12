package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFillsInGivenFields(t *testing.T) {
	input := `
[codec]
bufferSize = 8192

[json]
maxNestingDepth = 64

[scan]
skipBOM = true
`
	cfg, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 8192, cfg.Codec.BufferSize)
	assert.Equal(t, 64, cfg.Json.MaxNestingDepth)
	assert.True(t, cfg.Scan.SkipBOM)
	assert.Equal(t, 16, cfg.Codec.ZMaxBits) // left at default
}

func TestDecodeEmptyInputUsesDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeRejectsOutOfRangeZMaxBits(t *testing.T) {
	input := `
[codec]
zMaxBits = 30
`
	_, err := Decode(strings.NewReader(input))
	assert.Error(t, err)
}

func TestDecodeRejectsMalformedTOML(t *testing.T) {
	_, err := Decode(strings.NewReader("not = [valid toml"))
	assert.Error(t, err)
}
