package bincodec

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedWidthRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	enc.U8(0xAB)
	enc.U16(0x1234)
	enc.U32(0xDEADBEEF)
	enc.U64(0x0102030405060708)
	require.NoError(t, enc.Err())

	dec := NewDecoder(&buf)
	assert.Equal(t, uint8(0xAB), dec.U8())
	assert.Equal(t, uint16(0x1234), dec.U16())
	assert.Equal(t, uint32(0xDEADBEEF), dec.U32())
	assert.Equal(t, uint64(0x0102030405060708), dec.U64())
	require.NoError(t, dec.Err())
}

func TestU16IsLittleEndianOnWire(t *testing.T) {
	var buf bytes.Buffer
	NewEncoder(&buf).U16(0x1234)
	assert.Equal(t, []byte{0x34, 0x12}, buf.Bytes())
}

func TestVIntRoundTripSmallAndLarge(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 1 << 20, math.MaxUint64}
	for _, v := range values {
		var buf bytes.Buffer
		NewEncoder(&buf).VInt(v)
		got := NewDecoder(&buf).VInt()
		assert.Equal(t, v, got, "value %d", v)
	}
}

func TestVIntContinuationBitOnAllButLastByte(t *testing.T) {
	var buf bytes.Buffer
	NewEncoder(&buf).VInt(300) // 300 = 0b1_0010_1100 -> two groups
	bytesOut := buf.Bytes()
	require.Len(t, bytesOut, 2)
	assert.NotZero(t, bytesOut[0]&0x80)
	assert.Zero(t, bytesOut[1]&0x80)
}

func TestFloatDoubleNormalizedLittleEndian(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	enc.Float(3.5)
	enc.Double(-2.25)

	dec := NewDecoder(&buf)
	assert.Equal(t, float32(3.5), dec.Float())
	assert.Equal(t, -2.25, dec.Double())
}

func TestStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	NewEncoder(&buf).String("hello, world")
	got := NewDecoder(&buf).String()
	assert.Equal(t, "hello, world", got)
}

func TestBlockAndSignature(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	enc.Signature("YMBC")
	enc.Block([]byte{1, 2, 3})

	dec := NewDecoder(&buf)
	assert.True(t, dec.Signature("YMBC"))
	assert.Equal(t, []byte{1, 2, 3}, dec.Block(3))
}

func TestTruncatedInputReportsError(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0x01})
	dec := NewDecoder(buf)
	dec.U32()
	assert.Error(t, dec.Err())
}
