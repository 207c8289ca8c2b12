/*******************************************************************************
*
* Copyright 2024 Holo Corelib Authors
*
* This file is part of holo-corelib.
*
* holo-corelib is free software: you can redistribute it and/or modify it under the
* terms of the GNU General Public License as published by the Free Software
* Foundation, either version 3 of the License, or (at your option) any later
* version.
*
* holo-corelib is distributed in the hope that it will be useful, but WITHOUT ANY
* WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR
* A PARTICULAR PURPOSE. See the GNU General Public License for more details.
*
* You should have received a copy of the GNU General Public License along with
* holo-corelib. If not, see <http://www.gnu.org/licenses/>.
*
*******************************************************************************/

// Package bincodec implements a little-endian, length-prefixed binary
// encoder/decoder with a variable-length integer format, reading and writing
// over io.Reader/io.Writer. Floats and doubles are normalized to
// little-endian (see Encoder.Float/Double, Decoder.Float/Double) rather than
// encoded as native-endian raw bytes.
package bincodec

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/holocm/holo-corelib/errs"
)

// Encoder writes the fixed little-endian + varint wire format to an
// underlying io.Writer.
type Encoder struct {
	w   io.Writer
	err error
}

// NewEncoder wraps w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Err returns the first write error encountered, if any; once set, every
// subsequent Encoder method is a no-op.
func (e *Encoder) Err() error {
	return e.err
}

func (e *Encoder) rawWrite(b []byte) {
	if e.err != nil {
		return
	}
	if _, err := e.w.Write(b); err != nil {
		e.err = errs.Wrap(errs.IoError, err, "bincodec: write failed")
	}
}

// U8 writes a single byte.
func (e *Encoder) U8(v uint8) { e.rawWrite([]byte{v}) }

// U16 writes a little-endian uint16.
func (e *Encoder) U16(v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	e.rawWrite(buf[:])
}

// U32 writes a little-endian uint32.
func (e *Encoder) U32(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	e.rawWrite(buf[:])
}

// U64 writes a little-endian uint64.
func (e *Encoder) U64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	e.rawWrite(buf[:])
}

// VInt writes v using the 7-bit-group varint format: each byte carries 7
// payload bits LSB-first, with the high bit set on every byte but the last.
func (e *Encoder) VInt(v uint64) {
	for {
		b := uint8(v & 0x7F)
		v >>= 7
		if v != 0 {
			e.U8(b | 0x80)
		} else {
			e.U8(b)
			return
		}
	}
}

// Float writes v as a little-endian IEEE-754 single, via math.Float32bits.
func (e *Encoder) Float(v float32) {
	e.U32(math.Float32bits(v))
}

// Double writes v as a little-endian IEEE-754 double, via math.Float64bits.
func (e *Encoder) Double(v float64) {
	e.U64(math.Float64bits(v))
}

// String writes a U64 length prefix followed by the raw UTF-8 bytes.
func (e *Encoder) String(s string) {
	e.U64(uint64(len(s)))
	e.rawWrite([]byte(s))
}

// Block writes raw bytes with no length prefix.
func (e *Encoder) Block(b []byte) {
	e.rawWrite(b)
}

// Signature writes a signature string's raw bytes with no length prefix,
// distinct from String which adds a length prefix.
func (e *Encoder) Signature(s string) {
	e.rawWrite([]byte(s))
}

// Decoder reads the fixed little-endian + varint wire format from an
// underlying io.Reader.
type Decoder struct {
	r   io.Reader
	err error
}

// NewDecoder wraps r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Err returns the first read error encountered, if any; once set, every
// subsequent Decoder method returns the zero value without touching r.
func (d *Decoder) Err() error {
	return d.err
}

func (d *Decoder) rawRead(n int) []byte {
	if d.err != nil {
		return make([]byte, n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			d.err = errs.Wrap(errs.TruncatedInput, err, "bincodec: short read, wanted %d bytes", n)
		} else {
			d.err = errs.Wrap(errs.IoError, err, "bincodec: read failed")
		}
	}
	return buf
}

// U8 reads a single byte.
func (d *Decoder) U8() uint8 {
	return d.rawRead(1)[0]
}

// U16 reads a little-endian uint16.
func (d *Decoder) U16() uint16 {
	return binary.LittleEndian.Uint16(d.rawRead(2))
}

// U32 reads a little-endian uint32.
func (d *Decoder) U32() uint32 {
	return binary.LittleEndian.Uint32(d.rawRead(4))
}

// U64 reads a little-endian uint64.
func (d *Decoder) U64() uint64 {
	return binary.LittleEndian.Uint64(d.rawRead(8))
}

// VInt reads a value written by Encoder.VInt.
func (d *Decoder) VInt() uint64 {
	var val uint64
	var shift uint
	for {
		c := d.U8()
		if d.err != nil {
			return 0
		}
		val |= uint64(c&0x7F) << shift
		if c&0x80 == 0 {
			return val
		}
		shift += 7
	}
}

// Float reads a value written by Encoder.Float.
func (d *Decoder) Float() float32 {
	return math.Float32frombits(d.U32())
}

// Double reads a value written by Encoder.Double.
func (d *Decoder) Double() float64 {
	return math.Float64frombits(d.U64())
}

// String reads a value written by Encoder.String.
func (d *Decoder) String() string {
	n := d.U64()
	if d.err != nil {
		return ""
	}
	return string(d.rawRead(int(n)))
}

// Block reads exactly n raw bytes with no length prefix.
func (d *Decoder) Block(n int) []byte {
	return d.rawRead(n)
}

// Signature reads exactly len(expected) raw bytes and reports whether they
// match, matching the write-side asymmetry of Encoder.Signature.
func (d *Decoder) Signature(expected string) bool {
	got := d.rawRead(len(expected))
	if d.err != nil {
		return false
	}
	return string(got) == expected
}
