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

package codec

import (
	"io"

	"github.com/holocm/holo-corelib/errs"
)

// Classic Unix `compress` (LZW) constants.
const (
	zMagic0      = 0x1f
	zMagic1      = 0x9d
	zBitMask     = 0x1f
	zBlockMask   = 0x80
	zInitBits    = 9
	zCheckGap    = 10000
	zClearCode   = 256
	zFirstFree   = 257
	zHSize       = 69001
	zDefaultBits = 16
)

var zLMask = [9]byte{0xff, 0xfe, 0xfc, 0xf8, 0xf0, 0xe0, 0xc0, 0x80, 0x00}
var zRMask = [9]byte{0x00, 0x01, 0x03, 0x07, 0x0f, 0x1f, 0x3f, 0x7f, 0xff}

func zMaxCode(nBits uint) int64 {
	return (int64(1) << nBits) - 1
}

// ZWriter compresses plain bytes into the classic `compress` wire format:
// magic `1F 9D`, a maxbits byte (high bit = block-compress flag), then an
// LZW stream with variable code width and double-hashed dictionary lookup.
type ZWriter struct {
	w       io.Writer
	maxbits uint

	maxmaxcode int64
	freeEnt    int64
	clearFlg   bool
	ratio      int64
	checkpoint int64
	inCount    int64
	outCount   int64
	bytesOut   int64

	hsize    int64
	hshift   uint
	htab     []int64
	codetab  []int64

	nBits   uint
	maxcode int64
	offset  int
	buf     []byte

	started bool
	ent     int64
}

// NewZWriter builds a ZWriter with the default 16-bit maxbits.
func NewZWriter(w io.Writer) *ZWriter {
	return NewZWriterLevel(w, zDefaultBits)
}

// NewZWriterLevel builds a ZWriter with an explicit maxbits in [9, 16].
func NewZWriterLevel(w io.Writer, maxbits uint) *ZWriter {
	if maxbits == 0 {
		maxbits = zDefaultBits
	}
	return &ZWriter{
		w:        w,
		maxbits:  maxbits,
		hsize:    zHSize,
		htab:     make([]int64, zHSize),
		codetab:  make([]int64, zHSize),
		buf:      make([]byte, zDefaultBits),
		freeEnt:  zFirstFree,
	}
}

func (z *ZWriter) clHash(size int64) {
	for i := int64(0); i < size; i++ {
		z.htab[i] = -1
	}
}

func (z *ZWriter) init() error {
	z.maxmaxcode = int64(1) << z.maxbits
	if _, err := z.w.Write([]byte{zMagic0, zMagic1}); err != nil {
		return errs.Wrap(errs.IoError, err, "codec: z header write failed")
	}
	tag := byte(z.maxbits) | zBlockMask
	if _, err := z.w.Write([]byte{tag}); err != nil {
		return errs.Wrap(errs.IoError, err, "codec: z header write failed")
	}

	z.bytesOut = 3
	z.nBits = zInitBits
	z.maxcode = zMaxCode(z.nBits)
	z.freeEnt = zFirstFree
	z.checkpoint = zCheckGap
	z.inCount = 1

	z.hshift = 0
	for fcode := z.hsize; fcode < 65536; fcode *= 2 {
		z.hshift++
	}
	z.hshift = 8 - z.hshift
	z.clHash(z.hsize)
	z.started = true
	return nil
}

// Write compresses p.
func (z *ZWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := len(p)
	i := 0
	if !z.started {
		if err := z.init(); err != nil {
			return 0, err
		}
		z.ent = int64(p[0])
		i = 1
	}

	for ; i < len(p); i++ {
		c := int64(p[i])
		z.inCount++
		fcode := (c << z.maxbits) + z.ent
		h := (c << z.hshift) ^ z.ent

		if z.htab[h] == fcode {
			z.ent = z.codetab[h]
			continue
		}
		if z.htab[h] < 0 {
			if err := z.noMatch(c, fcode, h); err != nil {
				return 0, err
			}
			continue
		}

		var disp int64
		if h == 0 {
			disp = 1
		} else {
			disp = z.hsize - h
		}

		found := false
		for {
			h -= disp
			if h < 0 {
				h += z.hsize
			}
			if z.htab[h] == fcode {
				z.ent = z.codetab[h]
				found = true
				break
			}
			if z.htab[h] >= 0 {
				continue
			}
			break
		}
		if found {
			continue
		}
		if err := z.noMatch(c, fcode, h); err != nil {
			return 0, err
		}
	}
	return n, nil
}

func (z *ZWriter) noMatch(c, fcode, h int64) error {
	if err := z.output(z.ent); err != nil {
		return err
	}
	z.outCount++
	z.ent = c

	if z.freeEnt < z.maxmaxcode {
		z.codetab[h] = z.freeEnt
		z.freeEnt++
		z.htab[h] = fcode
	} else if z.inCount >= z.checkpoint {
		if err := z.clBlock(); err != nil {
			return err
		}
	}
	return nil
}

func (z *ZWriter) clBlock() error {
	z.checkpoint = z.inCount + zCheckGap

	var rat int64
	if z.inCount > 0x007fffff {
		rat = z.bytesOut >> 8
		if rat == 0 {
			rat = 0x7fffffff
		} else {
			rat = z.inCount / rat
		}
	} else {
		rat = (z.inCount << 8) / z.bytesOut
	}

	if rat > z.ratio {
		z.ratio = rat
		return nil
	}
	z.ratio = 0
	z.clHash(z.hsize)
	z.freeEnt = zFirstFree
	z.clearFlg = true
	return z.output(zClearCode)
}

// output packs ocode LSB-first into the bit buffer. ocode == -1 signals EOF
// flush.
func (z *ZWriter) output(ocode int64) error {
	if ocode >= 0 {
		rOff := z.offset & 7
		bp := z.offset >> 3
		bits := int(z.nBits)

		z.buf[bp] = (z.buf[bp] & zRMask[rOff]) | byte((ocode<<uint(rOff))&int64(zLMask[rOff]))
		bp++
		ocode >>= uint(8 - rOff)
		bits -= 8 - rOff

		if bits >= 8 {
			z.buf[bp] = byte(ocode & 0xFF)
			bp++
			ocode >>= 8
			bits -= 8
		}
		if bits > 0 {
			z.buf[bp] = byte(ocode)
		}

		z.offset += int(z.nBits)
		if z.offset == int(z.nBits)*8 {
			if _, err := z.w.Write(z.buf[:z.nBits]); err != nil {
				return errs.Wrap(errs.IoError, err, "codec: z write failed")
			}
			z.bytesOut += int64(z.nBits)
			z.offset = 0
		}

		if z.freeEnt > z.maxcode || z.clearFlg {
			if z.offset > 0 {
				if _, err := z.w.Write(z.buf[:z.nBits]); err != nil {
					return errs.Wrap(errs.IoError, err, "codec: z write failed")
				}
				z.bytesOut += int64(z.nBits)
			}
			z.offset = 0

			if z.clearFlg {
				z.nBits = zInitBits
				z.maxcode = zMaxCode(z.nBits)
				z.clearFlg = false
			} else {
				z.nBits++
				if z.nBits == z.maxbits {
					z.maxcode = z.maxmaxcode
				} else {
					z.maxcode = zMaxCode(z.nBits)
				}
			}
		}
	} else if z.offset > 0 {
		flushBytes := (z.offset + 7) / 8
		if _, err := z.w.Write(z.buf[:flushBytes]); err != nil {
			return errs.Wrap(errs.IoError, err, "codec: z write failed")
		}
		z.bytesOut += int64(flushBytes)
		z.offset = 0
	}
	return nil
}

// Close flushes the final code and the EOF marker.
func (z *ZWriter) Close() error {
	if !z.started {
		return nil
	}
	if err := z.output(z.ent); err != nil {
		return err
	}
	z.outCount++
	return z.output(-1)
}

// ZReader decompresses the classic `compress` wire format produced by ZWriter.
type ZReader struct {
	r       io.Reader
	maxbits uint

	nBits      uint
	maxcode    int64
	maxmaxcode int64
	freeEnt    int64
	blockFlag  bool
	clearFlg   bool

	prefix []int64
	suffix []byte
	stack  []byte

	oldcode int64
	finchar byte

	roffset int
	size    int
	gbuf    []byte

	started bool
	eof     bool

	pending []byte // bytes decoded but not yet delivered to Read
}

// NewZReader builds a ZReader over r.
func NewZReader(r io.Reader) *ZReader {
	return &ZReader{r: r, gbuf: make([]byte, zDefaultBits)}
}

func (z *ZReader) rawRead(n int, buf []byte) (int, error) {
	return io.ReadFull(z.r, buf[:n])
}

func (z *ZReader) init() error {
	header := make([]byte, 3)
	n, err := io.ReadFull(z.r, header)
	if n != 3 || header[0] != zMagic0 || header[1] != zMagic1 {
		if err == io.EOF && n == 0 {
			z.eof = true
			return nil
		}
		return errs.New(errs.SyntaxError, "codec: invalid z magic header")
	}
	z.maxbits = uint(header[2] & zBitMask)
	z.blockFlag = header[2]&zBlockMask != 0
	if z.maxbits > zDefaultBits || z.maxbits < zInitBits {
		return errs.New(errs.SyntaxError, "codec: invalid z maxbits %d", z.maxbits)
	}
	z.maxmaxcode = int64(1) << z.maxbits
	z.nBits = zInitBits
	z.maxcode = zMaxCode(z.nBits)

	z.prefix = make([]int64, zHSize)
	z.suffix = make([]byte, 1<<z.maxbits)
	z.stack = make([]byte, 0, 8000)
	for code := 0; code < 256; code++ {
		z.prefix[code] = 0
		z.suffix[code] = byte(code)
	}
	if z.blockFlag {
		z.freeEnt = zFirstFree
	} else {
		z.freeEnt = 256
	}

	code, err := z.getcode()
	if err != nil {
		return err
	}
	if code == -1 {
		z.eof = true
		return nil
	}
	z.oldcode = code
	z.finchar = byte(code & 0xFF)
	z.pending = append(z.pending, z.finchar)
	z.started = true
	return nil
}

// Read fills p with decompressed bytes, returning io.EOF once the stream is
// exhausted.
func (z *ZReader) Read(p []byte) (int, error) {
	if !z.started && !z.eof {
		if err := z.init(); err != nil {
			return 0, err
		}
	}
	if len(p) == 0 {
		return 0, nil
	}

	total := 0
	for total < len(p) {
		if len(z.pending) > 0 {
			n := copy(p[total:], z.pending)
			z.pending = z.pending[n:]
			total += n
			continue
		}
		if z.eof {
			if total > 0 {
				return total, nil
			}
			return 0, io.EOF
		}
		if err := z.decodeOne(); err != nil {
			return total, err
		}
	}
	return total, nil
}

// decodeOne runs one outer iteration of the decode loop, pushing a run of
// output bytes into z.pending (in forward order, after reversing the LZW
// decode stack), or sets z.eof if the stream has ended.
func (z *ZReader) decodeOne() error {
	code, err := z.getcode()
	if err != nil {
		return err
	}
	if code == -1 {
		z.eof = true
		return nil
	}
	if code == zClearCode && z.blockFlag {
		for i := 0; i < 256; i++ {
			z.prefix[i] = 0
		}
		z.clearFlg = true
		z.freeEnt = zFirstFree
		z.oldcode = -1
		return nil
	}

	inCode := code
	stack := z.stack[:0]

	if code >= z.freeEnt {
		if code > z.freeEnt || z.oldcode == -1 {
			return errs.New(errs.CodecError, "codec: corrupt z stream")
		}
		stack = append(stack, z.finchar)
		code = z.oldcode
	}

	for code >= 256 {
		stack = append(stack, z.suffix[code])
		code = z.prefix[code]
	}
	z.finchar = z.suffix[code]
	stack = append(stack, z.finchar)

	// The original pushes onto a stack and pops in reverse; reverse here
	// to get the same forward output order.
	for i, j := 0, len(stack)-1; i < j; i, j = i+1, j-1 {
		stack[i], stack[j] = stack[j], stack[i]
	}
	z.pending = append(z.pending, stack...)
	z.stack = stack[:0]

	if next := z.freeEnt; next < z.maxmaxcode && z.oldcode != -1 {
		z.prefix[next] = z.oldcode
		z.suffix[next] = z.finchar
		z.freeEnt = next + 1
	}
	z.oldcode = inCode
	return nil
}

// getcode reads one nBits-wide code from the bit stream.
func (z *ZReader) getcode() (int64, error) {
	if z.clearFlg || z.roffset >= z.size || z.freeEnt > z.maxcode {
		if z.freeEnt > z.maxcode {
			z.nBits++
			if z.nBits == z.maxbits {
				z.maxcode = z.maxmaxcode
			} else {
				z.maxcode = zMaxCode(z.nBits)
			}
		}
		if z.clearFlg {
			z.nBits = zInitBits
			z.maxcode = zMaxCode(z.nBits)
			z.clearFlg = false
		}
		n, err := io.ReadFull(z.r, z.gbuf[:z.nBits])
		if n == 0 {
			if err == io.EOF {
				return -1, nil
			}
			return -1, errs.Wrap(errs.IoError, err, "codec: z read failed")
		}
		if err != nil && err != io.ErrUnexpectedEOF {
			return -1, errs.Wrap(errs.IoError, err, "codec: z read failed")
		}
		z.roffset = 0
		z.size = n*8 - (int(z.nBits) - 1)
	}

	rOff := z.roffset & 7
	bp := z.roffset >> 3
	bits := int(z.nBits)

	gcode := int64(z.gbuf[bp]) >> uint(rOff)
	bp++
	bits -= 8 - rOff
	rOff = 8 - rOff

	if bits >= 8 {
		gcode |= int64(z.gbuf[bp]) << uint(rOff)
		bp++
		rOff += 8
		bits -= 8
	}
	if bits > 0 {
		gcode |= (int64(z.gbuf[bp]) & int64(zRMask[bits])) << uint(rOff)
	}
	z.roffset += int(z.nBits)

	return gcode, nil
}
