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
	"bufio"
	"compress/flate"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/holocm/holo-corelib/errs"
)

// gzip FLG bits this engine understands on read.
const (
	gzFlgText    = 1 << 0
	gzFlgHCRC    = 1 << 1
	gzFlgExtra   = 1 << 2
	gzFlgName    = 1 << 3
	gzFlgComment = 1 << 4
)

// GzWriter implements a gzip member entirely by hand over raw DEFLATE
// (compress/flate, which has no zlib/gzip framing of its own): it emits the
// fixed 10-byte header itself, tracks a running CRC-32 and length, and
// appends the 8-byte little-endian trailer on Close.
type GzWriter struct {
	w       io.Writer
	fw      *flate.Writer
	crc     uint32
	size    uint32
	wroteHd bool
}

// NewGzWriter builds a GzWriter at the given compression level
// (flate.DefaultCompression if level is 0).
func NewGzWriter(w io.Writer, level int) (*GzWriter, error) {
	if level == 0 {
		level = flate.DefaultCompression
	}
	fw, err := flate.NewWriter(w, level)
	if err != nil {
		return nil, errs.Wrap(errs.CodecError, err, "codec: gzip flate init failed")
	}
	return &GzWriter{w: w, fw: fw}, nil
}

func (g *GzWriter) writeHeader() error {
	header := [10]byte{0x1f, 0x8b, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03}
	if _, err := g.w.Write(header[:]); err != nil {
		return errs.Wrap(errs.IoError, err, "codec: gzip header write failed")
	}
	g.wroteHd = true
	return nil
}

// Write compresses p, updating the CRC-32/length trailer state.
func (g *GzWriter) Write(p []byte) (int, error) {
	if !g.wroteHd {
		if err := g.writeHeader(); err != nil {
			return 0, err
		}
	}
	n, err := g.fw.Write(p)
	if err != nil {
		return n, errs.Wrap(errs.IoError, err, "codec: gzip write failed")
	}
	g.crc = crc32.Update(g.crc, crc32.IEEETable, p[:n])
	g.size += uint32(n)
	return n, nil
}

// Close flushes the final deflate block and appends the trailer.
func (g *GzWriter) Close() error {
	if !g.wroteHd {
		if err := g.writeHeader(); err != nil {
			return err
		}
	}
	if err := g.fw.Close(); err != nil {
		return errs.Wrap(errs.IoError, err, "codec: gzip flush failed")
	}
	var trailer [8]byte
	binary.LittleEndian.PutUint32(trailer[0:4], g.crc)
	binary.LittleEndian.PutUint32(trailer[4:8], g.size)
	if _, err := g.w.Write(trailer[:]); err != nil {
		return errs.Wrap(errs.IoError, err, "codec: gzip trailer write failed")
	}
	return nil
}

// GzReader parses a gzip member by hand over raw DEFLATE: validate the
// header's magic/method/flags, skip the optional fields the FLG byte
// advertises, then verify the CRC-32/length trailer once the flate stream
// signals end.
type GzReader struct {
	r      *bufio.Reader
	fr     io.ReadCloser
	crc    uint32
	size   uint32
	header bool
	done   bool
}

// NewGzReader builds a GzReader over r, validating the header immediately.
func NewGzReader(r io.Reader) (*GzReader, error) {
	g := &GzReader{r: bufio.NewReader(r)}
	if err := g.readHeader(); err != nil {
		return nil, err
	}
	g.fr = flate.NewReader(g.r)
	return g, nil
}

func (g *GzReader) readByte() (byte, error) {
	b, err := g.r.ReadByte()
	if err != nil {
		return 0, errs.Wrap(errs.TruncatedInput, err, "codec: gzip header truncated")
	}
	return b, nil
}

func (g *GzReader) readHeader() error {
	magic := make([]byte, 3)
	if _, err := io.ReadFull(g.r, magic); err != nil {
		return errs.Wrap(errs.SyntaxError, err, "codec: gzip header truncated")
	}
	if magic[0] != 0x1f || (magic[1] != 0x8b && magic[1] != 0x9e) || magic[2] != 0x08 {
		return errs.New(errs.SyntaxError, "codec: invalid gzip magic/method")
	}

	flg, err := g.readByte()
	if err != nil {
		return err
	}
	if flg&^(gzFlgText|gzFlgHCRC|gzFlgExtra|gzFlgName|gzFlgComment) != 0 {
		return errs.New(errs.SyntaxError, "codec: gzip header has reserved flag bits set")
	}
	// MTIME(4) + XFL(1) + OS(1)
	skip := make([]byte, 6)
	if _, err := io.ReadFull(g.r, skip); err != nil {
		return errs.Wrap(errs.SyntaxError, err, "codec: gzip header truncated")
	}

	if flg&gzFlgExtra != 0 {
		lenBytes := make([]byte, 2)
		if _, err := io.ReadFull(g.r, lenBytes); err != nil {
			return errs.Wrap(errs.SyntaxError, err, "codec: gzip extra field truncated")
		}
		n := int(binary.LittleEndian.Uint16(lenBytes))
		extra := make([]byte, n)
		if _, err := io.ReadFull(g.r, extra); err != nil {
			return errs.Wrap(errs.SyntaxError, err, "codec: gzip extra field truncated")
		}
	}
	if flg&gzFlgName != 0 {
		if err := g.skipCString(); err != nil {
			return err
		}
	}
	if flg&gzFlgComment != 0 {
		if err := g.skipCString(); err != nil {
			return err
		}
	}
	if flg&gzFlgHCRC != 0 {
		hcrc := make([]byte, 2)
		if _, err := io.ReadFull(g.r, hcrc); err != nil {
			return errs.Wrap(errs.SyntaxError, err, "codec: gzip header CRC truncated")
		}
	}

	g.header = true
	return nil
}

func (g *GzReader) skipCString() error {
	for {
		b, err := g.readByte()
		if err != nil {
			return err
		}
		if b == 0 {
			return nil
		}
	}
}

// Read decompresses into p, verifying the trailer once flate signals EOF.
func (g *GzReader) Read(p []byte) (int, error) {
	n, err := g.fr.Read(p)
	if n > 0 {
		g.crc = crc32.Update(g.crc, crc32.IEEETable, p[:n])
		g.size += uint32(n)
	}
	if err == io.EOF {
		if verr := g.verifyTrailer(); verr != nil {
			return n, verr
		}
	}
	if err != nil && err != io.EOF {
		return n, errs.Wrap(errs.IoError, err, "codec: gzip read failed")
	}
	return n, err
}

func (g *GzReader) verifyTrailer() error {
	if g.done {
		return nil
	}
	g.done = true
	trailer := make([]byte, 8)
	if _, err := io.ReadFull(g.r, trailer); err != nil {
		return errs.Wrap(errs.TruncatedInput, err, "codec: gzip trailer truncated")
	}
	wantCRC := binary.LittleEndian.Uint32(trailer[0:4])
	wantSize := binary.LittleEndian.Uint32(trailer[4:8])
	if wantCRC != g.crc {
		return errs.New(errs.CrcError, "codec: gzip CRC mismatch: want %08x, got %08x", wantCRC, g.crc)
	}
	if wantSize != g.size {
		return errs.New(errs.LengthError, "codec: gzip length mismatch: want %d, got %d", wantSize, g.size)
	}
	return nil
}

// Close releases the underlying flate reader.
func (g *GzReader) Close() error {
	return g.fr.Close()
}
