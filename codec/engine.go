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

// Package codec provides reader/writer engines for the compressed stream
// formats used to carry serialized payloads: gzip, bzip2, xz, and the
// classic Unix "compress" (LZW) format, plus magic-number format detection
// and an io.ReadWriteCloser-style streambuf adapter over any one engine.
package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/holocm/holo-corelib/errs"
)

// Format identifies a supported compressed stream format.
type Format int

const (
	FormatUnknown Format = iota
	FormatGzip
	FormatBzip2
	FormatXz
	FormatZ
)

// String renders a human-readable format name.
func (f Format) String() string {
	switch f {
	case FormatGzip:
		return "gzip"
	case FormatBzip2:
		return "bzip2"
	case FormatXz:
		return "xz"
	case FormatZ:
		return "Z"
	default:
		return "unknown"
	}
}

var magicPrefixes = []struct {
	format Format
	magic  []byte
}{
	{FormatGzip, []byte{0x1f, 0x8b, 0x08}},
	{FormatBzip2, []byte{0x42, 0x5a, 0x68}},
	{FormatXz, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{FormatZ, []byte{0x1f, 0x9d}},
}

// DetectFormat sniffs the compressed stream format from its leading magic
// bytes, the same way a dump-and-inspect tool would decide which decoder to
// hand a file to. It reports (FormatUnknown, false) when no known magic
// matches.
func DetectFormat(data []byte) (Format, bool) {
	for _, candidate := range magicPrefixes {
		if bytes.HasPrefix(data, candidate.magic) {
			return candidate.format, true
		}
	}
	return FormatUnknown, false
}

// NewReader returns a decompressing io.ReadCloser for the given format.
func NewReader(format Format, r io.Reader) (io.ReadCloser, error) {
	switch format {
	case FormatGzip:
		return NewGzReader(r)
	case FormatBzip2:
		return NewBzip2Reader(r)
	case FormatXz:
		return NewXzReader(r)
	case FormatZ:
		return io.NopCloser(NewZReader(r)), nil
	default:
		return nil, errs.New(errs.InvalidArgument, "codec: unsupported format %v", format)
	}
}

// NewWriter returns a compressing io.WriteCloser for the given format. level
// is passed to the gzip and bzip2 engines as their compression level (0
// selects their default); the xz and Z engines ignore it and always use
// their defaults.
func NewWriter(format Format, w io.Writer, level int) (io.WriteCloser, error) {
	switch format {
	case FormatGzip:
		return NewGzWriter(w, level)
	case FormatBzip2:
		return NewBzip2Writer(w, level)
	case FormatXz:
		return NewXzWriter(w)
	case FormatZ:
		return NewZWriter(w), nil
	default:
		return nil, errs.New(errs.InvalidArgument, "codec: unsupported format %v", format)
	}
}

// DetectAndOpenReader sniffs format from the first few bytes of r (via a
// small peek buffer reconstructed with io.MultiReader) and returns a reader
// for it.
func DetectAndOpenReader(r io.Reader) (io.ReadCloser, Format, error) {
	peek := make([]byte, 6)
	n, err := io.ReadFull(r, peek)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, FormatUnknown, errs.Wrap(errs.IoError, err, "codec: format sniff read failed")
	}
	peek = peek[:n]
	format, ok := DetectFormat(peek)
	if !ok {
		return nil, FormatUnknown, errs.New(errs.SyntaxError, "codec: %s", fmt.Sprintf("unrecognized magic bytes %x", peek))
	}
	full := io.MultiReader(bytes.NewReader(peek), r)
	rc, err := NewReader(format, full)
	return rc, format, err
}
