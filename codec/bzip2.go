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

	"github.com/dsnet/compress/bzip2"

	"github.com/holocm/holo-corelib/errs"
)

// NewBzip2Reader wraps dsnet/compress/bzip2's decoder (the standard
// library's compress/bzip2 is decode-only and has no writer counterpart, so
// both directions come from the same third-party package here).
func NewBzip2Reader(r io.Reader) (io.ReadCloser, error) {
	br, err := bzip2.NewReader(r, nil)
	if err != nil {
		return nil, errs.Wrap(errs.CodecError, err, "codec: bzip2 reader init failed")
	}
	return br, nil
}

// NewBzip2Writer wraps dsnet/compress/bzip2's encoder. level follows the
// classic bzip2 1..9 block-size scale; 0 selects the library default.
func NewBzip2Writer(w io.Writer, level int) (io.WriteCloser, error) {
	var opts *bzip2.WriterConfig
	if level != 0 {
		opts = &bzip2.WriterConfig{Level: level}
	}
	bw, err := bzip2.NewWriter(w, opts)
	if err != nil {
		return nil, errs.Wrap(errs.CodecError, err, "codec: bzip2 writer init failed")
	}
	return bw, nil
}
