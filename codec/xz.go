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

	"github.com/ulikunitz/xz"

	"github.com/holocm/holo-corelib/errs"
)

// xzWriteCloser adapts *xz.Writer (whose Close flushes the final xz index
// and footer) to io.WriteCloser.
type xzWriteCloser struct {
	w *xz.Writer
}

func (x *xzWriteCloser) Write(p []byte) (int, error) {
	n, err := x.w.Write(p)
	if err != nil {
		return n, errs.Wrap(errs.IoError, err, "codec: xz write failed")
	}
	return n, nil
}

func (x *xzWriteCloser) Close() error {
	if err := x.w.Close(); err != nil {
		return errs.Wrap(errs.IoError, err, "codec: xz close failed")
	}
	return nil
}

// NewXzWriter wraps ulikunitz/xz's writer at its default preset.
func NewXzWriter(w io.Writer) (io.WriteCloser, error) {
	xw, err := xz.NewWriter(w)
	if err != nil {
		return nil, errs.Wrap(errs.CodecError, err, "codec: xz writer init failed")
	}
	return &xzWriteCloser{w: xw}, nil
}

// xzReadCloser adapts *xz.Reader to io.ReadCloser (the xz format carries its
// own end-of-stream index, so Close is a no-op here).
type xzReadCloser struct {
	r *xz.Reader
}

func (x *xzReadCloser) Read(p []byte) (int, error) {
	n, err := x.r.Read(p)
	if err != nil && err != io.EOF {
		return n, errs.Wrap(errs.IoError, err, "codec: xz read failed")
	}
	return n, err
}

func (x *xzReadCloser) Close() error {
	return nil
}

// NewXzReader wraps ulikunitz/xz's reader.
func NewXzReader(r io.Reader) (io.ReadCloser, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, errs.Wrap(errs.CodecError, err, "codec: xz reader init failed")
	}
	return &xzReadCloser{r: xr}, nil
}
