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
	"io"

	"github.com/holocm/holo-corelib/errs"
)

// Stream wraps one compressed-format engine behind a single buffered
// io.ReadWriteCloser, so callers compose it with bufio/encoding readers and
// writers without caring which format engine is underneath. A Stream is
// either a reader or a writer, never both.
type Stream struct {
	format Format
	rc     io.ReadCloser
	br     *bufio.Reader
	wc     io.WriteCloser
	bw     *bufio.Writer
}

// OpenReader opens r for reading through the given format's engine.
func OpenReader(format Format, r io.Reader) (*Stream, error) {
	rc, err := NewReader(format, r)
	if err != nil {
		return nil, err
	}
	return &Stream{format: format, rc: rc, br: bufio.NewReader(rc)}, nil
}

// OpenWriter opens w for writing through the given format's engine at the
// given compression level (0 for the engine default).
func OpenWriter(format Format, w io.Writer, level int) (*Stream, error) {
	wc, err := NewWriter(format, w, level)
	if err != nil {
		return nil, err
	}
	s := &Stream{format: format, wc: wc}
	s.bw = bufio.NewWriter(wc)
	return s, nil
}

// Format reports which engine backs this stream.
func (s *Stream) Format() Format {
	return s.format
}

// Read fills p from the buffered decompressed stream (underflow: the
// buffer refills from the engine once drained).
func (s *Stream) Read(p []byte) (int, error) {
	if s.br == nil {
		return 0, errs.New(errs.InvalidArgument, "codec: stream not opened for reading")
	}
	return s.br.Read(p)
}

// Write buffers p for compression (overflow: the buffer flushes to the
// engine once full).
func (s *Stream) Write(p []byte) (int, error) {
	if s.bw == nil {
		return 0, errs.New(errs.InvalidArgument, "codec: stream not opened for writing")
	}
	n, err := s.bw.Write(p)
	if err != nil {
		return n, errs.Wrap(errs.IoError, err, "codec: stream write failed")
	}
	return n, nil
}

// Sync flushes any buffered, not-yet-compressed bytes to the engine without
// closing it.
func (s *Stream) Sync() error {
	if s.bw == nil {
		return nil
	}
	if err := s.bw.Flush(); err != nil {
		return errs.Wrap(errs.IoError, err, "codec: stream flush failed")
	}
	return nil
}

// Close flushes any buffered bytes (for writers) and closes the underlying
// engine.
func (s *Stream) Close() error {
	if s.bw != nil {
		if err := s.Sync(); err != nil {
			return err
		}
		return s.wc.Close()
	}
	if s.rc != nil {
		return s.rc.Close()
	}
	return nil
}
