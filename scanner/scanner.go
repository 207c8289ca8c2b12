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

// Package scanner implements a position-tracking character stream over an
// io.Reader that normalizes CR, LF, and CRLF line endings to a single '\n'.
package scanner

import (
	"bufio"
	"io"

	"github.com/holocm/holo-corelib/fileloc"
)

// EOF is the value Peek/Get return at end of input, matching istream's -1.
const EOF = -1

// NewlineFunc is invoked once a newline has been accepted, given the line
// number that just completed. It must never call back into the Scanner.
type NewlineFunc func(line int)

// Scanner reads bytes from an underlying source, folding CR/LF/CRLF into a
// single '\n' and tracking line/column as it goes. It is not safe for
// concurrent use.
type Scanner struct {
	r    *bufio.Reader
	info fileloc.FileInfo

	curLine, curColumn     int
	firstLine, firstColumn int
	nextLine, nextColumn   int

	needUpdate bool
	nextChar   int

	onNewline  NewlineFunc
	skipBOM    bool
	bomChecked bool
}

// Option configures a Scanner at construction time.
type Option func(*Scanner)

// WithNewlineFunc installs a callback fired after each newline is accepted.
func WithNewlineFunc(f NewlineFunc) Option {
	return func(s *Scanner) { s.onNewline = f }
}

// WithBOMSkipping enables silently consuming a leading UTF-8 BOM (EF BB BF).
func WithBOMSkipping() Option {
	return func(s *Scanner) { s.skipBOM = true }
}

// New builds a Scanner reading from r, attributing positions to info.
func New(r io.Reader, info fileloc.FileInfo, opts ...Option) *Scanner {
	s := &Scanner{
		r:           bufio.NewReader(r),
		info:        info,
		curLine:     1,
		curColumn:   1,
		firstLine:   1,
		firstColumn: 1,
		nextLine:    1,
		nextColumn:  1,
		needUpdate:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scanner) readByte() int {
	b, err := s.r.ReadByte()
	if err != nil {
		return EOF
	}
	return int(b)
}

func (s *Scanner) peekByte() int {
	b, err := s.r.ReadByte()
	if err != nil {
		return EOF
	}
	_ = s.r.UnreadByte()
	return int(b)
}

// update is Peek's subroutine: it pulls (and normalizes) the next character
// without committing it.
func (s *Scanner) update() {
	if s.skipBOM && !s.bomChecked {
		s.bomChecked = true
		s.maybeSkipBOM()
	}

	c := s.readByte()

	if c == '\r' {
		next := s.peekByte()
		if next == '\n' {
			s.readByte() // Windows form: consume the '\n' too
		}
		// Mac form ('\r' alone) or Windows form both normalize to '\n'.
		c = '\n'
	}

	s.needUpdate = false
	s.nextChar = c
}

func (s *Scanner) maybeSkipBOM() {
	b1, err1 := s.r.Peek(3)
	if err1 == nil && len(b1) == 3 && b1[0] == 0xEF && b1[1] == 0xBB && b1[2] == 0xBF {
		_, _ = s.r.Discard(3)
	}
}

// Peek returns the next normalized byte without consuming it, or EOF.
func (s *Scanner) Peek() int {
	if s.needUpdate {
		s.update()
	}
	return s.nextChar
}

// Accept commits the most recently peeked character, updating line/column.
// It must not be called twice without an intervening Peek.
func (s *Scanner) Accept() {
	if s.needUpdate {
		panic("scanner: Accept called without a preceding Peek")
	}

	s.needUpdate = true
	s.curLine = s.nextLine
	s.curColumn = s.nextColumn

	if s.nextChar == '\n' {
		if s.onNewline != nil {
			s.onNewline(s.curLine)
		}
		s.nextLine++
		s.nextColumn = 0
	}
	s.nextColumn++
}

// Get is Peek followed by Accept, returning the consumed character.
func (s *Scanner) Get() int {
	c := s.Peek()
	s.Accept()
	return c
}

// SetFirstLoc captures the current position as a token's starting location.
func (s *Scanner) SetFirstLoc() {
	s.firstLine = s.curLine
	s.firstColumn = s.curColumn
}

// CurPos returns the location of the most recently accepted character.
func (s *Scanner) CurPos() fileloc.FileLoc {
	loc, err := fileloc.NewFileLoc(s.info, s.curLine, s.curColumn)
	if err != nil {
		// curLine/curColumn start at valid values and Accept only ever
		// increments them; a failure here means the input has more than
		// 2^20-1 lines or a line longer than 2^12-1 columns.
		panic(err)
	}
	return loc
}

// CurRegion returns the region from the last SetFirstLoc through CurPos.
func (s *Scanner) CurRegion() fileloc.Region {
	first, err := fileloc.NewFileLoc(s.info, s.firstLine, s.firstColumn)
	if err != nil {
		panic(err)
	}
	return fileloc.Region{Start: first, End: s.CurPos()}
}
