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

package jsonv

import (
	"strconv"
	"strings"

	"github.com/holocm/holo-corelib/diag"
	"github.com/holocm/holo-corelib/errs"
	"github.com/holocm/holo-corelib/scanner"
)

// Scanner tokenizes JSON (plus comments) over a character-level Scanner.
type Scanner struct {
	sc     *scanner.Scanner
	sink   diag.Sink
	srcTag string
	ungot  *Token
}

// NewScanner builds a Scanner reading tokens from sc. sink receives a
// diagnostic on every syntax error (may be nil); srcTag labels those
// diagnostics' originating file/line for the Message.SrcFile field.
func NewScanner(sc *scanner.Scanner, sink diag.Sink, srcTag string) *Scanner {
	return &Scanner{sc: sc, sink: sink, srcTag: srcTag}
}

func isDigit(c int) bool { return c >= '0' && c <= '9' }

func isPrintableASCII(c int) bool { return c >= 0x20 && c < 0x7f }

func isHexDigit(c int) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (s *Scanner) syntaxError(msg string) error {
	region := s.sc.CurRegion()
	diag.Emit(s.sink, diag.Message{
		SrcFile: s.srcTag,
		Loc:     &region,
		Sev:     diag.Error,
		Label:   "JSON_SYNTAX_ERROR",
		Body:    msg,
	})
	return errs.New(errs.SyntaxError, "jsonv: %s", msg)
}

// ReadToken returns the next token, consuming a pending UngetToken first.
func (s *Scanner) ReadToken() (Token, error) {
	if s.ungot != nil {
		tk := *s.ungot
		s.ungot = nil
		return tk, nil
	}
	return s.scan()
}

// UngetToken pushes tk back; only one token of lookahead is supported.
func (s *Scanner) UngetToken(tk Token) {
	if s.ungot != nil {
		panic("jsonv: UngetToken called with a token already pending")
	}
	s.ungot = &tk
}

func (s *Scanner) tok(kind TokenKind, lexeme string) Token {
	return Token{Kind: kind, Lexeme: lexeme, Region: s.sc.CurRegion()}
}

func (s *Scanner) scan() (Token, error) {
	for {
		c := s.sc.Get()
		s.sc.SetFirstLoc()

		switch c {
		case scanner.EOF:
			return s.tok(TokEnd, ""), nil
		case ' ', '\t', '\n', '\r':
			continue
		case '{':
			return s.tok(TokLCB, "{"), nil
		case '}':
			return s.tok(TokRCB, "}"), nil
		case '[':
			return s.tok(TokLBK, "["), nil
		case ']':
			return s.tok(TokRBK, "]"), nil
		case ',':
			return s.tok(TokComma, ","), nil
		case ':':
			return s.tok(TokColon, ":"), nil
		case '"':
			return s.scanString()
		case '-', '.':
			return s.scanNumber(byte(c))
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			return s.scanNumber(byte(c))
		case 't':
			if s.expectWord("rue") {
				return s.tok(TokTrue, "true"), nil
			}
			return Token{}, s.syntaxError("malformed 'true' keyword")
		case 'f':
			if s.expectWord("alse") {
				return s.tok(TokFalse, "false"), nil
			}
			return Token{}, s.syntaxError("malformed 'false' keyword")
		case 'n':
			if s.expectWord("ull") {
				return s.tok(TokNull, "null"), nil
			}
			return Token{}, s.syntaxError("malformed 'null' keyword")
		case '#':
			if err := s.skipLineComment(); err != nil {
				return Token{}, err
			}
			continue
		case '/':
			c2 := s.sc.Get()
			switch c2 {
			case '*':
				if err := s.skipBlockComment(); err != nil {
					return Token{}, err
				}
				continue
			case '/':
				if err := s.skipLineComment(); err != nil {
					return Token{}, err
				}
				continue
			default:
				return Token{}, s.syntaxError("'/' must start a comment")
			}
		default:
			return Token{}, s.syntaxError("unexpected character")
		}
	}
}

func (s *Scanner) expectWord(rest string) bool {
	for i := 0; i < len(rest); i++ {
		if s.sc.Get() != int(rest[i]) {
			return false
		}
	}
	return true
}

func (s *Scanner) skipLineComment() error {
	for {
		c := s.sc.Get()
		if c == '\n' {
			return nil
		}
		if c == scanner.EOF {
			return nil
		}
	}
}

func (s *Scanner) skipBlockComment() error {
	for {
		c := s.sc.Get()
		if c == scanner.EOF {
			return s.syntaxError("unterminated block comment")
		}
		if c == '*' {
			c2 := s.sc.Get()
			if c2 == '/' {
				return nil
			}
			if c2 == scanner.EOF {
				return s.syntaxError("unterminated block comment")
			}
			// not a closer; re-scan c2 as if freshly read by looping with
			// it in hand (a run of '*' characters is handled by looping).
			for c2 == '*' {
				c2 = s.sc.Get()
			}
			if c2 == '/' {
				return nil
			}
			if c2 == scanner.EOF {
				return s.syntaxError("unterminated block comment")
			}
		}
	}
}

func (s *Scanner) scanString() (Token, error) {
	var buf strings.Builder
	for {
		c := s.sc.Get()
		if c == scanner.EOF {
			return Token{}, s.syntaxError("unterminated string literal")
		}
		if c == '"' {
			return s.tok(TokString, buf.String()), nil
		}
		if c == '\\' {
			if err := s.scanEscape(&buf); err != nil {
				return Token{}, err
			}
			continue
		}
		if !isPrintableASCII(c) {
			return Token{}, s.syntaxError("non-printable character in string literal")
		}
		buf.WriteByte(byte(c))
	}
}

func (s *Scanner) scanEscape(buf *strings.Builder) error {
	c := s.sc.Get()
	switch c {
	case '"':
		buf.WriteByte('"')
	case '\\':
		buf.WriteByte('\\')
	case '/':
		buf.WriteByte('/')
	case 'b':
		buf.WriteByte('\b')
	case 'f':
		buf.WriteByte('\f')
	case 'n':
		buf.WriteByte('\n')
	case 'r':
		buf.WriteByte('\r')
	case 't':
		buf.WriteByte('\t')
	case 'u':
		return s.scanUnicodeEscape(buf)
	default:
		return s.syntaxError("unrecognized escape sequence")
	}
	return nil
}

// scanUnicodeEscape reads four hex digits and UTF-8 encodes the resulting
// code unit (1/2/3 bytes); surrogate pairs are out of scope, matching the
// rest of this lexer's BMP-only \u handling.
func (s *Scanner) scanUnicodeEscape(buf *strings.Builder) error {
	var hex [4]byte
	for i := 0; i < 4; i++ {
		c := s.sc.Get()
		if !isHexDigit(c) {
			return s.syntaxError("malformed \\u escape")
		}
		hex[i] = byte(c)
	}
	code, err := strconv.ParseUint(string(hex[:]), 16, 32)
	if err != nil {
		return s.syntaxError("malformed \\u escape")
	}

	switch {
	case code <= 0x007F:
		buf.WriteByte(byte(code))
	case code <= 0x07FF:
		buf.WriteByte(byte(0xC0 | (code>>6)&0x1F))
		buf.WriteByte(byte(0x80 | code&0x3F))
	default:
		buf.WriteByte(byte(0xE0 | (code>>12)&0x0F))
		buf.WriteByte(byte(0x80 | (code>>6)&0x3F))
		buf.WriteByte(byte(0x80 | code&0x3F))
	}
	return nil
}

// scanNumber consumes a JSON number starting with first (a digit, '-', or
// '.'): optional sign, integer part, optional fractional part, optional
// exponent. Seeing '.' or an exponent marker makes the token a Float.
func (s *Scanner) scanNumber(first byte) (Token, error) {
	var buf strings.Builder
	buf.WriteByte(first)
	isFloat := first == '.'

	if first == '-' {
		c := s.sc.Peek()
		if !isDigit(c) && c != '.' {
			return Token{}, s.syntaxError("expected digit after '-'")
		}
		s.sc.Accept()
		buf.WriteByte(byte(c))
		isFloat = c == '.'
	}

	for isDigit(s.sc.Peek()) {
		buf.WriteByte(byte(s.sc.Peek()))
		s.sc.Accept()
	}

	if s.sc.Peek() == '.' && !isFloat {
		isFloat = true
		buf.WriteByte('.')
		s.sc.Accept()
		for isDigit(s.sc.Peek()) {
			buf.WriteByte(byte(s.sc.Peek()))
			s.sc.Accept()
		}
	} else if s.sc.Peek() == '.' {
		// a second '.' (e.g. after a leading-dot number already saw one) is
		// not part of this number; leave it for the next token.
	}

	if c := s.sc.Peek(); c == 'e' || c == 'E' {
		isFloat = true
		buf.WriteByte(byte(c))
		s.sc.Accept()
		if c := s.sc.Peek(); c == '+' || c == '-' {
			buf.WriteByte(byte(c))
			s.sc.Accept()
		}
		for isDigit(s.sc.Peek()) {
			buf.WriteByte(byte(s.sc.Peek()))
			s.sc.Accept()
		}
	}

	kind := TokInt
	if isFloat {
		kind = TokFloat
	}
	return s.tok(kind, buf.String()), nil
}
