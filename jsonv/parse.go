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
	"os"
	"strconv"
	"strings"

	"github.com/holocm/holo-corelib/diag"
	"github.com/holocm/holo-corelib/errs"
	"github.com/holocm/holo-corelib/fileloc"
	"github.com/holocm/holo-corelib/scanner"
)

// Parser is a recursive-descent parser over the grammar
//
//	value  = object | array | string | int | float | "true" | "false" | "null"
//	object = "{" [ member ( "," member )* ] "}"
//	member = string ":" value
//	array  = "[" [ value ( "," value )* ] "]"
//
// Duplicate object keys are accepted; the later value wins.
type Parser struct {
	sc *Scanner
}

// NewParser builds a Parser reading tokens from sc.
func NewParser(sc *Scanner) *Parser {
	return &Parser{sc: sc}
}

func (p *Parser) errorAt(msg string, region fileloc.Region) error {
	diag.Emit(p.sc.sink, diag.Message{
		SrcFile: p.sc.srcTag,
		Loc:     &region,
		Sev:     diag.Error,
		Label:   "JSON_SYNTAX_ERROR",
		Body:    msg,
	})
	return errs.New(errs.SyntaxError, "jsonv: %s at %s", msg, region.String())
}

// ParseValue reads one top-level JSON value (of any kind, not just object).
func (p *Parser) ParseValue() (Value, error) {
	return p.readValue()
}

func (p *Parser) readValue() (Value, error) {
	tk, err := p.sc.ReadToken()
	if err != nil {
		return Value{}, err
	}
	switch tk.Kind {
	case TokString:
		return NewString(tk.Lexeme), nil
	case TokInt:
		n, perr := strconv.ParseInt(tk.Lexeme, 10, 64)
		if perr != nil {
			return Value{}, p.errorAt("malformed integer literal", tk.Region)
		}
		return NewInt(n), nil
	case TokFloat:
		f, perr := strconv.ParseFloat(tk.Lexeme, 64)
		if perr != nil {
			return Value{}, p.errorAt("malformed float literal", tk.Region)
		}
		return NewFloat(f), nil
	case TokLCB:
		return p.readObject()
	case TokLBK:
		return p.readArray()
	case TokTrue:
		return NewBool(true), nil
	case TokFalse:
		return NewBool(false), nil
	case TokNull:
		return Null(), nil
	default:
		return Value{}, p.errorAt("'"+tk.Lexeme+"': unexpected token", tk.Region)
	}
}

func (p *Parser) readObject() (Value, error) {
	fields := map[string]Value{}

	tk, err := p.sc.ReadToken()
	if err != nil {
		return Value{}, err
	}
	if tk.Kind == TokRCB {
		return NewObject(fields), nil
	}
	p.sc.UngetToken(tk)

	for {
		keyTok, err := p.sc.ReadToken()
		if err != nil {
			return Value{}, err
		}
		if keyTok.Kind != TokString {
			return Value{}, p.errorAt("illegal token, string is expected", keyTok.Region)
		}
		colonTok, err := p.sc.ReadToken()
		if err != nil {
			return Value{}, err
		}
		if colonTok.Kind != TokColon {
			return Value{}, p.errorAt("':' is expected", colonTok.Region)
		}
		val, err := p.readValue()
		if err != nil {
			return Value{}, err
		}
		fields[keyTok.Lexeme] = val

		sep, err := p.sc.ReadToken()
		if err != nil {
			return Value{}, err
		}
		if sep.Kind == TokRCB {
			break
		}
		if sep.Kind != TokComma {
			return Value{}, p.errorAt("illegal token, ',' is expected", sep.Region)
		}
	}
	return NewObject(fields), nil
}

func (p *Parser) readArray() (Value, error) {
	tk, err := p.sc.ReadToken()
	if err != nil {
		return Value{}, err
	}
	if tk.Kind == TokRBK {
		return NewArray(nil), nil
	}
	if tk.Kind == TokEnd {
		return Value{}, p.errorAt("unexpected EOF", tk.Region)
	}
	p.sc.UngetToken(tk)

	var items []Value
	for {
		val, err := p.readValue()
		if err != nil {
			return Value{}, err
		}
		items = append(items, val)

		sep, err := p.sc.ReadToken()
		if err != nil {
			return Value{}, err
		}
		if sep.Kind == TokRBK {
			break
		}
		if sep.Kind != TokComma {
			return Value{}, p.errorAt("illegal token, ',' is expected", sep.Region)
		}
	}
	return NewArray(items), nil
}

// Parse parses text as a standalone top-level JSON value.
func Parse(text string, sink diag.Sink) (Value, error) {
	registry := &fileloc.Registry{}
	info := registry.Register("<string>", fileloc.FileLoc{})
	sc := scanner.New(strings.NewReader(text), info)
	lex := NewScanner(sc, sink, "<string>")
	return NewParser(lex).ParseValue()
}

// Read parses the named file as a standalone top-level JSON value.
func Read(filename string, sink diag.Sink) (Value, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Value{}, errs.Wrap(errs.IoError, err, "jsonv: cannot open %s", filename)
	}
	defer f.Close()

	registry := &fileloc.Registry{}
	info := registry.Register(filename, fileloc.FileLoc{})
	sc := scanner.New(f, info)
	lex := NewScanner(sc, sink, filename)
	return NewParser(lex).ParseValue()
}

// Write serializes v to filename.
func Write(filename string, v Value, pretty bool) error {
	if err := os.WriteFile(filename, []byte(v.ToJSON(pretty)), 0644); err != nil {
		return errs.Wrap(errs.IoError, err, "jsonv: cannot write %s", filename)
	}
	return nil
}
