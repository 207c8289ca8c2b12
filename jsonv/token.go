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

// Package jsonv implements components J and K: a JSON tokenizer and
// recursive-descent parser that build an immutable, polymorphic Value tree.
package jsonv

import "github.com/holocm/holo-corelib/fileloc"

// TokenKind identifies a lexical token kind.
type TokenKind int

const (
	TokLCB TokenKind = iota
	TokRCB
	TokLBK
	TokRBK
	TokComma
	TokColon
	TokString
	TokInt
	TokFloat
	TokTrue
	TokFalse
	TokNull
	TokEnd
)

func (k TokenKind) String() string {
	switch k {
	case TokLCB:
		return "{"
	case TokRCB:
		return "}"
	case TokLBK:
		return "["
	case TokRBK:
		return "]"
	case TokComma:
		return ","
	case TokColon:
		return ":"
	case TokString:
		return "string"
	case TokInt:
		return "int"
	case TokFloat:
		return "float"
	case TokTrue:
		return "true"
	case TokFalse:
		return "false"
	case TokNull:
		return "null"
	case TokEnd:
		return "end-of-input"
	default:
		return "?"
	}
}

// Token is one lexical token: a kind, its lexeme (for String/Int/Float), and
// the source region it spans.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Region fileloc.Region
}
