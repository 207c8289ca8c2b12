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

// Package errs defines the error taxonomy shared by every component of
// holo-corelib: a closed set of Kinds (not Go types), each wrapping an
// optional cause, so that callers can branch with errors.Is/errors.As
// instead of string-matching messages.
package errs

import (
	"errors"
	"fmt"
)

// Kind categorizes an Error without tying callers to a concrete Go type.
type Kind int

const (
	// InvalidArgument marks a constructor call outside its documented domain,
	// e.g. a FileLoc built from a line/column pair that doesn't fit the
	// packed representation, or a generator built with k > n.
	InvalidArgument Kind = iota
	// OutOfRange marks an index or id lookup past the end of its backing store.
	OutOfRange
	// TypeMismatch marks a JSON accessor called against a Value of the wrong kind.
	TypeMismatch
	// SyntaxError marks a JSON scanner/parser failure.
	SyntaxError
	// CodecError marks a compression-library failure carrying a numeric code and label.
	CodecError
	// CrcError marks a gzip trailer CRC-32 mismatch.
	CrcError
	// LengthError marks a gzip trailer length mismatch.
	LengthError
	// TruncatedInput marks a compressed stream that ended before the codec signaled completion.
	TruncatedInput
	// IoError marks a failed read or write on an underlying stream.
	IoError
)

// String returns a short, lower-case label for the kind.
func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case OutOfRange:
		return "out of range"
	case TypeMismatch:
		return "type mismatch"
	case SyntaxError:
		return "syntax error"
	case CodecError:
		return "codec error"
	case CrcError:
		return "crc mismatch"
	case LengthError:
		return "length mismatch"
	case TruncatedInput:
		return "truncated input"
	case IoError:
		return "i/o error"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type raised by every package in this module.
// It always carries a Kind so callers can use
// errors.Is(err, errs.New(errs.OutOfRange, "")) (comparing against a sentinel
// built with New(kind, "")) or inspect the kind directly via errors.As.
type Error struct {
	Kind    Kind
	Message string
	Cause   error

	// Code and Label are populated only for Kind == CodecError, carrying the
	// underlying compression library's numeric error code and a short name
	// for it (e.g. "BZ_DATA_ERROR").
	Code  int
	Label string
}

// New builds an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Kind: kind, Message: msg}
}

// Wrap builds an Error of the given kind around an existing error.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	e := New(kind, format, args...)
	e.Cause = cause
	return e
}

// Codec builds a CodecError carrying the library's numeric code and label.
func Codec(code int, label, format string, args ...interface{}) *Error {
	e := New(CodecError, format, args...)
	e.Code = code
	e.Label = label
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Kind, which is what
// lets callers write errors.Is(err, errs.New(errs.OutOfRange, "")).
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}
