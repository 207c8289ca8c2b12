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
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/holocm/holo-corelib/errs"
)

// Kind identifies a Value's variant.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

// Value is an immutable, structurally-equal JSON value tree node. The zero
// Value is KindNull.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	obj  map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// NewBool wraps a bool.
func NewBool(v bool) Value { return Value{kind: KindBool, b: v} }

// NewInt wraps an int64.
func NewInt(v int64) Value { return Value{kind: KindInt, i: v} }

// NewFloat wraps a float64.
func NewFloat(v float64) Value { return Value{kind: KindFloat, f: v} }

// NewString wraps a string.
func NewString(v string) Value { return Value{kind: KindString, s: v} }

// NewArray wraps a slice of values (copied).
func NewArray(items []Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindArray, arr: cp}
}

// NewObject wraps a key/value map (copied).
func NewObject(fields map[string]Value) Value {
	cp := make(map[string]Value, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return Value{kind: KindObject, obj: cp}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsInt() bool    { return v.kind == KindInt }
func (v Value) IsFloat() bool  { return v.kind == KindFloat }
func (v Value) IsString() bool { return v.kind == KindString }
func (v Value) IsArray() bool  { return v.kind == KindArray }
func (v Value) IsObject() bool { return v.kind == KindObject }

func typeMismatch(want string, v Value) error {
	return errs.New(errs.TypeMismatch, "jsonv: expected %s, got %s", want, v.kindName())
}

func (v Value) kindName() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "?"
	}
}

// GetBool returns the wrapped bool, or TypeMismatch if v is not a bool.
func (v Value) GetBool() (bool, error) {
	if v.kind != KindBool {
		return false, typeMismatch("bool", v)
	}
	return v.b, nil
}

// GetInt returns the wrapped integer, or TypeMismatch if v is not an int.
func (v Value) GetInt() (int64, error) {
	if v.kind != KindInt {
		return 0, typeMismatch("int", v)
	}
	return v.i, nil
}

// GetFloat returns the wrapped float, or TypeMismatch if v is not a float.
// It does not implicitly widen an Int, matching the source's strict typing.
func (v Value) GetFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, typeMismatch("float", v)
	}
	return v.f, nil
}

// GetString returns the wrapped string, or TypeMismatch if v is not a string.
func (v Value) GetString() (string, error) {
	if v.kind != KindString {
		return "", typeMismatch("string", v)
	}
	return v.s, nil
}

// Size returns the number of elements/fields; valid only on array or object.
func (v Value) Size() (int, error) {
	switch v.kind {
	case KindArray:
		return len(v.arr), nil
	case KindObject:
		return len(v.obj), nil
	default:
		return 0, typeMismatch("array or object", v)
	}
}

// HasKey reports whether an object has the given key; false (not an error)
// when v is not an object.
func (v Value) HasKey(key string) bool {
	if v.kind != KindObject {
		return false
	}
	_, ok := v.obj[key]
	return ok
}

// KeyList returns an object's keys sorted ascending, or nil if v is not an
// object.
func (v Value) KeyList() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Item is one key/value pair as returned by ItemList.
type Item struct {
	Key   string
	Value Value
}

// ItemList returns an object's entries sorted by key, or nil if v is not an
// object.
func (v Value) ItemList() []Item {
	keys := v.KeyList()
	if keys == nil {
		return nil
	}
	items := make([]Item, len(keys))
	for i, k := range keys {
		items[i] = Item{Key: k, Value: v.obj[k]}
	}
	return items
}

// Get looks up a key on an object; a missing key yields Null, not an error,
// matching the source's get_value(key) behavior. Non-objects report
// TypeMismatch.
func (v Value) Get(key string) (Value, error) {
	if v.kind != KindObject {
		return Value{}, typeMismatch("object", v)
	}
	if val, ok := v.obj[key]; ok {
		return val, nil
	}
	return Null(), nil
}

// At indexes an array by position; negative indices count from the end
// (-1 is the last element). Out-of-range indices report OutOfRange.
func (v Value) At(pos int) (Value, error) {
	if v.kind != KindArray {
		return Value{}, typeMismatch("array", v)
	}
	n := len(v.arr)
	idx := pos
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return Value{}, errs.New(errs.OutOfRange, "jsonv: array index %d out of range (len %d)", pos, n)
	}
	return v.arr[idx], nil
}

// Equal reports structural equality.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k, val := range v.obj {
			ov, ok := other.obj[k]
			if !ok || !val.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ToJSON serializes v. With pretty, nested structures are indented 4 spaces
// per level across multiple lines; without, the output is compact with
// ", " and ": " separators. Unlike the string-writing routine this was
// grounded on, string values are quoted and escaped on the way out.
func (v Value) ToJSON(pretty bool) string {
	var b strings.Builder
	indent := -1
	if pretty {
		indent = 0
	}
	v.write(&b, indent)
	return b.String()
}

func tabs(n int) string {
	return strings.Repeat("    ", n)
}

func (v Value) write(b *strings.Builder, indent int) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		if v.b {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindInt:
		b.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		b.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case KindString:
		writeQuotedString(b, v.s)
	case KindArray:
		v.writeArray(b, indent)
	case KindObject:
		v.writeObject(b, indent)
	}
}

func writeQuotedString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}

func (v Value) writeArray(b *strings.Builder, indent int) {
	b.WriteByte('[')
	if indent >= 0 {
		b.WriteByte('\n')
	}
	inner := indent
	if indent >= 0 {
		inner++
	}
	for i, item := range v.arr {
		if i > 0 {
			b.WriteByte(',')
			if indent >= 0 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		if indent >= 0 {
			b.WriteString(tabs(inner))
		}
		item.write(b, inner)
	}
	if indent >= 0 {
		b.WriteByte('\n')
		b.WriteString(tabs(indent))
	}
	b.WriteByte(']')
}

func (v Value) writeObject(b *strings.Builder, indent int) {
	b.WriteByte('{')
	if indent >= 0 {
		b.WriteByte('\n')
	}
	inner := indent
	if indent >= 0 {
		inner++
	}
	for i, item := range v.ItemList() {
		if i > 0 {
			b.WriteByte(',')
			if indent >= 0 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		if indent >= 0 {
			b.WriteString(tabs(inner))
		}
		writeQuotedString(b, item.Key)
		b.WriteString(": ")
		item.Value.write(b, inner)
	}
	if indent >= 0 {
		b.WriteByte('\n')
		b.WriteString(tabs(indent))
	}
	b.WriteByte('}')
}

// Walk visits v and every value nested beneath it, depth-first, calling fn
// with the path of keys/indices (as strings) leading to each node.
func Walk(v Value, fn func(path []string, val Value)) {
	walk(v, nil, fn)
}

func walk(v Value, path []string, fn func(path []string, val Value)) {
	fn(path, v)
	switch v.kind {
	case KindArray:
		for i, item := range v.arr {
			walk(item, appendPath(path, strconv.Itoa(i)), fn)
		}
	case KindObject:
		for _, item := range v.ItemList() {
			walk(item.Value, appendPath(path, item.Key), fn)
		}
	}
}

// appendPath grows path into a fresh backing array so sibling recursive
// calls never alias or overwrite each other's slice.
func appendPath(path []string, elem string) []string {
	next := make([]string, len(path)+1)
	copy(next, path)
	next[len(path)] = elem
	return next
}
