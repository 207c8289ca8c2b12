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

// Package fileloc provides a compact, shareable representation of source
// positions and nested include chains, built around a process-wide registry
// mapping a 16-bit handle to (filename, parent location).
package fileloc

import (
	"fmt"
	"strings"

	"github.com/holocm/holo-corelib/errs"
)

// InvalidID is the FileInfo id meaning "no file".
const InvalidID = 0xFFFF

const (
	lineBits   = 20
	columnBits = 12
	maxLine    = 1<<lineBits - 1
	maxColumn  = 1<<columnBits - 1
)

// entry is one registered file: its name and the location it was included
// from (invalid if it's a top-level file).
type entry struct {
	name   string
	parent FileLoc
}

// Registry is the process-wide FileInfo store. The zero value is ready to
// use. A Registry is not safe for concurrent use without external
// synchronization; it is meant to be touched only by the thread performing
// parsing.
type Registry struct {
	entries []entry
}

// Register appends a new file to the registry and returns its id. No
// deduplication is performed: the same filename included twice produces two
// distinct ids, so two include chains through the same file remain
// distinguishable.
func (r *Registry) Register(name string, parent FileLoc) FileInfo {
	id := len(r.entries)
	r.entries = append(r.entries, entry{name: name, parent: parent})
	return FileInfo{reg: r, id: id}
}

// Filename returns the name most recently registered for id.
func (r *Registry) Filename(id int) string {
	if id < 0 || id >= len(r.entries) {
		panic(errs.New(errs.OutOfRange, "fileloc: file info id %d out of range", id))
	}
	return r.entries[id].name
}

// ParentLoc returns the location this id was included from, or an invalid
// FileLoc if it's a top-level file.
func (r *Registry) ParentLoc(id int) FileLoc {
	if id < 0 || id >= len(r.entries) {
		panic(errs.New(errs.OutOfRange, "fileloc: file info id %d out of range", id))
	}
	return r.entries[id].parent
}

// ParentChain walks ParentLoc until invalid, returning the chain ordered
// top-level-first.
func (r *Registry) ParentChain(id int) []FileLoc {
	var reversed []FileLoc
	for loc := r.ParentLoc(id); loc.IsValid(); loc = loc.ParentLoc() {
		reversed = append(reversed, loc)
	}
	chain := make([]FileLoc, len(reversed))
	for i, loc := range reversed {
		chain[len(reversed)-1-i] = loc
	}
	return chain
}

// ParentChainString renders one "In file included from FILE: line N:" line
// per ancestor, supplied here because every consumer that wants the include
// chain wants it formatted, not just structured.
func (r *Registry) ParentChainString(id int) string {
	var b strings.Builder
	for _, loc := range r.ParentChain(id) {
		fmt.Fprintf(&b, "In file included from %s: line %d:\n", loc.FileInfo().Filename(), loc.Line())
	}
	b.WriteString(r.Filename(id))
	return b.String()
}

// Reset clears the registry. Existing FileInfo handles referring to it
// become dangling — callers must only do this at a clean boundary (e.g.
// program shutdown or between independent compilations).
func (r *Registry) Reset() {
	r.entries = nil
}

// FileInfo is a handle into a Registry: (registry pointer, id). The zero
// value is the invalid FileInfo (nil registry).
type FileInfo struct {
	reg *Registry
	id  int
}

// IsValid reports whether fi refers to a registered file.
func (fi FileInfo) IsValid() bool {
	return fi.reg != nil
}

// Filename returns the registered name, or "" if fi is invalid.
func (fi FileInfo) Filename() string {
	if !fi.IsValid() {
		return ""
	}
	return fi.reg.Filename(fi.id)
}

// ParentLoc returns the location fi was included from.
func (fi FileInfo) ParentLoc() FileLoc {
	if !fi.IsValid() {
		return FileLoc{}
	}
	return fi.reg.ParentLoc(fi.id)
}

// ParentLocList is an alias for Registry.ParentChain scoped to this handle.
func (fi FileInfo) ParentLocList() []FileLoc {
	if !fi.IsValid() {
		return nil
	}
	return fi.reg.ParentChain(fi.id)
}

// String renders the include chain followed by the bare filename.
func (fi FileInfo) String() string {
	if !fi.IsValid() {
		return "(no file)"
	}
	return fi.reg.ParentChainString(fi.id)
}

// FileLoc packs a FileInfo with a (line, column) pair into a compact,
// shareable source position: 20 bits line, 12 bits column, 0 meaning invalid
// in either field.
type FileLoc struct {
	info   FileInfo
	packed uint32 // line<<columnBits | column; 0 == invalid
}

// NewFileLoc builds a FileLoc, failing with InvalidArgument if line or
// column falls outside [1, 2^20-1] / [1, 2^12-1] respectively.
func NewFileLoc(info FileInfo, line, column int) (FileLoc, error) {
	if line < 1 || line > maxLine {
		return FileLoc{}, errs.New(errs.InvalidArgument, "fileloc: line %d out of range [1, %d]", line, maxLine)
	}
	if column < 1 || column > maxColumn {
		return FileLoc{}, errs.New(errs.InvalidArgument, "fileloc: column %d out of range [1, %d]", column, maxColumn)
	}
	return FileLoc{info: info, packed: uint32(line)<<columnBits | uint32(column)}, nil
}

// IsValid reports whether the location carries a real line/column (packed != 0).
func (l FileLoc) IsValid() bool {
	return l.packed != 0
}

// FileInfo returns the file this location belongs to.
func (l FileLoc) FileInfo() FileInfo {
	return l.info
}

// Line returns the 1-based line number, or 0 if invalid.
func (l FileLoc) Line() int {
	return int(l.packed >> columnBits)
}

// Column returns the 1-based column number, or 0 if invalid.
func (l FileLoc) Column() int {
	return int(l.packed & maxColumn)
}

// ParentLoc delegates to the underlying FileInfo's parent location.
func (l FileLoc) ParentLoc() FileLoc {
	return l.info.ParentLoc()
}

// String renders l as "file: line N, column M".
func (l FileLoc) String() string {
	if !l.IsValid() {
		return "invalid file_loc"
	}
	return fmt.Sprintf("%s: line %d, column %d", l.info, l.Line(), l.Column())
}

// Region is a span between two FileLocs, possibly in different files,
// allowing a region to span an include boundary.
type Region struct {
	Start, End FileLoc
}

// NewRegion builds a Region from a single location (Start == End == loc).
func NewRegion(loc FileLoc) Region {
	return Region{Start: loc, End: loc}
}

// Merge returns the region spanning from r's start through other's end,
// matching the scanner's common "extend the current token's region" use.
func (r Region) Merge(other Region) Region {
	return Region{Start: r.Start, End: other.End}
}

// String renders the region, collapsing identical file/line/column fields
// in start and end rather than repeating them.
func (r Region) String() string {
	first, last := r.Start, r.End
	if !first.FileInfo().IsValid() {
		return "---"
	}
	if first.FileInfo() == last.FileInfo() {
		if first.Line() == last.Line() {
			if first.Column() == last.Column() {
				return fmt.Sprintf("%s: line %d, column %d", first.FileInfo(), first.Line(), first.Column())
			}
			return fmt.Sprintf("%s: line %d, column %d - %d", first.FileInfo(), first.Line(), first.Column(), last.Column())
		}
		return fmt.Sprintf("%s: line %d, column %d - line %d, column %d",
			first.FileInfo(), first.Line(), first.Column(), last.Line(), last.Column())
	}
	return fmt.Sprintf("%s: line %d, column %d - %s: line %d, column %d",
		first.FileInfo(), first.Line(), first.Column(), last.FileInfo(), last.Line(), last.Column())
}
