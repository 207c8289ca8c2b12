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

// Package combi implements multi-group combination and permutation
// enumerators driven by an odometer state machine, one group per (n, k)
// pair.
package combi

import "github.com/holocm/holo-corelib/errs"

// GroupSpec is one group's (n, k): choose k elements from n.
type GroupSpec struct {
	N, K int
}

// base holds the state shared by CombiGen and PermGen: a flat array of
// current elements sliced into per-group offsets.
type base struct {
	specs  []GroupSpec
	offset []int
	elem   []int
}

func newBase(specs []GroupSpec) (base, error) {
	offset := make([]int, len(specs))
	total := 0
	for i, sp := range specs {
		if sp.K < 0 || sp.N < 0 || sp.K > sp.N {
			return base{}, errs.New(errs.InvalidArgument, "combi: group %d has k=%d > n=%d", i, sp.K, sp.N)
		}
		offset[i] = total
		total += sp.K
	}
	b := base{specs: append([]GroupSpec(nil), specs...), offset: offset, elem: make([]int, total)}
	b.initAll()
	return b, nil
}

func (b *base) initAll() {
	for g := range b.specs {
		b.initGroup(g)
	}
}

func (b *base) initGroup(g int) {
	for i := 0; i < b.specs[g].K; i++ {
		b.elem[b.offset[g]+i] = i
	}
}

// GroupNum returns the number of groups.
func (b *base) GroupNum() int { return len(b.specs) }

// N returns group g's element count.
func (b *base) N(g int) int { return b.specs[g].N }

// K returns group g's selection count.
func (b *base) K(g int) int { return b.specs[g].K }

// At returns group g's element at position pos.
func (b *base) At(g, pos int) int {
	return b.elem[b.offset[g]+pos]
}

func (b *base) set(g, pos, v int) {
	b.elem[b.offset[g]+pos] = v
}

// IsEnd reports whether the whole generator has been exhausted; this only
// ever needs to check group 0.
func (b *base) IsEnd() bool {
	return b.isEndSub(0)
}

func (b *base) isEndSub(g int) bool {
	return b.At(g, 0) == b.N(g)
}

// Tuple returns group g's current selection as a fresh slice.
func (b *base) Tuple(g int) []int {
	out := make([]int, b.K(g))
	copy(out, b.elem[b.offset[g]:b.offset[g]+b.K(g)])
	return out
}

// CombiGen enumerates, for each group independently, all K(g)-combinations
// of {0, ..., N(g)-1} in lexicographic order, odometer-style across groups
// (the last group advances fastest).
type CombiGen struct {
	base
}

// NewCombiGen builds a combination generator over the given group specs.
func NewCombiGen(specs ...GroupSpec) (*CombiGen, error) {
	b, err := newBase(specs)
	if err != nil {
		return nil, err
	}
	return &CombiGen{base: b}, nil
}

// Next advances to the next combination: each group advances its rightmost
// movable position, cascading into the next group to its left when a group
// rolls over.
func (g *CombiGen) Next() {
	for grp := g.GroupNum(); grp > 0; {
		grp--
		for pos := g.K(grp); pos > 0; {
			pos--
			if g.At(grp, pos) < g.N(grp)-g.K(grp)+pos {
				g.set(grp, pos, g.At(grp, pos)+1)
				for pos1 := pos + 1; pos1 < g.K(grp); pos1++ {
					g.set(grp, pos1, g.At(grp, pos1-1)+1)
				}
				break
			} else if pos == 0 {
				g.set(grp, 0, g.N(grp))
			}
		}
		if !g.isEndSub(grp) {
			break
		}
		if grp > 0 {
			g.initGroup(grp)
		}
	}
}

// PermGen enumerates, for each group independently, all K(g)-permutations
// of {0, ..., N(g)-1}.
type PermGen struct {
	base
}

// NewPermGen builds a permutation generator over the given group specs.
func NewPermGen(specs ...GroupSpec) (*PermGen, error) {
	b, err := newBase(specs)
	if err != nil {
		return nil, err
	}
	return &PermGen{base: b}, nil
}

// Next advances to the next permutation: a per-group bitmap of values
// already placed drives the search for the next lexicographically larger
// assignment at each position, re-filling positions to the right from the
// smallest unused value when one is found.
func (g *PermGen) Next() {
	for grp := g.GroupNum(); grp > 0; {
		grp--
		n := g.N(grp)
		used := make([]bool, n)
		for pos := 0; pos < g.K(grp); pos++ {
			used[g.At(grp, pos)] = true
		}

		for pos := g.K(grp); pos > 0; {
			pos--
			found := false
			for val := g.At(grp, pos) + 1; val < n; val++ {
				if !used[val] {
					used[g.At(grp, pos)] = false
					g.set(grp, pos, val)
					used[val] = true
					found = true
					break
				}
			}
			if found {
				val := 0
				for j := pos + 1; j < g.K(grp); j++ {
					for used[val] {
						val++
					}
					used[val] = true
					g.set(grp, j, val)
					val++
				}
				break
			}
			if pos > 0 {
				used[g.At(grp, pos)] = false
			} else {
				g.set(grp, 0, n)
			}
		}

		if !g.isEndSub(grp) {
			break
		}
		if grp > 0 {
			g.initGroup(grp)
		}
	}
}
