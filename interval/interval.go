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

// Package interval implements a self-balancing (AVL) binary search tree
// whose nodes hold intervals of claimed integers, supporting allocation of
// the smallest available value, addition, removal, and coalescing of
// neighbors. A value is available exactly as long as no node covers it; the
// tree always starts with the [-1, -1] sentinel claimed, so MinFree() has a
// defined answer (0) from the moment it's built.
//
// Nodes live in a flat arena and are addressed by integer id rather than by
// pointer: id -1 plays the role of a nil pointer throughout. Deleted ids are
// recycled off a free list so the arena doesn't grow without bound across
// long add/remove sequences.
package interval

import "github.com/holocm/holo-corelib/errs"

const nilIdx = -1

type node struct {
	s, e    int
	balance int8
	l, r    int
}

// Tree is an AVL interval allocator. The zero value is not ready to use;
// call New.
type Tree struct {
	nodes []node
	free  []int
	root  int
}

// New builds an empty Tree, seeded with the [-1, -1] sentinel claim so
// MinFree() returns a defined answer (0) before anything is claimed.
func New() *Tree {
	t := &Tree{root: nilIdx}
	t.Clear()
	return t
}

func (t *Tree) alloc(s, e int) int {
	n := node{s: s, e: e, l: nilIdx, r: nilIdx}
	if len(t.free) > 0 {
		idx := t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		t.nodes[idx] = n
		return idx
	}
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *Tree) release(idx int) {
	t.free = append(t.free, idx)
}

// Clear drops all nodes and reinserts the [-1, -1] sentinel.
func (t *Tree) Clear() {
	t.nodes = t.nodes[:0]
	t.free = t.free[:0]
	t.root = nilIdx
	sentinel := t.alloc(-1, -1)
	t.insertNode(sentinel, &t.root)
}

// Add marks x as claimed, coalescing with neighboring claimed intervals. x
// must not already be covered by a claimed interval; violating this
// precondition is a programming error and panics.
func (t *Tree) Add(x int) {
	left := t.findLeft(x)
	leftE := x - 1
	if left != nilIdx {
		leftE = t.nodes[left].e
	}

	right := t.findRight(x)
	rightS := x + 1
	if right != nilIdx {
		rightS = t.nodes[right].s
	}

	switch {
	case left != nilIdx && leftE == x-1:
		if right != nilIdx && rightS == x+1 {
			rightE := t.nodes[right].e
			t.removeNode(right, &t.root)
			left = t.findLeft(x)
			t.nodes[left].e = rightE
		} else {
			t.nodes[left].e = x
		}
	case right != nilIdx && rightS == x+1:
		t.nodes[right].s = x
	default:
		n := t.alloc(x, x)
		t.insertNode(n, &t.root)
	}
}

// Remove releases x back to available, splitting or shrinking the interval
// that contains it. x must currently be claimed; violating this
// precondition panics.
func (t *Tree) Remove(x int) {
	n := t.find(x)
	if n == nilIdx {
		panic(errs.New(errs.InvalidArgument, "interval: remove of unclaimed value %d", x))
	}

	switch {
	case t.nodes[n].s == x && t.nodes[n].e == x:
		t.removeNode(n, &t.root)
	case t.nodes[n].s == x:
		t.nodes[n].s = x + 1
	case t.nodes[n].e == x:
		t.nodes[n].e = x - 1
	default:
		n1 := t.alloc(x+1, t.nodes[n].e)
		t.nodes[n].e = x - 1
		t.insertNode(n1, &t.root)
	}
}

// MinFree returns the smallest available (unclaimed) integer: the sentinel
// at the extreme left guarantees a defined answer (0) even on an empty
// allocator, and it advances by one gap every time the leftmost claimed run
// grows to swallow it.
func (t *Tree) MinFree() int {
	n := t.root
	for t.nodes[n].l != nilIdx {
		n = t.nodes[n].l
	}
	return t.nodes[n].e + 1
}

// find returns the index of the node containing x, or nilIdx.
func (t *Tree) find(x int) int {
	n := t.root
	for n != nilIdx {
		switch {
		case x < t.nodes[n].s:
			n = t.nodes[n].l
		case t.nodes[n].e < x:
			n = t.nodes[n].r
		default:
			return n
		}
	}
	return nilIdx
}

// findLeft returns the rightmost node entirely below x (i.e. node.e < x).
func (t *Tree) findLeft(x int) int {
	n := t.root
	ans := nilIdx
	for n != nilIdx {
		if t.nodes[n].e < x {
			ans = n
		}
		switch {
		case x < t.nodes[n].s:
			n = t.nodes[n].l
		case t.nodes[n].e < x:
			n = t.nodes[n].r
		default:
			return ans
		}
	}
	return ans
}

// findRight returns the leftmost node entirely above x (i.e. x < node.s).
func (t *Tree) findRight(x int) int {
	n := t.root
	ans := nilIdx
	for n != nilIdx {
		if x < t.nodes[n].s {
			ans = n
		}
		switch {
		case x < t.nodes[n].s:
			n = t.nodes[n].l
		case t.nodes[n].e < x:
			n = t.nodes[n].r
		default:
			return ans
		}
	}
	return ans
}

// insertNode inserts n below *ptr, reporting whether the subtree's height grew.
func (t *Tree) insertNode(n int, ptr *int) bool {
	if *ptr == nilIdx {
		*ptr = n
		return true
	}

	p := *ptr
	switch {
	case t.nodes[n].e < t.nodes[p].s:
		if !t.insertNode(n, &t.nodes[p].l) {
			return false
		}
		t.nodes[p].balance--
		switch t.nodes[p].balance {
		case 0:
			return false
		case -1:
			return true
		}
		t.rebalanceLeftHeavy(ptr)
		return false

	case t.nodes[p].e < t.nodes[n].s:
		if !t.insertNode(n, &t.nodes[p].r) {
			return false
		}
		t.nodes[p].balance++
		switch t.nodes[p].balance {
		case 0:
			return false
		case 1:
			return true
		}
		t.rebalanceRightHeavy(ptr)
		return false

	default:
		panic(errs.New(errs.InvalidArgument, "interval: add of already-claimed value"))
	}
}

// rebalanceLeftHeavy handles ptr.balance == -2 after an insertion grew the
// left subtree (single LL or double LR rotation).
func (t *Tree) rebalanceLeftHeavy(ptr *int) {
	p := *ptr
	left := t.nodes[p].l
	if t.nodes[left].balance == -1 {
		t.nodes[p].l = t.nodes[left].r
		t.nodes[left].r = p
		t.nodes[p].balance = 0
		*ptr = left
	} else {
		right := t.nodes[left].r
		t.nodes[left].r = t.nodes[right].l
		t.nodes[p].l = t.nodes[right].r
		t.nodes[right].l = left
		t.nodes[right].r = p
		if t.nodes[right].balance == -1 {
			t.nodes[p].balance = 1
		} else {
			t.nodes[p].balance = 0
		}
		if t.nodes[right].balance == 1 {
			t.nodes[left].balance = -1
		} else {
			t.nodes[left].balance = 0
		}
		*ptr = right
	}
	t.nodes[*ptr].balance = 0
}

// rebalanceRightHeavy handles ptr.balance == 2 after an insertion grew the
// right subtree (single RR or double RL rotation).
func (t *Tree) rebalanceRightHeavy(ptr *int) {
	p := *ptr
	right := t.nodes[p].r
	if t.nodes[right].balance == 1 {
		t.nodes[p].r = t.nodes[right].l
		t.nodes[right].l = p
		t.nodes[p].balance = 0
		*ptr = right
	} else {
		left := t.nodes[right].l
		t.nodes[right].l = t.nodes[left].r
		t.nodes[p].r = t.nodes[left].l
		t.nodes[left].r = right
		t.nodes[left].l = p
		if t.nodes[left].balance == 1 {
			t.nodes[p].balance = -1
		} else {
			t.nodes[p].balance = 0
		}
		if t.nodes[left].balance == -1 {
			t.nodes[right].balance = 1
		} else {
			t.nodes[right].balance = 0
		}
		*ptr = left
	}
	t.nodes[*ptr].balance = 0
}

// removeNode removes n from below *ptr, reporting whether the subtree's
// height shrank.
func (t *Tree) removeNode(n int, ptr *int) bool {
	p := *ptr
	switch {
	case t.nodes[n].e < t.nodes[p].s:
		chg := t.removeNode(n, &t.nodes[p].l)
		if chg {
			chg = t.balanceLeft(ptr)
		}
		return chg

	case t.nodes[p].e < t.nodes[n].s:
		chg := t.removeNode(n, &t.nodes[p].r)
		if chg {
			chg = t.balanceRight(ptr)
		}
		return chg

	default:
		// Overlapping interval: p must be n.
		switch {
		case t.nodes[n].l == nilIdx:
			*ptr = t.nodes[n].r
			t.release(n)
			return true
		case t.nodes[n].r == nilIdx:
			*ptr = t.nodes[n].l
			t.release(n)
			return true
		default:
			chg := t.removeRight(n, &t.nodes[p].l)
			if chg {
				chg = t.balanceLeft(ptr)
			}
			return chg
		}
	}
}

// removeRight replaces node with the rightmost node of the subtree rooted
// at *ptr, deleting that rightmost node, reporting whether height shrank.
func (t *Tree) removeRight(n int, ptr *int) bool {
	p := *ptr
	if t.nodes[p].r != nilIdx {
		chg := t.removeRight(n, &t.nodes[p].r)
		if chg {
			chg = t.balanceRight(ptr)
		}
		return chg
	}

	t.nodes[n].s = t.nodes[p].s
	t.nodes[n].e = t.nodes[p].e

	*ptr = t.nodes[p].l
	t.release(p)
	return true
}

// balanceLeft is invoked after the left subtree's height shrank by one,
// reporting whether ptr's own height shrank too.
func (t *Tree) balanceLeft(ptr *int) bool {
	p := *ptr
	t.nodes[p].balance++
	switch t.nodes[p].balance {
	case 0:
		return true
	case 1:
		return false
	}

	chg := false
	right := t.nodes[p].r
	rb := t.nodes[right].balance
	if rb != -1 {
		t.nodes[p].r = t.nodes[right].l
		t.nodes[right].l = p
		if rb == 0 {
			t.nodes[p].balance = 1
			t.nodes[right].balance = -1
		} else {
			t.nodes[p].balance = 0
			t.nodes[right].balance = 0
			chg = true
		}
		*ptr = right
	} else {
		left := t.nodes[right].l
		lb := t.nodes[left].balance
		t.nodes[right].l = t.nodes[left].r
		t.nodes[left].r = right
		t.nodes[p].r = t.nodes[left].l
		t.nodes[left].l = p
		if lb == 1 {
			t.nodes[p].balance = -1
		} else {
			t.nodes[p].balance = 0
		}
		if lb == -1 {
			t.nodes[right].balance = 1
		} else {
			t.nodes[right].balance = 0
		}
		*ptr = left
		t.nodes[*ptr].balance = 0
		chg = true
	}
	return chg
}

// balanceRight is invoked after the right subtree's height shrank by one,
// reporting whether ptr's own height shrank too.
func (t *Tree) balanceRight(ptr *int) bool {
	p := *ptr
	t.nodes[p].balance--
	switch t.nodes[p].balance {
	case 0:
		return true
	case -1:
		return false
	}

	chg := false
	left := t.nodes[p].l
	lb := t.nodes[left].balance
	if lb != 1 {
		t.nodes[p].l = t.nodes[left].r
		t.nodes[left].r = p
		if lb == 0 {
			t.nodes[p].balance = -1
			t.nodes[left].balance = 1
		} else {
			t.nodes[p].balance = 0
			t.nodes[left].balance = 0
			chg = true
		}
		*ptr = left
	} else {
		right := t.nodes[left].r
		rb := t.nodes[right].balance
		t.nodes[left].r = t.nodes[right].l
		t.nodes[right].l = left
		t.nodes[p].l = t.nodes[right].r
		t.nodes[right].r = p
		if rb == -1 {
			t.nodes[p].balance = 1
		} else {
			t.nodes[p].balance = 0
		}
		if rb == 1 {
			t.nodes[left].balance = -1
		} else {
			t.nodes[left].balance = 0
		}
		*ptr = right
		t.nodes[*ptr].balance = 0
		chg = true
	}
	return chg
}

// Intervals returns every claimed interval in ascending order, for tests
// and diagnostics.
func (t *Tree) Intervals() [][2]int {
	var out [][2]int
	var walk func(n int)
	walk = func(n int) {
		if n == nilIdx {
			return
		}
		walk(t.nodes[n].l)
		out = append(out, [2]int{t.nodes[n].s, t.nodes[n].e})
		walk(t.nodes[n].r)
	}
	walk(t.root)
	return out
}
