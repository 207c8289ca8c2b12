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

// Package namemgr implements a generator of <prefix>N<suffix> identifiers
// backed by an interval.Tree: handing out a number calls tree.Add to claim
// it, and releasing one calls tree.Remove, so MinFree always names the
// smallest number not currently handed out.
package namemgr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/holocm/holo-corelib/interval"
)

// Manager generates and tracks <prefix>N<suffix> identifiers.
type Manager struct {
	prefix, suffix string
	tree           *interval.Tree
	lastNum        int
}

// New builds a Manager with the given prefix/suffix, with nothing allocated.
func New(prefix, suffix string) *Manager {
	return &Manager{prefix: prefix, suffix: suffix, tree: interval.New()}
}

// Change replaces the prefix/suffix, clearing all tracked allocations.
func (m *Manager) Change(prefix, suffix string) {
	m.tree.Clear()
	m.prefix, m.suffix = prefix, suffix
}

// Clear drops all tracked allocations without changing prefix/suffix.
func (m *Manager) Clear() {
	m.tree.Clear()
}

// NewName returns the next available name. If add is true, the number it
// used is immediately marked used, so a second call without an intervening
// Erase won't repeat it.
func (m *Manager) NewName(add bool) string {
	d := m.tree.MinFree()
	m.lastNum = d
	if add {
		m.tree.Add(d)
	}
	return fmt.Sprintf("%s%d%s", m.prefix, d, m.suffix)
}

// LastNum returns the numeric suffix handed out by the most recent NewName call.
func (m *Manager) LastNum() int {
	return m.lastNum
}

// Add registers name as used, if it parses as <prefix>digits<suffix>; a name
// that doesn't match the pattern is silently ignored.
func (m *Manager) Add(name string) {
	if d, ok := m.strToNum(name); ok {
		m.tree.Add(d)
	}
}

// Erase releases name back to the available pool, if it parses as
// <prefix>digits<suffix>; a name that doesn't match is silently ignored.
func (m *Manager) Erase(name string) {
	if d, ok := m.strToNum(name); ok {
		m.tree.Remove(d)
	}
}

// strToNum extracts the embedded digits from <prefix>digits<suffix>,
// reporting false if name doesn't match that shape.
func (m *Manager) strToNum(name string) (int, bool) {
	if len(m.prefix)+len(m.suffix) >= len(name) {
		return 0, false
	}
	if !strings.HasPrefix(name, m.prefix) || !strings.HasSuffix(name, m.suffix) {
		return 0, false
	}
	digits := name[len(m.prefix) : len(name)-len(m.suffix)]
	if digits == "" {
		return 0, false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	d, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return d, true
}
