// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package vdevcache

import "golang.org/x/exp/slices"

// offsetSet is an ordered set of entries keyed by offset (unique),
// kept as a slice sorted ascending by offset. A sorted slice, rather
// than a tree, is enough here: entry counts are bounded by
// SizeLimit/B (160 at the defaults), and the only queries
// needed are exact lookup and "first entry at or after X", both of
// which binary search answers directly.
type offsetSet struct {
	items []*entry
}

// find returns the entry with the given offset, or nil.
func (s *offsetSet) find(offset int64) *entry {
	i, ok := slices.BinarySearchFunc(s.items, offset, cmpOffset)
	if ok {
		return s.items[i]
	}
	return nil
}

// ceil returns the first entry with offset >= target, or nil.
func (s *offsetSet) ceil(target int64) *entry {
	i, _ := slices.BinarySearchFunc(s.items, target, cmpOffset)
	if i < len(s.items) {
		return s.items[i]
	}
	return nil
}

// next returns the entry immediately after e in offset order, or nil.
func (s *offsetSet) next(e *entry) *entry {
	i, ok := slices.BinarySearchFunc(s.items, e.offset, cmpOffset)
	if ok && i+1 < len(s.items) {
		return s.items[i+1]
	}
	return nil
}

// insert adds e, which must not already be present.
func (s *offsetSet) insert(e *entry) {
	i, _ := slices.BinarySearchFunc(s.items, e.offset, cmpOffset)
	s.items = slices.Insert(s.items, i, e)
}

// remove deletes e, which must be present.
func (s *offsetSet) remove(e *entry) {
	i, ok := slices.BinarySearchFunc(s.items, e.offset, cmpOffset)
	if !ok || s.items[i] != e {
		panic("vdevcache: offsetSet.remove of absent entry")
	}
	s.items = slices.Delete(s.items, i, i+1)
}

// cmpOffset orders entries by offset for binary search purposes.
func cmpOffset(e *entry, target int64) int {
	switch {
	case e.offset < target:
		return -1
	case e.offset > target:
		return 1
	default:
		return 0
	}
}

func (s *offsetSet) len() int { return len(s.items) }
