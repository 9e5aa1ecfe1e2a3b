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

// Package lru implements a generic indexed binary min-heap.
//
// It is a sift-up/sift-down slice heap, extended to track each
// element's position so that an
// arbitrary element (not just the minimum) can be removed or
// re-ordered in O(log n) after an external field it is keyed on
// changes.
package lru

// Item is the constraint on elements stored in a Queue. Implementors
// keep their own index field and update it from SetIndex; the queue
// never inspects it except through this interface.
type Item[T any] interface {
	// Less reports whether the receiver sorts before other.
	Less(other T) bool
	// SetIndex records the element's current position in the queue's
	// backing slice, or -1 when the element is not stored in a queue.
	SetIndex(i int)
	// Index returns the position last recorded by SetIndex.
	Index() int
}

// Queue is a generic indexed min-heap over elements satisfying Item.
// The minimum element (by Less) is always at index 0 while the queue
// is non-empty.
type Queue[T Item[T]] struct {
	items []T
}

// New returns an empty queue with the given initial capacity hint.
func New[T Item[T]](capHint int) *Queue[T] {
	return &Queue[T]{items: make([]T, 0, capHint)}
}

// Len returns the number of elements in the queue.
func (q *Queue[T]) Len() int { return len(q.items) }

// Min returns the smallest element without removing it. Min panics if
// the queue is empty.
func (q *Queue[T]) Min() T { return q.items[0] }

// Push inserts x into the queue.
func (q *Queue[T]) Push(x T) {
	x.SetIndex(len(q.items))
	q.items = append(q.items, x)
	q.siftUp(len(q.items) - 1)
}

// Pop removes and returns the smallest element. Pop panics if the
// queue is empty.
func (q *Queue[T]) Pop() T {
	return q.RemoveAt(0)
}

// RemoveAt removes and returns the element currently at index i
// (as recorded by Item.Index), preserving the heap invariant for the
// remaining elements.
func (q *Queue[T]) RemoveAt(i int) T {
	n := len(q.items) - 1
	removed := q.items[i]
	removed.SetIndex(-1)
	if i != n {
		q.items[i] = q.items[n]
		q.items[i].SetIndex(i)
	}
	var zero T
	q.items[n] = zero
	q.items = q.items[:n]
	if i < n {
		q.fix(i)
	}
	return removed
}

// Fix re-establishes the heap invariant for the element at index i
// after its ordering key has changed in place. Callers must pass the
// index the element currently occupies (Item.Index()).
func (q *Queue[T]) Fix(i int) {
	q.fix(i)
}

func (q *Queue[T]) fix(i int) {
	if !q.siftDown(i) {
		q.siftUp(i)
	}
}

func (q *Queue[T]) less(i, j int) bool {
	return q.items[i].Less(q.items[j])
}

func (q *Queue[T]) swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].SetIndex(i)
	q.items[j].SetIndex(j)
}

func (q *Queue[T]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !q.less(i, p) {
			break
		}
		q.swap(i, p)
		i = p
	}
}

// siftDown reports whether it moved the element at i downward at all.
func (q *Queue[T]) siftDown(i int) bool {
	moved := false
	n := len(q.items)
	for {
		left := i*2 + 1
		right := left + 1
		if left >= n {
			break
		}
		c := left
		if right < n && q.less(right, left) {
			c = right
		}
		if !q.less(c, i) {
			break
		}
		q.swap(i, c)
		i = c
		moved = true
	}
	return moved
}
