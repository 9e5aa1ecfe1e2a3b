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

// entry is one cached region: B bytes of data backing the aligned
// block starting at offset. All fields except offset are accessed
// only while the owning Cache's lock is held.
type entry struct {
	offset int64  // immutable after insertion; aligned to B
	data   []byte // exactly B bytes

	lastUsed uint64
	hits     uint64

	// fillInFlight is non-nil while a child read is populating data.
	// data's contents are undefined until fillInFlight is cleared.
	fillInFlight *fillState

	// missedUpdate is set when a write overlapped this entry while
	// its fill was in flight. It causes eviction once the fill
	// completes instead of the entry being retained with stale data.
	missedUpdate bool

	heapIdx int // position in the cache's LRU queue; see internal/lru.Item
}

// Less implements lru.Item, ordering entries by (lastUsed, offset) so
// that eviction order is deterministic even among entries created in
// the same tick.
func (e *entry) Less(other *entry) bool {
	if e.lastUsed != other.lastUsed {
		return e.lastUsed < other.lastUsed
	}
	return e.offset < other.offset
}

// SetIndex implements lru.Item.
func (e *entry) SetIndex(i int) { e.heapIdx = i }

// Index implements lru.Item.
func (e *entry) Index() int { return e.heapIdx }

// fillState is the in-flight child read for an entry. It is owned by
// the read that allocated the entry (or, after allocation, by the
// Device's asynchronous completion machinery) until fill completion
// drains it; the entry itself only holds a pointer to it so
// concurrent readers can delegate.
type fillState struct {
	e     *entry
	child ChildRead

	// delegates is a singly-linked list of requests awaiting this
	// fill, in attachment order. head/tail allow O(1) append.
	head, tail *Request
}

// delegate appends r to the fill's delegate list.
func (f *fillState) delegate(r *Request) {
	if f.tail == nil {
		f.head = r
		f.tail = r
		return
	}
	f.tail.next = r
	f.tail = r
}
