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

// evictLocked removes e from both orderings and frees its buffer. The
// caller must hold c.mu and must have already verified e has no fill
// in flight.
func (c *Cache) evictLocked(e *entry) {
	if e.fillInFlight != nil {
		panic("vdevcache: evict of entry with fill in flight")
	}
	if e.data == nil {
		panic("vdevcache: double evict")
	}
	c.byOffset.remove(e)
	c.lru.RemoveAt(e.heapIdx)
	e.data = nil
}

// allocateLocked reserves a new, empty entry for cacheOffset. It
// returns nil if caching is disabled, or if the cache is full and the
// least-recently-used entry is itself mid-fill: the allocation simply
// fails rather than scanning further into the LRU order.
//
// Eviction is checked prospectively: if admitting one more entry
// would push total cached bytes past SizeLimit, the oldest entry is
// evicted first, so entry_count*B never exceeds SizeLimit once the
// allocation completes.
func (c *Cache) allocateLocked(cacheOffset int64) *entry {
	if c.tunables.SizeLimit == 0 {
		return nil
	}
	if int64(c.entryCount()+1)*c.blockSize > c.tunables.SizeLimit {
		oldest := c.lru.Min()
		if oldest.fillInFlight != nil {
			return nil
		}
		if oldest.hits == 0 {
			panic("vdevcache: evicting an entry with zero hits")
		}
		c.evictLocked(oldest)
	}
	e := &entry{
		offset:   cacheOffset,
		data:     make([]byte, c.blockSize),
		lastUsed: c.clock.Tick(),
	}
	c.byOffset.insert(e)
	c.lru.Push(e)
	return e
}
