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

// hitLocked serves r from the non-filling entry e: it refreshes e's
// LRU position if the clock has advanced, bumps e.hits, and copies
// the requested bytes out of e.data. The caller must hold c.mu and
// must have already verified e.fillInFlight == nil.
func (c *Cache) hitLocked(e *entry, r *Request) {
	if e.fillInFlight != nil {
		panic("vdevcache: hit on entry with fill in flight")
	}
	now := c.clock.Tick()
	if e.lastUsed != now {
		e.lastUsed = now
		c.lru.Fix(e.heapIdx)
	}
	e.hits++

	phase := r.Offset - e.offset
	copy(r.Buffer, e.data[phase:phase+int64(r.Size)])
}
