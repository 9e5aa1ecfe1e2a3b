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

// Write reflects the contents of a write that has already completed
// against the device into any cache entries it overlaps. Write never
// originates I/O; it is purely a cache-maintenance step the upper
// layer calls after its own write completes.
//
// An entry whose fill is still in flight is not touched directly:
// touching it now would race with the fill copying its own (older)
// data in on completion. Instead the entry is marked missedUpdate so
// fill completion evicts it once the race is resolved; any delegates
// already attached to that fill still logically precede this write
// and see the pre-write bytes, which is correct.
func (c *Cache) Write(r *Request) {
	if r.Type != Write {
		panic("vdevcache: Write called with a non-write request")
	}

	B := c.blockSize
	minOffset := r.Offset &^ (B - 1)
	writeEnd := r.Offset + int64(r.Size)
	maxOffset := (writeEnd + B - 1) &^ (B - 1)

	c.mu.Lock()
	defer c.mu.Unlock()

	for e := c.byOffset.ceil(minOffset); e != nil && e.offset < maxOffset; e = c.byOffset.next(e) {
		start := max64(e.offset, r.Offset)
		end := min64(e.offset+B, writeEnd)
		if e.fillInFlight != nil {
			e.missedUpdate = true
			continue
		}
		copy(e.data[start-e.offset:], r.Buffer[start-r.Offset:end-r.Offset])
	}
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
