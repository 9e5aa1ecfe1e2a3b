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

// completion returns the callback Read hands to Device.NewChildRead
// for the fill f backing entry e. It runs in whatever goroutine the
// Device chooses to report completion from.
//
// It runs in two passes: the first, under the cache
// lock, copies bytes out to every delegate and decides whether e
// should be evicted; the second, after the lock is released, resumes
// every delegate. The split exists because resuming a request may
// re-enter arbitrary other layers, and those layers must never be
// invoked while holding the cache lock.
func (c *Cache) completion(e *entry, f *fillState) func(err error) {
	return func(err error) {
		c.mu.Lock()
		if e.fillInFlight != f {
			panic("vdevcache: fill completion for a fill that is not the entry's current fill")
		}
		e.fillInFlight = nil

		// Even though the entry may be evicted immediately below,
		// every delegate attached before now logically preceded
		// whatever invalidated it, so they still see consistent
		// in-cache bytes here, under the lock.
		for d := f.head; d != nil; d = d.next {
			c.hitLocked(e, d)
		}

		if err != nil {
			c.errorf("fill at offset %#x failed: %s", e.offset, err)
			c.evictLocked(e)
		} else if e.missedUpdate {
			c.evictLocked(e)
		}
		c.mu.Unlock()

		for d := f.head; d != nil; {
			next := d.next
			d.next = nil
			d.Error = err
			c.upper.Resume(d)
			d = next
		}
	}
}
