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

// Read services an upper-layer read request against the cache. A
// non-OK Status means the cache declined the request outright and
// the caller should proceed through the device directly. In every OK
// case the caller does not receive data synchronously from this call:
// r is marked to bypass the device and will be resumed later, either
// by Read itself (a hit), or by the fill completion it was delegated
// to or triggered (see fill.go).
func (c *Cache) Read(r *Request) Status {
	if r.Type != Read {
		panic("vdevcache: Read called with a non-read request")
	}
	if r.Flags&DontCache != 0 {
		c.declines.Add(1)
		return StatusInvalidArgument
	}
	if int64(r.Size) > c.tunables.MaxRequest {
		c.declines.Add(1)
		return StatusTooLarge
	}

	B := c.blockSize
	cacheOffset := r.Offset &^ (B - 1)
	cachePhase := r.Offset - cacheOffset
	if r.Size > 0 {
		lastByte := r.Offset + int64(r.Size) - 1
		if lastByte&^(B-1) != cacheOffset {
			c.declines.Add(1)
			return StatusStraddle
		}
	}
	if cachePhase+int64(r.Size) > B {
		panic("vdevcache: cache phase arithmetic invariant violated")
	}

	c.mu.Lock()

	if e := c.byOffset.find(cacheOffset); e != nil {
		if e.missedUpdate {
			c.mu.Unlock()
			c.declines.Add(1)
			return StatusStale
		}
		if f := e.fillInFlight; f != nil {
			f.delegate(r)
			r.bypass = true
			c.mu.Unlock()
			c.delegations.Add(1)
			return StatusOK
		}
		c.hitLocked(e, r)
		r.bypass = true
		c.mu.Unlock()
		c.upper.Resume(r)
		c.hits.Add(1)
		return StatusOK
	}

	e := c.allocateLocked(cacheOffset)
	if e == nil {
		c.mu.Unlock()
		c.declines.Add(1)
		return StatusOutOfMemory
	}

	f := &fillState{e: e}
	e.fillInFlight = f
	f.delegate(r)
	child := c.device.NewChildRead(cacheOffset, e.data, CacheFill, childFlags, c.completion(e, f))
	f.child = child
	r.bypass = true
	c.mu.Unlock()

	child.Start()
	c.misses.Add(1)
	return StatusOK
}
