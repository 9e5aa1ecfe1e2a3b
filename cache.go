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

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/readahead/vdevcache/internal/lru"
)

// Cache is a per-device read-ahead block cache. The zero value is not
// usable; construct one with NewCache.
type Cache struct {
	// Logger, if non-nil, is used to report anomalies the cache
	// encounters that are not themselves failures of the calling
	// request (see Logger).
	Logger Logger

	id string

	device Device
	upper  Resumer
	clock  Clock
	// ownedClock is stopped by Fini if the Cache created its own
	// default SystemClock rather than being handed one.
	ownedClock *SystemClock

	tunables  Tunables
	blockSize int64

	mu       sync.Mutex
	byOffset offsetSet
	lru      *lru.Queue[*entry]

	delegations atomic.Int64
	hits        atomic.Int64
	misses      atomic.Int64
	declines    atomic.Int64
}

// NewCache creates a cache for a single device. device and upper must
// be non-nil. If clock is nil, the cache creates and owns a
// SystemClock ticking every 10ms, stopped by Fini.
func NewCache(device Device, upper Resumer, t Tunables, clock Clock) *Cache {
	if device == nil {
		panic("vdevcache: nil Device")
	}
	if upper == nil {
		panic("vdevcache: nil Resumer")
	}
	if err := t.validate(); err != nil {
		panic(err)
	}
	c := &Cache{
		id:        uuid.New().String()[:8],
		device:    device,
		upper:     upper,
		tunables:  t,
		blockSize: t.BlockSize(),
		lru:       lru.New[*entry](0),
	}
	if clock == nil {
		c.ownedClock = NewSystemClock(10 * time.Millisecond)
		c.clock = c.ownedClock
	} else {
		c.clock = clock
	}
	return c
}

// ID returns the cache's short instance identifier, used to tag log
// lines emitted through Logger so multiple per-device caches in one
// process can be told apart.
func (c *Cache) ID() string { return c.id }

// entryCount returns the number of cached entries. Callers must hold
// c.mu.
func (c *Cache) entryCount() int { return c.byOffset.len() }

// Purge evicts every cache entry. The caller must have quiesced the
// device first: Purge panics if any entry still has a fill in flight
// rather than waiting for it to finish.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purgeLocked()
}

func (c *Cache) purgeLocked() {
	for c.lru.Len() > 0 {
		e := c.lru.Min()
		if e.fillInFlight != nil {
			panic("vdevcache: purge with fill in flight")
		}
		c.evictLocked(e)
	}
}

// Fini releases all resources held by the cache. The caller must have
// quiesced the device first (see Purge). After Fini, the Cache must
// not be used again.
func (c *Cache) Fini() {
	c.Purge()
	if c.ownedClock != nil {
		c.ownedClock.Stop()
	}
}

// Delegations returns the number of reads that were attached to an
// in-flight fill rather than served directly.
func (c *Cache) Delegations() int64 { return c.delegations.Load() }

// Hits returns the number of reads served directly from already-cached
// data. Reads satisfied at fill-completion time are counted by Misses
// (the read that triggered the fill) or Delegations, not here.
func (c *Cache) Hits() int64 { return c.hits.Load() }

// Misses returns the number of reads that triggered a new fill.
func (c *Cache) Misses() int64 { return c.misses.Load() }

// Declines returns the number of reads the cache declined outright
// (policy-gate rejections, stale entries, and allocation failures).
// Together with Hits, Misses, and Delegations, it accounts for every
// read ever offered to the cache, which is useful for diagnostics.
func (c *Cache) Declines() int64 { return c.declines.Load() }
