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
	"sync/atomic"
	"time"
)

// Clock is the monotonic tick source entries use for LRU ordering.
// The unit is arbitrary; only relative order matters.
type Clock interface {
	Tick() uint64
}

// SystemClock is a free-running tick counter incremented on a fixed
// interval by a background goroutine, in the spirit of a jiffies
// counter: cheap to sample, coarse enough that many hits in the same
// interval collapse to one LRU-ordering key (broken by the offset
// tiebreak), and independent of wall-clock adjustments.
type SystemClock struct {
	ticks atomic.Uint64
	stop  chan struct{}
}

// NewSystemClock starts a SystemClock that advances once per
// interval. Callers must call Stop when the clock is no longer
// needed.
func NewSystemClock(interval time.Duration) *SystemClock {
	c := &SystemClock{stop: make(chan struct{})}
	go c.run(interval)
	return c
}

func (c *SystemClock) run(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			c.ticks.Add(1)
		case <-c.stop:
			return
		}
	}
}

// Tick implements Clock.
func (c *SystemClock) Tick() uint64 { return c.ticks.Load() }

// Stop halts the background goroutine. Stop is idempotent-unsafe to
// call twice, matching the usual single-owner lifecycle of a
// Cache's clock.
func (c *SystemClock) Stop() { close(c.stop) }
