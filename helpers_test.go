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

import "sync"

// manualClock is a Clock a test advances explicitly, for deterministic
// control over LRU ordering.
type manualClock struct {
	mu   sync.Mutex
	tick uint64
}

func (c *manualClock) Tick() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tick
}

func (c *manualClock) advance() {
	c.mu.Lock()
	c.tick++
	c.mu.Unlock()
}

// pattern is the deterministic device content used throughout the
// tests: byte i of the device holds i mod 251.
func pattern(offset int64, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte((offset + int64(i)) % 251)
	}
	return b
}

// fakeDevice is a Device backed by an in-memory byte store, with an
// optional gate that delays every fill's actual read until released,
// so tests can deterministically control when a fill completes
// relative to other operations.
type fakeDevice struct {
	mu    sync.Mutex
	store map[int64][]byte // block offset -> B bytes of content

	// gate, if non-nil, blocks every fill until closed.
	gate chan struct{}

	// When hasInject is set, injectErr is returned instead of reading
	// store for fills at injectAt.
	injectErr error
	injectAt  int64
	hasInject bool

	started int // number of child reads started, for assertions
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{store: make(map[int64][]byte)}
}

func (d *fakeDevice) setBlock(offset int64, b int64, data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cp := make([]byte, b)
	copy(cp, data)
	d.store[offset] = cp
}

func (d *fakeDevice) blockContent(offset int64, b int64) []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	if v, ok := d.store[offset]; ok {
		cp := make([]byte, len(v))
		copy(cp, v)
		return cp
	}
	return pattern(offset, int(b))
}

type fakeChildRead struct {
	dev    *fakeDevice
	offset int64
	buf    []byte
	onDone func(error)
}

func (c *fakeChildRead) Start() {
	go func() {
		if c.dev.gate != nil {
			<-c.dev.gate
		}
		c.dev.mu.Lock()
		c.dev.started++
		var err error
		if c.dev.hasInject && c.dev.injectAt == c.offset {
			err = c.dev.injectErr
		}
		c.dev.mu.Unlock()
		if err == nil {
			copy(c.buf, c.dev.blockContent(c.offset, int64(len(c.buf))))
		}
		c.onDone(err)
	}()
}

func (d *fakeDevice) NewChildRead(offset int64, buf []byte, priority ChildPriority, flags ChildFlag, onDone func(error)) ChildRead {
	if priority != CacheFill {
		panic("unexpected priority")
	}
	if flags != childFlags {
		panic("unexpected flags")
	}
	return &fakeChildRead{dev: d, offset: offset, buf: buf, onDone: onDone}
}

// recordingResumer collects every request handed back to Resume, and
// lets a test wait for a specific one by pointer.
type recordingResumer struct {
	mu      sync.Mutex
	cond    *sync.Cond
	resumed map[*Request]bool
}

func newRecordingResumer() *recordingResumer {
	r := &recordingResumer{resumed: make(map[*Request]bool)}
	r.cond = sync.NewCond(&r.mu)
	return r
}

func (r *recordingResumer) Resume(req *Request) {
	r.mu.Lock()
	r.resumed[req] = true
	r.cond.Broadcast()
	r.mu.Unlock()
}

func (r *recordingResumer) wait(req *Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for !r.resumed[req] {
		r.cond.Wait()
	}
}

func newTestCache(d *fakeDevice, up Resumer, t Tunables, clk Clock) *Cache {
	return NewCache(d, up, t, clk)
}
