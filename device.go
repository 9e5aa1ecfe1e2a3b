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

// ChildPriority hints at the scheduling priority a Device should give
// a fill read relative to ordinary I/O.
type ChildPriority int

const (
	// CacheFill is the priority the cache uses for every fill it
	// submits; it is the only priority this package ever requests.
	CacheFill ChildPriority = iota
)

// ChildFlag carries per-fill options passed to Device.NewChildRead,
// mirroring the restrictions a fill read must honor so it cannot
// itself be cached, retried, or attributed back to the request that
// triggered it.
type ChildFlag uint8

const (
	// ChildDontCache marks the fill read as itself ineligible for
	// caching (it already *is* a cache fill).
	ChildDontCache ChildFlag = 1 << iota
	// ChildDontPropagate prevents the fill's error, if any, from
	// being attributed to anything but its own delegates.
	ChildDontPropagate
	// ChildDontRetry disables automatic retry of the fill at lower
	// layers; a failed fill evicts its entry rather than retrying.
	ChildDontRetry
	// ChildNoBookmark excludes the fill from bookmarking/tracing
	// machinery that assumes one I/O corresponds to one logical
	// upper-layer operation.
	ChildNoBookmark
)

// childFlags are the flags the cache always requests for a fill: a
// fill must not itself be cached, must not propagate its error beyond
// its own delegates, must not be retried by lower layers, and carries
// no upper-layer bookmark.
const childFlags = ChildDontCache | ChildDontPropagate | ChildDontRetry | ChildNoBookmark

// ChildRead is a single block's worth of read the cache has asked the
// Device to perform to fill a cache entry. It is returned by
// Device.NewChildRead already configured; the caller of NewChildRead
// (the cache) calls Start on it after releasing its lock.
type ChildRead interface {
	// Start begins the I/O asynchronously. It must not block, and it
	// must arrange for the onDone callback passed to NewChildRead to
	// run exactly once, regardless of success or failure, even if the
	// read is externally canceled or times out.
	Start()
}

// Device is the block device layer the cache submits fill reads to.
// It is implemented by the caller; the cache never talks to a
// physical or virtual device directly.
type Device interface {
	// NewChildRead allocates, but does not start, a read of len(buf)
	// bytes at offset into buf, at the given priority and with the
	// given flags. onDone is invoked exactly once when the read
	// finishes (successfully or not); it must not be invoked
	// synchronously from within NewChildRead.
	NewChildRead(offset int64, buf []byte, priority ChildPriority, flags ChildFlag, onDone func(err error)) ChildRead
}
