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

// Package vdevcache implements a per-device read-ahead block cache.
//
// It sits between an upper I/O layer that issues block reads and
// writes and the physical or virtual device underneath. Small,
// spatially clustered reads are inflated to a fixed-size aligned
// block, cached, and subsequent reads falling within the cached
// region are served from memory. When a fill for a region is already
// in flight, concurrent reads for that region are delegated to the
// in-flight fill rather than issuing their own device I/O, so at most
// one fill is ever outstanding per cache block.
//
// Typically a caller arranges for one Cache per device with NewCache,
// routes upper-layer reads through Cache.Read and writes through
// Cache.Write, and implements Device and Resumer to bridge to its own
// I/O submission and completion machinery.
package vdevcache
