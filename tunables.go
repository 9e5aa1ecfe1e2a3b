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
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Tunables are the process-wide, read-mostly knobs that govern
// caching policy. The zero value is not valid; use DefaultTunables or
// LoadTunables.
type Tunables struct {
	// MaxRequest is the largest caller read size eligible for
	// caching, in bytes.
	MaxRequest int64 `json:"maxRequest"`
	// SizeLimit is a soft cap on total cached bytes. A value of 0
	// disables caching entirely.
	SizeLimit int64 `json:"sizeLimit"`
	// BShift is log2 of the block size: B = 1 << BShift.
	BShift uint `json:"bshift"`
}

// DefaultTunables returns conservative defaults: a 64KiB block, a
// 16KiB max cacheable request, and a 10MiB soft cache size limit.
func DefaultTunables() Tunables {
	return Tunables{
		MaxRequest: 16 << 10,
		SizeLimit:  10 << 20,
		BShift:     16,
	}
}

// BlockSize returns the configured block size, 1 << BShift.
func (t Tunables) BlockSize() int64 { return int64(1) << t.BShift }

func (t Tunables) validate() error {
	if t.BShift == 0 || t.BShift >= 63 {
		return fmt.Errorf("vdevcache: invalid bshift %d", t.BShift)
	}
	if t.MaxRequest < 0 {
		return fmt.Errorf("vdevcache: negative maxRequest %d", t.MaxRequest)
	}
	if t.SizeLimit < 0 {
		return fmt.Errorf("vdevcache: negative sizeLimit %d", t.SizeLimit)
	}
	if t.MaxRequest > t.BlockSize() {
		return fmt.Errorf("vdevcache: maxRequest %d exceeds block size %d", t.MaxRequest, t.BlockSize())
	}
	return nil
}

// LoadTunables reads Tunables from a YAML file. Fields absent from
// the file keep the corresponding DefaultTunables value, so a config
// file may override only the settings it cares about.
func LoadTunables(path string) (Tunables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tunables{}, fmt.Errorf("vdevcache: reading tunables: %w", err)
	}
	t := DefaultTunables()
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Tunables{}, fmt.Errorf("vdevcache: parsing tunables: %w", err)
	}
	if err := t.validate(); err != nil {
		return Tunables{}, err
	}
	return t, nil
}
