// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
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
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTunablesOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tunables.yaml")
	if err := os.WriteFile(path, []byte("bshift: 17\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadTunables(path)
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultTunables()
	want.BShift = 17
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestLoadTunablesRejectsInvalidResult(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tunables.yaml")
	if err := os.WriteFile(path, []byte("maxRequest: 999999999\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadTunables(path); err == nil {
		t.Fatal("expected an error for maxRequest exceeding the block size")
	}
}

func TestLoadTunablesMissingFile(t *testing.T) {
	if _, err := LoadTunables(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
