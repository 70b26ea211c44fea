// seehuhn.de/go/assetgen - convert game interface animations into bitmap fonts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

//go:build !windows

package locate

import (
	"errors"
	"os"
	"path/filepath"
)

var errNoSteam = errors.New("no Steam directory found")

// candidates lists the usual Steam installation directories, relative to
// the user's home directory.
var candidates = []string{
	".steam/steam",
	".local/share/Steam",
	".var/app/com.valvesoftware.Steam/data/Steam",
	"Library/Application Support/Steam",
}

// steamRoot returns the first existing Steam installation directory below
// the user's home directory.
func steamRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	for _, rel := range candidates {
		dir := filepath.Join(home, filepath.FromSlash(rel))
		fi, err := os.Stat(filepath.Join(dir, "steamapps"))
		if err == nil && fi.IsDir() {
			return dir, nil
		}
	}
	return "", errNoSteam
}
