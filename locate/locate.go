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

// Package locate finds the files of games installed through Steam.
//
// The Steam client keeps a list of library folders in
// steamapps/libraryfolders.vdf below its installation directory.  Every
// library holds one steamapps/appmanifest_<id>.acf file per installed
// application, which names the application's directory below
// steamapps/common.
package locate

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/andygrunwald/vdf"

	"seehuhn.de/go/assetgen"
)

// Locator finds game files.
type Locator struct {
	// SteamDir is the installation directory of the Steam client.  If
	// this is empty, the directory is determined from the system
	// configuration.
	SteamDir string

	// Logger, if not nil, receives details about the search.
	Logger *slog.Logger
}

// Asset returns the path of a file belonging to an installed Steam
// application, using the default [Locator].
func Asset(appID, relPath string) (string, error) {
	l := &Locator{}
	return l.Asset(appID, relPath)
}

// Asset returns the path of the file relPath inside the installation
// directory of the Steam application appID.  The file itself is not
// required to exist.
//
// If the Steam installation cannot be found, the error is a
// *assetgen.LocatorError.  If the application is not installed, the error
// is a *assetgen.NotFoundError.
func (l *Locator) Asset(appID, relPath string) (string, error) {
	log := l.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	steamDir := l.SteamDir
	if steamDir == "" {
		var err error
		steamDir, err = steamRoot()
		if err != nil {
			return "", &assetgen.LocatorError{Msg: "no Steam installation", Err: err}
		}
	}
	log.Debug("Steam installation", "dir", steamDir)

	libs, err := libraries(steamDir, appID)
	if err != nil {
		return "", err
	}

	for _, lib := range libs {
		manifest := filepath.Join(lib, "steamapps", "appmanifest_"+appID+".acf")
		installDir, err := readInstallDir(manifest)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		} else if err != nil {
			return "", err
		}
		log.Debug("application found", "id", appID, "library", lib, "dir", installDir)
		res := filepath.Join(lib, "steamapps", "common", installDir, filepath.FromSlash(relPath))
		return res, nil
	}
	return "", &assetgen.NotFoundError{Kind: "Steam application", Name: appID}
}

// libraries returns the Steam library folders listed in the Steam
// configuration.  Libraries known to contain appID come first.
func libraries(steamDir, appID string) ([]string, error) {
	fname := filepath.Join(steamDir, "steamapps", "libraryfolders.vdf")
	data, err := readVDF(fname)
	if err != nil {
		return nil, &assetgen.LocatorError{Msg: "cannot read library list", Err: err}
	}
	root, ok := lookup(data, "libraryfolders").(map[string]any)
	if !ok {
		return nil, &assetgen.LocatorError{
			Msg: fmt.Sprintf("%s: missing \"libraryfolders\"", fname),
		}
	}

	keys := make([]string, 0, len(root))
	for key := range root {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var preferred, others []string
	others = append(others, steamDir)
	for _, key := range keys {
		switch entry := root[key].(type) {
		case map[string]any:
			// current format: "0" { "path" "..." "apps" { "<id>" "<size>" } }
			path, ok := lookup(entry, "path").(string)
			if !ok {
				continue
			}
			path = unescape(path)
			apps, _ := lookup(entry, "apps").(map[string]any)
			if _, has := apps[appID]; has {
				preferred = append(preferred, path)
			} else {
				others = append(others, path)
			}
		case string:
			// old format: "1" "D:\\SteamLibrary"
			if isIndex(key) {
				others = append(others, unescape(entry))
			}
		}
	}

	var res []string
	for _, lib := range append(preferred, others...) {
		if !slices.Contains(res, lib) {
			res = append(res, lib)
		}
	}
	return res, nil
}

// readInstallDir returns the installdir entry of an application manifest.
func readInstallDir(fname string) (string, error) {
	data, err := readVDF(fname)
	if err != nil {
		return "", err
	}
	state, _ := lookup(data, "AppState").(map[string]any)
	dir, ok := lookup(state, "installdir").(string)
	if !ok || dir == "" {
		return "", &assetgen.ParseError{
			Format: "VDF",
			Err:    fmt.Errorf("%s: missing AppState.installdir", fname),
		}
	}
	return unescape(dir), nil
}

func readVDF(fname string) (map[string]any, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	data, err := vdf.NewParser(fd).Parse()
	if err != nil {
		return nil, &assetgen.ParseError{Format: "VDF", Err: fmt.Errorf("%s: %w", fname, err)}
	}
	return data, nil
}

// lookup returns the value stored under key, comparing keys
// case-insensitively.
func lookup(m map[string]any, key string) any {
	if v, ok := m[key]; ok {
		return v
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}

// unescape undoes the backslash doubling of VDF strings.
func unescape(s string) string {
	return strings.ReplaceAll(s, `\\`, `\`)
}

func isIndex(key string) bool {
	if key == "" {
		return false
	}
	for _, c := range key {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
