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

package locate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/assetgen"
)

const archive = "Data/Fallout4 - Interface.ba2"

func writeFile(t *testing.T, fname, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(fname), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fname, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writeManifest(t *testing.T, lib, appID, installDir string) {
	t.Helper()
	writeFile(t, filepath.Join(lib, "steamapps", "appmanifest_"+appID+".acf"), fmt.Sprintf(`"AppState"
{
	"appid"		"%s"
	"name"		"Test Game"
	"installdir"		"%s"
}
`, appID, installDir))
}

func TestCurrentFormat(t *testing.T) {
	steam := t.TempDir()
	lib := t.TempDir()
	writeFile(t, filepath.Join(steam, "steamapps", "libraryfolders.vdf"), fmt.Sprintf(`"libraryfolders"
{
	"0"
	{
		"path"		"%s"
		"apps"
		{
			"228980"		"1000"
		}
	}
	"1"
	{
		"path"		"%s"
		"label"		""
		"apps"
		{
			"377160"		"30000000000"
		}
	}
}
`, steam, lib))
	writeManifest(t, lib, "377160", "Fallout 4")

	l := &Locator{SteamDir: steam}
	got, err := l.Asset("377160", archive)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(lib, "steamapps", "common", "Fallout 4", "Data", "Fallout4 - Interface.ba2")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestOldFormat(t *testing.T) {
	steam := t.TempDir()
	lib := t.TempDir()
	writeFile(t, filepath.Join(steam, "steamapps", "libraryfolders.vdf"), fmt.Sprintf(`"LibraryFolders"
{
	"TimeNextStatsReport"		"1600000000"
	"ContentStatsID"		"-1234"
	"1"		"%s"
}
`, lib))
	writeManifest(t, lib, "377160", "Fallout 4")

	l := &Locator{SteamDir: steam}
	got, err := l.Asset("377160", archive)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(lib, "steamapps", "common", "Fallout 4", "Data", "Fallout4 - Interface.ba2")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSteamDirLibrary(t *testing.T) {
	steam := t.TempDir()
	writeFile(t, filepath.Join(steam, "steamapps", "libraryfolders.vdf"), `"libraryfolders"
{
}
`)
	writeManifest(t, steam, "377160", "Fallout 4")

	l := &Locator{SteamDir: steam}
	got, err := l.Asset("377160", "x.txt")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(steam, "steamapps", "common", "Fallout 4", "x.txt"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNotInstalled(t *testing.T) {
	steam := t.TempDir()
	writeFile(t, filepath.Join(steam, "steamapps", "libraryfolders.vdf"), fmt.Sprintf(`"libraryfolders"
{
	"0"
	{
		"path"		"%s"
		"apps"
		{
			"228980"		"1000"
		}
	}
}
`, steam))

	l := &Locator{SteamDir: steam}
	_, err := l.Asset("377160", archive)
	var nf *assetgen.NotFoundError
	if !errors.As(err, &nf) || nf.Name != "377160" {
		t.Errorf("got %v, want NotFoundError", err)
	}
}

func TestNoLibraryList(t *testing.T) {
	l := &Locator{SteamDir: t.TempDir()}
	_, err := l.Asset("377160", archive)
	var lerr *assetgen.LocatorError
	if !errors.As(err, &lerr) {
		t.Errorf("got %v, want LocatorError", err)
	}
}

func TestBadManifest(t *testing.T) {
	steam := t.TempDir()
	writeFile(t, filepath.Join(steam, "steamapps", "libraryfolders.vdf"), `"libraryfolders"
{
}
`)
	writeFile(t, filepath.Join(steam, "steamapps", "appmanifest_377160.acf"), `"AppState"
{
	"appid"		"377160"
}
`)

	l := &Locator{SteamDir: steam}
	_, err := l.Asset("377160", archive)
	var perr *assetgen.ParseError
	if !errors.As(err, &perr) {
		t.Errorf("got %v, want ParseError", err)
	}
}

func TestLookup(t *testing.T) {
	m := map[string]any{"AppState": "a", "path": "b"}
	if lookup(m, "appstate") != "a" || lookup(m, "Path") != "b" {
		t.Error("case-insensitive lookup failed")
	}
	if lookup(m, "missing") != nil {
		t.Error("missing key found")
	}
	if unescape(`C:\\Program Files (x86)\\Steam`) != `C:\Program Files (x86)\Steam` {
		t.Error("unescape failed")
	}
}
