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

package main

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seehuhn.de/go/assetgen"
	"seehuhn.de/go/assetgen/bmfont"
	"seehuhn.de/go/assetgen/internal/ba2test"
	"seehuhn.de/go/assetgen/internal/swftest"
	"seehuhn.de/go/assetgen/locate"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// bodySWF returns an animation of a 20x30 pixel rectangle which moves one
// pixel to the right in every frame.
func bodySWF(frames int) []byte {
	b := &swftest.Builder{Width: 10000, Height: 10000, Compress: true}
	b.Rect(1, white, 0, 0, 400, 600)
	b.Place(1, 1, 0, 0, "body")
	b.ShowFrame()
	for i := 1; i < frames; i++ {
		b.Move(1, 20*int32(i), 0)
		b.ShowFrame()
	}
	return b.Bytes()
}

// headSWF returns a nine frame animation of a 10x10 pixel square.
func headSWF() []byte {
	b := &swftest.Builder{Width: 10000, Height: 10000}
	b.Rect(1, white, 0, 0, 200, 200)
	b.Place(1, 1, 0, 0, "")
	for range 9 {
		b.ShowFrame()
	}
	return b.Bytes()
}

// setup creates a Steam installation with the game archive.
func setup(t *testing.T, body []byte) *generator {
	t.Helper()
	steam := t.TempDir()
	write := func(rel string, data []byte) {
		fname := filepath.Join(steam, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(fname), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(fname, data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("steamapps/libraryfolders.vdf", fmt.Appendf(nil, `"libraryfolders"
{
	"0"
	{
		"path"		"%s"
		"apps"
		{
			"377160"		"1"
		}
	}
}
`, steam))
	write("steamapps/appmanifest_377160.acf", []byte(`"AppState"
{
	"appid"		"377160"
	"installdir"		"Fallout 4"
}
`))
	write("steamapps/common/Fallout 4/Data/Fallout4 - Interface.ba2", ba2test.General(1,
		ba2test.Entry{Name: `Interface\Pipboy_StatsPage.swf`, Data: []byte("unused")},
		ba2test.Entry{Name: `Interface\Components\Condition_Body_0.swf`, Data: body, Compress: true},
		ba2test.Entry{Name: `Interface\Components\Condition_Head.swf`, Data: headSWF()},
	))

	log := slog.New(slog.DiscardHandler)
	return &generator{
		Config:  assetgen.DefaultConfig(),
		Locator: &locate.Locator{SteamDir: steam, Logger: log},
		OutDir:  t.TempDir(),
		Logger:  log,
	}
}

func TestRun(t *testing.T) {
	g := setup(t, bodySWF(32))
	if err := g.Run(); err != nil {
		t.Fatal(err)
	}

	for _, c := range []struct {
		name          string
		width, height int
	}{
		{"body.png", 160, 30},
		{"head.png", 30, 10},
	} {
		data, err := os.ReadFile(filepath.Join(g.OutDir, c.name))
		if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatal(err)
		}
		if b := img.Bounds(); b.Dx() != c.width || b.Dy() != c.height {
			t.Errorf("%s: size %dx%d, want %dx%d", c.name, b.Dx(), b.Dy(), c.width, c.height)
		}
		if r, _, _, _ := img.At(5, 5).RGBA(); r != 0xffff {
			t.Errorf("%s: glyph pixel is not white", c.name)
		}
	}

	fd, err := os.Open(filepath.Join(g.OutDir, "body.fnt"))
	if err != nil {
		t.Fatal(err)
	}
	defer fd.Close()
	font, err := bmfont.Read(fd)
	if err != nil {
		t.Fatal(err)
	}
	if len(font.Pages) != 2 || font.Pages[0] != "body.png" || font.Pages[1] != "head.png" {
		t.Errorf("unexpected pages %v", font.Pages)
	}
	if len(font.Chars) != 11 {
		t.Fatalf("got %d characters, want 11", len(font.Chars))
	}
	for i, c := range font.Chars[:8] {
		if c.ID != '0'+rune(i) || c.X != 20*i || c.XOffset != 4*i || c.Page != 0 {
			t.Errorf("unexpected body character %+v", c)
		}
	}
	for i, c := range font.Chars[8:] {
		if c.ID != 'a'+rune(i) || c.X != 10*i || c.Page != 1 {
			t.Errorf("unexpected head character %+v", c)
		}
	}
	if font.Common.ScaleW != 160 || font.Common.ScaleH != 30 {
		t.Errorf("unexpected common line %+v", font.Common)
	}
}

func TestWrongFrameCount(t *testing.T) {
	g := setup(t, bodySWF(30))
	err := g.Run()
	var perr *assetgen.ParseError
	if !errors.As(err, &perr) || !errors.Is(err, errFrameCount) {
		t.Fatalf("got %v, want frame count error", err)
	}
	if !strings.HasPrefix(err.Error(), "parse Condition_Body_0.swf:") {
		t.Errorf("error %q does not name the stage", err)
	}
	if _, err := os.Stat(filepath.Join(g.OutDir, "body.png")); err == nil {
		t.Error("output written despite error")
	}
}

func TestMissingEntry(t *testing.T) {
	g := setup(t, bodySWF(32))
	g.Config.Head.Entry = "Condition_Legs.swf"
	err := g.Run()
	var nf *assetgen.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
	if !strings.HasPrefix(err.Error(), "extract ") {
		t.Errorf("error %q does not name the stage", err)
	}
}

func TestBadFrame(t *testing.T) {
	g := setup(t, bodySWF(32))
	g.Config.Head.Frames = []int{0, 1, 40}
	err := g.Run()
	var rerr *assetgen.RenderError
	if !errors.As(err, &rerr) || rerr.Frame != 40 {
		t.Fatalf("got %v, want RenderError for frame 40", err)
	}
}

func TestNotInstalled(t *testing.T) {
	g := setup(t, bodySWF(32))
	g.Config.AppID = "1151340"
	err := g.Run()
	var nf *assetgen.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
	if !strings.HasPrefix(err.Error(), "locate game:") {
		t.Errorf("error %q does not name the stage", err)
	}
}

func TestUnwritableOutput(t *testing.T) {
	g := setup(t, bodySWF(32))
	g.OutDir = filepath.Join(g.OutDir, "missing", "dir")
	err := g.Run()
	var ioErr *assetgen.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("got %v, want IOError", err)
	}
}

func TestNoPartialOutput(t *testing.T) {
	g := setup(t, bodySWF(32))
	// a directory in place of the descriptor makes the last write fail
	err := os.Mkdir(filepath.Join(g.OutDir, g.Config.FontFile), 0o755)
	if err != nil {
		t.Fatal(err)
	}
	err = g.Run()
	var ioErr *assetgen.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("got %v, want IOError", err)
	}
	for _, name := range []string{"body.png", "head.png"} {
		if _, err := os.Stat(filepath.Join(g.OutDir, name)); err == nil {
			t.Errorf("%s left behind after failed run", name)
		}
	}
}
