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

package assetgen

import (
	"errors"
	"io/fs"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	errBad := errors.New("bad data")
	cases := []struct {
		err  error
		want string
	}{
		{&LocatorError{}, "cannot locate game installation"},
		{&LocatorError{Msg: "no Steam installation", Err: fs.ErrNotExist},
			"cannot locate game installation: no Steam installation: file does not exist"},
		{&NotFoundError{Kind: "archive entry", Name: "a.swf"}, `archive entry "a.swf" not found`},
		{&ParseError{Format: "SWF", Err: errBad}, "malformed SWF data: bad data"},
		{&ParseError{Format: "BA2", Pos: 36, Err: errBad}, "malformed BA2 data: bad data (at byte 36)"},
		{&RenderError{Frame: 40, Err: errBad}, "cannot render frame 40: bad data"},
		{&IOError{Path: "body.png", Err: fs.ErrPermission}, `cannot write "body.png": permission denied`},
		{&IOError{Op: "read", Path: "a.ba2", Err: fs.ErrPermission}, `cannot read "a.ba2": permission denied`},
	}
	for _, c := range cases {
		if got := c.err.Error(); got != c.want {
			t.Errorf("got %q, want %q", got, c.want)
		}
	}
}

func TestUnwrap(t *testing.T) {
	errBad := errors.New("bad data")
	for _, err := range []error{
		&LocatorError{Err: errBad},
		&ParseError{Format: "SWF", Err: errBad},
		&RenderError{Err: errBad},
		&IOError{Path: "x", Err: errBad},
	} {
		if !errors.Is(err, errBad) {
			t.Errorf("%T does not unwrap", err)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	want := []int{0, 4, 8, 12, 16, 20, 24, 28}
	if len(cfg.Body.Frames) != len(want) {
		t.Fatalf("got %d body frames, want %d", len(cfg.Body.Frames), len(want))
	}
	for i, n := range want {
		if cfg.Body.Frames[i] != n {
			t.Errorf("body frame %d is %d, want %d", i, cfg.Body.Frames[i], n)
		}
	}
	if cfg.Body.FirstChar != '0' || cfg.Head.FirstChar != 'a' {
		t.Error("wrong first characters")
	}

	// each call returns an independent copy
	cfg.Body.Frames[0] = 99
	if DefaultConfig().Body.Frames[0] != 0 {
		t.Error("DefaultConfig shares state between calls")
	}
}
