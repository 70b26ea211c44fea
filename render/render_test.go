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

package render_test

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/assetgen"
	"seehuhn.de/go/assetgen/internal/swftest"
	"seehuhn.de/go/assetgen/render"
	"seehuhn.de/go/assetgen/swf"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

func load(t *testing.T, b *swftest.Builder) *render.Renderer {
	t.Helper()
	doc, err := swf.Parse(b.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	return render.New(doc)
}

func TestFrameRange(t *testing.T) {
	b := &swftest.Builder{Width: 1000, Height: 1000}
	b.Rect(1, red, 0, 0, 100, 100)
	b.Place(1, 1, 0, 0, "")
	b.ShowFrame()
	b.ShowFrame()
	r := load(t, b)

	if r.FrameCount() != 2 {
		t.Fatalf("got %d frames, want 2", r.FrameCount())
	}
	for _, n := range []int{-1, 2, 100} {
		_, err := r.RenderFrame(n)
		if !errors.Is(err, render.ErrFrameRange) {
			t.Errorf("frame %d: got %v, want ErrFrameRange", n, err)
		}
		var rerr *assetgen.RenderError
		if !errors.As(err, &rerr) || rerr.Frame != n {
			t.Errorf("frame %d: got %v, want RenderError", n, err)
		}
	}
	for n := range 2 {
		if _, err := r.RenderFrame(n); err != nil {
			t.Errorf("frame %d: %v", n, err)
		}
	}
}

func TestBoundsAndAnchors(t *testing.T) {
	b := &swftest.Builder{Width: 4000, Height: 4000}
	b.Rect(1, red, 0, 0, 200, 400)
	b.Rect(2, blue, 0, 0, 20, 20)
	b.Place(1, 1, 100, 100, "")
	b.Place(2, 2, 300, 60, "hand")
	b.ShowFrame()
	r := load(t, b)

	frame, err := r.RenderFrame(0)
	if err != nil {
		t.Fatal(err)
	}
	wantBounds := rect.Rect{LLx: 5, LLy: 3, URx: 16, URy: 25}
	if d := cmp.Diff(wantBounds, frame.Bounds); d != "" {
		t.Errorf("bounds differ (-want +got):\n%s", d)
	}
	wantAnchors := map[string]vec.Vec2{"hand": {X: 300, Y: 60}}
	if d := cmp.Diff(wantAnchors, frame.Anchors); d != "" {
		t.Errorf("anchors differ (-want +got):\n%s", d)
	}
}

func TestDrawFill(t *testing.T) {
	b := &swftest.Builder{Width: 4000, Height: 4000}
	b.Rect(1, red, 0, 0, 200, 400)
	b.Place(1, 1, 100, 100, "")
	b.ShowFrame()
	r := load(t, b)

	frame, err := r.RenderFrame(0)
	if err != nil {
		t.Fatal(err)
	}

	// The frame is drawn relative to its bounds, shifted by 5 pixels.
	img := image.NewNRGBA(image.Rect(0, 0, 30, 30))
	frame.Image.Draw(img, matrix.Translate(5, 0))

	cases := []struct {
		x, y int
		want color.NRGBA
	}{
		{4, 10, color.NRGBA{}},
		{5, 0, red},
		{14, 19, red},
		{10, 10, red},
		{15, 10, color.NRGBA{}},
		{10, 20, color.NRGBA{}},
	}
	for _, c := range cases {
		if got := img.NRGBAAt(c.x, c.y); got != c.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestDrawScaled(t *testing.T) {
	b := &swftest.Builder{Width: 4000, Height: 4000}
	b.Rect(1, red, 0, 0, 200, 200)
	b.PlaceScaled(1, 1, 2, 2, 0, 0)
	b.ShowFrame()
	r := load(t, b)

	frame, err := r.RenderFrame(0)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(rect.Rect{URx: 20, URy: 20}, frame.Bounds); d != "" {
		t.Errorf("bounds differ (-want +got):\n%s", d)
	}

	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	frame.Image.Draw(img, matrix.Scale(0.5, 0.5))
	if got := img.NRGBAAt(9, 9); got != red {
		t.Errorf("pixel (9, 9) = %v, want %v", got, red)
	}
	if got := img.NRGBAAt(11, 11); got != (color.NRGBA{}) {
		t.Errorf("pixel (11, 11) = %v, want transparent", got)
	}
}

func TestDrawStroke(t *testing.T) {
	b := &swftest.Builder{Width: 4000, Height: 4000}
	b.Outline(1, red, 40, 0, 0, 200, 100)
	b.Place(1, 1, 100, 100, "")
	b.ShowFrame()
	r := load(t, b)

	frame, err := r.RenderFrame(0)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(rect.Rect{LLx: 4, LLy: 4, URx: 16, URy: 11}, frame.Bounds); d != "" {
		t.Errorf("bounds differ (-want +got):\n%s", d)
	}

	img := image.NewNRGBA(image.Rect(0, 0, 12, 7))
	frame.Image.Draw(img, matrix.Identity)
	if got := img.NRGBAAt(6, 1); got.A < 128 || got.R < 128 {
		t.Errorf("pixel (6, 1) = %v, want red", got)
	}
	if got := img.NRGBAAt(6, 3); got.A != 0 {
		t.Errorf("pixel (6, 3) = %v, want transparent", got)
	}
}

func TestSprite(t *testing.T) {
	b := &swftest.Builder{Width: 4000, Height: 4000}
	b.Rect(1, red, 0, 0, 100, 100)
	b.Sprite(2, func(s *swftest.Builder) {
		s.Place(1, 1, 0, 0, "")
		s.ShowFrame()
		s.Move(1, 200, 0)
		s.ShowFrame()
	})
	b.Place(1, 2, 400, 0, "")
	b.ShowFrame()
	b.ShowFrame()
	b.ShowFrame()
	r := load(t, b)

	want := []rect.Rect{
		{LLx: 20, URx: 25, URy: 5},
		{LLx: 30, URx: 35, URy: 5},
		{LLx: 20, URx: 25, URy: 5},
	}
	for n, w := range want {
		frame, err := r.RenderFrame(n)
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(w, frame.Bounds); d != "" {
			t.Errorf("frame %d: bounds differ (-want +got):\n%s", n, d)
		}
	}
}

func TestClipLayer(t *testing.T) {
	b := &swftest.Builder{Width: 4000, Height: 4000}
	b.Rect(1, blue, 0, 0, 2000, 2000)
	b.Rect(2, red, 0, 0, 100, 100)
	b.PlaceClip(1, 1, 5)
	b.Place(2, 2, 0, 0, "")
	b.ShowFrame()
	r := load(t, b)

	frame, err := r.RenderFrame(0)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(rect.Rect{URx: 5, URy: 5}, frame.Bounds); d != "" {
		t.Errorf("bounds differ (-want +got):\n%s", d)
	}
}

func TestEmptyFrame(t *testing.T) {
	b := &swftest.Builder{Width: 4000, Height: 4000}
	b.ShowFrame()
	r := load(t, b)

	frame, err := r.RenderFrame(0)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(rect.Rect{}, frame.Bounds); d != "" {
		t.Errorf("bounds differ (-want +got):\n%s", d)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	frame.Image.Draw(img, matrix.Identity)
	for i, v := range img.Pix {
		if v != 0 {
			t.Fatalf("byte %d of empty frame is %d", i, v)
		}
	}
}

func TestUndefinedCharacter(t *testing.T) {
	b := &swftest.Builder{Width: 4000, Height: 4000}
	b.Place(1, 99, 0, 0, "")
	b.ShowFrame()
	r := load(t, b)

	_, err := r.RenderFrame(0)
	if !errors.Is(err, render.ErrUndefined) {
		t.Errorf("got %v, want ErrUndefined", err)
	}
}
