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

package quantize

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestIndex(t *testing.T) {
	cases := []struct {
		in   uint8
		want uint8
	}{
		{0, 0}, {42, 0}, {43, 1}, {85, 1}, {117, 1},
		{118, 2}, {150, 2}, {202, 2}, {203, 3}, {255, 3},
	}
	for _, c := range cases {
		if got := index(c.in); got != c.want {
			t.Errorf("index(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(3, -2, 67, 30))
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(4 * x),
				G: uint8(8 * y),
				B: uint8(x * y),
				A: 255,
			})
		}
	}
	return img
}

func TestReduce(t *testing.T) {
	img := testImage()
	res := Reduce(img)

	if res.Bounds() != img.Bounds() {
		t.Fatalf("bounds %v, want %v", res.Bounds(), img.Bounds())
	}

	allowed := map[uint8]bool{0: true, 85: true, 150: true, 255: true}
	b := res.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := res.At(x, y).RGBA()
			if a != 0xffff || r != g || g != bl || !allowed[uint8(r>>8)] {
				t.Fatalf("pixel (%d, %d) has color %v", x, y, res.At(x, y))
			}

			want := color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			if got := Gray4[res.ColorIndexAt(x, y)].(color.Gray).Y; got != Gray4[index(want)].(color.Gray).Y {
				t.Fatalf("pixel (%d, %d): gray %d mapped to %d", x, y, want, got)
			}
		}
	}
}

func TestReduceDeterministic(t *testing.T) {
	a := Reduce(testImage())
	b := Reduce(testImage())
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("results differ")
	}
}

func TestReduceBlackAndWhite(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	res := Reduce(img)
	if res.ColorIndexAt(0, 0) != 0 || res.ColorIndexAt(1, 0) != 3 {
		t.Errorf("got indices %v", res.Pix)
	}
}
