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

// Package quantize reduces images to a small gray palette.
package quantize

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Gray4 is the palette used by [Reduce].
var Gray4 = color.Palette{
	color.Gray{Y: 0},
	color.Gray{Y: 85},
	color.Gray{Y: 150},
	color.Gray{Y: 255},
}

// Reduce converts img to gray and maps every pixel to the nearest entry of
// [Gray4].  No dithering is applied.  The result has the same bounds as
// img.
func Reduce(img image.Image) *image.Paletted {
	b := img.Bounds()
	gray := image.NewGray(b)
	xdraw.Copy(gray, b.Min, img, b, xdraw.Src, nil)

	res := image.NewPaletted(b, Gray4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			res.SetColorIndex(x, y, index(gray.GrayAt(x, y).Y))
		}
	}
	return res
}

// index returns the index of the palette entry closest to v.
func index(v uint8) uint8 {
	switch {
	case v <= 42:
		return 0
	case v <= 117:
		return 1
	case v <= 202:
		return 2
	default:
		return 3
	}
}
