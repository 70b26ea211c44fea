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

package swf

import (
	"image/color"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

// Rect is a rectangle in twips.
type Rect struct {
	XMin, XMax, YMin, YMax int32
}

// IsEmpty reports whether the rectangle has zero area.
func (r Rect) IsEmpty() bool {
	return r.XMax <= r.XMin || r.YMax <= r.YMin
}

// Transform returns the bounding box of the image of r under M.
func (r Rect) Transform(M matrix.Matrix) rect.Rect {
	x, y := M.Apply(float64(r.XMin), float64(r.YMin))
	res := rect.Rect{LLx: x, LLy: y, URx: x, URy: y}
	res.Add(M.Apply(float64(r.XMax), float64(r.YMin)))
	res.Add(M.Apply(float64(r.XMin), float64(r.YMax)))
	res.Add(M.Apply(float64(r.XMax), float64(r.YMax)))
	return res
}

func (r *reader) rect() Rect {
	r.align()
	n := uint(r.ub(5))
	return Rect{
		XMin: r.sb(n),
		XMax: r.sb(n),
		YMin: r.sb(n),
		YMax: r.sb(n),
	}
}

// matrix reads a MATRIX record.  The result maps (x, y) to
// (a*x + c*y + e, b*x + d*y + f), with translations in twips.
func (r *reader) matrix() matrix.Matrix {
	r.align()
	M := matrix.Identity
	if r.flag() {
		n := uint(r.ub(5))
		M[0] = r.fb(n)
		M[3] = r.fb(n)
	}
	if r.flag() {
		n := uint(r.ub(5))
		M[1] = r.fb(n)
		M[2] = r.fb(n)
	}
	n := uint(r.ub(5))
	M[4] = float64(r.sb(n))
	M[5] = float64(r.sb(n))
	return M
}

func (r *reader) rgb() color.NRGBA {
	b := r.bytes(3)
	if b == nil {
		return color.NRGBA{}
	}
	return color.NRGBA{R: b[0], G: b[1], B: b[2], A: 0xFF}
}

func (r *reader) rgba() color.NRGBA {
	b := r.bytes(4)
	if b == nil {
		return color.NRGBA{}
	}
	return color.NRGBA{R: b[0], G: b[1], B: b[2], A: b[3]}
}

// ColorTransform describes a color transformation.  Each channel c is
// mapped to c*Mult + Add, clamped to [0, 255].  Channels are in the order
// red, green, blue, alpha.
type ColorTransform struct {
	Mult [4]float64
	Add  [4]float64
}

// IdentityCX is the color transform which leaves all colors unchanged.
var IdentityCX = ColorTransform{Mult: [4]float64{1, 1, 1, 1}}

// Apply applies the transformation to a color.
func (cx ColorTransform) Apply(c color.NRGBA) color.NRGBA {
	in := [4]uint8{c.R, c.G, c.B, c.A}
	var out [4]uint8
	for i, v := range in {
		x := float64(v)*cx.Mult[i] + cx.Add[i]
		out[i] = uint8(math.Round(min(max(x, 0), 255)))
	}
	return color.NRGBA{R: out[0], G: out[1], B: out[2], A: out[3]}
}

// Then returns the transform which applies cx first and then outer.
func (cx ColorTransform) Then(outer ColorTransform) ColorTransform {
	var res ColorTransform
	for i := range 4 {
		res.Mult[i] = cx.Mult[i] * outer.Mult[i]
		res.Add[i] = cx.Add[i]*outer.Mult[i] + outer.Add[i]
	}
	return res
}

// cxform reads a CXFORM record, or a CXFORMWITHALPHA record if withAlpha
// is set.
func (r *reader) cxform(withAlpha bool) ColorTransform {
	r.align()
	cx := IdentityCX
	hasAdd := r.flag()
	hasMult := r.flag()
	n := uint(r.ub(4))
	channels := 3
	if withAlpha {
		channels = 4
	}
	if hasMult {
		for i := range channels {
			cx.Mult[i] = float64(r.sb(n)) / 256
		}
	}
	if hasAdd {
		for i := range channels {
			cx.Add[i] = float64(r.sb(n))
		}
	}
	return cx
}
