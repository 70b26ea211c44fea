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
	"errors"
	"fmt"
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// FillType is the kind of a fill style.
type FillType uint8

// These are the fill types defined by the SWF format.
const (
	FillSolid              FillType = 0x00
	FillLinearGradient     FillType = 0x10
	FillRadialGradient     FillType = 0x12
	FillFocalGradient      FillType = 0x13
	FillRepeatingBitmap    FillType = 0x40
	FillClippedBitmap      FillType = 0x41
	FillRepeatingBitmapRaw FillType = 0x42
	FillClippedBitmapRaw   FillType = 0x43
)

// IsGradient reports whether the fill type is one of the gradient types.
func (t FillType) IsGradient() bool {
	return t == FillLinearGradient || t == FillRadialGradient || t == FillFocalGradient
}

// IsBitmap reports whether the fill type is one of the bitmap types.
func (t FillType) IsBitmap() bool {
	return t >= FillRepeatingBitmap && t <= FillClippedBitmapRaw
}

// GradientStop is a control point of a gradient.
type GradientStop struct {
	Ratio uint8 // position along the gradient, 0-255
	Color color.NRGBA
}

// FillStyle describes how the interior of a shape is painted.
type FillStyle struct {
	Type FillType

	// Color is used for solid fills.
	Color color.NRGBA

	// Matrix maps the gradient square (-16384, -16384)-(16384, 16384)
	// or the bitmap to shape coordinates.
	Matrix matrix.Matrix

	Stops []GradientStop

	// Focal is the focal point of a focal gradient, in the range -1 to 1.
	Focal float64

	BitmapID uint16
}

// LineStyle describes how the edges of a shape are stroked.
type LineStyle struct {
	Width uint16 // in twips
	Color color.NRGBA

	// Fill, if not nil, replaces Color.  This is only used in
	// DefineShape4 tags.
	Fill *FillStyle

	StartCap, EndCap uint8 // 0 = round, 1 = none, 2 = square
	Join             uint8 // 0 = round, 1 = bevel, 2 = miter
	MiterLimit       float64
	NoClose          bool
}

// Edge is a straight or quadratic segment of a shape outline.
// Coordinates are in twips.
type Edge struct {
	From, Control, To vec.Vec2
	Curved            bool
}

// Shape is a vector shape, defined by one of the DefineShape tags.
//
// The outline is stored per style: FillEdges[i] lists the edges which
// enclose areas painted with Fills[i], oriented so that the filled region
// is consistently on one side.  LineEdges[i] lists the edges stroked with
// Lines[i], in drawing order.
type Shape struct {
	ID      uint16
	Version int // 1 for DefineShape, ..., 4 for DefineShape4
	Bounds  Rect

	Fills     []FillStyle
	Lines     []LineStyle
	FillEdges [][]Edge
	LineEdges [][]Edge

	// NonZero is set if the shape uses the nonzero winding rule.
	// Otherwise the even-odd rule applies.
	NonZero bool
}

func (s *Shape) Code() Code {
	switch s.Version {
	case 1:
		return CodeDefineShape
	case 2:
		return CodeDefineShape2
	case 3:
		return CodeDefineShape3
	default:
		return CodeDefineShape4
	}
}

func (s *Shape) CharacterID() uint16 {
	return s.ID
}

var errStyleIndex = errors.New("shape style index out of range")

func parseShape(r *reader, version int) (*Shape, error) {
	s := &Shape{
		Version: version,
	}
	s.ID = r.u16()
	s.Bounds = r.rect()
	if version >= 4 {
		r.rect() // edge bounds
		flags := r.u8()
		s.NonZero = flags&0x04 != 0
	}

	fillBase, lineBase := 0, 0
	if err := s.readStyles(r); err != nil {
		return nil, err
	}
	numFillBits := uint(r.ub(4))
	numLineBits := uint(r.ub(4))

	var pen vec.Vec2
	fill0, fill1, line := -1, -1, -1
	for r.err == nil {
		if !r.flag() { // non-edge record
			flags := r.ub(5)
			if flags == 0 {
				break
			}
			if flags&0x01 != 0 { // move to
				n := uint(r.ub(5))
				pen.X = float64(r.sb(n))
				pen.Y = float64(r.sb(n))
			}
			if flags&0x02 != 0 {
				fill0 = styleIndex(r.ub(numFillBits), fillBase)
			}
			if flags&0x04 != 0 {
				fill1 = styleIndex(r.ub(numFillBits), fillBase)
			}
			if flags&0x08 != 0 {
				line = styleIndex(r.ub(numLineBits), lineBase)
			}
			if flags&0x10 != 0 && version >= 2 { // new styles
				fillBase, lineBase = len(s.Fills), len(s.Lines)
				if err := s.readStyles(r); err != nil {
					return nil, err
				}
				numFillBits = uint(r.ub(4))
				numLineBits = uint(r.ub(4))
			}
			if fill0 >= len(s.Fills) || fill1 >= len(s.Fills) || line >= len(s.Lines) {
				return nil, errStyleIndex
			}
			continue
		}

		var e Edge
		e.From = pen
		if r.flag() { // straight edge
			n := uint(r.ub(4)) + 2
			var dx, dy int32
			if r.flag() { // general line
				dx = r.sb(n)
				dy = r.sb(n)
			} else if r.flag() { // vertical line
				dy = r.sb(n)
			} else {
				dx = r.sb(n)
			}
			e.To = vec.Vec2{X: pen.X + float64(dx), Y: pen.Y + float64(dy)}
		} else {
			n := uint(r.ub(4)) + 2
			cdx := r.sb(n)
			cdy := r.sb(n)
			adx := r.sb(n)
			ady := r.sb(n)
			e.Control = vec.Vec2{X: pen.X + float64(cdx), Y: pen.Y + float64(cdy)}
			e.To = vec.Vec2{X: e.Control.X + float64(adx), Y: e.Control.Y + float64(ady)}
			e.Curved = true
		}
		pen = e.To

		if fill1 >= 0 {
			s.FillEdges[fill1] = append(s.FillEdges[fill1], e)
		}
		if fill0 >= 0 {
			s.FillEdges[fill0] = append(s.FillEdges[fill0], e.reverse())
		}
		if line >= 0 {
			s.LineEdges[line] = append(s.LineEdges[line], e)
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	return s, nil
}

// styleIndex converts a 1-based style index from a shape record into an
// index into the style arrays of the shape.  The result is -1 for the
// "no style" index 0.
func styleIndex(idx uint32, base int) int {
	if idx == 0 {
		return -1
	}
	return base + int(idx) - 1
}

func (e Edge) reverse() Edge {
	return Edge{
		From:    e.To,
		Control: e.Control,
		To:      e.From,
		Curved:  e.Curved,
	}
}

func (s *Shape) readStyles(r *reader) error {
	n := int(r.u8())
	if n == 0xFF && s.Version >= 2 {
		n = int(r.u16())
	}
	for range n {
		f, err := readFillStyle(r, s.Version)
		if err != nil {
			return err
		}
		s.Fills = append(s.Fills, f)
		s.FillEdges = append(s.FillEdges, nil)
	}

	n = int(r.u8())
	if n == 0xFF {
		n = int(r.u16())
	}
	for range n {
		l, err := readLineStyle(r, s.Version)
		if err != nil {
			return err
		}
		s.Lines = append(s.Lines, l)
		s.LineEdges = append(s.LineEdges, nil)
	}
	return r.err
}

func readColor(r *reader, version int) color.NRGBA {
	if version >= 3 {
		return r.rgba()
	}
	return r.rgb()
}

func readFillStyle(r *reader, version int) (FillStyle, error) {
	f := FillStyle{
		Type:   FillType(r.u8()),
		Matrix: matrix.Identity,
	}
	switch {
	case f.Type == FillSolid:
		f.Color = readColor(r, version)
	case f.Type.IsGradient():
		f.Matrix = r.matrix()
		r.align()
		r.ub(2) // spread mode
		r.ub(2) // interpolation mode
		n := int(r.ub(4))
		f.Stops = make([]GradientStop, n)
		for i := range f.Stops {
			f.Stops[i].Ratio = r.u8()
			f.Stops[i].Color = readColor(r, version)
		}
		if f.Type == FillFocalGradient {
			f.Focal = r.fixed8()
		}
	case f.Type.IsBitmap():
		f.BitmapID = r.u16()
		f.Matrix = r.matrix()
	default:
		return f, fmt.Errorf("unknown fill style type 0x%02x", uint8(f.Type))
	}
	return f, r.err
}

func readLineStyle(r *reader, version int) (LineStyle, error) {
	l := LineStyle{
		Width: r.u16(),
	}
	if version < 4 {
		l.Color = readColor(r, version)
		return l, r.err
	}

	l.StartCap = uint8(r.ub(2))
	l.Join = uint8(r.ub(2))
	hasFill := r.flag()
	r.ub(1) // no horizontal scale
	r.ub(1) // no vertical scale
	r.ub(1) // pixel hinting
	r.ub(5) // reserved
	l.NoClose = r.flag()
	l.EndCap = uint8(r.ub(2))
	if l.Join == 2 {
		l.MiterLimit = r.fixed8()
	}
	if hasFill {
		f, err := readFillStyle(r, version)
		if err != nil {
			return l, err
		}
		l.Fill = &f
		l.Color = f.Color
	} else {
		l.Color = r.rgba()
	}
	return l, r.err
}
