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

package render

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/assetgen/swf"
)

// canvas paints shapes onto a destination image.
type canvas struct {
	dst    draw.Image
	bounds image.Rectangle
	fill   *vector.Rasterizer
	stroke *rasterx.Stroker
	log    *slog.Logger
}

func newCanvas(dst draw.Image, log *slog.Logger) *canvas {
	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	return &canvas{
		dst:    dst,
		bounds: b,
		fill:   vector.NewRasterizer(b.Dx(), b.Dy()),
		stroke: rasterx.NewStroker(b.Dx(), b.Dy(), scanner),
		log:    log,
	}
}

// drawShape paints a shape.  M maps shape coordinates (twips) to pixels
// of the destination image.
func (c *canvas) drawShape(s *swf.Shape, M matrix.Matrix, cx swf.ColorTransform) {
	for i, edges := range s.FillEdges {
		if len(edges) == 0 {
			continue
		}
		src := c.paint(&s.Fills[i], M, cx)
		if src == nil {
			continue
		}
		c.fillEdges(edges, M, src)
	}
	for i, edges := range s.LineEdges {
		if len(edges) == 0 {
			continue
		}
		c.strokeEdges(edges, &s.Lines[i], M, cx)
	}
}

// local converts a point in shape coordinates to rasterizer coordinates.
func (c *canvas) local(M matrix.Matrix, p vec.Vec2) (float32, float32) {
	x, y := M.Apply(p.X, p.Y)
	return float32(x - float64(c.bounds.Min.X)), float32(y - float64(c.bounds.Min.Y))
}

// fillEdges fills the region enclosed by the given edges.  The edges do
// not need to be connected, but together they must form closed contours.
func (c *canvas) fillEdges(edges []swf.Edge, M matrix.Matrix, src image.Image) {
	z := c.fill
	z.Reset(c.bounds.Dx(), c.bounds.Dy())
	for _, e := range edges {
		z.MoveTo(c.local(M, e.From))
		if e.Curved {
			bx, by := c.local(M, e.Control)
			cx, cy := c.local(M, e.To)
			z.QuadTo(bx, by, cx, cy)
		} else {
			z.LineTo(c.local(M, e.To))
		}
	}
	z.Draw(c.dst, c.bounds, src, c.bounds.Min)
}

// strokeEdges strokes a sequence of edges.  Consecutive edges which share
// an end point are joined into one sub-path.
func (c *canvas) strokeEdges(edges []swf.Edge, style *swf.LineStyle, M matrix.Matrix, cx swf.ColorTransform) {
	col := style.Color
	if style.Fill != nil && len(style.Fill.Stops) > 0 {
		col = style.Fill.Stops[0].Color
	}
	col = cx.Apply(col)
	if col.A == 0 {
		return
	}

	// Strokes are at least one pixel wide, like Flash "hairlines".
	width := max(float64(style.Width)*scaleOf(M), 1)
	capFn := capFunc(style.StartCap)
	endFn := capFunc(style.EndCap)
	miter := max(style.MiterLimit, 1)

	s := c.stroke
	s.Clear()
	s.SetStroke(toFixed(width), toFixed(miter), capFn, endFn, rasterx.RoundGap, joinMode(style.Join))
	s.SetColor(col)

	var first, last vec.Vec2
	open := false
	for _, e := range edges {
		if !open || e.From != last {
			if open {
				s.Stop(last == first && !style.NoClose)
			}
			first = e.From
			s.Start(c.point(M, e.From))
			open = true
		}
		if e.Curved {
			s.QuadBezier(c.point(M, e.Control), c.point(M, e.To))
		} else {
			s.Line(c.point(M, e.To))
		}
		last = e.To
	}
	if open {
		s.Stop(last == first && !style.NoClose)
	}
	s.Draw()
}

func (c *canvas) point(M matrix.Matrix, p vec.Vec2) fixed.Point26_6 {
	x, y := c.local(M, p)
	return fixed.Point26_6{X: toFixed(float64(x)), Y: toFixed(float64(y))}
}

func toFixed(x float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(x * 64))
}

// scaleOf returns the geometric mean of the scale factors of M.
func scaleOf(M matrix.Matrix) float64 {
	return math.Sqrt(math.Abs(M[0]*M[3] - M[1]*M[2]))
}

func capFunc(style uint8) rasterx.CapFunc {
	switch style {
	case 1:
		return rasterx.ButtCap
	case 2:
		return rasterx.SquareCap
	default:
		return rasterx.RoundCap
	}
}

func joinMode(style uint8) rasterx.JoinMode {
	switch style {
	case 1:
		return rasterx.Bevel
	case 2:
		return rasterx.Miter
	default:
		return rasterx.Round
	}
}

// paint returns the source image for a fill style, or nil if the style
// cannot be painted.
func (c *canvas) paint(f *swf.FillStyle, M matrix.Matrix, cx swf.ColorTransform) image.Image {
	switch {
	case f.Type == swf.FillSolid:
		col := cx.Apply(f.Color)
		if col.A == 0 {
			return nil
		}
		return image.NewUniform(col)
	case f.Type.IsGradient() && len(f.Stops) > 0:
		G := f.Matrix.Mul(M)
		if !invertible(G) {
			c.log.Debug("degenerate gradient matrix", "matrix", G)
			return nil
		}
		inv := G.Inv()
		stops := make([]swf.GradientStop, len(f.Stops))
		for i, s := range f.Stops {
			stops[i] = swf.GradientStop{Ratio: s.Ratio, Color: cx.Apply(s.Color)}
		}
		return &gradient{
			inv:    inv,
			stops:  stops,
			radial: f.Type != swf.FillLinearGradient,
		}
	default:
		c.log.Debug("fill style not drawn", "type", int(f.Type))
		return nil
	}
}

// invertible reports whether M can be passed to [matrix.Matrix.Inv].
func invertible(M matrix.Matrix) bool {
	det := M[0]*M[3] - M[1]*M[2]
	return det != 0 && !math.IsNaN(det) && !math.IsInf(det, 0)
}

// gradient is an image which shows a SWF gradient.  Gradients are defined
// on the square from (-16384, -16384) to (16384, 16384); inv maps device
// pixels back into this square.
type gradient struct {
	inv    matrix.Matrix
	stops  []swf.GradientStop
	radial bool
}

func (g *gradient) ColorModel() color.Model {
	return color.NRGBAModel
}

func (g *gradient) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (g *gradient) At(x, y int) color.Color {
	u, v := g.inv.Apply(float64(x)+0.5, float64(y)+0.5)
	var t float64
	if g.radial {
		t = math.Hypot(u, v) / 16384
	} else {
		t = (u + 16384) / 32768
	}
	return g.colorAt(min(max(t, 0), 1) * 255)
}

func (g *gradient) colorAt(ratio float64) color.NRGBA {
	first := g.stops[0]
	if ratio <= float64(first.Ratio) {
		return first.Color
	}
	for i := 1; i < len(g.stops); i++ {
		a, b := g.stops[i-1], g.stops[i]
		if ratio > float64(b.Ratio) {
			continue
		}
		span := float64(b.Ratio) - float64(a.Ratio)
		if span <= 0 {
			return b.Color
		}
		t := (ratio - float64(a.Ratio)) / span
		return color.NRGBA{
			R: lerp(a.Color.R, b.Color.R, t),
			G: lerp(a.Color.G, b.Color.G, t),
			B: lerp(a.Color.B, b.Color.B, t),
			A: lerp(a.Color.A, b.Color.A, t),
		}
	}
	return g.stops[len(g.stops)-1].Color
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
