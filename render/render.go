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

// Package render turns the frames of a SWF document into vector images.
//
// A [Renderer] implements [assetgen.FrameSource].  The frames it returns
// can be drawn onto any [draw.Image] at an arbitrary affine transformation.
// Fills are rasterized using golang.org/x/image/vector, strokes using
// github.com/srwiley/rasterx.
//
// The renderer covers the subset of SWF used by interface animations:
// shapes with solid and gradient fills, strokes, nested sprites, color
// transforms.  Bitmaps, text, filters, blend modes and masking are not
// drawn.
package render

import (
	"errors"
	"fmt"
	"image/draw"
	"log/slog"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/assetgen"
	"seehuhn.de/go/assetgen/swf"
)

// maxNesting limits the depth of nested sprites.
const maxNesting = 32

var (
	// ErrFrameRange is returned when a frame index is outside the
	// document.
	ErrFrameRange = errors.New("frame index out of range")

	// ErrUndefined is returned when the display list refers to a
	// character which is not defined in the document.
	ErrUndefined = errors.New("undefined character")

	errTooDeep = errors.New("sprites nested too deeply")
)

// Renderer renders the frames of a SWF document.
type Renderer struct {
	doc *swf.Document

	// Logger receives diagnostics about content which cannot be drawn.
	// If Logger is nil, diagnostics are discarded.
	Logger *slog.Logger
}

var _ assetgen.FrameSource = (*Renderer)(nil)

// New returns a renderer for the given document.
func New(doc *swf.Document) *Renderer {
	return &Renderer{doc: doc}
}

func (r *Renderer) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

// FrameCount returns the number of frames of the document.
func (r *Renderer) FrameCount() int {
	return r.doc.FrameCount
}

// RenderFrame renders frame n of the document.
//
// The bounds of the returned frame are in pixels, i.e. twips divided by
// [assetgen.SubunitsPerUnit].  The anchors are the named instances on the
// main timeline, with translations in twips.
func (r *Renderer) RenderFrame(n int) (*assetgen.Frame, error) {
	if n < 0 || n >= r.doc.FrameCount {
		return nil, &assetgen.RenderError{
			Frame: n,
			Err:   fmt.Errorf("%w (document has %d frames)", ErrFrameRange, r.doc.FrameCount),
		}
	}

	pic := &picture{log: r.logger()}
	err := r.collect(pic, &r.doc.Timeline, n, matrix.Identity, swf.IdentityCX, 0)
	if err != nil {
		return nil, &assetgen.RenderError{Frame: n, Err: err}
	}
	anchors, err := r.doc.Names(n)
	if err != nil {
		return nil, &assetgen.RenderError{Frame: n, Err: err}
	}

	var bounds rect.Rect
	if box, ok := pic.extent(); ok {
		pic.origin = box
		const k = assetgen.SubunitsPerUnit
		bounds = rect.Rect{
			LLx: box.LLx / k,
			LLy: box.LLy / k,
			URx: box.URx / k,
			URy: box.URy / k,
		}
	}

	return &assetgen.Frame{
		Image:   pic,
		Bounds:  bounds,
		Anchors: anchors,
	}, nil
}

// collect appends the shapes visible in the given frame of a timeline to
// pic.  M and cx are the accumulated transformations of the enclosing
// sprites.
func (r *Renderer) collect(pic *picture, tl *swf.Timeline, frame int, M matrix.Matrix, cx swf.ColorTransform, level int) error {
	if level > maxNesting {
		return errTooDeep
	}
	list, err := tl.DisplayList(frame)
	if err != nil {
		return err
	}
	for _, p := range list {
		if p.ClipDepth > 0 || !p.Visible {
			continue
		}
		ch, ok := r.doc.Characters[p.CharacterID]
		if !ok {
			return fmt.Errorf("%w %d at depth %d", ErrUndefined, p.CharacterID, p.Depth)
		}

		pM := p.Matrix.Mul(M)
		pCX := p.CXForm.Then(cx)
		switch ch := ch.(type) {
		case *swf.Shape:
			pic.items = append(pic.items, item{shape: ch, M: pM, cx: pCX})
		case *swf.Sprite:
			local := ch.LocalFrame(frame, p.PlacedAt)
			err := r.collect(pic, &ch.Timeline, local, pM, pCX, level+1)
			if err != nil {
				return err
			}
		default:
			r.logger().Debug("character not drawn",
				"id", p.CharacterID, "type", ch.Code().String())
		}
	}
	return nil
}

// item is a shape together with its placement on the main timeline.
type item struct {
	shape *swf.Shape
	M     matrix.Matrix // shape coordinates to main timeline twips
	cx    swf.ColorTransform
}

// picture is the vector content of one frame.
type picture struct {
	items  []item
	origin rect.Rect // bounding box in twips
	log    *slog.Logger
}

// extent returns the bounding box of all items, in twips.
func (p *picture) extent() (rect.Rect, bool) {
	var res rect.Rect
	found := false
	for _, it := range p.items {
		if it.shape.Bounds.IsEmpty() {
			continue
		}
		b := it.shape.Bounds.Transform(it.M)
		if !found {
			res = b
			found = true
			continue
		}
		res.Extend(b)
	}
	return res, found
}

// Draw implements the [assetgen.Vector] interface.
func (p *picture) Draw(dst draw.Image, M matrix.Matrix) {
	const k = assetgen.SubunitsPerUnit
	toDst := matrix.Translate(-p.origin.LLx, -p.origin.LLy).
		Mul(matrix.Scale(1.0/k, 1.0/k)).
		Mul(M)

	c := newCanvas(dst, p.log)
	for _, it := range p.items {
		c.drawShape(it.shape, it.M.Mul(toDst), it.cx)
	}
}
