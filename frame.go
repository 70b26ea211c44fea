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
	"image/draw"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// SubunitsPerUnit is the number of coordinate subunits (twips) per document
// unit.  Anchor positions are reported in subunits.
const SubunitsPerUnit = 20

// Vector is the scalable content of a rendered frame.
type Vector interface {
	// Draw paints the content onto dst.
	//
	// The matrix M maps document units to pixels of dst.  Document
	// coordinates are taken relative to the lower left corner of the
	// frame's bounding box, so that the point (Bounds.LLx, Bounds.LLy) of
	// the frame lands on M.Apply(0, 0).
	Draw(dst draw.Image, M matrix.Matrix)
}

// Frame is the result of rendering one frame of a vector document.
type Frame struct {
	// Image is the vector content of the frame.
	Image Vector

	// Bounds is the tight bounding box of the visible content, in
	// document units.  The y axis points down, so that LLy is the top
	// edge of the content.
	Bounds rect.Rect

	// Anchors maps the names of the named instances present in the frame
	// to their translation, in subunits.
	Anchors map[string]vec.Vec2
}

// FrameSource gives access to the frames of a vector document.
type FrameSource interface {
	// FrameCount returns the number of frames in the document.
	// Valid frame indices are 0, ..., FrameCount()-1.
	FrameCount() int

	// RenderFrame renders the frame with index n.
	// The returned error is a *RenderError if n is out of range or if
	// the frame content cannot be rendered.
	RenderFrame(n int) (*Frame, error)
}
