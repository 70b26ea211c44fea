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

// Package atlas packs rendered animation frames into a single image.
//
// Frames are placed left to right in one row, in the order they are
// requested.  Each frame occupies a column exactly as wide as its scaled
// bounding box.  The resulting [Placement] records locate the frames within
// the atlas and give their offset relative to the document origin.
package atlas

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"math"
	"slices"

	xdraw "golang.org/x/image/draw"
	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/assetgen"
)

var (
	errScale    = errors.New("scale must be positive")
	errNoFrames = errors.New("no frames requested")
)

// Placement locates one frame within an atlas.
type Placement struct {
	// CanvasX and CanvasY give the top left corner of the frame in the
	// atlas.  CanvasY is always 0.
	CanvasX, CanvasY int

	// Width and Height give the size of the frame in pixels.
	Width, Height int

	// SourceX and SourceY give the pixel position of the top left corner
	// of the frame relative to the document origin.
	SourceX, SourceY int
}

// Packer packs frames into an atlas.
type Packer struct {
	// Logger receives the positions of the named anchors of each frame.
	// If Logger is nil, nothing is logged.
	Logger *slog.Logger
}

// Pack renders the given frames of src at the given scale and places them
// side by side in a new image.  The background of the image is opaque
// black.
//
// The placements are returned in the order of the frames argument.  If any
// frame cannot be rendered, no image is returned and the error is a
// *assetgen.RenderError.
func (p *Packer) Pack(src assetgen.FrameSource, frames []int, scale float64) (*image.RGBA, []Placement, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, nil, fmt.Errorf("atlas: %w (got %g)", errScale, scale)
	}
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("atlas: %w", errNoFrames)
	}
	log := p.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	canvas := image.NewRGBA(image.Rectangle{})
	placements := make([]Placement, 0, len(frames))
	count := src.FrameCount()
	for _, n := range frames {
		if n < 0 || n >= count {
			return nil, nil, &assetgen.RenderError{
				Frame: n,
				Err:   fmt.Errorf("frame index out of range (document has %d frames)", count),
			}
		}
		frame, err := src.RenderFrame(n)
		if err != nil {
			var rerr *assetgen.RenderError
			if !errors.As(err, &rerr) {
				err = &assetgen.RenderError{Frame: n, Err: err}
			}
			return nil, nil, err
		}

		logAnchors(log, n, frame, scale)

		b := frame.Bounds
		pl := Placement{
			CanvasX: canvas.Bounds().Dx(),
			Width:   int(math.Ceil((b.URx - b.LLx) * scale)),
			Height:  int(math.Ceil((b.URy - b.LLy) * scale)),
			SourceX: int(math.Floor(b.LLx * scale)),
			SourceY: int(math.Floor(b.LLy * scale)),
		}

		canvas = grow(canvas, pl.CanvasX+pl.Width, max(canvas.Bounds().Dy(), pl.Height))

		column := image.Rect(pl.CanvasX, 0, pl.CanvasX+pl.Width, canvas.Bounds().Dy())
		if !column.Empty() {
			dst := canvas.SubImage(column).(*image.RGBA)
			M := matrix.Scale(scale, scale).Mul(matrix.Translate(float64(pl.CanvasX), 0))
			frame.Image.Draw(dst, M)
		}

		placements = append(placements, pl)
	}
	return canvas, placements, nil
}

// grow returns a new canvas of the given size, filled with opaque black,
// with the contents of old copied to the top left corner.
func grow(old *image.RGBA, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)
	if !old.Bounds().Empty() {
		xdraw.Copy(img, image.Point{}, old, old.Bounds(), draw.Src, nil)
	}
	return img
}

func logAnchors(log *slog.Logger, n int, frame *assetgen.Frame, scale float64) {
	if len(frame.Anchors) == 0 {
		return
	}
	names := make([]string, 0, len(frame.Anchors))
	for name := range frame.Anchors {
		names = append(names, name)
	}
	slices.Sort(names)
	const k = assetgen.SubunitsPerUnit
	for _, name := range names {
		a := frame.Anchors[name]
		log.Info("anchor",
			"frame", n,
			"name", name,
			"x", int(math.Floor(a.X*scale/k)),
			"y", int(math.Floor(a.Y*scale/k)))
	}
}
