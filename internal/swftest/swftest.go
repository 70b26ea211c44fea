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

// Package swftest builds small SWF files for use in tests.
package swftest

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"image/color"
)

// coordBits is the bit width used for all coordinates.  Edge records
// store the width minus two in four bits, so 17 is the largest value.
// This allows values in the range -65536 to 65535 twips.
const coordBits = 17

// bitWriter encodes SWF bit fields, most significant bit first.
type bitWriter struct {
	buf []byte
	acc byte
	n   uint
}

func (w *bitWriter) ub(n uint, v uint32) {
	for i := n; i > 0; i-- {
		w.acc = w.acc<<1 | byte(v>>(i-1)&1)
		w.n++
		if w.n == 8 {
			w.buf = append(w.buf, w.acc)
			w.acc, w.n = 0, 0
		}
	}
}

func (w *bitWriter) sb(n uint, v int32) {
	w.ub(n, uint32(v))
}

func (w *bitWriter) align() {
	if w.n > 0 {
		w.ub(8-w.n, 0)
	}
}

func (w *bitWriter) u8(v uint8) {
	w.align()
	w.buf = append(w.buf, v)
}

func (w *bitWriter) u16(v uint16) {
	w.align()
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *bitWriter) u32(v uint32) {
	w.align()
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *bitWriter) cstring(s string) {
	w.align()
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, 0)
}

func (w *bitWriter) rect(xMin, yMin, xMax, yMax int32) {
	w.align()
	w.ub(5, coordBits)
	w.sb(coordBits, xMin)
	w.sb(coordBits, xMax)
	w.sb(coordBits, yMin)
	w.sb(coordBits, yMax)
}

func (w *bitWriter) translation(tx, ty int32) {
	w.align()
	w.ub(1, 0) // no scale
	w.ub(1, 0) // no rotation
	w.ub(5, coordBits)
	w.sb(coordBits, tx)
	w.sb(coordBits, ty)
}

func (w *bitWriter) scaled(sx, sy float64, tx, ty int32) {
	w.align()
	w.ub(1, 1)
	w.ub(5, 24)
	w.sb(24, int32(sx*65536))
	w.sb(24, int32(sy*65536))
	w.ub(1, 0)
	w.ub(5, coordBits)
	w.sb(coordBits, tx)
	w.sb(coordBits, ty)
}

func (w *bitWriter) rgba(c color.NRGBA) {
	w.align()
	w.buf = append(w.buf, c.R, c.G, c.B, c.A)
}

func (w *bitWriter) bytes() []byte {
	w.align()
	return w.buf
}

// Builder accumulates the tags of a SWF document or sprite.
type Builder struct {
	// Version is the SWF version written into the header.
	// The zero value selects version 10.
	Version uint8

	// FrameCount, if non-zero, overrides the frame count written into
	// the header.  By default, the number of ShowFrame calls is used.
	FrameCount int

	// Width and Height give the stage size in twips.
	Width, Height int32

	// Compress selects the zlib-compressed "CWS" variant of the format.
	Compress bool

	tags   []byte
	frames int
}

func (b *Builder) tag(code uint16, data []byte) {
	var w bitWriter
	if len(data) < 0x3F {
		w.u16(code<<6 | uint16(len(data)))
	} else {
		w.u16(code<<6 | 0x3F)
		w.u32(uint32(len(data)))
	}
	b.tags = append(b.tags, w.buf...)
	b.tags = append(b.tags, data...)
}

// Raw appends a tag with the given code and body.
func (b *Builder) Raw(code uint16, data []byte) {
	b.tag(code, data)
}

// Polygon defines a DefineShape3 character consisting of a closed polygon,
// filled with the given color.  The points are given in twips.
func (b *Builder) Polygon(id uint16, c color.NRGBA, points ...[2]int32) {
	xMin, yMin := points[0][0], points[0][1]
	xMax, yMax := xMin, yMin
	for _, p := range points[1:] {
		xMin, xMax = min(xMin, p[0]), max(xMax, p[0])
		yMin, yMax = min(yMin, p[1]), max(yMax, p[1])
	}

	var w bitWriter
	w.u16(id)
	w.rect(xMin, yMin, xMax, yMax)
	w.u8(1) // one fill style
	w.u8(0x00)
	w.rgba(c)
	w.u8(0) // no line styles
	w.ub(4, 1)
	w.ub(4, 0)

	// style change: move to first point, select fill style 1
	w.ub(1, 0)
	w.ub(5, 0x05)
	w.ub(5, coordBits)
	w.sb(coordBits, points[0][0])
	w.sb(coordBits, points[0][1])
	w.ub(1, 1)

	pen := points[0]
	for i := 1; i <= len(points); i++ {
		next := points[i%len(points)]
		w.line(next[0]-pen[0], next[1]-pen[1])
		pen = next
	}
	w.ub(1, 0) // end of shape
	w.ub(5, 0)
	b.tag(32, w.bytes())
}

// Rect defines a filled rectangle character with corners (x0, y0) and
// (x1, y1), in twips.
func (b *Builder) Rect(id uint16, c color.NRGBA, x0, y0, x1, y1 int32) {
	b.Polygon(id, c, [2]int32{x0, y0}, [2]int32{x1, y0}, [2]int32{x1, y1}, [2]int32{x0, y1})
}

// Outline defines a DefineShape3 character consisting of the stroked
// outline of a rectangle.
func (b *Builder) Outline(id uint16, c color.NRGBA, width uint16, x0, y0, x1, y1 int32) {
	pad := int32(width / 2)

	var w bitWriter
	w.u16(id)
	w.rect(x0-pad, y0-pad, x1+pad, y1+pad)
	w.u8(0) // no fill styles
	w.u8(1) // one line style
	w.u16(width)
	w.rgba(c)
	w.ub(4, 0)
	w.ub(4, 1)

	w.ub(1, 0)
	w.ub(5, 0x09) // line style, move to
	w.ub(5, coordBits)
	w.sb(coordBits, x0)
	w.sb(coordBits, y0)
	w.ub(1, 1)
	w.line(x1-x0, 0)
	w.line(0, y1-y0)
	w.line(x0-x1, 0)
	w.line(0, y0-y1)
	w.ub(1, 0)
	w.ub(5, 0)
	b.tag(32, w.bytes())
}

// Curve defines a filled shape bounded by a straight edge from (x0, y0)
// to (x1, y0) and a quadratic curve back, with control point (cx, cy).
func (b *Builder) Curve(id uint16, c color.NRGBA, x0, y0, x1, cx, cy int32) {
	var w bitWriter
	w.u16(id)
	w.rect(min(x0, x1), min(y0, cy), max(x0, x1), max(y0, cy))
	w.u8(1)
	w.u8(0x00)
	w.rgba(c)
	w.u8(0)
	w.ub(4, 1)
	w.ub(4, 0)

	w.ub(1, 0)
	w.ub(5, 0x05)
	w.ub(5, coordBits)
	w.sb(coordBits, x0)
	w.sb(coordBits, y0)
	w.ub(1, 1)
	w.line(x1-x0, 0)

	w.ub(1, 1) // edge
	w.ub(1, 0) // curved
	w.ub(4, coordBits-2)
	w.sb(coordBits, cx-x1)
	w.sb(coordBits, cy-y0)
	w.sb(coordBits, x0-cx)
	w.sb(coordBits, y0-cy)

	w.ub(1, 0)
	w.ub(5, 0)
	b.tag(32, w.bytes())
}

func (w *bitWriter) line(dx, dy int32) {
	w.ub(1, 1) // edge
	w.ub(1, 1) // straight
	w.ub(4, coordBits-2)
	switch {
	case dx != 0 && dy != 0:
		w.ub(1, 1)
		w.sb(coordBits, dx)
		w.sb(coordBits, dy)
	case dx == 0:
		w.ub(1, 0)
		w.ub(1, 1)
		w.sb(coordBits, dy)
	default:
		w.ub(1, 0)
		w.ub(1, 0)
		w.sb(coordBits, dx)
	}
}

// Place appends a PlaceObject2 tag which puts character id at the given
// depth, translated by (tx, ty) twips.  A non-empty name is stored as the
// instance name.
func (b *Builder) Place(depth, id uint16, tx, ty int32, name string) {
	var w bitWriter
	flags := uint8(0x06) // has character, has matrix
	if name != "" {
		flags |= 0x20
	}
	w.u8(flags)
	w.u16(depth)
	w.u16(id)
	w.translation(tx, ty)
	if name != "" {
		w.cstring(name)
	}
	b.tag(26, w.bytes())
}

// PlaceScaled is like Place, but additionally scales the character.
func (b *Builder) PlaceScaled(depth, id uint16, sx, sy float64, tx, ty int32) {
	var w bitWriter
	w.u8(0x06)
	w.u16(depth)
	w.u16(id)
	w.scaled(sx, sy, tx, ty)
	b.tag(26, w.bytes())
}

// PlaceClip places character id as a clipping layer for the depths up to
// clipDepth.
func (b *Builder) PlaceClip(depth, id, clipDepth uint16) {
	var w bitWriter
	w.u8(0x46) // has clip depth, has character, has matrix
	w.u16(depth)
	w.u16(id)
	w.translation(0, 0)
	w.u16(clipDepth)
	b.tag(26, w.bytes())
}

// Move appends a PlaceObject2 tag which moves the object at the given
// depth to the translation (tx, ty).
func (b *Builder) Move(depth uint16, tx, ty int32) {
	var w bitWriter
	w.u8(0x05) // move, has matrix
	w.u16(depth)
	w.translation(tx, ty)
	b.tag(26, w.bytes())
}

// Remove appends a RemoveObject2 tag.
func (b *Builder) Remove(depth uint16) {
	var w bitWriter
	w.u16(depth)
	b.tag(28, w.bytes())
}

// Label appends a FrameLabel tag.
func (b *Builder) Label(name string) {
	var w bitWriter
	w.cstring(name)
	b.tag(43, w.bytes())
}

// ShowFrame ends the current frame.
func (b *Builder) ShowFrame() {
	b.tag(1, nil)
	b.frames++
}

// Sprite defines a sprite character.  The function body is called with a
// fresh Builder to add the control tags of the sprite.
func (b *Builder) Sprite(id uint16, body func(s *Builder)) {
	s := &Builder{}
	body(s)
	frames := s.frames
	if s.FrameCount != 0 {
		frames = s.FrameCount
	}

	var w bitWriter
	w.u16(id)
	w.u16(uint16(frames))
	data := append(w.buf, s.tags...)
	data = append(data, 0, 0) // End
	b.tag(39, data)
}

// Bytes returns the encoded SWF file.
func (b *Builder) Bytes() []byte {
	version := b.Version
	if version == 0 {
		version = 10
	}
	frames := b.frames
	if b.FrameCount != 0 {
		frames = b.FrameCount
	}

	var w bitWriter
	w.rect(0, 0, b.Width, b.Height)
	w.u16(24 << 8) // frame rate
	w.u16(uint16(frames))
	body := append(w.buf, b.tags...)
	body = append(body, 0, 0) // End

	head := []byte("FWS")
	if b.Compress {
		head = []byte("CWS")
	}
	head = append(head, version)
	head = binary.LittleEndian.AppendUint32(head, uint32(8+len(body)))
	if !b.Compress {
		return append(head, body...)
	}

	buf := bytes.NewBuffer(head)
	zw := zlib.NewWriter(buf)
	zw.Write(body)
	zw.Close()
	return buf.Bytes()
}
