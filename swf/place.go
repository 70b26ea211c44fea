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
	"fmt"

	"seehuhn.de/go/geom/matrix"
)

// PlaceObject adds a character to the display list, or modifies the
// character at a given depth.  It represents PlaceObject2 and PlaceObject3
// tags.
//
// Fields which are not present in the tag are nil.
type PlaceObject struct {
	Version int // 2 or 3

	Depth uint16

	// Move is set if the tag modifies the object already present at
	// Depth.
	Move bool

	CharacterID *uint16
	Matrix      *matrix.Matrix
	CXForm      *ColorTransform
	Ratio       *uint16
	Name        *string
	ClipDepth   *uint16
	ClassName   string
	BlendMode   uint8
	Visible     *bool
}

func (p *PlaceObject) Code() Code {
	if p.Version >= 3 {
		return CodePlaceObject3
	}
	return CodePlaceObject2
}

// RemoveObject removes the character at the given depth from the display
// list.  It represents RemoveObject and RemoveObject2 tags.
type RemoveObject struct {
	Version     int    // 1 or 2
	CharacterID uint16 // only used by version 1
	Depth       uint16
}

func (t *RemoveObject) Code() Code {
	if t.Version >= 2 {
		return CodeRemoveObject2
	}
	return CodeRemoveObject
}

func parsePlaceObject(r *reader, version int, decode func([]byte) string) (*PlaceObject, error) {
	p := &PlaceObject{Version: version}

	flags := r.u8()
	var flags2 uint8
	if version >= 3 {
		flags2 = r.u8()
	}
	p.Depth = r.u16()
	p.Move = flags&0x01 != 0

	if flags2&0x08 != 0 || (flags2&0x10 != 0 && flags&0x02 != 0) {
		p.ClassName = decode(r.cstring())
	}
	if flags&0x02 != 0 {
		id := r.u16()
		p.CharacterID = &id
	}
	if flags&0x04 != 0 {
		M := r.matrix()
		p.Matrix = &M
	}
	if flags&0x08 != 0 {
		cx := r.cxform(true)
		p.CXForm = &cx
	}
	if flags&0x10 != 0 {
		ratio := r.u16()
		p.Ratio = &ratio
	}
	if flags&0x20 != 0 {
		name := decode(r.cstring())
		p.Name = &name
	}
	if flags&0x40 != 0 {
		clip := r.u16()
		p.ClipDepth = &clip
	}
	if r.err != nil {
		return nil, r.err
	}

	if version < 3 {
		return p, nil
	}

	if flags2&0x01 != 0 {
		if err := skipFilters(r); err != nil {
			return nil, err
		}
	}
	if flags2&0x02 != 0 {
		p.BlendMode = r.u8()
	}
	if flags2&0x04 != 0 {
		r.u8() // cache as bitmap
	}
	if flags2&0x20 != 0 {
		visible := r.u8() != 0
		p.Visible = &visible
	}
	// The opaque background color and clip actions are ignored.
	return p, r.err
}

// skipFilters skips over a FILTERLIST record.
func skipFilters(r *reader) error {
	n := int(r.u8())
	for range n {
		id := r.u8()
		switch id {
		case 0: // drop shadow
			r.skip(23)
		case 1: // blur
			r.skip(9)
		case 2: // glow
			r.skip(15)
		case 3: // bevel
			r.skip(27)
		case 4, 7: // gradient glow, gradient bevel
			k := int(r.u8())
			r.skip(5*k + 19)
		case 5: // convolution
			x := int(r.u8())
			y := int(r.u8())
			r.skip(8 + 4*x*y + 5)
		case 6: // color matrix
			r.skip(80)
		default:
			return fmt.Errorf("unknown filter type %d", id)
		}
	}
	return r.err
}
