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
	"cmp"
	"fmt"
	"maps"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Timeline is a sequence of frames, either the main timeline of a
// document or the timeline of a sprite.
type Timeline struct {
	// FrameCount is the number of frames declared in the header.
	FrameCount int

	// Frames holds the control tags of each frame, in file order.  The
	// ShowFrame tags are not included.  There may be fewer entries than
	// FrameCount; missing frames repeat the state of the last frame.
	Frames [][]Tag
}

// Placement is an entry of a display list.
type Placement struct {
	Depth       uint16
	CharacterID uint16
	Matrix      matrix.Matrix // maps character coordinates to parent coordinates
	CXForm      ColorTransform
	Name        string
	Ratio       uint16
	ClipDepth   uint16
	Visible     bool

	// PlacedAt is the frame in which the character was placed at this
	// depth.
	PlacedAt int
}

// DisplayList replays the control tags of frames 0, ..., frame and returns
// the resulting display list, sorted by increasing depth.
func (t *Timeline) DisplayList(frame int) ([]*Placement, error) {
	// An empty timeline still has a (blank) first frame.
	n := max(t.FrameCount, 1)
	if frame < 0 || frame >= n {
		return nil, fmt.Errorf("frame %d out of range [0, %d)", frame, n)
	}

	list := make(map[uint16]*Placement)
	for i := 0; i <= frame && i < len(t.Frames); i++ {
		for _, tag := range t.Frames[i] {
			switch tag := tag.(type) {
			case *PlaceObject:
				applyPlace(list, tag, i)
			case *RemoveObject:
				delete(list, tag.Depth)
			}
		}
	}

	res := slices.Collect(maps.Values(list))
	slices.SortFunc(res, func(a, b *Placement) int {
		return cmp.Compare(a.Depth, b.Depth)
	})
	return res, nil
}

func applyPlace(list map[uint16]*Placement, tag *PlaceObject, frame int) {
	old := list[tag.Depth]

	var p *Placement
	switch {
	case tag.Move && old != nil:
		c := *old
		p = &c
		if tag.CharacterID != nil {
			p.CharacterID = *tag.CharacterID
			p.PlacedAt = frame
		}
	case tag.CharacterID != nil:
		p = &Placement{
			Depth:       tag.Depth,
			CharacterID: *tag.CharacterID,
			Matrix:      matrix.Identity,
			CXForm:      IdentityCX,
			Visible:     true,
			PlacedAt:    frame,
		}
	default:
		// modifying an empty depth has no effect
		return
	}

	if tag.Matrix != nil {
		p.Matrix = *tag.Matrix
	}
	if tag.CXForm != nil {
		p.CXForm = *tag.CXForm
	}
	if tag.Ratio != nil {
		p.Ratio = *tag.Ratio
	}
	if tag.Name != nil {
		p.Name = *tag.Name
	}
	if tag.ClipDepth != nil {
		p.ClipDepth = *tag.ClipDepth
	}
	if tag.Visible != nil {
		p.Visible = *tag.Visible
	}
	list[tag.Depth] = p
}

// Names returns the translation, in twips, of every named instance on the
// display list of the given frame.
func (t *Timeline) Names(frame int) (map[string]vec.Vec2, error) {
	list, err := t.DisplayList(frame)
	if err != nil {
		return nil, err
	}
	res := make(map[string]vec.Vec2)
	for _, p := range list {
		if p.Name == "" {
			continue
		}
		res[p.Name] = vec.Vec2{X: p.Matrix[4], Y: p.Matrix[5]}
	}
	return res, nil
}

// Sprite is a movie clip, defined by a DefineSprite tag.
type Sprite struct {
	ID uint16
	Timeline
}

func (*Sprite) Code() Code {
	return CodeDefineSprite
}

func (s *Sprite) CharacterID() uint16 {
	return s.ID
}

// LocalFrame returns the frame of a sprite which is shown while the parent
// timeline is at frame parentFrame, for a sprite instance placed at frame
// placedAt.  Sprites start playing when they are placed and loop.
func (s *Sprite) LocalFrame(parentFrame, placedAt int) int {
	if s.FrameCount <= 1 {
		return 0
	}
	age := max(parentFrame-placedAt, 0)
	return age % s.FrameCount
}
