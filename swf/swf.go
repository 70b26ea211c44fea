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

// Package swf reads SWF (Shockwave Flash) documents.
//
// Only the parts of the format needed to reproduce the vector graphics of
// an animation are interpreted: shapes, sprites and the display list
// operations.  All other tags are kept as [Raw] tags.  ActionScript is
// ignored.
package swf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"

	"seehuhn.de/go/assetgen"
)

// Document is a parsed SWF file.
type Document struct {
	Version   int
	FrameSize Rect
	FrameRate float64 // frames per second

	// Tags is the complete top-level tag stream, including ShowFrame tags.
	Tags []Tag

	// Characters maps character ids to their definitions, including
	// definitions nested inside sprites.
	Characters map[uint16]Character

	Timeline

	decode func([]byte) string
}

const maxFileSize = 256 << 20

var (
	errSignature  = errors.New("missing SWF signature")
	errLZMA       = errors.New("LZMA compressed SWF files are not supported")
	errNesting    = errors.New("nested sprite definition")
	errDuplicated = errors.New("duplicate character id")
)

// Read parses a SWF document from r.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxFileSize))
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses a SWF document held in memory.
// Errors are of type *assetgen.ParseError.
func Parse(data []byte) (*Document, error) {
	if len(data) < 8 {
		return nil, &assetgen.ParseError{Format: "SWF", Err: errSignature}
	}
	sig := string(data[:3])
	version := int(data[3])
	fileLength := binary.LittleEndian.Uint32(data[4:8])

	var body []byte
	switch sig {
	case "FWS":
		body = data[8:]
	case "CWS":
		zr, err := zlib.NewReader(bytes.NewReader(data[8:]))
		if err != nil {
			return nil, &assetgen.ParseError{Format: "SWF", Pos: 8, Err: err}
		}
		body, err = io.ReadAll(io.LimitReader(zr, maxFileSize))
		zr.Close()
		if err != nil {
			return nil, &assetgen.ParseError{Format: "SWF", Pos: 8, Err: err}
		}
	case "ZWS":
		return nil, &assetgen.ParseError{Format: "SWF", Err: errLZMA}
	default:
		return nil, &assetgen.ParseError{Format: "SWF", Err: errSignature}
	}
	if want := int64(fileLength) - 8; want >= 0 && int64(len(body)) > want {
		body = body[:want]
	}

	d := &Document{
		Version:    version,
		Characters: make(map[uint16]Character),
	}
	if version < 6 {
		dec := charmap.Windows1252.NewDecoder()
		d.decode = func(b []byte) string {
			s, err := dec.Bytes(b)
			if err != nil {
				return string(b)
			}
			return string(s)
		}
	} else {
		d.decode = func(b []byte) string { return string(b) }
	}

	r := newReader(body, 8)
	d.FrameSize = r.rect()
	d.FrameRate = float64(r.u16()) / 256
	d.FrameCount = int(r.u16())
	if r.err != nil {
		return nil, &assetgen.ParseError{Format: "SWF", Pos: r.offset(), Err: r.err}
	}

	tags, frames, err := d.parseTags(r, false)
	if err != nil {
		return nil, err
	}
	d.Tags = tags
	d.Frames = frames
	return d, nil
}

// parseTags reads a tag stream up to the End tag or the end of the data.
// It returns the complete list of tags, and the control tags grouped by
// frame.
func (d *Document) parseTags(r *reader, inSprite bool) ([]Tag, [][]Tag, error) {
	var tags []Tag
	var frames [][]Tag
	var current []Tag
	for r.remaining() > 0 {
		start := r.offset()
		head := r.u16()
		code := Code(head >> 6)
		length := int(head & 0x3F)
		if length == 0x3F {
			length = int(r.u32())
		}
		data := r.bytes(length)
		if r.err != nil {
			return nil, nil, &assetgen.ParseError{Format: "SWF", Pos: start, Err: r.err}
		}
		if code == CodeEnd {
			break
		}

		bodyPos := r.offset() - int64(length)
		tag, err := d.parseTag(code, data, bodyPos, inSprite)
		if perr := (*assetgen.ParseError)(nil); errors.As(err, &perr) {
			return nil, nil, err
		} else if err != nil {
			return nil, nil, &assetgen.ParseError{
				Format: "SWF",
				Pos:    start,
				Err:    fmt.Errorf("%s tag: %w", code, err),
			}
		}
		tags = append(tags, tag)

		switch tag := tag.(type) {
		case ShowFrame:
			frames = append(frames, current)
			current = nil
		case Character:
			id := tag.CharacterID()
			if _, seen := d.Characters[id]; seen {
				return nil, nil, &assetgen.ParseError{
					Format: "SWF",
					Pos:    start,
					Err:    fmt.Errorf("%w %d", errDuplicated, id),
				}
			}
			d.Characters[id] = tag
		default:
			current = append(current, tag)
		}
	}
	if len(current) > 0 {
		frames = append(frames, current)
	}
	return tags, frames, nil
}

func (d *Document) parseTag(code Code, data []byte, pos int64, inSprite bool) (Tag, error) {
	r := newReader(data, pos)
	switch code {
	case CodeShowFrame:
		return ShowFrame{}, nil
	case CodeDefineShape, CodeDefineShape2, CodeDefineShape3, CodeDefineShape4:
		version := map[Code]int{
			CodeDefineShape:  1,
			CodeDefineShape2: 2,
			CodeDefineShape3: 3,
			CodeDefineShape4: 4,
		}[code]
		return parseShape(r, version)
	case CodeDefineSprite:
		if inSprite {
			return nil, errNesting
		}
		s := &Sprite{}
		s.ID = r.u16()
		s.FrameCount = int(r.u16())
		if r.err != nil {
			return nil, r.err
		}
		_, frames, err := d.parseTags(r, true)
		if err != nil {
			return nil, err
		}
		s.Frames = frames
		return s, nil
	case CodePlaceObject2:
		return parsePlaceObject(r, 2, d.decode)
	case CodePlaceObject3:
		return parsePlaceObject(r, 3, d.decode)
	case CodeRemoveObject:
		t := &RemoveObject{Version: 1}
		t.CharacterID = r.u16()
		t.Depth = r.u16()
		return t, r.err
	case CodeRemoveObject2:
		t := &RemoveObject{Version: 2}
		t.Depth = r.u16()
		return t, r.err
	case CodeFrameLabel:
		t := &FrameLabel{Name: d.decode(r.cstring())}
		return t, r.err
	case CodeSetBackgroundColor:
		t := &SetBackgroundColor{Color: r.rgb()}
		return t, r.err
	case CodeFileAttributes:
		t := &FileAttributes{Flags: r.u32()}
		return t, r.err
	}

	raw := Raw{Type: code, Data: data}
	if definesCharacter[code] && len(data) >= 2 {
		return &Unsupported{Raw: raw, ID: binary.LittleEndian.Uint16(data)}, nil
	}
	return &raw, nil
}
