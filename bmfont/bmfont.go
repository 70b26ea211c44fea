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

// Package bmfont writes and reads bitmap font descriptors in the text
// format of AngelCode's BMFont tool.
//
// A descriptor refers to one or more atlas images ("pages").  Every frame
// packed into an atlas becomes one character of the font.  Character codes
// are assigned sequentially, starting at a per-page first character.
package bmfont

import (
	"fmt"
	"io"
	"strings"

	"seehuhn.de/go/assetgen/atlas"
)

// These constants describe the font as a whole.  They are the same for
// every descriptor written by this package.
const (
	Face     = "Condition"
	Size     = 32
	XAdvance = 32

	// AllChannels is the chnl value for glyphs which use all four color
	// channels of the page image.
	AllChannels = 15
)

// Page is one atlas image together with the placements of its glyphs.
type Page struct {
	// File is the file name of the atlas image.
	File string

	// FirstChar is the character code of the first glyph.
	FirstChar rune

	// Glyphs are the placements of the glyphs in the atlas, in character
	// code order.
	Glyphs []atlas.Placement
}

// Common holds the values of the "common" line.
type Common struct {
	LineHeight int
	Base       int

	// ScaleW and ScaleH give the size of the page images.
	ScaleW, ScaleH int
}

// Char describes one character of the font.
type Char struct {
	ID            rune
	X, Y          int
	Width, Height int
	XOffset       int
	YOffset       int
	XAdvance      int
	Page          int
	Chnl          int
}

// Chars converts the glyph placements of all pages into character
// records.  The offsets are made relative to the smallest offset on each
// page, so that on every page the minimal x and y offsets are 0.
func Chars(pages []Page) []Char {
	var res []Char
	for id, page := range pages {
		if len(page.Glyphs) == 0 {
			continue
		}
		minX, minY := page.Glyphs[0].SourceX, page.Glyphs[0].SourceY
		for _, g := range page.Glyphs[1:] {
			minX = min(minX, g.SourceX)
			minY = min(minY, g.SourceY)
		}
		for i, g := range page.Glyphs {
			res = append(res, Char{
				ID:       page.FirstChar + rune(i),
				X:        g.CanvasX,
				Y:        g.CanvasY,
				Width:    g.Width,
				Height:   g.Height,
				XOffset:  g.SourceX - minX,
				YOffset:  g.SourceY - minY,
				XAdvance: XAdvance,
				Page:     id,
				Chnl:     AllChannels,
			})
		}
	}
	return res
}

// Format returns the text of the font descriptor.
func Format(pages []Page, common Common) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "info face=\"%s\" size=%d bold=1 italic=1 charset=\"\" unicode=1"+
		" stretchH=100 smooth=1 aa=4 padding=0,0,0,0 spacing=0,0 outline=0\n",
		Face, Size)
	fmt.Fprintf(b, "common lineHeight=%d base=%d scaleW=%d scaleH=%d pages=%d"+
		" packed=0 alphaChnl=0 redChnl=0 greenChnl=0 blueChnl=0\n",
		common.LineHeight, common.Base, common.ScaleW, common.ScaleH, len(pages))
	for id, page := range pages {
		fmt.Fprintf(b, "page id=%d file=\"%s\"\n", id, page.File)
	}

	chars := Chars(pages)
	fmt.Fprintf(b, "chars count=%d\n", len(chars))
	for _, c := range chars {
		fmt.Fprintf(b, "char id=%d x=%d y=%d width=%d height=%d xoffset=%d yoffset=%d"+
			" xadvance=%d page=%d chnl=%d\n",
			c.ID, c.X, c.Y, c.Width, c.Height, c.XOffset, c.YOffset,
			c.XAdvance, c.Page, c.Chnl)
	}
	return b.String()
}

// Write writes the font descriptor to w.
func Write(w io.Writer, pages []Page, common Common) error {
	_, err := io.WriteString(w, Format(pages, common))
	return err
}
