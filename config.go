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

// Config holds the constants which identify the input data and the
// output files of the generator.
type Config struct {
	// AppID is the Steam application id of the game.
	AppID string

	// Archive is the path of the BA2 archive, relative to the game's
	// installation directory.
	Archive string

	Body Sheet
	Head Sheet

	// Scale is the number of atlas pixels per document unit.
	Scale float64

	// FontFile is the name of the BMFont descriptor written by the tool.
	FontFile string
}

// Sheet describes one atlas page of the generated font.
type Sheet struct {
	// Entry is a glob pattern selecting the SWF document in the archive.
	Entry string

	// FrameCount, if non-zero, is the number of frames the document is
	// expected to have.
	FrameCount int

	// Frames lists the frames to include, in glyph order.
	Frames []int

	// FirstChar is the character code of the first glyph on the page.
	FirstChar rune

	// Image is the file name of the atlas image.
	Image string
}

// DefaultConfig returns the configuration for the Fallout 4 Pip-Boy
// condition display.
func DefaultConfig() *Config {
	bodyFrames := make([]int, 8)
	for i := range bodyFrames {
		bodyFrames[i] = 4 * i
	}
	return &Config{
		AppID:   "377160",
		Archive: "Data/Fallout4 - Interface.ba2",
		Body: Sheet{
			Entry:      "Condition_Body_0.swf",
			FrameCount: 32,
			Frames:     bodyFrames,
			FirstChar:  '0',
			Image:      "body.png",
		},
		Head: Sheet{
			Entry:     "Condition_Head.swf",
			Frames:    []int{0, 1, 8},
			FirstChar: 'a',
			Image:     "head.png",
		},
		Scale:    1,
		FontFile: "body.fnt",
	}
}
