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
	"image/color"
	"strconv"
)

// Code is a SWF tag type.
type Code uint16

// These are the tag types interpreted by this package.
const (
	CodeEnd                Code = 0
	CodeShowFrame          Code = 1
	CodeDefineShape        Code = 2
	CodeRemoveObject       Code = 5
	CodeSetBackgroundColor Code = 9
	CodeDefineShape2       Code = 22
	CodePlaceObject2       Code = 26
	CodeRemoveObject2      Code = 28
	CodeDefineShape3       Code = 32
	CodeDefineSprite       Code = 39
	CodeFrameLabel         Code = 43
	CodeFileAttributes     Code = 69
	CodePlaceObject3       Code = 70
	CodeDefineShape4       Code = 83
)

var codeNames = map[Code]string{
	0:  "End",
	1:  "ShowFrame",
	2:  "DefineShape",
	4:  "PlaceObject",
	5:  "RemoveObject",
	6:  "DefineBits",
	7:  "DefineButton",
	8:  "JPEGTables",
	9:  "SetBackgroundColor",
	10: "DefineFont",
	11: "DefineText",
	12: "DoAction",
	13: "DefineFontInfo",
	14: "DefineSound",
	20: "DefineBitsLossless",
	21: "DefineBitsJPEG2",
	22: "DefineShape2",
	24: "Protect",
	26: "PlaceObject2",
	28: "RemoveObject2",
	32: "DefineShape3",
	33: "DefineText2",
	34: "DefineButton2",
	35: "DefineBitsJPEG3",
	36: "DefineBitsLossless2",
	37: "DefineEditText",
	39: "DefineSprite",
	43: "FrameLabel",
	46: "DefineMorphShape",
	48: "DefineFont2",
	56: "ExportAssets",
	57: "ImportAssets",
	59: "DoInitAction",
	60: "DefineVideoStream",
	62: "DefineFontInfo2",
	65: "ScriptLimits",
	69: "FileAttributes",
	70: "PlaceObject3",
	71: "ImportAssets2",
	73: "DefineFontAlignZones",
	74: "CSMTextSettings",
	75: "DefineFont3",
	76: "SymbolClass",
	77: "Metadata",
	78: "DefineScalingGrid",
	82: "DoABC",
	83: "DefineShape4",
	84: "DefineMorphShape2",
	86: "DefineSceneAndFrameLabelData",
	87: "DefineBinaryData",
	88: "DefineFontName",
	90: "DefineBitsJPEG4",
	91: "DefineFont4",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "Tag" + strconv.Itoa(int(c))
}

// definesCharacter lists the tags, not otherwise interpreted by this package,
// whose body starts with a character id.
var definesCharacter = map[Code]bool{
	6: true, 7: true, 10: true, 11: true, 14: true, 20: true, 21: true,
	33: true, 34: true, 35: true, 36: true, 37: true, 46: true, 48: true,
	60: true, 75: true, 84: true, 87: true, 90: true, 91: true,
}

// Tag is an element of the tag stream of a SWF document or sprite.
type Tag interface {
	Code() Code
}

// Raw is a tag which is not interpreted by this package.
type Raw struct {
	Type Code
	Data []byte
}

func (t *Raw) Code() Code {
	return t.Type
}

func (t *Raw) String() string {
	return fmt.Sprintf("%s (%d bytes)", t.Type, len(t.Data))
}

// ShowFrame marks the end of a frame.
type ShowFrame struct{}

func (ShowFrame) Code() Code {
	return CodeShowFrame
}

// FrameLabel names the current frame.
type FrameLabel struct {
	Name string
}

func (*FrameLabel) Code() Code {
	return CodeFrameLabel
}

// SetBackgroundColor sets the background color of the document.
type SetBackgroundColor struct {
	Color color.NRGBA
}

func (*SetBackgroundColor) Code() Code {
	return CodeSetBackgroundColor
}

// FileAttributes holds the file attribute flags of the document.
type FileAttributes struct {
	Flags uint32
}

func (*FileAttributes) Code() Code {
	return CodeFileAttributes
}

// Character is a tag which defines a character in the dictionary.
type Character interface {
	Tag
	CharacterID() uint16
}

// Unsupported is a character definition which this package does not
// interpret, for example a bitmap or a text field.
type Unsupported struct {
	Raw
	ID uint16
}

func (t *Unsupported) CharacterID() uint16 {
	return t.ID
}
