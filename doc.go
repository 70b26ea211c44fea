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

// Package assetgen contains the types shared by the stages of the asset
// generator.
//
// The generator reads SWF animations from a Bethesda BA2 archive, rasterizes
// selected frames into a single-row atlas image, and describes the atlas as
// a bitmap font in the AngelCode BMFont text format.  The stages live in
// sub-packages:
//
//	locate    find the game installation through the Steam metadata
//	ba2       extract files from BA2 archives
//	swf       parse SWF documents and replay their timelines
//	render    render SWF frames as vector images
//	atlas     pack rendered frames into an atlas image
//	quantize  reduce an atlas to four gray levels
//	bmfont    write and read BMFont descriptors
//
// This package defines the [Frame] and [FrameSource] types which connect a
// renderer to the atlas packer, the error types used by all stages, and the
// fixed [Config] of the command line tool.
package assetgen
