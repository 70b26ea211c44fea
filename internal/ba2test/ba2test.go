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

// Package ba2test writes small BA2 archives for use in tests.
package ba2test

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
)

// Entry is a file to be stored in an archive.
type Entry struct {
	Name     string
	Data     []byte
	Compress bool
}

// General returns a general ("GNRL") archive of the given version
// containing the given files.  Supported versions are 1, 2, 3, 7 and 8.
func General(version uint32, files ...Entry) []byte {
	headerSize := 24
	switch version {
	case 2:
		headerSize += 8
	case 3:
		headerSize += 12
	}
	dataStart := headerSize + 36*len(files)

	var blobs [][]byte
	var records []byte
	pos := dataStart
	for _, f := range files {
		blob := f.Data
		packed := 0
		if f.Compress {
			buf := &bytes.Buffer{}
			zw := zlib.NewWriter(buf)
			zw.Write(f.Data)
			zw.Close()
			blob = buf.Bytes()
			packed = len(blob)
		}
		blobs = append(blobs, blob)

		rec := make([]byte, 36)
		copy(rec[4:8], extension(f.Name))
		binary.LittleEndian.PutUint64(rec[16:24], uint64(pos))
		binary.LittleEndian.PutUint32(rec[24:28], uint32(packed))
		binary.LittleEndian.PutUint32(rec[28:32], uint32(len(f.Data)))
		binary.LittleEndian.PutUint32(rec[32:36], 0xBAADF00D)
		records = append(records, rec...)
		pos += len(blob)
	}

	out := make([]byte, headerSize)
	copy(out, "BTDX")
	binary.LittleEndian.PutUint32(out[4:8], version)
	copy(out[8:12], "GNRL")
	binary.LittleEndian.PutUint32(out[12:16], uint32(len(files)))
	binary.LittleEndian.PutUint64(out[16:24], uint64(pos))
	if version == 2 || version == 3 {
		binary.LittleEndian.PutUint32(out[24:28], 1)
	}
	out = append(out, records...)
	for _, blob := range blobs {
		out = append(out, blob...)
	}
	for _, f := range files {
		out = binary.LittleEndian.AppendUint16(out, uint16(len(f.Name)))
		out = append(out, f.Name...)
	}
	return out
}

func extension(name string) []byte {
	ext := make([]byte, 4)
	if i := bytes.LastIndexByte([]byte(name), '.'); i >= 0 {
		copy(ext, name[i+1:])
	}
	return ext
}
