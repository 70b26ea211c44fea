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

// Package ba2 reads Bethesda "BTDX" archives (.ba2 files).
//
// General archives ("GNRL") store arbitrary files, optionally compressed
// with zlib.  Texture archives ("DX10") can be listed, but their content
// cannot be extracted.
//
// Entry names use forward slashes and are compared case-insensitively.
package ba2

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"seehuhn.de/go/assetgen"
)

// Archive types.
const (
	TypeGeneral  = "GNRL"
	TypeTextures = "DX10"
)

const (
	headerSize    = 24
	gnrlEntrySize = 36
	dx10EntrySize = 24
	dx10ChunkSize = 24

	maxFiles    = 1 << 20
	maxFileSize = 1 << 30
)

var (
	errMagic       = errors.New("missing BTDX signature")
	errVersion     = errors.New("unsupported archive version")
	errType        = errors.New("unknown archive type")
	errCompression = errors.New("unsupported compression method")
	errTooMany     = errors.New("too many files")
	errTooLarge    = errors.New("file too large")
	errSize        = errors.New("unpacked size mismatch")
	errTextures    = errors.New("cannot extract files from texture archives")
)

// File is an entry of an archive.
type File struct {
	// Name is the path of the file inside the archive, as stored in the
	// archive.
	Name string

	// Size is the unpacked size of the file in bytes.
	Size int64

	offset int64
	packed int64 // 0 if stored uncompressed
}

// Reader gives access to the files in an archive.
type Reader struct {
	Version uint32
	Type    string

	r      io.ReaderAt
	closer io.Closer
	files  []*File
}

// Open opens the archive with the given file name.
//
// If the file does not exist, the error is a *assetgen.NotFoundError.
func Open(fname string) (*Reader, error) {
	fd, err := os.Open(fname)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &assetgen.NotFoundError{Kind: "archive", Name: fname}
	} else if err != nil {
		return nil, &assetgen.IOError{Op: "read", Path: fname, Err: err}
	}
	r, err := NewReader(fd)
	if err != nil {
		fd.Close()
		return nil, err
	}
	r.closer = fd
	return r, nil
}

// NewReader reads the directory of an archive.
func NewReader(r io.ReaderAt) (*Reader, error) {
	var head [headerSize + 12]byte
	n, err := r.ReadAt(head[:], 0)
	if n < headerSize {
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, &assetgen.ParseError{Format: "BA2", Err: err}
	}
	if string(head[:4]) != "BTDX" {
		return nil, &assetgen.ParseError{Format: "BA2", Err: errMagic}
	}

	res := &Reader{
		Version: binary.LittleEndian.Uint32(head[4:8]),
		Type:    string(head[8:12]),
		r:       r,
	}
	count := binary.LittleEndian.Uint32(head[12:16])
	nameTable := int64(binary.LittleEndian.Uint64(head[16:24]))

	pos := int64(headerSize)
	switch res.Version {
	case 1, 7, 8:
		// pass
	case 2:
		pos += 8
	case 3:
		pos += 12
		if n < headerSize+12 {
			return nil, &assetgen.ParseError{Format: "BA2", Pos: headerSize, Err: io.ErrUnexpectedEOF}
		}
		if method := binary.LittleEndian.Uint32(head[32:36]); method != 0 {
			return nil, &assetgen.ParseError{
				Format: "BA2",
				Pos:    32,
				Err:    fmt.Errorf("%w %d", errCompression, method),
			}
		}
	default:
		return nil, &assetgen.ParseError{
			Format: "BA2",
			Pos:    4,
			Err:    fmt.Errorf("%w %d", errVersion, res.Version),
		}
	}
	if count > maxFiles {
		return nil, &assetgen.ParseError{Format: "BA2", Pos: 12, Err: errTooMany}
	}

	switch res.Type {
	case TypeGeneral:
		err = res.readGeneral(pos, int(count))
	case TypeTextures:
		err = res.readTextures(pos, int(count))
	default:
		err = &assetgen.ParseError{Format: "BA2", Pos: 8, Err: fmt.Errorf("%w %q", errType, res.Type)}
	}
	if err != nil {
		return nil, err
	}

	if nameTable > 0 {
		err = res.readNames(nameTable)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (r *Reader) readAt(buf []byte, pos int64) error {
	n, err := r.r.ReadAt(buf, pos)
	if n == len(buf) {
		return nil
	}
	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return &assetgen.ParseError{Format: "BA2", Pos: pos, Err: err}
}

func (r *Reader) readGeneral(pos int64, count int) error {
	buf := make([]byte, count*gnrlEntrySize)
	if err := r.readAt(buf, pos); err != nil {
		return err
	}
	r.files = make([]*File, count)
	for i := range r.files {
		rec := buf[i*gnrlEntrySize : (i+1)*gnrlEntrySize]
		f := &File{
			offset: int64(binary.LittleEndian.Uint64(rec[16:24])),
			packed: int64(binary.LittleEndian.Uint32(rec[24:28])),
			Size:   int64(binary.LittleEndian.Uint32(rec[28:32])),
		}
		if f.Size > maxFileSize || f.packed > maxFileSize {
			return &assetgen.ParseError{
				Format: "BA2",
				Pos:    pos + int64(i*gnrlEntrySize),
				Err:    errTooLarge,
			}
		}
		r.files[i] = f
	}
	return nil
}

// readTextures reads the directory of a texture archive.  Only the sizes
// are recorded, since the files cannot be extracted.
func (r *Reader) readTextures(pos int64, count int) error {
	r.files = make([]*File, count)
	var rec [dx10EntrySize]byte
	for i := range r.files {
		if err := r.readAt(rec[:], pos); err != nil {
			return err
		}
		numChunks := int(rec[13])
		pos += dx10EntrySize

		chunks := make([]byte, numChunks*dx10ChunkSize)
		if err := r.readAt(chunks, pos); err != nil {
			return err
		}
		pos += int64(len(chunks))

		f := &File{}
		for j := range numChunks {
			f.Size += int64(binary.LittleEndian.Uint32(chunks[j*dx10ChunkSize+12:]))
		}
		r.files[i] = f
	}
	return nil
}

func (r *Reader) readNames(pos int64) error {
	var lenBuf [2]byte
	for _, f := range r.files {
		if err := r.readAt(lenBuf[:], pos); err != nil {
			return err
		}
		nameLen := binary.LittleEndian.Uint16(lenBuf[:])
		name := make([]byte, nameLen)
		if err := r.readAt(name, pos+2); err != nil {
			return err
		}
		f.Name = string(name)
		pos += 2 + int64(nameLen)
	}
	return nil
}

// Close closes the underlying file, if the archive was opened using
// [Open].
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Files returns the entries of the archive, in archive order.
func (r *Reader) Files() []*File {
	return r.files
}

// normalize converts an entry name into the form used for comparisons.
func normalize(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, `\`, "/"))
}

// Glob returns the entries whose names match pattern, in archive order.
// The pattern syntax is that of [path.Match].  Matching is
// case-insensitive.  A pattern which contains no slash is matched against
// the last element of the entry names.
func (r *Reader) Glob(pattern string) ([]*File, error) {
	pattern = normalize(pattern)
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, &assetgen.ParseError{Format: "glob", Err: fmt.Errorf("%q: %w", pattern, err)}
	}
	baseOnly := !strings.Contains(pattern, "/")

	var res []*File
	for _, f := range r.files {
		name := normalize(f.Name)
		if baseOnly {
			name = path.Base(name)
		}
		if ok, _ := path.Match(pattern, name); ok {
			res = append(res, f)
		}
	}
	return res, nil
}

// ReadFile returns the contents of the entry with the given name.
func (r *Reader) ReadFile(name string) ([]byte, error) {
	want := normalize(name)
	for _, f := range r.files {
		if normalize(f.Name) == want {
			return r.read(f)
		}
	}
	return nil, &assetgen.NotFoundError{Kind: "archive entry", Name: name}
}

// Extract returns the contents of the first entry which matches pattern.
// See [Reader.Glob] for the pattern syntax.
func (r *Reader) Extract(pattern string) ([]byte, error) {
	files, err := r.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, &assetgen.NotFoundError{Kind: "archive entry", Name: pattern}
	}
	return r.read(files[0])
}

func (r *Reader) read(f *File) ([]byte, error) {
	if r.Type != TypeGeneral {
		return nil, fmt.Errorf("%s: %w", f.Name, errTextures)
	}

	if f.packed == 0 {
		data := make([]byte, f.Size)
		if err := r.readAt(data, f.offset); err != nil {
			return nil, err
		}
		return data, nil
	}

	packed := make([]byte, f.packed)
	if err := r.readAt(packed, f.offset); err != nil {
		return nil, err
	}
	zr, err := zlib.NewReader(bytes.NewReader(packed))
	if err != nil {
		return nil, &assetgen.ParseError{Format: "BA2", Pos: f.offset, Err: err}
	}
	defer zr.Close()
	data, err := io.ReadAll(io.LimitReader(zr, f.Size+1))
	if err != nil {
		return nil, &assetgen.ParseError{Format: "BA2", Pos: f.offset, Err: err}
	}
	if int64(len(data)) != f.Size {
		return nil, &assetgen.ParseError{
			Format: "BA2",
			Pos:    f.offset,
			Err:    fmt.Errorf("%s: %w (%d != %d)", f.Name, errSize, len(data), f.Size),
		}
	}
	return data, nil
}
