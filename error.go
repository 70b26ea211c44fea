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

import (
	"strconv"
)

// LocatorError indicates that the host system lacks the metadata needed
// to find the game installation.
type LocatorError struct {
	Msg string
	Err error
}

func (err *LocatorError) Error() string {
	msg := "cannot locate game installation"
	if err.Msg != "" {
		msg += ": " + err.Msg
	}
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *LocatorError) Unwrap() error {
	return err.Err
}

// NotFoundError indicates that a named item, for example an archive entry
// or an installed application, does not exist.
type NotFoundError struct {
	Kind string // what was searched for, e.g. "archive entry"
	Name string
}

func (err *NotFoundError) Error() string {
	return err.Kind + " " + strconv.Quote(err.Name) + " not found"
}

// ParseError indicates that an archive or document could not be parsed.
type ParseError struct {
	Format string // "BA2", "SWF", ...
	Pos    int64
	Err    error
}

func (err *ParseError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	tail := ""
	if err.Pos > 0 {
		tail = " (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
	}
	return "malformed " + err.Format + " data" + middle + tail
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

// RenderError indicates that a frame could not be rendered.
type RenderError struct {
	Frame int
	Err   error
}

func (err *RenderError) Error() string {
	msg := "cannot render frame " + strconv.Itoa(err.Frame)
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *RenderError) Unwrap() error {
	return err.Err
}

// IOError indicates that a file could not be read or written.
type IOError struct {
	Op   string // "read" or "write"; empty means "write"
	Path string
	Err  error
}

func (err *IOError) Error() string {
	op := err.Op
	if op == "" {
		op = "write"
	}
	return "cannot " + op + " " + strconv.Quote(err.Path) + ": " + err.Err.Error()
}

func (err *IOError) Unwrap() error {
	return err.Err
}
