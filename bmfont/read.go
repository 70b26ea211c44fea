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

package bmfont

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"seehuhn.de/go/assetgen"
)

// Font is the content of a font descriptor.
type Font struct {
	Face   string
	Size   int
	Common Common
	Pages  []string // file names, indexed by page id
	Chars  []Char
}

var (
	errSyntax = errors.New("syntax error")
	errCount  = errors.New("wrong number of characters")
)

// Read parses a font descriptor in BMFont text format.
// Unknown lines and keys are ignored.
func Read(r io.Reader) (*Font, error) {
	res := &Font{}
	declared := -1

	var pos int64
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		start := pos
		pos += int64(len(line)) + 1

		tag, attrs, err := splitLine(line)
		if err != nil {
			return nil, &assetgen.ParseError{Format: "BMFont", Pos: start, Err: err}
		}
		val := func(key string) int {
			if err != nil {
				return 0
			}
			s, ok := attrs[key]
			if !ok {
				err = fmt.Errorf("%s: missing %q", tag, key)
				return 0
			}
			var x int
			x, err = strconv.Atoi(s)
			if err != nil {
				err = fmt.Errorf("%s: invalid %q: %w", tag, key, err)
			}
			return x
		}

		switch tag {
		case "info":
			res.Face = attrs["face"]
			res.Size = val("size")
		case "common":
			res.Common = Common{
				LineHeight: val("lineHeight"),
				Base:       val("base"),
				ScaleW:     val("scaleW"),
				ScaleH:     val("scaleH"),
			}
		case "page":
			id := val("id")
			if err == nil && id != len(res.Pages) {
				err = fmt.Errorf("page: unexpected id %d", id)
			}
			res.Pages = append(res.Pages, attrs["file"])
		case "chars":
			declared = val("count")
		case "char":
			c := Char{
				ID:       rune(val("id")),
				X:        val("x"),
				Y:        val("y"),
				Width:    val("width"),
				Height:   val("height"),
				XOffset:  val("xoffset"),
				YOffset:  val("yoffset"),
				XAdvance: val("xadvance"),
				Page:     val("page"),
				Chnl:     val("chnl"),
			}
			res.Chars = append(res.Chars, c)
		}
		if err != nil {
			return nil, &assetgen.ParseError{Format: "BMFont", Pos: start, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if declared >= 0 && declared != len(res.Chars) {
		return nil, &assetgen.ParseError{
			Format: "BMFont",
			Err:    fmt.Errorf("%w: %d declared, %d found", errCount, declared, len(res.Chars)),
		}
	}
	return res, nil
}

// splitLine splits a line into the tag and its key=value attributes.
// Values may be enclosed in double quotes.
func splitLine(line string) (string, map[string]string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil, nil
	}
	tag, rest, _ := strings.Cut(line, " ")
	attrs := make(map[string]string)
	for {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			break
		}
		key, tail, ok := strings.Cut(rest, "=")
		if !ok || key == "" || strings.ContainsAny(key, " \t") {
			return "", nil, errSyntax
		}
		var value string
		if strings.HasPrefix(tail, `"`) {
			end := strings.IndexByte(tail[1:], '"')
			if end < 0 {
				return "", nil, errSyntax
			}
			value, rest = tail[1:end+1], tail[end+2:]
		} else {
			value, rest, _ = strings.Cut(tail, " ")
		}
		attrs[key] = value
	}
	return tag, attrs, nil
}
