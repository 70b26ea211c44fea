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

// Package buildinfo reports which version of the module a binary was
// built from.
package buildinfo

import (
	"runtime/debug"
)

// Info identifies the build of the running binary.
type Info struct {
	Path    string // module path
	Version string // module version or VCS revision, empty if unknown
}

// Read returns the build information embedded in the running binary.
func Read() Info {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Info{}
	}
	return fromBuildInfo(info)
}

func fromBuildInfo(info *debug.BuildInfo) Info {
	res := Info{Path: info.Main.Path}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		res.Version = v
		return res
	}

	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if len(rev) > 8 {
		rev = rev[:8]
	}
	if rev != "" && dirty {
		rev += "+dirty"
	}
	res.Version = rev
	return res
}

// String formats the build information as "path version".
func (i Info) String() string {
	if i.Version == "" {
		return i.Path
	}
	return i.Path + " " + i.Version
}

// Short returns a version string for a command line tool, e.g.
// "assetgen (seehuhn.de/go/assetgen v0.1.0)".
func Short(toolName string) string {
	info := Read()
	if info.Path == "" || info.Version == "" {
		return toolName
	}
	return toolName + " (" + info.String() + ")"
}
