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

package buildinfo

import (
	"runtime/debug"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	cases := []struct {
		main     debug.Module
		settings []debug.BuildSetting
		want     string
	}{
		{
			main: debug.Module{Path: "seehuhn.de/go/assetgen", Version: "v0.2.1"},
			want: "seehuhn.de/go/assetgen v0.2.1",
		},
		{
			main: debug.Module{Path: "seehuhn.de/go/assetgen", Version: "(devel)"},
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef"},
				{Key: "vcs.modified", Value: "true"},
			},
			want: "seehuhn.de/go/assetgen 01234567+dirty",
		},
		{
			main: debug.Module{Path: "seehuhn.de/go/assetgen", Version: "(devel)"},
			settings: []debug.BuildSetting{
				{Key: "vcs.modified", Value: "true"},
			},
			want: "seehuhn.de/go/assetgen",
		},
	}
	for _, c := range cases {
		info := fromBuildInfo(&debug.BuildInfo{Main: c.main, Settings: c.settings})
		if got := info.String(); got != c.want {
			t.Errorf("got %q, want %q", got, c.want)
		}
	}
}
