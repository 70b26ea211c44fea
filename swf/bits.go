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
	"encoding/binary"
	"errors"
	"math"
)

var errTruncated = errors.New("unexpected end of data")

// reader decodes the SWF primitive types from a byte slice.
// Bit fields are read most significant bit first; all byte-sized
// reads first skip to the next byte boundary.
//
// The first error is sticky: once a read fails, all following reads
// return zero values and r.err stays set.
type reader struct {
	buf  []byte
	pos  int  // index of the current byte
	bit  uint // number of bits of buf[pos] already consumed
	base int64
	err  error
}

func newReader(buf []byte, base int64) *reader {
	return &reader{buf: buf, base: base}
}

// offset returns the position of the reader within the file.
func (r *reader) offset() int64 {
	return r.base + int64(r.pos)
}

func (r *reader) align() {
	if r.bit != 0 {
		r.bit = 0
		r.pos++
	}
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *reader) ub(n uint) uint32 {
	var v uint32
	for range n {
		if r.err != nil {
			return 0
		}
		if r.pos >= len(r.buf) {
			r.fail(errTruncated)
			return 0
		}
		b := r.buf[r.pos] >> (7 - r.bit) & 1
		v = v<<1 | uint32(b)
		r.bit++
		if r.bit == 8 {
			r.bit = 0
			r.pos++
		}
	}
	return v
}

func (r *reader) sb(n uint) int32 {
	if n == 0 {
		return 0
	}
	v := r.ub(n)
	if n < 32 && v&(1<<(n-1)) != 0 {
		v |= ^uint32(0) << n
	}
	return int32(v)
}

// fb reads a signed 16.16 fixed point bit field.
func (r *reader) fb(n uint) float64 {
	return float64(r.sb(n)) / 65536
}

func (r *reader) flag() bool {
	return r.ub(1) != 0
}

func (r *reader) bytes(n int) []byte {
	r.align()
	if r.err != nil {
		return nil
	}
	if n < 0 || r.pos+n > len(r.buf) {
		r.fail(errTruncated)
		return nil
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *reader) skip(n int) {
	r.bytes(n)
}

func (r *reader) u8() uint8 {
	b := r.bytes(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) u16() uint16 {
	b := r.bytes(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *reader) u32() uint32 {
	b := r.bytes(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// fixed8 reads a signed 8.8 fixed point number.
func (r *reader) fixed8() float64 {
	return float64(int16(r.u16())) / 256
}

func (r *reader) f32() float32 {
	return math.Float32frombits(r.u32())
}

// cstring reads a zero-terminated string, without the terminator.
func (r *reader) cstring() []byte {
	r.align()
	if r.err != nil {
		return nil
	}
	for i := r.pos; i < len(r.buf); i++ {
		if r.buf[i] == 0 {
			s := r.buf[r.pos:i]
			r.pos = i + 1
			return s
		}
	}
	r.fail(errTruncated)
	return nil
}

func (r *reader) remaining() int {
	r.align()
	if r.pos >= len(r.buf) {
		return 0
	}
	return len(r.buf) - r.pos
}
