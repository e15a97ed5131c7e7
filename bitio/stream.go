// Copyright 2024 The Kiproto Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bitio

import (
	"fmt"

	"github.com/kiproto/pclass/wireerr"
)

// Stream is a bit-addressed cursor over a [Buffer]. Bits are packed
// little-endian within a byte (bit 0 of the cursor's current byte is its
// least significant bit) and bytes are packed little-endian across the
// buffer, so a byte-aligned WriteBits(v, 32) is bit-for-bit identical to
// writing the four little-endian bytes of v.
type Stream struct {
	buffer *Buffer
	pos    int64 // absolute bit position
}

// NewStream returns a stream positioned at bit 0 of buffer.
func NewStream(buffer *Buffer) *Stream {
	return &Stream{buffer: buffer}
}

// Buffer returns the stream's underlying buffer.
func (s *Stream) Buffer() *Buffer { return s.buffer }

// BitsToBytes rounds a bit position up to the number of bytes needed to
// hold it.
func BitsToBytes(bitPos int64) int64 {
	return (bitPos + 7) / 8
}

// Tell returns the current cursor position, in bits.
func (s *Stream) Tell() int64 { return s.pos }

// Seek moves the cursor to an absolute bit position. Seeking past the end
// of the buffer is allowed; the next write grows the buffer to cover it.
func (s *Stream) Seek(bitPos int64) error {
	if bitPos < 0 {
		return fmt.Errorf("pclass/bitio: negative seek position %d", bitPos)
	}
	s.pos = bitPos
	return nil
}

// AlignToByte rounds the cursor up to the next byte boundary. If this
// extends the buffer, the padding bits are zero-filled.
func (s *Stream) AlignToByte() {
	rem := s.pos & 7
	if rem == 0 {
		return
	}
	newPos := s.pos + (8 - rem)
	if needed := int(BitsToBytes(newPos)); needed > s.buffer.Size() {
		s.buffer.grow(needed)
	}
	s.pos = newPos
}

// WriteBits writes the low n bits of v, 1 <= n <= 64, advancing the cursor
// by exactly n bits.
func (s *Stream) WriteBits(v uint64, n int) error {
	if n < 1 || n > 64 {
		return fmt.Errorf("pclass/bitio: WriteBits: n=%d out of range [1,64]", n)
	}
	end := s.pos + int64(n)
	buf := s.buffer.grow(int(BitsToBytes(end)))
	for i := 0; i < n; i++ {
		bitPos := s.pos + int64(i)
		byteIdx := bitPos >> 3
		bitIdx := uint(bitPos & 7)
		if (v>>uint(i))&1 != 0 {
			buf[byteIdx] |= 1 << bitIdx
		} else {
			buf[byteIdx] &^= 1 << bitIdx
		}
	}
	s.pos = end
	return nil
}

// ReadBits reads n bits, 1 <= n <= 64, advancing the cursor by exactly n
// bits, and returns them as the low n bits of the result.
func (s *Stream) ReadBits(n int) (uint64, error) {
	if n < 1 || n > 64 {
		return 0, fmt.Errorf("pclass/bitio: ReadBits: n=%d out of range [1,64]", n)
	}
	end := s.pos + int64(n)
	if end > int64(s.buffer.Size())*8 {
		return 0, &wireerr.EncodingError{Kind: wireerr.Truncated, Offset: s.pos}
	}
	buf := s.buffer.data
	var v uint64
	for i := 0; i < n; i++ {
		bitPos := s.pos + int64(i)
		byteIdx := bitPos >> 3
		bitIdx := uint(bitPos & 7)
		bit := (buf[byteIdx] >> bitIdx) & 1
		v |= uint64(bit) << uint(i)
	}
	s.pos = end
	return v, nil
}

// WriteBytes writes k raw bytes at the cursor, which must be byte-aligned.
func (s *Stream) WriteBytes(bs []byte, k int) error {
	if s.pos&7 != 0 {
		return &wireerr.EncodingError{Kind: wireerr.Misaligned, Offset: s.pos}
	}
	start := s.pos / 8
	buf := s.buffer.grow(int(start) + k)
	copy(buf[start:int(start)+k], bs[:k])
	s.pos += int64(k) * 8
	return nil
}

// ReadBytes reads k raw bytes at the cursor, which must be byte-aligned.
func (s *Stream) ReadBytes(k int) ([]byte, error) {
	if s.pos&7 != 0 {
		return nil, &wireerr.EncodingError{Kind: wireerr.Misaligned, Offset: s.pos}
	}
	start := s.pos / 8
	if int(start)+k > s.buffer.Size() {
		return nil, &wireerr.EncodingError{Kind: wireerr.Truncated, Offset: s.pos}
	}
	out := make([]byte, k)
	copy(out, s.buffer.data[start:int(start)+k])
	s.pos += int64(k) * 8
	return out, nil
}

// Remaining returns the number of bits left before the end of the buffer,
// or a negative number if the cursor is past the end.
func (s *Stream) Remaining() int64 {
	return int64(s.buffer.Size())*8 - s.pos
}
