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

package bitio_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kiproto/pclass/bitio"
	"github.com/kiproto/pclass/wireerr"
)

func TestWriteReadRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    uint64
		n    int
	}{
		{"1 bit set", 1, 1},
		{"1 bit clear", 0, 1},
		{"4 bit", 0xA, 4},
		{"24 bit", 0x040506, 24},
		{"32 bit", 0x0708090A, 32},
		{"64 bit", 0x0B0C0D0E0F101112, 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			buf := bitio.NewBuffer(nil)
			s := bitio.NewStream(buf)
			require.NoError(t, s.WriteBits(tt.v, tt.n))
			require.Equal(t, int64(tt.n), s.Tell())

			require.NoError(t, s.Seek(0))
			got, err := s.ReadBits(tt.n)
			require.NoError(t, err)

			mask := uint64(1)<<uint(tt.n) - 1
			if tt.n == 64 {
				mask = ^uint64(0)
			}
			require.Equal(t, tt.v&mask, got)
		})
	}
}

func TestByteAlignedIntIsLittleEndian(t *testing.T) {
	t.Parallel()

	buf := bitio.NewBuffer(nil)
	s := bitio.NewStream(buf)
	require.NoError(t, s.WriteBits(0x0708090A, 32))

	require.Equal(t, []byte{0x0A, 0x09, 0x08, 0x07}, buf.Bytes())
}

func TestMisalignedBytesFail(t *testing.T) {
	t.Parallel()

	buf := bitio.NewBuffer(nil)
	s := bitio.NewStream(buf)
	require.NoError(t, s.WriteBits(1, 4))

	err := s.WriteBytes([]byte{0x01}, 1)
	require.Error(t, err)
	var encErr *wireerr.EncodingError
	require.ErrorAs(t, err, &encErr)
	require.Equal(t, wireerr.Misaligned, encErr.Kind)
}

func TestAlignToByteZeroFills(t *testing.T) {
	t.Parallel()

	buf := bitio.NewBuffer(nil)
	s := bitio.NewStream(buf)
	require.NoError(t, s.WriteBits(0x1, 4))
	s.AlignToByte()
	require.Equal(t, int64(8), s.Tell())
	require.Equal(t, []byte{0x01}, buf.Bytes())
}

func TestSeekTellAndBytes(t *testing.T) {
	t.Parallel()

	buf := bitio.NewBuffer(nil)
	s := bitio.NewStream(buf)
	require.NoError(t, s.WriteBytes([]byte("hello"), 5))
	require.Equal(t, int64(40), s.Tell())

	require.NoError(t, s.Seek(8))
	got, err := s.ReadBytes(4)
	require.NoError(t, err)
	require.Equal(t, []byte("ello"), got)
}

func TestReadPastEndIsTruncated(t *testing.T) {
	t.Parallel()

	buf := bitio.NewBuffer([]byte{0xFF})
	s := bitio.NewStream(buf)
	require.NoError(t, s.Seek(4))

	_, err := s.ReadBits(8)
	require.Error(t, err)
	var encErr *wireerr.EncodingError
	require.ErrorAs(t, err, &encErr)
	require.Equal(t, wireerr.Truncated, encErr.Kind)
}

func TestBitsToBytes(t *testing.T) {
	t.Parallel()

	require.Equal(t, int64(0), bitio.BitsToBytes(0))
	require.Equal(t, int64(1), bitio.BitsToBytes(1))
	require.Equal(t, int64(1), bitio.BitsToBytes(8))
	require.Equal(t, int64(2), bitio.BitsToBytes(9))
}
