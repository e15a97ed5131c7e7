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

// Package wirehash implements the byte-hashing primitive behind the
// "wizard" type-hash calculator: an FxHash-style mix (rotate-left-5,
// multiply by the golden-ratio constant, fold the 128-bit product's high
// and low words) applied over 8-byte chunks of the input, with the
// remaining tail bytes folded in as a final little-endian word.
//
// This is a from-scratch, unsafe-free port of the well known "fxhash"
// mixing function, as used by the teacher repository's Swiss-table hash
// map; it is not a byte-for-byte reproduction of the
// original 32-bit "wizard" type-hash, which is only reachable through the
// reference binary and was not available to verify against. See DESIGN.md
// for that open question.
package wirehash

import (
	"encoding/binary"
	"math/bits"
)

const (
	rotate = 5
	key    = 0x517cc1b727220a95
)

// mix folds n into h using the FxHash combining step.
func mix(h, n uint64) uint64 {
	hi, lo := bits.Mul64(bits.RotateLeft64(h, rotate)^n, key)
	return lo ^ hi
}

// Hash64 computes a 64-bit FxHash-style digest of data.
func Hash64(data []byte) uint64 {
	h := mix(0, uint64(len(data)))

	i := 0
	for ; i+8 <= len(data); i += 8 {
		h = mix(h, binary.LittleEndian.Uint64(data[i:i+8]))
	}

	if tail := data[i:]; len(tail) > 0 {
		var last uint64
		for j, b := range tail {
			last |= uint64(b) << (8 * uint(j))
		}
		h = mix(h, last)
	}

	return h
}

// Hash32 folds [Hash64] down to 32 bits by XOR-ing its two halves. This is
// the hash width the type system's wire format requires.
func Hash32(data []byte) uint32 {
	h := Hash64(data)
	return uint32(h) ^ uint32(h>>32)
}
