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

// Buffer is growable byte storage backing a [Stream]. The zero value is an
// empty, ready-to-use buffer.
type Buffer struct {
	data []byte
}

// NewBuffer wraps existing bytes for reading. The returned buffer shares
// storage with data; only writes that extend past cap(data) copy on grow.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Bytes returns the buffer's current contents. The slice is owned by the
// buffer and must not be retained past the next write.
func (b *Buffer) Bytes() []byte { return b.data }

// Size returns the number of bytes currently stored.
func (b *Buffer) Size() int { return len(b.data) }

// Cap returns the buffer's current capacity in bytes.
func (b *Buffer) Cap() int { return cap(b.data) }

// grow ensures the buffer is at least n bytes long, zero-filling any new
// space, and returns the underlying slice.
func (b *Buffer) grow(n int) []byte {
	if n <= len(b.data) {
		return b.data
	}
	if n <= cap(b.data) {
		b.data = b.data[:n]
		return b.data
	}
	next := make([]byte, n, growCap(cap(b.data), n))
	copy(next, b.data)
	b.data = next
	return b.data
}

// growCap picks a geometric capacity at least as large as n.
func growCap(current, need int) int {
	if current == 0 {
		current = 64
	}
	for current < need {
		current *= 2
	}
	return current
}
