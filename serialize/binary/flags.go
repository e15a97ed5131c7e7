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

package binary

// Flags is a bitmask controlling the binary serializer's envelope.
type Flags uint32

const (
	// None writes the object payload with no flags word and no compression.
	None Flags = 0
	// WriteSerializerFlags prepends a 32-bit flags word to the output, read
	// back on decode to recover the flags the encoder used.
	WriteSerializerFlags Flags = 1
	// Compressed zlib-deflates the payload, preceded by a 32-bit
	// little-endian uncompressed-size prefix.
	Compressed Flags = 8
)
