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

// Package bitio provides a growable byte buffer and a bit-addressed cursor
// over it.
//
// A [Buffer] is plain storage: it grows on demand and reports its size in
// bytes. A [Stream] is a cursor into a [Buffer], addressed in bits, that can
// read and write 1-to-64-bit integer fields in little-endian bit and byte
// order, seek to an absolute bit position, and align itself to the next
// byte boundary. There is no relative seek. This is the substrate the binary
// serializer in this module is built on; the JSON and XML serializers do not
// use it.
package bitio
