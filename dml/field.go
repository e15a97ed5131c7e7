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

package dml

import "github.com/kiproto/pclass/wireerr"

// FieldType identifies the wire representation of a [Field].
type FieldType int

const (
	Byt   FieldType = iota // int8
	UByt                   // uint8
	Shrt                   // int16, little-endian
	UShrt                  // uint16, little-endian
	Int                    // int32, little-endian
	UInt                   // uint32, little-endian
	Str                    // uint16 LE length prefix + UTF-8 bytes
	WStr                   // uint16 LE length prefix (code units) + UTF-16LE bytes
	Flt                    // float32, little-endian, IEEE 754
	Dbl                    // float64, little-endian, IEEE 754
	Gid                    // uint64, little-endian
)

func (t FieldType) String() string {
	switch t {
	case Byt:
		return "byt"
	case UByt:
		return "ubyt"
	case Shrt:
		return "shrt"
	case UShrt:
		return "ushrt"
	case Int:
		return "int"
	case UInt:
		return "uint"
	case Str:
		return "str"
	case WStr:
		return "wstr"
	case Flt:
		return "flt"
	case Dbl:
		return "dbl"
	case Gid:
		return "gid"
	default:
		return "unknown"
	}
}

// zeroValue returns the field type's default ("not yet decoded") value.
func (t FieldType) zeroValue() any {
	switch t {
	case Byt:
		return int8(0)
	case UByt:
		return uint8(0)
	case Shrt:
		return int16(0)
	case UShrt:
		return uint16(0)
	case Int:
		return int32(0)
	case UInt:
		return uint32(0)
	case Str, WStr:
		return ""
	case Flt:
		return float32(0)
	case Dbl:
		return float64(0)
	case Gid:
		return uint64(0)
	default:
		return nil
	}
}

// Field is one named, typed slot within a [Record]. Field identity is
// pointer identity: a given name always resolves to the same *Field for the
// lifetime of the Record that created it.
type Field struct {
	name         string
	typ          FieldType
	transferable bool
	value        any
}

// Name returns the field's name.
func (f *Field) Name() string { return f.name }

// Type returns the field's wire type.
func (f *Field) Type() FieldType { return f.typ }

// Transferable reports whether the field is included when the owning
// [Record] is encoded.
func (f *Field) Transferable() bool { return f.transferable }

// Value returns the field's current value, using the Go type that
// corresponds to its [FieldType] (int8 for Byt, string for Str/WStr, and so
// on).
func (f *Field) Value() any { return f.value }

// SetValue assigns the field's value. v must already be of the Go type
// native to the field's type; SetValue does not perform numeric coercion.
func (f *Field) SetValue(v any) error {
	if !f.typ.accepts(v) {
		return &wireerr.PropertyError{Kind: wireerr.TypeMismatch, Property: f.name}
	}
	f.value = v
	return nil
}

// accepts reports whether v is the Go type native to t.
func (t FieldType) accepts(v any) bool {
	switch t {
	case Byt:
		_, ok := v.(int8)
		return ok
	case UByt:
		_, ok := v.(uint8)
		return ok
	case Shrt:
		_, ok := v.(int16)
		return ok
	case UShrt:
		_, ok := v.(uint16)
		return ok
	case Int:
		_, ok := v.(int32)
		return ok
	case UInt:
		_, ok := v.(uint32)
		return ok
	case Str, WStr:
		_, ok := v.(string)
		return ok
	case Flt:
		_, ok := v.(float32)
		return ok
	case Dbl:
		_, ok := v.(float64)
		return ok
	case Gid:
		_, ok := v.(uint64)
		return ok
	default:
		return false
	}
}
