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

package pclass

// PrimitiveCode identifies one of the fixed primitive wire types.
type PrimitiveCode int

const (
	Int4 PrimitiveCode = iota
	UInt4
	Int8
	UInt8
	Int16
	UInt16
	Int24
	UInt24
	Int32
	UInt32
	Int64
	UInt64
	Float32
	Float64
	StringNarrow
	StringWide
	GID
)

var primitiveNames = [...]string{
	Int4:         "bi4",
	UInt4:        "bui4",
	Int8:         "char",
	UInt8:        "unsigned char",
	Int16:        "short",
	UInt16:       "unsigned short",
	Int24:        "s24",
	UInt24:       "u24",
	Int32:        "int",
	UInt32:       "unsigned int",
	Int64:        "long",
	UInt64:       "unsigned long",
	Float32:      "float",
	Float64:      "double",
	StringNarrow: "std::string",
	StringWide:   "std::wstring",
	GID:          "gid",
}

// BitWidth returns the number of bits a single scalar value of this code
// occupies on the wire. For StringNarrow/StringWide, this is the width of
// the length prefix only; the payload follows.
func (c PrimitiveCode) BitWidth() int {
	switch c {
	case Int4, UInt4:
		return 4
	case Int8, UInt8:
		return 8
	case Int16, UInt16, StringNarrow, StringWide:
		return 16
	case Int24, UInt24:
		return 24
	case Int32, UInt32, Float32:
		return 32
	case Int64, UInt64, Float64, GID:
		return 64
	default:
		return 0
	}
}

// Signed reports whether this code is a signed integer type.
func (c PrimitiveCode) Signed() bool {
	switch c {
	case Int4, Int8, Int16, Int24, Int32, Int64:
		return true
	default:
		return false
	}
}

// IsString reports whether this code is a length-prefixed string type.
func (c PrimitiveCode) IsString() bool {
	return c == StringNarrow || c == StringWide
}

// IsFloat reports whether this code is an IEEE-754 float type.
func (c PrimitiveCode) IsFloat() bool {
	return c == Float32 || c == Float64
}

// String returns the reference implementation's primitive name, e.g. "bi4"
// or "unsigned long".
func (c PrimitiveCode) String() string {
	if int(c) < 0 || int(c) >= len(primitiveNames) {
		return "unknown"
	}
	return primitiveNames[c]
}

// PrimitiveType is the [Type] descriptor for one of the fixed primitive
// wire types.
type PrimitiveType struct {
	Type
	Code PrimitiveCode
}

// BuiltinPrimitives returns the fixed set of primitive types, in the order
// they should be registered into a fresh [TypeSystem].
func BuiltinPrimitives() []PrimitiveCode {
	return []PrimitiveCode{
		Int4, UInt4, Int8, UInt8, Int16, UInt16, Int24, UInt24,
		Int32, UInt32, Int64, UInt64, Float32, Float64,
		StringNarrow, StringWide, GID,
	}
}
