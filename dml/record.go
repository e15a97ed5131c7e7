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

import (
	"encoding/binary"
	"math"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/kiproto/pclass/wireerr"
)

// Record is an ordered collection of named [Field] values. Fields keep the
// order in which they were first added; that order is also the wire order
// used by [Record.ToBytes] and [Record.FromBytes].
type Record struct {
	fields []*Field
	byName map[string]*Field
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{byName: make(map[string]*Field)}
}

// addField returns the existing field named name if it already has type typ,
// nil if it exists with a different type, or a newly appended field
// otherwise.
func (r *Record) addField(name string, typ FieldType, transferable bool) *Field {
	if existing, ok := r.byName[name]; ok {
		if existing.typ == typ {
			return existing
		}
		return nil
	}
	f := &Field{name: name, typ: typ, transferable: transferable, value: typ.zeroValue()}
	r.fields = append(r.fields, f)
	r.byName[name] = f
	return f
}

// transferableArg returns the implicit transferable argument used by the
// typed Add*Field helpers when the caller doesn't supply one, matching the
// reference binding's keyword-argument default.
func transferableArg(transferable []bool) bool {
	if len(transferable) > 0 {
		return transferable[0]
	}
	return true
}

// AddBytField adds (or looks up) a signed 8-bit field.
func (r *Record) AddBytField(name string, transferable ...bool) *Field {
	return r.addField(name, Byt, transferableArg(transferable))
}

// AddUBytField adds (or looks up) an unsigned 8-bit field.
func (r *Record) AddUBytField(name string, transferable ...bool) *Field {
	return r.addField(name, UByt, transferableArg(transferable))
}

// AddShrtField adds (or looks up) a signed 16-bit field.
func (r *Record) AddShrtField(name string, transferable ...bool) *Field {
	return r.addField(name, Shrt, transferableArg(transferable))
}

// AddUShrtField adds (or looks up) an unsigned 16-bit field.
func (r *Record) AddUShrtField(name string, transferable ...bool) *Field {
	return r.addField(name, UShrt, transferableArg(transferable))
}

// AddIntField adds (or looks up) a signed 32-bit field.
func (r *Record) AddIntField(name string, transferable ...bool) *Field {
	return r.addField(name, Int, transferableArg(transferable))
}

// AddUIntField adds (or looks up) an unsigned 32-bit field.
func (r *Record) AddUIntField(name string, transferable ...bool) *Field {
	return r.addField(name, UInt, transferableArg(transferable))
}

// AddStrField adds (or looks up) a narrow (UTF-8) string field.
func (r *Record) AddStrField(name string, transferable ...bool) *Field {
	return r.addField(name, Str, transferableArg(transferable))
}

// AddWStrField adds (or looks up) a wide (UTF-16LE on the wire) string field.
func (r *Record) AddWStrField(name string, transferable ...bool) *Field {
	return r.addField(name, WStr, transferableArg(transferable))
}

// AddFltField adds (or looks up) a 32-bit float field.
func (r *Record) AddFltField(name string, transferable ...bool) *Field {
	return r.addField(name, Flt, transferableArg(transferable))
}

// AddDblField adds (or looks up) a 64-bit float field.
func (r *Record) AddDblField(name string, transferable ...bool) *Field {
	return r.addField(name, Dbl, transferableArg(transferable))
}

// AddGidField adds (or looks up) a 64-bit global-identifier field.
func (r *Record) AddGidField(name string, transferable ...bool) *Field {
	return r.addField(name, Gid, transferableArg(transferable))
}

// HasField reports whether a field named name exists with exactly type typ.
func (r *Record) HasField(name string, typ FieldType) bool {
	f, ok := r.byName[name]
	return ok && f.typ == typ
}

// GetField returns the field named name if it exists with exactly type typ,
// or nil otherwise.
func (r *Record) GetField(name string, typ FieldType) *Field {
	f, ok := r.byName[name]
	if !ok || f.typ != typ {
		return nil
	}
	return f
}

// Contains reports whether any field named name exists, regardless of type.
func (r *Record) Contains(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Field returns the field named name regardless of type, or nil if absent.
func (r *Record) Field(name string) *Field {
	return r.byName[name]
}

// Fields returns every field in insertion order.
func (r *Record) Fields() []*Field {
	out := make([]*Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// FieldCount returns the number of fields in the record.
func (r *Record) FieldCount() int {
	return len(r.fields)
}

// Size returns the number of bytes [Record.ToBytes] would produce.
func (r *Record) Size() int {
	n := 0
	for _, f := range r.fields {
		if !f.transferable {
			continue
		}
		n += f.wireSize()
	}
	return n
}

func (f *Field) wireSize() int {
	switch f.typ {
	case Byt, UByt:
		return 1
	case Shrt, UShrt:
		return 2
	case Int, UInt, Flt:
		return 4
	case Dbl, Gid:
		return 8
	case Str:
		return 2 + len(asString(f.value))
	case WStr:
		wide, _, err := transform.Bytes(utf16le.NewEncoder(), []byte(asString(f.value)))
		if err != nil {
			return 2
		}
		return 2 + len(wide)
	default:
		return 0
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// ToBytes encodes every transferable field, in insertion order, into its
// fixed or length-prefixed wire representation.
func (r *Record) ToBytes() ([]byte, error) {
	buf := make([]byte, 0, r.Size())
	for _, f := range r.fields {
		if !f.transferable {
			continue
		}
		enc, err := f.encode()
		if err != nil {
			return nil, err
		}
		buf = append(buf, enc...)
	}
	return buf, nil
}

func (f *Field) encode() ([]byte, error) {
	switch f.typ {
	case Byt:
		return []byte{byte(f.value.(int8))}, nil
	case UByt:
		return []byte{f.value.(uint8)}, nil
	case Shrt:
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, uint16(f.value.(int16)))
		return b, nil
	case UShrt:
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, f.value.(uint16))
		return b, nil
	case Int:
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, uint32(f.value.(int32)))
		return b, nil
	case UInt:
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, f.value.(uint32))
		return b, nil
	case Flt:
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, math.Float32bits(f.value.(float32)))
		return b, nil
	case Dbl:
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, math.Float64bits(f.value.(float64)))
		return b, nil
	case Gid:
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, f.value.(uint64))
		return b, nil
	case Str:
		s := asString(f.value)
		b := make([]byte, 2, 2+len(s))
		binary.LittleEndian.PutUint16(b, uint16(len(s)))
		return append(b, s...), nil
	case WStr:
		s := asString(f.value)
		wide, _, err := transform.Bytes(utf16le.NewEncoder(), []byte(s))
		if err != nil {
			return nil, &wireerr.EncodingError{Kind: wireerr.UnknownTag, Cause: err}
		}
		b := make([]byte, 2, 2+len(wide))
		binary.LittleEndian.PutUint16(b, uint16(len(wide)/2))
		return append(b, wide...), nil
	default:
		return nil, nil
	}
}

// FromBytes decodes data into the record's already-declared fields, in
// insertion order. Non-transferable fields are skipped and retain whatever
// value they held before the call.
func (r *Record) FromBytes(data []byte) error {
	var off int
	need := func(n int) error {
		if off+n > len(data) {
			return &wireerr.EncodingError{Kind: wireerr.Truncated, Offset: int64(off) * 8}
		}
		return nil
	}
	for _, f := range r.fields {
		if !f.transferable {
			continue
		}
		switch f.typ {
		case Byt:
			if err := need(1); err != nil {
				return err
			}
			f.value = int8(data[off])
			off++
		case UByt:
			if err := need(1); err != nil {
				return err
			}
			f.value = data[off]
			off++
		case Shrt:
			if err := need(2); err != nil {
				return err
			}
			f.value = int16(binary.LittleEndian.Uint16(data[off:]))
			off += 2
		case UShrt:
			if err := need(2); err != nil {
				return err
			}
			f.value = binary.LittleEndian.Uint16(data[off:])
			off += 2
		case Int:
			if err := need(4); err != nil {
				return err
			}
			f.value = int32(binary.LittleEndian.Uint32(data[off:]))
			off += 4
		case UInt:
			if err := need(4); err != nil {
				return err
			}
			f.value = binary.LittleEndian.Uint32(data[off:])
			off += 4
		case Flt:
			if err := need(4); err != nil {
				return err
			}
			f.value = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
			off += 4
		case Dbl:
			if err := need(8); err != nil {
				return err
			}
			f.value = math.Float64frombits(binary.LittleEndian.Uint64(data[off:]))
			off += 8
		case Gid:
			if err := need(8); err != nil {
				return err
			}
			f.value = binary.LittleEndian.Uint64(data[off:])
			off += 8
		case Str:
			if err := need(2); err != nil {
				return err
			}
			n := int(binary.LittleEndian.Uint16(data[off:]))
			off += 2
			if err := need(n); err != nil {
				return err
			}
			f.value = string(data[off : off+n])
			off += n
		case WStr:
			if err := need(2); err != nil {
				return err
			}
			units := int(binary.LittleEndian.Uint16(data[off:]))
			off += 2
			n := units * 2
			if err := need(n); err != nil {
				return err
			}
			narrow, _, err := transform.Bytes(utf16le.NewDecoder(), data[off:off+n])
			if err != nil {
				return &wireerr.EncodingError{Kind: wireerr.UnknownTag, Offset: int64(off) * 8, Cause: err}
			}
			f.value = string(narrow)
			off += n
		}
	}
	return nil
}
