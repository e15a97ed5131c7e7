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

import (
	"fmt"
	"math"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/kiproto/pclass"
	"github.com/kiproto/pclass/bitio"
	"github.com/kiproto/pclass/wireerr"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func maskFor(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(width)) - 1
}

// encodeProperty dispatches on a property's cardinality.
func (s *Serializer) encodeProperty(w *bitio.Stream, prop *pclass.Property) error {
	desc := prop.Descriptor()
	switch desc.Cardinality.Kind {
	case pclass.Scalar:
		v, err := prop.Get()
		if err != nil {
			return err
		}
		return s.encodeElement(w, desc, v)
	case pclass.FixedArray:
		for i := 0; i < prop.Len(); i++ {
			v, err := prop.GetAt(i)
			if err != nil {
				return err
			}
			if err := s.encodeElement(w, desc, v); err != nil {
				return err
			}
		}
		return nil
	case pclass.DynamicVector:
		n := prop.Len()
		if err := w.WriteBits(uint64(uint32(n)), 32); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			v, err := prop.GetAt(i)
			if err != nil {
				return err
			}
			if err := s.encodeElement(w, desc, v); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("pclass/serialize/binary: unknown cardinality %v", desc.Cardinality.Kind)
	}
}

func (s *Serializer) decodeProperty(r *bitio.Stream, prop *pclass.Property) error {
	desc := prop.Descriptor()
	switch desc.Cardinality.Kind {
	case pclass.Scalar:
		v, err := s.decodeElement(r, desc)
		if err != nil {
			return err
		}
		return prop.Set(v)
	case pclass.FixedArray:
		for i := 0; i < prop.Len(); i++ {
			v, err := s.decodeElement(r, desc)
			if err != nil {
				return err
			}
			if err := prop.SetAt(i, v); err != nil {
				return err
			}
		}
		return nil
	case pclass.DynamicVector:
		n, err := r.ReadBits(32)
		if err != nil {
			return err
		}
		if err := prop.Clear(); err != nil {
			return err
		}
		for i := 0; i < int(uint32(n)); i++ {
			v, err := s.decodeElement(r, desc)
			if err != nil {
				return err
			}
			if err := prop.Push(v); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("pclass/serialize/binary: unknown cardinality %v", desc.Cardinality.Kind)
	}
}

// encodeElement writes a single element of desc, handling pointer-ness and
// class-typed (nested object) elements.
func (s *Serializer) encodeElement(w *bitio.Stream, desc *pclass.PropertyDescriptor, value any) error {
	isClass := desc.Element.Kind() == pclass.KindClass

	if desc.IsPointer && isClass {
		inst, _ := value.(*pclass.Instance)
		if s.IsFile {
			if inst == nil {
				return s.encodeNullObjectFrame(w)
			}
			return s.encodeObjectFrame(w, inst)
		}
		present := inst != nil
		if err := w.WriteBits(boolBit(present), 1); err != nil {
			return err
		}
		if !present {
			return nil
		}
		return s.encodeObjectFrame(w, inst)
	}

	if desc.IsPointer {
		present := value != nil
		if err := w.WriteBits(boolBit(present), 1); err != nil {
			return err
		}
		if !present {
			return nil
		}
		return encodePrimitiveOrEnum(w, desc.Element, value)
	}

	if isClass {
		inst, _ := value.(*pclass.Instance)
		if inst == nil {
			return s.encodeNullObjectFrame(w)
		}
		return s.encodeObjectFrame(w, inst)
	}

	return encodePrimitiveOrEnum(w, desc.Element, value)
}

func (s *Serializer) decodeElement(r *bitio.Stream, desc *pclass.PropertyDescriptor) (any, error) {
	isClass := desc.Element.Kind() == pclass.KindClass

	if desc.IsPointer && isClass {
		if s.IsFile {
			return normalizeInstance(s.decodeObjectFrame(r))
		}
		present, err := r.ReadBits(1)
		if err != nil {
			return nil, err
		}
		if present == 0 {
			return nil, nil
		}
		return normalizeInstance(s.decodeObjectFrame(r))
	}

	if desc.IsPointer {
		present, err := r.ReadBits(1)
		if err != nil {
			return nil, err
		}
		if present == 0 {
			return nil, nil
		}
		return s.decodePrimitiveOrEnum(r, desc.Element)
	}

	if isClass {
		return normalizeInstance(s.decodeObjectFrame(r))
	}

	return s.decodePrimitiveOrEnum(r, desc.Element)
}

// normalizeInstance converts a possibly-nil *pclass.Instance into an any
// that is either a live *pclass.Instance or an untyped nil, so downstream
// nil checks against interface{} work as expected.
func normalizeInstance(inst *pclass.Instance, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, nil
	}
	return inst, nil
}

func encodePrimitiveOrEnum(w *bitio.Stream, et pclass.ElementType, value any) error {
	switch t := et.(type) {
	case *pclass.PrimitiveType:
		switch {
		case t.Code.IsString():
			str, _ := value.(string)
			return encodeString(w, t.Code, str)
		case t.Code.IsFloat():
			f, _ := value.(float64)
			if t.Code == pclass.Float32 {
				return w.WriteBits(uint64(math.Float32bits(float32(f))), 32)
			}
			return w.WriteBits(math.Float64bits(f), 64)
		case t.Code == pclass.GID:
			v, _ := value.(uint64)
			return w.WriteBits(v, 64)
		case t.Code.Signed():
			v, _ := value.(int64)
			width := t.Code.BitWidth()
			return w.WriteBits(uint64(v)&maskFor(width), width)
		default:
			v, _ := value.(uint64)
			width := t.Code.BitWidth()
			return w.WriteBits(v&maskFor(width), width)
		}
	case *pclass.EnumType:
		v, _ := value.(int32)
		return w.WriteBits(uint64(uint32(v)), 32)
	default:
		return fmt.Errorf("pclass/serialize/binary: unsupported element type %T", et)
	}
}

func (s *Serializer) decodePrimitiveOrEnum(r *bitio.Stream, et pclass.ElementType) (any, error) {
	switch t := et.(type) {
	case *pclass.PrimitiveType:
		switch {
		case t.Code.IsString():
			return decodeString(r, t.Code)
		case t.Code.IsFloat():
			if t.Code == pclass.Float32 {
				v, err := r.ReadBits(32)
				if err != nil {
					return nil, err
				}
				return float64(math.Float32frombits(uint32(v))), nil
			}
			v, err := r.ReadBits(64)
			if err != nil {
				return nil, err
			}
			return math.Float64frombits(v), nil
		case t.Code == pclass.GID:
			v, err := r.ReadBits(64)
			return v, err
		case t.Code.Signed():
			width := t.Code.BitWidth()
			v, err := r.ReadBits(width)
			if err != nil {
				return nil, err
			}
			return signExtend(v, width), nil
		default:
			width := t.Code.BitWidth()
			v, err := r.ReadBits(width)
			return v, err
		}
	case *pclass.EnumType:
		raw, err := r.ReadBits(32)
		if err != nil {
			return nil, err
		}
		v := int32(uint32(raw))
		if s.Strict && !t.Has(v) {
			return nil, &wireerr.TypeError{Kind: wireerr.UnknownType, Name: fmt.Sprintf("%s=%d", t.Name(), v)}
		}
		return v, nil
	default:
		return nil, fmt.Errorf("pclass/serialize/binary: unsupported element type %T", et)
	}
}

// signExtend interprets the low width bits of v as a two's-complement
// signed integer and sign-extends it to int64.
func signExtend(v uint64, width int) int64 {
	if width >= 64 {
		return int64(v)
	}
	signBit := uint64(1) << uint(width-1)
	if v&signBit != 0 {
		v |= ^uint64(0) << uint(width)
	}
	return int64(v)
}

func encodeString(w *bitio.Stream, code pclass.PrimitiveCode, value string) error {
	var raw []byte
	var units int
	if code == pclass.StringWide {
		wide, _, err := transform.Bytes(utf16le.NewEncoder(), []byte(value))
		if err != nil {
			return err
		}
		raw = wide
		units = len(wide) / 2
	} else {
		raw = []byte(value)
		units = len(raw)
	}
	if err := w.WriteBits(uint64(uint16(units)), 16); err != nil {
		return err
	}
	for _, b := range raw {
		if err := w.WriteBits(uint64(b), 8); err != nil {
			return err
		}
	}
	return nil
}

func decodeString(r *bitio.Stream, code pclass.PrimitiveCode) (string, error) {
	unitsBits, err := r.ReadBits(16)
	if err != nil {
		return "", err
	}
	units := int(uint16(unitsBits))
	n := units
	if code == pclass.StringWide {
		n = units * 2
	}
	raw := make([]byte, n)
	for i := range raw {
		v, err := r.ReadBits(8)
		if err != nil {
			return "", err
		}
		raw[i] = byte(v)
	}
	if code == pclass.StringWide {
		narrow, _, err := transform.Bytes(utf16le.NewDecoder(), raw)
		if err != nil {
			return "", err
		}
		return string(narrow), nil
	}
	return string(raw), nil
}
