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

package json

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"
	"strconv"

	"github.com/kiproto/pclass"
	"github.com/kiproto/pclass/wireerr"
)

// Serializer encodes and decodes [pclass.Instance] graphs as JSON, per
// spec.md §4.7. Regular mode identifies classes by "_pclass_hash"
// (decimal); file mode identifies them by "_pclass_name" and emits enums
// as their element name instead of their integer value.
type Serializer struct {
	TS     *pclass.TypeSystem
	IsFile bool

	// Strict controls how decode treats an enum value that is not one of
	// its [pclass.EnumType]'s registered elements: a
	// wireerr.TypeError/UnknownType in strict mode, or the raw value passed
	// through unchecked otherwise. spec.md's default is strict.
	Strict bool
}

// New returns a JSON serializer bound to ts, with the given strict-mode
// enum validation setting.
func New(ts *pclass.TypeSystem, isFile bool, strict bool) *Serializer {
	return &Serializer{TS: ts, IsFile: isFile, Strict: strict}
}

// Encode returns inst's JSON document as bytes, with keys in descriptor
// order and no indentation.
func (s *Serializer) Encode(inst *pclass.Instance) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.encodeObject(&buf, inst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Serializer) encodeObject(buf *bytes.Buffer, inst *pclass.Instance) error {
	buf.WriteByte('{')
	if s.IsFile {
		writeJSONKey(buf, "_pclass_name")
		writeJSONString(buf, inst.Class().Name())
	} else {
		writeJSONKey(buf, "_pclass_hash")
		buf.WriteString(strconv.FormatUint(uint64(inst.Class().Hash()), 10))
	}
	for _, prop := range inst.Properties() {
		buf.WriteByte(',')
		writeJSONKey(buf, prop.Descriptor().Name)
		if err := s.encodeProperty(buf, prop); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func (s *Serializer) encodeProperty(buf *bytes.Buffer, prop *pclass.Property) error {
	desc := prop.Descriptor()
	switch desc.Cardinality.Kind {
	case pclass.Scalar:
		v, err := prop.Get()
		if err != nil {
			return err
		}
		return s.encodeValue(buf, desc, v)
	case pclass.FixedArray, pclass.DynamicVector:
		buf.WriteByte('[')
		for i := 0; i < prop.Len(); i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			v, err := prop.GetAt(i)
			if err != nil {
				return err
			}
			if err := s.encodeValue(buf, desc, v); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		return fmt.Errorf("pclass/serialize/json: unknown cardinality %v", desc.Cardinality.Kind)
	}
}

func (s *Serializer) encodeValue(buf *bytes.Buffer, desc *pclass.PropertyDescriptor, value any) error {
	if desc.Element.Kind() == pclass.KindClass {
		inst, _ := value.(*pclass.Instance)
		if inst == nil {
			buf.WriteString("null")
			return nil
		}
		return s.encodeObject(buf, inst)
	}
	if value == nil {
		buf.WriteString("null")
		return nil
	}
	if et, ok := desc.Element.(*pclass.EnumType); ok {
		return s.encodeEnumValue(buf, et, value)
	}
	pt, ok := desc.Element.(*pclass.PrimitiveType)
	if !ok {
		return fmt.Errorf("pclass/serialize/json: unsupported element type %T", desc.Element)
	}
	return encodePrimitiveValue(buf, pt.Code, value)
}

func (s *Serializer) encodeEnumValue(buf *bytes.Buffer, et *pclass.EnumType, value any) error {
	v, ok := value.(int32)
	if !ok {
		return &wireerr.PropertyError{Kind: wireerr.TypeMismatch}
	}
	if s.IsFile {
		name, ok := et.NameOf(v)
		if !ok {
			return &wireerr.TypeError{Kind: wireerr.UnknownType, Name: fmt.Sprintf("%d", v)}
		}
		writeJSONString(buf, name)
		return nil
	}
	buf.WriteString(strconv.FormatInt(int64(v), 10))
	return nil
}

func encodePrimitiveValue(buf *bytes.Buffer, code pclass.PrimitiveCode, value any) error {
	switch {
	case code.IsString():
		str, _ := value.(string)
		writeJSONString(buf, str)
		return nil
	case code.IsFloat():
		f, _ := value.(float64)
		buf.Write(strconv.AppendFloat(nil, f, 'g', -1, 64))
		return nil
	case code == pclass.GID:
		v, _ := value.(uint64)
		buf.WriteString(strconv.FormatUint(v, 10))
		return nil
	case code.Signed():
		v, _ := value.(int64)
		buf.WriteString(strconv.FormatInt(v, 10))
		return nil
	default:
		v, _ := value.(uint64)
		buf.WriteString(strconv.FormatUint(v, 10))
		return nil
	}
}

func writeJSONKey(buf *bytes.Buffer, key string) {
	writeJSONString(buf, key)
	buf.WriteByte(':')
}

func writeJSONString(buf *bytes.Buffer, s string) {
	b, _ := stdjson.Marshal(s)
	buf.Write(b)
}

// Decode parses a JSON document produced by [Serializer.Encode] and
// returns the root instance.
func (s *Serializer) Decode(data []byte) (*pclass.Instance, error) {
	dec := stdjson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, &wireerr.EncodingError{Kind: wireerr.UnknownTag, Cause: err}
	}
	return s.decodeObject(raw)
}

func (s *Serializer) decodeObject(m map[string]any) (*pclass.Instance, error) {
	var inst *pclass.Instance
	var err error
	if s.IsFile {
		name, _ := m["_pclass_name"].(string)
		inst, err = s.TS.Instantiate(name)
	} else {
		num, ok := m["_pclass_hash"].(stdjson.Number)
		if !ok {
			return nil, &wireerr.EncodingError{Kind: wireerr.UnknownTag}
		}
		hash, convErr := strconv.ParseUint(num.String(), 10, 32)
		if convErr != nil {
			return nil, &wireerr.EncodingError{Kind: wireerr.UnknownTag, Cause: convErr}
		}
		inst, err = s.TS.InstantiateHash(uint32(hash))
	}
	if err != nil {
		return nil, err
	}
	for _, prop := range inst.Properties() {
		raw, present := m[prop.Descriptor().Name]
		if !present {
			continue
		}
		if err := s.decodeProperty(prop, raw); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

func (s *Serializer) decodeProperty(prop *pclass.Property, raw any) error {
	desc := prop.Descriptor()
	switch desc.Cardinality.Kind {
	case pclass.Scalar:
		v, err := s.decodeValue(desc, raw)
		if err != nil {
			return err
		}
		return prop.Set(v)
	case pclass.FixedArray, pclass.DynamicVector:
		arr, ok := raw.([]any)
		if !ok {
			return &wireerr.EncodingError{Kind: wireerr.UnknownTag}
		}
		if desc.Cardinality.Kind == pclass.DynamicVector {
			if err := prop.Clear(); err != nil {
				return err
			}
			for _, elemRaw := range arr {
				v, err := s.decodeValue(desc, elemRaw)
				if err != nil {
					return err
				}
				if err := prop.Push(v); err != nil {
					return err
				}
			}
			return nil
		}
		for i, elemRaw := range arr {
			if i >= prop.Len() {
				break
			}
			v, err := s.decodeValue(desc, elemRaw)
			if err != nil {
				return err
			}
			if err := prop.SetAt(i, v); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("pclass/serialize/json: unknown cardinality %v", desc.Cardinality.Kind)
	}
}

func (s *Serializer) decodeValue(desc *pclass.PropertyDescriptor, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	if desc.Element.Kind() == pclass.KindClass {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, &wireerr.EncodingError{Kind: wireerr.UnknownTag}
		}
		child, err := s.decodeObject(m)
		if err != nil {
			return nil, err
		}
		return child, nil
	}
	if et, ok := desc.Element.(*pclass.EnumType); ok {
		return s.decodeEnumValue(et, raw)
	}
	pt, ok := desc.Element.(*pclass.PrimitiveType)
	if !ok {
		return nil, fmt.Errorf("pclass/serialize/json: unsupported element type %T", desc.Element)
	}
	return decodePrimitiveValue(pt.Code, raw)
}

// decodeEnumValue resolves raw (a JSON string in file mode, a JSON number in
// regular mode) to the enum's int32 value. A name that isn't registered is
// always a hard decode error; an integer that isn't registered is accepted
// unless s.Strict requests validation, matching the binary serializer's
// policy for the same wire concept.
func (s *Serializer) decodeEnumValue(et *pclass.EnumType, raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		n, ok := et.ValueOf(v)
		if !ok {
			return nil, &wireerr.TypeError{Kind: wireerr.UnknownType, Name: v}
		}
		return n, nil
	case stdjson.Number:
		i, err := v.Int64()
		if err != nil {
			return nil, &wireerr.EncodingError{Kind: wireerr.UnknownTag, Cause: err}
		}
		n := int32(i)
		if s.Strict && !et.Has(n) {
			return nil, &wireerr.TypeError{Kind: wireerr.UnknownType, Name: fmt.Sprintf("%s=%d", et.Name(), n)}
		}
		return n, nil
	default:
		return nil, &wireerr.EncodingError{Kind: wireerr.UnknownTag}
	}
}

func decodePrimitiveValue(code pclass.PrimitiveCode, raw any) (any, error) {
	switch {
	case code.IsString():
		str, ok := raw.(string)
		if !ok {
			return nil, &wireerr.PropertyError{Kind: wireerr.TypeMismatch}
		}
		return str, nil
	case code.IsFloat():
		num, ok := raw.(stdjson.Number)
		if !ok {
			return nil, &wireerr.PropertyError{Kind: wireerr.TypeMismatch}
		}
		f, err := num.Float64()
		if err != nil {
			return nil, &wireerr.EncodingError{Kind: wireerr.UnknownTag, Cause: err}
		}
		return f, nil
	case code == pclass.GID:
		num, ok := raw.(stdjson.Number)
		if !ok {
			return nil, &wireerr.PropertyError{Kind: wireerr.TypeMismatch}
		}
		v, err := strconv.ParseUint(num.String(), 10, 64)
		if err != nil {
			return nil, &wireerr.EncodingError{Kind: wireerr.UnknownTag, Cause: err}
		}
		return v, nil
	case code.Signed():
		num, ok := raw.(stdjson.Number)
		if !ok {
			return nil, &wireerr.PropertyError{Kind: wireerr.TypeMismatch}
		}
		v, err := num.Int64()
		if err != nil {
			return nil, &wireerr.EncodingError{Kind: wireerr.UnknownTag, Cause: err}
		}
		return v, nil
	default:
		num, ok := raw.(stdjson.Number)
		if !ok {
			return nil, &wireerr.PropertyError{Kind: wireerr.TypeMismatch}
		}
		v, err := strconv.ParseUint(num.String(), 10, 64)
		if err != nil {
			return nil, &wireerr.EncodingError{Kind: wireerr.UnknownTag, Cause: err}
		}
		return v, nil
	}
}
