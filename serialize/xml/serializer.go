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

package xml

import (
	"bytes"
	stdxml "encoding/xml"
	"fmt"
	"strconv"

	"github.com/kiproto/pclass"
)

// Serializer encodes [pclass.Instance] graphs to/from the XML wire form
// described by spec.md §4.8. File mode wraps the document in a single
// "<Objects>" root; regular mode emits a bare object element. Neither mode
// writes the "<?xml ...?>" declaration; that is the SerializedFile
// façade's job.
type Serializer struct {
	TS     *pclass.TypeSystem
	IsFile bool

	// Strict controls how decode treats an enum element whose text is a
	// bare integer literal rather than a registered element name: a
	// wireerr.TypeError/UnknownType in strict mode, or the literal value
	// passed through unchecked otherwise. spec.md's default is strict. Text
	// that is neither a registered name nor a parseable integer is always a
	// decode error, in either mode.
	Strict bool
}

// New returns an XML serializer bound to ts, with the given strict-mode
// enum validation setting.
func New(ts *pclass.TypeSystem, isFile bool, strict bool) *Serializer {
	return &Serializer{TS: ts, IsFile: isFile, Strict: strict}
}

// Encode returns inst's XML document as bytes, with no leading
// declaration and no indentation.
func (s *Serializer) Encode(inst *pclass.Instance) ([]byte, error) {
	var buf bytes.Buffer
	if s.IsFile {
		buf.WriteString("<Objects>")
	}
	if err := s.encodeObject(&buf, inst); err != nil {
		return nil, err
	}
	if s.IsFile {
		buf.WriteString("</Objects>")
	}
	return buf.Bytes(), nil
}

func (s *Serializer) encodeObject(buf *bytes.Buffer, inst *pclass.Instance) error {
	fmt.Fprintf(buf, "<Class name=%s>", quoteAttr(inst.Class().Name()))
	for _, prop := range inst.Properties() {
		if err := s.encodeProperty(buf, prop); err != nil {
			return err
		}
	}
	buf.WriteString("</Class>")
	return nil
}

func (s *Serializer) encodeProperty(buf *bytes.Buffer, prop *pclass.Property) error {
	desc := prop.Descriptor()
	name := desc.Name

	switch desc.Cardinality.Kind {
	case pclass.Scalar:
		v, err := prop.Get()
		if err != nil {
			return err
		}
		return s.encodeElement(buf, name, desc, v)
	case pclass.FixedArray, pclass.DynamicVector:
		for i := 0; i < prop.Len(); i++ {
			v, err := prop.GetAt(i)
			if err != nil {
				return err
			}
			if err := s.encodeElement(buf, name, desc, v); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("pclass/serialize/xml: unknown cardinality %v", desc.Cardinality.Kind)
	}
}

func (s *Serializer) encodeElement(buf *bytes.Buffer, name string, desc *pclass.PropertyDescriptor, value any) error {
	if desc.Element.Kind() == pclass.KindClass {
		inst, _ := value.(*pclass.Instance)
		if inst == nil {
			fmt.Fprintf(buf, "<%s/>", name)
			return nil
		}
		fmt.Fprintf(buf, "<%s>", name)
		if err := s.encodeObject(buf, inst); err != nil {
			return err
		}
		fmt.Fprintf(buf, "</%s>", name)
		return nil
	}

	if value == nil {
		fmt.Fprintf(buf, "<%s/>", name)
		return nil
	}

	text, err := elementText(desc, value)
	if err != nil {
		return err
	}
	fmt.Fprintf(buf, "<%s>", name)
	if err := stdxml.EscapeText(buf, []byte(text)); err != nil {
		return err
	}
	fmt.Fprintf(buf, "</%s>", name)
	return nil
}

func elementText(desc *pclass.PropertyDescriptor, value any) (string, error) {
	if et, ok := desc.Element.(*pclass.EnumType); ok {
		v, _ := value.(int32)
		name, ok := et.NameOf(v)
		if !ok {
			return "", fmt.Errorf("pclass/serialize/xml: value %d is not a member of %s", v, et.Name())
		}
		return name, nil
	}
	pt, ok := desc.Element.(*pclass.PrimitiveType)
	if !ok {
		return "", fmt.Errorf("pclass/serialize/xml: unsupported element type %T", desc.Element)
	}
	switch {
	case pt.Code.IsString():
		s, _ := value.(string)
		return s, nil
	case pt.Code.IsFloat():
		f, _ := value.(float64)
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case pt.Code == pclass.GID:
		v, _ := value.(uint64)
		return strconv.FormatUint(v, 10), nil
	case pt.Code.Signed():
		v, _ := value.(int64)
		return strconv.FormatInt(v, 10), nil
	default:
		v, _ := value.(uint64)
		return strconv.FormatUint(v, 10), nil
	}
}

func quoteAttr(s string) string {
	var buf bytes.Buffer
	buf.WriteByte('"')
	stdxml.EscapeText(&buf, []byte(s))
	buf.WriteByte('"')
	return buf.String()
}
