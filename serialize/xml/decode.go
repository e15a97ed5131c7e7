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
	"strings"

	"github.com/kiproto/pclass"
	"github.com/kiproto/pclass/wireerr"
)

// Decode parses an XML document produced by [Serializer.Encode] (or the
// equivalent file-mode form) and returns the root instance.
//
// This is a hand-rolled recursive-descent reader built on top of
// encoding/xml's token scanner: it walks <Class>/property elements by
// name rather than unmarshaling into tagged Go structs, since the set of
// properties is runtime metadata from the type system, not compile-time
// struct fields.
func (s *Serializer) Decode(data []byte) (*pclass.Instance, error) {
	dec := stdxml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &wireerr.EncodingError{Kind: wireerr.UnknownTag, Cause: err}
		}
		se, ok := tok.(stdxml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local == "Objects" {
			return s.decodeFirstClassIn(dec)
		}
		if se.Name.Local == "Class" {
			return s.decodeObject(dec, se)
		}
		return nil, &wireerr.EncodingError{Kind: wireerr.UnknownTag}
	}
}

func (s *Serializer) decodeFirstClassIn(dec *stdxml.Decoder) (*pclass.Instance, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &wireerr.EncodingError{Kind: wireerr.UnknownTag, Cause: err}
		}
		switch t := tok.(type) {
		case stdxml.StartElement:
			if t.Name.Local == "Class" {
				return s.decodeObject(dec, t)
			}
			if err := dec.Skip(); err != nil {
				return nil, err
			}
		case stdxml.EndElement:
			if t.Name.Local == "Objects" {
				return nil, &wireerr.EncodingError{Kind: wireerr.UnknownTag}
			}
		}
	}
}

func (s *Serializer) decodeObject(dec *stdxml.Decoder, start stdxml.StartElement) (*pclass.Instance, error) {
	var name string
	for _, a := range start.Attr {
		if a.Name.Local == "name" {
			name = a.Value
		}
	}
	inst, err := s.TS.Instantiate(name)
	if err != nil {
		return nil, err
	}

	vectorStarted := map[string]bool{}
	arrayIndex := map[string]int{}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &wireerr.EncodingError{Kind: wireerr.UnknownTag, Cause: err}
		}
		switch t := tok.(type) {
		case stdxml.StartElement:
			propName := t.Name.Local
			prop := inst.Property(propName)
			if prop == nil {
				if err := dec.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			desc := prop.Descriptor()
			v, err := s.decodeElementValue(dec, desc)
			if err != nil {
				return nil, err
			}
			switch desc.Cardinality.Kind {
			case pclass.Scalar:
				if err := prop.Set(v); err != nil {
					return nil, err
				}
			case pclass.DynamicVector:
				if !vectorStarted[propName] {
					if err := prop.Clear(); err != nil {
						return nil, err
					}
					vectorStarted[propName] = true
				}
				if err := prop.Push(v); err != nil {
					return nil, err
				}
			case pclass.FixedArray:
				idx := arrayIndex[propName]
				if idx < prop.Len() {
					if err := prop.SetAt(idx, v); err != nil {
						return nil, err
					}
				}
				arrayIndex[propName] = idx + 1
			}
		case stdxml.EndElement:
			if t.Name.Local == "Class" {
				return inst, nil
			}
		}
	}
}

// decodeElementValue decodes the content of an element whose opening
// StartElement has already been consumed by the caller's Token() call.
func (s *Serializer) decodeElementValue(dec *stdxml.Decoder, desc *pclass.PropertyDescriptor) (any, error) {
	if desc.Element.Kind() == pclass.KindClass {
		for {
			tok, err := dec.Token()
			if err != nil {
				return nil, &wireerr.EncodingError{Kind: wireerr.UnknownTag, Cause: err}
			}
			switch t := tok.(type) {
			case stdxml.StartElement:
				if t.Name.Local == "Class" {
					child, err := s.decodeObject(dec, t)
					if err != nil {
						return nil, err
					}
					if err := drainUntilEnd(dec); err != nil {
						return nil, err
					}
					return child, nil
				}
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			case stdxml.EndElement:
				return nil, nil // self-closing or empty => null pointer
			}
		}
	}

	text, err := readElementText(dec)
	if err != nil {
		return nil, err
	}
	return s.decodeLeafText(desc, text)
}

// drainUntilEnd consumes tokens up to and including the next EndElement,
// used after a nested <Class> to close the enclosing property element.
func drainUntilEnd(dec *stdxml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if _, ok := tok.(stdxml.EndElement); ok {
			return nil
		}
	}
}

func readElementText(dec *stdxml.Decoder) (string, error) {
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", &wireerr.EncodingError{Kind: wireerr.UnknownTag, Cause: err}
		}
		switch t := tok.(type) {
		case stdxml.CharData:
			sb.Write(t)
		case stdxml.EndElement:
			return sb.String(), nil
		case stdxml.StartElement:
			if err := dec.Skip(); err != nil {
				return "", err
			}
		}
	}
}

// decodeLeafText resolves text to an enum's int32 value by registered name
// first; text that names no registered element but parses as a bare integer
// literal is treated the same way an unregistered integer is on the binary
// and JSON wire forms (accepted unless s.Strict demands validation). Text
// that is neither a known name nor a parseable integer is always a decode
// error.
func (s *Serializer) decodeLeafText(desc *pclass.PropertyDescriptor, text string) (any, error) {
	if desc.IsPointer && text == "" {
		return nil, nil
	}
	if et, ok := desc.Element.(*pclass.EnumType); ok {
		if v, ok := et.ValueOf(text); ok {
			return v, nil
		}
		n, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, &wireerr.TypeError{Kind: wireerr.UnknownType, Name: text}
		}
		v := int32(n)
		if s.Strict && !et.Has(v) {
			return nil, &wireerr.TypeError{Kind: wireerr.UnknownType, Name: fmt.Sprintf("%s=%d", et.Name(), v)}
		}
		return v, nil
	}
	pt, ok := desc.Element.(*pclass.PrimitiveType)
	if !ok {
		return nil, fmt.Errorf("pclass/serialize/xml: unsupported element type %T", desc.Element)
	}
	switch {
	case pt.Code.IsString():
		return text, nil
	case pt.Code.IsFloat():
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &wireerr.EncodingError{Kind: wireerr.UnknownTag, Cause: err}
		}
		return f, nil
	case pt.Code == pclass.GID:
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return nil, &wireerr.EncodingError{Kind: wireerr.UnknownTag, Cause: err}
		}
		return v, nil
	case pt.Code.Signed():
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, &wireerr.EncodingError{Kind: wireerr.UnknownTag, Cause: err}
		}
		return v, nil
	default:
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return nil, &wireerr.EncodingError{Kind: wireerr.UnknownTag, Cause: err}
		}
		return v, nil
	}
}
