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

import (
	"github.com/kiproto/pclass/wireerr"
)

// Property is the live binding of a [PropertyDescriptor] to storage in one
// [Instance]. Its API surface depends on the descriptor's cardinality and
// pointer-ness, matching spec.md §4.4: scalar Get/Set (plus SetNull/IsNull/
// Assign for pointer scalars), and Len/GetAt/SetAt for arrays and vectors
// (plus Push/Resize/Clear for vectors only).
type Property struct {
	desc *PropertyDescriptor
	cell *cell
	ts   *TypeSystem
}

// Descriptor returns the static metadata this property is bound to.
func (p *Property) Descriptor() *PropertyDescriptor { return p.desc }

func (p *Property) err(kind wireerr.PropertyErrorKind, index int) error {
	return &wireerr.PropertyError{Kind: kind, Property: p.desc.Name, Index: index}
}

// --- Scalar ---

// Get returns a scalar property's value: a Go-native primitive/enum value,
// or an *Instance when the element type is a class.
func (p *Property) Get() (any, error) {
	if p.desc.Cardinality.Kind != Scalar {
		return nil, p.err(wireerr.TypeMismatch, -1)
	}
	return p.getElem(&p.cell.one)
}

// Set assigns a scalar property's value.
func (p *Property) Set(value any) error {
	if p.desc.Cardinality.Kind != Scalar {
		return p.err(wireerr.TypeMismatch, -1)
	}
	return p.setElem(&p.cell.one, value)
}

// IsNull reports whether a pointer scalar is currently null.
func (p *Property) IsNull() bool {
	return p.desc.IsPointer && !p.cell.one.present
}

// SetNull clears a pointer scalar.
func (p *Property) SetNull() error {
	if !p.desc.IsPointer || p.desc.Cardinality.Kind != Scalar {
		return p.err(wireerr.TypeMismatch, -1)
	}
	p.cell.one = elem{present: false}
	return nil
}

// Assign binds a pointer scalar to inst, which must be exactly the
// descriptor's element class or a registered subclass of it.
func (p *Property) Assign(inst *Instance) error {
	if !p.desc.IsPointer || p.desc.Cardinality.Kind != Scalar {
		return p.err(wireerr.TypeMismatch, -1)
	}
	classElem, ok := p.desc.Element.(*ClassType)
	if !ok {
		return p.err(wireerr.TypeMismatch, -1)
	}
	if inst == nil {
		p.cell.one = elem{present: false}
		return nil
	}
	if !inst.class.IsSubclassOf(classElem) {
		return p.err(wireerr.TypeMismatch, -1)
	}
	p.cell.one = elem{present: true, inst: inst}
	return nil
}

// --- Arrays & vectors ---

// Len returns the number of elements in a fixed array or dynamic vector.
func (p *Property) Len() int {
	return len(p.cell.slice)
}

// GetAt returns the value of the i'th element of a fixed array or vector.
func (p *Property) GetAt(i int) (any, error) {
	if p.desc.Cardinality.Kind == Scalar {
		return nil, p.err(wireerr.TypeMismatch, i)
	}
	if i < 0 || i >= len(p.cell.slice) {
		return nil, p.err(wireerr.OutOfRange, i)
	}
	return p.getElem(&p.cell.slice[i])
}

// SetAt assigns the value of the i'th element of a fixed array or vector.
func (p *Property) SetAt(i int, value any) error {
	if p.desc.Cardinality.Kind == Scalar {
		return p.err(wireerr.TypeMismatch, i)
	}
	if i < 0 || i >= len(p.cell.slice) {
		return p.err(wireerr.OutOfRange, i)
	}
	return p.setElem(&p.cell.slice[i], value)
}

// Push appends a value to a dynamic vector.
func (p *Property) Push(value any) error {
	if p.desc.Cardinality.Kind != DynamicVector {
		return p.err(wireerr.TypeMismatch, -1)
	}
	e := zeroElem(p.desc)
	if err := p.setElemInto(&e, value); err != nil {
		return err
	}
	p.cell.slice = append(p.cell.slice, e)
	return nil
}

// Resize grows or shrinks a dynamic vector to exactly n elements,
// zero-filling any newly added slots.
func (p *Property) Resize(n int) error {
	if p.desc.Cardinality.Kind != DynamicVector {
		return p.err(wireerr.TypeMismatch, -1)
	}
	if n < 0 {
		return p.err(wireerr.OutOfRange, n)
	}
	if n <= len(p.cell.slice) {
		p.cell.slice = p.cell.slice[:n]
		return nil
	}
	for len(p.cell.slice) < n {
		p.cell.slice = append(p.cell.slice, zeroElem(p.desc))
	}
	return nil
}

// Clear empties a dynamic vector.
func (p *Property) Clear() error {
	if p.desc.Cardinality.Kind != DynamicVector {
		return p.err(wireerr.TypeMismatch, -1)
	}
	p.cell.slice = nil
	return nil
}

// --- elem helpers ---

func (p *Property) getElem(e *elem) (any, error) {
	if p.desc.IsPointer && !e.present {
		return nil, nil
	}
	if p.desc.Element.Kind() == KindClass {
		return e.inst, nil
	}
	return e.value, nil
}

func (p *Property) setElem(e *elem, value any) error {
	return p.setElemInto(e, value)
}

func (p *Property) setElemInto(e *elem, value any) error {
	if value == nil {
		if !p.desc.IsPointer {
			return p.err(wireerr.TypeMismatch, -1)
		}
		*e = elem{present: false}
		return nil
	}

	if p.desc.Element.Kind() == KindClass {
		classElem := p.desc.Element.(*ClassType)
		inst, ok := value.(*Instance)
		if !ok || !inst.class.IsSubclassOf(classElem) {
			return p.err(wireerr.TypeMismatch, -1)
		}
		*e = elem{present: true, inst: inst}
		return nil
	}

	normalized, err := normalizeValue(p.desc.Element, value)
	if err != nil {
		return p.err(wireerr.TypeMismatch, -1)
	}
	e.present = true
	e.value = normalized
	return nil
}

// normalizeValue coerces a caller-supplied Go value into the canonical
// in-memory representation for et, validating that it is at least
// assignable to et's shape.
func normalizeValue(et ElementType, value any) (any, error) {
	switch t := et.(type) {
	case *PrimitiveType:
		return normalizePrimitive(t.Code, value)
	case *EnumType:
		return normalizeEnum(t, value)
	default:
		return nil, errTypeMismatch
	}
}

func normalizePrimitive(code PrimitiveCode, value any) (any, error) {
	switch {
	case code.IsString():
		s, ok := value.(string)
		if !ok {
			return nil, errTypeMismatch
		}
		return s, nil
	case code.IsFloat():
		switch v := value.(type) {
		case float32:
			return float64(v), nil
		case float64:
			return v, nil
		}
		return nil, errTypeMismatch
	case code == GID:
		switch v := value.(type) {
		case uint64:
			return v, nil
		case int64:
			return uint64(v), nil
		case int:
			return uint64(v), nil
		case uint:
			return uint64(v), nil
		}
		return nil, errTypeMismatch
	case code.Signed():
		switch v := value.(type) {
		case int:
			return int64(v), nil
		case int8:
			return int64(v), nil
		case int16:
			return int64(v), nil
		case int32:
			return int64(v), nil
		case int64:
			return v, nil
		}
		return nil, errTypeMismatch
	default:
		switch v := value.(type) {
		case int:
			return uint64(v), nil
		case uint8:
			return uint64(v), nil
		case uint16:
			return uint64(v), nil
		case uint32:
			return uint64(v), nil
		case uint64:
			return v, nil
		case uint:
			return uint64(v), nil
		}
		return nil, errTypeMismatch
	}
}

func normalizeEnum(t *EnumType, value any) (any, error) {
	switch v := value.(type) {
	case string:
		n, ok := t.ValueOf(v)
		if !ok {
			return nil, errTypeMismatch
		}
		return n, nil
	case int32:
		return v, nil
	case int:
		return int32(v), nil
	}
	return nil, errTypeMismatch
}

var errTypeMismatch = &wireerr.PropertyError{Kind: wireerr.TypeMismatch}
