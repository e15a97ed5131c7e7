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

// Instance is a live [ClassType] object. It owns one storage cell per
// property descriptor in [ClassType.Properties] order, and exposes them
// through [Instance.Properties] in that same order — the order every
// serializer in this module walks.
type Instance struct {
	class *ClassType
	ts    *TypeSystem
	cells []*cell
	props []*Property
}

// Class returns the concrete class this instance was created from.
func (i *Instance) Class() *ClassType { return i.class }

// Properties returns the instance's live property bindings, in descriptor
// order. This order is deterministic and is what every serializer relies
// on.
func (i *Instance) Properties() []*Property {
	out := make([]*Property, len(i.props))
	copy(out, i.props)
	return out
}

// Property returns the live binding for the named property, or nil if no
// such property exists on this instance's class.
func (i *Instance) Property(name string) *Property {
	for _, p := range i.props {
		if p.desc.Name == name {
			return p
		}
	}
	return nil
}

// elem is a single stored value or pointer slot.
type elem struct {
	present bool      // meaningful only when the owning descriptor is a pointer
	value   any        // populated when Element.Kind() != KindClass
	inst    *Instance  // populated when Element.Kind() == KindClass
}

// cell is a property's live storage: a scalar elem, or a slice of elem for
// fixed arrays and dynamic vectors.
type cell struct {
	desc  *PropertyDescriptor
	one   elem
	slice []elem
}

func newCell(d *PropertyDescriptor) *cell {
	c := &cell{desc: d}
	switch d.Cardinality.Kind {
	case Scalar:
		c.one = zeroElem(d)
	case FixedArray:
		c.slice = make([]elem, d.Cardinality.N)
		for i := range c.slice {
			c.slice[i] = zeroElem(d)
		}
	case DynamicVector:
		c.slice = nil
	}
	return c
}

func zeroElem(d *PropertyDescriptor) elem {
	if d.IsPointer {
		return elem{present: false}
	}
	if d.Element.Kind() == KindClass {
		return elem{present: true}
	}
	return elem{present: true, value: zeroValueFor(d.Element)}
}

func zeroValueFor(et ElementType) any {
	switch t := et.(type) {
	case *PrimitiveType:
		switch {
		case t.Code.IsString():
			return ""
		case t.Code.IsFloat():
			return float64(0)
		case t.Code == GID:
			return uint64(0)
		case t.Code.Signed():
			return int64(0)
		default:
			return uint64(0)
		}
	case *EnumType:
		return int32(0)
	default:
		return nil
	}
}
