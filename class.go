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

// ClassType is the [Type] descriptor for a user-defined class: an optional
// single base class and an ordered list of [PropertyDescriptor]s declared
// directly on this class. A subclass's full property list is its base's
// list followed by its own, in declaration order — see [ClassType.Properties].
type ClassType struct {
	Type

	Base  *ClassType
	owned []*PropertyDescriptor
}

// Properties returns this class's full, ordered property descriptor list:
// the base class's properties (recursively) followed by this class's own.
func (c *ClassType) Properties() []*PropertyDescriptor {
	if c.Base == nil {
		out := make([]*PropertyDescriptor, len(c.owned))
		copy(out, c.owned)
		return out
	}
	base := c.Base.Properties()
	out := make([]*PropertyDescriptor, 0, len(base)+len(c.owned))
	out = append(out, base...)
	out = append(out, c.owned...)
	return out
}

// IsSubclassOf reports whether c is other, or derives from it through any
// number of base-class links.
func (c *ClassType) IsSubclassOf(other *ClassType) bool {
	for t := c; t != nil; t = t.Base {
		if t == other || t.Hash() == other.Hash() {
			return true
		}
	}
	return false
}

// newInstance builds a fresh [Instance] of this class, with one live
// storage cell per entry in [ClassType.Properties].
func (c *ClassType) newInstance(ts *TypeSystem) *Instance {
	descs := c.Properties()
	inst := &Instance{
		class: c,
		ts:    ts,
		cells: make([]*cell, len(descs)),
		props: make([]*Property, len(descs)),
	}
	for i, d := range descs {
		cl := newCell(d)
		inst.cells[i] = cl
		inst.props[i] = &Property{desc: d, cell: cl, ts: ts}
	}
	return inst
}
