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
	"fmt"

	"github.com/kiproto/pclass/wireerr"
)

// TypeSystem is a registry mapping type names and 32-bit hashes to [Type]
// descriptors. It is read-mostly after registration: concurrent
// registration is not supported, and concurrent reads are only safe when
// no registration is in flight (spec.md §5).
type TypeSystem struct {
	hashCalc HashCalculator

	byName map[string]any // *PrimitiveType | *EnumType | *ClassType
	byHash map[uint32]any

	order []any // primary registrations, in registration order
}

// NewTypeSystem returns an empty type system using calc to derive type
// hashes from names.
func NewTypeSystem(calc HashCalculator) *TypeSystem {
	return &TypeSystem{
		hashCalc: calc,
		byName:   make(map[string]any),
		byHash:   make(map[uint32]any),
	}
}

// HashCalculator returns the type system's installed hash calculator.
func (ts *TypeSystem) HashCalculator() HashCalculator { return ts.hashCalc }

// bind registers a single (name -> t, hash -> t) pair, failing if name is
// already taken by something else, or if the derived hash collides with an
// existing registration for a different type.
func (ts *TypeSystem) bind(name string, t any) (uint32, error) {
	if existing, ok := ts.byName[name]; ok && existing != t {
		return 0, &wireerr.TypeError{Kind: wireerr.DuplicateName, Name: name}
	}
	hash := ts.hashCalc.CalculateTypeHash(name)
	if existing, ok := ts.byHash[hash]; ok && existing != t {
		return 0, &wireerr.TypeError{Kind: wireerr.HashCollision, Name: name, Hash: hash}
	}
	ts.byName[name] = t
	ts.byHash[hash] = t
	return hash, nil
}

// RegisterPrimitive registers one of the fixed primitive wire types under
// name.
func (ts *TypeSystem) RegisterPrimitive(name string, code PrimitiveCode) (*PrimitiveType, error) {
	pt := &PrimitiveType{Code: code}
	hash, err := ts.bind(name, pt)
	if err != nil {
		return nil, err
	}
	pt.Type = Type{name: name, hash: hash, kind: KindPrimitive}
	ts.order = append(ts.order, pt)
	return pt, nil
}

// RegisterEnum registers a new, initially empty enum type under name. Use
// [EnumType.Define] to add elements to the returned type.
func (ts *TypeSystem) RegisterEnum(name string) (*EnumType, error) {
	et := newEnumType(Type{})
	hash, err := ts.bind(name, et)
	if err != nil {
		return nil, err
	}
	et.Type = Type{name: name, hash: hash, kind: KindEnum}
	ts.order = append(ts.order, et)
	return et, nil
}

// RegisterClass registers a new class type under name, with the given
// optional base class and own property descriptors. Two alias names are
// registered automatically and resolve to the exact same *ClassType:
// "<name>*" (a pointer alias) and "class SharedPointer<<name>>" (a
// shared-pointer alias), matching the reference implementation's metaclass
// behavior.
func (ts *TypeSystem) RegisterClass(name string, base *ClassType, descriptors []*PropertyDescriptor) (*ClassType, error) {
	ct := &ClassType{Base: base, owned: append([]*PropertyDescriptor{}, descriptors...)}
	hash, err := ts.bind(name, ct)
	if err != nil {
		return nil, err
	}
	ct.Type = Type{name: name, hash: hash, kind: KindClass}

	pointerAlias := name + "*"
	sharedAlias := fmt.Sprintf("class SharedPointer<%s>", name)
	if _, err := ts.bind(pointerAlias, ct); err != nil {
		return nil, err
	}
	if _, err := ts.bind(sharedAlias, ct); err != nil {
		return nil, err
	}

	ts.order = append(ts.order, ct)
	return ct, nil
}

// LookupByName returns the type registered under name.
func (ts *TypeSystem) LookupByName(name string) (any, error) {
	t, ok := ts.byName[name]
	if !ok {
		return nil, &wireerr.TypeError{Kind: wireerr.UnknownType, Name: name}
	}
	return t, nil
}

// LookupByHash returns the type registered under hash.
func (ts *TypeSystem) LookupByHash(hash uint32) (any, error) {
	t, ok := ts.byHash[hash]
	if !ok {
		return nil, &wireerr.TypeError{Kind: wireerr.UnknownType, Hash: hash}
	}
	return t, nil
}

// LookupClass is [TypeSystem.LookupByName] restricted to class types.
func (ts *TypeSystem) LookupClass(name string) (*ClassType, error) {
	t, err := ts.LookupByName(name)
	if err != nil {
		return nil, err
	}
	ct, ok := t.(*ClassType)
	if !ok {
		return nil, &wireerr.TypeError{Kind: wireerr.NotClass, Name: name}
	}
	return ct, nil
}

// LookupClassByHash is [TypeSystem.LookupByHash] restricted to class types.
func (ts *TypeSystem) LookupClassByHash(hash uint32) (*ClassType, error) {
	t, err := ts.LookupByHash(hash)
	if err != nil {
		return nil, err
	}
	ct, ok := t.(*ClassType)
	if !ok {
		return nil, &wireerr.TypeError{Kind: wireerr.NotClass, Hash: hash}
	}
	return ct, nil
}

// HasName reports whether name is registered.
func (ts *TypeSystem) HasName(name string) bool {
	_, ok := ts.byName[name]
	return ok
}

// HasHash reports whether hash is registered.
func (ts *TypeSystem) HasHash(hash uint32) bool {
	_, ok := ts.byHash[hash]
	return ok
}

// Instantiate creates a fresh [Instance] of the class registered under
// name.
func (ts *TypeSystem) Instantiate(name string) (*Instance, error) {
	ct, err := ts.LookupClass(name)
	if err != nil {
		return nil, err
	}
	return ct.newInstance(ts), nil
}

// InstantiateHash creates a fresh [Instance] of the class registered under
// hash.
func (ts *TypeSystem) InstantiateHash(hash uint32) (*Instance, error) {
	ct, err := ts.LookupClassByHash(hash)
	if err != nil {
		return nil, err
	}
	return ct.newInstance(ts), nil
}

// Iter returns every primarily-registered type (not pointer/shared-pointer
// aliases) in registration order.
func (ts *TypeSystem) Iter() []any {
	out := make([]any, len(ts.order))
	copy(out, ts.order)
	return out
}
