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

// ElementType is satisfied by *PrimitiveType, *EnumType, and *ClassType: it
// is whatever a [PropertyDescriptor] names as the type of its elements.
type ElementType interface {
	Name() string
	Hash() uint32
	Kind() Kind
}

// PropertyDescriptor is static metadata describing one field of a
// [ClassType]: its name, element type, cardinality, and whether it is a
// (possibly polymorphic, possibly null) pointer slot.
type PropertyDescriptor struct {
	Name        string
	Element     ElementType
	Cardinality Cardinality
	IsPointer   bool
}

var (
	_ ElementType = (*PrimitiveType)(nil)
	_ ElementType = (*EnumType)(nil)
	_ ElementType = (*ClassType)(nil)
)
