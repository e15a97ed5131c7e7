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

// Type is the common identity shared by every registered type: a name, a
// hash derived from that name by the type system's [HashCalculator], and a
// kind. Type is immutable after registration.
type Type struct {
	name string
	hash uint32
	kind Kind
}

// Name returns the type's registered name.
func (t *Type) Name() string { return t.name }

// Hash returns the type's 32-bit identity hash.
func (t *Type) Hash() uint32 { return t.hash }

// Kind returns whether this is a primitive, enum, or class type.
func (t *Type) Kind() Kind { return t.kind }
