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

// EnumType carries the name-to-value mapping for a registered enum. The
// valid values are exactly the registered set; an unregistered integer
// read off the wire is accepted but is not a member of this type.
type EnumType struct {
	Type

	byName  map[string]int32
	byValue map[int32]string
	order   []string
}

func newEnumType(t Type) *EnumType {
	return &EnumType{
		Type:    t,
		byName:  make(map[string]int32),
		byValue: make(map[int32]string),
	}
}

// Define adds a named element to the enum. Redefining an existing name
// overwrites its value; this is a registration-time operation and is not
// safe for concurrent use, matching the type system's single-writer model.
func (e *EnumType) Define(name string, value int32) {
	if _, exists := e.byName[name]; !exists {
		e.order = append(e.order, name)
	}
	e.byName[name] = value
	e.byValue[value] = name
}

// ValueOf returns the integer value registered for name.
func (e *EnumType) ValueOf(name string) (int32, bool) {
	v, ok := e.byName[name]
	return v, ok
}

// NameOf returns the element name registered for value.
func (e *EnumType) NameOf(value int32) (string, bool) {
	n, ok := e.byValue[value]
	return n, ok
}

// Has reports whether value is one of the enum's registered elements.
func (e *EnumType) Has(value int32) bool {
	_, ok := e.byValue[value]
	return ok
}

// Elements returns the enum's element names in declaration order.
func (e *EnumType) Elements() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}
