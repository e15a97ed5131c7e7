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

package config

// Constraint is a single-argument callback a [Var] checks every new value
// against, ported from ConfigVar's `constraint` parameter in
// original_source/ki/config.py.
type Constraint func(value any) bool

// Var is a single named, typed configuration leaf. Its current [Var.Value]
// falls back to its default when no value has been explicitly set or
// loaded, matching ConfigVar.value's property getter.
type Var struct {
	name        string
	description string
	def         any
	constraint  Constraint

	parent   *Category
	value    any
	hasValue bool
}

// Name returns the variable's own (unqualified) name.
func (v *Var) Name() string { return v.name }

// Description returns the variable's documentation string.
func (v *Var) Description() string { return v.description }

// Path returns the variable's full slash-separated path from the config
// root, e.g. "group-a/group-b/var-4".
func (v *Var) Path() string { return joinPath(v.parent, v.name) }

// Default returns the variable's declared default value, or nil if none
// was given.
func (v *Var) Default() any { return v.def }

// Value returns the variable's current value, falling back to its default
// if none has been set.
func (v *Var) Value() any {
	if v.hasValue {
		return v.value
	}
	return v.def
}

// SetValue assigns the variable's current value, checking it against the
// constraint callback if one was declared. The reference implementation
// also enforces a Python `isinstance` type check here; this port leaves
// that check to the caller (Go's static typing on value already does most
// of that work) and only re-validates the semantic constraint.
func (v *Var) SetValue(value any) error {
	if v.constraint != nil && !v.constraint(value) {
		return &Error{Kind: InvalidData, Path: v.Path()}
	}
	v.value = value
	v.hasValue = true
	return nil
}

func joinPath(parent *Category, name string) string {
	if parent == nil || parent.Path() == "" {
		return name
	}
	return parent.Path() + "/" + name
}
