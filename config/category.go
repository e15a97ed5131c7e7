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

import "strings"

// Category is an interior node of the config tree: it owns named child
// categories and named [Var]s, ported from ConfigCategory in
// original_source/ki/config.py. The root of a tree is a Category whose
// name is "".
type Category struct {
	name        string
	description string
	parent      *Category

	categories map[string]*Category
	vars       map[string]*Var
	order      []string // child names, category or var, declaration order
}

// NewConfig returns a new, empty root category.
func NewConfig() *Category {
	return newCategory("", "")
}

func newCategory(name, description string) *Category {
	return &Category{
		name:        name,
		description: description,
		categories:  make(map[string]*Category),
		vars:        make(map[string]*Var),
	}
}

// Name returns the category's own (unqualified) name.
func (c *Category) Name() string { return c.name }

// Path returns the category's full slash-joined path from the root. The
// root's path is "".
func (c *Category) Path() string {
	if c.parent == nil || c.parent.Path() == "" {
		return c.name
	}
	return c.parent.Path() + "/" + c.name
}

// DefineCategory creates, attaches, and returns a new child category.
func (c *Category) DefineCategory(name, description string) *Category {
	child := newCategory(name, description)
	child.parent = c
	c.categories[name] = child
	c.order = append(c.order, name)
	return child
}

// DefineVar creates, attaches, and returns a new child variable. If def is
// non-nil and constraint rejects it, DefineVar fails with
// Error{Kind: InvalidData} rather than accepting a variable whose default
// could never be read back successfully.
func (c *Category) DefineVar(name, description string, def any, constraint Constraint) (*Var, error) {
	if def != nil && constraint != nil && !constraint(def) {
		return nil, &Error{Kind: InvalidData, Path: joinPath(c, name)}
	}
	v := &Var{name: name, description: description, def: def, constraint: constraint, parent: c}
	c.vars[name] = v
	c.order = append(c.order, name)
	return v, nil
}

// Get resolves a slash-separated path relative to c and returns the named
// variable's current value.
func (c *Category) Get(path string) (any, error) {
	v, err := c.lookupVar(path)
	if err != nil {
		return nil, err
	}
	return v.Value(), nil
}

// Var resolves a slash-separated path relative to c and returns the
// variable itself.
func (c *Category) Var(path string) (*Var, error) {
	return c.lookupVar(path)
}

func (c *Category) lookupVar(path string) (*Var, error) {
	parts := strings.Split(path, "/")
	varName := parts[len(parts)-1]
	parts = parts[:len(parts)-1]

	cur := c
	for _, name := range parts {
		child, ok := cur.categories[name]
		if !ok {
			return nil, &Error{Kind: InvalidPath, Path: path}
		}
		cur = child
	}
	v, ok := cur.vars[varName]
	if !ok {
		return nil, &Error{Kind: InvalidPath, Path: path}
	}
	return v, nil
}

// Category resolves a slash-separated path relative to c and returns the
// named child category.
func (c *Category) Category(path string) (*Category, error) {
	cur := c
	for _, name := range strings.Split(path, "/") {
		child, ok := cur.categories[name]
		if !ok {
			return nil, &Error{Kind: InvalidPath, Path: path}
		}
		cur = child
	}
	return cur, nil
}

// LoadMap merges data into c's variables and child categories, recursively.
// It returns every required (no-default) variable that data did not
// supply a value for, collecting as many as possible rather than failing
// on the first miss — matching ConfigCategory.load_dict's
// (missing_categories, missing_vars) return shape. Unlike the Python
// original this never terminates the process; MissingData is left for the
// caller to decide how to report.
func (c *Category) LoadMap(data map[string]any) (missingVars []string) {
	for name, v := range c.vars {
		raw, ok := data[name]
		if !ok {
			if v.def == nil {
				missingVars = append(missingVars, v.Path())
			}
			continue
		}
		_ = v.SetValue(raw)
	}
	for name, cat := range c.categories {
		child, ok := data[name].(map[string]any)
		if !ok {
			missingVars = append(missingVars, cat.requiredVarPaths()...)
			continue
		}
		missingVars = append(missingVars, cat.LoadMap(child)...)
	}
	return missingVars
}

func (c *Category) requiredVarPaths() []string {
	var out []string
	for _, v := range c.vars {
		if v.def == nil {
			out = append(out, v.Path())
		}
	}
	for _, cat := range c.categories {
		out = append(out, cat.requiredVarPaths()...)
	}
	return out
}
