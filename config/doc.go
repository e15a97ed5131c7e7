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

// Package config is the hierarchical configuration collaborator spec.md
// §6 names as existing only so test harnesses can inject a type system
// instance and a sample root path: a tree of [Category] nodes, addressed
// by slash-separated paths, holding typed [Var]s with defaults and a
// single-argument constraint callback, loadable from YAML. It is not part
// of the serialization core and has no dependency on [pclass], [dml], or
// [serialize].
//
// Shape is grounded directly on original_source/ki/config.py's
// ConfigNode/ConfigVar/ConfigCategory/Config hierarchy: a node's Path is
// its parent's path joined with its own name by "/", a Var's Value falls
// back to its Default when unset, and loading merges a nested map into the
// tree, collecting missing required categories/vars instead of failing on
// the first one.
package config
