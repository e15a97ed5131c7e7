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

// Package xml implements the XML wire form of a [pclass.Instance] graph.
// It is a hand-rolled writer/reader rather than encoding/xml's struct-tag
// marshaling: property names are runtime data carried in the type system,
// not Go struct tags, so a reflection-driven marshaler has nothing to
// reflect over. encoding/xml is used only for text escaping and, on decode,
// for its token scanner.
package xml
