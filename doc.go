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

// Package pclass is a reflective object model over a fixed primitive set
// plus user-defined classes and enums, used to (de)serialize the object
// graphs exchanged by a proprietary MMO-family network protocol.
//
// A [TypeSystem] maps type names and 32-bit name hashes to [Type]
// descriptors: [PrimitiveType]s for the wire's fixed primitive set,
// [EnumType]s for named integer enumerations, and [ClassType]s for
// user-defined classes with an ordered list of [PropertyDescriptor]s.
// [Instance] is a live [ClassType] object: it owns one storage cell per
// descriptor, exposed in declaration order through [Instance.Properties],
// which every serializer in this module walks to produce or consume a
// wire representation.
//
// The type system itself does not know how to encode bytes; that lives in
// the sibling bitio, dml, and serialize packages, which consume a
// TypeSystem and an Instance graph to produce the binary, JSON, and XML
// wire forms documented in package serialize.
package pclass
