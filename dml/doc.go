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

// Package dml implements the primitive, ordered, named-field record format
// used on the wire by application-level messages: a [Record] is a sequence
// of named fields, each of a fixed primitive type, each optionally
// "transferable" (encoded at all). Field order is insertion order and is
// part of the on-wire contract.
package dml
