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

// Package messaging is the narrow collaborator contract spec.md §6 and §1
// describe between the DML record layer and the (out-of-core) network
// session state machine: a [MessageManager] that keys message descriptors
// by handler name, and an encode/decode pair that turns a named
// [dml.Record] into bytes and back. The session layer owns transports, IDs,
// and access levels; this package only knows how to name and shape a
// record.
package messaging
