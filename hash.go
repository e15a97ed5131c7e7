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

import "github.com/kiproto/pclass/internal/wirehash"

// HashCalculator computes a stable 32-bit identity hash for a type name.
// Implementations must be deterministic and order-dependent over the bytes
// of name, and must be stable across processes.
type HashCalculator interface {
	CalculateTypeHash(name string) uint32
}

// WizardHashCalculator is the required concrete [HashCalculator]. It is an
// FxHash-style byte hash (see internal/wirehash) — deterministic, stable,
// and with no collision-resistance guarantee beyond what the type
// registry's own uniqueness check enforces.
type WizardHashCalculator struct{}

// CalculateTypeHash implements [HashCalculator].
func (WizardHashCalculator) CalculateTypeHash(name string) uint32 {
	return wirehash.Hash32([]byte(name))
}
