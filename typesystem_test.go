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

package pclass_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kiproto/pclass"
	"github.com/kiproto/pclass/wireerr"
)

func newIntPrimitives(t *testing.T, ts *pclass.TypeSystem) *pclass.PrimitiveType {
	t.Helper()
	pt, err := ts.RegisterPrimitive("int", pclass.Int32)
	require.NoError(t, err)
	return pt
}

func TestHashStability(t *testing.T) {
	t.Parallel()

	calc := pclass.WizardHashCalculator{}
	a := calc.CalculateTypeHash("class TestObject")
	b := pclass.WizardHashCalculator{}.CalculateTypeHash("class TestObject")
	require.Equal(t, a, b)
}

func TestRegisterAndLookupClass(t *testing.T) {
	t.Parallel()

	ts := pclass.NewTypeSystem(pclass.WizardHashCalculator{})
	intType := newIntPrimitives(t, ts)

	ct, err := ts.RegisterClass("class A", nil, []*pclass.PropertyDescriptor{
		{Name: "X", Element: intType, Cardinality: pclass.ScalarCardinality()},
	})
	require.NoError(t, err)

	hash := pclass.WizardHashCalculator{}.CalculateTypeHash("class A")
	require.True(t, ts.HasName("class A"))
	require.True(t, ts.HasHash(hash))

	got, err := ts.LookupClass("class A")
	require.NoError(t, err)
	require.Same(t, ct, got)
}

func TestDuplicateNameFails(t *testing.T) {
	t.Parallel()

	ts := pclass.NewTypeSystem(pclass.WizardHashCalculator{})
	_, err := ts.RegisterEnum("enum E")
	require.NoError(t, err)

	_, err = ts.RegisterEnum("enum E")
	require.Error(t, err)
	var typeErr *wireerr.TypeError
	require.ErrorAs(t, err, &typeErr)
	require.Equal(t, wireerr.DuplicateName, typeErr.Kind)
}

func TestUnknownLookupFails(t *testing.T) {
	t.Parallel()

	ts := pclass.NewTypeSystem(pclass.WizardHashCalculator{})
	_, err := ts.LookupByName("struct MadeUp")
	require.Error(t, err)
	var typeErr *wireerr.TypeError
	require.ErrorAs(t, err, &typeErr)
	require.Equal(t, wireerr.UnknownType, typeErr.Kind)

	_, err = ts.LookupByHash(0xDEADA55)
	require.Error(t, err)
	require.ErrorAs(t, err, &typeErr)
	require.Equal(t, wireerr.UnknownType, typeErr.Kind)
}

func TestInstantiateNotClassFails(t *testing.T) {
	t.Parallel()

	ts := pclass.NewTypeSystem(pclass.WizardHashCalculator{})
	newIntPrimitives(t, ts)

	_, err := ts.Instantiate("int")
	require.Error(t, err)
	var typeErr *wireerr.TypeError
	require.ErrorAs(t, err, &typeErr)
	require.Equal(t, wireerr.NotClass, typeErr.Kind)
}

func TestPointerAliasesResolveToSameClass(t *testing.T) {
	t.Parallel()

	ts := pclass.NewTypeSystem(pclass.WizardHashCalculator{})
	ct, err := ts.RegisterClass("class TestObject", nil, nil)
	require.NoError(t, err)

	ptrAlias, err := ts.LookupClass("class TestObject*")
	require.NoError(t, err)
	require.Same(t, ct, ptrAlias)

	sharedAlias, err := ts.LookupClass("class SharedPointer<class TestObject>")
	require.NoError(t, err)
	require.Same(t, ct, sharedAlias)
}

func TestSubclassPropertyOrder(t *testing.T) {
	t.Parallel()

	ts := pclass.NewTypeSystem(pclass.WizardHashCalculator{})
	intType := newIntPrimitives(t, ts)

	base, err := ts.RegisterClass("class Base", nil, []*pclass.PropertyDescriptor{
		{Name: "A", Element: intType, Cardinality: pclass.ScalarCardinality()},
		{Name: "B", Element: intType, Cardinality: pclass.ScalarCardinality()},
	})
	require.NoError(t, err)

	derived, err := ts.RegisterClass("class Derived", base, []*pclass.PropertyDescriptor{
		{Name: "C", Element: intType, Cardinality: pclass.ScalarCardinality()},
	})
	require.NoError(t, err)

	var names []string
	for _, p := range derived.Properties() {
		names = append(names, p.Name)
	}
	require.Equal(t, []string{"A", "B", "C"}, names)

	inst, err := ts.Instantiate("class Derived")
	require.NoError(t, err)
	var liveNames []string
	for _, p := range inst.Properties() {
		liveNames = append(liveNames, p.Descriptor().Name)
	}
	require.Equal(t, names, liveNames)
}
