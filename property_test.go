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

func newTestSystem(t *testing.T) (*pclass.TypeSystem, *pclass.PrimitiveType) {
	t.Helper()
	ts := pclass.NewTypeSystem(pclass.WizardHashCalculator{})
	intType, err := ts.RegisterPrimitive("int", pclass.Int32)
	require.NoError(t, err)
	return ts, intType
}

func TestScalarGetSet(t *testing.T) {
	t.Parallel()

	ts, intType := newTestSystem(t)
	_, err := ts.RegisterClass("class A", nil, []*pclass.PropertyDescriptor{
		{Name: "Value", Element: intType, Cardinality: pclass.ScalarCardinality()},
	})
	require.NoError(t, err)

	inst, err := ts.Instantiate("class A")
	require.NoError(t, err)

	prop := inst.Property("Value")
	require.NoError(t, prop.Set(int64(-2147483648)))
	v, err := prop.Get()
	require.NoError(t, err)
	require.Equal(t, int64(-2147483648), v)
}

func TestFixedArrayOutOfRange(t *testing.T) {
	t.Parallel()

	ts, intType := newTestSystem(t)
	_, err := ts.RegisterClass("class A", nil, []*pclass.PropertyDescriptor{
		{Name: "Arr", Element: intType, Cardinality: pclass.FixedArrayCardinality(5)},
	})
	require.NoError(t, err)

	inst, err := ts.Instantiate("class A")
	require.NoError(t, err)
	prop := inst.Property("Arr")
	require.Equal(t, 5, prop.Len())

	_, err = prop.GetAt(5)
	require.Error(t, err)
	var propErr *wireerr.PropertyError
	require.ErrorAs(t, err, &propErr)
	require.Equal(t, wireerr.OutOfRange, propErr.Kind)
}

func TestVectorPushResizeClear(t *testing.T) {
	t.Parallel()

	ts, intType := newTestSystem(t)
	_, err := ts.RegisterClass("class A", nil, []*pclass.PropertyDescriptor{
		{Name: "Vec", Element: intType, Cardinality: pclass.DynamicVectorCardinality()},
	})
	require.NoError(t, err)

	inst, err := ts.Instantiate("class A")
	require.NoError(t, err)
	prop := inst.Property("Vec")
	require.Equal(t, 0, prop.Len())

	for i := 0; i < 100; i++ {
		require.NoError(t, prop.Push(int64(i)))
	}
	require.Equal(t, 100, prop.Len())
	v, err := prop.GetAt(42)
	require.NoError(t, err)
	require.Equal(t, int64(42), v)

	require.NoError(t, prop.Resize(5))
	require.Equal(t, 5, prop.Len())

	require.NoError(t, prop.Clear())
	require.Equal(t, 0, prop.Len())
}

func TestPointerScalarNullAndAssign(t *testing.T) {
	t.Parallel()

	ts := pclass.NewTypeSystem(pclass.WizardHashCalculator{})
	base, err := ts.RegisterClass("class Base", nil, nil)
	require.NoError(t, err)
	sub, err := ts.RegisterClass("class Sub", base, nil)
	require.NoError(t, err)
	other, err := ts.RegisterClass("class Other", nil, nil)
	require.NoError(t, err)

	_, err = ts.RegisterClass("class Holder", nil, []*pclass.PropertyDescriptor{
		{Name: "Child", Element: base, Cardinality: pclass.ScalarCardinality(), IsPointer: true},
	})
	require.NoError(t, err)

	holder, err := ts.Instantiate("class Holder")
	require.NoError(t, err)
	prop := holder.Property("Child")
	require.True(t, prop.IsNull())

	child, err := ts.Instantiate("class Sub")
	require.NoError(t, err)
	require.NoError(t, prop.Assign(child))
	require.False(t, prop.IsNull())

	bogus, err := ts.Instantiate("class Other")
	require.NoError(t, err)
	_ = other
	err = prop.Assign(bogus)
	require.Error(t, err)

	require.NoError(t, prop.SetNull())
	require.True(t, prop.IsNull())
}

func TestPrimitiveBoundaryValues(t *testing.T) {
	t.Parallel()

	ts := pclass.NewTypeSystem(pclass.WizardHashCalculator{})
	byt, err := ts.RegisterPrimitive("char", pclass.Int8)
	require.NoError(t, err)
	ubyt, err := ts.RegisterPrimitive("unsigned char", pclass.UInt8)
	require.NoError(t, err)
	shrt, err := ts.RegisterPrimitive("short", pclass.Int16)
	require.NoError(t, err)
	ushrt, err := ts.RegisterPrimitive("unsigned short", pclass.UInt16)
	require.NoError(t, err)
	intT, err := ts.RegisterPrimitive("int", pclass.Int32)
	require.NoError(t, err)
	uintT, err := ts.RegisterPrimitive("unsigned int", pclass.UInt32)
	require.NoError(t, err)
	gid, err := ts.RegisterPrimitive("gid", pclass.GID)
	require.NoError(t, err)

	_, err = ts.RegisterClass("class Boundary", nil, []*pclass.PropertyDescriptor{
		{Name: "Byt", Element: byt, Cardinality: pclass.ScalarCardinality()},
		{Name: "UByt", Element: ubyt, Cardinality: pclass.ScalarCardinality()},
		{Name: "Shrt", Element: shrt, Cardinality: pclass.ScalarCardinality()},
		{Name: "UShrt", Element: ushrt, Cardinality: pclass.ScalarCardinality()},
		{Name: "Int", Element: intT, Cardinality: pclass.ScalarCardinality()},
		{Name: "UInt", Element: uintT, Cardinality: pclass.ScalarCardinality()},
		{Name: "Gid", Element: gid, Cardinality: pclass.ScalarCardinality()},
	})
	require.NoError(t, err)

	inst, err := ts.Instantiate("class Boundary")
	require.NoError(t, err)

	cases := []struct {
		name string
		in   any
		want any
	}{
		{"Byt", int64(-127), int64(-127)},
		{"UByt", uint64(255), uint64(255)},
		{"Shrt", int64(-32768), int64(-32768)},
		{"UShrt", uint64(65535), uint64(65535)},
		{"Int", int64(-2147483648), int64(-2147483648)},
		{"UInt", uint64(4294967295), uint64(4294967295)},
		{"Gid", uint64(0x8899AABBCCDDEEFF), uint64(0x8899AABBCCDDEEFF)},
	}
	for _, c := range cases {
		prop := inst.Property(c.name)
		require.NoError(t, prop.Set(c.in))
		got, err := prop.Get()
		require.NoError(t, err)
		require.Equal(t, c.want, got)
	}
}
