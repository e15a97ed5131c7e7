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

// Package pclasstest builds the canonical TestObject fixture shared by the
// binary, JSON, and XML serializer test suites: the same class shape,
// property names, and literal values as original_source's
// tests/test_serialization.py, so all three wire forms are exercised
// against identical data. It lives outside any _test.go file because Go
// test packages in different directories cannot import one another.
package pclasstest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kiproto/pclass"
)

// TypeName is the class name the fixture is registered under, matching the
// Python reference's TEST_OBJECT_TYPE_NAME.
const TypeName = "class TestObject"

// WideString is the fixture's m_wstring value, the same codepoint sequence
// as the Python reference's unicode literal (superscript "this is a test
// value").
const WideString = "ᵗʰⁱˢ ⁱˢ ᵃ " +
	"ᵗᵉˢᵗ ᵛᵃˡᵘᵉ"

const (
	intPtrValue = 52
	arrayLen    = 5
	vectorLen   = 100

	float32Literal = 3.1415927410125732421875
	float64Value   = 3.141592653589793115997963468544185161590576171875
)

// float32Value is float32Literal rounded to float32 precision and widened
// back, matching how [pclass.Property.Set] stores a float32 scalar.
var float32Value = float64(float32(float32Literal))

// BuildTypeSystem registers every builtin primitive under its canonical
// reference name (exercising [pclass.BuiltinPrimitives]) and the
// TestObject class shape, returning the type system and the registered
// class.
func BuildTypeSystem(t testing.TB) (*pclass.TypeSystem, *pclass.ClassType) {
	t.Helper()
	ts := pclass.NewTypeSystem(pclass.WizardHashCalculator{})

	prim := make(map[pclass.PrimitiveCode]*pclass.PrimitiveType)
	for _, code := range pclass.BuiltinPrimitives() {
		pt, err := ts.RegisterPrimitive(code.String(), code)
		require.NoError(t, err)
		prim[code] = pt
	}

	descs := []*pclass.PropertyDescriptor{
		{Name: "m_int4", Element: prim[pclass.Int4], Cardinality: pclass.ScalarCardinality()},
		{Name: "m_int8", Element: prim[pclass.Int8], Cardinality: pclass.ScalarCardinality()},
		{Name: "m_int16", Element: prim[pclass.Int16], Cardinality: pclass.ScalarCardinality()},
		{Name: "m_int24", Element: prim[pclass.Int24], Cardinality: pclass.ScalarCardinality()},
		{Name: "m_int32", Element: prim[pclass.Int32], Cardinality: pclass.ScalarCardinality()},
		{Name: "m_int64", Element: prim[pclass.Int64], Cardinality: pclass.ScalarCardinality()},

		{Name: "m_uint4", Element: prim[pclass.UInt4], Cardinality: pclass.ScalarCardinality()},
		{Name: "m_uint8", Element: prim[pclass.UInt8], Cardinality: pclass.ScalarCardinality()},
		{Name: "m_uint16", Element: prim[pclass.UInt16], Cardinality: pclass.ScalarCardinality()},
		{Name: "m_uint24", Element: prim[pclass.UInt24], Cardinality: pclass.ScalarCardinality()},
		{Name: "m_uint32", Element: prim[pclass.UInt32], Cardinality: pclass.ScalarCardinality()},
		{Name: "m_uint64", Element: prim[pclass.UInt64], Cardinality: pclass.ScalarCardinality()},

		{Name: "m_string", Element: prim[pclass.StringNarrow], Cardinality: pclass.ScalarCardinality()},
		{Name: "m_wstring", Element: prim[pclass.StringWide], Cardinality: pclass.ScalarCardinality()},

		{Name: "m_float32", Element: prim[pclass.Float32], Cardinality: pclass.ScalarCardinality()},
		{Name: "m_float64", Element: prim[pclass.Float64], Cardinality: pclass.ScalarCardinality()},

		{Name: "m_int_ptr", Element: prim[pclass.Int32], Cardinality: pclass.ScalarCardinality(), IsPointer: true},

		{Name: "m_int_array", Element: prim[pclass.Int32], Cardinality: pclass.FixedArrayCardinality(arrayLen)},
		{Name: "m_int_ptr_array", Element: prim[pclass.Int32], Cardinality: pclass.FixedArrayCardinality(arrayLen), IsPointer: true},

		{Name: "m_int_vector", Element: prim[pclass.Int32], Cardinality: pclass.DynamicVectorCardinality()},
		{Name: "m_int_ptr_vector", Element: prim[pclass.Int32], Cardinality: pclass.DynamicVectorCardinality(), IsPointer: true},
	}

	root, err := ts.RegisterClass(TypeName, nil, descs)
	require.NoError(t, err)
	return ts, root
}

// Populate instantiates the canonical TestObject and assigns the reference
// implementation's literal field values, matching test_serialization.py's
// test_object fixture.
func Populate(t testing.TB, ts *pclass.TypeSystem) *pclass.Instance {
	t.Helper()
	inst, err := ts.Instantiate(TypeName)
	require.NoError(t, err)

	require.NoError(t, inst.Property("m_int4").Set(int64(-6)))
	require.NoError(t, inst.Property("m_int8").Set(int64(0x01)))
	require.NoError(t, inst.Property("m_int16").Set(int64(0x0203)))
	require.NoError(t, inst.Property("m_int24").Set(int64(0x040506)))
	require.NoError(t, inst.Property("m_int32").Set(int64(0x0708090A)))
	require.NoError(t, inst.Property("m_int64").Set(int64(0x0B0C0D0E0F101112)))

	require.NoError(t, inst.Property("m_uint4").Set(uint64(5)))
	require.NoError(t, inst.Property("m_uint8").Set(uint64(0x01)))
	require.NoError(t, inst.Property("m_uint16").Set(uint64(0x0203)))
	require.NoError(t, inst.Property("m_uint24").Set(uint64(0x040506)))
	require.NoError(t, inst.Property("m_uint32").Set(uint64(0x0708090A)))
	require.NoError(t, inst.Property("m_uint64").Set(uint64(0x0B0C0D0E0F101112)))

	require.NoError(t, inst.Property("m_string").Set("This is a test value"))
	require.NoError(t, inst.Property("m_wstring").Set(WideString))

	require.NoError(t, inst.Property("m_float32").Set(float32(float32Literal)))
	require.NoError(t, inst.Property("m_float64").Set(float64(float64Value)))

	require.NoError(t, inst.Property("m_int_ptr").Set(int64(intPtrValue)))

	for i := 0; i < arrayLen; i++ {
		require.NoError(t, inst.Property("m_int_array").SetAt(i, int64(i)))
		require.NoError(t, inst.Property("m_int_ptr_array").SetAt(i, int64(i)))
	}

	for i := 0; i < vectorLen; i++ {
		require.NoError(t, inst.Property("m_int_vector").Push(int64(i)))
		require.NoError(t, inst.Property("m_int_ptr_vector").Push(int64(i)))
	}

	return inst
}

// RequireEqual asserts that inst holds exactly the canonical fixture's
// values, the same set test_serialization.py's _validate_test_object
// checks.
func RequireEqual(t testing.TB, inst *pclass.Instance) {
	t.Helper()

	want := func(name string, v any) {
		t.Helper()
		got, err := inst.Property(name).Get()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}

	want("m_int4", int64(-6))
	want("m_int8", int64(0x01))
	want("m_int16", int64(0x0203))
	want("m_int24", int64(0x040506))
	want("m_int32", int64(0x0708090A))
	want("m_int64", int64(0x0B0C0D0E0F101112))

	want("m_uint4", uint64(5))
	want("m_uint8", uint64(0x01))
	want("m_uint16", uint64(0x0203))
	want("m_uint24", uint64(0x040506))
	want("m_uint32", uint64(0x0708090A))
	want("m_uint64", uint64(0x0B0C0D0E0F101112))

	want("m_string", "This is a test value")
	want("m_wstring", WideString)

	want("m_float32", float32Value)
	want("m_float64", float64(float64Value))

	want("m_int_ptr", int64(intPtrValue))

	for i := 0; i < arrayLen; i++ {
		v, err := inst.Property("m_int_array").GetAt(i)
		require.NoError(t, err)
		require.Equal(t, int64(i), v)

		v, err = inst.Property("m_int_ptr_array").GetAt(i)
		require.NoError(t, err)
		require.Equal(t, int64(i), v)
	}

	require.Equal(t, vectorLen, inst.Property("m_int_vector").Len())
	require.Equal(t, vectorLen, inst.Property("m_int_ptr_vector").Len())
	for i := 0; i < vectorLen; i++ {
		v, err := inst.Property("m_int_vector").GetAt(i)
		require.NoError(t, err)
		require.Equal(t, int64(i), v)

		v, err = inst.Property("m_int_ptr_vector").GetAt(i)
		require.NoError(t, err)
		require.Equal(t, int64(i), v)
	}
}
