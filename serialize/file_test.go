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

package serialize_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kiproto/pclass"
	"github.com/kiproto/pclass/serialize"
	"github.com/kiproto/pclass/serialize/binary"
	"github.com/kiproto/pclass/wireerr"
)

func buildFacadeSystem(t *testing.T) *pclass.TypeSystem {
	t.Helper()
	ts := pclass.NewTypeSystem(pclass.WizardHashCalculator{})
	strT, err := ts.RegisterPrimitive("std::string", pclass.StringNarrow)
	require.NoError(t, err)
	intT, err := ts.RegisterPrimitive("int", pclass.Int32)
	require.NoError(t, err)
	_, err = ts.RegisterClass("class TestObject", nil, []*pclass.PropertyDescriptor{
		{Name: "Name", Element: strT, Cardinality: pclass.ScalarCardinality()},
		{Name: "Value", Element: intT, Cardinality: pclass.ScalarCardinality()},
	})
	require.NoError(t, err)
	return ts
}

func TestFileRoundTripBinary(t *testing.T) {
	t.Parallel()

	ts := buildFacadeSystem(t)
	inst, err := ts.Instantiate("class TestObject")
	require.NoError(t, err)
	require.NoError(t, inst.Property("Name").Set("hi"))
	require.NoError(t, inst.Property("Value").Set(int64(7)))

	path := filepath.Join(t.TempDir(), "object.bin")
	f := serialize.NewFile(ts)
	require.NoError(t, f.WriteBinary(path, inst, binary.None))

	decoded, err := f.Read(path)
	require.NoError(t, err)
	v, err := decoded.Property("Name").Get()
	require.NoError(t, err)
	require.Equal(t, "hi", v)
}

func TestFileRoundTripJSON(t *testing.T) {
	t.Parallel()

	ts := buildFacadeSystem(t)
	inst, err := ts.Instantiate("class TestObject")
	require.NoError(t, err)
	require.NoError(t, inst.Property("Name").Set("hi"))
	require.NoError(t, inst.Property("Value").Set(int64(7)))

	path := filepath.Join(t.TempDir(), "object.json")
	f := serialize.NewFile(ts)
	require.NoError(t, f.WriteJSON(path, inst))

	decoded, err := f.Read(path)
	require.NoError(t, err)
	v, err := decoded.Property("Value").Get()
	require.NoError(t, err)
	require.Equal(t, int64(7), v)
}

func TestFileRoundTripXML(t *testing.T) {
	t.Parallel()

	ts := buildFacadeSystem(t)
	inst, err := ts.Instantiate("class TestObject")
	require.NoError(t, err)
	require.NoError(t, inst.Property("Name").Set("hi"))
	require.NoError(t, inst.Property("Value").Set(int64(7)))

	path := filepath.Join(t.TempDir(), "object.xml")
	f := serialize.NewFile(ts)
	require.NoError(t, f.WriteXML(path, inst))

	decoded, err := f.Read(path)
	require.NoError(t, err)
	v, err := decoded.Property("Name").Get()
	require.NoError(t, err)
	require.Equal(t, "hi", v)
}

func TestFileCustomNewline(t *testing.T) {
	t.Parallel()

	ts := buildFacadeSystem(t)
	inst, err := ts.Instantiate("class TestObject")
	require.NoError(t, err)
	require.NoError(t, inst.Property("Name").Set("hi"))
	require.NoError(t, inst.Property("Value").Set(int64(1)))

	path := filepath.Join(t.TempDir(), "object.json")
	f := serialize.NewFile(ts)
	f.Newline = []byte("\r\n")
	require.NoError(t, f.WriteJSON(path, inst))

	decoded, err := f.Read(path)
	require.NoError(t, err)
	v, err := decoded.Property("Name").Get()
	require.NoError(t, err)
	require.Equal(t, "hi", v)
}

func TestFileShortHeader(t *testing.T) {
	t.Parallel()

	ts := buildFacadeSystem(t)
	f := serialize.NewFile(ts)
	_, err := f.Decode("short", []byte{1, 2})
	var fe *wireerr.FileError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, wireerr.ShortHeader, fe.Kind)
}
