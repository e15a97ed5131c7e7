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

package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kiproto/pclass/config"
)

// TestGetWithDefault is the literal scenario from spec.md §8: a variable
// declared with default=0xFF at path group-a/group-b/var-4 returns 255
// without any data loaded.
func TestGetWithDefault(t *testing.T) {
	t.Parallel()

	root := config.NewConfig()
	a := root.DefineCategory("group-a", "")
	b := a.DefineCategory("group-b", "")
	_, err := b.DefineVar("var-4", "", 0xFF, nil)
	require.NoError(t, err)

	v, err := root.Get("group-a/group-b/var-4")
	require.NoError(t, err)
	require.Equal(t, 255, v)
}

func TestSetValueHonorsConstraint(t *testing.T) {
	t.Parallel()

	root := config.NewConfig()
	positive := func(v any) bool {
		n, ok := v.(int)
		return ok && n > 0
	}
	v, err := root.DefineVar("count", "", 1, positive)
	require.NoError(t, err)

	require.NoError(t, v.SetValue(5))
	require.Equal(t, 5, v.Value())

	err = v.SetValue(-1)
	require.Error(t, err)
	require.Equal(t, 5, v.Value()) // rejected write leaves prior value intact
}

func TestDefineVarRejectsInvalidDefault(t *testing.T) {
	t.Parallel()

	root := config.NewConfig()
	alwaysFalse := func(any) bool { return false }
	_, err := root.DefineVar("bad", "", 1, alwaysFalse)
	require.Error(t, err)
}

func TestLoadMapReportsMissingRequiredVars(t *testing.T) {
	t.Parallel()

	root := config.NewConfig()
	_, err := root.DefineVar("required", "", nil, nil)
	require.NoError(t, err)
	_, err = root.DefineVar("optional", "", "fallback", nil)
	require.NoError(t, err)

	missing := root.LoadMap(map[string]any{"optional": "set"})
	require.Equal(t, []string{"required"}, missing)
}

func TestGetUnknownPath(t *testing.T) {
	t.Parallel()

	root := config.NewConfig()
	_, err := root.Get("nope/at/all")
	require.Error(t, err)
}

func TestLoadYAMLBytes(t *testing.T) {
	t.Parallel()

	root := config.NewConfig()
	net := root.DefineCategory("net", "")
	_, err := net.DefineVar("port", "", 12000, nil)
	require.NoError(t, err)

	missing, err := root.LoadYAMLBytes([]byte("net:\n  port: 12345\n"))
	require.NoError(t, err)
	require.Empty(t, missing)

	v, err := root.Get("net/port")
	require.NoError(t, err)
	require.Equal(t, 12345, v)
}
