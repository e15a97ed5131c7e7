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

package messaging_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kiproto/pclass/dml"
	"github.com/kiproto/pclass/messaging"
)

func buildManager(t *testing.T) *messaging.MessageManager {
	t.Helper()
	m := messaging.NewMessageManager()
	require.NoError(t, m.Register(&messaging.Descriptor{
		Name: "LOGIN_REQUEST",
		Fields: []messaging.FieldSpec{
			{Name: "Username", Type: dml.Str, Transferable: true},
			{Name: "SessionID", Type: dml.Gid, Transferable: true},
		},
	}))
	return m
}

func TestMessageManagerRoundTrip(t *testing.T) {
	t.Parallel()

	m := buildManager(t)
	desc, err := m.Lookup("LOGIN_REQUEST")
	require.NoError(t, err)

	rec := desc.NewRecord()
	require.NoError(t, rec.GetField("Username", dml.Str).SetValue("wizard101"))
	require.NoError(t, rec.GetField("SessionID", dml.Gid).SetValue(uint64(0x8899AABBCCDDEEFF)))

	encoded, err := m.Encode(&messaging.Message{Handler: "LOGIN_REQUEST", Record: rec})
	require.NoError(t, err)

	msg, err := m.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, "LOGIN_REQUEST", msg.Handler)
	require.Equal(t, "wizard101", msg.Record.GetField("Username", dml.Str).Value())
	require.Equal(t, uint64(0x8899AABBCCDDEEFF), msg.Record.GetField("SessionID", dml.Gid).Value())
}

func TestMessageManagerUnknownHandler(t *testing.T) {
	t.Parallel()

	m := buildManager(t)
	_, err := m.Encode(&messaging.Message{Handler: "NOPE", Record: dml.NewRecord()})
	require.Error(t, err)
}

func TestMessageManagerDuplicateRegistration(t *testing.T) {
	t.Parallel()

	m := buildManager(t)
	err := m.Register(&messaging.Descriptor{Name: "LOGIN_REQUEST"})
	require.Error(t, err)
}

func TestMessageManagerTruncatedDecode(t *testing.T) {
	t.Parallel()

	m := buildManager(t)
	_, err := m.Decode([]byte{0x01})
	require.Error(t, err)
}
