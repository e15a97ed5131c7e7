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

package messaging

import (
	"encoding/binary"

	"github.com/kiproto/pclass/dml"
	"github.com/kiproto/pclass/wireerr"
)

// MessageManager registers [Descriptor]s by name and is the only thing
// [Encode] and [Decode] need to turn a wire payload back into the right
// shape of [dml.Record] — matching the reference binding's
// `lib.protocol.dml.MessageManager`, a native registry the session layer
// constructs once per protocol version.
type MessageManager struct {
	byName map[string]*Descriptor
	order  []*Descriptor
}

// NewMessageManager returns an empty registry.
func NewMessageManager() *MessageManager {
	return &MessageManager{byName: make(map[string]*Descriptor)}
}

// Register adds d under d.Name. Registering two descriptors with the same
// name is a TypeError/DuplicateName, mirroring the type system's own
// registration discipline (spec.md §4.3).
func (m *MessageManager) Register(d *Descriptor) error {
	if _, exists := m.byName[d.Name]; exists {
		return &wireerr.TypeError{Kind: wireerr.DuplicateName, Name: d.Name}
	}
	m.byName[d.Name] = d
	m.order = append(m.order, d)
	return nil
}

// Lookup returns the descriptor registered under name.
func (m *MessageManager) Lookup(name string) (*Descriptor, error) {
	d, ok := m.byName[name]
	if !ok {
		return nil, &wireerr.TypeError{Kind: wireerr.UnknownType, Name: name}
	}
	return d, nil
}

// Descriptors returns every registered descriptor in registration order.
func (m *MessageManager) Descriptors() []*Descriptor {
	out := make([]*Descriptor, len(m.order))
	copy(out, m.order)
	return out
}

// Message pairs a handler name with the record to encode, or the record
// decoded off the wire under that handler.
type Message struct {
	Handler string
	Record  *dml.Record
}

// Encode serializes msg as: a u16 LE byte-length-prefixed UTF-8 handler
// name, followed by msg.Record.ToBytes(). This is the DML "record
// encode/decode" contract spec.md §1 hands to the (out-of-core) session
// layer: the session layer is responsible for any further framing
// (opcodes, access-level checks, transport bytes) around this payload.
func (m *MessageManager) Encode(msg *Message) ([]byte, error) {
	if _, err := m.Lookup(msg.Handler); err != nil {
		return nil, err
	}
	body, err := msg.Record.ToBytes()
	if err != nil {
		return nil, err
	}
	name := []byte(msg.Handler)
	out := make([]byte, 2+len(name)+len(body))
	binary.LittleEndian.PutUint16(out, uint16(len(name)))
	copy(out[2:], name)
	copy(out[2+len(name):], body)
	return out, nil
}

// Decode parses data written by [MessageManager.Encode]: it reads the
// handler name, looks up its descriptor to learn the record's field shape,
// and decodes the remaining bytes into a fresh record of that shape.
func (m *MessageManager) Decode(data []byte) (*Message, error) {
	if len(data) < 2 {
		return nil, &wireerr.EncodingError{Kind: wireerr.Truncated}
	}
	n := int(binary.LittleEndian.Uint16(data))
	if len(data) < 2+n {
		return nil, &wireerr.EncodingError{Kind: wireerr.Truncated, Offset: 16}
	}
	name := string(data[2 : 2+n])
	desc, err := m.Lookup(name)
	if err != nil {
		return nil, err
	}
	rec := desc.NewRecord()
	if err := rec.FromBytes(data[2+n:]); err != nil {
		return nil, err
	}
	return &Message{Handler: name, Record: rec}, nil
}
