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

package binary

import (
	"github.com/kiproto/pclass"
	"github.com/kiproto/pclass/bitio"
)

// encodeObjectFrame writes one object. In regular mode this is just the
// class hash followed by the property payload, bit-packed with no
// alignment. In file mode it is a byte-aligned frame: a 32-bit payload-size
// (in bits), the class hash, the payload, then a trailing byte-align.
func (s *Serializer) encodeObjectFrame(w *bitio.Stream, inst *pclass.Instance) error {
	if !s.IsFile {
		return s.encodeHashAndPayload(w, inst)
	}

	w.AlignToByte()
	tmp := bitio.NewBuffer(nil)
	tw := bitio.NewStream(tmp)
	if err := s.encodePayload(tw, inst); err != nil {
		return err
	}
	tw.AlignToByte()
	sizeBits := tw.Tell()
	if err := w.WriteBits(uint64(sizeBits), 32); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(inst.Class().Hash()), 32); err != nil {
		return err
	}
	return w.WriteBytes(tmp.Bytes()[:bitio.BitsToBytes(sizeBits)], int(bitio.BitsToBytes(sizeBits)))
}

// encodeNullObjectFrame writes the file-mode "absent object" marker: a
// zero-length payload and a zero class hash.
func (s *Serializer) encodeNullObjectFrame(w *bitio.Stream) error {
	w.AlignToByte()
	if err := w.WriteBits(0, 32); err != nil { // size
		return err
	}
	return w.WriteBits(0, 32) // hash
}

func (s *Serializer) encodeHashAndPayload(w *bitio.Stream, inst *pclass.Instance) error {
	if err := w.WriteBits(uint64(inst.Class().Hash()), 32); err != nil {
		return err
	}
	return s.encodePayload(w, inst)
}

func (s *Serializer) encodePayload(w *bitio.Stream, inst *pclass.Instance) error {
	for _, prop := range inst.Properties() {
		if s.IsFile {
			w.AlignToByte()
		}
		if err := s.encodeProperty(w, prop); err != nil {
			return err
		}
	}
	return nil
}

// decodeObjectFrame is the inverse of encodeObjectFrame. It returns a nil
// instance with a nil error for a file-mode null-object marker.
func (s *Serializer) decodeObjectFrame(r *bitio.Stream) (*pclass.Instance, error) {
	if !s.IsFile {
		return s.decodeHashAndPayload(r)
	}

	r.AlignToByte()
	sizeBits, err := r.ReadBits(32)
	if err != nil {
		return nil, err
	}
	hash, err := r.ReadBits(32)
	if err != nil {
		return nil, err
	}
	nbytes := int(bitio.BitsToBytes(sizeBits))
	if hash == 0 {
		return nil, nil
	}
	frame, err := r.ReadBytes(nbytes)
	if err != nil {
		return nil, err
	}
	inst, err := s.TS.InstantiateHash(uint32(hash))
	if err != nil {
		return nil, err
	}
	fr := bitio.NewStream(bitio.NewBuffer(frame))
	if err := s.decodePayload(fr, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

func (s *Serializer) decodeHashAndPayload(r *bitio.Stream) (*pclass.Instance, error) {
	hash, err := r.ReadBits(32)
	if err != nil {
		return nil, err
	}
	inst, err := s.TS.InstantiateHash(uint32(hash))
	if err != nil {
		return nil, err
	}
	if err := s.decodePayload(r, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

func (s *Serializer) decodePayload(r *bitio.Stream, inst *pclass.Instance) error {
	for _, prop := range inst.Properties() {
		if s.IsFile {
			r.AlignToByte()
		}
		if err := s.decodeProperty(r, prop); err != nil {
			return err
		}
	}
	return nil
}
