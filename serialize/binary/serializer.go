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
	"bytes"
	"compress/zlib"
	"io"

	"github.com/kiproto/pclass"
	"github.com/kiproto/pclass/bitio"
	"github.com/kiproto/pclass/wireerr"
)

// Serializer encodes and decodes [pclass.Instance] graphs in the compact
// binary wire form described by spec.md §4.6.
type Serializer struct {
	TS     *pclass.TypeSystem
	IsFile bool
	Flags  Flags

	// Strict controls how decode treats an enum element whose integer value
	// is not one of its [pclass.EnumType]'s registered elements: a
	// wireerr.TypeError/UnknownType in strict mode, or the raw value passed
	// through unchecked otherwise. spec.md's default is strict.
	Strict bool
}

// New returns a binary serializer bound to ts, in either regular
// (isFile=false) or file (isFile=true) mode, with the given envelope flags
// and strict-mode enum validation setting.
func New(ts *pclass.TypeSystem, isFile bool, flags Flags, strict bool) *Serializer {
	return &Serializer{TS: ts, IsFile: isFile, Flags: flags, Strict: strict}
}

// Encode writes inst's wire form, including the envelope (flags word and/or
// zlib compression) configured on s.
func (s *Serializer) Encode(inst *pclass.Instance) ([]byte, error) {
	bodyBuf := bitio.NewBuffer(nil)
	bodyStream := bitio.NewStream(bodyBuf)
	if err := s.encodeObjectFrame(bodyStream, inst); err != nil {
		return nil, err
	}
	bodyStream.AlignToByte()
	body := bodyBuf.Bytes()[:bitio.BitsToBytes(bodyStream.Tell())]

	out := bitio.NewBuffer(nil)
	outStream := bitio.NewStream(out)
	if s.Flags&WriteSerializerFlags != 0 {
		if err := outStream.WriteBits(uint64(uint32(s.Flags)), 32); err != nil {
			return nil, err
		}
	}
	if s.Flags&Compressed != 0 {
		var compressed bytes.Buffer
		zw := zlib.NewWriter(&compressed)
		if _, err := zw.Write(body); err != nil {
			return nil, &wireerr.EncodingError{Kind: wireerr.DecompressFailed, Cause: err}
		}
		if err := zw.Close(); err != nil {
			return nil, &wireerr.EncodingError{Kind: wireerr.DecompressFailed, Cause: err}
		}
		if err := outStream.WriteBits(uint64(len(body)), 32); err != nil {
			return nil, err
		}
		if err := outStream.WriteBytes(compressed.Bytes(), compressed.Len()); err != nil {
			return nil, err
		}
	} else {
		if err := outStream.WriteBytes(body, len(body)); err != nil {
			return nil, err
		}
	}
	outStream.AlignToByte()
	return out.Bytes()[:bitio.BitsToBytes(outStream.Tell())], nil
}

// Decode parses data per s's configured flags (or the flags word embedded
// in data, when [WriteSerializerFlags] is set) and returns the root
// instance.
func (s *Serializer) Decode(data []byte) (*pclass.Instance, error) {
	buf := bitio.NewBuffer(data)
	stream := bitio.NewStream(buf)

	flags := s.Flags
	if s.Flags&WriteSerializerFlags != 0 {
		v, err := stream.ReadBits(32)
		if err != nil {
			return nil, err
		}
		flags = Flags(v)
	}
	stream.AlignToByte()
	rest, err := stream.ReadBytes(buf.Size() - int(bitio.BitsToBytes(stream.Tell())))
	if err != nil {
		return nil, err
	}

	var body []byte
	if flags&Compressed != 0 {
		if len(rest) < 4 {
			return nil, &wireerr.EncodingError{Kind: wireerr.Truncated}
		}
		uncompressedSize := int(rest[0]) | int(rest[1])<<8 | int(rest[2])<<16 | int(rest[3])<<24
		zr, err := zlib.NewReader(bytes.NewReader(rest[4:]))
		if err != nil {
			return nil, &wireerr.EncodingError{Kind: wireerr.DecompressFailed, Cause: err}
		}
		defer zr.Close()
		decoded, err := io.ReadAll(io.LimitReader(zr, int64(uncompressedSize)))
		if err != nil {
			return nil, &wireerr.EncodingError{Kind: wireerr.DecompressFailed, Cause: err}
		}
		body = decoded
	} else {
		body = rest
	}

	bodyBuf := bitio.NewBuffer(body)
	bodyStream := bitio.NewStream(bodyBuf)
	return s.decodeObjectFrame(bodyStream)
}
