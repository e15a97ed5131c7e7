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

// Package wireerr is the shared error taxonomy used across bitio, pclass,
// dml, and serialize. Every error kind named in the core error-handling
// design is represented here as a small closed enum paired with a sentinel
// so callers can test for it with [errors.Is], and a wrapper type that
// carries the context (offset, name, hash, ...) relevant to that kind.
package wireerr

import (
	"errors"
	"fmt"
)

// TypeErrorKind enumerates the ways type registration or lookup can fail.
type TypeErrorKind int

const (
	DuplicateName TypeErrorKind = iota
	HashCollision
	UnknownType
	NotClass
	NotPrimitive
)

var typeErrSentinels = [...]error{
	DuplicateName: errors.New("type name already registered"),
	HashCollision: errors.New("type hash collides with an existing registration"),
	UnknownType:   errors.New("no such registered type"),
	NotClass:      errors.New("type is not a class type"),
	NotPrimitive:  errors.New("type is not a primitive type"),
}

// TypeError reports a failure in type registration or lookup.
type TypeError struct {
	Kind TypeErrorKind
	Name string
	Hash uint32
}

func (e *TypeError) Unwrap() error { return typeErrSentinels[e.Kind] }

func (e *TypeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("pclass: %v: %q", e.Unwrap(), e.Name)
	}
	return fmt.Sprintf("pclass: %v: hash %#08x", e.Unwrap(), e.Hash)
}

// PropertyErrorKind enumerates the ways property access can fail.
type PropertyErrorKind int

const (
	OutOfRange PropertyErrorKind = iota
	TypeMismatch
	NullDereference
)

var propertyErrSentinels = [...]error{
	OutOfRange:       errors.New("property index out of range"),
	TypeMismatch:     errors.New("property value type mismatch"),
	NullDereference:  errors.New("dereference of a null pointer property"),
}

// PropertyError reports a failure accessing a property's live storage.
type PropertyError struct {
	Kind     PropertyErrorKind
	Property string
	Index    int
}

func (e *PropertyError) Unwrap() error { return propertyErrSentinels[e.Kind] }

func (e *PropertyError) Error() string {
	if e.Kind == OutOfRange {
		return fmt.Sprintf("pclass: property %q: %v (index %d)", e.Property, e.Unwrap(), e.Index)
	}
	return fmt.Sprintf("pclass: property %q: %v", e.Property, e.Unwrap())
}

// EncodingErrorKind enumerates the ways bit-stream or wire decoding can fail.
type EncodingErrorKind int

const (
	Truncated EncodingErrorKind = iota
	Misaligned
	UnknownTag
	BadMagic
	DecompressFailed
)

var encodingErrSentinels = [...]error{
	Truncated:        errors.New("not enough data remaining"),
	Misaligned:       errors.New("cursor is not byte-aligned"),
	UnknownTag:       errors.New("unrecognized primitive or class tag"),
	BadMagic:         errors.New("unrecognized file magic"),
	DecompressFailed: errors.New("zlib decompression failed"),
}

// EncodingError reports a failure decoding or encoding bits/bytes.
type EncodingError struct {
	Kind   EncodingErrorKind
	Offset int64 // bit offset at which the failure was detected
	Cause  error // underlying cause, e.g. a *zlib.Reader error
}

func (e *EncodingError) Unwrap() error { return encodingErrSentinels[e.Kind] }

func (e *EncodingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pclass: %v at bit offset %d: %v", e.Unwrap(), e.Offset, e.Cause)
	}
	return fmt.Sprintf("pclass: %v at bit offset %d", e.Unwrap(), e.Offset)
}

// FileErrorKind enumerates the ways the SerializedFile façade can fail.
type FileErrorKind int

const (
	ShortHeader FileErrorKind = iota
	IOFailed
	BadMode
)

var fileErrSentinels = [...]error{
	ShortHeader: errors.New("fewer than 4 bytes available to determine format"),
	IOFailed:    errors.New("file I/O failed"),
	BadMode:     errors.New("invalid file mode"),
}

// FileError reports a failure at the SerializedFile façade.
type FileError struct {
	Kind  FileErrorKind
	Path  string
	Cause error
}

func (e *FileError) Unwrap() error { return fileErrSentinels[e.Kind] }

func (e *FileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pclass: %v: %s: %v", e.Unwrap(), e.Path, e.Cause)
	}
	return fmt.Sprintf("pclass: %v: %s", e.Unwrap(), e.Path)
}
