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

import "github.com/kiproto/pclass/dml"

// FieldSpec declares one field a [Descriptor]'s records carry, in wire
// order.
type FieldSpec struct {
	Name         string
	Type         dml.FieldType
	Transferable bool
}

// Descriptor is the static shape of one named application message: the
// handler name the session layer dispatches on (spec.md §6,
// "message.handler" in original_source/ki/services.py's
// ServiceParticipant.handle_message), and the ordered DML fields a record
// built from this descriptor carries.
type Descriptor struct {
	Name   string
	Fields []FieldSpec
}

// NewRecord builds a fresh, empty [dml.Record] with exactly this
// descriptor's fields declared, in order.
func (d *Descriptor) NewRecord() *dml.Record {
	rec := dml.NewRecord()
	for _, f := range d.Fields {
		addField(rec, f)
	}
	return rec
}

func addField(rec *dml.Record, f FieldSpec) {
	switch f.Type {
	case dml.Byt:
		rec.AddBytField(f.Name, f.Transferable)
	case dml.UByt:
		rec.AddUBytField(f.Name, f.Transferable)
	case dml.Shrt:
		rec.AddShrtField(f.Name, f.Transferable)
	case dml.UShrt:
		rec.AddUShrtField(f.Name, f.Transferable)
	case dml.Int:
		rec.AddIntField(f.Name, f.Transferable)
	case dml.UInt:
		rec.AddUIntField(f.Name, f.Transferable)
	case dml.Str:
		rec.AddStrField(f.Name, f.Transferable)
	case dml.WStr:
		rec.AddWStrField(f.Name, f.Transferable)
	case dml.Flt:
		rec.AddFltField(f.Name, f.Transferable)
	case dml.Dbl:
		rec.AddDblField(f.Name, f.Transferable)
	case dml.Gid:
		rec.AddGidField(f.Name, f.Transferable)
	}
}
