// Copyright 2018 Google LLC
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

// Package pb provides the trimmed field-accessor the teacher's
// common/types/pb reflection cache offers in full: given a proto.Message
// and a field name, look up the protoreflect.FieldDescriptor and return its
// Go-native value, or report that it is absent.
//
// This is the concrete shape of §1's "opaque object... named field or index"
// contract — the core never imports a full message-reflection layer of its
// own, it only ever asks one question (named field -> native value) through
// this tiny adapter, which common/types/message.go then lifts into a Val.
package pb

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// FieldDescriptor names a field and reports whether the message carries it.
type FieldDescriptor struct {
	desc protoreflect.FieldDescriptor
	msg  protoreflect.Message
}

// LookupField resolves name (a proto field name, not a Go struct field name)
// against msg's descriptor. The second return is false if no such field is
// declared on the message type at all (a build-time/shape error, surfaced
// by the caller as no_such_field).
func LookupField(msg proto.Message, name string) (FieldDescriptor, bool) {
	m := msg.ProtoReflect()
	fd := m.Descriptor().Fields().ByName(protoreflect.Name(name))
	if fd == nil {
		return FieldDescriptor{}, false
	}
	return FieldDescriptor{desc: fd, msg: m}, true
}

// Has reports whether the field is populated (protoreflect presence rules:
// proto3 scalar fields without explicit optional are present iff they hold a
// non-zero value; message/list/map fields are present iff non-empty/non-nil).
func (f FieldDescriptor) Has() bool {
	return f.msg.Has(f.desc)
}

// Value returns the field's native Go value via protoreflect.Value.Interface.
func (f FieldDescriptor) Value() interface{} {
	return f.msg.Get(f.desc).Interface()
}

// Kind reports the protobuf wire kind of the field, used by message.go to
// pick the right Val constructor.
func (f FieldDescriptor) Kind() protoreflect.Kind {
	return f.desc.Kind()
}

// IsList reports whether the field is a repeated (non-map) field.
func (f FieldDescriptor) IsList() bool {
	return f.desc.IsList()
}

// IsMap reports whether the field is a protobuf map field.
func (f FieldDescriptor) IsMap() bool {
	return f.desc.IsMap()
}
