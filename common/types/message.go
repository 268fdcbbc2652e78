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

package types

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"

	"github.com/celrt/cel-core/common/types/pb"
	"github.com/celrt/cel-core/common/types/ref"
)

// Message is the message variant: an opaque structured record supporting
// named-field extraction (§3), backed by a real proto.Message via the
// trimmed common/types/pb field accessor rather than an unimplemented
// interface — see SPEC_FULL.md's domain-stack note on why protobuf earns a
// concrete home here even though full message reflection is out of scope.
type Message struct {
	proto.Message
}

var _ ref.Val = Message{}
var _ ref.Fielder = Message{}

// NewMessage wraps a proto.Message as a CEL Val.
func NewMessage(m proto.Message) Message { return Message{m} }

func (m Message) Type() ref.Type     { return MessageType }
func (m Message) Value() interface{} { return m.Message }
func (m Message) String() string     { return string(m.Message.ProtoReflect().Descriptor().FullName().Name()) + "{...}" }

func (m Message) Equal(other ref.Val) ref.Val {
	o, ok := other.(Message)
	if !ok {
		return NoSuchOverload("_==_", m, other)
	}
	return Bool(proto.Equal(m.Message, o.Message))
}

// GetField implements ref.Fielder: a `Select` step against a message.
func (m Message) GetField(name string) ref.Val {
	fd, found := pb.LookupField(m.Message, name)
	if !found {
		return NewErrKind(ErrNoSuchField, "no_such_field: %s", name)
	}
	return fieldToVal(fd)
}

// HasField implements the `test_only` / `has()` selection of §4.4.
func (m Message) HasField(name string) (bool, error) {
	fd, found := pb.LookupField(m.Message, name)
	if !found {
		return false, fmt.Errorf("no_such_field: %s", name)
	}
	return fd.Has(), nil
}

func fieldToVal(fd pb.FieldDescriptor) ref.Val {
	if fd.IsMap() {
		return mapFieldToVal(fd)
	}
	if fd.IsList() {
		return listFieldToVal(fd)
	}
	return scalarToVal(fd.Kind(), fd.Value())
}

func listFieldToVal(fd pb.FieldDescriptor) ref.Val {
	list, ok := fd.Value().(protoreflect.List)
	if !ok {
		return NewErrKind(ErrInternal, "internal: malformed repeated field")
	}
	elems := make([]ref.Val, list.Len())
	for i := 0; i < list.Len(); i++ {
		elems[i] = scalarToVal(fd.Kind(), list.Get(i).Interface())
	}
	return NewList(elems)
}

func mapFieldToVal(fd pb.FieldDescriptor) ref.Val {
	mp, ok := fd.Value().(protoreflect.Map)
	if !ok {
		return NewErrKind(ErrInternal, "internal: malformed map field")
	}
	var keys, values []ref.Val
	mp.Range(func(k protoreflect.MapKey, v protoreflect.Value) bool {
		keys = append(keys, scalarToVal(protoreflect.StringKind, k.Interface()))
		values = append(values, scalarToVal(fd.Kind(), v.Interface()))
		return true
	})
	out, err := NewMap(keys, values)
	if err != nil {
		return err
	}
	return out
}

// scalarToVal converts a protoreflect scalar/message value to a Val,
// covering the kinds CEL's type system distinguishes (§3); unrecognized
// kinds (e.g. groups) are an internal error since they never reach the
// evaluator in a conforming message schema.
func scalarToVal(kind protoreflect.Kind, v interface{}) ref.Val {
	switch kind {
	case protoreflect.BoolKind:
		return Bool(v.(bool))
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return Int(toInt64(v))
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return Uint(toUint64(v))
	case protoreflect.FloatKind:
		return Double(float64(v.(float32)))
	case protoreflect.DoubleKind:
		return Double(v.(float64))
	case protoreflect.StringKind:
		return String(v.(string))
	case protoreflect.BytesKind:
		return Bytes(v.([]byte))
	case protoreflect.EnumKind:
		return Int(int64(v.(protoreflect.EnumNumber)))
	case protoreflect.MessageKind, protoreflect.GroupKind:
		if pm, ok := v.(protoreflect.Message); ok {
			return NewMessage(pm.Interface())
		}
		return NewErrKind(ErrInternal, "internal: malformed message field")
	default:
		return NewErrKind(ErrInternal, "internal: unsupported field kind %v", kind)
	}
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	default:
		return 0
	}
}

func toUint64(v interface{}) uint64 {
	switch n := v.(type) {
	case uint32:
		return uint64(n)
	case uint64:
		return n
	default:
		return 0
	}
}

// NewMessageByName builds a message value from a type name (as registered
// with the global proto registry, e.g. by a generated package's init) and a
// parallel field-name/value list, the CreateMessage step's construction
// path (§4.4). Only scalar, string, bytes and enum fields can be set this
// way; a field initializer for a message/list/map-typed field is rejected
// with invalid_argument, since assembling a nested composite here would
// require the full reflective field-conversion machinery the distillation
// at §1 explicitly keeps out of this core's scope — compose those forms
// ahead of time and hand them to the activation instead.
func NewMessageByName(name string, fieldNames []string, values []ref.Val) ref.Val {
	mt, err := protoregistry.GlobalTypes.FindMessageByName(protoreflect.FullName(name))
	if err != nil {
		return NewErrKind(ErrInvalidArgument, "invalid_argument: unknown message type %q", name)
	}
	msg := mt.New()
	refl := msg.Interface().ProtoReflect()
	desc := refl.Descriptor()
	for i, fieldName := range fieldNames {
		fd := desc.Fields().ByName(protoreflect.Name(fieldName))
		if fd == nil {
			return NewErrKind(ErrNoSuchField, "no_such_field: %s.%s", name, fieldName)
		}
		if fd.IsList() || fd.IsMap() || fd.Kind() == protoreflect.MessageKind || fd.Kind() == protoreflect.GroupKind {
			return NewErrKind(ErrInvalidArgument,
				"invalid_argument: %s.%s is not a scalar field", name, fieldName)
		}
		pv, errv := valToProtoreflect(fd.Kind(), values[i])
		if errv != nil {
			return errv
		}
		refl.Set(fd, pv)
	}
	return NewMessage(msg.Interface())
}

// valToProtoreflect is the inverse of scalarToVal, for the scalar kinds
// NewMessageByName supports.
func valToProtoreflect(kind protoreflect.Kind, v ref.Val) (protoreflect.Value, *Err) {
	switch kind {
	case protoreflect.BoolKind:
		b, ok := v.(Bool)
		if !ok {
			break
		}
		return protoreflect.ValueOfBool(bool(b)), nil
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		n, ok := v.(Int)
		if !ok {
			break
		}
		return protoreflect.ValueOfInt32(int32(n)), nil
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		n, ok := v.(Int)
		if !ok {
			break
		}
		return protoreflect.ValueOfInt64(int64(n)), nil
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		n, ok := v.(Uint)
		if !ok {
			break
		}
		return protoreflect.ValueOfUint32(uint32(n)), nil
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		n, ok := v.(Uint)
		if !ok {
			break
		}
		return protoreflect.ValueOfUint64(uint64(n)), nil
	case protoreflect.FloatKind:
		d, ok := v.(Double)
		if !ok {
			break
		}
		return protoreflect.ValueOfFloat32(float32(d)), nil
	case protoreflect.DoubleKind:
		d, ok := v.(Double)
		if !ok {
			break
		}
		return protoreflect.ValueOfFloat64(float64(d)), nil
	case protoreflect.StringKind:
		s, ok := v.(String)
		if !ok {
			break
		}
		return protoreflect.ValueOfString(string(s)), nil
	case protoreflect.BytesKind:
		b, ok := v.(Bytes)
		if !ok {
			break
		}
		return protoreflect.ValueOfBytes([]byte(b)), nil
	case protoreflect.EnumKind:
		n, ok := v.(Int)
		if !ok {
			break
		}
		return protoreflect.ValueOfEnum(protoreflect.EnumNumber(n)), nil
	}
	return protoreflect.Value{}, NoSuchOverload("create_message_field", v, v)
}
