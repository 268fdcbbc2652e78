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

// Package types implements the CEL value algebra of spec.md §3/§4.1: a
// tagged union over null, bool, int64, uint64, double, string, bytes,
// duration, timestamp, list, map, message, error and unknown, grounded on
// the teacher's common/types package but narrowed to the operations the core
// actually dispatches (equality, ordering, the arithmetic/container/string
// overloads of §6) rather than the full native-Go interop surface the
// teacher carries for its checker/provider machinery, which is out of scope
// here.
package types

import "github.com/celrt/cel-core/common/types/ref"

// typeValue is the concrete ref.Type every variant below returns from Type().
type typeValue struct {
	kind ref.Kind
	name string
}

func (t *typeValue) Kind() ref.Kind     { return t.kind }
func (t *typeValue) TypeName() string   { return t.name }
func (t *typeValue) String() string     { return t.name }

// Singleton Types for each value-algebra variant.
var (
	NullType      ref.Type = &typeValue{ref.KindNull, "null_type"}
	BoolType      ref.Type = &typeValue{ref.KindBool, "bool"}
	IntType       ref.Type = &typeValue{ref.KindInt, "int"}
	UintType      ref.Type = &typeValue{ref.KindUint, "uint"}
	DoubleType    ref.Type = &typeValue{ref.KindDouble, "double"}
	StringType    ref.Type = &typeValue{ref.KindString, "string"}
	BytesType     ref.Type = &typeValue{ref.KindBytes, "bytes"}
	DurationType  ref.Type = &typeValue{ref.KindDuration, "google.protobuf.Duration"}
	TimestampType ref.Type = &typeValue{ref.KindTimestamp, "google.protobuf.Timestamp"}
	ListType      ref.Type = &typeValue{ref.KindList, "list"}
	MapType       ref.Type = &typeValue{ref.KindMap, "map"}
	MessageType   ref.Type = &typeValue{ref.KindMessage, "message"}
	ErrType       ref.Type = &typeValue{ref.KindError, "error"}
	UnknownType   ref.Type = &typeValue{ref.KindUnknown, "unknown"}
)

// IsError reports whether v is the error variant.
func IsError(v ref.Val) bool {
	return v != nil && v.Type() == ErrType
}

// IsUnknown reports whether v is the unknown variant.
func IsUnknown(v ref.Val) bool {
	return v != nil && v.Type() == UnknownType
}

// IsErrorOrUnknown reports whether v short-circuits strict evaluation.
func IsErrorOrUnknown(v ref.Val) bool {
	return IsError(v) || IsUnknown(v)
}

// TypeNameOf is a small convenience used by the registry and stdlib to print
// readable overload-mismatch diagnostics.
func TypeNameOf(v ref.Val) string {
	if v == nil {
		return "<nil>"
	}
	return v.Type().TypeName()
}

// NoSuchOverload reports a typed, no_matching_overload error for a binary
// operation whose operand types make it inapplicable. Per §4.1, cross-type
// equality and unsupported arithmetic/ordering always surface this, never a
// bare boolean false.
func NoSuchOverload(fn string, a, b ref.Val) *Err {
	return NewErrKind(ErrNoMatchingOverload, "no_matching_overload: %s(%s, %s)",
		fn, TypeNameOf(a), TypeNameOf(b))
}
