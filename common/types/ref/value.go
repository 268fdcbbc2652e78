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

// Package ref declares the core Val and Type interfaces that every member of
// the value algebra implements, without pulling in the concrete variants
// that live in common/types (which imports ref, not the reverse).
package ref

// Kind identifies which variant of the value algebra a Val belongs to.
type Kind int

const (
	// KindNull is the null variant.
	KindNull Kind = iota
	KindBool
	KindInt
	KindUint
	KindDouble
	KindString
	KindBytes
	KindDuration
	KindTimestamp
	KindList
	KindMap
	KindMessage
	KindError
	KindUnknown
	KindType
)

// Type describes the variant and name of a Val.
type Type interface {
	// Kind returns the Kind this Type describes.
	Kind() Kind

	// TypeName returns a human-readable name for the type, e.g. "int".
	TypeName() string
}

// Val is the tagged union every member of the value algebra implements.
//
// Val is deliberately small: the core only ever needs to ask a value for its
// Type, compare it against another Val for CEL equality, and render it for
// diagnostics. Conversion to native Go types and field/index access are
// capability interfaces (see Indexer, Fielder below) implemented
// only by the variants that support them, following the teacher's pattern of
// narrow per-capability interfaces rather than one god-interface.
type Val interface {
	// Type returns the Type of the value.
	Type() Type

	// Equal returns a Bool, or an error Val, per the CEL equality rules of
	// §4.1: equality is defined only between values of identical Type.
	Equal(other Val) Val

	// Value returns the unwrapped, native Go representation backing the Val.
	Value() interface{}

	// String renders the value for diagnostics and trace output.
	String() string
}

// Indexer is implemented by container variants (list, map) that support
// positional or keyed lookup via the `_[_]` operator.
type Indexer interface {
	Val

	// Get returns the element at or keyed by index, or an error Val.
	Get(index Val) Val
}

// Sizer is implemented by variants with a `size` overload.
type Sizer interface {
	Val

	// Size returns the element/byte/rune count of the value.
	Size() Val
}

// Fielder is implemented by the message variant to support `Select` steps
// against an opaque structured record, per §1's "opaque object" contract.
type Fielder interface {
	Val

	// GetField returns the named field's value, or a no_such_field error.
	GetField(name string) Val

	// HasField reports whether the named field is set, for `test_only`
	// selections (`has(msg.field)`).
	HasField(name string) (bool, error)
}

// Iterable is implemented by variants that a comprehension can range over.
type Iterable interface {
	Val

	// Iterator returns a fresh Iterator positioned before the first element.
	Iterator() Iterator
}

// Iterator walks the elements of an Iterable one at a time.
type Iterator interface {
	// HasNext reports whether a further call to Next will succeed.
	HasNext() bool

	// Next returns the next element.
	Next() Val
}

// Comparer is implemented by the ordered variants of §4.1 (numerics,
// strings, bytes, timestamps, durations). Compare returns Int(-1, 0, 1) or
// an error Val for cross-family comparisons.
type Comparer interface {
	Val
	Compare(other Val) Val
}

// Adder is implemented by variants with a `+` overload.
type Adder interface {
	Val
	Add(other Val) Val
}

// Subtractor is implemented by variants with a `-` overload.
type Subtractor interface {
	Val
	Subtract(other Val) Val
}

// Multiplier is implemented by variants with a `*` overload.
type Multiplier interface {
	Val
	Multiply(other Val) Val
}

// Divider is implemented by variants with a `/` overload.
type Divider interface {
	Val
	Divide(other Val) Val
}

// Modder is implemented by variants with a `%` overload.
type Modder interface {
	Val
	Modulo(other Val) Val
}

// Negater is implemented by variants with a unary `-_` overload.
type Negater interface {
	Val
	Negate() Val
}

// Container is implemented by variants with `in`/`@in` membership.
type Container interface {
	Val
	Contains(elem Val) Val
}

// Converter is implemented by variants participating in the int(...)/
// uint(...)/double(...)/string(...)/bytes(...) conversion builtins of §6.
// ConvertToType returns a "type conversion error" *Err (via the types
// package) when typeVal isn't one of the targets the variant supports.
type Converter interface {
	Val
	ConvertToType(typeVal Type) Val
}
