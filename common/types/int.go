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
	"strconv"

	"github.com/celrt/cel-core/common/types/ref"
)

// Int is the int64 variant.
type Int int64

const (
	IntZero   = Int(0)
	IntOne    = Int(1)
	IntNegOne = Int(-1)
)

var _ ref.Val = Int(0)

func (i Int) Type() ref.Type     { return IntType }
func (i Int) Value() interface{} { return int64(i) }
func (i Int) String() string     { return strconv.FormatInt(int64(i), 10) }

func (i Int) Equal(other ref.Val) ref.Val {
	o, ok := other.(Int)
	if !ok {
		return NoSuchOverload("_==_", i, other)
	}
	return Bool(i == o)
}

func (i Int) Compare(other ref.Val) ref.Val {
	o, ok := other.(Int)
	if !ok {
		return NoSuchOverload("_<_", i, other)
	}
	switch {
	case i < o:
		return IntNegOne
	case i > o:
		return IntOne
	default:
		return IntZero
	}
}

func (i Int) Add(other ref.Val) ref.Val {
	o, ok := other.(Int)
	if !ok {
		return NoSuchOverload("_+_", i, other)
	}
	sum, ok := addInt64Checked(int64(i), int64(o))
	if !ok {
		return NewErrKind(ErrInvalidArgument, "integer overflow")
	}
	return Int(sum)
}

func (i Int) Subtract(other ref.Val) ref.Val {
	o, ok := other.(Int)
	if !ok {
		return NoSuchOverload("_-_", i, other)
	}
	diff, ok := subtractInt64Checked(int64(i), int64(o))
	if !ok {
		return NewErrKind(ErrInvalidArgument, "integer overflow")
	}
	return Int(diff)
}

func (i Int) Multiply(other ref.Val) ref.Val {
	o, ok := other.(Int)
	if !ok {
		return NoSuchOverload("_*_", i, other)
	}
	prod, ok := multiplyInt64Checked(int64(i), int64(o))
	if !ok {
		return NewErrKind(ErrInvalidArgument, "integer overflow")
	}
	return Int(prod)
}

func (i Int) Divide(other ref.Val) ref.Val {
	o, ok := other.(Int)
	if !ok {
		return NoSuchOverload("_/_", i, other)
	}
	if o == IntZero {
		return NewErrKind(ErrInvalidArgument, "division by zero")
	}
	quot, ok := divideInt64Checked(int64(i), int64(o))
	if !ok {
		return NewErrKind(ErrInvalidArgument, "integer overflow")
	}
	return Int(quot)
}

func (i Int) Modulo(other ref.Val) ref.Val {
	o, ok := other.(Int)
	if !ok {
		return NoSuchOverload("_%_", i, other)
	}
	if o == IntZero {
		return NewErrKind(ErrInvalidArgument, "modulus by zero")
	}
	mod, ok := moduloInt64Checked(int64(i), int64(o))
	if !ok {
		return NewErrKind(ErrInvalidArgument, "integer overflow")
	}
	return Int(mod)
}

func (i Int) Negate() ref.Val {
	n, ok := negateInt64Checked(int64(i))
	if !ok {
		return NewErrKind(ErrInvalidArgument, "integer overflow")
	}
	return Int(n)
}

// ConvertToType implements the int(...)/uint(...)/double(...)/string(...)
// conversion builtins of §6.
func (i Int) ConvertToType(typeVal ref.Type) ref.Val {
	switch typeVal {
	case IntType:
		return i
	case UintType:
		if i < 0 {
			return NewErrKind(ErrInvalidArgument, "range error converting %d to uint", int64(i))
		}
		return Uint(i)
	case DoubleType:
		return Double(i)
	case StringType:
		return String(i.String())
	}
	return NewErr("type conversion error from %q to %q", IntType.TypeName(), typeVal.TypeName())
}
