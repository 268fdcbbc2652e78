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
	"math"
	"strconv"

	"github.com/celrt/cel-core/common/types/ref"
)

// Uint is the uint64 variant.
type Uint uint64

const (
	UintZero = Uint(0)
)

var _ ref.Val = Uint(0)

func (u Uint) Type() ref.Type     { return UintType }
func (u Uint) Value() interface{} { return uint64(u) }
func (u Uint) String() string     { return strconv.FormatUint(uint64(u), 10) }

func (u Uint) Equal(other ref.Val) ref.Val {
	o, ok := other.(Uint)
	if !ok {
		return NoSuchOverload("_==_", u, other)
	}
	return Bool(u == o)
}

func (u Uint) Compare(other ref.Val) ref.Val {
	o, ok := other.(Uint)
	if !ok {
		return NoSuchOverload("_<_", u, other)
	}
	switch {
	case u < o:
		return IntNegOne
	case u > o:
		return IntOne
	default:
		return IntZero
	}
}

func (u Uint) Add(other ref.Val) ref.Val {
	o, ok := other.(Uint)
	if !ok {
		return NoSuchOverload("_+_", u, other)
	}
	sum, ok := addUint64Checked(uint64(u), uint64(o))
	if !ok {
		return NewErrKind(ErrInvalidArgument, "unsigned integer overflow")
	}
	return Uint(sum)
}

func (u Uint) Subtract(other ref.Val) ref.Val {
	o, ok := other.(Uint)
	if !ok {
		return NoSuchOverload("_-_", u, other)
	}
	diff, ok := subtractUint64Checked(uint64(u), uint64(o))
	if !ok {
		return NewErrKind(ErrInvalidArgument, "unsigned integer overflow")
	}
	return Uint(diff)
}

func (u Uint) Multiply(other ref.Val) ref.Val {
	o, ok := other.(Uint)
	if !ok {
		return NoSuchOverload("_*_", u, other)
	}
	prod, ok := multiplyUint64Checked(uint64(u), uint64(o))
	if !ok {
		return NewErrKind(ErrInvalidArgument, "unsigned integer overflow")
	}
	return Uint(prod)
}

func (u Uint) Divide(other ref.Val) ref.Val {
	o, ok := other.(Uint)
	if !ok {
		return NoSuchOverload("_/_", u, other)
	}
	if o == UintZero {
		return NewErrKind(ErrInvalidArgument, "division by zero")
	}
	return Uint(uint64(u) / uint64(o))
}

func (u Uint) Modulo(other ref.Val) ref.Val {
	o, ok := other.(Uint)
	if !ok {
		return NoSuchOverload("_%_", u, other)
	}
	if o == UintZero {
		return NewErrKind(ErrInvalidArgument, "modulus by zero")
	}
	return Uint(uint64(u) % uint64(o))
}

// ConvertToType implements the int(...)/uint(...)/double(...)/string(...)
// conversion builtins of §6.
func (u Uint) ConvertToType(typeVal ref.Type) ref.Val {
	switch typeVal {
	case UintType:
		return u
	case IntType:
		if u > math.MaxInt64 {
			return NewErrKind(ErrInvalidArgument, "range error converting %d to int", uint64(u))
		}
		return Int(u)
	case DoubleType:
		return Double(u)
	case StringType:
		return String(u.String())
	}
	return NewErr("type conversion error from %q to %q", UintType.TypeName(), typeVal.TypeName())
}
