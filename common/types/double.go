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

// Double is the double (float64) variant.
type Double float64

var _ ref.Val = Double(0)

func (d Double) Type() ref.Type     { return DoubleType }
func (d Double) Value() interface{} { return float64(d) }
func (d Double) String() string     { return strconv.FormatFloat(float64(d), 'g', -1, 64) }

func (d Double) Equal(other ref.Val) ref.Val {
	o, ok := other.(Double)
	if !ok {
		return NoSuchOverload("_==_", d, other)
	}
	return Bool(d == o)
}

func (d Double) Compare(other ref.Val) ref.Val {
	o, ok := other.(Double)
	if !ok {
		return NoSuchOverload("_<_", d, other)
	}
	switch {
	case d < o:
		return IntNegOne
	case d > o:
		return IntOne
	default:
		return IntZero
	}
}

func (d Double) Add(other ref.Val) ref.Val {
	o, ok := other.(Double)
	if !ok {
		return NoSuchOverload("_+_", d, other)
	}
	return d + o
}

func (d Double) Subtract(other ref.Val) ref.Val {
	o, ok := other.(Double)
	if !ok {
		return NoSuchOverload("_-_", d, other)
	}
	return d - o
}

func (d Double) Multiply(other ref.Val) ref.Val {
	o, ok := other.(Double)
	if !ok {
		return NoSuchOverload("_*_", d, other)
	}
	return d * o
}

func (d Double) Divide(other ref.Val) ref.Val {
	o, ok := other.(Double)
	if !ok {
		return NoSuchOverload("_/_", d, other)
	}
	return d / o // IEEE 754 division by zero yields +/-Inf or NaN, not an error.
}

func (d Double) Negate() ref.Val { return -d }

// ConvertToType implements the int(...)/uint(...)/double(...)/string(...)
// conversion builtins of §6. Conversion to int/uint truncates toward zero,
// matching the teacher's behavior; it does not range-check against the
// narrower integer types, consistent with this core's scope (§1).
func (d Double) ConvertToType(typeVal ref.Type) ref.Val {
	switch typeVal {
	case DoubleType:
		return d
	case IntType:
		return Int(int64(d))
	case UintType:
		if d < 0 {
			return NewErrKind(ErrInvalidArgument, "range error converting %v to uint", float64(d))
		}
		return Uint(uint64(d))
	case StringType:
		return String(d.String())
	}
	return NewErr("type conversion error from %q to %q", DoubleType.TypeName(), typeVal.TypeName())
}
