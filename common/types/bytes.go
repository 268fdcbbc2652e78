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
	"bytes"
	"fmt"

	"github.com/celrt/cel-core/common/types/ref"
)

// Bytes is the bytes variant, borrowed or owned per §3 the same way String
// is: the arena keeps the backing slice reachable, it never needs to copy.
type Bytes []byte

var _ ref.Val = Bytes(nil)

func (b Bytes) Type() ref.Type     { return BytesType }
func (b Bytes) Value() interface{} { return []byte(b) }
func (b Bytes) String() string     { return fmt.Sprintf("%q", []byte(b)) }

func (b Bytes) Equal(other ref.Val) ref.Val {
	o, ok := other.(Bytes)
	if !ok {
		return NoSuchOverload("_==_", b, other)
	}
	return Bool(bytes.Equal(b, o))
}

func (b Bytes) Compare(other ref.Val) ref.Val {
	o, ok := other.(Bytes)
	if !ok {
		return NoSuchOverload("_<_", b, other)
	}
	switch c := bytes.Compare(b, o); {
	case c < 0:
		return IntNegOne
	case c > 0:
		return IntOne
	default:
		return IntZero
	}
}

// Add implements the `+` concatenation overload for bytes.
func (b Bytes) Add(other ref.Val) ref.Val {
	o, ok := other.(Bytes)
	if !ok {
		return NoSuchOverload("_+_", b, other)
	}
	out := make(Bytes, 0, len(b)+len(o))
	out = append(out, b...)
	out = append(out, o...)
	return out
}

// Size implements the `size` overload.
func (b Bytes) Size() ref.Val { return Int(len(b)) }

// ConvertToType implements the bytes(...)/string(...) conversion builtins
// of §6.
func (b Bytes) ConvertToType(typeVal ref.Type) ref.Val {
	switch typeVal {
	case BytesType:
		return b
	case StringType:
		return String(b)
	}
	return NewErr("type conversion error from %q to %q", BytesType.TypeName(), typeVal.TypeName())
}
