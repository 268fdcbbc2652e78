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

// Bool is the bool variant.
type Bool bool

var _ ref.Val = Bool(false)

func (b Bool) Type() ref.Type     { return BoolType }
func (b Bool) Value() interface{} { return bool(b) }
func (b Bool) String() string     { return strconv.FormatBool(bool(b)) }

func (b Bool) Equal(other ref.Val) ref.Val {
	o, ok := other.(Bool)
	if !ok {
		return NoSuchOverload("_==_", b, other)
	}
	return Bool(b == o)
}

// Negate implements the `!_` overload.
func (b Bool) Negate() Bool { return !b }
