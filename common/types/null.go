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

import "github.com/celrt/cel-core/common/types/ref"

// Null is the sole value of the null variant.
type Null struct{}

// NullValue is the singleton null.
var NullValue = Null{}

var _ ref.Val = Null{}

func (Null) Type() ref.Type     { return NullType }
func (Null) Value() interface{} { return nil }
func (Null) String() string     { return "null" }

func (n Null) Equal(other ref.Val) ref.Val {
	if other.Type() != NullType {
		return NoSuchOverload("_==_", n, other)
	}
	return Bool(true)
}
