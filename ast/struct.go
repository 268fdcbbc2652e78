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

package ast

import (
	"fmt"
	"strings"
)

// MapEntry is one key/value pair of a CreateStructExpr.
type MapEntry struct {
	Key   Expression
	Value Expression
}

// CreateStructExpr is a `{k1: v1, k2: v2}` map-construction AST node.
// (Named "struct" after the teacher's create_struct node, though it only
// ever produces the `map` variant — see message.go for the separate
// typed-message construction node.)
type CreateStructExpr struct {
	baseExpression
	Entries []MapEntry
}

func NewCreateStruct(id int64, entries ...MapEntry) *CreateStructExpr {
	return &CreateStructExpr{baseExpression{id}, entries}
}

func (e *CreateStructExpr) Kind() Kind { return CreateStructKind }
func (e *CreateStructExpr) String() string {
	parts := make([]string, len(e.Entries))
	for i, ent := range e.Entries {
		parts[i] = fmt.Sprintf("%s: %s", ent.Key, ent.Value)
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}
