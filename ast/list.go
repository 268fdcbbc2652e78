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

// CreateListExpr is a `[a, b, c]` list-construction AST node.
type CreateListExpr struct {
	baseExpression
	Elements []Expression
}

func NewCreateList(id int64, elements ...Expression) *CreateListExpr {
	return &CreateListExpr{baseExpression{id}, elements}
}

func (e *CreateListExpr) Kind() Kind { return CreateListKind }
func (e *CreateListExpr) String() string {
	elems := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		elems[i] = el.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(elems, ", "))
}
