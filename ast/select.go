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

import "fmt"

// SelectExpr is a field-selection AST node: `Operand.Field`, or, when
// TestOnly is set, the `has(Operand.Field)` test-only form (§4.4).
type SelectExpr struct {
	baseExpression
	Operand  Expression
	Field    string
	TestOnly bool
}

func NewSelect(id int64, operand Expression, field string, testOnly bool) *SelectExpr {
	return &SelectExpr{baseExpression{id}, operand, field, testOnly}
}

func (e *SelectExpr) Kind() Kind { return SelectKind }
func (e *SelectExpr) String() string {
	if e.TestOnly {
		return fmt.Sprintf("has(%s.%s)", e.Operand, e.Field)
	}
	return fmt.Sprintf("%s.%s", e.Operand, e.Field)
}
