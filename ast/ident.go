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

// IdentExpr is an identifier-expression AST node.
type IdentExpr struct {
	baseExpression
	Name string
}

func NewIdent(id int64, name string) *IdentExpr {
	return &IdentExpr{baseExpression{id}, name}
}

func (e *IdentExpr) Kind() Kind      { return IdentKind }
func (e *IdentExpr) String() string  { return fmt.Sprintf("ident(%s)", e.Name) }
