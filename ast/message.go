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

// FieldEntry is one field initializer of a CreateMessageExpr.
type FieldEntry struct {
	Name        string
	Initializer Expression
}

// CreateMessageExpr is a `pkg.Type{field: value, ...}` typed-message
// construction AST node.
type CreateMessageExpr struct {
	baseExpression
	MessageName string
	Fields      []FieldEntry
}

func NewCreateMessage(id int64, messageName string, fields ...FieldEntry) *CreateMessageExpr {
	return &CreateMessageExpr{baseExpression{id}, messageName, fields}
}

func (e *CreateMessageExpr) Kind() Kind { return CreateMessageKind }
func (e *CreateMessageExpr) String() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Initializer)
	}
	return fmt.Sprintf("%s{%s}", e.MessageName, strings.Join(parts, ", "))
}
