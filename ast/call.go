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

// CallExpr is a function-call AST node, either global (`f(args...)`,
// Target == nil) or receiver-style (`target.f(args...)`).
type CallExpr struct {
	baseExpression
	Target   Expression
	Function string
	Args     []Expression
}

func NewCall(id int64, function string, args ...Expression) *CallExpr {
	return &CallExpr{baseExpression{id}, nil, function, args}
}

func NewMemberCall(id int64, function string, target Expression, args ...Expression) *CallExpr {
	return &CallExpr{baseExpression{id}, target, function, args}
}

// IsMemberCall reports whether this is a receiver-style call.
func (e *CallExpr) IsMemberCall() bool { return e.Target != nil }

func (e *CallExpr) Kind() Kind { return CallKind }
func (e *CallExpr) String() string {
	argStrs := make([]string, len(e.Args))
	for i, a := range e.Args {
		argStrs[i] = a.String()
	}
	if e.Target != nil {
		return fmt.Sprintf("%s.%s(%s)", e.Target, e.Function, strings.Join(argStrs, ", "))
	}
	return fmt.Sprintf("%s(%s)", e.Function, strings.Join(argStrs, ", "))
}
