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

// Constant is the tagged union of literal kinds a ConstExpr can hold. The
// step builder converts these raw Go values to the value algebra's
// constructors (types.Int, types.String, ...) at Const-step build time; the
// AST itself stays free of any dependency on common/types.
type Constant interface {
	isConstant()
}

type Int64Constant int64
type Uint64Constant uint64
type DoubleConstant float64
type StringConstant string
type BytesConstant []byte
type BoolConstant bool
type NullConstant struct{}

func (Int64Constant) isConstant()  {}
func (Uint64Constant) isConstant() {}
func (DoubleConstant) isConstant() {}
func (StringConstant) isConstant() {}
func (BytesConstant) isConstant()  {}
func (BoolConstant) isConstant()   {}
func (NullConstant) isConstant()   {}

// ConstExpr is a constant-expression AST node.
type ConstExpr struct {
	baseExpression
	Value Constant
}

func NewConst(id int64, value Constant) *ConstExpr {
	return &ConstExpr{baseExpression{id}, value}
}

func (e *ConstExpr) Kind() Kind { return ConstKind }
func (e *ConstExpr) String() string {
	return fmt.Sprintf("const(%v)", e.Value)
}
