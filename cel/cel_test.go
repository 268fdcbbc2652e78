// Copyright 2019 Google LLC
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

package cel

import (
	"testing"

	"github.com/celrt/cel-core/ast"
	"github.com/celrt/cel-core/common/types"
	"github.com/celrt/cel-core/interpreter"
	"github.com/celrt/cel-core/operators"
)

func TestEnvCompileAndEval(t *testing.T) {
	env := NewEnv()
	expr := ast.NewCall(1, operators.Add,
		ast.NewConst(2, ast.Int64Constant(1)), ast.NewConst(3, ast.Int64Constant(2)))
	prog, err := env.Compile(expr)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	got, details, err := prog.Eval(interpreter.EmptyActivation)
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if got != types.Int(3) {
		t.Errorf("got %v, want 3", got)
	}
	if details != nil {
		t.Error("EvalDetails should be nil without WithTracing")
	}
}

func TestEnvEvalWithTracing(t *testing.T) {
	env := NewEnv()
	addExpr := ast.NewCall(1, operators.Add,
		ast.NewConst(2, ast.Int64Constant(1)), ast.NewConst(3, ast.Int64Constant(2)))
	prog, err := env.Compile(addExpr)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	got, details, err := prog.Eval(interpreter.EmptyActivation, WithTracing())
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if got != types.Int(3) {
		t.Errorf("got %v, want 3", got)
	}
	v, ok := details.Value(1)
	if !ok || v != types.Int(3) {
		t.Errorf("details.Value(1) = (%v, %v), want (3, true)", v, ok)
	}
	if _, ok := details.Value(2); !ok {
		t.Error("details should also record the left operand's own node id")
	}
}

func TestEnvEvalDetailsNilSafe(t *testing.T) {
	var d *EvalDetails
	if _, ok := d.Value(1); ok {
		t.Error("a nil *EvalDetails should report not-found, not panic")
	}
}

func TestEnvEnumValueOption(t *testing.T) {
	const name = "pkg.TestMessage.TestEnum.TEST_ENUM_1"
	env := NewEnv(EnumValue(name, 1))
	prog, err := env.Compile(ast.NewIdent(1, name))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	got, _, err := prog.Eval(interpreter.EmptyActivation)
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if got != types.Int(1) {
		t.Errorf("got %v, want int64 1", got)
	}
}

func TestEnvShortcircuitingOption(t *testing.T) {
	env := NewEnv(Shortcircuiting(false))
	expr := ast.NewCall(1, operators.LogicalAnd,
		ast.NewConst(2, ast.BoolConstant(false)), ast.NewConst(3, ast.BoolConstant(true)))
	prog, err := env.Compile(expr)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	got, _, err := prog.Eval(interpreter.EmptyActivation)
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if got != types.Bool(false) {
		t.Errorf("got %v, want false", got)
	}
}
