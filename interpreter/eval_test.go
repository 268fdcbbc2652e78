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

package interpreter

import (
	"testing"

	"github.com/celrt/cel-core/ast"
	"github.com/celrt/cel-core/common/types"
	"github.com/celrt/cel-core/common/types/ref"
	"github.com/celrt/cel-core/operators"
)

func planAndEval(t *testing.T, expr ast.Expression, act Activation, opts ...BuilderOption) ref.Val {
	t.Helper()
	reg := NewStandardRegistry()
	steps, err := NewStepBuilder(reg, opts...).Plan(expr)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	v, err := NewProgram(steps).Eval(act)
	if err != nil {
		t.Fatalf("Eval returned evaluator error: %v", err)
	}
	return v
}

func TestEvalArithmeticAndComparison(t *testing.T) {
	// (1 + 2) * 3 < 10
	expr := ast.NewCall(1, operators.Less,
		ast.NewCall(2, operators.Multiply,
			ast.NewCall(3, operators.Add, ast.NewConst(4, ast.Int64Constant(1)), ast.NewConst(5, ast.Int64Constant(2))),
			ast.NewConst(6, ast.Int64Constant(3))),
		ast.NewConst(7, ast.Int64Constant(10)))
	got := planAndEval(t, expr, EmptyActivation)
	if got != types.Bool(true) {
		t.Errorf("got %v, want true", got)
	}
}

func TestEvalLogicalAndFalseShortsRight(t *testing.T) {
	count := 0
	reg := NewStandardRegistry()
	must(reg.Register(Overload{
		Name: "counted", Function: "counted", ArgTypes: []ref.Kind{AnyType},
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
		count++
		return types.Bool(true), nil
	}))
	expr := ast.NewCall(1, operators.LogicalAnd,
		ast.NewConst(2, ast.BoolConstant(false)),
		ast.NewCall(3, "counted", ast.NewConst(4, ast.Int64Constant(1))))
	steps, err := NewStepBuilder(reg, Shortcircuiting(true)).Plan(expr)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	got, err := NewProgram(steps).Eval(EmptyActivation)
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if got != types.Bool(false) {
		t.Errorf("got %v, want false", got)
	}
	if count != 0 {
		t.Errorf("right operand should not have run under short-circuiting, ran %d times", count)
	}
}

func TestEvalLogicalAndWithoutShortCircuitRunsBothSides(t *testing.T) {
	count := 0
	reg := NewStandardRegistry()
	must(reg.Register(Overload{
		Name: "counted2", Function: "counted2", ArgTypes: []ref.Kind{AnyType},
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
		count++
		return types.Bool(true), nil
	}))
	expr := ast.NewCall(1, operators.LogicalAnd,
		ast.NewConst(2, ast.BoolConstant(false)),
		ast.NewCall(3, "counted2", ast.NewConst(4, ast.Int64Constant(1))))
	steps, err := NewStepBuilder(reg, Shortcircuiting(false)).Plan(expr)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	got, err := NewProgram(steps).Eval(EmptyActivation)
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if got != types.Bool(false) {
		t.Errorf("got %v, want false", got)
	}
	if count != 1 {
		t.Errorf("right operand should have run exactly once without short-circuiting, ran %d times", count)
	}
}

func TestEvalTernary(t *testing.T) {
	expr := ast.NewCall(1, operators.Conditional,
		ast.NewConst(2, ast.BoolConstant(true)),
		ast.NewConst(3, ast.StringConstant("then")),
		ast.NewConst(4, ast.StringConstant("else")))
	got := planAndEval(t, expr, EmptyActivation, Shortcircuiting(true))
	if got != types.String("then") {
		t.Errorf("got %v, want \"then\"", got)
	}
}

func TestEvalSelectOnMap(t *testing.T) {
	reg := NewStandardRegistry()
	steps, err := NewStepBuilder(reg).Plan(ast.NewSelect(1, ast.NewIdent(2, "msg"), "field", false))
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	m, errv := types.NewMap([]ref.Val{types.String("field")}, []ref.Val{types.Int(42)})
	if errv != nil {
		t.Fatalf("NewMap failed: %v", errv)
	}
	act := NewActivation(map[string]ref.Val{"msg": m})
	got, err := NewProgram(steps).Eval(act)
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if got != types.Int(42) {
		t.Errorf("got %v, want 42", got)
	}
}

func TestEvalNoMatchingOverload(t *testing.T) {
	expr := ast.NewCall(1, operators.Add,
		ast.NewConst(2, ast.StringConstant("x")),
		ast.NewConst(3, ast.Int64Constant(1)))
	got := planAndEval(t, expr, EmptyActivation)
	errv, ok := got.(*types.Err)
	if !ok || errv.Kind != types.ErrNoMatchingOverload {
		t.Errorf("got %v, want a no_matching_overload Err", got)
	}
}

// TestEvalComprehensionAllBasic is a regression test for the step-order bug
// where PushIterState ran after BindAccu: every top-level comprehension
// panicked with "index out of range" in BindAccuStep.Execute before the
// first iterState existed.
func TestEvalComprehensionAllBasic(t *testing.T) {
	// [1,2,3].all(x, x > 0)
	list := ast.NewCreateList(1,
		ast.NewConst(2, ast.Int64Constant(1)),
		ast.NewConst(3, ast.Int64Constant(2)),
		ast.NewConst(4, ast.Int64Constant(3)))
	expr := ast.NewComprehension(5, "x", list, "@result",
		ast.NewConst(6, ast.BoolConstant(true)),
		ast.NewIdent(7, "@result"),
		ast.NewCall(8, operators.LogicalAnd,
			ast.NewIdent(9, "@result"),
			ast.NewCall(10, operators.Greater, ast.NewIdent(11, "x"), ast.NewConst(12, ast.Int64Constant(0)))),
		ast.NewIdent(13, "@result"))
	got := planAndEval(t, expr, EmptyActivation)
	if got != types.Bool(true) {
		t.Errorf("got %v, want true", got)
	}
}

// TestEvalComprehensionEmptyRange covers §8 "Comprehension over empty
// range": accu_init is the result, loop_step never runs.
func TestEvalComprehensionEmptyRange(t *testing.T) {
	count := 0
	reg := NewStandardRegistry()
	must(reg.Register(Overload{
		Name: "loop_step_recorder_empty", Function: "loop_step_recorder_empty", ArgTypes: nil,
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
		count++
		return types.Bool(true), nil
	}))
	list := ast.NewCreateList(1)
	expr := ast.NewComprehension(2, "x", list, "@result",
		ast.NewConst(3, ast.BoolConstant(true)),
		ast.NewIdent(4, "@result"),
		ast.NewCall(5, "loop_step_recorder_empty"),
		ast.NewIdent(6, "@result"))
	steps, err := NewStepBuilder(reg).Plan(expr)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	got, err := NewProgram(steps).Eval(EmptyActivation)
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if got != types.Bool(true) {
		t.Errorf("got %v, want accu_init (true) unchanged", got)
	}
	if count != 0 {
		t.Errorf("loop_step ran %d times over an empty range, want 0", count)
	}
}

// TestEvalComprehensionLoopStepSideEffectCount covers §8 scenario 3: a
// comprehension whose loop_condition is always false runs loop_step zero
// times under shortcircuiting, and once per element without it.
func TestEvalComprehensionLoopStepSideEffectCount(t *testing.T) {
	for _, tc := range []struct {
		shortcircuit bool
		want         int
	}{
		{shortcircuit: true, want: 0},
		{shortcircuit: false, want: 3},
	} {
		count := 0
		reg := NewStandardRegistry()
		must(reg.Register(Overload{
			Name: "loop_step_recorder", Function: "loop_step_recorder", ArgTypes: nil,
		}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
			count++
			return types.Bool(true), nil
		}))
		list := ast.NewCreateList(1,
			ast.NewConst(2, ast.Int64Constant(1)),
			ast.NewConst(3, ast.Int64Constant(2)),
			ast.NewConst(4, ast.Int64Constant(3)))
		expr := ast.NewComprehension(5, "x", list, "@result",
			ast.NewConst(6, ast.BoolConstant(true)),
			ast.NewConst(7, ast.BoolConstant(false)),
			ast.NewCall(8, "loop_step_recorder"),
			ast.NewIdent(9, "@result"))
		steps, err := NewStepBuilder(reg, Shortcircuiting(tc.shortcircuit)).Plan(expr)
		if err != nil {
			t.Fatalf("Plan failed: %v", err)
		}
		got, err := NewProgram(steps).Eval(EmptyActivation)
		if err != nil {
			t.Fatalf("Eval error: %v", err)
		}
		if got != types.Bool(true) {
			t.Errorf("shortcircuit=%v: got %v, want accu_init (true) unchanged", tc.shortcircuit, got)
		}
		if count != tc.want {
			t.Errorf("shortcircuit=%v: loop_step ran %d times, want %d", tc.shortcircuit, count, tc.want)
		}
	}
}

// TestEvalComprehensionAllOverMap covers §8 scenario 4:
// {1:"", 2:""}.all(k, k > 0) → true.
func TestEvalComprehensionAllOverMap(t *testing.T) {
	m := ast.NewCreateStruct(1,
		ast.MapEntry{Key: ast.NewConst(2, ast.Int64Constant(1)), Value: ast.NewConst(3, ast.StringConstant(""))},
		ast.MapEntry{Key: ast.NewConst(4, ast.Int64Constant(2)), Value: ast.NewConst(5, ast.StringConstant(""))})
	expr := ast.NewComprehension(6, "k", m, "@result",
		ast.NewConst(7, ast.BoolConstant(true)),
		ast.NewIdent(8, "@result"),
		ast.NewCall(9, operators.LogicalAnd,
			ast.NewIdent(10, "@result"),
			ast.NewCall(11, operators.Greater, ast.NewIdent(12, "k"), ast.NewConst(13, ast.Int64Constant(0)))),
		ast.NewIdent(14, "@result"))
	got := planAndEval(t, expr, EmptyActivation)
	if got != types.Bool(true) {
		t.Errorf("got %v, want true", got)
	}
}

// TestEvalComprehensionRangeErrorBecomesAccumulator covers §8 scenario 5:
// {}[0].all(x, x) → the no_such_key error from the range expression itself
// becomes the accumulator and is returned; loop_step/loop_condition never
// run.
func TestEvalComprehensionRangeErrorBecomesAccumulator(t *testing.T) {
	emptyMap := ast.NewCreateStruct(1)
	rangeExpr := ast.NewCall(2, operators.Index, emptyMap, ast.NewConst(3, ast.Int64Constant(0)))
	expr := ast.NewComprehension(4, "x", rangeExpr, "@result",
		ast.NewConst(5, ast.BoolConstant(true)),
		ast.NewIdent(6, "@result"),
		ast.NewIdent(7, "x"),
		ast.NewIdent(8, "@result"))
	got := planAndEval(t, expr, EmptyActivation)
	errv, ok := got.(*types.Err)
	if !ok || errv.Kind != types.ErrNoSuchKey {
		t.Errorf("got %v, want a no_such_key Err", got)
	}
}

// TestEvalComprehensionOverNonContainer covers §8 scenario 6:
// 0.all(x, x) → error value with kind no_matching_overload.
func TestEvalComprehensionOverNonContainer(t *testing.T) {
	rangeExpr := ast.NewConst(1, ast.Int64Constant(0))
	expr := ast.NewComprehension(2, "x", rangeExpr, "@result",
		ast.NewConst(3, ast.BoolConstant(true)),
		ast.NewIdent(4, "@result"),
		ast.NewIdent(5, "x"),
		ast.NewIdent(6, "@result"))
	got := planAndEval(t, expr, EmptyActivation)
	errv, ok := got.(*types.Err)
	if !ok || errv.Kind != types.ErrNoMatchingOverload {
		t.Errorf("got %v, want a no_matching_overload Err", got)
	}
}

// TestEvalIdentEnumValueFallback covers §8 scenario 7: an enum-qualified
// identifier resolves through the builder's registered enum table once the
// activation has no binding for it.
func TestEvalIdentEnumValueFallback(t *testing.T) {
	const name = "pkg.TestMessage.TestEnum.TEST_ENUM_1"
	expr := ast.NewIdent(1, name)
	got := planAndEval(t, expr, EmptyActivation, RegisterEnumValue(name, 1))
	if got != types.Int(1) {
		t.Errorf("got %v, want int64 1", got)
	}
}

// TestEvalIdentUnboundIsNoSuchField covers the final fallback of §4.4's
// ident-resolution order: a name that is neither activation-bound nor a
// registered enum value is a no_such_field error, not unknown.
func TestEvalIdentUnboundIsNoSuchField(t *testing.T) {
	got := planAndEval(t, ast.NewIdent(1, "nope"), EmptyActivation)
	errv, ok := got.(*types.Err)
	if !ok || errv.Kind != types.ErrNoSuchField {
		t.Errorf("got %v, want a no_such_field Err", got)
	}
}

func TestEvalSelectUnderUnknownMask(t *testing.T) {
	reg := NewStandardRegistry()
	steps, err := NewStepBuilder(reg).Plan(ast.NewSelect(1, ast.NewIdent(2, "msg"), "field", false))
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	m, errv := types.NewMap([]ref.Val{types.String("field")}, []ref.Val{types.Int(42)})
	if errv != nil {
		t.Fatalf("NewMap failed: %v", errv)
	}
	act := NewPartialActivation(map[string]ref.Val{"msg": m}, NewAttributeMask("msg.field"))
	got, err := NewProgram(steps).Eval(act)
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if !types.IsUnknown(got) {
		t.Errorf("got %v, want an Unknown value since msg.field is masked", got)
	}
}
