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
	"github.com/celrt/cel-core/common/types"
	"github.com/celrt/cel-core/common/types/ref"
	"github.com/celrt/cel-core/operators"
)

// NewStandardRegistry returns a Registry with the §6 built-in overload set
// registered: logical, equality/ordering, arithmetic, and the container
// operators. It is not yet frozen — StepBuilder.Plan freezes it on first
// use (§5) — so callers can still layer extension functions on top before
// planning any expression.
//
// Grounded on the teacher's interpreter/functions/standard.go table (a flat
// list of {function, signature, impl} registered once at env construction),
// but most entries here are a single wildcard overload dispatching through
// the value algebra's own capability interfaces (ref.Adder, ref.Comparer,
// ...) rather than one concrete overload per operand-type combination: the
// teacher needs per-kind entries because its OverloadImpl operates on
// unwrapped native Go values, while this core's Val variants already know
// how to add/compare/negate themselves, so one generic dispatcher per
// operator covers every kind that implements the capability, without a
// combinatorial overload table.
func NewStandardRegistry() *Registry {
	reg := NewRegistry()
	RegisterStandard(reg)
	return reg
}

// RegisterStandard registers the §6 built-ins into reg.
func RegisterStandard(reg *Registry) {
	registerLogical(reg)
	registerEquality(reg)
	registerOrdering(reg)
	registerArithmetic(reg)
	registerContainers(reg)
	registerStrings(reg)
	registerTime(reg)
	registerConversions(reg)
	registerNotStrictlyFalse(reg)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func registerLogical(reg *Registry) {
	must(reg.Register(Overload{
		Name: "logical_and", Function: operators.LogicalAnd,
		ArgTypes: []ref.Kind{AnyType, AnyType},
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
		return andTruthTable(args[0], args[1]), nil
	}))
	must(reg.Register(Overload{
		Name: "logical_or", Function: operators.LogicalOr,
		ArgTypes: []ref.Kind{AnyType, AnyType},
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
		return orTruthTable(args[0], args[1]), nil
	}))
}

// registerNotStrictlyFalse registers the §6 required __not_strictly_false__
// built-in: CondJumpStep dispatches every comprehension loop condition
// through this same overload rather than comparing against types.Bool(false)
// directly, so the "not strictly false" rule has exactly one definition in
// the whole core. Only a literal false stops the loop; an error or unknown
// condition is passed through as "not strictly false" and the loop's own
// CondJump is the sole place that decides what to do with it next.
func registerNotStrictlyFalse(reg *Registry) {
	must(reg.Register(Overload{
		Name: "not_strictly_false", Function: operators.NotStrictlyFalse,
		ArgTypes: []ref.Kind{AnyType},
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
		if b, ok := args[0].(types.Bool); ok && !bool(b) {
			return types.Bool(false), nil
		}
		return types.Bool(true), nil
	}))
}

// andTruthTable implements CEL's non-strict `&&` semantics (§4.4.1, §7): a
// literal false on either side always wins, even over an error or unknown
// on the other; only once both sides are ruled out as decisive does an
// error or unknown propagate.
func andTruthTable(a, b ref.Val) ref.Val {
	if ab, ok := a.(types.Bool); ok && !bool(ab) {
		return types.Bool(false)
	}
	if bb, ok := b.(types.Bool); ok && !bool(bb) {
		return types.Bool(false)
	}
	if types.IsError(a) {
		return a
	}
	if types.IsError(b) {
		return b
	}
	if au, ok := a.(*types.Unknown); ok {
		if bu, ok2 := b.(*types.Unknown); ok2 {
			return types.MergeUnknowns(au, bu)
		}
		return au
	}
	if types.IsUnknown(b) {
		return b
	}
	ab, aok := a.(types.Bool)
	bb, bok := b.(types.Bool)
	if aok && bok {
		return types.Bool(bool(ab) && bool(bb))
	}
	return types.NoSuchOverload(operators.LogicalAnd, a, b)
}

// orTruthTable mirrors andTruthTable with `true` as the decisive value.
func orTruthTable(a, b ref.Val) ref.Val {
	if ab, ok := a.(types.Bool); ok && bool(ab) {
		return types.Bool(true)
	}
	if bb, ok := b.(types.Bool); ok && bool(bb) {
		return types.Bool(true)
	}
	if types.IsError(a) {
		return a
	}
	if types.IsError(b) {
		return b
	}
	if au, ok := a.(*types.Unknown); ok {
		if bu, ok2 := b.(*types.Unknown); ok2 {
			return types.MergeUnknowns(au, bu)
		}
		return au
	}
	if types.IsUnknown(b) {
		return b
	}
	ab, aok := a.(types.Bool)
	bb, bok := b.(types.Bool)
	if aok && bok {
		return types.Bool(bool(ab) || bool(bb))
	}
	return types.NoSuchOverload(operators.LogicalOr, a, b)
}

func registerEquality(reg *Registry) {
	must(reg.Register(Overload{
		Name: "equals", Function: operators.Equals,
		ArgTypes: []ref.Kind{AnyType, AnyType},
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
		return args[0].Equal(args[1]), nil
	}))
	must(reg.Register(Overload{
		Name: "not_equals", Function: operators.NotEquals,
		ArgTypes: []ref.Kind{AnyType, AnyType},
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
		eq := args[0].Equal(args[1])
		if types.IsErrorOrUnknown(eq) {
			return eq, nil
		}
		b, ok := eq.(types.Bool)
		if !ok {
			return types.NewErrKind(types.ErrInternal, "internal: Equal did not return Bool"), nil
		}
		return types.Bool(!bool(b)), nil
	}))
}

// registerOrdering registers `<`/`<=`/`>`/`>=` as four generic overloads
// dispatching through ref.Comparer, plus the bool-ordering special case
// (false < true) the teacher's standard.go also calls out separately since
// Bool has no Compare method of its own in this core's narrower value
// algebra (§4.1 only requires ordering for the numeric/string/bytes/
// duration/timestamp families; bool ordering piggybacks on the same
// operators rather than adding a fifth capability interface for one type).
func registerOrdering(reg *Registry) {
	type pickFn func(types.Int) bool
	register := func(name, function string, pick pickFn) {
		must(reg.Register(Overload{
			Name: name, Function: function,
			ArgTypes: []ref.Kind{AnyType, AnyType},
		}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
			cmp, errv := compareVals(function, args[0], args[1])
			if types.IsError(cmp) {
				return cmp, nil
			}
			if errv != nil {
				return errv, nil
			}
			return types.Bool(pick(cmp.(types.Int))), nil
		}))
	}
	register("less_than", operators.Less, func(c types.Int) bool { return c == types.IntNegOne })
	register("less_equals", operators.LessEquals, func(c types.Int) bool { return c != types.IntOne })
	register("greater_than", operators.Greater, func(c types.Int) bool { return c == types.IntOne })
	register("greater_equals", operators.GreaterEquals, func(c types.Int) bool { return c != types.IntNegOne })
}

func compareVals(function string, a, b ref.Val) (ref.Val, *types.Err) {
	if ab, ok := a.(types.Bool); ok {
		bb, ok := b.(types.Bool)
		if !ok {
			return nil, types.NoSuchOverload(function, a, b)
		}
		switch {
		case !bool(ab) && bool(bb):
			return types.IntNegOne, nil
		case bool(ab) && !bool(bb):
			return types.IntOne, nil
		default:
			return types.IntZero, nil
		}
	}
	cmp, ok := a.(ref.Comparer)
	if !ok {
		return nil, types.NoSuchOverload(function, a, b)
	}
	result := cmp.Compare(b)
	if types.IsError(result) {
		return result, nil
	}
	ri, ok := result.(types.Int)
	if !ok {
		return nil, types.NewErrKind(types.ErrInternal, "internal: Compare did not return Int")
	}
	return ri, nil
}

// registerArithmetic registers `+`/`-`/`*`/`/`/`%`/unary `-` as one
// generic overload each, dispatching through the value algebra's
// Adder/Subtractor/Multiplier/Divider/Modder/Negater capability interfaces
// (§4.1, §6): every variant that implements the interface participates
// automatically, with no per-kind registration needed.
func registerArithmetic(reg *Registry) {
	must(reg.Register(Overload{
		Name: "add", Function: operators.Add, ArgTypes: []ref.Kind{AnyType, AnyType},
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
		a, ok := args[0].(ref.Adder)
		if !ok {
			return types.NoSuchOverload(operators.Add, args[0], args[1]), nil
		}
		return a.Add(args[1]), nil
	}))
	must(reg.Register(Overload{
		Name: "subtract", Function: operators.Subtract, ArgTypes: []ref.Kind{AnyType, AnyType},
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
		a, ok := args[0].(ref.Subtractor)
		if !ok {
			return types.NoSuchOverload(operators.Subtract, args[0], args[1]), nil
		}
		return a.Subtract(args[1]), nil
	}))
	must(reg.Register(Overload{
		Name: "multiply", Function: operators.Multiply, ArgTypes: []ref.Kind{AnyType, AnyType},
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
		a, ok := args[0].(ref.Multiplier)
		if !ok {
			return types.NoSuchOverload(operators.Multiply, args[0], args[1]), nil
		}
		return a.Multiply(args[1]), nil
	}))
	must(reg.Register(Overload{
		Name: "divide", Function: operators.Divide, ArgTypes: []ref.Kind{AnyType, AnyType},
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
		a, ok := args[0].(ref.Divider)
		if !ok {
			return types.NoSuchOverload(operators.Divide, args[0], args[1]), nil
		}
		return a.Divide(args[1]), nil
	}))
	must(reg.Register(Overload{
		Name: "modulo", Function: operators.Modulo, ArgTypes: []ref.Kind{AnyType, AnyType},
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
		a, ok := args[0].(ref.Modder)
		if !ok {
			return types.NoSuchOverload(operators.Modulo, args[0], args[1]), nil
		}
		return a.Modulo(args[1]), nil
	}))
	must(reg.Register(Overload{
		Name: "negate", Function: operators.Negate, ArgTypes: []ref.Kind{AnyType},
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
		n, ok := args[0].(ref.Negater)
		if !ok {
			return types.NoSuchOverload(operators.Negate, args[0], args[0]), nil
		}
		return n.Negate(), nil
	}))
}

// registerContainers registers `_[_]`, `in`/`@in` and `size` (§4.1, §6).
func registerContainers(reg *Registry) {
	must(reg.Register(Overload{
		Name: "index", Function: operators.Index, ArgTypes: []ref.Kind{AnyType, AnyType},
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
		idx, ok := args[0].(ref.Indexer)
		if !ok {
			return types.NoSuchOverload(operators.Index, args[0], args[1]), nil
		}
		return idx.Get(args[1]), nil
	}))
	inFn := func(args []ref.Val, arena *Arena) (ref.Val, error) {
		c, ok := args[1].(ref.Container)
		if !ok {
			return types.NoSuchOverload(operators.In, args[0], args[1]), nil
		}
		return c.Contains(args[0]), nil
	}
	must(reg.Register(Overload{Name: "in", Function: operators.In, ArgTypes: []ref.Kind{AnyType, AnyType}}, inFn))
	must(reg.Register(Overload{Name: "old_in", Function: operators.OldIn, ArgTypes: []ref.Kind{AnyType, AnyType}}, inFn))

	sizeFn := func(args []ref.Val, arena *Arena) (ref.Val, error) {
		s, ok := args[0].(ref.Sizer)
		if !ok {
			return types.NoSuchOverload("size", args[0], args[0]), nil
		}
		return s.Size(), nil
	}
	must(reg.Register(Overload{Name: "size_global", Function: "size", ArgTypes: []ref.Kind{AnyType}}, sizeFn))
	must(reg.Register(Overload{
		Name: "size_member", Function: "size", ReceiverStyle: true, ArgTypes: []ref.Kind{AnyType},
	}, sizeFn))
}
