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
	"fmt"

	"github.com/celrt/cel-core/common/types"
	"github.com/celrt/cel-core/common/types/ref"
	"github.com/celrt/cel-core/operators"
)

// Step is one instruction of the linear program the builder emits (§3/§4.4):
// a flat, jump-addressed sequence rather than a tree the interpreter
// recurses over. Grounded on the historical teacher instructions.go
// JumpInst/MovInst/PushScopeInst family and on cel-cpp's ExpressionStep,
// which is the architecture spec.md actually describes.
type Step interface {
	// Execute runs the step against frame, mutating its stack/PC/bindings.
	// The returned error is an evaluator-level (tier 2, §4.7) failure that
	// aborts Eval outright; ordinary CEL failures are pushed as a
	// *types.Err value instead.
	Execute(f *Frame) error

	// ID returns the originating AST node's id, used to correlate a step
	// back to source for tracing (§4.6).
	ID() int64

	// Synthetic reports whether the builder generated this step itself
	// (the comprehension scaffolding of §4.4.2) rather than lowering it
	// directly from an AST node; the interpreter loop suppresses trace
	// publication for synthetic steps. Non-synthetic steps publish each time
	// they execute, so a node inside a comprehension's loop condition or
	// loop step publishes once per iteration (§4.6).
	Synthetic() bool
}

type baseStep struct {
	id        int64
	synthetic bool
}

func (s baseStep) ID() int64      { return s.id }
func (s baseStep) Synthetic() bool { return s.synthetic }

// firstErrorOrUnknown implements the strict-argument short-circuit rule of
// §4.4.1/§7: an error anywhere in args wins (first one, left to right) over
// an unknown; unknowns merge; otherwise nil (no short-circuit).
func firstErrorOrUnknown(args []ref.Val) ref.Val {
	var unk *types.Unknown
	for _, a := range args {
		if types.IsError(a) {
			return a
		}
		if u, ok := a.(*types.Unknown); ok {
			if unk == nil {
				unk = u
			} else {
				unk = types.MergeUnknowns(unk, u)
			}
		}
	}
	if unk != nil {
		return unk
	}
	return nil
}

// ConstStep pushes a pre-built constant value (§4.4: ConstExpr lowering).
type ConstStep struct {
	baseStep
	Value ref.Val
}

func NewConstStep(id int64, v ref.Val) *ConstStep {
	return &ConstStep{baseStep{id: id}, v}
}

func (s *ConstStep) Execute(f *Frame) error {
	f.Stack.Push(s.Value)
	return nil
}

// IdentStep resolves a variable name against the frame's current activation,
// then against the builder's registered enum values, per §4.4's three-step
// fallback: an activation-declared unknown path wins over a bound value; a
// name the activation doesn't bind is looked up as a qualified enum member
// (e.g. "pkg.TestMessage.TestEnum.TEST_ENUM_1"); only once both fail is the
// name a value-level error (no_such_field), not an evaluator failure, so it
// can still be absorbed by a short-circuiting `||`/`&&`.
type IdentStep struct {
	baseStep
	Name  string
	Enums map[string]int64
}

func NewIdentStep(id int64, name string, enums map[string]int64) *IdentStep {
	return &IdentStep{baseStep{id: id}, name, enums}
}

func (s *IdentStep) Execute(f *Frame) error {
	if mask := f.Activation.UnknownPaths(); mask != nil && mask.Matches(s.Name) {
		f.Stack.Push(f.Arena.Own(types.NewUnknown(s.Name)))
		return nil
	}
	if v, found := f.Activation.ResolveName(s.Name); found {
		f.Stack.Push(v)
		return nil
	}
	if n, ok := s.Enums[s.Name]; ok {
		f.Stack.Push(f.Arena.Own(types.Int(n)))
		return nil
	}
	f.Stack.Push(f.Arena.Own(types.NewErrKind(types.ErrNoSuchField,
		"no_such_field: %s", s.Name)))
	return nil
}

// SelectStep implements field selection and the `has()` test-only form
// (§4.4). Path is the statically-known dotted attribute path rooted at an
// Ident (e.g. "a.b.c"), used to consult the activation's unknown-path mask
// per §4.3; it is empty when the operand isn't a plain ident/select chain,
// in which case only the operand's own runtime value (possibly already
// Unknown) is consulted.
type SelectStep struct {
	baseStep
	Field    string
	TestOnly bool
	Path     string
}

func NewSelectStep(id int64, field string, testOnly bool, path string) *SelectStep {
	return &SelectStep{baseStep{id: id}, field, testOnly, path}
}

func (s *SelectStep) Execute(f *Frame) error {
	if !f.Stack.HasEnough(1) {
		return fmt.Errorf("internal: select %q needs 1 operand, stack is empty", s.Field)
	}
	operand := f.Stack.Peek()
	if s.Path != "" {
		if mask := f.Activation.UnknownPaths(); mask != nil && mask.Matches(s.Path) {
			f.Stack.Replace(1, f.Arena.Own(types.NewUnknown(s.Path)))
			return nil
		}
	}
	if types.IsErrorOrUnknown(operand) {
		return nil // operand already on top of stack; propagate as-is
	}
	if m, ok := operand.(*types.Map); ok {
		if s.TestOnly {
			f.Stack.Replace(1, m.Contains(types.String(s.Field)))
		} else {
			f.Stack.Replace(1, m.Get(types.String(s.Field)))
		}
		return nil
	}
	if s.TestOnly {
		fielder, ok := operand.(ref.Fielder)
		if !ok {
			f.Stack.Replace(1, f.Arena.Own(types.NewErrKind(types.ErrNoSuchField,
				"no_such_field: has() on non-message value %s", types.TypeNameOf(operand))))
			return nil
		}
		has, err := fielder.HasField(s.Field)
		if err != nil {
			f.Stack.Replace(1, f.Arena.Own(types.NewErrKind(types.ErrNoSuchField, "%s", err)))
			return nil
		}
		f.Stack.Replace(1, types.Bool(has))
		return nil
	}
	fielder, ok := operand.(ref.Fielder)
	if !ok {
		f.Stack.Replace(1, f.Arena.Own(types.NewErrKind(types.ErrNoSuchField,
			"no_such_field: select on non-message value %s", types.TypeNameOf(operand))))
		return nil
	}
	f.Stack.Replace(1, fielder.GetField(s.Field))
	return nil
}

// InvokeStep dispatches a global or receiver-style function call through
// the Registry (§4.2, §4.4). Argc includes the receiver, when ReceiverStyle.
type InvokeStep struct {
	baseStep
	Function      string
	ReceiverStyle bool
	Argc          int
	Registry      *Registry
}

func NewInvokeStep(id int64, function string, receiverStyle bool, argc int, reg *Registry) *InvokeStep {
	return &InvokeStep{baseStep{id: id}, function, receiverStyle, argc, reg}
}

func (s *InvokeStep) Execute(f *Frame) error {
	if !f.Stack.HasEnough(s.Argc) {
		return fmt.Errorf("internal: invoke %q needs %d operands, stack has %d",
			s.Function, s.Argc, f.Stack.Len())
	}
	args := f.Stack.Span(s.Argc)
	var result ref.Val
	if operators.IsStrict(s.Function) {
		result = firstErrorOrUnknown(args)
	}
	if result == nil {
		var err error
		result, err = s.Registry.Dispatch(s.Function, s.ReceiverStyle, args, f.Arena)
		if err != nil {
			return err
		}
	}
	f.Stack.Replace(s.Argc, f.Arena.Own(result))
	return nil
}

// CreateListStep builds a list from the top N stack values (§4.4).
type CreateListStep struct {
	baseStep
	N int
}

func NewCreateListStep(id, n int64) *CreateListStep {
	return &CreateListStep{baseStep{id: id}, int(n)}
}

func (s *CreateListStep) Execute(f *Frame) error {
	if !f.Stack.HasEnough(s.N) {
		return fmt.Errorf("internal: create_list needs %d operands, stack has %d", s.N, f.Stack.Len())
	}
	elems := f.Stack.Span(s.N)
	if v := firstErrorOrUnknown(elems); v != nil {
		f.Stack.Replace(s.N, v)
		return nil
	}
	f.Stack.Replace(s.N, f.Arena.Own(types.NewList(append([]ref.Val{}, elems...))))
	return nil
}

// CreateMapStep builds a map from the top 2*N stack values, laid out as
// alternating key/value pairs in source order (§4.4).
type CreateMapStep struct {
	baseStep
	N int
}

func NewCreateMapStep(id, n int64) *CreateMapStep {
	return &CreateMapStep{baseStep{id: id}, int(n)}
}

func (s *CreateMapStep) Execute(f *Frame) error {
	count := 2 * s.N
	if !f.Stack.HasEnough(count) {
		return fmt.Errorf("internal: create_map needs %d operands, stack has %d", count, f.Stack.Len())
	}
	pairs := f.Stack.Span(count)
	if v := firstErrorOrUnknown(pairs); v != nil {
		f.Stack.Replace(count, v)
		return nil
	}
	keys := make([]ref.Val, s.N)
	values := make([]ref.Val, s.N)
	for i := 0; i < s.N; i++ {
		keys[i] = pairs[2*i]
		values[i] = pairs[2*i+1]
	}
	m, errv := types.NewMap(keys, values)
	if errv != nil {
		f.Stack.Replace(count, errv)
		return nil
	}
	f.Stack.Replace(count, f.Arena.Own(m))
	return nil
}

// CreateMessageStep builds a typed message from the top N stack values, one
// per FieldNames entry in order (§4.4). Limited to scalar fields; nested
// message/list/map field initializers are left to the pre-built messages an
// activation supplies, consistent with §1 treating protobuf messages as
// already-constructed opaque objects rather than something this core's
// builder fully reflects over.
type CreateMessageStep struct {
	baseStep
	MessageName string
	FieldNames  []string
}

func NewCreateMessageStep(id int64, messageName string, fieldNames []string) *CreateMessageStep {
	return &CreateMessageStep{baseStep{id: id}, messageName, fieldNames}
}

func (s *CreateMessageStep) Execute(f *Frame) error {
	n := len(s.FieldNames)
	if !f.Stack.HasEnough(n) {
		return fmt.Errorf("internal: create_message %q needs %d operands, stack has %d",
			s.MessageName, n, f.Stack.Len())
	}
	values := f.Stack.Span(n)
	if v := firstErrorOrUnknown(values); v != nil {
		f.Stack.Replace(n, v)
		return nil
	}
	result := types.NewMessageByName(s.MessageName, s.FieldNames, append([]ref.Val{}, values...))
	f.Stack.Replace(n, f.Arena.Own(result))
	return nil
}

// jumpStep is embedded by the unconditional/conditional control-transfer
// steps the short-circuit and comprehension lowerings use (§4.4.1/§4.4.2).
// Offset is the number of steps to advance PC by, relative to the step
// immediately following the jump itself (so Offset==0 is a no-op jump).
type jumpStep struct {
	baseStep
	Offset int
}

// JumpStep is an unconditional jump (used to skip the untaken ternary
// branch, and by a comprehension's JumpBack to loop).
type JumpStep struct {
	jumpStep
}

func NewJumpStep(id int64, offset int, synthetic bool) *JumpStep {
	return &JumpStep{jumpStep{baseStep{id: id, synthetic: synthetic}, offset}}
}

func (s *JumpStep) Execute(f *Frame) error {
	f.PC += s.Offset
	return nil
}

// JumpIfDecisiveStep implements the `&&`/`||` short-circuit lowering of
// §4.4.1: it peeks the left operand already on the stack, and when it
// exactly equals Decisive (false for `&&`, true for `||`), that alone
// determines the whole expression's result, so the step leaves it on the
// stack as the final value and jumps past the right operand's steps AND the
// combine step entirely — the right operand is never evaluated, which is
// what makes side effects and infinite comprehensions on that branch
// unobservable. Any other left value (the non-decisive bool, an error, or
// unknown) falls through so the right operand still runs and the dedicated
// `_&&_`/`_||_` overload (registered directly, not through the generic
// strict-argument check, since both are in operators' nonStrict set) can
// apply CEL's full non-strict truth table to the pair.
type JumpIfDecisiveStep struct {
	jumpStep
	Decisive types.Bool
}

func NewJumpIfDecisiveStep(id int64, offset int, decisive bool) *JumpIfDecisiveStep {
	return &JumpIfDecisiveStep{jumpStep{baseStep{id: id, synthetic: true}, offset}, types.Bool(decisive)}
}

func (s *JumpIfDecisiveStep) Execute(f *Frame) error {
	if !f.Stack.HasEnough(1) {
		return fmt.Errorf("internal: logical short-circuit jump needs 1 operand, stack is empty")
	}
	if f.Stack.Peek() == s.Decisive {
		f.PC += s.Offset
	}
	return nil
}

// TernaryStep implements `_?_:_` (§4.4.1): an error/unknown condition
// propagates as the whole expression's result without evaluating either
// arm; otherwise exactly one arm's steps run. ElseOffset lands at the start
// of the else-arm's steps; ErrorOffset lands just past the whole ternary
// (skipping both arms), the same destination a normal fallthrough reaches
// after the else arm finishes.
type TernaryStep struct {
	baseStep
	ElseOffset  int
	ErrorOffset int
}

func NewTernaryStep(id int64, elseOffset, errorOffset int) *TernaryStep {
	return &TernaryStep{baseStep{id: id, synthetic: true}, elseOffset, errorOffset}
}

func (s *TernaryStep) Execute(f *Frame) error {
	if !f.Stack.HasEnough(1) {
		return fmt.Errorf("internal: ternary needs 1 operand, stack is empty")
	}
	cond := f.Stack.Peek()
	if types.IsErrorOrUnknown(cond) {
		f.PC += s.ErrorOffset
		return nil
	}
	f.Stack.Pop(1)
	b, ok := cond.(types.Bool)
	if !ok {
		f.Stack.Push(f.Arena.Own(types.NoSuchOverload(operators.Conditional, cond, cond)))
		f.PC += s.ErrorOffset
		return nil
	}
	if !bool(b) {
		f.PC += s.ElseOffset
	}
	return nil
}

// NotStep implements the unary `!_` overload inline rather than through the
// registry, since it never participates in overload resolution ambiguity.
type NotStep struct {
	baseStep
}

func NewNotStep(id int64) *NotStep { return &NotStep{baseStep{id: id}} }

func (s *NotStep) Execute(f *Frame) error {
	if !f.Stack.HasEnough(1) {
		return fmt.Errorf("internal: logical not needs 1 operand, stack is empty")
	}
	v := f.Stack.Peek()
	if types.IsErrorOrUnknown(v) {
		return nil
	}
	b, ok := v.(types.Bool)
	if !ok {
		f.Stack.Replace(1, f.Arena.Own(types.NoSuchOverload(operators.LogicalNot, v, v)))
		return nil
	}
	f.Stack.Replace(1, b.Negate())
	return nil
}

// ListKeysStep begins a comprehension's range evaluation: it pops the
// range value (already on the stack from evaluating IterRange) and pushes
// the list to iterate — a map's keys, or the list itself unchanged — or an
// error if the range isn't iterable (§4.4.2).
type ListKeysStep struct {
	baseStep
}

func NewListKeysStep(id int64) *ListKeysStep { return &ListKeysStep{baseStep{id: id, synthetic: true}} }

func (s *ListKeysStep) Execute(f *Frame) error {
	if !f.Stack.HasEnough(1) {
		return fmt.Errorf("internal: list_keys needs 1 operand, stack is empty")
	}
	v := f.Stack.Peek()
	if types.IsErrorOrUnknown(v) {
		return nil
	}
	switch r := v.(type) {
	case *types.List:
		return nil // already the right shape
	case *types.Map:
		f.Stack.Replace(1, f.Arena.Own(r.Keys()))
		return nil
	default:
		f.Stack.Replace(1, f.Arena.Own(types.NoSuchOverloadErr()))
		return nil
	}
}

// PushIterStateStep pops the range list left by ListKeysStep and opens a new
// comprehension scope over it (§4.4.2). When the range is an error or
// unknown (the range expression itself failed, or ListKeysStep found it
// non-iterable — §8 "comprehension over non-container"), the loop never
// runs at all: the range value itself becomes the accumulator, and
// BadRangeJump skips straight past accu_init/BindAccu/the loop body to the
// Result step, which resolves accu_var back out unchanged.
type PushIterStateStep struct {
	baseStep
	IterVar, AccuVar string
	BadRangeJump     int
}

func NewPushIterStateStep(id int64, iterVar, accuVar string, badRangeJump int) *PushIterStateStep {
	return &PushIterStateStep{baseStep{id: id, synthetic: true}, iterVar, accuVar, badRangeJump}
}

func (s *PushIterStateStep) Execute(f *Frame) error {
	if !f.Stack.HasEnough(1) {
		return fmt.Errorf("internal: push_iter_state needs 1 operand, stack is empty")
	}
	v := f.Stack.Peek()
	f.Stack.Pop(1)
	if types.IsErrorOrUnknown(v) {
		f.pushIterState(s.IterVar, s.AccuVar, types.NewList(nil))
		f.topIterState().accuVal = v
		f.PC += s.BadRangeJump
		return nil
	}
	list, ok := v.(*types.List)
	if !ok {
		return fmt.Errorf("internal: push_iter_state expects a *types.List, got %T", v)
	}
	f.pushIterState(s.IterVar, s.AccuVar, list)
	return nil
}

// BindAccuStep pops the evaluated AccuInit expression and binds it as the
// accumulator's initial value in the just-opened comprehension scope.
type BindAccuStep struct {
	baseStep
}

func NewBindAccuStep(id int64) *BindAccuStep { return &BindAccuStep{baseStep{id: id, synthetic: true}} }

func (s *BindAccuStep) Execute(f *Frame) error {
	if !f.Stack.HasEnough(1) {
		return fmt.Errorf("internal: bind_accu needs 1 operand, stack is empty")
	}
	v := f.Stack.Peek()
	f.Stack.Pop(1)
	f.topIterState().accuVal = v
	return nil
}

// NextStep advances the innermost comprehension's cursor. If the range is
// exhausted it jumps JumpEnd steps forward (out of the loop body, to the
// Result evaluation); otherwise it binds the next element to iter_var and
// falls through into the loop condition (§4.4.2).
type NextStep struct {
	baseStep
	JumpEnd int
}

func NewNextStep(id int64, jumpEnd int) *NextStep {
	return &NextStep{baseStep{id: id, synthetic: true}, jumpEnd}
}

func (s *NextStep) Execute(f *Frame) error {
	st := f.topIterState()
	st.index++
	if st.index >= st.rangeList.Len() {
		f.PC += s.JumpEnd
		return nil
	}
	st.iterVal = st.rangeList.At(st.index)
	return nil
}

// CondJumpStep evaluates the comprehension's loop condition result (on top
// of stack, left there by LoopCondition's own steps) against the
// "not strictly false" rule (§4.4.2, §6 __not_strictly_false__): an error
// or unknown condition does NOT stop the loop, only an exact `false` does.
// The rule is dispatched through Registry as the `__not_strictly_false__`
// built-in, the same overload a caller-visible lookup of that name resolves
// to, so the two can never diverge. On stop, it pops the condition and
// jumps JumpEnd steps to the Result evaluation; otherwise it pops the
// condition and falls through to LoopStep.
type CondJumpStep struct {
	baseStep
	JumpEnd  int
	Registry *Registry
}

func NewCondJumpStep(id int64, jumpEnd int, reg *Registry) *CondJumpStep {
	return &CondJumpStep{baseStep{id: id, synthetic: true}, jumpEnd, reg}
}

func (s *CondJumpStep) Execute(f *Frame) error {
	if !f.Stack.HasEnough(1) {
		return fmt.Errorf("internal: cond_jump needs 1 operand, stack is empty")
	}
	cond := f.Stack.Peek()
	f.Stack.Pop(1)
	notStrictlyFalse, err := s.Registry.Dispatch(operators.NotStrictlyFalse, false, []ref.Val{cond}, f.Arena)
	if err != nil {
		return err
	}
	if notStrictlyFalse == types.Bool(false) {
		f.PC += s.JumpEnd
	}
	return nil
}

// RebindAccuStep pops the evaluated LoopStep result and rebinds it as the
// comprehension's current accumulator value (§4.4.2).
type RebindAccuStep struct {
	baseStep
}

func NewRebindAccuStep(id int64) *RebindAccuStep {
	return &RebindAccuStep{baseStep{id: id, synthetic: true}}
}

func (s *RebindAccuStep) Execute(f *Frame) error {
	if !f.Stack.HasEnough(1) {
		return fmt.Errorf("internal: rebind_accu needs 1 operand, stack is empty")
	}
	v := f.Stack.Peek()
	f.Stack.Pop(1)
	f.topIterState().accuVal = v
	return nil
}

// PopIterStateStep closes the innermost comprehension scope, restoring the
// enclosing activation. It runs after the Result expression (which still
// sees iter_var/accu_var bound), so anything after the comprehension sees
// them unbound again (§4.4.2).
type PopIterStateStep struct {
	baseStep
}

func NewPopIterStateStep(id int64) *PopIterStateStep {
	return &PopIterStateStep{baseStep{id: id, synthetic: true}}
}

func (s *PopIterStateStep) Execute(f *Frame) error {
	f.popIterState()
	return nil
}
