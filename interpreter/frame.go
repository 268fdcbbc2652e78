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
)

// iterState is one binding-stack entry for an in-flight comprehension
// (§4.4.2, §9 "Comprehension state"): the iteration variable and
// accumulator's current bindings, the position within the (already
// key-normalized) range list, and the activation to restore when the
// comprehension closes.
type iterState struct {
	iterVar, accuVar string
	rangeList        *types.List
	index            int // -1 before the first Next call
	iterVal          ref.Val
	accuVal          ref.Val
	parent           Activation
}

// scopeActivation layers one iterState's iter/accu bindings over the
// enclosing activation, letting ordinary Ident steps inside the loop body
// resolve iter_var/accu_var exactly like any other name (§4.4.2: "Nested
// comprehensions push/pop cleanly because PushIterState/PopIterState
// bracket the lowered region").
type scopeActivation struct {
	scope *iterState
}

var _ Activation = (*scopeActivation)(nil)

func (s *scopeActivation) ResolveName(name string) (ref.Val, bool) {
	if name == s.scope.iterVar && s.scope.iterVal != nil {
		return s.scope.iterVal, true
	}
	if name == s.scope.accuVar && s.scope.accuVal != nil {
		return s.scope.accuVal, true
	}
	return s.scope.parent.ResolveName(name)
}

func (s *scopeActivation) UnknownPaths() PathMask { return s.scope.parent.UnknownPaths() }
func (s *scopeActivation) Parent() Activation      { return s.scope.parent }

// Frame is the runtime state of one Evaluate call (§3 "Execution frame",
// §4.5): the immutable step list, program counter, operand stack, the
// comprehension binding stack, the caller's activation (reachable through
// the currently-innermost scopeActivation), and the per-evaluation arena.
type Frame struct {
	Steps      []Step
	PC         int
	Stack      *ValueStack
	Activation Activation
	Arena      *Arena
	iterStack  []*iterState
}

// NewFrame builds a Frame ready to execute steps against activation.
func NewFrame(steps []Step, activation Activation) *Frame {
	return &Frame{
		Steps:      steps,
		Stack:      NewValueStack(len(steps)/2 + 4),
		Activation: activation,
		Arena:      NewArena(),
	}
}

// pushIterState begins a new comprehension scope, layering iterVar/accuVar
// over the current activation.
func (f *Frame) pushIterState(iterVar, accuVar string, rangeList *types.List) {
	st := &iterState{
		iterVar:   iterVar,
		accuVar:   accuVar,
		rangeList: rangeList,
		index:     -1,
		parent:    f.Activation,
	}
	f.iterStack = append(f.iterStack, st)
	f.Activation = &scopeActivation{scope: st}
}

// topIterState returns the innermost in-flight comprehension scope.
func (f *Frame) topIterState() *iterState {
	return f.iterStack[len(f.iterStack)-1]
}

// popIterState closes the innermost comprehension scope, restoring the
// activation that was current before pushIterState.
func (f *Frame) popIterState() {
	st := f.iterStack[len(f.iterStack)-1]
	f.iterStack = f.iterStack[:len(f.iterStack)-1]
	f.Activation = st.parent
}
