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

	"github.com/celrt/cel-core/common/types/ref"
)

// ValueStack is the growable operand stack of §4.5. The interpreter loop
// never pops arguments before a registry invocation; it forms the argument
// slice with Span, and only pops on success, so a step that errors mid-call
// leaves a diagnosable stack.
type ValueStack struct {
	values []ref.Val
}

// NewValueStack returns an empty stack with the given initial capacity.
func NewValueStack(capacity int) *ValueStack {
	return &ValueStack{values: make([]ref.Val, 0, capacity)}
}

// Push appends a value to the top of the stack.
func (s *ValueStack) Push(v ref.Val) {
	s.values = append(s.values, v)
}

// Len returns the current stack depth.
func (s *ValueStack) Len() int { return len(s.values) }

// HasEnough reports whether at least n values are present.
func (s *ValueStack) HasEnough(n int) bool { return len(s.values) >= n }

// Peek returns the top-of-stack value without removing it. Panics on an
// empty stack — callers must check HasEnough(1) first; an empty peek is
// always an evaluator bug (§4.7 tier 2, stack underflow), never something a
// step should recover from.
func (s *ValueStack) Peek() ref.Val {
	if len(s.values) == 0 {
		panic("interpreter: stack underflow on Peek")
	}
	return s.values[len(s.values)-1]
}

// Span returns a view of the top n values, in bottom-to-top (argument)
// order, without removing them.
func (s *ValueStack) Span(n int) []ref.Val {
	if !s.HasEnough(n) {
		panic(fmt.Sprintf("interpreter: stack underflow on Span(%d), have %d", n, len(s.values)))
	}
	return s.values[len(s.values)-n:]
}

// Pop removes and discards the top n values.
func (s *ValueStack) Pop(n int) {
	if !s.HasEnough(n) {
		panic(fmt.Sprintf("interpreter: stack underflow on Pop(%d), have %d", n, len(s.values)))
	}
	s.values = s.values[:len(s.values)-n]
}

// Replace pops n values and pushes result, the idiom every call/select/
// create-list step uses: span to read args, invoke, then replace.
func (s *ValueStack) Replace(n int, result ref.Val) {
	s.Pop(n)
	s.Push(result)
}
