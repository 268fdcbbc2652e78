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

	"github.com/celrt/cel-core/common/types"
)

func TestValueStackPushSpanReplace(t *testing.T) {
	s := NewValueStack(4)
	s.Push(types.Int(1))
	s.Push(types.Int(2))
	s.Push(types.Int(3))
	args := s.Span(2)
	if args[0] != types.Int(2) || args[1] != types.Int(3) {
		t.Fatalf("Span(2) = %v, want [2 3]", args)
	}
	s.Replace(2, types.Int(5))
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if s.Peek() != types.Int(5) {
		t.Fatalf("Peek() = %v, want 5", s.Peek())
	}
}

func TestValueStackSpanDoesNotPop(t *testing.T) {
	s := NewValueStack(2)
	s.Push(types.Int(1))
	_ = s.Span(1)
	if s.Len() != 1 {
		t.Fatalf("Span must not remove values; Len() = %d, want 1", s.Len())
	}
}

func TestValueStackPeekPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Peek on an empty stack should panic")
		}
	}()
	NewValueStack(0).Peek()
}
