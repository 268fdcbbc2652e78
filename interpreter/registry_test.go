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
	"github.com/celrt/cel-core/common/types/ref"
)

func TestRegistryExactKindPreferredOverWildcard(t *testing.T) {
	reg := NewRegistry()
	var calledWildcard, calledExact bool
	must(reg.Register(Overload{
		Name: "f_any", Function: "f", ArgTypes: []ref.Kind{AnyType},
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
		calledWildcard = true
		return types.Bool(true), nil
	}))
	must(reg.Register(Overload{
		Name: "f_int", Function: "f", ArgTypes: []ref.Kind{types.IntType.Kind()},
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
		calledExact = true
		return types.Bool(true), nil
	}))
	_, err := reg.Dispatch("f", false, []ref.Val{types.Int(1)}, NewArena())
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if !calledExact || calledWildcard {
		t.Errorf("exact-kind overload should win over wildcard: exact=%v wildcard=%v", calledExact, calledWildcard)
	}
}

func TestRegistryNoMatchingOverload(t *testing.T) {
	reg := NewRegistry()
	must(reg.Register(Overload{
		Name: "f_int", Function: "f", ArgTypes: []ref.Kind{types.IntType.Kind()},
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
		return types.Bool(true), nil
	}))
	result, err := reg.Dispatch("f", false, []ref.Val{types.String("x")}, NewArena())
	if err != nil {
		t.Fatalf("Dispatch returned evaluator error: %v", err)
	}
	errv, ok := result.(*types.Err)
	if !ok || errv.Kind != types.ErrNoMatchingOverload {
		t.Errorf("result = %v, want a no_matching_overload Err", result)
	}
}

func TestRegistryRejectsDuplicateSignature(t *testing.T) {
	reg := NewRegistry()
	o := Overload{Name: "dup", Function: "f", ArgTypes: []ref.Kind{AnyType}}
	impl := func(args []ref.Val, arena *Arena) (ref.Val, error) { return types.Bool(true), nil }
	if err := reg.Register(o, impl); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if err := reg.Register(o, impl); err == nil {
		t.Error("second Register with identical signature should fail")
	}
}

func TestRegistryFrozenRejectsRegister(t *testing.T) {
	reg := NewRegistry()
	reg.Freeze()
	err := reg.Register(Overload{Name: "f", Function: "f", ArgTypes: []ref.Kind{AnyType}},
		func(args []ref.Val, arena *Arena) (ref.Val, error) { return nil, nil })
	if err == nil {
		t.Error("Register on a frozen registry should fail")
	}
}

func TestRegistryReceiverStyleDistinguishedFromGlobal(t *testing.T) {
	reg := NewRegistry()
	must(reg.Register(Overload{
		Name: "size_member", Function: "size", ReceiverStyle: true, ArgTypes: []ref.Kind{AnyType},
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) { return types.Int(1), nil }))
	_, found := reg.FindOverload("size", false, []ref.Val{types.NewList(nil)})
	if found {
		t.Error("global-style dispatch should not match a receiver-style overload")
	}
	_, found = reg.FindOverload("size", true, []ref.Val{types.NewList(nil)})
	if !found {
		t.Error("receiver-style dispatch should match the receiver-style overload")
	}
}
