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
	"strings"

	"github.com/celrt/cel-core/common/types"
	"github.com/celrt/cel-core/common/types/ref"
)

// AnyType is a wildcard argument-type tag matching any Kind at that
// position — the registry's equivalent of the teacher's dispatcher.go
// treating a Go `interface{}` signature parameter as "dyn".
const AnyType ref.Kind = -1

// Invoke is the function an overload runs once the registry has matched its
// signature. It receives the already-evaluated argument slice and the
// evaluation's Arena (§4.2: "Invocation takes a slice of values plus an
// arena"). The returned error is a registry/evaluator-level failure (tier 2
// of §4.7); ordinary CEL failures (division by zero, bad regex, ...) are
// returned as a *types.Err value, not a Go error.
type Invoke func(args []ref.Val, arena *Arena) (ref.Val, error)

// Overload is a single registered function signature (§4.2).
type Overload struct {
	// Name is the globally unique overload id, e.g. "add_int64".
	Name string
	// Function is the operator/function name as written in an expression,
	// e.g. "_+_" or "size".
	Function string
	// ReceiverStyle distinguishes `x.f(y)` (true) from `f(x,y)` (false).
	ReceiverStyle bool
	// ArgTypes is the ordered argument-type-tag vector; AnyType at a
	// position matches any Kind.
	ArgTypes []ref.Kind
	invoke   Invoke
}

// Registry is the function name-and-overload table of §4.2. It is
// write-once: Register after Freeze (which StepBuilder.Plan calls) returns
// an error, mirroring §5's freeze-on-first-use requirement.
type Registry struct {
	byKey  map[overloadKey]*Overload
	byName map[string][]*Overload
	frozen bool
}

type overloadKey struct {
	function      string
	receiverStyle bool
	sig           string
}

// NewRegistry returns an empty, writable Registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey:  make(map[overloadKey]*Overload),
		byName: make(map[string][]*Overload),
	}
}

func sigOf(argTypes []ref.Kind) string {
	var b strings.Builder
	for i, k := range argTypes {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", k)
	}
	return b.String()
}

// Register adds one overload. Registering two overloads with an identical
// (function, receiver_style, arg types) signature fails with
// invalid_argument, per §4.2.
func (r *Registry) Register(o Overload, invoke Invoke) error {
	if r.frozen {
		return fmt.Errorf("invalid_argument: registry is frozen, cannot register %q", o.Name)
	}
	o.invoke = invoke
	key := overloadKey{o.Function, o.ReceiverStyle, sigOf(o.ArgTypes)}
	if _, exists := r.byKey[key]; exists {
		return fmt.Errorf("invalid_argument: overload %q collides with an existing"+
			" registration for function %q", o.Name, o.Function)
	}
	r.byKey[key] = &o
	r.byName[o.Function] = append(r.byName[o.Function], &o)
	return nil
}

// Freeze marks the registry read-only; called once by the builder before
// the first Plan, per §5.
func (r *Registry) Freeze() { r.frozen = true }

// FindOverload resolves (function, receiverStyle, argTypes) to exactly one
// overload, preferring an exact-kind match over a wildcard match at every
// position. Returns ok=false (not an error) when nothing matches, letting
// the caller choose how to surface that (the interpreter loop turns it into
// a no_matching_overload value, not an evaluator failure, per §4.7 tier 1).
func (r *Registry) FindOverload(function string, receiverStyle bool, args []ref.Val) (*Overload, bool) {
	var wildcardMatch *Overload
	for _, cand := range r.byName[function] {
		if cand.ReceiverStyle != receiverStyle || len(cand.ArgTypes) != len(args) {
			continue
		}
		exact := true
		for i, tag := range cand.ArgTypes {
			if tag == AnyType {
				continue
			}
			if args[i] == nil || tag != args[i].Type().Kind() {
				exact = false
				break
			}
		}
		if exact && !allWildcard(cand.ArgTypes) {
			return cand, true
		}
		if allWildcard(cand.ArgTypes) {
			wildcardMatch = cand
		}
	}
	if wildcardMatch != nil {
		return wildcardMatch, true
	}
	return nil, false
}

func allWildcard(tags []ref.Kind) bool {
	for _, t := range tags {
		if t != AnyType {
			return false
		}
	}
	return true
}

// Dispatch resolves and invokes the overload for (function, receiverStyle,
// args), or returns a no_matching_overload *types.Err value (not a Go
// error) when resolution fails — exactly scenario 6 of spec.md §8.
func (r *Registry) Dispatch(function string, receiverStyle bool, args []ref.Val, arena *Arena) (ref.Val, error) {
	o, found := r.FindOverload(function, receiverStyle, args)
	if !found {
		return types.NoSuchOverloadErr(), nil
	}
	return o.invoke(args, arena)
}
