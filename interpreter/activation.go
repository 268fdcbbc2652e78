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

// Package interpreter implements the runtime core of spec.md: the function
// registry, activation, step builder, value stack/execution frame and
// interpreter loop.
package interpreter

import "github.com/celrt/cel-core/common/types/ref"

// Activation is the read-side binding a caller supplies to one Evaluate
// call (§4.3/§6): named-variable lookup plus an unknown-path mask.
// Grounded on the teacher's interpreter/activation.go Activation interface,
// trimmed of the ResolveReference-by-expr-id path (that exists in the
// teacher to let the checker's resolved-reference pass short-circuit ident
// resolution; this core's builder never produces such references, since
// type-checking is an out-of-scope external pass).
type Activation interface {
	// ResolveName returns the value bound to name, or false if unbound.
	ResolveName(name string) (ref.Val, bool)

	// UnknownPaths returns the activation's unknown-path mask (§4.3); nil
	// or empty means nothing is declared unknown.
	UnknownPaths() PathMask

	// Parent returns the parent activation to fall back to, or nil.
	Parent() Activation
}

// PathMask holds a set of dotted paths (e.g. "message.message_value.int32")
// and answers whether a given dotted path is unknown, by exact match or by
// prefix (§4.3: "any prefix match turns the intermediate result into an
// unknown value").
type PathMask interface {
	// Matches reports whether path is unknown: either an exact entry in the
	// mask, or a strict prefix of the path with a "." boundary.
	Matches(path string) bool
}

// NewActivation returns an Activation over a map of name -> Val bindings,
// with no unknown paths declared.
func NewActivation(bindings map[string]ref.Val) *MapActivation {
	return &MapActivation{bindings: bindings}
}

// NewPartialActivation returns an Activation with both bindings and an
// unknown-path mask.
func NewPartialActivation(bindings map[string]ref.Val, unknowns PathMask) *MapActivation {
	return &MapActivation{bindings: bindings, unknowns: unknowns}
}

// MapActivation is the default Activation implementation: a flat map of
// bindings plus an optional PathMask.
type MapActivation struct {
	bindings map[string]ref.Val
	unknowns PathMask
	parent   Activation
}

var _ Activation = (*MapActivation)(nil)

func (a *MapActivation) ResolveName(name string) (ref.Val, bool) {
	if v, found := a.bindings[name]; found {
		return v, true
	}
	return nil, false
}

func (a *MapActivation) UnknownPaths() PathMask {
	return a.unknowns
}

func (a *MapActivation) Parent() Activation {
	return a.parent
}

// hierarchicalActivation resolves in the child first, then the parent;
// mirrors the teacher's HierarchicalActivation/ExtendActivation pair for
// layering one activation on top of another without mutating it (§4.5).
// Comprehension iter/accu bindings do not use it; they go through
// scopeActivation in frame.go.
type hierarchicalActivation struct {
	parent Activation
	child  Activation
}

var _ Activation = (*hierarchicalActivation)(nil)

// ExtendActivation layers child's bindings over parent, falling back to
// parent for names child does not bind.
func ExtendActivation(parent, child Activation) Activation {
	return &hierarchicalActivation{parent: parent, child: child}
}

func (a *hierarchicalActivation) ResolveName(name string) (ref.Val, bool) {
	if v, found := a.child.ResolveName(name); found {
		return v, true
	}
	return a.parent.ResolveName(name)
}

func (a *hierarchicalActivation) UnknownPaths() PathMask {
	if a.child.UnknownPaths() != nil {
		return a.child.UnknownPaths()
	}
	return a.parent.UnknownPaths()
}

func (a *hierarchicalActivation) Parent() Activation {
	return a.parent
}

// EmptyActivation binds nothing and declares no unknown paths.
var EmptyActivation Activation = &MapActivation{}
