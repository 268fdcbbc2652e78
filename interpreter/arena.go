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

import "github.com/celrt/cel-core/common/types/ref"

// Arena is the per-evaluation allocator of §3/§5: it owns every value whose
// lifetime extends beyond the step that produced it (concatenated strings,
// built lists/maps, error records), as distinct from values that merely
// borrow from the activation or the AST's constant pool.
//
// Go's garbage collector already keeps anything reachable from the value
// stack alive for the duration of Eval, so Arena does no manual memory
// management; it exists as the explicit ownership boundary the spec names,
// and as the extension point a future implementation could use to pool
// allocations across Eval calls (the teacher's own functions package takes
// an identical "arena as an explicit parameter, currently backed by the Go
// heap" stance for its OverloadImpl signature).
type Arena struct {
	retained []ref.Val
}

// NewArena returns a fresh, empty Arena. One Arena is created per Eval call
// and discarded on return (§3's frame lifecycle).
func NewArena() *Arena {
	return &Arena{}
}

// Own records that v was allocated for this evaluation and returns v
// unchanged, so call sites can write `return arena.Own(types.NewList(...))`
// without a separate statement.
func (a *Arena) Own(v ref.Val) ref.Val {
	a.retained = append(a.retained, v)
	return v
}
