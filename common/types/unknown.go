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

package types

import (
	"sort"
	"strings"

	"github.com/celrt/cel-core/common/types/ref"
)

// Unknown is the distinguished sentinel of §3: produced when a selection
// chain touches a path the activation's unknown-path mask declares withheld
// (§4.3). It propagates through strict operations exactly like an Err, but
// carries its own identity (the set of paths that produced it) so a caller
// can distinguish "partial input" from "computational failure", and so that
// two unknowns meeting at a strict operator merge into one unknown carrying
// both paths rather than picking one arbitrarily.
//
// Trimmed from the teacher's common/types/unknown.go AttributeTrail/
// AttributeSet machinery (which models qualifier paths as []any to support
// the checker's attribute-pattern matching) down to the plain dotted-path
// strings this core's Activation contract (§6) actually exchanges.
type Unknown struct {
	Paths []string
}

var _ ref.Val = (*Unknown)(nil)

// NewUnknown builds an Unknown for a single path.
func NewUnknown(path string) *Unknown {
	return &Unknown{Paths: []string{path}}
}

// MergeUnknowns combines two unknowns' path sets, de-duplicated and sorted
// so that merge order never affects the result (needed because `&&`/`||`
// may merge unknowns arriving from either operand, in either order).
func MergeUnknowns(a, b *Unknown) *Unknown {
	seen := make(map[string]bool, len(a.Paths)+len(b.Paths))
	merged := make([]string, 0, len(a.Paths)+len(b.Paths))
	for _, p := range append(append([]string{}, a.Paths...), b.Paths...) {
		if !seen[p] {
			seen[p] = true
			merged = append(merged, p)
		}
	}
	sort.Strings(merged)
	return &Unknown{Paths: merged}
}

func (u *Unknown) Type() ref.Type     { return UnknownType }
func (u *Unknown) Value() interface{} { return u }
func (u *Unknown) String() string {
	return "unknown(" + strings.Join(u.Paths, ", ") + ")"
}

// Equal: unknowns never compare equal to anything, including each other —
// same rationale as Err.Equal.
func (u *Unknown) Equal(other ref.Val) ref.Val { return u }
