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
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/celrt/cel-core/common/types/ref"
)

func TestMergeUnknownsDedupesAndSorts(t *testing.T) {
	a := NewUnknown("b.c")
	b := &Unknown{Paths: []string{"a.c", "b.c"}}
	merged := MergeUnknowns(a, b)
	want := []string{"a.c", "b.c"}
	if diff := cmp.Diff(want, merged.Paths); diff != "" {
		t.Errorf("MergeUnknowns paths mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeUnknownsOrderIndependent(t *testing.T) {
	a := NewUnknown("x")
	b := NewUnknown("y")
	m1 := MergeUnknowns(a, b)
	m2 := MergeUnknowns(b, a)
	if diff := cmp.Diff(m1.Paths, m2.Paths); diff != "" {
		t.Errorf("merge order changed result (-m1 +m2):\n%s", diff)
	}
}

func TestUnknownEqualNeverTrue(t *testing.T) {
	u := NewUnknown("a")
	if u.Equal(u) != ref.Val(u) {
		t.Error("Unknown.Equal must return itself")
	}
}
