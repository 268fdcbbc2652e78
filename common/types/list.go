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
	"strings"

	"github.com/celrt/cel-core/common/types/ref"
)

// List is the list variant: an opaque sequence with length and positional
// lookup (§3). Trimmed from the teacher's common/types/list.go reflection-
// backed baseList/concatList/stringList specializations — this core never
// needs to adapt an arbitrary native Go slice, only the lists its own
// CreateList step builds, so a plain []ref.Val suffices.
type List struct {
	elems []ref.Val
}

var _ ref.Val = (*List)(nil)
var _ ref.Indexer = (*List)(nil)
var _ ref.Sizer = (*List)(nil)
var _ ref.Iterable = (*List)(nil)

// NewList builds a List value from already-evaluated elements.
func NewList(elems []ref.Val) *List {
	return &List{elems: elems}
}

func (l *List) Type() ref.Type     { return ListType }
func (l *List) Value() interface{} { return l.elems }

func (l *List) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range l.elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteByte(']')
	return b.String()
}

// Len returns the number of elements.
func (l *List) Len() int { return len(l.elems) }

// At returns the element at a zero-based Go int index, without CEL-level
// bounds/type checking; used by the comprehension NextStep and by callers
// that have already range-checked.
func (l *List) At(i int) ref.Val { return l.elems[i] }

func (l *List) Equal(other ref.Val) ref.Val {
	o, ok := other.(*List)
	if !ok {
		return NoSuchOverload("_==_", l, other)
	}
	if len(l.elems) != len(o.elems) {
		return Bool(false)
	}
	for i, e := range l.elems {
		eq := e.Equal(o.elems[i])
		if IsError(eq) {
			return eq
		}
		if eq != Bool(true) {
			return Bool(false)
		}
	}
	return Bool(true)
}

// Add implements the `+` concatenation overload for lists.
func (l *List) Add(other ref.Val) ref.Val {
	o, ok := other.(*List)
	if !ok {
		return NoSuchOverload("_+_", l, other)
	}
	combined := make([]ref.Val, 0, len(l.elems)+len(o.elems))
	combined = append(combined, l.elems...)
	combined = append(combined, o.elems...)
	return NewList(combined)
}

func (l *List) Size() ref.Val { return Int(len(l.elems)) }

// Get implements the `_[_]` overload: a range-checked, int-indexed lookup.
func (l *List) Get(index ref.Val) ref.Val {
	i, ok := index.(Int)
	if !ok {
		return NewErrKind(ErrNoMatchingOverload, "no_matching_overload: list index must be int")
	}
	if i < 0 || int(i) >= len(l.elems) {
		return NewErrKind(ErrInvalidArgument, "index %d out of range", int64(i))
	}
	return l.elems[i]
}

// Contains implements element membership for `in`/`@in`.
func (l *List) Contains(elem ref.Val) ref.Val {
	for _, e := range l.elems {
		eq := e.Equal(elem)
		if IsError(eq) {
			continue
		}
		if eq == Bool(true) {
			return Bool(true)
		}
	}
	return Bool(false)
}

func (l *List) Iterator() ref.Iterator {
	return &listIterator{list: l}
}

type listIterator struct {
	list *List
	pos  int
}

func (it *listIterator) HasNext() bool { return it.pos < len(it.list.elems) }
func (it *listIterator) Next() ref.Val {
	v := it.list.elems[it.pos]
	it.pos++
	return v
}
