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

// mapKey is the hashable Go representation of the CEL key types §6 allows
// (int64, uint64, string, bool); it lets the variant-tagged ref.Val keys the
// step builder produces (Int, Uint, String, Bool) back a plain Go map.
type mapKey struct {
	kind ref.Kind
	val  interface{}
}

func toMapKey(v ref.Val) (mapKey, *Err) {
	switch k := v.(type) {
	case Int:
		return mapKey{ref.KindInt, int64(k)}, nil
	case Uint:
		return mapKey{ref.KindUint, uint64(k)}, nil
	case String:
		return mapKey{ref.KindString, string(k)}, nil
	case Bool:
		return mapKey{ref.KindBool, bool(k)}, nil
	default:
		return mapKey{}, NewErrKind(ErrNoMatchingOverload, "no_matching_overload: unsupported map key type %s", TypeNameOf(v))
	}
}

// Map is the map variant: an opaque association with typed-key lookup and
// size (§3), backed by an insertion-ordered entry list rather than the
// teacher's reflection-backed common/types/map.go — this core only ever
// builds maps from its own CreateMap step, so there is no native-Go value to
// adapt.
type Map struct {
	order []ref.Val // keys, insertion order (iteration order for comprehensions)
	index map[mapKey]ref.Val
}

var _ ref.Val = (*Map)(nil)
var _ ref.Indexer = (*Map)(nil)
var _ ref.Sizer = (*Map)(nil)
var _ ref.Iterable = (*Map)(nil)

// NewMap builds a Map from parallel key/value slices (already evaluated),
// preserving the given order; later duplicate keys overwrite earlier ones
// but keep the earlier key's iteration position, matching common map-
// literal semantics.
func NewMap(keys, values []ref.Val) (*Map, *Err) {
	m := &Map{index: make(map[mapKey]ref.Val, len(keys))}
	for i, k := range keys {
		mk, errv := toMapKey(k)
		if errv != nil {
			return nil, errv
		}
		if _, exists := m.index[mk]; !exists {
			m.order = append(m.order, k)
		}
		m.index[mk] = values[i]
	}
	return m, nil
}

func (m *Map) Type() ref.Type     { return MapType }
func (m *Map) Value() interface{} { return m }

func (m *Map) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range m.order {
		if i > 0 {
			b.WriteString(", ")
		}
		mk, _ := toMapKey(k)
		b.WriteString(k.String())
		b.WriteString(": ")
		b.WriteString(m.index[mk].String())
	}
	b.WriteByte('}')
	return b.String()
}

// Size implements `size`.
func (m *Map) Size() ref.Val { return Int(len(m.order)) }

// Get implements `_[_]`: a missing key yields no_such_key per §6.
func (m *Map) Get(index ref.Val) ref.Val {
	mk, errv := toMapKey(index)
	if errv != nil {
		return errv
	}
	v, found := m.index[mk]
	if !found {
		return NewErrKind(ErrNoSuchKey, "no_such_key: %v", index)
	}
	return v
}

// Find is the non-erroring counterpart of Get, used by `has()`/`in`.
func (m *Map) Find(index ref.Val) (ref.Val, bool) {
	mk, errv := toMapKey(index)
	if errv != nil {
		return nil, false
	}
	v, found := m.index[mk]
	return v, found
}

func (m *Map) Equal(other ref.Val) ref.Val {
	o, ok := other.(*Map)
	if !ok {
		return NoSuchOverload("_==_", m, other)
	}
	if len(m.order) != len(o.order) {
		return Bool(false)
	}
	for _, k := range m.order {
		mk, _ := toMapKey(k)
		ov, found := o.index[mk]
		if !found {
			return Bool(false)
		}
		eq := m.index[mk].Equal(ov)
		if IsError(eq) {
			return eq
		}
		if eq != Bool(true) {
			return Bool(false)
		}
	}
	return Bool(true)
}

// Contains implements key membership for `in`/`@in`.
func (m *Map) Contains(key ref.Val) ref.Val {
	_, found := m.Find(key)
	return Bool(found)
}

// Keys returns the map's keys as a List, in insertion order — the
// ListKeys step (§4.4.2) uses this to let a comprehension range over a map.
func (m *Map) Keys() *List {
	return NewList(append([]ref.Val{}, m.order...))
}

func (m *Map) Iterator() ref.Iterator {
	return &listIterator{list: m.Keys()}
}
