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
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/celrt/cel-core/common/types/ref"
)

// String is the string variant. Per §3 a string may be borrowed (pointing
// into caller/AST-owned storage) or owned (built in the per-evaluation
// arena, e.g. the result of `+`); both are represented the same way here —
// Go's string header already separates "backing storage" from "value", so
// the arena's job is simply to keep a reference alive, not to copy bytes.
type String string

var _ ref.Val = String("")

func (s String) Type() ref.Type     { return StringType }
func (s String) Value() interface{} { return string(s) }
func (s String) String() string     { return string(s) }

func (s String) Equal(other ref.Val) ref.Val {
	o, ok := other.(String)
	if !ok {
		return NoSuchOverload("_==_", s, other)
	}
	return Bool(s == o)
}

func (s String) Compare(other ref.Val) ref.Val {
	o, ok := other.(String)
	if !ok {
		return NoSuchOverload("_<_", s, other)
	}
	switch {
	case s < o:
		return IntNegOne
	case s > o:
		return IntOne
	default:
		return IntZero
	}
}

// Add implements the `+` concatenation overload for strings.
func (s String) Add(other ref.Val) ref.Val {
	o, ok := other.(String)
	if !ok {
		return NoSuchOverload("_+_", s, other)
	}
	return s + o
}

// Size implements the `size` overload, counting runes per CEL semantics
// (CEL strings are sequences of Unicode code points, not bytes).
func (s String) Size() ref.Val {
	return Int(utf8.RuneCountInString(string(s)))
}

// Contains, StartsWith and EndsWith normalize both operands to NFC before
// matching: CEL strings are Unicode code-point sequences (Size above counts
// runes, not bytes), so two strings that render identically but use
// different combining-character decompositions must still match here rather
// than failing on a byte-for-byte difference the caller never typed.
func (s String) Contains(sub String) Bool {
	return Bool(strings.Contains(norm.NFC.String(string(s)), norm.NFC.String(string(sub))))
}

func (s String) StartsWith(pre String) Bool {
	return Bool(strings.HasPrefix(norm.NFC.String(string(s)), norm.NFC.String(string(pre))))
}

func (s String) EndsWith(suf String) Bool {
	return Bool(strings.HasSuffix(norm.NFC.String(string(s)), norm.NFC.String(string(suf))))
}

// ConvertToType implements the int(...)/uint(...)/double(...)/string(...)/
// bytes(...) conversion builtins of §6, parsing the string's contents for
// the numeric targets.
func (s String) ConvertToType(typeVal ref.Type) ref.Val {
	switch typeVal {
	case StringType:
		return s
	case BytesType:
		return Bytes(s)
	case IntType:
		i, err := strconv.ParseInt(string(s), 10, 64)
		if err != nil {
			return NewErrKind(ErrInvalidArgument, "invalid int literal %q", string(s))
		}
		return Int(i)
	case UintType:
		u, err := strconv.ParseUint(string(s), 10, 64)
		if err != nil {
			return NewErrKind(ErrInvalidArgument, "invalid uint literal %q", string(s))
		}
		return Uint(u)
	case DoubleType:
		f, err := strconv.ParseFloat(string(s), 64)
		if err != nil {
			return NewErrKind(ErrInvalidArgument, "invalid double literal %q", string(s))
		}
		return Double(f)
	}
	return NewErr("type conversion error from %q to %q", StringType.TypeName(), typeVal.TypeName())
}
