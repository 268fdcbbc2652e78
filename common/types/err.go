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
	"fmt"

	"github.com/celrt/cel-core/common/types/ref"
)

// ErrorKind is the fixed taxonomy of §7: every value-level error produced by
// a built-in or by selection/index failure carries exactly one of these.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrInvalidArgument
	ErrNoMatchingOverload
	ErrNoSuchKey
	ErrNoSuchField
	ErrInternal
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidArgument:
		return "invalid_argument"
	case ErrNoMatchingOverload:
		return "no_matching_overload"
	case ErrNoSuchKey:
		return "no_such_key"
	case ErrNoSuchField:
		return "no_such_field"
	case ErrInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Err is the error variant of the value algebra. It rides the stack like any
// other Val and is absorbed or propagated by the short-circuit rules of
// §4.4.1/§7 rather than being raised as a Go error.
type Err struct {
	Kind    ErrorKind
	Message string
}

var _ ref.Val = (*Err)(nil)

// NewErr builds an Err of kind ErrUnknown (the default for ad-hoc internal
// failures that don't fit one of the named kinds below).
func NewErr(format string, args ...interface{}) *Err {
	return &Err{Kind: ErrUnknown, Message: fmt.Sprintf(format, args...)}
}

// NewErrKind builds an Err of an explicit kind.
func NewErrKind(kind ErrorKind, format string, args ...interface{}) *Err {
	return &Err{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NoSuchOverloadErr reports a registry lookup that matched no overload, with
// the message fixed to the kind name per scenario 6 of spec.md §8.
func NoSuchOverloadErr() *Err {
	return &Err{Kind: ErrNoMatchingOverload, Message: ErrNoMatchingOverload.String()}
}

func (e *Err) Type() ref.Type     { return ErrType }
func (e *Err) Value() interface{} { return e }
func (e *Err) String() string     { return e.Message }
func (e *Err) Error() string      { return e.Message }

// Equal errors are never equal to anything, including each other: CEL never
// collapses two errors into a boolean, it lets the first one propagate.
func (e *Err) Equal(other ref.Val) ref.Val { return e }
