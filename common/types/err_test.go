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

	"github.com/celrt/cel-core/common/types/ref"
)

func TestNoSuchOverloadErr(t *testing.T) {
	err := NoSuchOverloadErr()
	if err.Kind != ErrNoMatchingOverload {
		t.Errorf("Kind = %v, want ErrNoMatchingOverload", err.Kind)
	}
	if err.Message != "no_matching_overload" {
		t.Errorf("Message = %q, want %q", err.Message, "no_matching_overload")
	}
}

func TestErrEqualNeverTrue(t *testing.T) {
	a := NewErrKind(ErrInvalidArgument, "boom")
	b := NewErrKind(ErrInvalidArgument, "boom")
	if got := a.Equal(b); got != ref.Val(a) {
		t.Errorf("Err.Equal must return itself regardless of argument, got %v", got)
	}
}

func TestErrorKindString(t *testing.T) {
	cases := map[ErrorKind]string{
		ErrInvalidArgument:    "invalid_argument",
		ErrNoMatchingOverload: "no_matching_overload",
		ErrNoSuchKey:          "no_such_key",
		ErrNoSuchField:        "no_such_field",
		ErrInternal:           "internal",
		ErrUnknown:            "unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestIsErrorIsUnknown(t *testing.T) {
	if !IsError(NewErr("x")) {
		t.Error("IsError(Err) = false, want true")
	}
	if IsError(NewUnknown("a.b")) {
		t.Error("IsError(Unknown) = true, want false")
	}
	if !IsUnknown(NewUnknown("a.b")) {
		t.Error("IsUnknown(Unknown) = false, want true")
	}
	if !IsErrorOrUnknown(NewErr("x")) || !IsErrorOrUnknown(NewUnknown("a")) {
		t.Error("IsErrorOrUnknown should hold for both variants")
	}
	if IsErrorOrUnknown(Int(1)) {
		t.Error("IsErrorOrUnknown(Int) = true, want false")
	}
}
