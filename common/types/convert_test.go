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

import "testing"

func TestIntConvertToType(t *testing.T) {
	i := Int(42)
	if got := i.ConvertToType(UintType); got != Uint(42) {
		t.Errorf("int->uint = %v, want 42", got)
	}
	if got := i.ConvertToType(DoubleType); got != Double(42) {
		t.Errorf("int->double = %v, want 42", got)
	}
	if got := i.ConvertToType(StringType); got != String("42") {
		t.Errorf("int->string = %v, want \"42\"", got)
	}
	if got := Int(-1).ConvertToType(UintType); !IsError(got) {
		t.Errorf("negative int->uint should error, got %v", got)
	}
}

func TestStringConvertToType(t *testing.T) {
	s := String("123")
	if got := s.ConvertToType(IntType); got != Int(123) {
		t.Errorf("string->int = %v, want 123", got)
	}
	if got := String("not a number").ConvertToType(IntType); !IsError(got) {
		t.Errorf("invalid string->int should error, got %v", got)
	}
	if got := s.ConvertToType(BytesType); string(got.(Bytes)) != "123" {
		t.Errorf("string->bytes = %v, want 123", got)
	}
}

func TestBytesConvertToType(t *testing.T) {
	b := Bytes("hello")
	if got := b.ConvertToType(StringType); got != String("hello") {
		t.Errorf("bytes->string = %v, want hello", got)
	}
	if got := b.ConvertToType(IntType); !IsError(got) {
		t.Errorf("bytes->int should error, got %v", got)
	}
}

func TestDoubleConvertToType(t *testing.T) {
	d := Double(3.9)
	if got := d.ConvertToType(IntType); got != Int(3) {
		t.Errorf("double->int should truncate toward zero, got %v", got)
	}
	if got := Double(-1.5).ConvertToType(UintType); !IsError(got) {
		t.Errorf("negative double->uint should error, got %v", got)
	}
}
