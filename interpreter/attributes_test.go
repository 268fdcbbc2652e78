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

import "testing"

func TestAttributeMaskExactMatch(t *testing.T) {
	m := NewAttributeMask("message.field")
	if !m.Matches("message.field") {
		t.Error("exact path should match")
	}
}

func TestAttributeMaskPrefixMatch(t *testing.T) {
	m := NewAttributeMask("message.field")
	if !m.Matches("message.field.nested") {
		t.Error("a path under an unknown prefix should match")
	}
	if m.Matches("message.fieldother") {
		t.Error("a sibling sharing a string prefix without a '.' boundary must not match")
	}
	if m.Matches("message") {
		t.Error("a shorter path than the declared mask entry should not match")
	}
}

func TestAttributeMaskNormalizesCasing(t *testing.T) {
	m := NewAttributeMask("myMessage.myField")
	if !m.Matches("my_message.my_field") {
		t.Error("mask should normalize camelCase and snake_case to the same path")
	}
}
