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

import "fmt"

// BuildError is tier 3 of §4.7: a failure the StepBuilder detects while
// planning an expression, before any evaluation happens (a call whose
// argument count does not fit its shape, an unsupported constant kind). It
// always carries the id of
// the offending AST node so a caller can report it against source.
type BuildError struct {
	ExprID  int64
	Message string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build error at expr %d: %s", e.ExprID, e.Message)
}

func newBuildError(exprID int64, format string, args ...interface{}) *BuildError {
	return &BuildError{ExprID: exprID, Message: fmt.Sprintf(format, args...)}
}
