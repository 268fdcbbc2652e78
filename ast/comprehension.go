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

package ast

import "fmt"

// ComprehensionExpr is CEL's generic iteration macro node (§4.4.2), reused
// by the frontend to express `all`, `exists`, `map`, `filter` and folds as
// a single five-subexpression shape plus two bound variable names.
type ComprehensionExpr struct {
	baseExpression

	IterVar       string
	IterRange     Expression
	AccuVar       string
	AccuInit      Expression
	LoopCondition Expression
	LoopStep      Expression
	Result        Expression
}

func NewComprehension(
	id int64,
	iterVar string,
	iterRange Expression,
	accuVar string,
	accuInit Expression,
	loopCondition Expression,
	loopStep Expression,
	result Expression,
) *ComprehensionExpr {
	return &ComprehensionExpr{
		baseExpression: baseExpression{id},
		IterVar:        iterVar,
		IterRange:      iterRange,
		AccuVar:        accuVar,
		AccuInit:       accuInit,
		LoopCondition:  loopCondition,
		LoopStep:       loopStep,
		Result:         result,
	}
}

func (e *ComprehensionExpr) Kind() Kind { return ComprehensionKind }
func (e *ComprehensionExpr) String() string {
	return fmt.Sprintf("__comprehension__(%s, %s, %s, %s, %s, %s, %s)",
		e.IterVar, e.IterRange, e.AccuVar, e.AccuInit, e.LoopCondition, e.LoopStep, e.Result)
}
