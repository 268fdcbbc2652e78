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

import (
	"fmt"

	"github.com/celrt/cel-core/common/types/ref"
)

// TraceListener receives one publication per non-synthetic step executed
// (§4.6): exprID identifies the originating AST node, value is what it
// produced. Synthetic steps the builder generates for comprehension
// scaffolding never publish. The LoopCondition/LoopStep subexpressions of a
// comprehension publish under their own node ids on every iteration, so such
// an id can be published more than once per evaluation.
type TraceListener interface {
	OnEval(exprID int64, value ref.Val)
}

// evalConfig carries Eval's optional behavior, set via EvalOption
// (functional options, matching the teacher's cel.ProgramOption idiom).
type evalConfig struct {
	trace TraceListener
}

// EvalOption configures one call to Program.Eval.
type EvalOption func(*evalConfig)

// WithTrace attaches a TraceListener to one evaluation.
func WithTrace(t TraceListener) EvalOption {
	return func(c *evalConfig) { c.trace = t }
}

// Program is a planned, immutable Step sequence (§3), safe to Eval
// concurrently from multiple goroutines against independent Frames/
// activations — nothing in a Program is mutated after StepBuilder.Plan
// returns it.
type Program struct {
	steps []Step
}

// NewProgram wraps an already-built Step sequence as a reusable Program.
func NewProgram(steps []Step) *Program {
	return &Program{steps: steps}
}

// Eval runs the program's steps against activation to completion (§4.5/
// §4.6): the interpreter loop advances the program counter one step at a
// time, executing each Step in turn, until it runs off the end of the
// program or a step reports an evaluator-level (tier 2, §4.7) error. On a
// clean finish it asserts the stack grew by exactly one value — anything
// else is an internal error, since every one of this core's lowerings is
// built to leave precisely one net value regardless of which branch of a
// conditional or short-circuit actually ran.
func (p *Program) Eval(activation Activation, opts ...EvalOption) (ref.Val, error) {
	cfg := &evalConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	f := NewFrame(p.steps, activation)
	initialDepth := f.Stack.Len()
	for f.PC < len(f.Steps) {
		step := f.Steps[f.PC]
		if err := step.Execute(f); err != nil {
			return nil, err
		}
		if cfg.trace != nil && !step.Synthetic() && f.Stack.Len() > 0 {
			cfg.trace.OnEval(step.ID(), f.Stack.Peek())
		}
		f.PC++
	}
	if f.Stack.Len() != initialDepth+1 {
		return nil, fmt.Errorf("internal: stack imbalance at end of Eval, want %d values got %d",
			initialDepth+1, f.Stack.Len())
	}
	return f.Stack.Peek(), nil
}
