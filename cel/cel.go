// Copyright 2019 Google LLC
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

// Package cel is a thin facade over the interpreter package: Compile plans
// an already-parsed ast.Expression into a runnable Program, and Program.Eval
// runs it and optionally hands back the per-node trace an EvalDetails
// collects. Grounded on the teacher's cel/cel.go and cel/program.go, but
// reduced to what this core actually owns — parsing source text into an
// ast.Expression and type-checking it are documented external collaborators
// (§1), not something this facade does itself.
package cel

import (
	"github.com/celrt/cel-core/ast"
	"github.com/celrt/cel-core/common/types/ref"
	"github.com/celrt/cel-core/interpreter"
)

// Env binds a Registry and a set of BuilderOptions used to Compile every
// expression it plans, mirroring the teacher's cel.Env carrying its
// declarations and dispatcher across many Compile calls.
type Env struct {
	registry *interpreter.Registry
	opts     []interpreter.BuilderOption
}

// EnvOption configures a new Env.
type EnvOption func(*Env)

// Shortcircuiting forwards to interpreter.Shortcircuiting for every Program
// this Env compiles.
func Shortcircuiting(enabled bool) EnvOption {
	return func(e *Env) { e.opts = append(e.opts, interpreter.Shortcircuiting(enabled)) }
}

// EnumValue forwards to interpreter.RegisterEnumValue, registering a
// fully-qualified enum member name (e.g.
// "pkg.TestMessage.TestEnum.TEST_ENUM_1") that identifier resolution falls
// back to when no activation binds that name.
func EnumValue(name string, value int64) EnvOption {
	return func(e *Env) { e.opts = append(e.opts, interpreter.RegisterEnumValue(name, value)) }
}

// CustomRegistry replaces the Env's default standard registry with reg —
// useful for a caller that wants to add extension functions on top of
// interpreter.NewStandardRegistry before freezing it via the first Compile.
func CustomRegistry(reg *interpreter.Registry) EnvOption {
	return func(e *Env) { e.registry = reg }
}

// NewEnv returns an Env preloaded with the §6 standard function library.
func NewEnv(opts ...EnvOption) *Env {
	e := &Env{registry: interpreter.NewStandardRegistry()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compile lowers expr into a runnable Program (§2, §4.4). The Env's
// registry is frozen the first time any Program it produced is planned;
// subsequent Compile calls reuse the same frozen registry.
func (e *Env) Compile(expr ast.Expression) (*Program, error) {
	builder := interpreter.NewStepBuilder(e.registry, e.opts...)
	steps, err := builder.Plan(expr)
	if err != nil {
		return nil, err
	}
	return &Program{prog: interpreter.NewProgram(steps)}, nil
}

// Program is a planned expression, ready to Eval against many activations.
type Program struct {
	prog *interpreter.Program
}

// EvalDetails holds the per-AST-node trace collected during one Eval call,
// when requested via WithTracing — absent otherwise, the same opt-in shape
// as the teacher's cel.EvalDetails wrapping interpreter.EvalState.
type EvalDetails struct {
	values map[int64]ref.Val
}

// Value returns the value the node with the given id produced, and whether
// that node was actually evaluated (§4.6: a short-circuited branch's nodes
// never publish).
func (d *EvalDetails) Value(exprID int64) (ref.Val, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.values[exprID]
	return v, ok
}

// recorder is the TraceListener EvalDetails is built from.
type recorder struct {
	values map[int64]ref.Val
}

func (r *recorder) OnEval(exprID int64, value ref.Val) {
	r.values[exprID] = value
}

// ProgramEvalOption configures one Eval call.
type ProgramEvalOption func(*evalCfg)

type evalCfg struct {
	trace bool
}

// WithTracing requests that Eval return a populated EvalDetails.
func WithTracing() ProgramEvalOption {
	return func(c *evalCfg) { c.trace = true }
}

// Eval runs the program to completion against activation (§4.5). When
// WithTracing is given, the returned EvalDetails carries one entry per
// AST node actually evaluated; otherwise it is nil.
func (p *Program) Eval(activation interpreter.Activation, opts ...ProgramEvalOption) (ref.Val, *EvalDetails, error) {
	cfg := &evalCfg{}
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.trace {
		v, err := p.prog.Eval(activation)
		return v, nil, err
	}
	rec := &recorder{values: make(map[int64]ref.Val)}
	v, err := p.prog.Eval(activation, interpreter.WithTrace(rec))
	return v, &EvalDetails{values: rec.values}, err
}
