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

// Package ast models the already-parsed CEL expression tree the step
// builder consumes (§6): parsing and source-info handling are out of scope
// collaborators, so this package defines only the thin node contract the
// core needs, grounded on the teacher's early simple-tree `ast` package
// (retrieved alongside the modern NavigableExpr-based `common/ast`) rather
// than that newer design — the simple tree is the closer match to spec.md's
// eight documented node kinds.
package ast

// Kind identifies which of the eight documented AST node kinds (§4.4) an
// Expression is.
type Kind int

const (
	ConstKind Kind = iota
	IdentKind
	SelectKind
	CallKind
	CreateListKind
	CreateStructKind
	CreateMessageKind
	ComprehensionKind
)

// Expression is the common interface for every AST node. Id is the only
// piece of identity the core relies on (§6: "a 64-bit id used only as a key
// for trace correlation") — source location lives with the external parser,
// not here.
type Expression interface {
	// ID is the expression's id, unique within one parse tree.
	ID() int64

	// Kind reports which node kind this Expression is.
	Kind() Kind

	// String renders a debug form of the expression and its children.
	String() string
}

// baseExpression is embedded by every concrete node to supply ID().
type baseExpression struct {
	id int64
}

func (e baseExpression) ID() int64 { return e.id }
