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

import (
	"fmt"

	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// FromProto converts a parsed/checked exprpb.Expr — the wire AST the
// teacher's real parser and the wider CEL ecosystem produce — into this
// core's own lightweight Expression tree, so a caller holding a proto AST
// (from cel-go's parser, from a serialized CheckedExpr, ...) can still plan
// it with this core's StepBuilder. Field names/shape are grounded 1:1 on
// google.golang.org/genproto/googleapis/api/expr/v1alpha1's Expr oneof; only
// the id and the eight node shapes spec.md §4.4 names are carried over,
// since this core's Expression has no slot for source positions or macro
// call tracking.
func FromProto(e *exprpb.Expr) (Expression, error) {
	if e == nil {
		return nil, fmt.Errorf("nil expression")
	}
	switch kind := e.GetExprKind().(type) {
	case *exprpb.Expr_ConstExpr:
		c, err := constFromProto(kind.ConstExpr)
		if err != nil {
			return nil, err
		}
		return NewConst(e.GetId(), c), nil
	case *exprpb.Expr_IdentExpr:
		return NewIdent(e.GetId(), kind.IdentExpr.GetName()), nil
	case *exprpb.Expr_SelectExpr:
		operand, err := FromProto(kind.SelectExpr.GetOperand())
		if err != nil {
			return nil, err
		}
		return NewSelect(e.GetId(), operand, kind.SelectExpr.GetField(), kind.SelectExpr.GetTestOnly()), nil
	case *exprpb.Expr_CallExpr:
		return callFromProto(e.GetId(), kind.CallExpr)
	case *exprpb.Expr_ListExpr:
		elems := make([]Expression, len(kind.ListExpr.GetElements()))
		for i, el := range kind.ListExpr.GetElements() {
			ce, err := FromProto(el)
			if err != nil {
				return nil, err
			}
			elems[i] = ce
		}
		return NewCreateList(e.GetId(), elems...), nil
	case *exprpb.Expr_StructExpr:
		return structFromProto(e.GetId(), kind.StructExpr)
	case *exprpb.Expr_ComprehensionExpr:
		return comprehensionFromProto(e.GetId(), kind.ComprehensionExpr)
	default:
		return nil, fmt.Errorf("unsupported proto expr kind %T at id %d", kind, e.GetId())
	}
}

func constFromProto(c *exprpb.Constant) (Constant, error) {
	switch k := c.GetConstantKind().(type) {
	case *exprpb.Constant_NullValue:
		return NullConstant{}, nil
	case *exprpb.Constant_BoolValue:
		return BoolConstant(k.BoolValue), nil
	case *exprpb.Constant_Int64Value:
		return Int64Constant(k.Int64Value), nil
	case *exprpb.Constant_Uint64Value:
		return Uint64Constant(k.Uint64Value), nil
	case *exprpb.Constant_DoubleValue:
		return DoubleConstant(k.DoubleValue), nil
	case *exprpb.Constant_StringValue:
		return StringConstant(k.StringValue), nil
	case *exprpb.Constant_BytesValue:
		return BytesConstant(k.BytesValue), nil
	default:
		return nil, fmt.Errorf("unsupported proto constant kind %T", k)
	}
}

func callFromProto(id int64, c *exprpb.Expr_Call) (Expression, error) {
	args := make([]Expression, len(c.GetArgs()))
	for i, a := range c.GetArgs() {
		ae, err := FromProto(a)
		if err != nil {
			return nil, err
		}
		args[i] = ae
	}
	if c.GetTarget() == nil {
		return NewCall(id, c.GetFunction(), args...), nil
	}
	target, err := FromProto(c.GetTarget())
	if err != nil {
		return nil, err
	}
	return NewMemberCall(id, c.GetFunction(), target, args...), nil
}

// structFromProto splits on MessageName the same way the teacher's parser
// does: empty means `{k: v}` map construction, non-empty means a typed
// `pkg.Type{field: value}` message literal, each entry's key kind (a map
// expression key vs. a plain field name) tracking which shape applies.
func structFromProto(id int64, s *exprpb.Expr_CreateStruct) (Expression, error) {
	if s.GetMessageName() == "" {
		entries := make([]MapEntry, len(s.GetEntries()))
		for i, ent := range s.GetEntries() {
			keyExpr, ok := ent.GetKeyKind().(*exprpb.Expr_CreateStruct_Entry_MapKey)
			if !ok {
				return nil, fmt.Errorf("map entry %d at id %d missing a map key expression", i, id)
			}
			k, err := FromProto(keyExpr.MapKey)
			if err != nil {
				return nil, err
			}
			v, err := FromProto(ent.GetValue())
			if err != nil {
				return nil, err
			}
			entries[i] = MapEntry{Key: k, Value: v}
		}
		return NewCreateStruct(id, entries...), nil
	}
	fields := make([]FieldEntry, len(s.GetEntries()))
	for i, ent := range s.GetEntries() {
		name, ok := ent.GetKeyKind().(*exprpb.Expr_CreateStruct_Entry_FieldKey)
		if !ok {
			return nil, fmt.Errorf("message field %d at id %d missing a field name", i, id)
		}
		v, err := FromProto(ent.GetValue())
		if err != nil {
			return nil, err
		}
		fields[i] = FieldEntry{Name: name.FieldKey, Initializer: v}
	}
	return NewCreateMessage(id, s.GetMessageName(), fields...), nil
}

func comprehensionFromProto(id int64, c *exprpb.Expr_Comprehension) (Expression, error) {
	iterRange, err := FromProto(c.GetIterRange())
	if err != nil {
		return nil, err
	}
	accuInit, err := FromProto(c.GetAccuInit())
	if err != nil {
		return nil, err
	}
	loopCond, err := FromProto(c.GetLoopCondition())
	if err != nil {
		return nil, err
	}
	loopStep, err := FromProto(c.GetLoopStep())
	if err != nil {
		return nil, err
	}
	result, err := FromProto(c.GetResult())
	if err != nil {
		return nil, err
	}
	return NewComprehension(id, c.GetIterVar(), iterRange, c.GetAccuVar(), accuInit, loopCond, loopStep, result), nil
}
