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
	"regexp"

	"github.com/celrt/cel-core/common/types"
	"github.com/celrt/cel-core/common/types/ref"
)

// registerStrings registers the string member functions (`contains`,
// `startsWith`, `endsWith`, `matches`) of §6. The int/uint/double/string/bytes
// conversion builtins are registered by registerConversions.
func registerStrings(reg *Registry) {
	registerStringPredicate(reg, "contains", func(s, sub types.String) types.Bool { return s.Contains(sub) })
	registerStringPredicate(reg, "startsWith", func(s, pre types.String) types.Bool { return s.StartsWith(pre) })
	registerStringPredicate(reg, "endsWith", func(s, suf types.String) types.Bool { return s.EndsWith(suf) })

	matches := func(args []ref.Val, arena *Arena) (ref.Val, error) {
		s, ok := args[0].(types.String)
		if !ok {
			return types.NoSuchOverload("matches", args[0], args[1]), nil
		}
		pattern, ok := args[1].(types.String)
		if !ok {
			return types.NoSuchOverload("matches", args[0], args[1]), nil
		}
		re, err := regexp.Compile(string(pattern))
		if err != nil {
			return types.NewErrKind(types.ErrInvalidArgument, "invalid regex %q: %v", string(pattern), err), nil
		}
		return types.Bool(re.MatchString(string(s))), nil
	}
	must(reg.Register(Overload{
		Name: "matches_string", Function: "matches", ReceiverStyle: true,
		ArgTypes: []ref.Kind{types.StringType.Kind(), types.StringType.Kind()},
	}, matches))
	must(reg.Register(Overload{
		Name: "matches_global", Function: "matches",
		ArgTypes: []ref.Kind{types.StringType.Kind(), types.StringType.Kind()},
	}, matches))
}

func registerStringPredicate(reg *Registry, function string, fn func(s, arg types.String) types.Bool) {
	must(reg.Register(Overload{
		Name: function + "_string", Function: function, ReceiverStyle: true,
		ArgTypes: []ref.Kind{types.StringType.Kind(), types.StringType.Kind()},
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
		s, ok := args[0].(types.String)
		if !ok {
			return types.NoSuchOverload(function, args[0], args[1]), nil
		}
		sub, ok := args[1].(types.String)
		if !ok {
			return types.NoSuchOverload(function, args[0], args[1]), nil
		}
		return fn(s, sub), nil
	}))
}

// registerConversions registers the `int`/`uint`/`double`/`string`/`bytes`
// conversion functions, each a single wildcard overload dispatching through
// ref.Converter — the same capability-interface pattern as the arithmetic
// operators in stdlib.go, mirroring the teacher's per-variant
// ConvertToType(ref.Type) switch (common/types/int.go et al.) but invoked
// generically instead of from checker-driven native-Go conversion code.
func registerConversions(reg *Registry) {
	register := func(name string, target ref.Type) {
		must(reg.Register(Overload{
			Name: name, Function: name, ArgTypes: []ref.Kind{AnyType},
		}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
			c, ok := args[0].(ref.Converter)
			if !ok {
				return types.NoSuchOverload(name, args[0], args[0]), nil
			}
			return c.ConvertToType(target), nil
		}))
	}
	register("int", types.IntType)
	register("uint", types.UintType)
	register("double", types.DoubleType)
	register("string", types.StringType)
	register("bytes", types.BytesType)
}
