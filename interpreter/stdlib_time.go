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
	"time"

	"github.com/celrt/cel-core/common/types"
	"github.com/celrt/cel-core/common/types/ref"
)

// registerTime registers the `timestamp(string)`/`duration(string)`
// conversions and the getX receiver functions of §6, grounded on the
// teacher's TimeGetter/TSGet* visitor split in common/types/timestamp.go:
// the registry supplies the zero-or-one-arg overload resolution, the type
// itself supplies the field-extraction visitor.
func registerTime(reg *Registry) {
	must(reg.Register(Overload{
		Name: "timestamp_string", Function: "timestamp", ArgTypes: []ref.Kind{types.StringType.Kind()},
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
		s, ok := args[0].(types.String)
		if !ok {
			return types.NoSuchOverload("timestamp", args[0], args[0]), nil
		}
		return types.ParseTimestamp(string(s)), nil
	}))
	must(reg.Register(Overload{
		Name: "duration_string", Function: "duration", ArgTypes: []ref.Kind{types.StringType.Kind()},
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
		s, ok := args[0].(types.String)
		if !ok {
			return types.NoSuchOverload("duration", args[0], args[0]), nil
		}
		return types.ParseDuration(string(s)), nil
	}))

	registerTimestampGetter(reg, "getFullYear", types.TSGetFullYear)
	registerTimestampGetter(reg, "getMonth", types.TSGetMonth)
	registerTimestampGetter(reg, "getDayOfYear", types.TSGetDayOfYear)
	registerTimestampGetter(reg, "getDate", types.TSGetDate)
	registerTimestampGetter(reg, "getDayOfMonth", types.TSGetDayOfMonth)
	registerTimestampGetter(reg, "getDayOfWeek", types.TSGetDayOfWeek)
	registerTimestampGetter(reg, "getHours", types.TSGetHours)
	registerTimestampGetter(reg, "getMinutes", types.TSGetMinutes)
	registerTimestampGetter(reg, "getSeconds", types.TSGetSeconds)
	registerTimestampGetter(reg, "getMilliseconds", types.TSGetMilliseconds)

	registerDurationGetter(reg, "getHours", func(d types.Duration) ref.Val { return d.GetHours() })
	registerDurationGetter(reg, "getMinutes", func(d types.Duration) ref.Val { return d.GetMinutes() })
	registerDurationGetter(reg, "getSeconds", func(d types.Duration) ref.Val { return d.GetSeconds() })
	registerDurationGetter(reg, "getMilliseconds", func(d types.Duration) ref.Val { return d.GetMilliseconds() })
}

// registerTimestampGetter registers both the zero-arg (`ts.getX()`, UTC) and
// one-arg (`ts.getX(tz)`) overloads for one timestamp field accessor.
func registerTimestampGetter(reg *Registry, name string, visitor func(time.Time) ref.Val) {
	impl := func(args []ref.Val, arena *Arena) (ref.Val, error) {
		t, ok := args[0].(types.Timestamp)
		if !ok {
			return types.NoSuchOverload(name, args[0], args[0]), nil
		}
		return t.TimeGetter(visitor, args[1:]), nil
	}
	must(reg.Register(Overload{
		Name: name + "_timestamp", Function: name, ReceiverStyle: true,
		ArgTypes: []ref.Kind{types.TimestampType.Kind()},
	}, impl))
	must(reg.Register(Overload{
		Name: name + "_timestamp_tz", Function: name, ReceiverStyle: true,
		ArgTypes: []ref.Kind{types.TimestampType.Kind(), types.StringType.Kind()},
	}, impl))
}

// registerDurationGetter registers the no-timezone `dur.getX()` overload for
// one duration field accessor.
func registerDurationGetter(reg *Registry, name string, get func(types.Duration) ref.Val) {
	must(reg.Register(Overload{
		Name: name + "_duration", Function: name, ReceiverStyle: true,
		ArgTypes: []ref.Kind{types.DurationType.Kind()},
	}, func(args []ref.Val, arena *Arena) (ref.Val, error) {
		d, ok := args[0].(types.Duration)
		if !ok {
			return types.NoSuchOverload(name, args[0], args[0]), nil
		}
		return get(d), nil
	}))
}
