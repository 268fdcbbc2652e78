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

import (
	"strconv"
	"strings"
	"time"

	"github.com/celrt/cel-core/common/types/ref"
)

// Timestamp is the timestamp variant: "seconds since epoch + nanos" per
// §3, represented with Go's time.Time (UTC-normalized at construction).
type Timestamp struct {
	time.Time
}

var _ ref.Val = Timestamp{}

func (t Timestamp) Type() ref.Type     { return TimestampType }
func (t Timestamp) Value() interface{} { return t.Time }
func (t Timestamp) String() string     { return t.Time.Format(time.RFC3339Nano) }

func (t Timestamp) Equal(other ref.Val) ref.Val {
	o, ok := other.(Timestamp)
	if !ok {
		return NoSuchOverload("_==_", t, other)
	}
	return Bool(t.Time.Equal(o.Time))
}

func (t Timestamp) Compare(other ref.Val) ref.Val {
	o, ok := other.(Timestamp)
	if !ok {
		return NoSuchOverload("_<_", t, other)
	}
	switch {
	case t.Time.Before(o.Time):
		return IntNegOne
	case t.Time.After(o.Time):
		return IntOne
	default:
		return IntZero
	}
}

// Add implements `timestamp + duration`.
func (t Timestamp) Add(other ref.Val) ref.Val {
	d, ok := other.(Duration)
	if !ok {
		return NoSuchOverload("_+_", t, other)
	}
	return Timestamp{t.Time.Add(d.Duration)}
}

// Subtract implements `timestamp - duration` and `timestamp - timestamp`.
func (t Timestamp) Subtract(other ref.Val) ref.Val {
	switch o := other.(type) {
	case Duration:
		return Timestamp{t.Time.Add(-o.Duration)}
	case Timestamp:
		return Duration{t.Time.Sub(o.Time)}
	}
	return NoSuchOverload("_-_", t, other)
}

// ParseTimestamp implements the `timestamp(string)` conversion of §6.
func ParseTimestamp(s string) ref.Val {
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return NewErrKind(ErrInvalidArgument, "invalid timestamp %q: %v", s, err)
	}
	return Timestamp{ts.UTC()}
}

// resolveTZ resolves a CEL timezone argument (§6: an IANA name or a
// "+HH:MM"/"-HH:MM" numeric offset) to a *time.Location, grounded on the
// teacher's timeZone helper in common/types/timestamp.go but with its
// working-directory/zoneinfo-file fallback removed — that codepath never
// succeeds portably and isn't part of this core's contract.
func resolveTZ(tz String) (*time.Location, *Err) {
	val := string(tz)
	if idx := strings.Index(val, ":"); idx == -1 {
		loc, err := time.LoadLocation(val)
		if err != nil {
			return nil, NewErrKind(ErrInvalidArgument, "unknown time zone %q", val)
		}
		return loc, nil
	} else {
		neg := strings.HasPrefix(val, "-")
		start := 0
		if neg || strings.HasPrefix(val, "+") {
			start = 1
		}
		hr, err1 := strconv.Atoi(val[start:idx])
		min, err2 := strconv.Atoi(val[idx+1:])
		if err1 != nil || err2 != nil {
			return nil, NewErrKind(ErrInvalidArgument, "unknown time zone %q", val)
		}
		offsetMinutes := hr*60 + min
		if neg {
			offsetMinutes = -offsetMinutes
		}
		return time.FixedZone("", offsetMinutes*60), nil
	}
}

// TimeGetter implements the zero/one-arg `getX` receiver overloads of §6 for
// timestamps. visitor extracts the requested field from a time.Time already
// relocated to the requested (or UTC) zone.
func (t Timestamp) TimeGetter(visitor func(time.Time) ref.Val, args []ref.Val) ref.Val {
	loc := time.UTC
	if len(args) == 1 {
		tzStr, ok := args[0].(String)
		if !ok {
			return NewErrKind(ErrInvalidArgument, "timezone argument must be a string")
		}
		l, errv := resolveTZ(tzStr)
		if errv != nil {
			return errv
		}
		loc = l
	}
	return visitor(t.Time.In(loc))
}

// The visitor functions below implement the field extraction for each
// `getX` overload; month and day-of-month are zero-based and day-of-week is
// zero-based with Sunday=0, per §6.
func TSGetFullYear(t time.Time) ref.Val    { return Int(t.Year()) }
func TSGetMonth(t time.Time) ref.Val       { return Int(int(t.Month()) - 1) }
func TSGetDayOfYear(t time.Time) ref.Val   { return Int(t.YearDay() - 1) }
func TSGetDate(t time.Time) ref.Val        { return Int(t.Day()) }
func TSGetDayOfMonth(t time.Time) ref.Val  { return Int(t.Day() - 1) }
func TSGetDayOfWeek(t time.Time) ref.Val   { return Int(int(t.Weekday())) }
func TSGetHours(t time.Time) ref.Val       { return Int(t.Hour()) }
func TSGetMinutes(t time.Time) ref.Val     { return Int(t.Minute()) }
func TSGetSeconds(t time.Time) ref.Val     { return Int(t.Second()) }
func TSGetMilliseconds(t time.Time) ref.Val {
	return Int(t.Nanosecond() / 1e6)
}
