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
	"time"

	"github.com/celrt/cel-core/common/types/ref"
)

// Duration is the duration variant: spec.md §3 describes it as "seconds +
// nanos", which is exactly what a Go time.Duration (a single int64 count of
// nanoseconds) represents.
type Duration struct {
	time.Duration
}

var _ ref.Val = Duration{}

func (d Duration) Type() ref.Type     { return DurationType }
func (d Duration) Value() interface{} { return d.Duration }
func (d Duration) String() string     { return d.Duration.String() }

func (d Duration) Equal(other ref.Val) ref.Val {
	o, ok := other.(Duration)
	if !ok {
		return NoSuchOverload("_==_", d, other)
	}
	return Bool(d.Duration == o.Duration)
}

func (d Duration) Compare(other ref.Val) ref.Val {
	o, ok := other.(Duration)
	if !ok {
		return NoSuchOverload("_<_", d, other)
	}
	switch {
	case d.Duration < o.Duration:
		return IntNegOne
	case d.Duration > o.Duration:
		return IntOne
	default:
		return IntZero
	}
}

// Add implements `duration + duration` and `duration + timestamp`.
func (d Duration) Add(other ref.Val) ref.Val {
	switch o := other.(type) {
	case Duration:
		sum, ok := addInt64Checked(int64(d.Duration), int64(o.Duration))
		if !ok {
			return NewErrKind(ErrInvalidArgument, "duration overflow")
		}
		return Duration{time.Duration(sum)}
	case Timestamp:
		return Timestamp{o.Time.Add(d.Duration)}
	}
	return NoSuchOverload("_+_", d, other)
}

// Subtract implements `duration - duration`.
func (d Duration) Subtract(other ref.Val) ref.Val {
	o, ok := other.(Duration)
	if !ok {
		return NoSuchOverload("_-_", d, other)
	}
	diff, ok := subtractInt64Checked(int64(d.Duration), int64(o.Duration))
	if !ok {
		return NewErrKind(ErrInvalidArgument, "duration overflow")
	}
	return Duration{time.Duration(diff)}
}

func (d Duration) Negate() ref.Val { return Duration{-d.Duration} }

// GetHours, GetMinutes, GetSeconds and GetMilliseconds implement the
// getHours/getMinutes/getSeconds/getMilliseconds receiver functions of §6
// for the duration variant (no timezone argument applies to a duration).
func (d Duration) GetHours() ref.Val        { return Int(d.Duration.Hours()) }
func (d Duration) GetMinutes() ref.Val      { return Int(d.Duration.Minutes()) }
func (d Duration) GetSeconds() ref.Val      { return Int(d.Duration.Seconds()) }
func (d Duration) GetMilliseconds() ref.Val { return Int(d.Duration.Milliseconds()) }

// ParseDuration implements the `duration(string)` conversion of §6.
func ParseDuration(s string) ref.Val {
	dur, err := time.ParseDuration(s)
	if err != nil {
		return NewErrKind(ErrInvalidArgument, "invalid duration %q: %v", s, err)
	}
	return Duration{dur}
}
