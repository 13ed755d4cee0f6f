// Copyright 2024 The RowFilter Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rowfilter

import "gopkg.in/yaml.v2"

// Limits bounds the DNF/CNF expansion spec.md §4.2 leaves
// implementation-defined, loadable from a small YAML document rather than
// requiring every call site to pick (or hard-code) a literal bound.
type Limits struct {
	DNF int `yaml:"dnf"`
	CNF int `yaml:"cnf"`
}

// DefaultLimits is a conservative bound suitable for interactive planning:
// generous enough for the vast majority of hand-written predicates, small
// enough that a pathological input fails fast instead of building a
// combinatorially huge tree.
var DefaultLimits = Limits{DNF: 4096, CNF: 4096}

// ParseLimits loads Limits from YAML bytes, falling back to DefaultLimits
// for any field the document omits (a zero value in the parsed document is
// indistinguishable from "not set", so a limit of exactly 0 means "use the
// default" rather than "never expand").
func ParseLimits(data []byte) (Limits, error) {
	l := DefaultLimits
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Limits{}, invariantf("parsing normalizer limits: %v", err)
	}
	if l.DNF == 0 {
		l.DNF = DefaultLimits.DNF
	}
	if l.CNF == 0 {
		l.CNF = DefaultLimits.CNF
	}
	return l, nil
}
