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

// Package rowfilter implements the row-filter algebra core of a relational
// query engine: an immutable, canonicalizable expression tree over boolean
// combinations of column predicates.
//
// A RowFilter is either a TermFilter (a leaf predicate over one or two
// columns, or a column against a constant or bind argument) or a GroupFilter
// (an n-ary And/Or of sub-filters). Filters are value-like, structurally
// hashable, and shared freely between trees; the only mutable state is a
// per-node set of memoization slots used to cache expensive canonical forms
// (Reduce, Sort, DNF, CNF).
package rowfilter
