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

import "reflect"

// RowFilter is the root abstract value (§3.1): an immutable, structurally
// hashable, totally ordered boolean expression over columns. Every RowFilter
// is either a *TermFilter or a *GroupFilter; the interface is sealed to this
// package (isRowFilter) so no other package can introduce a third variant.
type RowFilter interface {
	// Not returns the De Morgan negation of this filter.
	Not() RowFilter
	// Equals is field-wise structural equality (§3.2 invariant 4).
	Equals(other RowFilter) bool
	// IsMatch returns +1 if other equals this filter, -1 if other equals
	// this filter's negation, 0 otherwise (§4.1, §4.3).
	IsMatch(other RowFilter) int
	// Hash is the ordinary, polarity-sensitive structural hash.
	Hash() uint64
	// MatchHash is the polarity-insensitive hash used by MatchSet (§4.3).
	MatchHash() uint64
	// Reduce returns the canonical reduced form (§4.2), memoized.
	Reduce() RowFilter
	// Sort returns the canonical sorted form (§4.2), memoized.
	Sort() RowFilter
	// DNF returns the disjunctive normal form, bounded by limit (§4.2),
	// memoized.
	DNF(limit int) RowFilter
	// CNF returns the conjunctive normal form, bounded by limit (§4.2),
	// memoized.
	CNF(limit int) RowFilter
	// IsDNF reports whether this filter is currently in DNF (either
	// because DNF was called and did not hit its limit, or trivially).
	IsDNF() bool
	// IsCNF reports whether this filter is currently in CNF.
	IsCNF() bool
	// Retain projects the filter onto the columns predicate accepts
	// (§4.4).
	Retain(predicate ColumnPredicate, strict bool, undecided RowFilter) RowFilter
	// Split partitions the filter into (retained, residual) such that
	// And(retained, residual) is logically equivalent to the original
	// (§4.4).
	Split(check SplitCheck) (RowFilter, RowFilter)

	// String renders the §6.1 debug form.
	String() string

	// sortKey orders filters for the deterministic total order (§4.2):
	// primary by variant tag (Term < And < Or), secondary by hash.
	sortKey() (tag int, hash uint64)

	isRowFilter()
}

// constantsEqual compares two ColumnToConstantFilter literal values. Most
// constant values are comparable primitives; reflect.DeepEqual also covers
// slices (the argument to a future "in" literal list) correctly.
func constantsEqual(a, b interface{}) bool {
	return reflect.DeepEqual(a, b)
}
