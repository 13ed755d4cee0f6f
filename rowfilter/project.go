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

// Retain implements §4.4 for a group: each child is projected independently
// against predicate and the results recombined with the group's own kind.
// strict/undecided are threaded straight through to the leaves, which decide
// what happens to a term referencing a rejected column.
func (g *GroupFilter) Retain(predicate ColumnPredicate, strict bool, undecided RowFilter) RowFilter {
	retained := make([]RowFilter, len(g.children))
	for i, c := range g.children {
		retained[i] = c.Retain(predicate, strict, undecided)
	}
	if g.kind == kindAnd {
		return And(retained...)
	}
	return Or(retained...)
}

// Split implements §4.4: partitions g into (retained, residual) such that
// And(retained, residual) is equivalent to g. Conjunction distributes
// cleanly: each child splits independently and the two halves recombine
// with And. Disjunction does not distribute the same way in general — Or(A,
// B) is not equivalent to And(Or(retainedA, retainedB), Or(residualA,
// residualB)) — so an Or only moves to the retained side whole, when every
// child's split routed entirely there (every child's residual is
// TrueFilter); in that case the real retained halves are recombined with Or
// rather than reusing g. Otherwise the whole disjunction stays on the
// residual side, unsplit.
func (g *GroupFilter) Split(check SplitCheck) (retained, residual RowFilter) {
	if g.kind == kindAnd {
		retainedChildren := make([]RowFilter, len(g.children))
		residualChildren := make([]RowFilter, len(g.children))
		for i, c := range g.children {
			r, res := c.Split(check)
			retainedChildren[i] = r
			residualChildren[i] = res
		}
		return And(retainedChildren...), And(residualChildren...)
	}

	retainedChildren := make([]RowFilter, len(g.children))
	for i, c := range g.children {
		r, res := c.Split(check)
		if res != TrueFilter {
			return TrueFilter, g
		}
		retainedChildren[i] = r
	}
	return Or(retainedChildren...), TrueFilter
}
