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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func keepOnly(cols ...string) ColumnPredicate {
	set := map[string]bool{}
	for _, c := range cols {
		set[c] = true
	}
	return func(column string) bool { return set[column] }
}

func TestGroupRetainDropsRejectedColumnsWithUndecided(t *testing.T) {
	a := NewColumnToConstant("keep", OpEQ, int64(1))
	b := NewColumnToConstant("drop", OpEQ, int64(2))
	f := And(a, b)

	retained := f.Retain(keepOnly("keep"), false, TrueFilter)
	assert.True(t, retained.Equals(a))
}

// keepOnlyCheck returns a SplitCheck that retains (returns the term
// unchanged for) columns in cols and pushes every other term to the
// residual half (returns nil), per TermFilter.Split's contract (term.go).
func keepOnlyCheck(cols ...string) SplitCheck {
	set := map[string]bool{}
	for _, c := range cols {
		set[c] = true
	}
	return func(term *TermFilter) RowFilter {
		if set[term.Column()] {
			return term
		}
		return nil
	}
}

func TestGroupSplitAndDistributesOverChildren(t *testing.T) {
	a := NewColumnToConstant("keep", OpEQ, int64(1))
	b := NewColumnToConstant("drop", OpEQ, int64(2))
	f := And(a, b)

	retained, residual := f.Split(keepOnlyCheck("keep"))
	assert.True(t, retained.Equals(a))
	assert.True(t, residual.Equals(b))
}

func TestGroupSplitOrMovesWholeDisjunctionToResidualWhenAnyChildResidual(t *testing.T) {
	a := NewColumnToConstant("keep", OpEQ, int64(1))
	b := NewColumnToConstant("drop", OpEQ, int64(2))
	f := Or(a, b)

	retained, residual := f.Split(keepOnlyCheck("keep"))
	assert.Equal(t, TrueFilter, retained)
	assert.True(t, residual.Equals(f))
}

func TestGroupSplitOrMovesWholeDisjunctionToRetainedWhenNoChildResidual(t *testing.T) {
	a := NewColumnToConstant("keep1", OpEQ, int64(1))
	b := NewColumnToConstant("keep2", OpEQ, int64(2))
	f := Or(a, b)

	retained, residual := f.Split(keepOnlyCheck("keep1", "keep2"))
	assert.True(t, retained.Equals(f))
	assert.Equal(t, TrueFilter, residual)
}
