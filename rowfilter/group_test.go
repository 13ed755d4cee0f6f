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
	"github.com/stretchr/testify/require"
)

// a, b, c per spec.md §8's scenario table.
func termsABC() (a, b, c *TermFilter) {
	return NewColumnToArg("col", OpEQ, 1),
		NewColumnToArg("col2", OpGE, 2),
		NewColumnToArg("col", OpEQ, 3)
}

func TestEmptyAndRendersTrue(t *testing.T) {
	assert.Equal(t, "true", And().String())
	assert.Equal(t, "false", Or().String())
}

func TestAndFlattensNestedAnd(t *testing.T) {
	a, b, c := termsABC()
	got := And(a, And(b, c))
	want := And(a, b, c)
	assert.True(t, got.Equals(want))
	g, ok := got.(*GroupFilter)
	require.True(t, ok)
	assert.Len(t, g.Children(), 3)
}

func TestAndWithFalseFilterAnnihilates(t *testing.T) {
	a, _, _ := termsABC()
	assert.Equal(t, FalseFilter, And(a, FalseFilter))
}

func TestOrWithTrueFilterAnnihilates(t *testing.T) {
	a, _, _ := termsABC()
	assert.Equal(t, TrueFilter, Or(a, TrueFilter))
}

func TestIsMatchDeMorganInverse(t *testing.T) {
	a := NewColumnToArg("col", OpEQ, 1)
	d := NewColumnToArg("col", OpNE, 1)
	assert.Equal(t, -1, a.IsMatch(d))
}

func TestReduceAbsorbsDeMorganPair(t *testing.T) {
	a, b, _ := termsABC()
	f := Or(And(a, b), And(a, b.Not()))
	reduced := f.Reduce()
	assert.True(t, reduced.Equals(a), "got %s", reduced)
}

func TestReduceIdempotence(t *testing.T) {
	a, _, _ := termsABC()
	got := And(a, a).Reduce()
	want := a.Reduce()
	assert.True(t, got.Equals(want))
}

func TestReduceContradictionYieldsFalse(t *testing.T) {
	a := NewColumnToConstant("col", OpEQ, int64(1))
	d := NewColumnToConstant("col", OpEQ, int64(2))
	assert.Equal(t, FalseFilter, And(a, d).Reduce())
}

func TestReduceTightensConstantRange(t *testing.T) {
	lowLoose := NewColumnToConstant("col", OpGE, int64(1))
	lowTight := NewColumnToConstant("col", OpGT, int64(5))
	reduced := And(lowLoose, lowTight).Reduce()
	g, ok := reduced.(*TermFilter)
	require.True(t, ok, "expected a single tightened term, got %s", reduced)
	assert.Equal(t, OpGT, g.Op())
	assert.Equal(t, int64(5), g.Constant())
}

func TestSortIsStableUnderPermutation(t *testing.T) {
	a, b, c := termsABC()
	f1 := And(a, b, c).Sort()
	f2 := And(c, a, b).Sort()
	assert.True(t, f1.Equals(f2), "%s vs %s", f1, f2)
}

func TestNotInvolution(t *testing.T) {
	a, b, _ := termsABC()
	f := And(a, Or(b, a.Not()))
	assert.True(t, f.Not().Not().Equals(f))
}

func TestDeMorganNegation(t *testing.T) {
	a, b, _ := termsABC()
	got := And(a, b).Not()
	want := Or(a.Not(), b.Not())
	assert.True(t, got.Equals(want))
}

func TestMatchHashSurvivesNegation(t *testing.T) {
	a, b, _ := termsABC()
	f := And(a, b)
	assert.Equal(t, f.MatchHash(), f.Not().MatchHash())
}

func TestGroupFilterIsMatchAndVsOrDeMorgan(t *testing.T) {
	a, b, _ := termsABC()
	and := And(a, b)
	or := Or(a.Not(), b.Not())
	assert.Equal(t, -1, and.IsMatch(or))
}

func TestUniqueColumn(t *testing.T) {
	eq := NewColumnToConstant("col", OpEQ, int64(7))
	other := NewColumnToConstant("other", OpGT, int64(1))
	g := And(eq, other).(*GroupFilter)
	assert.True(t, g.UniqueColumn("col"))
	assert.False(t, g.UniqueColumn("nonexistent"))
}
