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

func TestTermFilterNotInvolution(t *testing.T) {
	cases := []*TermFilter{
		NewColumnToArg("col", OpEQ, 1),
		NewColumnToColumn("a", OpLT, "b"),
		NewColumnToConstant("col", OpGE, int64(5)),
	}
	for _, f := range cases {
		t.Run(f.String(), func(t *testing.T) {
			assert.True(t, f.Not().Not().Equals(f))
		})
	}
}

func TestTermFilterIsMatchAgainstNegation(t *testing.T) {
	a := NewColumnToArg("col", OpEQ, 1)
	d := NewColumnToArg("col", OpNE, 1)
	require.Equal(t, -1, a.IsMatch(d))
	require.Equal(t, -1, d.IsMatch(a))
	require.Equal(t, 1, a.IsMatch(NewColumnToArg("col", OpEQ, 1)))
}

func TestTermFilterMatchHashEqualsNegationMatchHash(t *testing.T) {
	terms := []*TermFilter{
		NewColumnToArg("col", OpEQ, 1),
		NewColumnToColumn("a", OpLT, "b"),
		NewColumnToConstant("col", OpGE, int64(5)),
		NewColumnToConstant("col", OpIn, []interface{}{1, 2}),
	}
	for _, term := range terms {
		t.Run(term.String(), func(t *testing.T) {
			assert.Equal(t, term.MatchHash(), term.Not().MatchHash())
		})
	}
}

func TestExprFilterNotPanics(t *testing.T) {
	e := NewExpr(stubExpr{text: "x > 1"})
	assert.Panics(t, func() { e.Not() })
}

func TestTermFilterUniqueColumn(t *testing.T) {
	eq := NewColumnToConstant("col", OpEQ, int64(1))
	assert.True(t, eq.UniqueColumn("col"))
	assert.False(t, eq.UniqueColumn("other"))

	ne := NewColumnToConstant("col", OpNE, int64(1))
	assert.False(t, ne.UniqueColumn("col"))
}

func TestColumnToColumnRejectsInOperator(t *testing.T) {
	assert.Panics(t, func() { NewColumnToColumn("a", OpIn, "b") })
}

// stubExpr is a minimal Expr used to exercise ExprFilter without a real
// expression evaluator.
type stubExpr struct{ text string }

func (s stubExpr) Equals(other Expr) bool {
	o, ok := other.(stubExpr)
	return ok && o.text == s.text
}

func (s stubExpr) String() string { return s.text }
