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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRangeAscendingKeyWithResidual(t *testing.T) {
	low := NewColumnToConstant("k", OpGE, int64(1))
	high := NewColumnToConstant("k", OpLT, int64(2))
	other := NewColumnToConstant("other", OpEQ, int64(3))
	f := And(low, high, other)

	r := ExtractRange(context.Background(), f, []ColumnInfo{{Name: "k", Type: TypeInt64}})
	require.NotNil(t, r.Low)
	require.NotNil(t, r.High)
	require.NotNil(t, r.Remaining)
	assert.True(t, r.Low.Equals(low))
	assert.True(t, r.High.Equals(high))
	assert.True(t, r.Remaining.Equals(other))
}

func TestExtractRangeDescendingKeyFlipsOperator(t *testing.T) {
	gt := NewColumnToConstant("k", OpGT, int64(1))
	f := And(gt)

	r := ExtractRange(context.Background(), f, []ColumnInfo{{Name: "k", Type: TypeInt64, Descending: true}})
	require.NotNil(t, r.High)
	high, ok := r.High.(*TermFilter)
	require.True(t, ok)
	assert.Equal(t, OpLT, high.Op())
	assert.Nil(t, r.Low)
	assert.Nil(t, r.Remaining)
}

func TestExtractRangeFuzzyEqualityStopsTraversal(t *testing.T) {
	eqDecimal := NewColumnToConstant("amount", OpEQ, "1.00")
	eqOther := NewColumnToConstant("other", OpEQ, int64(5))
	f := And(eqDecimal, eqOther)

	keys := []ColumnInfo{
		{Name: "amount", Type: TypeDecimal},
		{Name: "other", Type: TypeInt64},
	}
	r := ExtractRange(context.Background(), f, keys)
	require.NotNil(t, r.Low)
	require.NotNil(t, r.Remaining)
	assert.True(t, r.Remaining.Equals(f), "got %s", r.Remaining)
}

func TestExtractRangeClosesTerminalEquality(t *testing.T) {
	eq := NewColumnToConstant("k", OpEQ, int64(7))
	f := And(eq)

	r := ExtractRange(context.Background(), f, []ColumnInfo{{Name: "k", Type: TypeInt64}})
	require.NotNil(t, r.Low)
	require.NotNil(t, r.High)
	low, ok := r.Low.(*TermFilter)
	require.True(t, ok)
	assert.Equal(t, OpGE, low.Op())
	high, ok := r.High.(*TermFilter)
	require.True(t, ok)
	assert.Equal(t, OpLE, high.Op())
	assert.Nil(t, r.Remaining)
}

func TestExtractRangeFullScanHasNoBounds(t *testing.T) {
	r := ExtractRange(context.Background(), TrueFilter, []ColumnInfo{{Name: "k", Type: TypeInt64}})
	assert.Nil(t, r.Low)
	assert.Nil(t, r.High)
	assert.Nil(t, r.Remaining)
}

func TestExtractRangeNoKeyMatchKeepsFilterAsRemaining(t *testing.T) {
	other := NewColumnToConstant("other", OpEQ, int64(1))
	r := ExtractRange(context.Background(), other, []ColumnInfo{{Name: "k", Type: TypeInt64}})
	assert.Nil(t, r.Low)
	assert.Nil(t, r.High)
	require.NotNil(t, r.Remaining)
	assert.True(t, r.Remaining.Equals(other))
}
