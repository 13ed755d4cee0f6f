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

func TestWithOrderByExpandsProjection(t *testing.T) {
	q := NewQuerySpec(TrueFilter).WithProjection(&Projection{
		Columns: []ProjectedColumn{{Alias: "a", Column: "colA"}},
	})
	q = q.WithOrderBy(&OrderBy{Columns: []OrderByColumn{{Column: "colB"}}})

	require.NotNil(t, q.Projection)
	require.Len(t, q.Projection.Columns, 2)
	assert.Equal(t, "colA", q.Projection.Columns[0].Column)
	assert.Equal(t, "colB", q.Projection.Columns[1].Column)
}

func TestWithOrderByDoesNotDuplicateAlreadyProjectedColumn(t *testing.T) {
	q := NewQuerySpec(TrueFilter).WithProjection(&Projection{
		Columns: []ProjectedColumn{{Column: "colA"}},
	})
	q = q.WithOrderBy(&OrderBy{Columns: []OrderByColumn{{Column: "colA"}}})
	assert.Len(t, q.Projection.Columns, 1)
}

func TestIsFullScan(t *testing.T) {
	q := NewQuerySpec(TrueFilter)
	assert.True(t, q.IsFullScan())

	q2 := q.WithProjection(&Projection{Columns: []ProjectedColumn{{Column: "a"}}})
	assert.False(t, q2.IsFullScan())
}

func TestPrimaryKeyOrdersByOrderByThenProjection(t *testing.T) {
	q := NewQuerySpec(TrueFilter).
		WithProjection(&Projection{Columns: []ProjectedColumn{{Column: "a"}, {Column: "b"}}}).
		WithOrderBy(&OrderBy{Columns: []OrderByColumn{{Column: "b"}}})

	assert.Equal(t, []string{"b", "a"}, q.PrimaryKey())
}

func TestWithFilterReturnsSameSpecWhenEquivalent(t *testing.T) {
	a := NewColumnToArg("col", OpEQ, 1)
	q := NewQuerySpec(a)
	same := q.WithFilter(NewColumnToArg("col", OpEQ, 1))
	assert.Same(t, q, same)
}

func TestQuerySpecString(t *testing.T) {
	q := NewQuerySpec(TrueFilter)
	assert.Equal(t, "{*}", q.String())

	a := NewColumnToArg("col", OpEQ, 1)
	q2 := NewQuerySpec(a).WithProjection(&Projection{
		Columns: []ProjectedColumn{{Alias: "x", Column: "col"}},
	})
	assert.Equal(t, "{x:col} col == ?1", q2.String())
}
