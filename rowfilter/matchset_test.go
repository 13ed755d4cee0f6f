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

func TestNewMatchSetRejectsDuplicates(t *testing.T) {
	a := NewColumnToArg("col", OpEQ, 1)
	_, err := NewMatchSet([]RowFilter{a, NewColumnToArg("col", OpEQ, 1)})
	assert.Error(t, err)
}

func TestMatchSetHasMatch(t *testing.T) {
	a := NewColumnToArg("col", OpEQ, 1)
	b := NewColumnToArg("col2", OpGE, 2)
	ms, err := NewMatchSet([]RowFilter{a, b})
	require.NoError(t, err)

	assert.Equal(t, -1, ms.hasMatch(a.Not()))
	assert.Equal(t, 1, ms.hasMatch(NewColumnToArg("col", OpEQ, 1)))
	assert.Equal(t, 0, ms.hasMatch(NewColumnToArg("other", OpEQ, 9)))
}

func TestMatchSetEqualMatches(t *testing.T) {
	a := NewColumnToArg("col", OpEQ, 1)
	b := NewColumnToArg("col2", OpGE, 2)
	ms1, err := NewMatchSet([]RowFilter{a, b})
	require.NoError(t, err)
	ms2, err := NewMatchSet([]RowFilter{b, a})
	require.NoError(t, err)
	assert.True(t, ms1.equalMatches(ms2))

	ms3, err := NewMatchSet([]RowFilter{a})
	require.NoError(t, err)
	assert.False(t, ms1.equalMatches(ms3))
}

func TestMatchSetInverseMatches(t *testing.T) {
	a := NewColumnToArg("col", OpEQ, 1)
	b := NewColumnToArg("col2", OpGE, 2)
	ms1, err := NewMatchSet([]RowFilter{a, b})
	require.NoError(t, err)
	ms2, err := NewMatchSet([]RowFilter{a.Not(), b.Not()})
	require.NoError(t, err)
	assert.True(t, ms1.inverseMatches(ms2))
	assert.False(t, ms1.inverseMatches(ms1))
}

func TestMatchSetEqualMatchesExcluding(t *testing.T) {
	a := NewColumnToArg("col", OpEQ, 1)
	b := NewColumnToArg("col2", OpGE, 2)
	ms1, err := NewMatchSet([]RowFilter{a, b})
	require.NoError(t, err)
	ms2, err := NewMatchSet([]RowFilter{a, b.Not()})
	require.NoError(t, err)

	remaining, ok := ms1.equalMatchesExcluding(ms2, b)
	require.True(t, ok)
	require.Len(t, remaining, 1)
	assert.True(t, remaining[0].Equals(a))

	_, ok = ms1.equalMatchesExcluding(ms2, a)
	assert.False(t, ok)
}
