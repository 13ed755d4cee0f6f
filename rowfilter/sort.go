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
	"sort"
	"strings"
)

// compareFilters implements the §4.2 deterministic total order: primary by
// variant tag (Term < And < Or), secondary by hash, tertiary by
// lexicographic comparison of child sequences / fields. Used to canonicalize
// And/Or argument order before DNF/CNF comparison.
func compareFilters(a, b RowFilter) int {
	at, ah := a.sortKey()
	bt, bh := b.sortKey()
	if at != bt {
		return at - bt
	}
	if ah != bh {
		if ah < bh {
			return -1
		}
		return 1
	}
	return compareFiltersTertiary(a, b)
}

func compareFiltersTertiary(a, b RowFilter) int {
	switch av := a.(type) {
	case *TermFilter:
		return compareTerms(av, b.(*TermFilter))
	case *GroupFilter:
		bv := b.(*GroupFilter)
		if len(av.children) != len(bv.children) {
			return len(av.children) - len(bv.children)
		}
		for i := range av.children {
			if c := compareFilters(av.children[i], bv.children[i]); c != 0 {
				return c
			}
		}
		return 0
	default:
		return 0
	}
}

func compareTerms(a, b *TermFilter) int {
	if a.kind != b.kind {
		return int(a.kind) - int(b.kind)
	}
	if c := strings.Compare(a.column, b.column); c != 0 {
		return c
	}
	switch a.kind {
	case kindColumnToArg:
		if a.op != b.op {
			return int(a.op) - int(b.op)
		}
		return a.argNum - b.argNum
	case kindColumnToColumn:
		if c := strings.Compare(a.column2, b.column2); c != 0 {
			return c
		}
		return int(a.op) - int(b.op)
	case kindColumnToConstant:
		if a.op != b.op {
			return int(a.op) - int(b.op)
		}
		if cmp, ok := compareConstants(a.constant, b.constant); ok {
			return cmp
		}
		return 0
	case kindExpr:
		return strings.Compare(a.expr.String(), b.expr.String())
	default:
		return 0
	}
}

// Sort returns the canonical sorted form of this group: every child sorted
// recursively, then the child list itself placed in the §4.2 total order.
// Memoized in the sorted slot.
func (g *GroupFilter) Sort() RowFilter {
	if v, ok := loadOnce(&g.s.sorted); ok {
		return v
	}
	sortedChildren := make([]RowFilter, len(g.children))
	for i, c := range g.children {
		sortedChildren[i] = c.Sort()
	}
	sort.SliceStable(sortedChildren, func(i, j int) bool {
		return compareFilters(sortedChildren[i], sortedChildren[j]) < 0
	})
	result := newGroup(g.kind, sortedChildren)
	return publishOnce(&g.s.sorted, result)
}
