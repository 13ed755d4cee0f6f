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

// groupKind tags And vs Or.
type groupKind int8

const (
	kindAnd groupKind = iota
	kindOr
)

// GroupFilter is an n-ary And or Or over a sequence of sub-filters (§3.1,
// §4.2). It is only ever constructed through And/Or, which enforce the
// flattening and shortcut invariants (§3.2 invariants 1-2): no And is built
// with a direct And child (nor Or with Or), and TrueFilter/FalseFilter only
// ever appear free-standing.
type GroupFilter struct {
	s        *slots
	kind     groupKind
	children []RowFilter

	hash      uint64
	matchHash uint64
}

var _ RowFilter = (*GroupFilter)(nil)

// TrueFilter is the canonical empty And: the identity element for
// conjunction and the annihilator for disjunction.
var TrueFilter RowFilter = newEmptyGroup(kindAnd)

// FalseFilter is the canonical empty Or: the identity element for
// disjunction and the annihilator for conjunction.
var FalseFilter RowFilter = newEmptyGroup(kindOr)

func newEmptyGroup(kind groupKind) *GroupFilter {
	g := &GroupFilter{s: new(slots), kind: kind}
	g.hash = g.computeHash()
	g.matchHash = g.computeMatchHash()
	return g
}

// And builds a conjunction. Nested And children are flattened into this
// one's child list; any FalseFilter child annihilates the whole expression;
// TrueFilter children are dropped as redundant; a single surviving child is
// returned unwrapped; zero children collapses to TrueFilter (§4.2).
func And(filters ...RowFilter) RowFilter {
	return newGroup(kindAnd, filters)
}

// Or builds a disjunction, dually to And: TrueFilter annihilates, FalseFilter
// is dropped, single child unwraps, zero children collapses to FalseFilter.
func Or(filters ...RowFilter) RowFilter {
	return newGroup(kindOr, filters)
}

func newGroup(kind groupKind, in []RowFilter) RowFilter {
	annihilator, identity := FalseFilter, TrueFilter
	if kind == kindOr {
		annihilator, identity = TrueFilter, FalseFilter
	}

	flat := make([]RowFilter, 0, len(in))
	for _, f := range in {
		if f == nil {
			panic(invariantf("nil child passed to group constructor"))
		}
		if f == annihilator {
			return annihilator
		}
		if f == identity {
			continue
		}
		if g, ok := f.(*GroupFilter); ok && g.kind == kind {
			flat = append(flat, g.children...)
			continue
		}
		flat = append(flat, f)
	}

	switch len(flat) {
	case 0:
		return identity
	case 1:
		return flat[0]
	}

	g := &GroupFilter{s: new(slots), kind: kind, children: flat}
	g.hash = g.computeHash()
	g.matchHash = g.computeMatchHash()
	return g
}

func (g *GroupFilter) computeHash() uint64 {
	parts := make([]uint64, 0, len(g.children)+1)
	parts = append(parts, hashValue(g.kind))
	for _, c := range g.children {
		parts = append(parts, c.Hash())
	}
	return combineOrdered(parts...)
}

func (g *GroupFilter) computeMatchHash() uint64 {
	parts := make([]uint64, 0, len(g.children)+1)
	parts = append(parts, groupKindTag)
	for _, c := range g.children {
		parts = append(parts, c.MatchHash())
	}
	return combineCommutative(parts...)
}

// IsAnd reports whether this is a conjunction.
func (g *GroupFilter) IsAnd() bool { return g.kind == kindAnd }

// IsOr reports whether this is a disjunction.
func (g *GroupFilter) IsOr() bool { return g.kind == kindOr }

// Children returns the group's direct sub-filters. The returned slice must
// not be mutated by the caller.
func (g *GroupFilter) Children() []RowFilter { return g.children }

func (g *GroupFilter) isEmpty() bool { return len(g.children) == 0 }

// Not implements De Morgan negation: And(c...).Not() == Or(c.Not()...), and
// dually for Or (§8 law 2).
func (g *GroupFilter) Not() RowFilter {
	negated := make([]RowFilter, len(g.children))
	for i, c := range g.children {
		negated[i] = c.Not()
	}
	if g.kind == kindAnd {
		return Or(negated...)
	}
	return And(negated...)
}

// Equals is structural, order-sensitive equality (§3.2 invariant 4); callers
// that want order-insensitive comparison should compare Sort()'d forms.
func (g *GroupFilter) Equals(other RowFilter) bool {
	o, ok := other.(*GroupFilter)
	if !ok || o.kind != g.kind || o.hash != g.hash || len(o.children) != len(g.children) {
		return false
	}
	for i, c := range g.children {
		if !c.Equals(o.children[i]) {
			return false
		}
	}
	return true
}

// IsMatch defers to MatchSet comparisons (§4.3): two same-kind groups match
// (+1) iff their children's MatchSets are equal; an And and an Or
// inverse-match (-1) iff their children's MatchSets are inverse-equal (the
// De Morgan case).
func (g *GroupFilter) IsMatch(other RowFilter) int {
	if g.Equals(other) {
		return 1
	}
	o, ok := other.(*GroupFilter)
	if !ok {
		if neg := safeNot(g); neg != nil && neg.Equals(other) {
			return -1
		}
		return 0
	}
	selfSet := newMatchSet(g.children)
	otherSet := newMatchSet(o.children)
	if g.kind == o.kind {
		if selfSet.equalMatches(otherSet) {
			return 1
		}
		return 0
	}
	if selfSet.inverseMatches(otherSet) {
		return -1
	}
	return 0
}

// UniqueColumn reports whether this group is a conjunction with at least one
// direct child term that pins name to a single value (an == term on that
// column), which pins the column for the conjunction as a whole. An Or group
// always reports false, as does an And with no such child.
func (g *GroupFilter) UniqueColumn(name string) bool {
	if g.kind != kindAnd {
		return false
	}
	found := false
	for _, c := range g.children {
		if t, ok := c.(*TermFilter); ok && t.UniqueColumn(name) {
			found = true
		}
	}
	return found
}

// Hash returns the ordinary, order- and kind-sensitive structural hash.
func (g *GroupFilter) Hash() uint64 { return g.hash }

// MatchHash returns the polarity-, order-, and kind-insensitive match hash.
func (g *GroupFilter) MatchHash() uint64 { return g.matchHash }

func (g *GroupFilter) sortKey() (tag int, hash uint64) {
	if g.kind == kindAnd {
		return 1, g.hash
	}
	return 2, g.hash
}

func (g *GroupFilter) isRowFilter() {}
