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

// matchSetEntry is one chain link of a MatchSet bucket.
type matchSetEntry struct {
	filter RowFilter
	next   *matchSetEntry
}

// MatchSet is an immutable, chained hash set of RowFilters keyed by match
// hash (§4.3, §3.1). Once built it is never mutated; GroupFilter.IsMatch
// builds one MatchSet per side of a comparison and compares them.
type MatchSet struct {
	buckets []*matchSetEntry
	size    int
}

// NewMatchSet builds a MatchSet over filters. Per §9(c) duplicate structural
// members are rejected at construction (the source's contract for
// equalMatches(other, exclude) is undocumented for multisets, so this
// implementation simply disallows them) rather than being silently
// deduplicated or double-counted.
func NewMatchSet(filters []RowFilter) (*MatchSet, error) {
	size := nextPow2(len(filters) + 1)
	ms := &MatchSet{buckets: make([]*matchSetEntry, size)}
	for _, f := range filters {
		if ms.hasEqualMatch(f) != 0 {
			return nil, preconditionf("duplicate filter in MatchSet: %s", f.String())
		}
		ms.insert(f)
	}
	return ms, nil
}

// newMatchSet is the internal convenience used by GroupFilter. Flattening
// does not remove repeated children (only Reduce does), so exact repeats are
// collapsed first; a repeated child adds nothing to an And or an Or.
func newMatchSet(filters []RowFilter) *MatchSet {
	ms, err := NewMatchSet(dedupExact(filters))
	if err != nil {
		panic(err)
	}
	return ms
}

func nextPow2(n int) int {
	if n < 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func (m *MatchSet) bucketFor(hash uint64) int {
	return int(hash % uint64(len(m.buckets)))
}

func (m *MatchSet) insert(f RowFilter) {
	idx := m.bucketFor(f.MatchHash())
	m.buckets[idx] = &matchSetEntry{filter: f, next: m.buckets[idx]}
	m.size++
}

// hasMatch returns +1/-1/0 against any set member (§4.3).
func (m *MatchSet) hasMatch(f RowFilter) int {
	idx := m.bucketFor(f.MatchHash())
	for e := m.buckets[idx]; e != nil; e = e.next {
		if v := e.filter.IsMatch(f); v != 0 {
			return v
		}
	}
	return 0
}

// hasEqualMatch returns +1/0 for strict structural equality only.
func (m *MatchSet) hasEqualMatch(f RowFilter) int {
	idx := m.bucketFor(f.MatchHash())
	for e := m.buckets[idx]; e != nil; e = e.next {
		if e.filter.Equals(f) {
			return 1
		}
	}
	return 0
}

// equalMatches reports +1 (true) iff self and other have the same size and
// every element of self has an equal match in other.
func (m *MatchSet) equalMatches(other *MatchSet) bool {
	if m.size != other.size {
		return false
	}
	for _, b := range m.buckets {
		for e := b; e != nil; e = e.next {
			if other.hasEqualMatch(e.filter) == 0 {
				return false
			}
		}
	}
	return true
}

// inverseMatches reports -1 (true) iff self and other have the same size and
// every element of self has no non-negative match in other — i.e. each is
// inversely matched.
func (m *MatchSet) inverseMatches(other *MatchSet) bool {
	if m.size != other.size {
		return false
	}
	for _, b := range m.buckets {
		for e := b; e != nil; e = e.next {
			if other.hasMatch(e.filter) != -1 {
				return false
			}
		}
	}
	return true
}

// equalMatchesExcluding implements the absorption-pattern variant of
// equalMatches (§4.3): exclude must be a member of self, its negation must
// be a member of other, and everything else must be an equal match between
// the two sets. When it holds, the shared remainder is returned — this is
// the "A" left over from (A∧B) ∨ (A∧¬B) ⇒ A.
func (m *MatchSet) equalMatchesExcluding(other *MatchSet, exclude RowFilter) (remaining []RowFilter, ok bool) {
	if m.hasEqualMatch(exclude) == 0 {
		return nil, false
	}
	neg := safeNot(exclude)
	if neg == nil || other.hasEqualMatch(neg) == 0 {
		return nil, false
	}
	selfRest := m.allExcept(exclude)
	otherRest := other.allExcept(neg)
	if len(selfRest) != len(otherRest) {
		return nil, false
	}
	selfRestSet, err := NewMatchSet(selfRest)
	if err != nil {
		return nil, false
	}
	otherRestSet, err := NewMatchSet(otherRest)
	if err != nil {
		return nil, false
	}
	if !selfRestSet.equalMatches(otherRestSet) {
		return nil, false
	}
	return selfRest, true
}

func (m *MatchSet) allExcept(f RowFilter) []RowFilter {
	out := make([]RowFilter, 0, m.size)
	removed := false
	for _, b := range m.buckets {
		for e := b; e != nil; e = e.next {
			if !removed && e.filter.Equals(f) {
				removed = true
				continue
			}
			out = append(out, e.filter)
		}
	}
	return out
}
