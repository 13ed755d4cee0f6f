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

// Reduce returns the canonical reduced form of this group (§4.2), memoized
// in the reduced slot. Children are reduced bottom-up first.
func (g *GroupFilter) Reduce() RowFilter {
	if v, ok := loadOnce(&g.s.reduced); ok {
		return v
	}
	reducedChildren := make([]RowFilter, len(g.children))
	for i, c := range g.children {
		reducedChildren[i] = c.Reduce()
	}
	result := reduceGroup(g.kind, reducedChildren)
	return publishOnce(&g.s.reduced, result)
}

// reduceGroup implements §4.2's reduce pass over an already bottom-up
// reduced child list: contradiction/tautology detection via the De Morgan
// match relation, exact-duplicate removal, per-column interval tightening of
// constant comparisons, and the two absorption patterns (§8 law 4 and the
// MatchSet-driven (A∧B)∨(A∧¬B) ⇒ A pattern, §4.3).
func reduceGroup(kind groupKind, children []RowFilter) RowFilter {
	for i := 0; i < len(children); i++ {
		for j := i + 1; j < len(children); j++ {
			if children[i].IsMatch(children[j]) == -1 {
				if kind == kindAnd {
					return FalseFilter
				}
				return TrueFilter
			}
		}
	}

	deduped := dedupExact(children)

	tightened, contradiction := tightenRanges(kind, deduped)
	if contradiction {
		return FalseFilter
	}

	absorbed := absorbSubsumed(kind, tightened)
	absorbed = absorbDeMorganPairs(kind, absorbed)

	return newGroup(kind, absorbed)
}

func dedupExact(children []RowFilter) []RowFilter {
	out := make([]RowFilter, 0, len(children))
	for _, c := range children {
		dup := false
		for _, o := range out {
			if o.Equals(c) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}

// absorbSubsumed implements `Or(a, And(a, b)) -> a` and its dual
// `And(a, Or(a, b)) -> a` (§8 law 4): if a sub-group of the opposite kind has
// a child that exactly matches a sibling, the whole sub-group is redundant.
func absorbSubsumed(kind groupKind, children []RowFilter) []RowFilter {
	subKind := kindAnd
	if kind == kindAnd {
		subKind = kindOr
	}
	drop := make(map[int]bool, len(children))
	for i, ci := range children {
		for j, cj := range children {
			if i == j || drop[j] {
				continue
			}
			g, ok := cj.(*GroupFilter)
			if !ok || g.kind != subKind {
				continue
			}
			for _, gc := range g.children {
				if gc.IsMatch(ci) == 1 {
					drop[j] = true
					break
				}
			}
		}
	}
	out := make([]RowFilter, 0, len(children))
	for i, c := range children {
		if !drop[i] {
			out = append(out, c)
		}
	}
	return out
}

// absorbDeMorganPairs implements the MatchSet-driven absorption pattern
// `(A∧B) ∨ (A∧¬B) ⇒ A` (§4.3, §8 scenario 5), and its dual
// `(A∨B) ∧ (A∨¬B) ⇒ A` for an And of Ors.
func absorbDeMorganPairs(kind groupKind, children []RowFilter) []RowFilter {
	subKind := kindAnd
	if kind == kindAnd {
		subKind = kindOr
	}
	used := make([]bool, len(children))
	out := make([]RowFilter, 0, len(children))
	for i := 0; i < len(children); i++ {
		if used[i] {
			continue
		}
		replaced := false
		if gi, ok := children[i].(*GroupFilter); ok && gi.kind == subKind && len(gi.children) > 0 {
			iSet := newMatchSet(gi.children)
		searchPartner:
			for j := i + 1; j < len(children); j++ {
				if used[j] {
					continue
				}
				gj, ok := children[j].(*GroupFilter)
				if !ok || gj.kind != subKind || len(gj.children) == 0 {
					continue
				}
				jSet := newMatchSet(gj.children)
				for _, exclude := range gi.children {
					remaining, ok := iSet.equalMatchesExcluding(jSet, exclude)
					if !ok {
						continue
					}
					var combined RowFilter
					if subKind == kindAnd {
						combined = And(remaining...)
					} else {
						combined = Or(remaining...)
					}
					out = append(out, combined)
					used[i], used[j] = true, true
					replaced = true
					break searchPartner
				}
			}
		}
		if !replaced {
			out = append(out, children[i])
			used[i] = true
		}
	}
	return out
}

// tightenRanges merges ColumnToConstantFilter comparisons sharing a column
// into the tightest (And) or loosest (Or) surviving bound, per §4.2's
// reduceOperatorForAnd/reduceOperatorForOr tables. Returns (nil, true) when
// an And's bounds are provably contradictory.
func tightenRanges(kind groupKind, children []RowFilter) ([]RowFilter, bool) {
	byColumn := map[string][]int{}
	for i, c := range children {
		if t, ok := c.(*TermFilter); ok && t.kind == kindColumnToConstant {
			byColumn[t.column] = append(byColumn[t.column], i)
		}
	}
	drop := make(map[int]bool)
	for _, idxs := range byColumn {
		if len(idxs) < 2 {
			continue
		}
		if kind == kindAnd {
			if tightenColumnAnd(children, idxs, drop) {
				return nil, true
			}
		} else {
			tightenColumnOr(children, idxs, drop)
		}
	}
	out := make([]RowFilter, 0, len(children))
	for i, c := range children {
		if !drop[i] {
			out = append(out, c)
		}
	}
	return out, false
}

func tightenColumnAnd(children []RowFilter, idxs []int, drop map[int]bool) (contradiction bool) {
	var eqs, lowers, uppers []int
	for _, idx := range idxs {
		t := children[idx].(*TermFilter)
		switch {
		case t.op == OpEQ:
			eqs = append(eqs, idx)
		case t.op == OpGT || t.op == OpGE:
			lowers = append(lowers, idx)
		case t.op == OpLT || t.op == OpLE:
			uppers = append(uppers, idx)
		}
	}

	if len(eqs) > 0 {
		pivot := children[eqs[0]].(*TermFilter)
		for _, idx := range eqs[1:] {
			t := children[idx].(*TermFilter)
			cmp, ok := compareConstants(pivot.constant, t.constant)
			if !ok {
				continue
			}
			if cmp != 0 {
				return true
			}
			drop[idx] = true
		}
		for _, idx := range lowers {
			t := children[idx].(*TermFilter)
			cmp, ok := compareConstants(pivot.constant, t.constant)
			if !ok {
				continue
			}
			if !(cmp > 0 || (cmp == 0 && t.op == OpGE)) {
				return true
			}
			drop[idx] = true
		}
		for _, idx := range uppers {
			t := children[idx].(*TermFilter)
			cmp, ok := compareConstants(pivot.constant, t.constant)
			if !ok {
				continue
			}
			if !(cmp < 0 || (cmp == 0 && t.op == OpLE)) {
				return true
			}
			drop[idx] = true
		}
		return false
	}

	winLower, lowerOK := pickBoundWinner(children, lowers, true, true)
	winUpper, upperOK := pickBoundWinner(children, uppers, false, true)
	if lowerOK {
		for _, idx := range lowers {
			if idx != winLower {
				drop[idx] = true
			}
		}
	}
	if upperOK {
		for _, idx := range uppers {
			if idx != winUpper {
				drop[idx] = true
			}
		}
	}
	if lowerOK && upperOK && winLower >= 0 && winUpper >= 0 {
		lt := children[winLower].(*TermFilter)
		ut := children[winUpper].(*TermFilter)
		if cmp, ok := compareConstants(lt.constant, ut.constant); ok {
			if cmp > 0 {
				return true
			}
			if cmp == 0 && (lt.op.Strict() || ut.op.Strict()) {
				return true
			}
		}
	}
	return false
}

func tightenColumnOr(children []RowFilter, idxs []int, drop map[int]bool) {
	var eqs, lowers, uppers []int
	for _, idx := range idxs {
		t := children[idx].(*TermFilter)
		switch {
		case t.op == OpEQ:
			eqs = append(eqs, idx)
		case t.op == OpGT || t.op == OpGE:
			lowers = append(lowers, idx)
		case t.op == OpLT || t.op == OpLE:
			uppers = append(uppers, idx)
		}
	}

	winLower, lowerOK := pickBoundWinner(children, lowers, true, false)
	winUpper, upperOK := pickBoundWinner(children, uppers, false, false)
	if lowerOK {
		for _, idx := range lowers {
			if idx != winLower {
				drop[idx] = true
			}
		}
	}
	if upperOK {
		for _, idx := range uppers {
			if idx != winUpper {
				drop[idx] = true
			}
		}
	}

	for _, idx := range eqs {
		t := children[idx].(*TermFilter)
		haveBound := false
		satisfied := true
		if lowerOK && winLower >= 0 {
			haveBound = true
			lt := children[winLower].(*TermFilter)
			cmp, ok := compareConstants(t.constant, lt.constant)
			satisfied = satisfied && ok && (cmp > 0 || (cmp == 0 && lt.op == OpGE))
		}
		if upperOK && winUpper >= 0 {
			haveBound = true
			ut := children[winUpper].(*TermFilter)
			cmp, ok := compareConstants(t.constant, ut.constant)
			satisfied = satisfied && ok && (cmp < 0 || (cmp == 0 && ut.op == OpLE))
		}
		if haveBound && satisfied {
			drop[idx] = true
		}
	}
}

// pickBoundWinner chooses, among idxs (all referring to ColumnToConstantFilter
// comparisons on the same column and bound direction), the single term that
// survives: the tightest for And, the loosest for Or. ok is false when any
// pair of values was incomparable, in which case the caller must leave the
// whole bound group untouched rather than risk dropping a term it couldn't
// actually compare.
func pickBoundWinner(children []RowFilter, idxs []int, lower, forAnd bool) (winIdx int, ok bool) {
	if len(idxs) == 0 {
		return -1, true
	}
	win := idxs[0]
	wantMax := lower == forAnd
	for _, idx := range idxs[1:] {
		wt := children[win].(*TermFilter)
		ct := children[idx].(*TermFilter)
		cmp, comparable := compareConstants(ct.constant, wt.constant)
		if !comparable {
			return -1, false
		}
		takeNew := false
		switch {
		case cmp > 0 && wantMax:
			takeNew = true
		case cmp < 0 && !wantMax:
			takeNew = true
		case cmp == 0:
			if forAnd && ct.op.Strict() && !wt.op.Strict() {
				takeNew = true
			}
			if !forAnd && !ct.op.Strict() && wt.op.Strict() {
				takeNew = true
			}
		}
		if takeNew {
			win = idx
		}
	}
	return win, true
}
