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
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// DNF returns the disjunctive normal form of g: an Or of Ands of terms,
// expanded by distributing And over Or (§4.2). Expansion is bounded by
// limit, measured in the number of produced And-clauses; if the bound would
// be exceeded, g is returned unchanged (and IsDNF reports false) rather than
// building a combinatorially huge tree.
func (g *GroupFilter) DNF(limit int) RowFilter {
	return g.normalForm(limit, kindOr, "dnf", &g.s.dnf, flagDNFSet, flagIsDNF)
}

// CNF returns the conjunctive normal form of g, dually to DNF: an And of Ors
// of terms, expanded by distributing Or over And.
func (g *GroupFilter) CNF(limit int) RowFilter {
	return g.normalForm(limit, kindAnd, "cnf", &g.s.cnf, flagCNFSet, flagIsCNF)
}

func (g *GroupFilter) normalForm(limit int, outerKind groupKind, name string, cell *atomic.Pointer[RowFilter], setBit, valBit uint32) RowFilter {
	if v, ok := loadOnce(cell); ok {
		return v
	}

	clauses, ok := normalFormClauses(g, limit, outerKind)
	if !ok {
		logrus.WithFields(logrus.Fields{
			"form":  name,
			"limit": limit,
		}).Debug("normal form expansion exceeded limit; leaving filter unexpanded")
		g.s.setFlag(setBit, valBit, false)
		return publishOnce(cell, g)
	}

	innerCombine, outerCombine := And, Or
	if outerKind == kindAnd {
		innerCombine, outerCombine = Or, And
	}

	combined := make([]RowFilter, len(clauses))
	for i, clause := range clauses {
		combined[i] = innerCombine(clause...)
	}
	result := outerCombine(combined...)

	g.s.setFlag(setBit, valBit, true)
	return publishOnce(cell, result)
}

// normalFormClauses recursively distributes f into a flat list of clauses
// for the given outer group kind (kindOr for DNF, kindAnd for CNF). Every
// clause is a list of literals meant to be combined with the opposite kind.
// A node of outerKind concatenates its children's clause lists (union); a
// node of the opposite kind cross-products them (distribution). The walk
// aborts as soon as the clause count would exceed limit.
func normalFormClauses(f RowFilter, limit int, outerKind groupKind) (clauses [][]RowFilter, ok bool) {
	g, isGroup := f.(*GroupFilter)
	if !isGroup || len(g.children) == 0 {
		return [][]RowFilter{{f}}, true
	}

	if g.kind == outerKind {
		out := make([][]RowFilter, 0, len(g.children))
		for _, c := range g.children {
			childClauses, ok := normalFormClauses(c, limit, outerKind)
			if !ok {
				return nil, false
			}
			out = append(out, childClauses...)
			if len(out) > limit {
				return nil, false
			}
		}
		return out, true
	}

	acc := [][]RowFilter{{}}
	for _, c := range g.children {
		childClauses, ok := normalFormClauses(c, limit, outerKind)
		if !ok {
			return nil, false
		}
		next := make([][]RowFilter, 0, len(acc)*len(childClauses))
		for _, partial := range acc {
			for _, cc := range childClauses {
				combined := make([]RowFilter, 0, len(partial)+len(cc))
				combined = append(combined, partial...)
				combined = append(combined, cc...)
				next = append(next, combined)
				if len(next) > limit {
					return nil, false
				}
			}
		}
		acc = next
	}
	return acc, true
}

// IsDNF reports whether g is already in DNF, either because DNF was called
// and did not hit its limit or because it is trivially an Or of Ands (or a
// single And/term) without having gone through DNF at all.
func (g *GroupFilter) IsDNF() bool {
	if set, val := g.s.getFlag(flagDNFSet, flagIsDNF); set {
		return val
	}
	return isTrivialDNF(g)
}

// IsCNF is IsDNF's dual.
func (g *GroupFilter) IsCNF() bool {
	if set, val := g.s.getFlag(flagCNFSet, flagIsCNF); set {
		return val
	}
	return isTrivialCNF(g)
}

func isTrivialDNF(f RowFilter) bool {
	g, ok := f.(*GroupFilter)
	if !ok {
		return true
	}
	if g.kind == kindOr {
		for _, c := range g.children {
			if !isConjunctionOfTerms(c) {
				return false
			}
		}
		return true
	}
	return isConjunctionOfTerms(g)
}

func isTrivialCNF(f RowFilter) bool {
	g, ok := f.(*GroupFilter)
	if !ok {
		return true
	}
	if g.kind == kindAnd {
		for _, c := range g.children {
			if !isDisjunctionOfTerms(c) {
				return false
			}
		}
		return true
	}
	return isDisjunctionOfTerms(g)
}

func isConjunctionOfTerms(f RowFilter) bool {
	if _, ok := f.(*TermFilter); ok {
		return true
	}
	g, ok := f.(*GroupFilter)
	if !ok || g.kind != kindAnd {
		return false
	}
	for _, c := range g.children {
		if _, ok := c.(*TermFilter); !ok {
			return false
		}
	}
	return true
}

func isDisjunctionOfTerms(f RowFilter) bool {
	if _, ok := f.(*TermFilter); ok {
		return true
	}
	g, ok := f.(*GroupFilter)
	if !ok || g.kind != kindOr {
		return false
	}
	for _, c := range g.children {
		if _, ok := c.(*TermFilter); !ok {
			return false
		}
	}
	return true
}
