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

	"github.com/sirupsen/logrus"

	"github.com/cojen/rowfilter/rowfilter/internal/tracing"
)

// Range is the result of lowering a conjunctive filter onto an ordered key
// prefix (§4.5): a lower-bound conjunction, an upper-bound conjunction, and
// the residual filter still needing a row-by-row re-check after the range
// scan. Any of the three may be nil, meaning "no constraint" / "nothing
// left to check".
type Range struct {
	Low       RowFilter
	High      RowFilter
	Remaining RowFilter

	// Reserved is unused by this implementation; kept as a named field per
	// §9 open question (a) for a future caller (e.g. a cost estimate or a
	// partition hint) rather than widening the return signature later.
	Reserved interface{}
}

// ExtractRange lowers self — expected to be a conjunction of terms, such as
// a single disjunct of a DNF — onto the ordered key prefix keys, per §4.5's
// algorithm: walk the key columns in order, greedily consuming an equality
// or inequality term on each; an inequality or a fuzzy-equality match
// terminates the walk, since neither lets a later key column still narrow
// the scan.
func ExtractRange(ctx context.Context, self RowFilter, keys []ColumnInfo) Range {
	_, finish := tracing.StartSpan(ctx, "rowfilter.ExtractRange")
	defer finish()

	conj := conjuncts(self)
	used := make([]bool, len(conj))

	var lowTerms, highTerms []RowFilter
	termWasEQ, termWasFuzzy := false, false

keyLoop:
	for _, key := range keys {
		if err := key.validate(); err != nil {
			panic(err)
		}

		if eqIdx := findTerm(conj, used, key.Name, func(op Op) bool { return op == OpEQ }); eqIdx >= 0 {
			t := conj[eqIdx].(*TermFilter)
			lowTerms = append(lowTerms, t)
			highTerms = append(highTerms, t)
			termWasEQ = true
			termWasFuzzy = key.RangeFuzzy()
			if termWasFuzzy {
				// Left unused so it stays in Remaining for the re-check.
				logrus.WithField("column", key.Name).Debug("fuzzy equality column stops range key traversal")
				break keyLoop
			}
			used[eqIdx] = true
			continue keyLoop
		}

		isLow := func(op Op) bool { return op == OpGT || op == OpGE }
		isHigh := func(op Op) bool { return op == OpLT || op == OpLE }

		lowIdx := findTerm(conj, used, key.Name, isLow)
		highIdx := findTerm(conj, used, key.Name, isHigh)
		if lowIdx < 0 && highIdx < 0 {
			break keyLoop
		}

		if lowIdx >= 0 {
			t := conj[lowIdx].(*TermFilter)
			used[lowIdx] = true
			if key.Descending {
				highTerms = append(highTerms, NewColumnToConstant(t.column, reverseDirection(t.op), t.constant))
			} else {
				lowTerms = append(lowTerms, t)
			}
		}
		if highIdx >= 0 {
			t := conj[highIdx].(*TermFilter)
			used[highIdx] = true
			if key.Descending {
				lowTerms = append(lowTerms, NewColumnToConstant(t.column, reverseDirection(t.op), t.constant))
			} else {
				highTerms = append(highTerms, t)
			}
		}
		termWasEQ = false
		break keyLoop
	}

	if termWasEQ && !termWasFuzzy {
		closeTerminal(lowTerms, OpGE)
		closeTerminal(highTerms, OpLE)
	}

	anyUsed := false
	for _, u := range used {
		if u {
			anyUsed = true
			break
		}
	}

	var remaining RowFilter
	if !anyUsed {
		if self != TrueFilter {
			remaining = self
		}
	} else {
		var rest []RowFilter
		for i, c := range conj {
			if !used[i] {
				rest = append(rest, c)
			}
		}
		remaining = buildConjunction(rest)
	}

	return Range{
		Low:       buildConjunction(lowTerms),
		High:      buildConjunction(highTerms),
		Remaining: remaining,
	}
}

// conjuncts splits self into its top-level And operands: self itself if it
// is not an And, self's children if it is, none if self is TrueFilter.
func conjuncts(self RowFilter) []RowFilter {
	g, ok := self.(*GroupFilter)
	if !ok {
		return []RowFilter{self}
	}
	if g.kind != kindAnd {
		return []RowFilter{self}
	}
	if g.isEmpty() {
		return nil
	}
	return append([]RowFilter(nil), g.children...)
}

// reverseDirection maps a term matched on a descending key column onto the
// opposite bound: a descending column's ">"/">=" term narrows the row order
// the same way a "<"/"<=" term would on an ascending one, so it becomes the
// high bound with its relation reversed (not negated — strictness carries
// through unchanged, unlike Op.Flip's De Morgan negation).
var reverseDirectionTable = [8]Op{
	OpGT: OpLT,
	OpGE: OpLE,
	OpLT: OpGT,
	OpLE: OpGE,
}

func reverseDirection(o Op) Op {
	return reverseDirectionTable[o]
}

func findTerm(conj []RowFilter, used []bool, column string, match func(Op) bool) int {
	for i, c := range conj {
		if used[i] {
			continue
		}
		t, ok := c.(*TermFilter)
		if !ok || !t.IsColumnToConstant() || t.column != column {
			continue
		}
		if match(t.op) {
			return i
		}
	}
	return -1
}

// closeTerminal rewrites the last element of terms — known to be an
// equality term — to op (>= for low, <= for high), making the endpoint
// inclusive per §4.5 step 2.
func closeTerminal(terms []RowFilter, op Op) {
	if len(terms) == 0 {
		return
	}
	last := terms[len(terms)-1].(*TermFilter)
	terms[len(terms)-1] = NewColumnToConstant(last.column, op, last.constant)
}

func buildConjunction(terms []RowFilter) RowFilter {
	if len(terms) == 0 {
		return nil
	}
	f := And(terms...)
	if f == TrueFilter {
		return nil
	}
	return f
}
