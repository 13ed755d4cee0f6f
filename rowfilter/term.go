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

// termKind tags which of the four TermFilter variants (§3.1) a node is.
type termKind int8

const (
	kindColumnToArg termKind = iota
	kindColumnToColumn
	kindColumnToConstant
	kindExpr
)

// TermFilter is a leaf predicate: ColumnToArgFilter, ColumnToColumnFilter,
// ColumnToConstantFilter, or ExprFilter (§3.1, §4.1). The four variants share
// one struct, tagged by kind, rather than four separate types implementing a
// common interface with near-identical plumbing; accessors below reject
// calls that don't apply to the term's kind.
type TermFilter struct {
	s    *slots
	kind termKind
	op   Op

	column  string // ColumnToArg, ColumnToColumn (left), ColumnToConstant
	column2 string // ColumnToColumn (right)
	argNum  int    // ColumnToArg

	constant interface{} // ColumnToConstant
	expr     Expr        // ExprFilter

	hash      uint64
	matchHash uint64
}

var _ RowFilter = (*TermFilter)(nil)

// NewColumnToArg builds `column op ?argNum` (e.g. `a == ?1`).
func NewColumnToArg(column string, op Op, argNum int) *TermFilter {
	t := &TermFilter{s: new(slots), kind: kindColumnToArg, column: column, op: op, argNum: argNum}
	t.init()
	return t
}

// NewColumnToColumn builds `left op right`. op must not be In/NotIn.
func NewColumnToColumn(left string, op Op, right string) *TermFilter {
	if !op.ColumnToColumnValid() {
		panic(invariantf("operator %s is not valid between two columns", op))
	}
	t := &TermFilter{s: new(slots), kind: kindColumnToColumn, column: left, op: op, column2: right}
	t.init()
	return t
}

// NewColumnToConstant builds `column op constant`.
func NewColumnToConstant(column string, op Op, constant interface{}) *TermFilter {
	t := &TermFilter{s: new(slots), kind: kindColumnToConstant, column: column, op: op, constant: constant}
	t.init()
	return t
}

// NewExpr wraps an opaque, unanalyzable expression.
func NewExpr(expr Expr) *TermFilter {
	t := &TermFilter{s: new(slots), kind: kindExpr, expr: expr}
	t.init()
	return t
}

func (t *TermFilter) init() {
	t.hash = t.computeHash()
	t.matchHash = t.computeMatchHash()
}

func (t *TermFilter) computeHash() uint64 {
	switch t.kind {
	case kindColumnToArg:
		return combineOrdered(hashValue(t.kind), hashValue(t.column), hashValue(t.op), hashValue(t.argNum))
	case kindColumnToColumn:
		return combineOrdered(hashValue(t.kind), hashValue(t.column), hashValue(t.op), hashValue(t.column2))
	case kindColumnToConstant:
		return combineOrdered(hashValue(t.kind), hashValue(t.column), hashValue(t.op), hashValue(t.constant))
	case kindExpr:
		return combineOrdered(hashValue(t.kind), hashValue(t.expr.String()))
	default:
		return 0
	}
}

func (t *TermFilter) computeMatchHash() uint64 {
	if t.kind == kindExpr {
		// Unanalyzable: no polarity-insensitive structure to exploit.
		// Fold in the raw ordinary hash so two equal ExprFilters still
		// match, and no two different ones accidentally collide with
		// a comparable term.
		return combineCommutative(hashValue(kindExpr), t.hash)
	}
	opPair := hashValue(opPairID(t.op))
	switch t.kind {
	case kindColumnToArg:
		return combineOrdered(hashValue(kindColumnToArg), hashValue(t.column), opPair, hashValue(t.argNum))
	case kindColumnToColumn:
		return combineOrdered(hashValue(kindColumnToColumn), hashValue(t.column), opPair, hashValue(t.column2))
	case kindColumnToConstant:
		return combineOrdered(hashValue(kindColumnToConstant), hashValue(t.column), opPair, hashValue(t.constant))
	default:
		return 0
	}
}

// Column returns the primary (left) column name, or "" for ExprFilter.
func (t *TermFilter) Column() string { return t.column }

// Column2 returns the right-hand column name for a ColumnToColumnFilter, or
// "" otherwise.
func (t *TermFilter) Column2() string { return t.column2 }

// Op returns the term's operator.
func (t *TermFilter) Op() Op { return t.op }

// ArgNum returns the bind-argument index for a ColumnToArgFilter.
func (t *TermFilter) ArgNum() int { return t.argNum }

// Constant returns the literal value for a ColumnToConstantFilter.
func (t *TermFilter) Constant() interface{} { return t.constant }

// IsColumnToArg reports whether this term is a ColumnToArgFilter.
func (t *TermFilter) IsColumnToArg() bool { return t.kind == kindColumnToArg }

// IsColumnToColumn reports whether this term is a ColumnToColumnFilter.
func (t *TermFilter) IsColumnToColumn() bool { return t.kind == kindColumnToColumn }

// IsColumnToConstant reports whether this term is a ColumnToConstantFilter.
func (t *TermFilter) IsColumnToConstant() bool { return t.kind == kindColumnToConstant }

// IsExpr reports whether this term is an ExprFilter.
func (t *TermFilter) IsExpr() bool { return t.kind == kindExpr }

// columns returns every column name this term references, for Retain/Split.
func (t *TermFilter) columns() []string {
	switch t.kind {
	case kindColumnToArg, kindColumnToConstant:
		return []string{t.column}
	case kindColumnToColumn:
		return []string{t.column, t.column2}
	default:
		return nil
	}
}

// Not flips the operator per the §4.1/§6.3 table. ExprFilter is opaque to
// this algebra and has no operator to flip, so Not panics with an
// ErrInvariantViolation for it rather than return a wrong term. Group Not
// negates each child in turn, so negating a group that contains an
// ExprFilter panics the same way.
func (t *TermFilter) Not() RowFilter {
	switch t.kind {
	case kindColumnToArg:
		return NewColumnToArg(t.column, t.op.Flip(), t.argNum)
	case kindColumnToColumn:
		return NewColumnToColumn(t.column, t.op.Flip(), t.column2)
	case kindColumnToConstant:
		return NewColumnToConstant(t.column, t.op.Flip(), t.constant)
	default:
		panic(invariantf("ExprFilter cannot be negated by the algebra alone"))
	}
}

// Equals implements structural (field-wise) equality (§3.2 invariant 4).
func (t *TermFilter) Equals(other RowFilter) bool {
	o, ok := other.(*TermFilter)
	if !ok || o.kind != t.kind || t.hash != o.hash {
		return false
	}
	switch t.kind {
	case kindColumnToArg:
		return t.column == o.column && t.op == o.op && t.argNum == o.argNum
	case kindColumnToColumn:
		return t.column == o.column && t.op == o.op && t.column2 == o.column2
	case kindColumnToConstant:
		return t.column == o.column && t.op == o.op && constantsEqual(t.constant, o.constant)
	case kindExpr:
		return t.expr.Equals(o.expr)
	default:
		return false
	}
}

// IsMatch reports +1 if other equals this term, -1 if other equals this
// term's De Morgan negation, 0 otherwise (§4.1).
func (t *TermFilter) IsMatch(other RowFilter) int {
	if t.Equals(other) {
		return 1
	}
	if t.kind == kindExpr {
		return 0
	}
	if neg, ok := safeNot(t).(*TermFilter); ok && neg.Equals(other) {
		return -1
	}
	return 0
}

func safeNot(f RowFilter) (r RowFilter) {
	defer func() {
		if recover() != nil {
			r = nil
		}
	}()
	return f.Not()
}

// UniqueColumn reports whether this term pins the named column to a single
// value: a ColumnToArgFilter or ColumnToConstantFilter with operator ==.
func (t *TermFilter) UniqueColumn(name string) bool {
	if t.op != OpEQ {
		return false
	}
	switch t.kind {
	case kindColumnToArg, kindColumnToConstant:
		return t.column == name
	default:
		return false
	}
}

// Retain implements §4.4 for a leaf term.
func (t *TermFilter) Retain(predicate ColumnPredicate, strict bool, undecided RowFilter) RowFilter {
	for _, c := range t.columns() {
		if !predicate(c) {
			if strict {
				return FalseFilter
			}
			return undecided
		}
	}
	if t.kind == kindExpr {
		return undecided
	}
	return t
}

// Split implements §4.4 for a leaf term: either the whole term goes to the
// "retained" half (check returns non-nil) or to the residual half.
func (t *TermFilter) Split(check SplitCheck) (RowFilter, RowFilter) {
	if r := check(t); r != nil {
		return r, TrueFilter
	}
	return TrueFilter, t
}

// Hash returns the ordinary structural hash (§3.1).
func (t *TermFilter) Hash() uint64 { return t.hash }

// MatchHash returns the polarity-insensitive match hash (§4.3).
func (t *TermFilter) MatchHash() uint64 { return t.matchHash }

// Reduce is the identity for a leaf term: there is nothing below it to
// absorb or deduplicate.
func (t *TermFilter) Reduce() RowFilter { return t }

// Sort is the identity for a leaf term.
func (t *TermFilter) Sort() RowFilter { return t }

// DNF is the identity for a leaf term: a single term is trivially already a
// one-term disjunction of one-term conjunctions.
func (t *TermFilter) DNF(limit int) RowFilter { return t }

// CNF is the identity for a leaf term, by the dual argument.
func (t *TermFilter) CNF(limit int) RowFilter { return t }

// IsDNF is always true for a leaf term.
func (t *TermFilter) IsDNF() bool { return true }

// IsCNF is always true for a leaf term.
func (t *TermFilter) IsCNF() bool { return true }

func (t *TermFilter) sortKey() (tag int, hash uint64) { return 0, t.hash }

func (t *TermFilter) isRowFilter() {}
