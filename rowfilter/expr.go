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

// Expr is the opaque expression external collaborator an ExprFilter wraps
// (§3.1). The algebra never inspects it beyond equality and rendering; it is
// built and evaluated entirely outside this package.
type Expr interface {
	// Equals reports whether two Exprs are the same expression. Used by
	// TermFilter.Equals for ExprFilter comparison.
	Equals(other Expr) bool
	// String renders the expression for the debug form (§6.1).
	String() string
}

// ColumnPredicate decides whether a named column belongs to a retained
// subset (§4.4).
type ColumnPredicate func(column string) bool

// SplitCheck decides, for a single term, whether (and how) it belongs to the
// first half of a Split (§4.4). A nil return means the term goes to the
// second half unchanged.
type SplitCheck func(term *TermFilter) RowFilter
