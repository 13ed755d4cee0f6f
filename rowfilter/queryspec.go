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

import "strings"

// ProjectedColumn is one column of a Projection, optionally aliased.
type ProjectedColumn struct {
	Alias  string
	Column string
}

// Projection is the set of columns a query returns. A nil Projection means
// "all columns" (select *).
type Projection struct {
	Columns []ProjectedColumn
}

func (p *Projection) equals(other *Projection) bool {
	if p == nil || other == nil {
		return p == other
	}
	if len(p.Columns) != len(other.Columns) {
		return false
	}
	for i := range p.Columns {
		if p.Columns[i] != other.Columns[i] {
			return false
		}
	}
	return true
}

// OrderByColumn is one sort key of an OrderBy.
type OrderByColumn struct {
	Column     string
	Descending bool
}

// OrderBy is an ordered list of sort keys. A nil OrderBy means "unordered".
type OrderBy struct {
	Columns []OrderByColumn
}

func (ob *OrderBy) equals(other *OrderBy) bool {
	if ob == nil || other == nil {
		return ob == other
	}
	if len(ob.Columns) != len(other.Columns) {
		return false
	}
	for i := range ob.Columns {
		if ob.Columns[i] != other.Columns[i] {
			return false
		}
	}
	return true
}

// QuerySpec bundles a projection, an order-by, and a filter (§4.6): the
// envelope a planner hands to the executor. Filter is never absent.
type QuerySpec struct {
	Projection *Projection
	OrderBy    *OrderBy
	Filter     RowFilter
}

// NewQuerySpec builds a full-scan QuerySpec over filter: no projection, no
// order-by. filter must not be nil.
func NewQuerySpec(filter RowFilter) *QuerySpec {
	if filter == nil {
		panic(preconditionf("QuerySpec filter must not be nil"))
	}
	return &QuerySpec{Filter: filter}
}

// WithProjection returns a copy of q with Projection replaced by p, or q
// itself if p already equals the current projection.
func (q *QuerySpec) WithProjection(p *Projection) *QuerySpec {
	if q.Projection.equals(p) {
		return q
	}
	next := *q
	next.Projection = p
	return &next
}

// WithOrderBy returns a copy of q with OrderBy replaced by ob, expanding the
// projection to cover any order-by column it doesn't already list (§4.6). A
// nil projection, meaning "all columns", is left nil: it already covers
// everything.
func (q *QuerySpec) WithOrderBy(ob *OrderBy) *QuerySpec {
	if q.OrderBy.equals(ob) {
		return q
	}
	next := *q
	next.OrderBy = ob
	next.Projection = expandProjection(next.Projection, ob)
	return &next
}

// WithFilter returns a copy of q with Filter replaced by f, or q itself if f
// is equivalent to the current filter. f must not be nil.
func (q *QuerySpec) WithFilter(f RowFilter) *QuerySpec {
	if f == nil {
		panic(preconditionf("QuerySpec filter must not be nil"))
	}
	if q.Filter.Equals(f) {
		return q
	}
	next := *q
	next.Filter = f
	return &next
}

func expandProjection(proj *Projection, ob *OrderBy) *Projection {
	if proj == nil || ob == nil {
		return proj
	}
	covered := make(map[string]bool, len(proj.Columns))
	for _, c := range proj.Columns {
		covered[c.Column] = true
	}
	var extra []ProjectedColumn
	for _, c := range ob.Columns {
		if covered[c.Column] {
			continue
		}
		covered[c.Column] = true
		extra = append(extra, ProjectedColumn{Column: c.Column})
	}
	if len(extra) == 0 {
		return proj
	}
	merged := append(append([]ProjectedColumn{}, proj.Columns...), extra...)
	return &Projection{Columns: merged}
}

// IsFullScan reports whether q has no projection, no order-by, and an
// unconditional filter.
func (q *QuerySpec) IsFullScan() bool {
	return q.Projection == nil && q.OrderBy == nil && q.Filter == TrueFilter
}

// PrimaryKey returns the column names that together identify the row order
// and shape of q's result: order-by columns first (in sort order), then any
// remaining projected columns, each name appearing at most once.
func (q *QuerySpec) PrimaryKey() []string {
	seen := map[string]bool{}
	var out []string
	if q.OrderBy != nil {
		for _, c := range q.OrderBy.Columns {
			if seen[c.Column] {
				continue
			}
			seen[c.Column] = true
			out = append(out, c.Column)
		}
	}
	if q.Projection != nil {
		for _, c := range q.Projection.Columns {
			if seen[c.Column] {
				continue
			}
			seen[c.Column] = true
			out = append(out, c.Column)
		}
	}
	return out
}

// String renders the §6.2 debug form: `{proj-or-*} <filter-text>`, with
// order-by columns decorated `+col`/`-col` and interleaved ahead of the
// remaining projected columns.
func (q *QuerySpec) String() string {
	if q.IsFullScan() {
		return "{*}"
	}
	return q.projString() + " " + q.Filter.String()
}

func (q *QuerySpec) projString() string {
	seen := map[string]bool{}
	var parts []string
	if q.OrderBy != nil {
		for _, c := range q.OrderBy.Columns {
			if seen[c.Column] {
				continue
			}
			seen[c.Column] = true
			sign := "+"
			if c.Descending {
				sign = "-"
			}
			parts = append(parts, sign+c.Column)
		}
	}
	if q.Projection != nil {
		for _, c := range q.Projection.Columns {
			if seen[c.Column] {
				continue
			}
			seen[c.Column] = true
			if c.Alias != "" && c.Alias != c.Column {
				parts = append(parts, c.Alias+":"+c.Column)
			} else {
				parts = append(parts, c.Column)
			}
		}
	}
	if len(parts) == 0 {
		return "{*}"
	}
	return "{" + strings.Join(parts, ",") + "}"
}
