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
	"fmt"
	"strconv"
	"strings"
)

// String renders the §6.1 debug form. ColumnToArgFilter with op !in renders
// as `!(column in ?argNum)` since there is no bare "!in" infix form; every
// other term renders as `column op value`.
func (t *TermFilter) String() string {
	switch t.kind {
	case kindColumnToArg:
		if t.op == OpNotIn {
			return fmt.Sprintf("!(%s in ?%d)", t.column, t.argNum)
		}
		return fmt.Sprintf("%s %s ?%d", t.column, t.op, t.argNum)
	case kindColumnToColumn:
		return fmt.Sprintf("%s %s %s", t.column, t.op, t.column2)
	case kindColumnToConstant:
		return fmt.Sprintf("%s %s %s", t.column, t.op, formatConstant(t.constant))
	case kindExpr:
		return "(" + t.expr.String() + ")"
	default:
		return "<invalid term>"
	}
}

func formatConstant(v interface{}) string {
	switch c := v.(type) {
	case string:
		return strconv.Quote(c)
	case fmt.Stringer:
		return c.String()
	default:
		return fmt.Sprintf("%v", c)
	}
}

// String renders the §6.1 debug form for a group: children joined by ` & `
// (And) or ` | ` (Or). An And child nested directly inside an Or is wrapped
// in parens to disambiguate; the reverse nesting needs no parens since the
// invariant that forbids same-kind nesting means there is never more than
// one level to worry about. TrueFilter renders as `true`, FalseFilter as
// `false`.
func (g *GroupFilter) String() string {
	if g.isEmpty() {
		if g.kind == kindAnd {
			return "true"
		}
		return "false"
	}
	joiner := " & "
	if g.kind == kindOr {
		joiner = " | "
	}
	parts := make([]string, len(g.children))
	for i, c := range g.children {
		parts[i] = renderChild(g.kind, c)
	}
	return strings.Join(parts, joiner)
}

func renderChild(parentKind groupKind, c RowFilter) string {
	cg, ok := c.(*GroupFilter)
	if !ok || cg.isEmpty() {
		return c.String()
	}
	if parentKind == kindOr && cg.kind == kindAnd {
		return "(" + c.String() + ")"
	}
	return c.String()
}
