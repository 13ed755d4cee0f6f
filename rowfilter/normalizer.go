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
	"sync/atomic"

	pkgerrors "github.com/pkg/errors"

	"github.com/cojen/rowfilter/rowfilter/internal/tracing"
)

// Stats counts cheap visibility counters into canonicalization cost: no
// metrics backend wired up, just plain fields a caller can read after a
// planning pass.
type Stats struct {
	Reduced         int64
	DNFExpansions   int64
	CNFExpansions   int64
	LimitAborts     int64
	RangesExtracted int64
}

// Normalizer bundles the expansion Limits with Stats counters and
// opentracing spans around the cost-bounded operations (§4.2, §4.5). Reduce
// isn't spanned; DNF, CNF, and ExtractRange are.
type Normalizer struct {
	Limits Limits
	stats  Stats
}

// NewNormalizer builds a Normalizer with the given Limits.
func NewNormalizer(limits Limits) *Normalizer {
	return &Normalizer{Limits: limits}
}

// Stats returns a snapshot of the counters accumulated so far.
func (n *Normalizer) Stats() Stats {
	return Stats{
		Reduced:         atomic.LoadInt64(&n.stats.Reduced),
		DNFExpansions:   atomic.LoadInt64(&n.stats.DNFExpansions),
		CNFExpansions:   atomic.LoadInt64(&n.stats.CNFExpansions),
		LimitAborts:     atomic.LoadInt64(&n.stats.LimitAborts),
		RangesExtracted: atomic.LoadInt64(&n.stats.RangesExtracted),
	}
}

// Reduce canonicalizes f and records a Stats counter.
func (n *Normalizer) Reduce(f RowFilter) RowFilter {
	atomic.AddInt64(&n.stats.Reduced, 1)
	return f.Reduce()
}

// DNF computes f's disjunctive normal form under the Normalizer's configured
// limit, spanning the call and counting a limit-abort if expansion did not
// finish.
func (n *Normalizer) DNF(ctx context.Context, f RowFilter) RowFilter {
	_, finish := tracing.StartSpan(ctx, "rowfilter.Normalizer.DNF")
	defer finish()
	atomic.AddInt64(&n.stats.DNFExpansions, 1)
	result := f.DNF(n.Limits.DNF)
	if !result.IsDNF() {
		atomic.AddInt64(&n.stats.LimitAborts, 1)
	}
	return result
}

// CNF is DNF's dual.
func (n *Normalizer) CNF(ctx context.Context, f RowFilter) RowFilter {
	_, finish := tracing.StartSpan(ctx, "rowfilter.Normalizer.CNF")
	defer finish()
	atomic.AddInt64(&n.stats.CNFExpansions, 1)
	result := f.CNF(n.Limits.CNF)
	if !result.IsCNF() {
		atomic.AddInt64(&n.stats.LimitAborts, 1)
	}
	return result
}

// ExtractRange lowers f onto keys, spanning and counting the call. A
// construction-invariant panic raised deep in the algebra (a programmer bug,
// not a data problem) is recovered here and returned as a wrapped error with
// call-site context instead of crashing the caller.
func (n *Normalizer) ExtractRange(ctx context.Context, f RowFilter, keys []ColumnInfo) (r Range, err error) {
	defer func() {
		if p := recover(); p != nil {
			pErr, ok := p.(error)
			if !ok {
				pErr = invariantf("%v", p)
			}
			err = pkgerrors.Wrap(pErr, "rowfilter: range extraction")
		}
	}()
	atomic.AddInt64(&n.stats.RangesExtracted, 1)
	return ExtractRange(ctx, f, keys), nil
}
