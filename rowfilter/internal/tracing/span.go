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

// Package tracing wraps opentracing-go span creation for the two
// cost-bounded operations in the algebra (DNF/CNF distribution and range
// extraction) that a planner operator would want visible in a trace.
package tracing

import (
	"context"

	opentracing "github.com/opentracing/opentracing-go"
)

// StartSpan starts a child span named operation, nesting under whatever span
// ctx already carries, and returns the (possibly new) context to propagate
// plus a Finish function the caller must defer.
func StartSpan(ctx context.Context, operation string) (context.Context, func()) {
	span, spanCtx := opentracing.StartSpanFromContext(ctx, operation)
	return spanCtx, span.Finish
}
