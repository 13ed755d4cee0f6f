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

	goerrors "gopkg.in/src-d/go-errors.v1"
)

// ErrInvariantViolation is raised when a caller attempts to construct a
// filter that would break a structural invariant (§3.2), such as nesting an
// And directly inside another And. These are programmer errors: the
// constructor rejects them at construction time rather than letting a bad
// tree escape into the planner.
var ErrInvariantViolation = goerrors.NewKind("row filter invariant violation: %s")

// ErrPrecondition is raised by external-collaborator boundary checks: a nil
// filter handed to QuerySpec, a malformed ColumnInfo, a MatchSet built from
// duplicate members. These are not recoverable mid-algebra; they signal a
// caller bug before any filter work begins.
var ErrPrecondition = goerrors.NewKind("row filter precondition failed: %s")

func invariantf(format string, args ...interface{}) error {
	return ErrInvariantViolation.New(fmt.Sprintf(format, args...))
}

func preconditionf(format string, args ...interface{}) error {
	return ErrPrecondition.New(fmt.Sprintf(format, args...))
}
