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

import uuid "github.com/satori/go.uuid"

// Session is a planner-session handle (spec.md §3.3: "a planner session
// holds a root reference"): an identity plus the root filter a planning
// pass is currently working against. The algebra itself owns no I/O to
// release; Release only drops the reference so the tree can be collected
// promptly once the session ends.
type Session struct {
	ID   uuid.UUID
	root RowFilter
}

// NewSession starts a session rooted at root. root must not be nil.
func NewSession(root RowFilter) *Session {
	if root == nil {
		panic(preconditionf("session root filter must not be nil"))
	}
	id, err := uuid.NewV4()
	if err != nil {
		panic(invariantf("generating session id: %v", err))
	}
	return &Session{ID: id, root: root}
}

// Root returns the session's current root filter, or nil if the session has
// been released.
func (s *Session) Root() RowFilter { return s.root }

// Rebind replaces the session's root filter, e.g. after Reduce/DNF/CNF
// produces a new canonical form. root must not be nil.
func (s *Session) Rebind(root RowFilter) {
	if root == nil {
		panic(preconditionf("session root filter must not be nil"))
	}
	s.root = root
}

// Release drops the session's filter reference.
func (s *Session) Release() {
	s.root = nil
}
