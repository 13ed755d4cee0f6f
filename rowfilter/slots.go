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

import "sync/atomic"

// Per-node memoization flag bits (§4.7). Each pair (xSet, isX) tracks one
// cached boolean property; xSet is written exactly once alongside isX.
const (
	flagDNFSet uint32 = 1 << iota
	flagIsDNF
	flagCNFSet
	flagIsCNF
)

// slots holds the one-shot memoization cells every RowFilter node carries
// (§3.2 invariant 6, §4.7): reduced/sorted/dnf/cnf transition null -> value
// exactly once and are never mutated again. Concurrent writers race
// benignly: whichever goroutine's CompareAndSwap wins, every writer computed
// the same value, so a loser simply discards its own result and reads the
// winner's.
type slots struct {
	reduced atomic.Pointer[RowFilter]
	sorted  atomic.Pointer[RowFilter]
	dnf     atomic.Pointer[RowFilter]
	cnf     atomic.Pointer[RowFilter]
	flags   atomic.Uint32
}

// publishOnce installs v into cell if it is still empty, and returns
// whichever value ends up published: v if this call won the race, or the
// prior winner's value otherwise.
func publishOnce(cell *atomic.Pointer[RowFilter], v RowFilter) RowFilter {
	if cell.CompareAndSwap(nil, &v) {
		return v
	}
	return *cell.Load()
}

func loadOnce(cell *atomic.Pointer[RowFilter]) (RowFilter, bool) {
	p := cell.Load()
	if p == nil {
		return nil, false
	}
	return *p, true
}

func (s *slots) setFlag(setBit, valBit uint32, val bool) bool {
	for {
		old := s.flags.Load()
		if old&setBit != 0 {
			return old&valBit != 0
		}
		next := old | setBit
		if val {
			next |= valBit
		}
		if s.flags.CompareAndSwap(old, next) {
			return val
		}
	}
}

func (s *slots) getFlag(setBit, valBit uint32) (set, val bool) {
	f := s.flags.Load()
	return f&setBit != 0, f&valBit != 0
}
