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

import "github.com/mitchellh/hashstructure"

// hashValue hashes an arbitrary constant/arg value (int, string, float,
// []interface{} for "in" lists, ...) for use as a component of a term's
// ordinary or match hash. hashstructure walks arbitrary Go values, which a
// hand-rolled switch over constant kinds would have to duplicate anyway.
func hashValue(v interface{}) uint64 {
	h, err := hashstructure.Hash(v, nil)
	if err != nil {
		// Unhashable constant (e.g. a func); fall back to a fixed
		// component rather than failing a pure, total operation.
		return 0x9e3779b97f4a7c15
	}
	return h
}

// combineOrdered folds hash components together order-sensitively (used for
// the ordinary hash of a term's fields, and for a group's ordinary hash,
// which must equal the array-hash of its children in order per §3.2
// invariant 3).
func combineOrdered(parts ...uint64) uint64 {
	h := uint64(14695981039346656037) // fnv offset basis
	for _, p := range parts {
		h ^= p
		h *= 1099511628211 // fnv prime
	}
	return h
}

// combineCommutative folds match-hash components together order- and
// kind-insensitively: XOR is commutative and associative, so children
// contribute to a group's match hash regardless of position, and an And and
// an Or with the same (mixed) children hash identically once the
// kind-agnostic tag is folded in (§4.3).
func combineCommutative(parts ...uint64) uint64 {
	var h uint64
	for _, p := range parts {
		// Mix each part before XORing to spread its bits. Mixing is
		// deterministic, so two equal parts still cancel each other.
		h ^= mix64(p)
	}
	return h
}

func mix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

// groupKindTag is XORed into a group's match hash regardless of whether it
// is an And or an Or, which is precisely what makes an And and its De
// Morgan dual Or hash identically (§4.3, §8 scenario: isMatch against the
// De Morgan inverse).
const groupKindTag uint64 = 0xa5a5a5a5a5a5a5a5

// opPairID returns a number shared by an operator and its Flip, so that a
// term's match hash is identical to its negation's (§3.2 invariant 5).
func opPairID(o Op) uint64 {
	switch o {
	case OpEQ, OpNE:
		return 0
	case OpLT, OpGE:
		return 1
	case OpGT, OpLE:
		return 2
	case OpIn, OpNotIn:
		return 3
	default:
		return 4
	}
}
