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

// ColumnInfo is the external collaborator (§1, §3.1) describing a key or
// projected column: its name, its wire type, and its ordering direction
// within a multi-column key. The filter algebra never constructs a
// ColumnInfo; it only consumes one by contract.
type ColumnInfo struct {
	Name       string
	Type       ColumnType
	Descending bool
}

// ColumnType enumerates the subset of wire types this algebra cares about:
// whether equality on the type can match more than one on-disk
// representation of "the same" value (§9 open question b).
type ColumnType int16

const (
	TypeUnknown ColumnType = iota
	TypeInt64
	TypeUint64
	TypeFloat64
	TypeVarChar
	TypeText
	TypeDate
	TypeDatetime
	TypeDecimal
	TypeJSON
)

// RangeFuzzy reports whether equality on this column's type may match more
// than one byte-level representation (e.g. "1.0" and "1.00" as DECIMAL), and
// therefore requires the range extractor (§4.5 step 1a) to stop tightening
// the key prefix and leave a residual re-check in place.
func (c ColumnInfo) RangeFuzzy() bool {
	switch c.Type {
	case TypeDecimal, TypeJSON:
		return true
	default:
		return false
	}
}

func (c ColumnInfo) validate() error {
	if c.Name == "" {
		return preconditionf("column info has empty name")
	}
	return nil
}
