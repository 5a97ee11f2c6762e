// Copyright 2023 Vexec Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package types

import (
	"fmt"
)

// T is the physical type tag of a column.
type T uint8

const (
	// T_any matches any type; a scalar NULL literal carries it before the
	// planner pins a concrete type.
	T_any T = iota

	T_bool

	// numeric
	T_int8
	T_int16
	T_int32
	T_int64
	T_uint8
	T_uint16
	T_uint32
	T_uint64
	T_float32
	T_float64

	// temporal instants
	T_date
	T_datetime
	T_time
	T_timestamp

	// variable length
	T_char
	T_varchar
	T_text
	T_blob
	T_json

	// T_tuple is a nested row literal; it never backs a stored column.
	T_tuple
)

// Type describes a column type: the physical tag plus display metadata.
type Type struct {
	Oid   T
	Size  int32
	Width int32
	Scale int32
}

// New builds a Type with the default size for the oid.
func New(oid T, width, scale int32) Type {
	return Type{Oid: oid, Size: int32(oid.TypeLen()), Width: width, Scale: scale}
}

func (t T) ToType() Type {
	return New(t, 0, 0)
}

// TypeLen is the byte width of a fixed-size value, 24 (slice header) for
// variable length types.
func (t T) TypeLen() int {
	switch t {
	case T_bool, T_int8, T_uint8:
		return 1
	case T_int16, T_uint16:
		return 2
	case T_int32, T_uint32, T_float32, T_date:
		return 4
	case T_int64, T_uint64, T_float64, T_datetime, T_time, T_timestamp:
		return 8
	case T_char, T_varchar, T_text, T_blob, T_json, T_tuple:
		return 24
	case T_any:
		return 0
	}
	panic(fmt.Sprintf("unknown type %d", t))
}

func (t Type) TypeSize() int {
	return int(t.Size)
}

func (t Type) IsFixedLen() bool {
	return t.Oid.FixedLength() >= 0
}

func (t T) FixedLength() int {
	switch t {
	case T_char, T_varchar, T_text, T_blob, T_json, T_tuple:
		return -1
	}
	return t.TypeLen()
}

func (t T) IsSignedInt() bool {
	switch t {
	case T_int8, T_int16, T_int32, T_int64:
		return true
	}
	return false
}

func (t T) IsUnsignedInt() bool {
	switch t {
	case T_uint8, T_uint16, T_uint32, T_uint64:
		return true
	}
	return false
}

func (t T) IsInteger() bool {
	return t.IsSignedInt() || t.IsUnsignedInt()
}

func (t T) IsFloat() bool {
	return t == T_float32 || t == T_float64
}

func (t T) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat()
}

// IsTemporal reports whether t is a temporal instant type.
func (t T) IsTemporal() bool {
	switch t {
	case T_date, T_datetime, T_time, T_timestamp:
		return true
	}
	return false
}

// IsPhysicalNumeric reports whether a column of this type may enter a
// comparison kernel: plain numerics plus temporal instants, whose physical
// representation is an integer tick count.
func (t T) IsPhysicalNumeric() bool {
	return t.IsNumeric() || t.IsTemporal()
}

func (t T) IsVarlen() bool {
	return t.FixedLength() < 0
}

func (t T) String() string {
	switch t {
	case T_any:
		return "any"
	case T_bool:
		return "bool"
	case T_int8:
		return "int8"
	case T_int16:
		return "int16"
	case T_int32:
		return "int32"
	case T_int64:
		return "int64"
	case T_uint8:
		return "uint8"
	case T_uint16:
		return "uint16"
	case T_uint32:
		return "uint32"
	case T_uint64:
		return "uint64"
	case T_float32:
		return "float32"
	case T_float64:
		return "float64"
	case T_date:
		return "date"
	case T_datetime:
		return "datetime"
	case T_time:
		return "time"
	case T_timestamp:
		return "timestamp"
	case T_char:
		return "char"
	case T_varchar:
		return "varchar"
	case T_text:
		return "text"
	case T_blob:
		return "blob"
	case T_json:
		return "json"
	case T_tuple:
		return "tuple"
	}
	return fmt.Sprintf("unknown type %d", uint8(t))
}

func (t Type) String() string {
	return t.Oid.String()
}

// FixedSizeT is the set of value types a fixed-size vector can hold.
type FixedSizeT interface {
	bool | Ints | UInts | Floats | Date | Datetime | Time | Timestamp
}

type Ints interface {
	int8 | int16 | int32 | int64
}

type UInts interface {
	uint8 | uint16 | uint32 | uint64
}

type Floats interface {
	float32 | float64
}

// OrderedT is the subset of FixedSizeT that a comparison kernel can be
// instantiated over.
type OrderedT interface {
	Ints | UInts | Floats | Date | Datetime | Time | Timestamp
}
