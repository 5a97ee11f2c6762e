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

package vector

import (
	"fmt"
	"unsafe"

	"github.com/vexecdb/vexec/pkg/common/mpool"
	"github.com/vexecdb/vexec/pkg/common/vxerr"
	"github.com/vexecdb/vexec/pkg/container/nulls"
	"github.com/vexecdb/vexec/pkg/container/types"
)

const (
	// FLAT is an uncompressed vector holding one value per row.
	FLAT = iota
	// CONSTANT holds a single value (or NULL) broadcast over its length;
	// it is how a scalar operand enters a kernel.
	CONSTANT
)

// Vector represents a column.  Once handed to a kernel a vector is treated
// as immutable; operators allocate fresh vectors for their results.
type Vector struct {
	class int
	typ   types.Type
	nsp   *nulls.Nulls

	// data backs the fixed-size elements; col is the typed view over it.
	// varlen vectors keep their payloads in col directly as [][]byte.
	col  any
	data []byte

	capacity int
	length   int
}

func NewVec(typ types.Type) *Vector {
	vec := &Vector{
		typ:   typ,
		class: FLAT,
		nsp:   &nulls.Nulls{},
	}
	if typ.Oid.IsVarlen() {
		vec.col = [][]byte{}
	}
	return vec
}

func NewConstNull(typ types.Type, length int) *Vector {
	vec := &Vector{
		typ:   typ,
		class: CONSTANT,
		nsp:   &nulls.Nulls{},
	}
	nulls.Add(vec.nsp, 0)
	vec.length = length
	return vec
}

func NewConstFixed[T types.FixedSizeT](typ types.Type, val T, length int, mp *mpool.MPool) (*Vector, error) {
	vec := &Vector{
		typ:   typ,
		class: CONSTANT,
		nsp:   &nulls.Nulls{},
	}
	if err := extend(vec, 1, mp); err != nil {
		return nil, err
	}
	col := vec.col.([]T)
	col[0] = val
	vec.length = length
	return vec, nil
}

func NewConstBytes(typ types.Type, val []byte, length int, mp *mpool.MPool) (*Vector, error) {
	vec := &Vector{
		typ:   typ,
		class: CONSTANT,
		nsp:   &nulls.Nulls{},
		col:   [][]byte{},
	}
	if err := appendOneBytes(vec, val, false, mp); err != nil {
		return nil, err
	}
	vec.length = length
	return vec, nil
}

func (v *Vector) Length() int {
	return v.length
}

func (v *Vector) SetLength(n int) {
	v.length = n
}

func (v *Vector) Capacity() int {
	return v.capacity
}

func (v *Vector) GetType() *types.Type {
	return &v.typ
}

func (v *Vector) SetType(typ types.Type) {
	v.typ = typ
}

func (v *Vector) GetNulls() *nulls.Nulls {
	return v.nsp
}

func (v *Vector) SetNulls(nsp *nulls.Nulls) {
	v.nsp = nsp
}

func (v *Vector) IsConst() bool {
	return v.class == CONSTANT
}

// IsConstNull returns true if the vector is a scalar NULL.
func (v *Vector) IsConstNull() bool {
	return v.IsConst() && nulls.Contains(v.nsp, 0)
}

func (v *Vector) SetClass(class int) {
	v.class = class
}

// MustFixedCol returns the typed view over the vector's storage.  A
// CONSTANT vector exposes its single slot.
func MustFixedCol[T types.FixedSizeT](v *Vector) []T {
	if v.col == nil {
		return nil
	}
	cols := v.col.([]T)
	if v.IsConst() {
		if len(cols) == 0 {
			return nil
		}
		return cols[:1]
	}
	return cols[:v.length]
}

func MustBytesCol(v *Vector) [][]byte {
	return v.col.([][]byte)
}

// GetFixedAt reads one value; idx is folded to 0 for constants.
func GetFixedAt[T types.FixedSizeT](v *Vector, idx int) T {
	if v.IsConst() {
		idx = 0
	}
	return v.col.([]T)[idx]
}

// PreExtend reserves capacity for rows more rows.
func (v *Vector) PreExtend(rows int, mp *mpool.MPool) error {
	if v.class == CONSTANT {
		return nil
	}
	return extend(v, rows, mp)
}

// Dup deep-copies the vector.
func (v *Vector) Dup(mp *mpool.MPool) (*Vector, error) {
	if v.IsConstNull() {
		return NewConstNull(v.typ, v.length), nil
	}
	w := &Vector{
		class:  v.class,
		typ:    v.typ,
		nsp:    v.nsp.Clone(),
		length: v.length,
	}
	if v.typ.Oid.IsVarlen() {
		src := v.col.([][]byte)
		dst := make([][]byte, 0, len(src))
		for _, bs := range src {
			nb, err := mp.Alloc(len(bs))
			if err != nil {
				return nil, err
			}
			copy(nb, bs)
			dst = append(dst, nb)
		}
		w.col = dst
		return w, nil
	}
	rows := v.length
	if v.IsConst() {
		rows = 1
	}
	if rows > 0 {
		if err := extend(w, rows, mp); err != nil {
			return nil, err
		}
		copy(w.data, v.data)
	}
	return w, nil
}

func (v *Vector) Free(mp *mpool.MPool) {
	if v.typ.Oid.IsVarlen() {
		if bss, ok := v.col.([][]byte); ok {
			for _, bs := range bss {
				mp.Free(bs)
			}
		}
	} else {
		mp.Free(v.data)
	}
	v.col = nil
	v.data = nil
	v.capacity = 0
	v.length = 0
}

func AppendFixed[T types.FixedSizeT](vec *Vector, val T, isNull bool, mp *mpool.MPool) error {
	if mp == nil {
		panic(vxerr.NewInternalErrorNoCtx("vector append does not have a mpool"))
	}
	return appendOne(vec, val, isNull, mp)
}

func AppendFixedList[T types.FixedSizeT](vec *Vector, vals []T, isNulls []bool, mp *mpool.MPool) error {
	if mp == nil {
		panic(vxerr.NewInternalErrorNoCtx("vector append does not have a mpool"))
	}
	if len(vals) == 0 {
		return nil
	}
	if err := extend(vec, len(vals), mp); err != nil {
		return err
	}
	length := vec.length
	vec.length += len(vals)
	col := vec.col.([]T)
	for i, w := range vals {
		if len(isNulls) > 0 && isNulls[i] {
			nulls.Add(vec.nsp, uint64(length+i))
		} else {
			col[length+i] = w
		}
	}
	return nil
}

func AppendBytes(vec *Vector, val []byte, isNull bool, mp *mpool.MPool) error {
	if mp == nil {
		panic(vxerr.NewInternalErrorNoCtx("vector append does not have a mpool"))
	}
	return appendOneBytes(vec, val, isNull, mp)
}

func AppendBytesList(vec *Vector, vals [][]byte, isNulls []bool, mp *mpool.MPool) error {
	for i, bs := range vals {
		isNull := len(isNulls) > 0 && isNulls[i]
		if err := appendOneBytes(vec, bs, isNull, mp); err != nil {
			return err
		}
	}
	return nil
}

func AppendStringList(vec *Vector, vals []string, isNulls []bool, mp *mpool.MPool) error {
	for i, s := range vals {
		isNull := len(isNulls) > 0 && isNulls[i]
		if err := appendOneBytes(vec, []byte(s), isNull, mp); err != nil {
			return err
		}
	}
	return nil
}

func appendOne[T types.FixedSizeT](vec *Vector, val T, isNull bool, mp *mpool.MPool) error {
	if err := extend(vec, 1, mp); err != nil {
		return err
	}
	length := vec.length
	vec.length++
	if isNull {
		nulls.Add(vec.nsp, uint64(length))
	} else {
		col := vec.col.([]T)
		col[length] = val
	}
	return nil
}

func appendOneBytes(vec *Vector, val []byte, isNull bool, mp *mpool.MPool) error {
	length := vec.length
	vec.length++
	if isNull {
		vec.col = append(vec.col.([][]byte), nil)
		nulls.Add(vec.nsp, uint64(length))
		return nil
	}
	bs, err := mp.Alloc(len(val))
	if err != nil {
		return err
	}
	copy(bs, val)
	vec.col = append(vec.col.([][]byte), bs)
	return nil
}

func extend(v *Vector, rows int, mp *mpool.MPool) error {
	if v.typ.Oid.IsVarlen() {
		return nil
	}
	need := v.length + rows
	if need <= v.capacity {
		return nil
	}
	ncap := v.capacity * 2
	if ncap < need {
		ncap = need
	}
	sz := v.typ.TypeSize()
	data, err := mp.Grow(v.data, ncap*sz)
	if err != nil {
		return err
	}
	v.data = data[:cap(data)]
	v.capacity = cap(data) / sz
	v.setupColFromData()
	return nil
}

func (v *Vector) setupColFromData() {
	switch v.typ.Oid {
	case types.T_bool:
		setCol[bool](v)
	case types.T_int8:
		setCol[int8](v)
	case types.T_int16:
		setCol[int16](v)
	case types.T_int32:
		setCol[int32](v)
	case types.T_int64:
		setCol[int64](v)
	case types.T_uint8:
		setCol[uint8](v)
	case types.T_uint16:
		setCol[uint16](v)
	case types.T_uint32:
		setCol[uint32](v)
	case types.T_uint64:
		setCol[uint64](v)
	case types.T_float32:
		setCol[float32](v)
	case types.T_float64:
		setCol[float64](v)
	case types.T_date:
		setCol[types.Date](v)
	case types.T_datetime:
		setCol[types.Datetime](v)
	case types.T_time:
		setCol[types.Time](v)
	case types.T_timestamp:
		setCol[types.Timestamp](v)
	default:
		panic(fmt.Sprintf("unexpected type %s for fixed-size vector", v.typ))
	}
}

func setCol[T types.FixedSizeT](v *Vector) {
	sz := v.typ.TypeSize()
	if cap(v.data) >= sz {
		v.col = unsafe.Slice((*T)(unsafe.Pointer(&v.data[0])), cap(v.data)/sz)
	} else {
		v.col = []T(nil)
	}
}

// String is for debugging only.
func (v *Vector) String() string {
	switch v.typ.Oid {
	case types.T_bool:
		return vecToString[bool](v)
	case types.T_int8:
		return vecToString[int8](v)
	case types.T_int16:
		return vecToString[int16](v)
	case types.T_int32:
		return vecToString[int32](v)
	case types.T_int64:
		return vecToString[int64](v)
	case types.T_uint8:
		return vecToString[uint8](v)
	case types.T_uint16:
		return vecToString[uint16](v)
	case types.T_uint32:
		return vecToString[uint32](v)
	case types.T_uint64:
		return vecToString[uint64](v)
	case types.T_float32:
		return vecToString[float32](v)
	case types.T_float64:
		return vecToString[float64](v)
	case types.T_date:
		return vecToString[types.Date](v)
	case types.T_datetime:
		return vecToString[types.Datetime](v)
	case types.T_time:
		return vecToString[types.Time](v)
	case types.T_timestamp:
		return vecToString[types.Timestamp](v)
	case types.T_char, types.T_varchar, types.T_text, types.T_blob, types.T_json:
		return fmt.Sprintf("%v-%s", v.col, nulls.String(v.nsp))
	default:
		return fmt.Sprintf("<vector of %s>", v.typ)
	}
}

func vecToString[T types.FixedSizeT](v *Vector) string {
	col := MustFixedCol[T](v)
	if len(col) == 1 {
		if nulls.Contains(v.nsp, 0) {
			return "null"
		}
		return fmt.Sprintf("%v", col[0])
	}
	return fmt.Sprintf("%v-%s", col, nulls.String(v.nsp))
}
