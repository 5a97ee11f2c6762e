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

	"github.com/vexecdb/vexec/pkg/common/mpool"
	"github.com/vexecdb/vexec/pkg/container/nulls"
	"github.com/vexecdb/vexec/pkg/container/types"
)

// FunctionParameterWrapper is the accessor a kernel uses to read one of its
// operands.  GetValue reports (value, true) when the row is NULL.
type FunctionParameterWrapper[T types.FixedSizeT] interface {
	GetType() types.Type

	GetSourceVector() *Vector

	GetValue(idx uint64) (T, bool)

	// UnSafeGetAllValue returns the underlying slice without a copy.
	UnSafeGetAllValue() []T
}

var _ FunctionParameterWrapper[int64] = &FunctionParameterNormal[int64]{}
var _ FunctionParameterWrapper[int64] = &FunctionParameterWithoutNull[int64]{}
var _ FunctionParameterWrapper[int64] = &FunctionParameterScalar[int64]{}
var _ FunctionParameterWrapper[int64] = &FunctionParameterScalarNull[int64]{}

func GenerateFunctionFixedTypeParameter[T types.FixedSizeT](v *Vector) FunctionParameterWrapper[T] {
	t := v.GetType()
	if v.IsConstNull() {
		return &FunctionParameterScalarNull[T]{
			typ:          *t,
			sourceVector: v,
		}
	}
	cols := MustFixedCol[T](v)
	if v.IsConst() {
		return &FunctionParameterScalar[T]{
			typ:          *t,
			sourceVector: v,
			scalarValue:  cols[0],
		}
	}
	if !nulls.Any(v.nsp) {
		return &FunctionParameterWithoutNull[T]{
			typ:          *t,
			sourceVector: v,
			values:       cols,
		}
	}
	return &FunctionParameterNormal[T]{
		typ:          *t,
		sourceVector: v,
		values:       cols,
		nullMap:      v.GetNulls(),
	}
}

// FunctionParameterNormal is a flat vector which contains null rows.
type FunctionParameterNormal[T types.FixedSizeT] struct {
	typ          types.Type
	sourceVector *Vector
	values       []T
	nullMap      *nulls.Nulls
}

func (p *FunctionParameterNormal[T]) GetType() types.Type {
	return p.typ
}

func (p *FunctionParameterNormal[T]) GetSourceVector() *Vector {
	return p.sourceVector
}

func (p *FunctionParameterNormal[T]) GetValue(idx uint64) (value T, isNull bool) {
	if p.nullMap.Contains(idx) {
		return value, true
	}
	return p.values[idx], false
}

func (p *FunctionParameterNormal[T]) UnSafeGetAllValue() []T {
	return p.values
}

// FunctionParameterWithoutNull is a flat vector without any null row.
type FunctionParameterWithoutNull[T types.FixedSizeT] struct {
	typ          types.Type
	sourceVector *Vector
	values       []T
}

func (p *FunctionParameterWithoutNull[T]) GetType() types.Type {
	return p.typ
}

func (p *FunctionParameterWithoutNull[T]) GetSourceVector() *Vector {
	return p.sourceVector
}

func (p *FunctionParameterWithoutNull[T]) GetValue(idx uint64) (T, bool) {
	return p.values[idx], false
}

func (p *FunctionParameterWithoutNull[T]) UnSafeGetAllValue() []T {
	return p.values
}

// FunctionParameterScalar is a constant vector.
type FunctionParameterScalar[T types.FixedSizeT] struct {
	typ          types.Type
	sourceVector *Vector
	scalarValue  T
}

func (p *FunctionParameterScalar[T]) GetType() types.Type {
	return p.typ
}

func (p *FunctionParameterScalar[T]) GetSourceVector() *Vector {
	return p.sourceVector
}

func (p *FunctionParameterScalar[T]) GetValue(_ uint64) (T, bool) {
	return p.scalarValue, false
}

func (p *FunctionParameterScalar[T]) UnSafeGetAllValue() []T {
	return []T{p.scalarValue}
}

// FunctionParameterScalarNull is a constant NULL vector.
type FunctionParameterScalarNull[T types.FixedSizeT] struct {
	typ          types.Type
	sourceVector *Vector
}

func (p *FunctionParameterScalarNull[T]) GetType() types.Type {
	return p.typ
}

func (p *FunctionParameterScalarNull[T]) GetSourceVector() *Vector {
	return p.sourceVector
}

func (p *FunctionParameterScalarNull[T]) GetValue(_ uint64) (value T, isNull bool) {
	return value, true
}

func (p *FunctionParameterScalarNull[T]) UnSafeGetAllValue() []T {
	return nil
}

// FunctionResultWrapper owns a kernel's output vector.
type FunctionResultWrapper interface {
	GetResultVector() *Vector
	Free()
}

var _ FunctionResultWrapper = &FunctionResult[int64]{}

type FunctionResult[T types.FixedSizeT] struct {
	typ types.Type
	vec *Vector
	mp  *mpool.MPool
}

func NewFunctionResult[T types.FixedSizeT](typ types.Type, mp *mpool.MPool) *FunctionResult[T] {
	return &FunctionResult[T]{
		typ: typ,
		vec: NewVec(typ),
		mp:  mp,
	}
}

// PreExtendAndReset sizes the result to hold size rows and clears any
// state left from a previous batch.
func (fr *FunctionResult[T]) PreExtendAndReset(size int) error {
	if fr.vec == nil {
		fr.vec = NewVec(fr.typ)
	}
	fr.vec.length = 0
	nulls.Reset(fr.vec.nsp)
	if err := fr.vec.PreExtend(size, fr.mp); err != nil {
		return err
	}
	fr.vec.SetLength(size)
	return nil
}

func (fr *FunctionResult[T]) Append(val T, isnull bool) error {
	return AppendFixed(fr.vec, val, isnull, fr.mp)
}

func (fr *FunctionResult[T]) AppendMustValue(val T) error {
	return AppendFixed(fr.vec, val, false, fr.mp)
}

func (fr *FunctionResult[T]) AppendMustNull() error {
	var v T
	return AppendFixed(fr.vec, v, true, fr.mp)
}

func (fr *FunctionResult[T]) GetResultVector() *Vector {
	return fr.vec
}

func (fr *FunctionResult[T]) GetResultMustValues() []T {
	return MustFixedCol[T](fr.vec)
}

func (fr *FunctionResult[T]) Free() {
	if fr.vec != nil {
		fr.vec.Free(fr.mp)
		fr.vec = nil
	}
}

func MustFunctionResult[T types.FixedSizeT](wrapper FunctionResultWrapper) *FunctionResult[T] {
	if fr, ok := wrapper.(*FunctionResult[T]); ok {
		return fr
	}
	panic("wrong type for FunctionResultWrapper")
}

// NewFunctionResultWrapper builds the result wrapper matching typ.  Only
// fixed-size result types are supported by the kernels in this package.
func NewFunctionResultWrapper(typ types.Type, mp *mpool.MPool) FunctionResultWrapper {
	switch typ.Oid {
	case types.T_bool:
		return NewFunctionResult[bool](typ, mp)
	case types.T_int8:
		return NewFunctionResult[int8](typ, mp)
	case types.T_int16:
		return NewFunctionResult[int16](typ, mp)
	case types.T_int32:
		return NewFunctionResult[int32](typ, mp)
	case types.T_int64:
		return NewFunctionResult[int64](typ, mp)
	case types.T_uint8:
		return NewFunctionResult[uint8](typ, mp)
	case types.T_uint16:
		return NewFunctionResult[uint16](typ, mp)
	case types.T_uint32:
		return NewFunctionResult[uint32](typ, mp)
	case types.T_uint64:
		return NewFunctionResult[uint64](typ, mp)
	case types.T_float32:
		return NewFunctionResult[float32](typ, mp)
	case types.T_float64:
		return NewFunctionResult[float64](typ, mp)
	case types.T_date:
		return NewFunctionResult[types.Date](typ, mp)
	case types.T_datetime:
		return NewFunctionResult[types.Datetime](typ, mp)
	case types.T_time:
		return NewFunctionResult[types.Time](typ, mp)
	case types.T_timestamp:
		return NewFunctionResult[types.Timestamp](typ, mp)
	default:
		panic(fmt.Sprintf("unexpected result type %s for function", typ))
	}
}
