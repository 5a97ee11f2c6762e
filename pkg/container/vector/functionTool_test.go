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
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vexecdb/vexec/pkg/common/mpool"
	"github.com/vexecdb/vexec/pkg/container/types"
)

func TestParameterWrapperNormal(t *testing.T) {
	mp := mpool.MustNewZero()
	vec := NewVec(types.T_int64.ToType())
	require.NoError(t, AppendFixedList(vec, []int64{10, 0, 30}, []bool{false, true, false}, mp))

	w := GenerateFunctionFixedTypeParameter[int64](vec)
	_, ok := w.(*FunctionParameterNormal[int64])
	require.True(t, ok)

	v, null := w.GetValue(0)
	require.False(t, null)
	require.Equal(t, int64(10), v)
	_, null = w.GetValue(1)
	require.True(t, null)
	v, null = w.GetValue(2)
	require.False(t, null)
	require.Equal(t, int64(30), v)
	require.Equal(t, 3, len(w.UnSafeGetAllValue()))

	vec.Free(mp)
}

func TestParameterWrapperWithoutNull(t *testing.T) {
	mp := mpool.MustNewZero()
	vec := NewVec(types.T_float32.ToType())
	require.NoError(t, AppendFixedList(vec, []float32{1, 2, 3}, nil, mp))

	w := GenerateFunctionFixedTypeParameter[float32](vec)
	_, ok := w.(*FunctionParameterWithoutNull[float32])
	require.True(t, ok)

	v, null := w.GetValue(2)
	require.False(t, null)
	require.Equal(t, float32(3), v)

	vec.Free(mp)
}

func TestParameterWrapperScalar(t *testing.T) {
	mp := mpool.MustNewZero()
	vec, err := NewConstFixed(types.T_uint16.ToType(), uint16(7), 100, mp)
	require.NoError(t, err)

	w := GenerateFunctionFixedTypeParameter[uint16](vec)
	_, ok := w.(*FunctionParameterScalar[uint16])
	require.True(t, ok)

	for _, idx := range []uint64{0, 50, 99} {
		v, null := w.GetValue(idx)
		require.False(t, null)
		require.Equal(t, uint16(7), v)
	}

	vec.Free(mp)
}

func TestParameterWrapperScalarNull(t *testing.T) {
	vec := NewConstNull(types.T_date.ToType(), 10)

	w := GenerateFunctionFixedTypeParameter[types.Date](vec)
	_, ok := w.(*FunctionParameterScalarNull[types.Date])
	require.True(t, ok)

	_, null := w.GetValue(5)
	require.True(t, null)
	require.Nil(t, w.UnSafeGetAllValue())
}

func TestFunctionResult(t *testing.T) {
	mp := mpool.MustNewZero()
	wrapper := NewFunctionResultWrapper(types.T_int32.ToType(), mp)
	fr := MustFunctionResult[int32](wrapper)

	require.NoError(t, fr.PreExtendAndReset(4))
	rv := fr.GetResultVector()
	require.Equal(t, 4, rv.Length())

	cols := fr.GetResultMustValues()
	cols[0], cols[1], cols[2], cols[3] = 5, 6, 7, 8
	rv.GetNulls().Set(2)

	require.Equal(t, int32(8), GetFixedAt[int32](rv, 3))
	require.True(t, rv.GetNulls().Contains(2))

	// a reset must drop the previous batch's nulls
	require.NoError(t, fr.PreExtendAndReset(2))
	require.False(t, fr.GetResultVector().GetNulls().Contains(2))

	fr.Free()
	require.Equal(t, int64(0), mp.CurrNB())
}

func TestFunctionResultAppend(t *testing.T) {
	mp := mpool.MustNewZero()
	fr := NewFunctionResult[uint64](types.T_uint64.ToType(), mp)

	require.NoError(t, fr.Append(11, false))
	require.NoError(t, fr.AppendMustNull())
	require.NoError(t, fr.AppendMustValue(13))

	rv := fr.GetResultVector()
	require.Equal(t, 3, rv.Length())
	require.Equal(t, uint64(11), GetFixedAt[uint64](rv, 0))
	require.True(t, rv.GetNulls().Contains(1))
	require.Equal(t, uint64(13), GetFixedAt[uint64](rv, 2))

	fr.Free()
	require.Equal(t, int64(0), mp.CurrNB())
}
