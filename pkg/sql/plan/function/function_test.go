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

package function

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vexecdb/vexec/pkg/container/types"
	"github.com/vexecdb/vexec/pkg/container/vector"
	"github.com/vexecdb/vexec/pkg/testutil"
)

func TestGetFunctionByName(t *testing.T) {
	ctx := context.Background()

	for name, id := range functionIdRegister {
		f, err := GetFunctionByName(ctx, name)
		require.NoError(t, err)
		require.Equal(t, id, f.ID)
		require.Equal(t, name, f.Name)
		require.NotNil(t, f.Fn)
	}

	_, err := GetFunctionByName(ctx, "no_such_function")
	require.Error(t, err)
}

func TestGetFunctionById(t *testing.T) {
	ctx := context.Background()

	f, err := GetFunctionById(ctx, CLAMP)
	require.NoError(t, err)
	require.Equal(t, "clamp", f.Name)

	_, err = GetFunctionById(ctx, -1)
	require.Error(t, err)
	_, err = GetFunctionById(ctx, int32(len(supportedFunctions)))
	require.Error(t, err)
}

func TestClampReturnType(t *testing.T) {
	ctx := context.Background()
	f, err := GetFunctionByName(ctx, "clamp")
	require.NoError(t, err)

	rt, err := f.RetType(ctx, []types.Type{
		types.T_uint32.ToType(), types.T_float64.ToType(), types.T_float64.ToType(),
	})
	require.NoError(t, err)
	require.Equal(t, types.T_float64, rt.Oid)

	rt, err = f.RetType(ctx, []types.Type{
		types.T_int8.ToType(), types.T_uint8.ToType(),
	})
	require.NoError(t, err)
	require.Equal(t, types.T_int16, rt.Oid)

	_, err = f.RetType(ctx, []types.Type{
		types.T_datetime.ToType(), types.T_int64.ToType(),
	})
	require.Error(t, err)
}

func TestRunFunction(t *testing.T) {
	proc := testutil.NewProc()
	defer proc.Free()

	mp := proc.GetMPool()
	vec := vector.NewVec(types.T_int64.ToType())
	require.NoError(t, vector.AppendFixedList(vec, []int64{-10, 5, 20}, nil, mp))
	lb, err := vector.NewConstFixed(types.T_int64.ToType(), int64(0), 3, mp)
	require.NoError(t, err)
	ub, err := vector.NewConstFixed(types.T_int64.ToType(), int64(10), 3, mp)
	require.NoError(t, err)

	got, err := RunFunction(proc, "clamp", []*vector.Vector{vec, lb, ub})
	require.NoError(t, err)
	require.Equal(t, []int64{0, 5, 10}, vector.MustFixedCol[int64](got))
	got.Free(mp)

	got, err = RunFunction(proc, "clamp_min", []*vector.Vector{vec, lb})
	require.NoError(t, err)
	require.Equal(t, []int64{0, 5, 20}, vector.MustFixedCol[int64](got))
	got.Free(mp)

	got, err = RunFunction(proc, "clamp_max", []*vector.Vector{vec, ub})
	require.NoError(t, err)
	require.Equal(t, []int64{-10, 5, 10}, vector.MustFixedCol[int64](got))
	got.Free(mp)

	// wrong arity
	_, err = RunFunction(proc, "clamp", []*vector.Vector{vec, lb})
	require.Error(t, err)
	_, err = RunFunction(proc, "clamp_min", []*vector.Vector{vec, lb, ub})
	require.Error(t, err)

	vec.Free(mp)
	lb.Free(mp)
	ub.Free(mp)
	require.Equal(t, int64(0), mp.CurrNB())
}
