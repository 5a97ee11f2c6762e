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
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vexecdb/vexec/pkg/common/vxerr"
)

var promotable = []T{
	T_int8, T_int16, T_int32, T_int64,
	T_uint8, T_uint16, T_uint32, T_uint64,
	T_float32, T_float64,
	T_date, T_datetime, T_time, T_timestamp,
}

func TestJoinCases(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		a, b T
		want T
	}{
		{T_int8, T_int8, T_int8},
		{T_int8, T_int64, T_int64},
		{T_uint8, T_uint32, T_uint32},
		{T_int8, T_uint8, T_int16},
		{T_int16, T_uint16, T_int32},
		{T_int32, T_uint32, T_int64},
		{T_int64, T_uint64, T_int64},
		{T_uint32, T_int8, T_int64},
		{T_float32, T_float32, T_float32},
		{T_float32, T_float64, T_float64},
		{T_int32, T_float64, T_float64},
		{T_uint32, T_float64, T_float64},
		{T_int8, T_float32, T_float64},
		{T_uint64, T_float32, T_float64},
		{T_date, T_date, T_date},
		{T_date, T_datetime, T_datetime},
		{T_datetime, T_datetime, T_datetime},
		{T_timestamp, T_timestamp, T_timestamp},
		{T_time, T_time, T_time},
		{T_any, T_datetime, T_datetime},
		{T_any, T_uint16, T_uint16},
	}
	for _, c := range cases {
		got, err := Join(ctx, c.a, c.b)
		require.NoError(t, err, "join(%s, %s)", c.a, c.b)
		require.Equal(t, c.want, got, "join(%s, %s)", c.a, c.b)
	}
}

func TestJoinFailures(t *testing.T) {
	ctx := context.Background()
	cases := [][2]T{
		{T_int64, T_varchar},
		{T_int64, T_datetime},
		{T_date, T_float64},
		{T_datetime, T_timestamp},
		{T_date, T_time},
		{T_blob, T_json},
		{T_blob, T_tuple},
		{T_bool, T_int8},
	}
	for _, c := range cases {
		_, err := Join(ctx, c[0], c[1])
		require.Error(t, err, "join(%s, %s)", c[0], c[1])
		require.True(t, vxerr.IsErrSupertype(err))
	}
}

// The promotion relation must be a join on a lattice: commutative and
// associative over every triple of promotable types.  Triples whose join
// fails must fail under every grouping.
func TestJoinIsCommutative(t *testing.T) {
	ctx := context.Background()
	for _, a := range promotable {
		for _, b := range promotable {
			x, errX := Join(ctx, a, b)
			y, errY := Join(ctx, b, a)
			require.Equal(t, errX == nil, errY == nil, "join(%s,%s)", a, b)
			if errX == nil {
				require.Equal(t, x, y, "join(%s,%s)", a, b)
			}
		}
	}
}

func TestJoinIsAssociative(t *testing.T) {
	ctx := context.Background()
	join := func(a, b T) (T, bool) {
		r, err := Join(ctx, a, b)
		return r, err == nil
	}
	for _, a := range promotable {
		for _, b := range promotable {
			for _, c := range promotable {
				var left, right T
				leftOk, rightOk := false, false
				if ab, ok := join(a, b); ok {
					left, leftOk = join(ab, c)
				}
				if bc, ok := join(b, c); ok {
					right, rightOk = join(a, bc)
				}
				require.Equal(t, leftOk, rightOk, "(%s %s %s)", a, b, c)
				if leftOk {
					require.Equal(t, left, right, "(%s %s %s)", a, b, c)
				}
			}
		}
	}
}

func TestSupertypeFold(t *testing.T) {
	ctx := context.Background()

	got, err := Supertype(ctx, T_uint32, T_float64, T_float64)
	require.NoError(t, err)
	require.Equal(t, T_float64, got)

	got, err = Supertype(ctx, T_uint32, T_int32, T_int32)
	require.NoError(t, err)
	require.Equal(t, T_int64, got)

	// resolving {input, lower} then joining {upper} equals resolving all
	partial, err := Supertype(ctx, T_uint8, T_int8)
	require.NoError(t, err)
	all, err := Supertype(ctx, T_uint8, T_int8, T_float64)
	require.NoError(t, err)
	joined, err := Join(ctx, partial, T_float64)
	require.NoError(t, err)
	require.Equal(t, all, joined)

	_, err = Supertype(ctx, T_int64, T_blob, T_tuple)
	require.Error(t, err)
	require.True(t, vxerr.IsErrSupertype(err))
}
