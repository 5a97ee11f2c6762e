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
	"github.com/vexecdb/vexec/pkg/common/vxerr"
	"github.com/vexecdb/vexec/pkg/container/nulls"
	"github.com/vexecdb/vexec/pkg/container/types"
	"github.com/vexecdb/vexec/pkg/container/vector"
	"github.com/vexecdb/vexec/pkg/vm/process"
)

// castToSupertype widens v to the type to.  It always returns a fresh
// vector owned by the caller, even when no conversion is needed.
func castToSupertype(proc *process.Process, v *vector.Vector, to types.Type) (*vector.Vector, error) {
	from := v.GetType().Oid
	if v.IsConstNull() {
		return vector.NewConstNull(to, v.Length()), nil
	}
	if from == to.Oid {
		return v.Dup(proc.GetMPool())
	}
	switch {
	case from.IsNumeric() && to.Oid.IsNumeric():
		return castNumeric(proc, v, to)
	case from == types.T_date && to.Oid == types.T_datetime:
		return castDateToDatetime(proc, v, to)
	}
	return nil, vxerr.NewInternalError(proc.Ctx, "unexpected cast from %s to %s", from, to.Oid)
}

func castNumeric(proc *process.Process, v *vector.Vector, to types.Type) (*vector.Vector, error) {
	switch v.GetType().Oid {
	case types.T_int8:
		return numericToNumeric[int8](proc, v, to)
	case types.T_int16:
		return numericToNumeric[int16](proc, v, to)
	case types.T_int32:
		return numericToNumeric[int32](proc, v, to)
	case types.T_int64:
		return numericToNumeric[int64](proc, v, to)
	case types.T_uint8:
		return numericToNumeric[uint8](proc, v, to)
	case types.T_uint16:
		return numericToNumeric[uint16](proc, v, to)
	case types.T_uint32:
		return numericToNumeric[uint32](proc, v, to)
	case types.T_uint64:
		return numericToNumeric[uint64](proc, v, to)
	case types.T_float32:
		return numericToNumeric[float32](proc, v, to)
	case types.T_float64:
		return numericToNumeric[float64](proc, v, to)
	}
	return nil, vxerr.NewInternalError(proc.Ctx, "unexpected cast from %s to %s", v.GetType().Oid, to.Oid)
}

func numericToNumeric[T1 types.OrderedT](proc *process.Process, v *vector.Vector, to types.Type) (*vector.Vector, error) {
	switch to.Oid {
	case types.T_int8:
		return numericConvert[T1, int8](proc, v, to)
	case types.T_int16:
		return numericConvert[T1, int16](proc, v, to)
	case types.T_int32:
		return numericConvert[T1, int32](proc, v, to)
	case types.T_int64:
		return numericConvert[T1, int64](proc, v, to)
	case types.T_uint8:
		return numericConvert[T1, uint8](proc, v, to)
	case types.T_uint16:
		return numericConvert[T1, uint16](proc, v, to)
	case types.T_uint32:
		return numericConvert[T1, uint32](proc, v, to)
	case types.T_uint64:
		return numericConvert[T1, uint64](proc, v, to)
	case types.T_float32:
		return numericConvert[T1, float32](proc, v, to)
	case types.T_float64:
		return numericConvert[T1, float64](proc, v, to)
	}
	return nil, vxerr.NewInternalError(proc.Ctx, "unexpected cast from %s to %s", v.GetType().Oid, to.Oid)
}

func numericConvert[T1, T2 types.OrderedT](proc *process.Process, v *vector.Vector, to types.Type) (*vector.Vector, error) {
	mp := proc.GetMPool()
	if v.IsConst() {
		val := vector.GetFixedAt[T1](v, 0)
		return vector.NewConstFixed(to, T2(val), v.Length(), mp)
	}
	n := v.Length()
	rv := vector.NewVec(to)
	if err := rv.PreExtend(n, mp); err != nil {
		return nil, err
	}
	rv.SetLength(n)
	src := vector.MustFixedCol[T1](v)
	dst := vector.MustFixedCol[T2](rv)
	for i := 0; i < n; i++ {
		dst[i] = T2(src[i])
	}
	nulls.Set(rv.GetNulls(), v.GetNulls())
	return rv, nil
}

func castDateToDatetime(proc *process.Process, v *vector.Vector, to types.Type) (*vector.Vector, error) {
	mp := proc.GetMPool()
	if v.IsConst() {
		d := vector.GetFixedAt[types.Date](v, 0)
		return vector.NewConstFixed(to, d.ToDatetime(), v.Length(), mp)
	}
	n := v.Length()
	rv := vector.NewVec(to)
	if err := rv.PreExtend(n, mp); err != nil {
		return nil, err
	}
	rv.SetLength(n)
	src := vector.MustFixedCol[types.Date](v)
	dst := vector.MustFixedCol[types.Datetime](rv)
	for i := 0; i < n; i++ {
		dst[i] = src[i].ToDatetime()
	}
	nulls.Set(rv.GetNulls(), v.GetNulls())
	return rv, nil
}
