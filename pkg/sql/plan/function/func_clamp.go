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
	"sync"

	"go.uber.org/zap"

	"github.com/vexecdb/vexec/pkg/common/vxerr"
	"github.com/vexecdb/vexec/pkg/container/nulls"
	"github.com/vexecdb/vexec/pkg/container/types"
	"github.com/vexecdb/vexec/pkg/container/vector"
	"github.com/vexecdb/vexec/pkg/logutil"
	"github.com/vexecdb/vexec/pkg/vm/process"
)

// Clamp limits the values of vec to the closed interval [lb, ub].  Either
// bound may be nil, meaning that side is unconstrained.  The result is in
// the common supertype of the operands and is not cast back to the input
// type.  A NULL value stays NULL; a NULL bound row makes the result row
// NULL on the side it constrains.
//
// When both bounds apply, the upper bound wins: a value above ub comes
// back as ub even if ub < lb.
func Clamp(proc *process.Process, vec, lb, ub *vector.Vector) (*vector.Vector, error) {
	if vec == nil {
		return nil, vxerr.NewEmptyVector(proc.Ctx)
	}
	if !vec.GetType().Oid.IsPhysicalNumeric() {
		return nil, vxerr.NewUnsupportedType(proc.Ctx,
			"`clamp` only supports physical numeric types, got %s", vec.GetType().Oid)
	}
	if lb == nil && ub == nil {
		return vec.Dup(proc.GetMPool())
	}

	for _, bound := range []*vector.Vector{lb, ub} {
		if bound == nil {
			continue
		}
		if !bound.IsConst() && bound.Length() != vec.Length() {
			return nil, vxerr.NewSizeNotMatch(proc.Ctx, vec.Length(), bound.Length())
		}
	}

	ts := []types.T{vec.GetType().Oid}
	if lb != nil {
		ts = append(ts, lb.GetType().Oid)
	}
	if ub != nil {
		ts = append(ts, ub.GetType().Oid)
	}
	rtOid, err := types.Supertype(proc.Ctx, ts...)
	if err != nil {
		return nil, err
	}
	rt := rtOid.ToType()

	cvec, err := castToSupertype(proc, vec, rt)
	if err != nil {
		return nil, err
	}
	defer cvec.Free(proc.GetMPool())
	clb, cub := lb, ub
	if lb != nil {
		if clb, err = castToSupertype(proc, lb, rt); err != nil {
			return nil, err
		}
		defer clb.Free(proc.GetMPool())
	}
	if ub != nil {
		if cub, err = castToSupertype(proc, ub, rt); err != nil {
			return nil, err
		}
		defer cub.Free(proc.GetMPool())
	}

	switch rt.Oid {
	case types.T_int8:
		return clampFixed[int8](proc, rt, cvec, clb, cub)
	case types.T_int16:
		return clampFixed[int16](proc, rt, cvec, clb, cub)
	case types.T_int32:
		return clampFixed[int32](proc, rt, cvec, clb, cub)
	case types.T_int64:
		return clampFixed[int64](proc, rt, cvec, clb, cub)
	case types.T_uint8:
		return clampFixed[uint8](proc, rt, cvec, clb, cub)
	case types.T_uint16:
		return clampFixed[uint16](proc, rt, cvec, clb, cub)
	case types.T_uint32:
		return clampFixed[uint32](proc, rt, cvec, clb, cub)
	case types.T_uint64:
		return clampFixed[uint64](proc, rt, cvec, clb, cub)
	case types.T_float32:
		return clampFixed[float32](proc, rt, cvec, clb, cub)
	case types.T_float64:
		return clampFixed[float64](proc, rt, cvec, clb, cub)
	case types.T_date:
		return clampFixed[types.Date](proc, rt, cvec, clb, cub)
	case types.T_datetime:
		return clampFixed[types.Datetime](proc, rt, cvec, clb, cub)
	case types.T_time:
		return clampFixed[types.Time](proc, rt, cvec, clb, cub)
	case types.T_timestamp:
		return clampFixed[types.Timestamp](proc, rt, cvec, clb, cub)
	}
	return nil, vxerr.NewUnsupportedType(proc.Ctx,
		"`clamp` only supports physical numeric types, got %s", rt.Oid)
}

// Deprecated: ClampMin is the old one-sided API.  Use Clamp with a nil
// upper bound instead.
func ClampMin(proc *process.Process, vec, lb *vector.Vector) (*vector.Vector, error) {
	warnDeprecatedOnce("clamp_min")
	return Clamp(proc, vec, lb, nil)
}

// Deprecated: ClampMax is the old one-sided API.  Use Clamp with a nil
// lower bound instead.
func ClampMax(proc *process.Process, vec, ub *vector.Vector) (*vector.Vector, error) {
	warnDeprecatedOnce("clamp_max")
	return Clamp(proc, vec, nil, ub)
}

var deprecatedWarned sync.Map

func warnDeprecatedOnce(name string) {
	if _, loaded := deprecatedWarned.LoadOrStore(name, struct{}{}); !loaded {
		logutil.Warn("deprecated function called, use clamp instead",
			zap.String("function", name))
	}
}

func clampFixed[T types.OrderedT](proc *process.Process, rt types.Type, vec, lb, ub *vector.Vector) (*vector.Vector, error) {
	n := vec.Length()
	if vec.IsConstNull() {
		return vector.NewConstNull(rt, n), nil
	}

	p := vector.GenerateFunctionFixedTypeParameter[T](vec)
	var plb, pub vector.FunctionParameterWrapper[T]
	if lb != nil {
		plb = vector.GenerateFunctionFixedTypeParameter[T](lb)
	}
	if ub != nil {
		pub = vector.GenerateFunctionFixedTypeParameter[T](ub)
	}

	// all-scalar operands give a scalar result
	if vec.IsConst() && (lb == nil || lb.IsConst()) && (ub == nil || ub.IsConst()) {
		out := make([]T, 1)
		nullRows := clampRange(p, plb, pub, out, 0, 1)
		if len(nullRows) > 0 {
			return vector.NewConstNull(rt, n), nil
		}
		return vector.NewConstFixed(rt, out[0], n, proc.GetMPool())
	}

	fr := vector.NewFunctionResult[T](rt, proc.GetMPool())
	if err := fr.PreExtendAndReset(n); err != nil {
		fr.Free()
		return nil, err
	}
	rv := fr.GetResultVector()
	cols := fr.GetResultMustValues()

	if n >= proc.ParallelThreshold() && proc.Parallelism() > 1 {
		clampParallel(proc, p, plb, pub, cols, rv.GetNulls(), n)
	} else {
		nulls.Add(rv.GetNulls(), clampRange(p, plb, pub, cols, 0, uint64(n))...)
	}
	return rv, nil
}

func clampParallel[T types.OrderedT](proc *process.Process,
	p, lb, ub vector.FunctionParameterWrapper[T],
	cols []T, nsp *nulls.Nulls, n int) {

	chunk := proc.ChunkRows()
	nchunks := (n + chunk - 1) / chunk
	nullsByChunk := make([][]uint64, nchunks)

	var wg sync.WaitGroup
	for c := 0; c < nchunks; c++ {
		c := c
		start := uint64(c * chunk)
		end := start + uint64(chunk)
		if end > uint64(n) {
			end = uint64(n)
		}
		wg.Add(1)
		task := func() {
			defer wg.Done()
			nullsByChunk[c] = clampRange(p, lb, ub, cols, start, end)
		}
		if err := proc.Submit(task); err != nil {
			// pool unavailable, run the chunk inline
			task()
		}
	}
	wg.Wait()

	// merge per-chunk null rows in order
	for _, rows := range nullsByChunk {
		nulls.Add(nsp, rows...)
	}
}

// clampRange evaluates rows [start, end).  Rows whose result is NULL are
// returned rather than written, so chunks can run concurrently without
// sharing the null bitmap.
func clampRange[T types.OrderedT](p, lb, ub vector.FunctionParameterWrapper[T],
	cols []T, start, end uint64) []uint64 {

	var nullRows []uint64
	for i := start; i < end; i++ {
		v, isNull := p.GetValue(i)
		if isNull {
			nullRows = append(nullRows, i)
			continue
		}
		out := v
		clamped := false
		if ub != nil {
			hi, hiNull := ub.GetValue(i)
			if hiNull {
				nullRows = append(nullRows, i)
				continue
			}
			if v > hi {
				out = hi
				clamped = true
			}
		}
		if !clamped && lb != nil {
			lo, loNull := lb.GetValue(i)
			if loNull {
				nullRows = append(nullRows, i)
				continue
			}
			if v < lo {
				out = lo
			}
		}
		cols[i] = out
	}
	return nullRows
}
