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

package testutil

import (
	"context"
	"fmt"

	"github.com/vexecdb/vexec/pkg/common/mpool"
	"github.com/vexecdb/vexec/pkg/container/nulls"
	"github.com/vexecdb/vexec/pkg/container/types"
	"github.com/vexecdb/vexec/pkg/container/vector"
	"github.com/vexecdb/vexec/pkg/vm/process"
)

// NewProc returns a process suitable for tests.  It panics on setup
// failure so test code can use it inline.
func NewProc(opts ...process.Option) *process.Process {
	proc, err := process.New(context.Background(), mpool.MustNewZero(), opts...)
	if err != nil {
		panic(err)
	}
	return proc
}

// FunctionTestInput describes one operand of a function test case.
type FunctionTestInput struct {
	build func(mp *mpool.MPool) (*vector.Vector, error)
}

func NewFunctionTestInput[T types.FixedSizeT](typ types.Type, values []T, nullList []bool) FunctionTestInput {
	return FunctionTestInput{
		build: func(mp *mpool.MPool) (*vector.Vector, error) {
			vec := vector.NewVec(typ)
			if err := vector.AppendFixedList(vec, values, nullList, mp); err != nil {
				return nil, err
			}
			return vec, nil
		},
	}
}

func NewFunctionTestConstInput[T types.FixedSizeT](typ types.Type, value T, length int) FunctionTestInput {
	return FunctionTestInput{
		build: func(mp *mpool.MPool) (*vector.Vector, error) {
			return vector.NewConstFixed(typ, value, length, mp)
		},
	}
}

func NewFunctionTestConstNullInput(typ types.Type, length int) FunctionTestInput {
	return FunctionTestInput{
		build: func(_ *mpool.MPool) (*vector.Vector, error) {
			return vector.NewConstNull(typ, length), nil
		},
	}
}

// NewFunctionTestNilInput marks an absent operand.
func NewFunctionTestNilInput() FunctionTestInput {
	return FunctionTestInput{
		build: func(_ *mpool.MPool) (*vector.Vector, error) {
			return nil, nil
		},
	}
}

func NewFunctionTestBytesInput(typ types.Type, values []string, nullList []bool) FunctionTestInput {
	return FunctionTestInput{
		build: func(mp *mpool.MPool) (*vector.Vector, error) {
			vec := vector.NewVec(typ)
			if err := vector.AppendStringList(vec, values, nullList, mp); err != nil {
				return nil, err
			}
			return vec, nil
		},
	}
}

// FunctionTestResult describes the expected outcome of a test case.
type FunctionTestResult struct {
	compare func(got *vector.Vector, err error) (bool, string)
}

func NewFunctionTestResult[T types.FixedSizeT](typ types.Type, wantErr bool, values []T, nullList []bool) FunctionTestResult {
	return FunctionTestResult{
		compare: func(got *vector.Vector, err error) (bool, string) {
			if wantErr {
				if err == nil {
					return false, "expected an error but function succeeded"
				}
				return true, ""
			}
			if err != nil {
				return false, fmt.Sprintf("unexpected error: %s", err)
			}
			if got.GetType().Oid != typ.Oid {
				return false, fmt.Sprintf("wrong result type: want %s, got %s", typ.Oid, got.GetType().Oid)
			}
			if got.Length() != len(values) {
				return false, fmt.Sprintf("wrong result length: want %d, got %d", len(values), got.Length())
			}
			w := vector.GenerateFunctionFixedTypeParameter[T](got)
			for i := range values {
				wantNull := len(nullList) > 0 && nullList[i]
				v, isNull := w.GetValue(uint64(i))
				if wantNull != isNull {
					return false, fmt.Sprintf("row %d: want null=%v, got null=%v", i, wantNull, isNull)
				}
				if !wantNull && v != values[i] {
					return false, fmt.Sprintf("row %d: want %v, got %v", i, values[i], v)
				}
			}
			return true, ""
		},
	}
}

// FunctionTestCase runs one function over built operand vectors and checks
// the result.
type FunctionTestCase struct {
	proc   *process.Process
	inputs []FunctionTestInput
	expect FunctionTestResult
	fn     func(vs []*vector.Vector, proc *process.Process) (*vector.Vector, error)
}

func NewFunctionTestCase(proc *process.Process,
	inputs []FunctionTestInput, expect FunctionTestResult,
	fn func(vs []*vector.Vector, proc *process.Process) (*vector.Vector, error)) FunctionTestCase {
	return FunctionTestCase{
		proc:   proc,
		inputs: inputs,
		expect: expect,
		fn:     fn,
	}
}

func (fc *FunctionTestCase) Run() (bool, string) {
	mp := fc.proc.GetMPool()
	vs := make([]*vector.Vector, len(fc.inputs))
	for i, in := range fc.inputs {
		vec, err := in.build(mp)
		if err != nil {
			return false, fmt.Sprintf("failed to build input %d: %s", i, err)
		}
		vs[i] = vec
	}
	defer func() {
		for _, vec := range vs {
			if vec != nil {
				vec.Free(mp)
			}
		}
	}()

	got, err := fc.fn(vs, fc.proc)
	if got != nil {
		defer got.Free(mp)
	}
	return fc.expect.compare(got, err)
}

// NewNullVector is a convenience for tests needing a vector of only nulls.
func NewNullVector(typ types.Type, length int, mp *mpool.MPool) *vector.Vector {
	vec := vector.NewVec(typ)
	if err := vec.PreExtend(length, mp); err != nil {
		panic(err)
	}
	vec.SetLength(length)
	nulls.AddRange(vec.GetNulls(), 0, uint64(length))
	return vec
}
