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

	"github.com/vexecdb/vexec/pkg/common/vxerr"
	"github.com/vexecdb/vexec/pkg/container/types"
	"github.com/vexecdb/vexec/pkg/container/vector"
	"github.com/vexecdb/vexec/pkg/vm/process"
)

// Function ids.
const (
	CLAMP = iota
	CLAMP_MIN
	CLAMP_MAX
)

var functionIdRegister = map[string]int32{
	"clamp":     CLAMP,
	"clamp_min": CLAMP_MIN,
	"clamp_max": CLAMP_MAX,
}

// Function is one registered builtin.
type Function struct {
	ID   int32
	Name string

	// ArgMin and ArgMax bound the accepted argument count.
	ArgMin int
	ArgMax int

	// RetType resolves the result type from the argument types before
	// evaluation.
	RetType func(ctx context.Context, args []types.Type) (types.Type, error)

	Fn func(vs []*vector.Vector, proc *process.Process) (*vector.Vector, error)
}

var supportedFunctions = [...]Function{
	{
		ID:      CLAMP,
		Name:    "clamp",
		ArgMin:  3,
		ArgMax:  3,
		RetType: clampReturnType,
		Fn:      builtInClamp,
	},
	{
		ID:      CLAMP_MIN,
		Name:    "clamp_min",
		ArgMin:  2,
		ArgMax:  2,
		RetType: clampReturnType,
		Fn:      builtInClampMin,
	},
	{
		ID:      CLAMP_MAX,
		Name:    "clamp_max",
		ArgMin:  2,
		ArgMax:  2,
		RetType: clampReturnType,
		Fn:      builtInClampMax,
	},
}

// clampReturnType is the supertype of all the (present) operand types.
func clampReturnType(ctx context.Context, args []types.Type) (types.Type, error) {
	ts := make([]types.T, 0, len(args))
	for _, arg := range args {
		ts = append(ts, arg.Oid)
	}
	oid, err := types.Supertype(ctx, ts...)
	if err != nil {
		return types.Type{}, err
	}
	return oid.ToType(), nil
}

func GetFunctionByName(ctx context.Context, name string) (Function, error) {
	id, ok := functionIdRegister[name]
	if !ok {
		return Function{}, vxerr.NewNYI(ctx, "function %s", name)
	}
	return supportedFunctions[id], nil
}

func GetFunctionById(ctx context.Context, id int32) (Function, error) {
	if id < 0 || int(id) >= len(supportedFunctions) {
		return Function{}, vxerr.NewInvalidArg(ctx, "function id", id)
	}
	return supportedFunctions[id], nil
}

// RunFunction resolves name and evaluates it over vs.
func RunFunction(proc *process.Process, name string, vs []*vector.Vector) (*vector.Vector, error) {
	f, err := GetFunctionByName(proc.Ctx, name)
	if err != nil {
		return nil, err
	}
	if len(vs) < f.ArgMin || len(vs) > f.ArgMax {
		return nil, vxerr.NewInvalidArg(proc.Ctx, f.Name+" argument count", len(vs))
	}
	return f.Fn(vs, proc)
}

func builtInClamp(vs []*vector.Vector, proc *process.Process) (*vector.Vector, error) {
	return Clamp(proc, vs[0], vs[1], vs[2])
}

func builtInClampMin(vs []*vector.Vector, proc *process.Process) (*vector.Vector, error) {
	return ClampMin(proc, vs[0], vs[1])
}

func builtInClampMax(vs []*vector.Vector, proc *process.Process) (*vector.Vector, error) {
	return ClampMax(proc, vs[0], vs[1])
}
