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

package process

import (
	"context"
	"runtime"

	"github.com/panjf2000/ants/v2"
	"github.com/vexecdb/vexec/pkg/common/mpool"
	"github.com/vexecdb/vexec/pkg/config"
)

// Process carries the per-query execution context a kernel runs under:
// the memory pool, the cancel context and the worker pool kernels fan
// out to for large vectors.
type Process struct {
	Ctx context.Context

	mp   *mpool.MPool
	pool *ants.Pool

	parallelism       int
	chunkRows         int
	parallelThreshold int
}

type Option func(*Process)

func WithParallelism(n int) Option {
	return func(proc *Process) {
		proc.parallelism = n
	}
}

func WithChunkRows(n int) Option {
	return func(proc *Process) {
		proc.chunkRows = n
	}
}

func WithParallelThreshold(n int) Option {
	return func(proc *Process) {
		proc.parallelThreshold = n
	}
}

func WithKernelConfig(cfg config.KernelConfig) Option {
	return func(proc *Process) {
		proc.parallelism = cfg.Parallelism
		proc.chunkRows = cfg.ChunkRows
		proc.parallelThreshold = cfg.ParallelThreshold
	}
}

func New(ctx context.Context, mp *mpool.MPool, opts ...Option) (*Process, error) {
	proc := &Process{
		Ctx:               ctx,
		mp:                mp,
		parallelism:       runtime.NumCPU(),
		chunkRows:         8192,
		parallelThreshold: 65536,
	}
	for _, opt := range opts {
		opt(proc)
	}
	if proc.parallelism > 1 {
		pool, err := ants.NewPool(proc.parallelism)
		if err != nil {
			return nil, err
		}
		proc.pool = pool
	}
	return proc, nil
}

func (proc *Process) GetMPool() *mpool.MPool {
	return proc.mp
}

func (proc *Process) Parallelism() int {
	return proc.parallelism
}

func (proc *Process) ChunkRows() int {
	return proc.chunkRows
}

func (proc *Process) ParallelThreshold() int {
	return proc.parallelThreshold
}

// Submit hands task to the worker pool, falling back to running it
// inline when the process is configured serial.
func (proc *Process) Submit(task func()) error {
	if proc.pool == nil {
		task()
		return nil
	}
	return proc.pool.Submit(task)
}

func (proc *Process) Free() {
	if proc.pool != nil {
		proc.pool.Release()
		proc.pool = nil
	}
}
