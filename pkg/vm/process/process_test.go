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
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vexecdb/vexec/pkg/common/mpool"
	"github.com/vexecdb/vexec/pkg/config"
)

func TestNewDefaults(t *testing.T) {
	proc, err := New(context.Background(), mpool.MustNewZero())
	require.NoError(t, err)
	defer proc.Free()

	require.Greater(t, proc.Parallelism(), 0)
	require.Equal(t, 8192, proc.ChunkRows())
	require.Equal(t, 65536, proc.ParallelThreshold())
	require.NotNil(t, proc.GetMPool())
}

func TestOptions(t *testing.T) {
	proc, err := New(context.Background(), mpool.MustNewZero(),
		WithParallelism(2), WithChunkRows(100), WithParallelThreshold(500))
	require.NoError(t, err)
	defer proc.Free()

	require.Equal(t, 2, proc.Parallelism())
	require.Equal(t, 100, proc.ChunkRows())
	require.Equal(t, 500, proc.ParallelThreshold())
}

func TestWithKernelConfig(t *testing.T) {
	cfg := config.KernelConfig{Parallelism: 3, ChunkRows: 64, ParallelThreshold: 128}
	proc, err := New(context.Background(), mpool.MustNewZero(), WithKernelConfig(cfg))
	require.NoError(t, err)
	defer proc.Free()

	require.Equal(t, 3, proc.Parallelism())
	require.Equal(t, 64, proc.ChunkRows())
	require.Equal(t, 128, proc.ParallelThreshold())
}

func TestSubmitParallel(t *testing.T) {
	proc, err := New(context.Background(), mpool.MustNewZero(), WithParallelism(4))
	require.NoError(t, err)
	defer proc.Free()

	var wg sync.WaitGroup
	var cnt int64
	for i := 0; i < 100; i++ {
		wg.Add(1)
		require.NoError(t, proc.Submit(func() {
			atomic.AddInt64(&cnt, 1)
			wg.Done()
		}))
	}
	wg.Wait()
	require.Equal(t, int64(100), cnt)
}

func TestSubmitSerial(t *testing.T) {
	proc, err := New(context.Background(), mpool.MustNewZero(), WithParallelism(1))
	require.NoError(t, err)
	defer proc.Free()

	// serial processes run tasks inline
	ran := false
	require.NoError(t, proc.Submit(func() { ran = true }))
	require.True(t, ran)
}
