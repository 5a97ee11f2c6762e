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

package mpool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vexecdb/vexec/pkg/common/vxerr"
)

func TestAllocFreeAccounting(t *testing.T) {
	m := MustNewZero()

	buf, err := m.Alloc(1024)
	require.NoError(t, err)
	require.Equal(t, 1024, len(buf))
	require.Equal(t, int64(1024), m.CurrNB())

	m.Free(buf)
	require.Equal(t, int64(0), m.CurrNB())
	require.Equal(t, int64(1024), m.HighWaterMark())
}

func TestCapEnforced(t *testing.T) {
	m, err := NewMPool("small", 100)
	require.NoError(t, err)

	buf, err := m.Alloc(64)
	require.NoError(t, err)

	_, err = m.Alloc(64)
	require.Error(t, err)
	require.True(t, vxerr.IsErrOOM(err))

	// the failed alloc must not leak accounting
	require.Equal(t, int64(64), m.CurrNB())
	m.Free(buf)
	require.Equal(t, int64(0), m.CurrNB())
}

func TestGrowKeepsContents(t *testing.T) {
	m := MustNewZero()

	buf, err := m.Alloc(4)
	require.NoError(t, err)
	copy(buf, []byte{1, 2, 3, 4})

	buf, err = m.Grow(buf, 16)
	require.NoError(t, err)
	require.Equal(t, 16, len(buf))
	require.Equal(t, []byte{1, 2, 3, 4}, buf[:4])

	m.Free(buf)
	require.Equal(t, int64(0), m.CurrNB())
}

func TestConcurrentAllocFree(t *testing.T) {
	m := MustNewZero()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				buf, err := m.Alloc(8)
				require.NoError(t, err)
				m.Free(buf)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int64(0), m.CurrNB())
}
