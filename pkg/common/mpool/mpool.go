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

// Package mpool tracks the memory handed out to vectors.  Allocation goes
// through the Go allocator; the pool only does capacity accounting so a
// runaway kernel fails with OOM instead of taking the process down.
package mpool

import (
	"sync/atomic"

	"github.com/vexecdb/vexec/pkg/common/vxerr"
)

// NoCap disables the capacity check.
const NoCap int64 = 0

type MPool struct {
	tag string
	cap int64

	currNB   int64
	highWM   int64
	allocCnt int64
}

// NewMPool returns a pool with the given byte capacity.  cap == NoCap means
// unbounded.
func NewMPool(tag string, cap int64) (*MPool, error) {
	if cap < 0 {
		return nil, vxerr.NewInvalidArg(nil, "mpool cap", cap)
	}
	return &MPool{tag: tag, cap: cap}, nil
}

// MustNewZero returns an unbounded pool, for tests and tools.
func MustNewZero() *MPool {
	m, err := NewMPool("zero", NoCap)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *MPool) Tag() string {
	return m.tag
}

func (m *MPool) Cap() int64 {
	return m.cap
}

// CurrNB returns the number of bytes currently checked out of the pool.
func (m *MPool) CurrNB() int64 {
	return atomic.LoadInt64(&m.currNB)
}

func (m *MPool) HighWaterMark() int64 {
	return atomic.LoadInt64(&m.highWM)
}

func (m *MPool) Alloc(sz int) ([]byte, error) {
	if sz < 0 {
		return nil, vxerr.NewInvalidArg(nil, "mpool alloc size", sz)
	}
	if sz == 0 {
		return nil, nil
	}
	nb := atomic.AddInt64(&m.currNB, int64(sz))
	if m.cap != NoCap && nb > m.cap {
		atomic.AddInt64(&m.currNB, -int64(sz))
		return nil, vxerr.NewOOM(nil)
	}
	for {
		hwm := atomic.LoadInt64(&m.highWM)
		if nb <= hwm || atomic.CompareAndSwapInt64(&m.highWM, hwm, nb) {
			break
		}
	}
	atomic.AddInt64(&m.allocCnt, 1)
	return make([]byte, sz), nil
}

func (m *MPool) Free(bs []byte) {
	if bs == nil {
		return
	}
	atomic.AddInt64(&m.currNB, -int64(cap(bs)))
}

// Grow reallocates old to hold sz bytes, keeping its contents.  The old
// buffer is returned to the pool.
func (m *MPool) Grow(old []byte, sz int) ([]byte, error) {
	if sz <= cap(old) {
		return old[:sz], nil
	}
	data, err := m.Alloc(sz)
	if err != nil {
		return nil, err
	}
	copy(data, old)
	m.Free(old)
	return data, nil
}
