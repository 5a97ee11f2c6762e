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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Greater(t, cfg.Kernel.Parallelism, 0)
	require.Equal(t, defaultChunkRows, cfg.Kernel.ChunkRows)
	require.Equal(t, defaultParallelThreshold, cfg.Kernel.ParallelThreshold)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vexec.toml")
	data := `
[log]
level = "debug"
format = "json"

[kernel]
parallelism = 4
chunk-rows = 1024
parallel-threshold = 10000
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, 4, cfg.Kernel.Parallelism)
	require.Equal(t, 1024, cfg.Kernel.ChunkRows)
	require.Equal(t, 10000, cfg.Kernel.ParallelThreshold)
}

func TestLoadPartial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vexec.toml")
	require.NoError(t, os.WriteFile(path, []byte("[kernel]\nchunk-rows = 256\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 256, cfg.Kernel.ChunkRows)
	// untouched fields keep their defaults
	require.Equal(t, defaultParallelThreshold, cfg.Kernel.ParallelThreshold)
}

func TestApplyLogger(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "debug"
	require.NotPanics(t, cfg.ApplyLogger)
}

func TestValidateRejectsNegativeParallelism(t *testing.T) {
	cfg := Default()
	cfg.Kernel.Parallelism = -1
	require.Error(t, cfg.Validate())
}

func TestValidateFixesZeroValues(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Validate())
	require.Greater(t, cfg.Kernel.Parallelism, 0)
	require.Equal(t, defaultChunkRows, cfg.Kernel.ChunkRows)
}
