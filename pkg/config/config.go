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
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/vexecdb/vexec/pkg/common/vxerr"
	"github.com/vexecdb/vexec/pkg/logutil"
)

// KernelConfig tunes how vectorized kernels split their work.
type KernelConfig struct {
	// Parallelism is the number of workers kernels may fan out to.
	// 0 means runtime.NumCPU().
	Parallelism int `toml:"parallelism"`
	// ChunkRows is the number of rows each worker takes per task.
	ChunkRows int `toml:"chunk-rows"`
	// ParallelThreshold is the minimum vector length before a kernel
	// bothers going parallel.
	ParallelThreshold int `toml:"parallel-threshold"`
}

type Config struct {
	Log    logutil.LogConfig `toml:"log"`
	Kernel KernelConfig      `toml:"kernel"`
}

const (
	defaultChunkRows         = 8192
	defaultParallelThreshold = 65536
)

func Default() *Config {
	return &Config{
		Log: logutil.LogConfig{
			Level:   "info",
			Format:  "console",
			MaxSize: 512,
		},
		Kernel: KernelConfig{
			Parallelism:       runtime.NumCPU(),
			ChunkRows:         defaultChunkRows,
			ParallelThreshold: defaultParallelThreshold,
		},
	}
}

// Load reads a toml file over the defaults, then validates.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyLogger points the global logger at the [log] section.
func (c *Config) ApplyLogger() {
	logutil.SetupLogger(&c.Log)
}

func (c *Config) Validate() error {
	if c.Kernel.Parallelism < 0 {
		return vxerr.NewInvalidArg(nil, "kernel.parallelism", c.Kernel.Parallelism)
	}
	if c.Kernel.Parallelism == 0 {
		c.Kernel.Parallelism = runtime.NumCPU()
	}
	if c.Kernel.ChunkRows <= 0 {
		c.Kernel.ChunkRows = defaultChunkRows
	}
	if c.Kernel.ParallelThreshold <= 0 {
		c.Kernel.ParallelThreshold = defaultParallelThreshold
	}
	return nil
}
