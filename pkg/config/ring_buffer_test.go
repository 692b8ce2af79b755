// Copyright 2024 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flowbehappy/ringq/pkg/apperror"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ringq.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultRingBufferConfig(t *testing.T) {
	cfg := NewDefaultRingBufferConfig()
	require.NoError(t, cfg.ValidateAndAdjust())
	require.Equal(t, 16, cfg.Capacity)
	require.Equal(t, "fifo", cfg.Policy)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "default", cfg.MetricsName)
}

func TestStrictDecodeFile(t *testing.T) {
	path := writeConfig(t, `
capacity = 3
policy = "lifo"
log-level = "debug"
metrics-name = "replay"
`)
	cfg := NewDefaultRingBufferConfig()
	require.NoError(t, StrictDecodeFile(path, cfg))
	require.NoError(t, cfg.ValidateAndAdjust())
	require.Equal(t, &RingBufferConfig{
		Capacity:    3,
		Policy:      "lifo",
		LogLevel:    "debug",
		MetricsName: "replay",
	}, cfg)
}

func TestStrictDecodeFileUnknownKey(t *testing.T) {
	path := writeConfig(t, "capacity = 3\nsize = 4\n")
	err := StrictDecodeFile(path, NewDefaultRingBufferConfig())
	require.Error(t, err)
	require.True(t, apperror.ErrInvalidConfig.Equal(err))
	require.Contains(t, err.Error(), "size")
}

func TestStrictDecodeFileMissing(t *testing.T) {
	err := StrictDecodeFile(filepath.Join(t.TempDir(), "absent.toml"), NewDefaultRingBufferConfig())
	require.Error(t, err)
}

func TestValidateAndAdjust(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *RingBufferConfig)
		ok     bool
	}{
		{"zero capacity", func(c *RingBufferConfig) { c.Capacity = 0 }, false},
		{"bad policy", func(c *RingBufferConfig) { c.Policy = "random" }, false},
		{"bad log level", func(c *RingBufferConfig) { c.LogLevel = "trace" }, false},
		{"empty log level", func(c *RingBufferConfig) { c.LogLevel = "" }, true},
		{"empty metrics name", func(c *RingBufferConfig) { c.MetricsName = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultRingBufferConfig()
			tt.modify(cfg)
			err := cfg.ValidateAndAdjust()
			if tt.ok {
				require.NoError(t, err)
				require.NotEmpty(t, cfg.LogLevel)
				require.NotEmpty(t, cfg.MetricsName)
				return
			}
			require.True(t, apperror.ErrInvalidConfig.Equal(err))
			require.Equal(t, apperror.ErrorTypeInvalidConfig, apperror.ErrorTypeOf(err))
		})
	}
}
