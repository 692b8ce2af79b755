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
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/flowbehappy/ringq/pkg/apperror"
	"github.com/flowbehappy/ringq/utils/boundedqueue"
	"github.com/pingcap/errors"
)

const (
	defaultCapacity    = 16
	defaultLogLevel    = "info"
	defaultMetricsName = "default"
)

type RingBufferConfig struct {
	// Capacity is the maximum number of elements the buffer holds.
	Capacity int `toml:"capacity" json:"capacity"`
	// Policy is the queue policy, "fifo" or "lifo".
	Policy string `toml:"policy" json:"policy"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log-level" json:"log-level"`
	// LogFile is the log file path. Empty means stderr.
	LogFile string `toml:"log-file" json:"log-file"`
	// MetricsName is the name label of the exported metrics.
	MetricsName string `toml:"metrics-name" json:"metrics-name"`
}

func NewDefaultRingBufferConfig() *RingBufferConfig {
	return &RingBufferConfig{
		Capacity:    defaultCapacity,
		Policy:      boundedqueue.PolicyFIFO.String(),
		LogLevel:    defaultLogLevel,
		MetricsName: defaultMetricsName,
	}
}

// ValidateAndAdjust checks the config and fills empty optional fields with defaults.
func (c *RingBufferConfig) ValidateAndAdjust() error {
	if c.Capacity < 1 {
		return apperror.ErrInvalidConfig.GenWithStackByArgs(
			fmt.Sprintf("capacity must be at least 1, got %d", c.Capacity))
	}
	if _, err := boundedqueue.ParsePolicy(c.Policy); err != nil {
		return apperror.ErrInvalidConfig.GenWithStackByArgs(
			fmt.Sprintf("unknown policy %q", c.Policy))
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return apperror.ErrInvalidConfig.GenWithStackByArgs(
			fmt.Sprintf("unknown log level %q", c.LogLevel))
	}
	if c.MetricsName == "" {
		c.MetricsName = defaultMetricsName
	}
	return nil
}

// StrictDecodeFile decodes the TOML file at path into cfg.
// Keys that do not map to a field are rejected.
func StrictDecodeFile(path string, cfg *RingBufferConfig) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.Annotatef(err, "decode config file %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return apperror.ErrInvalidConfig.GenWithStackByArgs(
			fmt.Sprintf("unknown keys in %s: %s", path, strings.Join(keys, ", ")))
	}
	return nil
}
