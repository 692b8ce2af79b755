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

package replay

import (
	"io"
	"os"

	"github.com/flowbehappy/ringq/pkg/config"
	"github.com/flowbehappy/ringq/pkg/metrics"
	ringreplay "github.com/flowbehappy/ringq/pkg/replay"
	"github.com/flowbehappy/ringq/utils/boundedqueue"
	"github.com/flowbehappy/ringq/utils/ringbuffer"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// replayOptions defines flags for the `replay` command.
type replayOptions struct {
	configFile  string
	capacity    int
	policy      string
	logLevel    string
	logFile     string
	output      string
	showMetrics bool

	cfg         *config.RingBufferConfig
	queuePolicy boundedqueue.Policy
	script      string
}

// newReplayOptions creates new replayOptions for the `replay` command.
func newReplayOptions() *replayOptions {
	return &replayOptions{output: outputText}
}

func (o *replayOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.configFile, "config", "", "Path of the configuration file")
	cmd.Flags().IntVar(&o.capacity, "capacity", 0, "Ring buffer capacity, overrides the config file")
	cmd.Flags().StringVar(&o.policy, "policy", "", "Queue policy for push/pop/peek, fifo or lifo, overrides the config file")
	cmd.Flags().StringVar(&o.logLevel, "log-level", "", "Log level, overrides the config file")
	cmd.Flags().StringVar(&o.logFile, "log-file", "", "Log file path, overrides the config file")
	cmd.Flags().StringVar(&o.output, "output", outputText, "Output format, text or json")
	cmd.Flags().BoolVar(&o.showMetrics, "metrics", false, "Print ring buffer metrics after the replay")
}

// complete merges the config file, flags and args.
func (o *replayOptions) complete(cmd *cobra.Command, args []string) error {
	cfg := config.NewDefaultRingBufferConfig()
	if o.configFile != "" {
		if err := config.StrictDecodeFile(o.configFile, cfg); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("capacity") {
		cfg.Capacity = o.capacity
	}
	if o.policy != "" {
		cfg.Policy = o.policy
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFile != "" {
		cfg.LogFile = o.logFile
	}
	if err := cfg.ValidateAndAdjust(); err != nil {
		return err
	}
	if o.output != outputText && o.output != outputJSON {
		return errors.Errorf("unknown output format %q", o.output)
	}
	policy, err := boundedqueue.ParsePolicy(cfg.Policy)
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.queuePolicy = policy
	if len(args) > 0 {
		o.script = args[0]
	}
	return nil
}

func (o *replayOptions) initLogger() error {
	logger, props, err := log.InitLogger(&log.Config{
		Level: o.cfg.LogLevel,
		File:  log.FileLogConfig{Filename: o.cfg.LogFile},
	})
	if err != nil {
		return errors.Trace(err)
	}
	log.ReplaceGlobals(logger, props)
	return nil
}

// run runs the `replay` command.
func (o *replayOptions) run(cmd *cobra.Command) error {
	if err := o.initLogger(); err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if o.script != "" && o.script != "-" {
		f, err := os.Open(o.script)
		if err != nil {
			return errors.Trace(err)
		}
		defer f.Close()
		in = f
	}
	cmds, err := ringreplay.Parse(in)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics.InitRingBufferMetrics(registry)
	observer := metrics.NewRingBufferObserver(o.cfg.MetricsName)
	defer observer.Reset()

	rb, err := ringbuffer.New[string](o.cfg.Capacity,
		ringbuffer.WithLogger[string](log.L()),
		ringbuffer.WithObserver[string](observer))
	if err != nil {
		return err
	}
	defer rb.Destroy()

	log.Info("replay ring buffer script",
		zap.String("script", o.script),
		zap.Int("capacity", o.cfg.Capacity),
		zap.Stringer("policy", o.queuePolicy),
		zap.Int("commands", len(cmds)))
	results, err := ringreplay.Run(rb, o.queuePolicy, cmds)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if o.output == outputJSON {
		err = ringreplay.WriteJSON(out, results)
	} else {
		err = ringreplay.WriteText(out, results)
	}
	if err != nil {
		return err
	}

	if o.showMetrics {
		return writeMetrics(out, registry)
	}
	return nil
}

func writeMetrics(w io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return errors.Trace(err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// NewCmdReplay creates the `replay` command.
func NewCmdReplay() *cobra.Command {
	o := newReplayOptions()

	command := &cobra.Command{
		Use:   "replay [script]",
		Short: "Replay an operation script against a ring buffer",
		Long: `Replay reads one operation per line from the script file, or stdin when
the file is omitted or "-", and prints the outcome of each operation.
Operations: push_back V, push_front V, pop_front, pop_back, peek_front,
peek_back, push V, pop, peek, status, len, clear, dump.
push, pop and peek follow the queue policy.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.complete(cmd, args); err != nil {
				return err
			}
			return o.run(cmd)
		},
	}
	o.addFlags(command)

	return command
}
