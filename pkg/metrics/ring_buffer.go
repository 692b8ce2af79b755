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

package metrics

import (
	"github.com/flowbehappy/ringq/utils/ringbuffer"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RingBufferOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ringq",
			Subsystem: "ring_buffer",
			Name:      "operations_total",
			Help:      "Total number of ring buffer operations by result",
		}, []string{"name", "op", "status"})

	RingBufferLengthGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "ringq",
			Subsystem: "ring_buffer",
			Name:      "length",
			Help:      "Number of elements held by the ring buffer",
		}, []string{"name"})
)

func InitRingBufferMetrics(registry *prometheus.Registry) {
	registry.MustRegister(RingBufferOperationCounter)
	registry.MustRegister(RingBufferLengthGauge)
}

// RingBufferObserver exports ring buffer operations under one name label.
type RingBufferObserver struct {
	name   string
	length prometheus.Gauge
}

var _ ringbuffer.Observer = (*RingBufferObserver)(nil)

func NewRingBufferObserver(name string) *RingBufferObserver {
	return &RingBufferObserver{
		name:   name,
		length: RingBufferLengthGauge.WithLabelValues(name),
	}
}

func (o *RingBufferObserver) Observe(op ringbuffer.Op, status ringbuffer.Status, length int) {
	RingBufferOperationCounter.WithLabelValues(o.name, op.String(), status.String()).Inc()
	o.length.Set(float64(length))
}

// Reset drops every series exported under this observer's name.
func (o *RingBufferObserver) Reset() {
	RingBufferOperationCounter.DeletePartialMatch(prometheus.Labels{"name": o.name})
	RingBufferLengthGauge.DeleteLabelValues(o.name)
	o.length = RingBufferLengthGauge.WithLabelValues(o.name)
}
