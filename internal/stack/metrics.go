// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package stack

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "netstack_engine"

const (
	operationCreate = "create"
	operationWait   = "wait"
	operationDelete = "delete"

	resultSuccess = "success"
	resultFailure = "failure"
)

// Collector is a prometheus.Collector that collects metrics about the
// engine.
type Collector struct {
	operations          *prometheus.CounterVec
	convergenceDuration *prometheus.HistogramVec
}

// NewMetricsCollector returns a new Collector.
func NewMetricsCollector() *Collector {
	return &Collector{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "operations_total",
				Help:      "The number of resource operations, by type, operation and result.",
			}, []string{"type", "operation", "result"},
		),
		convergenceDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "convergence_seconds",
				Help:      "The time taken for a resource to converge.",
				Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
			}, []string{"type"},
		),
	}
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.operations.Describe(ch)
	c.convergenceDuration.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.operations.Collect(ch)
	c.convergenceDuration.Collect(ch)
}

func (c *Collector) recordOperation(typeName, operation string, err error) {
	result := resultSuccess
	if err != nil {
		result = resultFailure
	}
	c.operations.WithLabelValues(typeName, operation, result).Inc()
}

func (c *Collector) observeConvergence(typeName string, seconds float64) {
	c.convergenceDuration.WithLabelValues(typeName).Observe(seconds)
}
