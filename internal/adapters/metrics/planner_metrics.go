package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/throughput-go/internal/application/planner"
)

// PlannerMetricsCollector records throughput and expansion computations
type PlannerMetricsCollector struct {
	computationsTotal   *prometheus.CounterVec
	computationDuration *prometheus.HistogramVec
	visits              *prometheus.HistogramVec

	catalogItems     prometheus.Gauge
	catalogProducers prometheus.Gauge
}

// Verify interface compliance
var _ planner.MetricsRecorder = (*PlannerMetricsCollector)(nil)

// NewPlannerMetricsCollector creates a new planner metrics collector
func NewPlannerMetricsCollector() *PlannerMetricsCollector {
	return &PlannerMetricsCollector{
		computationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "computations_total",
				Help:      "Total number of planner computations by kind and status",
			},
			[]string{"kind", "status"},
		),

		computationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "computation_duration_seconds",
				Help:      "Planner computation duration distribution",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"kind"},
		),

		// One visit per recipe-tree node, repeated subtrees included
		visits: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "recipe_visits",
				Help:      "Recipe tree nodes visited per computation",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"kind"},
		),

		catalogItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "items",
			Help:      "Number of items in the loaded catalog",
		}),

		catalogProducers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "producers",
			Help:      "Number of producers in the loaded catalog",
		}),
	}
}

// Register registers all planner metrics with the Prometheus registry
func (c *PlannerMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	collectors := []prometheus.Collector{
		c.computationsTotal,
		c.computationDuration,
		c.visits,
		c.catalogItems,
		c.catalogProducers,
	}

	for _, collector := range collectors {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

// RecordComputation records one planner computation
func (c *PlannerMetricsCollector) RecordComputation(kind string, durationSeconds float64, visits int, success bool) {
	status := "success"
	if !success {
		status = "error"
	}

	c.computationsTotal.WithLabelValues(kind, status).Inc()
	c.computationDuration.WithLabelValues(kind).Observe(durationSeconds)
	if success {
		c.visits.WithLabelValues(kind).Observe(float64(visits))
	}
}

// RecordCatalog records the size of the loaded catalog
func (c *PlannerMetricsCollector) RecordCatalog(items, producers int) {
	c.catalogItems.Set(float64(items))
	c.catalogProducers.Set(float64(producers))
}
