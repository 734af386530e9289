package metrics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/throughput-go/internal/adapters/metrics"
	"github.com/andrescamacho/throughput-go/internal/application/planner"
)

func TestPlannerMetricsCollector_RecordComputation(t *testing.T) {
	// Arrange
	metrics.InitRegistry()
	t.Cleanup(func() { metrics.Registry = nil })

	collector := metrics.NewPlannerMetricsCollector()
	require.NoError(t, collector.Register())

	// Act
	collector.RecordComputation(planner.KindThroughput, 0.002, 5, true)
	collector.RecordComputation(planner.KindThroughput, 0.001, 0, false)
	collector.RecordComputation(planner.KindExpansion, 0.003, 8, true)

	// Assert
	count, err := testutil.GatherAndCount(metrics.Registry, "throughput_planner_computations_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	visitSeries, err := testutil.GatherAndCount(metrics.Registry, "throughput_planner_recipe_visits")
	require.NoError(t, err)
	assert.Equal(t, 2, visitSeries)
}

func TestPlannerMetricsCollector_RegisterWithoutRegistry(t *testing.T) {
	// Arrange
	metrics.Registry = nil
	collector := metrics.NewPlannerMetricsCollector()

	// Act
	err := collector.Register()

	// Assert
	assert.NoError(t, err)
	assert.False(t, metrics.IsEnabled())
}

func TestWriteTextfile(t *testing.T) {
	// Arrange
	metrics.InitRegistry()
	t.Cleanup(func() { metrics.Registry = nil })

	collector := metrics.NewPlannerMetricsCollector()
	require.NoError(t, collector.Register())
	collector.RecordCatalog(50, 8)
	collector.RecordComputation(planner.KindExpansion, 0.01, 12, true)

	path := filepath.Join(t.TempDir(), "throughput.prom")

	// Act
	err := metrics.WriteTextfile(path)

	// Assert
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "throughput_catalog_items 50")
	assert.Contains(t, string(data), `throughput_planner_computations_total{kind="expansion",status="success"} 1`)
}
