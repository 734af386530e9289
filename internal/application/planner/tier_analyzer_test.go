package planner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/throughput-go/internal/application/planner"
	"github.com/andrescamacho/throughput-go/test/helpers"
)

func tierItems(tier planner.Tier) []string {
	names := make([]string, 0, len(tier.Items))
	for _, item := range tier.Items {
		names = append(names, item.Item)
	}
	return names
}

func TestIdentifyTiers(t *testing.T) {
	// Arrange
	catalog := helpers.NewScenarioCatalog(t)
	plan, err := planner.NewThroughputPropagator(catalog).ComputeThroughput(context.Background(), "board", 1)
	require.NoError(t, err)
	analyzer := planner.NewTierAnalyzer(catalog)

	// Act
	tiers := analyzer.IdentifyTiers(plan)

	// Assert
	require.Len(t, tiers, 4)
	assert.Equal(t, []string{"ore", "copper"}, tierItems(tiers[0]))
	assert.Equal(t, []string{"plate", "cable"}, tierItems(tiers[1]))
	assert.Equal(t, []string{"circuit"}, tierItems(tiers[2]))
	assert.Equal(t, []string{"board"}, tierItems(tiers[3]))

	for i, tier := range tiers {
		assert.Equal(t, i, tier.Level)
	}
	assert.Equal(t, 0.0, tiers[0].Machines)

	plate, _ := plan.Total("plate")
	cable, _ := plan.Total("cable")
	assert.InDelta(t, plate.Machinery.Machines+cable.Machinery.Machines, tiers[1].Machines, tolerance)

	total := 0.0
	for _, machines := range plan.MachinesByProducer() {
		total += machines
	}
	assert.InDelta(t, total, analyzer.TotalMachines(tiers), tolerance)
}

func TestIdentifyTiers_RawTarget(t *testing.T) {
	// Arrange
	catalog := helpers.NewScenarioCatalog(t)
	plan, err := planner.NewThroughputPropagator(catalog).ComputeThroughput(context.Background(), "copper", 3)
	require.NoError(t, err)

	// Act
	tiers := planner.NewTierAnalyzer(catalog).IdentifyTiers(plan)

	// Assert
	require.Len(t, tiers, 1)
	assert.Equal(t, []string{"copper"}, tierItems(tiers[0]))
}
