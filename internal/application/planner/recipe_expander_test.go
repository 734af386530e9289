package planner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/throughput-go/internal/application/planner"
	"github.com/andrescamacho/throughput-go/internal/domain/production"
	"github.com/andrescamacho/throughput-go/test/helpers"
)

func TestComputeExpansion_AbsoluteQuantities(t *testing.T) {
	// Arrange
	expander := planner.NewRecipeExpander(helpers.NewScenarioCatalog(t))

	// Act
	expansion, err := expander.ComputeExpansion(context.Background(), "circuit", 10)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{
		"circuit": 10,
		"plate":   10,
		"ore":     10,
		"cable":   30,
		"copper":  15,
	}, expansion.QuantityMap())

	items := make([]string, 0, len(expansion.Traversal))
	for _, entry := range expansion.Traversal {
		items = append(items, entry.Item)
	}
	assert.Equal(t, []string{"circuit", "plate", "ore", "cable", "copper"}, items)
	assert.Equal(t, 2, expansion.Traversal[4].Depth)
}

func TestComputeExpansion_IgnoresProductivity(t *testing.T) {
	// Arrange
	expander := planner.NewRecipeExpander(helpers.NewScenarioCatalog(t))

	// Act
	expansion, err := expander.ComputeExpansion(context.Background(), "gizmo", 1)

	// Assert: gizmo is not boost-exempt, yet draws its full recipe
	require.NoError(t, err)
	assert.Equal(t, 2.0, expansion.Quantity("plate"))
	assert.Equal(t, 2.0, expansion.Quantity("ore"))
	assert.Equal(t, 0.0, expansion.Quantity("copper"))
}

func TestComputeExpansion_AggregatesSharedIngredients(t *testing.T) {
	// Arrange
	expander := planner.NewRecipeExpander(helpers.NewScenarioCatalog(t))

	// Act
	expansion, err := expander.ComputeExpansion(context.Background(), "board", 2)

	// Assert: 2 plates through circuits plus 4 directly
	require.NoError(t, err)
	assert.Equal(t, 6.0, expansion.Quantity("plate"))
	assert.Equal(t, 6.0, expansion.Quantity("ore"))
	assert.Len(t, expansion.Totals, 6)
}

func TestComputeExpansion_ZeroYieldIsTerminal(t *testing.T) {
	// Arrange
	source := newMapSource(
		helpers.CreateTestItem("oil", "assembler", 0, 0, "b", 1),
		helpers.CreateRawItem("b"),
	)

	// Act
	expansion, err := planner.NewRecipeExpander(source).ComputeExpansion(context.Background(), "oil", 3)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"oil": 3}, expansion.QuantityMap())
}

func TestComputeExpansion_InvalidInput(t *testing.T) {
	expander := planner.NewRecipeExpander(helpers.NewScenarioCatalog(t))

	t.Run("non-positive count", func(t *testing.T) {
		_, err := expander.ComputeExpansion(context.Background(), "gizmo", 0)

		var invalid *production.ErrInvalidQuantity
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "count", invalid.Name)
		assert.ErrorIs(t, err, production.ErrInvalidInput)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := expander.ComputeExpansion(context.Background(), "rocket", 1)

		assert.ErrorIs(t, err, production.ErrInvalidInput)
	})
}

func TestComputeExpansion_Cycle(t *testing.T) {
	// Arrange
	source := newMapSource(helpers.CreateTestItem("a", "assembler", 1, 1, "a", 1))

	// Act
	_, err := planner.NewRecipeExpander(source).ComputeExpansion(context.Background(), "a", 1)

	// Assert
	var cycle *production.ErrCircularDependency
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, []string{"a", "a"}, cycle.Chain)
}

func TestComputeExpansion_RecordsMetrics(t *testing.T) {
	// Arrange
	recorder := &spyRecorder{}
	expander := planner.NewRecipeExpander(helpers.NewScenarioCatalog(t))
	expander.SetMetricsRecorder(recorder)

	// Act
	_, err := expander.ComputeExpansion(context.Background(), "plate", 4)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{planner.KindExpansion}, recorder.kinds)
	assert.Equal(t, []int{2}, recorder.visits)
}
