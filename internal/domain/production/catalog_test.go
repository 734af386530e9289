package production_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/throughput-go/internal/domain/production"
)

func testProducers() []production.Producer {
	return []production.Producer{
		{Name: "assembler", CraftSpeed: 1.25, MaxProductivitySlots: 4},
		{Name: "furnace", CraftSpeed: 2, MaxProductivitySlots: 2},
	}
}

func testItems() []production.Item {
	return []production.Item{
		{Name: "iron-ore"},
		{Name: "iron-plate", Producer: "furnace", YieldCount: 1, CraftTime: 3.2,
			Recipe: []production.Ingredient{{Item: "iron-ore", Quantity: 1}}},
		{Name: "iron-gear-wheel", Producer: "assembler", YieldCount: 1, CraftTime: 0.5,
			Recipe: []production.Ingredient{{Item: "iron-plate", Quantity: 2}}},
	}
}

func TestNewCatalog_Valid(t *testing.T) {
	// Act
	catalog, err := production.NewCatalog(testProducers(), testItems(), []string{"iron-gear-wheel"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, catalog.Len())
	assert.True(t, catalog.Contains("iron-plate"))
	assert.False(t, catalog.Contains("copper-plate"))
	assert.True(t, catalog.IsTarget("iron-gear-wheel"))
	assert.Equal(t, []string{"iron-gear-wheel"}, catalog.TargetItems())

	producer, ok := catalog.ProducerOf("iron-plate")
	require.True(t, ok)
	assert.Equal(t, "furnace", producer.Name)

	_, ok = catalog.ProducerOf("iron-ore")
	assert.False(t, ok)
	assert.Empty(t, catalog.Recipe("iron-ore"))
	assert.Equal(t, []production.Ingredient{{Item: "iron-plate", Quantity: 2}}, catalog.Recipe("iron-gear-wheel"))

	producers := catalog.Producers()
	require.Len(t, producers, 2)
	assert.Equal(t, "assembler", producers[0].Name)
}

func TestNewCatalog_RecipeIsCopied(t *testing.T) {
	// Arrange
	catalog, err := production.NewCatalog(testProducers(), testItems(), nil)
	require.NoError(t, err)

	// Act
	recipe := catalog.Recipe("iron-gear-wheel")
	recipe[0].Quantity = 99

	// Assert
	assert.Equal(t, 2.0, catalog.Recipe("iron-gear-wheel")[0].Quantity)
}

func TestNewCatalog_UnknownIngredient(t *testing.T) {
	// Arrange
	items := append(testItems(), production.Item{
		Name: "copper-cable", Producer: "assembler", YieldCount: 2, CraftTime: 0.5,
		Recipe: []production.Ingredient{{Item: "copper-plate", Quantity: 1}},
	})

	// Act
	_, err := production.NewCatalog(testProducers(), items, nil)

	// Assert
	var unknown *production.ErrUnknownItem
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "copper-plate", unknown.Item)
	assert.Equal(t, "copper-cable", unknown.ReferencedBy)
	assert.True(t, errors.Is(err, production.ErrInvalidCatalog))
}

func TestNewCatalog_CircularDependency(t *testing.T) {
	// Arrange
	items := []production.Item{
		{Name: "a", Producer: "assembler", YieldCount: 1, CraftTime: 1,
			Recipe: []production.Ingredient{{Item: "b", Quantity: 1}}},
		{Name: "b", Producer: "assembler", YieldCount: 1, CraftTime: 1,
			Recipe: []production.Ingredient{{Item: "a", Quantity: 1}}},
	}

	// Act
	_, err := production.NewCatalog(testProducers(), items, nil)

	// Assert
	var cycle *production.ErrCircularDependency
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, []string{"a", "b", "a"}, cycle.Chain)
	assert.Contains(t, err.Error(), "a -> b -> a")
	assert.ErrorIs(t, err, production.ErrInvalidCatalog)
}

func TestNewCatalog_SelfReference(t *testing.T) {
	// Arrange
	items := []production.Item{
		{Name: "loop", Producer: "assembler", YieldCount: 1, CraftTime: 1,
			Recipe: []production.Ingredient{{Item: "loop", Quantity: 1}}},
	}

	// Act
	_, err := production.NewCatalog(testProducers(), items, nil)

	// Assert
	var cycle *production.ErrCircularDependency
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, "loop", cycle.Item)
}

func TestNewCatalog_DegenerateRecipe(t *testing.T) {
	tests := []struct {
		name string
		item production.Item
	}{
		{
			name: "zero craft time",
			item: production.Item{Name: "bad", Producer: "assembler", YieldCount: 1, CraftTime: 0,
				Recipe: []production.Ingredient{{Item: "iron-plate", Quantity: 1}}},
		},
		{
			name: "zero yield",
			item: production.Item{Name: "bad", Producer: "assembler", YieldCount: 0, CraftTime: 1,
				Recipe: []production.Ingredient{{Item: "iron-plate", Quantity: 1}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			_, err := production.NewCatalog(testProducers(), append(testItems(), tt.item), nil)

			// Assert
			var degenerate *production.ErrDegenerateRecipe
			require.ErrorAs(t, err, &degenerate)
			assert.Equal(t, "bad", degenerate.Item)
			assert.ErrorIs(t, err, production.ErrInvalidCatalog)
		})
	}
}

func TestNewCatalog_InvalidDefinitions(t *testing.T) {
	tests := []struct {
		name      string
		producers []production.Producer
		items     []production.Item
		targets   []string
	}{
		{
			name:      "duplicate producer",
			producers: append(testProducers(), production.Producer{Name: "furnace", CraftSpeed: 1}),
			items:     testItems(),
		},
		{
			name:      "non-positive craft speed",
			producers: []production.Producer{{Name: "assembler", CraftSpeed: 0}},
		},
		{
			name:      "too many slots",
			producers: []production.Producer{{Name: "assembler", CraftSpeed: 1, MaxProductivitySlots: 7}},
		},
		{
			name:      "duplicate item",
			producers: testProducers(),
			items:     append(testItems(), production.Item{Name: "iron-ore"}),
		},
		{
			name:      "unknown producer",
			producers: testProducers(),
			items: []production.Item{{Name: "gear", Producer: "refinery", YieldCount: 1, CraftTime: 1,
				Recipe: []production.Ingredient{{Item: "gear", Quantity: 1}}}},
		},
		{
			name:      "non-positive quantity",
			producers: testProducers(),
			items: append(testItems(), production.Item{Name: "pipe", Producer: "assembler", YieldCount: 1, CraftTime: 0.5,
				Recipe: []production.Ingredient{{Item: "iron-plate", Quantity: 0}}}),
		},
		{
			name:      "duplicate ingredient",
			producers: testProducers(),
			items: append(testItems(), production.Item{Name: "pipe", Producer: "assembler", YieldCount: 1, CraftTime: 0.5,
				Recipe: []production.Ingredient{{Item: "iron-plate", Quantity: 1}, {Item: "iron-plate", Quantity: 1}}}),
		},
		{
			name:      "unknown target",
			producers: testProducers(),
			items:     testItems(),
			targets:   []string{"rocket-part"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			catalog, err := production.NewCatalog(tt.producers, tt.items, tt.targets)

			// Assert
			assert.Nil(t, catalog)
			var invalid *production.ErrInvalidDefinition
			require.ErrorAs(t, err, &invalid)
			assert.ErrorIs(t, err, production.ErrInvalidCatalog)
		})
	}
}

func TestProducer_ModifiersFor(t *testing.T) {
	producer := production.Producer{Name: "assembler", CraftSpeed: 1.25, MaxProductivitySlots: 4}

	t.Run("full loadout", func(t *testing.T) {
		m := producer.ModifiersFor(false)

		assert.InDelta(t, 1.4, m.Productivity, 1e-9)
		assert.InDelta(t, 0.4, m.SpeedPenalty, 1e-9)
		assert.Equal(t, 4, m.Modules)
		assert.InDelta(t, 0.5, producer.EffectiveCraftSpeed(m), 1e-9)
	})

	t.Run("boost exempt", func(t *testing.T) {
		m := producer.ModifiersFor(true)

		assert.Equal(t, 1.0, m.Productivity)
		assert.Equal(t, 1.0, m.SpeedPenalty)
		assert.Equal(t, 0, m.Modules)
		assert.Equal(t, 1.25, producer.EffectiveCraftSpeed(m))
	})
}

func TestErrUnknownItem_Unwrap(t *testing.T) {
	// A missing root item is bad input, a missing ingredient is a bad catalog
	assert.ErrorIs(t, &production.ErrUnknownItem{Item: "x"}, production.ErrInvalidInput)
	assert.ErrorIs(t, &production.ErrUnknownItem{Item: "x", ReferencedBy: "y"}, production.ErrInvalidCatalog)
	assert.ErrorIs(t, &production.ErrInvalidQuantity{Name: "rate", Value: -1}, production.ErrInvalidInput)
}
