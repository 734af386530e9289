package helpers

import (
	"testing"

	"github.com/andrescamacho/throughput-go/internal/domain/production"
)

// Producer fixtures shared by planner tests
var (
	TestAssembler = production.Producer{Name: "assembler", CraftSpeed: 1.25, MaxProductivitySlots: 4}
	TestFurnace   = production.Producer{Name: "furnace", CraftSpeed: 2, MaxProductivitySlots: 2}
	TestDrill     = production.Producer{Name: "drill", CraftSpeed: 1, MaxProductivitySlots: 3}
)

// CreateTestItem builds a crafted item. Ingredients alternate item name and quantity.
func CreateTestItem(name, producer string, yield int, craftTime float64, ingredients ...interface{}) production.Item {
	recipe := make([]production.Ingredient, 0, len(ingredients)/2)
	for i := 0; i+1 < len(ingredients); i += 2 {
		recipe = append(recipe, production.Ingredient{
			Item:     ingredients[i].(string),
			Quantity: toFloat(ingredients[i+1]),
		})
	}

	return production.Item{
		Name:       name,
		Producer:   producer,
		Recipe:     recipe,
		YieldCount: yield,
		CraftTime:  craftTime,
	}
}

// CreateExemptItem builds a crafted item whose recipe productivity modules cannot boost
func CreateExemptItem(name, producer string, yield int, craftTime float64, ingredients ...interface{}) production.Item {
	item := CreateTestItem(name, producer, yield, craftTime, ingredients...)
	item.BoostExempt = true
	return item
}

// CreateRawItem builds a raw material with no recipe
func CreateRawItem(name string) production.Item {
	return production.Item{Name: name}
}

// NewTestCatalog builds a catalog or fails the test
func NewTestCatalog(t *testing.T, producers []production.Producer, items []production.Item, targets ...string) *production.Catalog {
	t.Helper()

	catalog, err := production.NewCatalog(producers, items, targets)
	if err != nil {
		t.Fatalf("failed to build test catalog: %v", err)
	}
	return catalog
}

// NewScenarioCatalog builds a small catalog covering the reference scenarios:
//
//	gizmo: assembler, yield 1, 5s, {plate: 2}
//	belt: assembler, boost exempt, yield 2, 0.5s, {plate: 1}
//	circuit: assembler, yield 1, 0.5s, {plate: 1, cable: 3}
//	cable: assembler, yield 2, 0.5s, {copper: 1}
//	plate: furnace, yield 1, 3.2s, {ore: 1}
//	board: assembler, yield 1, 1s, {circuit: 1, plate: 2}
//	ore, copper: raw
func NewScenarioCatalog(t *testing.T) *production.Catalog {
	return NewTestCatalog(t,
		[]production.Producer{TestAssembler, TestFurnace, TestDrill},
		[]production.Item{
			CreateRawItem("ore"),
			CreateRawItem("copper"),
			CreateTestItem("plate", "furnace", 1, 3.2, "ore", 1),
			CreateTestItem("cable", "assembler", 2, 0.5, "copper", 1),
			CreateTestItem("circuit", "assembler", 1, 0.5, "plate", 1, "cable", 3),
			CreateTestItem("gizmo", "assembler", 1, 5, "plate", 2),
			CreateExemptItem("belt", "assembler", 2, 0.5, "plate", 1),
			CreateTestItem("board", "assembler", 1, 1, "circuit", 1, "plate", 2),
		},
		"gizmo", "board",
	)
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	default:
		panic("ingredient quantity must be int or float64")
	}
}
