package planner

import (
	"github.com/andrescamacho/throughput-go/internal/domain/production"
	"github.com/andrescamacho/throughput-go/pkg/utils"
)

// Tier groups the items of a plan that sit at the same distance from raw materials
type Tier struct {
	Level    int // 0 = raw materials, increases toward the target
	Items    []production.ItemTotal
	Machines float64
}

// TierAnalyzer groups the totals of a throughput plan into production tiers
type TierAnalyzer struct {
	source production.RecipeSource
}

// NewTierAnalyzer creates a new tier analyzer
func NewTierAnalyzer(source production.RecipeSource) *TierAnalyzer {
	return &TierAnalyzer{source: source}
}

// IdentifyTiers groups plan totals by tier, ordered from raw materials to the target.
//
// Example plan:
//
//	electronic-circuit (tier 3)
//	├── iron-plate (tier 1)
//	│   └── iron-ore (tier 0)
//	└── copper-cable (tier 2)
//	    └── copper-plate (tier 1)
//	        └── copper-ore (tier 0)
//
// Result:
// Tier 0: [iron-ore, copper-ore]
// Tier 1: [iron-plate, copper-plate]
// Tier 2: [copper-cable]
// Tier 3: [electronic-circuit]
//
// Items within a tier keep the first-discovery order of the plan.
func (a *TierAnalyzer) IdentifyTiers(plan *production.ThroughputPlan) []Tier {
	depthMap := make(map[string]int, len(plan.Totals))
	a.computeDepth(plan, plan.TargetItem, depthMap)

	levelMap := make(map[int]*Tier)
	maxLevel := 0
	for _, total := range plan.Totals {
		level := depthMap[total.Item]
		tier, exists := levelMap[level]
		if !exists {
			tier = &Tier{Level: level}
			levelMap[level] = tier
		}
		tier.Items = append(tier.Items, total)
		if total.Machinery != nil {
			tier.Machines += total.Machinery.Machines
		}
		if level > maxLevel {
			maxLevel = level
		}
	}

	result := make([]Tier, 0, maxLevel+1)
	for level := 0; level <= maxLevel; level++ {
		if tier, exists := levelMap[level]; exists {
			result = append(result, *tier)
		}
	}

	return result
}

// computeDepth calculates the tier of an item:
// - terminal items: 0
// - crafted items: max(ingredient tiers) + 1
func (a *TierAnalyzer) computeDepth(plan *production.ThroughputPlan, item string, depthMap map[string]int) int {
	if depth, exists := depthMap[item]; exists {
		return depth
	}

	total, ok := plan.Total(item)
	if !ok || total.IsTerminal() {
		depthMap[item] = 0
		return 0
	}

	maxChildDepth := 0
	for _, ingredient := range a.source.Recipe(item) {
		maxChildDepth = utils.Max(maxChildDepth, a.computeDepth(plan, ingredient.Item, depthMap))
	}

	depth := maxChildDepth + 1
	depthMap[item] = depth
	return depth
}

// TotalMachines sums the machines of every tier
func (a *TierAnalyzer) TotalMachines(tiers []Tier) float64 {
	total := 0.0
	for _, tier := range tiers {
		total += tier.Machines
	}
	return total
}
