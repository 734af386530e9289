package planner

import (
	"context"
	"math"
	"time"

	"github.com/andrescamacho/throughput-go/internal/application/common"
	"github.com/andrescamacho/throughput-go/internal/domain/production"
)

// DefaultMaxRecipeDepth bounds recursion when the recipe source was not validated as a catalog
const DefaultMaxRecipeDepth = 64

// ThroughputPropagator computes the upstream rates and machine counts needed to
// sustain a target output rate of one item.
//
// The walk is depth-first. Every visit records the rate its branch demands; rates
// are then summed per unique item and machine counts are derived once from the
// summed rate, so fractional machine counts of shared ingredients never add up
// to more than the item actually needs.
type ThroughputPropagator struct {
	source   production.RecipeSource
	maxDepth int
	metrics  MetricsRecorder
}

// NewThroughputPropagator creates a propagator over the given recipe source
func NewThroughputPropagator(source production.RecipeSource) *ThroughputPropagator {
	return &ThroughputPropagator{
		source:   source,
		maxDepth: DefaultMaxRecipeDepth,
		metrics:  noOpRecorder{},
	}
}

// SetMaxDepth changes the recursion depth guard (values < 1 restore the default)
func (p *ThroughputPropagator) SetMaxDepth(depth int) {
	if depth < 1 {
		depth = DefaultMaxRecipeDepth
	}
	p.maxDepth = depth
}

// SetMetricsRecorder installs a metrics recorder (nil disables recording)
func (p *ThroughputPropagator) SetMetricsRecorder(recorder MetricsRecorder) {
	if recorder == nil {
		recorder = noOpRecorder{}
	}
	p.metrics = recorder
}

// ComputeThroughput propagates rate (items/second of item) through the recipe graph.
// Input is validated before traversal; any configuration error found on the way
// aborts the computation with no partial plan.
func (p *ThroughputPropagator) ComputeThroughput(
	ctx context.Context,
	item string,
	rate float64,
) (*production.ThroughputPlan, error) {
	logger := common.LoggerFromContext(ctx)

	if err := validateRequest(p.source, item, "rate", rate); err != nil {
		return nil, err
	}

	start := time.Now()
	walk := &throughputWalk{
		source:   p.source,
		maxDepth: p.maxDepth,
		rates:    make(map[string]float64),
		visiting: make(map[string]bool),
	}

	err := walk.visit(ctx, item, rate, 0, []string{})
	p.metrics.RecordComputation(KindThroughput, time.Since(start).Seconds(), len(walk.traversal), err == nil)
	if err != nil {
		logger.Log(common.LevelError, "Throughput propagation failed", map[string]interface{}{
			"item":  item,
			"rate":  rate,
			"error": err.Error(),
		})
		return nil, err
	}

	totals := make([]production.ItemTotal, 0, len(walk.order))
	for _, name := range walk.order {
		total := production.ItemTotal{Item: name, Rate: walk.rates[name]}
		machinery, err := machineryFor(p.source, name, total.Rate)
		if err != nil {
			return nil, err
		}
		total.Machinery = machinery
		totals = append(totals, total)
	}

	logger.Log(common.LevelDebug, "Throughput propagated", map[string]interface{}{
		"item":         item,
		"rate":         rate,
		"visits":       len(walk.traversal),
		"unique_items": len(totals),
	})

	return production.NewThroughputPlan(item, rate, walk.traversal, totals), nil
}

// throughputWalk holds the per-call accumulator state of one propagation
type throughputWalk struct {
	source    production.RecipeSource
	maxDepth  int
	traversal []production.TraversalEntry
	rates     map[string]float64
	order     []string
	visiting  map[string]bool
}

// visit records the demand of one branch on item and recurses into its recipe
func (w *throughputWalk) visit(ctx context.Context, item string, rate float64, depth int, path []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := guardRecursion(w.source, item, depth, w.maxDepth, w.visiting, path); err != nil {
		return err
	}

	w.visiting[item] = true
	defer func() { w.visiting[item] = false }()

	if _, seen := w.rates[item]; !seen {
		w.order = append(w.order, item)
	}
	w.rates[item] += rate

	machinery, err := machineryFor(w.source, item, rate)
	if err != nil {
		return err
	}
	w.traversal = append(w.traversal, production.TraversalEntry{
		Item:      item,
		Depth:     depth,
		Rate:      rate,
		Machinery: machinery,
	})
	if machinery == nil {
		return nil
	}

	producer, _ := w.source.ProducerOf(item)
	modifiers := producer.ModifiersFor(w.source.IsBoostExempt(item))
	yield := float64(w.source.YieldCount(item))
	currentPath := append(path, item)

	for _, ingredient := range w.source.Recipe(item) {
		// Productivity reduces ingredient draw, never the parent's own output
		childRate := rate / modifiers.Productivity * (ingredient.Quantity / yield)
		if err := w.visit(ctx, ingredient.Item, childRate, depth+1, currentPath); err != nil {
			return err
		}
	}

	return nil
}

// machineryFor derives the machines needed to sustain rate of item.
// Returns nil for terminal items: no producer, no recipe, or no craft time.
func machineryFor(source production.RecipeSource, item string, rate float64) (*production.Machinery, error) {
	producer, ok := source.ProducerOf(item)
	if !ok || len(source.Recipe(item)) == 0 || source.CraftTime(item) == 0 {
		return nil, nil
	}

	yield := source.YieldCount(item)
	if yield == 0 {
		return nil, &production.ErrDegenerateRecipe{Item: item, Reason: "yield count is zero"}
	}

	modifiers := producer.ModifiersFor(source.IsBoostExempt(item))
	perMachine := modifiers.Productivity * producer.EffectiveCraftSpeed(modifiers) * float64(yield) / source.CraftTime(item)
	if !(perMachine > 0) {
		return nil, &production.ErrDegenerateRecipe{Item: item, Reason: "producer output rate is not positive"}
	}

	return &production.Machinery{
		Producer: producer.Name,
		Machines: rate / perMachine,
		Modules:  modifiers.Modules,
	}, nil
}

// validateRequest rejects unknown targets and non-positive or non-finite quantities
func validateRequest(source production.RecipeSource, item, name string, value float64) error {
	if !source.Contains(item) {
		return &production.ErrUnknownItem{Item: item}
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return &production.ErrInvalidQuantity{Name: name, Value: value}
	}
	return nil
}

// guardRecursion reports cycles, runaway depth and dangling ingredient references
func guardRecursion(
	source production.RecipeSource,
	item string,
	depth, maxDepth int,
	visiting map[string]bool,
	path []string,
) error {
	if visiting[item] || depth > maxDepth {
		chain := make([]string, 0, len(path)+1)
		chain = append(chain, path...)
		return &production.ErrCircularDependency{Item: item, Chain: append(chain, item)}
	}
	if !source.Contains(item) {
		referencedBy := ""
		if len(path) > 0 {
			referencedBy = path[len(path)-1]
		}
		return &production.ErrUnknownItem{Item: item, ReferencedBy: referencedBy}
	}
	return nil
}
