package planner

import (
	"context"
	"time"

	"github.com/andrescamacho/throughput-go/internal/application/common"
	"github.com/andrescamacho/throughput-go/internal/domain/production"
)

// RecipeExpander expands a count of an item into the absolute quantities of
// every ingredient consumed to craft it. No productivity is applied and no
// machines are derived; it answers "how much of everything goes into N of X".
type RecipeExpander struct {
	source   production.RecipeSource
	maxDepth int
	metrics  MetricsRecorder
}

// NewRecipeExpander creates an expander over the given recipe source
func NewRecipeExpander(source production.RecipeSource) *RecipeExpander {
	return &RecipeExpander{
		source:   source,
		maxDepth: DefaultMaxRecipeDepth,
		metrics:  noOpRecorder{},
	}
}

// SetMaxDepth changes the recursion depth guard (values < 1 restore the default)
func (e *RecipeExpander) SetMaxDepth(depth int) {
	if depth < 1 {
		depth = DefaultMaxRecipeDepth
	}
	e.maxDepth = depth
}

// SetMetricsRecorder installs a metrics recorder (nil disables recording)
func (e *RecipeExpander) SetMetricsRecorder(recorder MetricsRecorder) {
	if recorder == nil {
		recorder = noOpRecorder{}
	}
	e.metrics = recorder
}

// ComputeExpansion expands count units of item down to its terminal ingredients
func (e *RecipeExpander) ComputeExpansion(
	ctx context.Context,
	item string,
	count float64,
) (*production.Expansion, error) {
	logger := common.LoggerFromContext(ctx)

	if err := validateRequest(e.source, item, "count", count); err != nil {
		return nil, err
	}

	start := time.Now()
	walk := &expansionWalk{
		source:     e.source,
		maxDepth:   e.maxDepth,
		quantities: make(map[string]float64),
		visiting:   make(map[string]bool),
	}

	err := walk.visit(ctx, item, count, 0, []string{})
	e.metrics.RecordComputation(KindExpansion, time.Since(start).Seconds(), len(walk.traversal), err == nil)
	if err != nil {
		logger.Log(common.LevelError, "Recipe expansion failed", map[string]interface{}{
			"item":  item,
			"count": count,
			"error": err.Error(),
		})
		return nil, err
	}

	totals := make([]production.ItemQuantity, 0, len(walk.order))
	for _, name := range walk.order {
		totals = append(totals, production.ItemQuantity{Item: name, Quantity: walk.quantities[name]})
	}

	logger.Log(common.LevelDebug, "Recipe expanded", map[string]interface{}{
		"item":         item,
		"count":        count,
		"visits":       len(walk.traversal),
		"unique_items": len(totals),
	})

	return production.NewExpansion(item, count, walk.traversal, totals), nil
}

// expansionWalk holds the per-call accumulator state of one expansion
type expansionWalk struct {
	source     production.RecipeSource
	maxDepth   int
	traversal  []production.ExpansionEntry
	quantities map[string]float64
	order      []string
	visiting   map[string]bool
}

func (w *expansionWalk) visit(ctx context.Context, item string, quantity float64, depth int, path []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := guardRecursion(w.source, item, depth, w.maxDepth, w.visiting, path); err != nil {
		return err
	}

	w.visiting[item] = true
	defer func() { w.visiting[item] = false }()

	if _, seen := w.quantities[item]; !seen {
		w.order = append(w.order, item)
	}
	w.quantities[item] += quantity
	w.traversal = append(w.traversal, production.ExpansionEntry{Item: item, Depth: depth, Quantity: quantity})

	// Byproduct-only items carry no yield and are not expanded further
	yield := w.source.YieldCount(item)
	if yield == 0 {
		return nil
	}

	currentPath := append(path, item)
	for _, ingredient := range w.source.Recipe(item) {
		childQuantity := quantity * ingredient.Quantity / float64(yield)
		if err := w.visit(ctx, ingredient.Item, childQuantity, depth+1, currentPath); err != nil {
			return err
		}
	}

	return nil
}
