package planner

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/throughput-go/internal/application/common"
	"github.com/andrescamacho/throughput-go/internal/domain/production"
)

// BatchResult holds one plan per target, in target order, and the merged
// requirements of running all of them at once
type BatchResult struct {
	Rate     float64
	Plans    []*production.ThroughputPlan
	Combined []production.ItemTotal
}

// BatchPlanner plans several target items at the same rate
type BatchPlanner struct {
	source     production.RecipeSource
	propagator *ThroughputPropagator
	parallel   bool
}

// NewBatchPlanner creates a batch planner. When parallel is true every target is
// propagated on its own goroutine; each propagation keeps its own accumulator.
func NewBatchPlanner(source production.RecipeSource, propagator *ThroughputPropagator, parallel bool) *BatchPlanner {
	return &BatchPlanner{
		source:     source,
		propagator: propagator,
		parallel:   parallel,
	}
}

// PlanTargets computes a throughput plan for every target at rate.
// The first failing target aborts the batch.
func (b *BatchPlanner) PlanTargets(ctx context.Context, targets []string, rate float64) (*BatchResult, error) {
	logger := common.LoggerFromContext(ctx)

	plans := make([]*production.ThroughputPlan, len(targets))
	var err error
	if b.parallel {
		err = b.planParallel(ctx, targets, rate, plans)
	} else {
		err = b.planSequential(ctx, targets, rate, plans)
	}
	if err != nil {
		return nil, err
	}

	combined, err := b.combine(plans)
	if err != nil {
		return nil, err
	}

	logger.Log(common.LevelInfo, "Batch planned", map[string]interface{}{
		"targets":      len(targets),
		"rate":         rate,
		"parallel":     b.parallel,
		"unique_items": len(combined),
	})

	return &BatchResult{Rate: rate, Plans: plans, Combined: combined}, nil
}

func (b *BatchPlanner) planSequential(ctx context.Context, targets []string, rate float64, plans []*production.ThroughputPlan) error {
	for i, target := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		plan, err := b.propagator.ComputeThroughput(ctx, target, rate)
		if err != nil {
			return fmt.Errorf("failed to plan %s: %w", target, err)
		}
		plans[i] = plan
	}
	return nil
}

func (b *BatchPlanner) planParallel(ctx context.Context, targets []string, rate float64, plans []*production.ThroughputPlan) error {
	g, gctx := errgroup.WithContext(ctx)

	for i, target := range targets {
		// Capture loop variables for goroutine
		i := i
		target := target

		g.Go(func() error {
			plan, err := b.propagator.ComputeThroughput(gctx, target, rate)
			if err != nil {
				return fmt.Errorf("failed to plan %s: %w", target, err)
			}
			// Each goroutine writes only its own slot
			plans[i] = plan
			return nil
		})
	}

	return g.Wait()
}

// combine sums the rates of every plan per item and derives machines once per item
func (b *BatchPlanner) combine(plans []*production.ThroughputPlan) ([]production.ItemTotal, error) {
	rates := make(map[string]float64)
	order := make([]string, 0)

	for _, plan := range plans {
		for _, total := range plan.Totals {
			if _, seen := rates[total.Item]; !seen {
				order = append(order, total.Item)
			}
			rates[total.Item] += total.Rate
		}
	}

	combined := make([]production.ItemTotal, 0, len(order))
	for _, item := range order {
		machinery, err := machineryFor(b.source, item, rates[item])
		if err != nil {
			return nil, err
		}
		combined = append(combined, production.ItemTotal{Item: item, Rate: rates[item], Machinery: machinery})
	}
	return combined, nil
}
