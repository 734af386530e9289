package planner

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/throughput-go/internal/application/common"
	"github.com/andrescamacho/throughput-go/internal/domain/production"
	"github.com/andrescamacho/throughput-go/internal/domain/shared"
	"github.com/andrescamacho/throughput-go/pkg/utils"
)

// recordedPlaces is the number of decimal places kept for stored amounts
const recordedPlaces = 6

// PlanHistory saves computed plans and reads them back
type PlanHistory struct {
	repo  production.PlanRepository
	clock shared.Clock
}

// NewPlanHistory creates a plan history service.
// A nil clock falls back to the system clock.
func NewPlanHistory(repo production.PlanRepository, clock shared.Clock) *PlanHistory {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &PlanHistory{repo: repo, clock: clock}
}

// SaveThroughput records the totals of a throughput plan
func (h *PlanHistory) SaveThroughput(ctx context.Context, plan *production.ThroughputPlan) (*production.PlanRecord, error) {
	totals := make([]production.RecordedTotal, 0, len(plan.Totals))
	for _, total := range plan.Totals {
		recorded := production.RecordedTotal{
			Item:   total.Item,
			Amount: toDecimal(total.Rate),
		}
		if total.Machinery != nil {
			recorded.Producer = total.Machinery.Producer
			recorded.Machines = toDecimal(total.Machinery.Machines)
			recorded.Modules = total.Machinery.Modules
		}
		totals = append(totals, recorded)
	}

	return h.save(ctx, production.PlanKindThroughput, plan.TargetItem, plan.TargetRate, totals)
}

// SaveExpansion records the totals of a recipe expansion
func (h *PlanHistory) SaveExpansion(ctx context.Context, expansion *production.Expansion) (*production.PlanRecord, error) {
	totals := make([]production.RecordedTotal, 0, len(expansion.Totals))
	for _, total := range expansion.Totals {
		totals = append(totals, production.RecordedTotal{
			Item:   total.Item,
			Amount: toDecimal(total.Quantity),
		})
	}

	return h.save(ctx, production.PlanKindExpansion, expansion.TargetItem, expansion.Count, totals)
}

func (h *PlanHistory) save(
	ctx context.Context,
	kind, targetItem string,
	quantity float64,
	totals []production.RecordedTotal,
) (*production.PlanRecord, error) {
	logger := common.LoggerFromContext(ctx)

	record := &production.PlanRecord{
		ID:         utils.GeneratePlanID(kind, targetItem),
		Kind:       kind,
		TargetItem: targetItem,
		Quantity:   toDecimal(quantity),
		Totals:     totals,
		CreatedAt:  h.clock.Now(),
	}

	if err := h.repo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}

	logger.Log(common.LevelInfo, "Plan saved", map[string]interface{}{
		"plan_id": record.ID,
		"kind":    kind,
		"item":    targetItem,
	})

	return record, nil
}

// Recent returns the latest saved plans, newest first
func (h *PlanHistory) Recent(ctx context.Context, limit int) ([]*production.PlanRecord, error) {
	records, err := h.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return records, nil
}

// Find returns a saved plan by ID
func (h *PlanHistory) Find(ctx context.Context, id string) (*production.PlanRecord, error) {
	record, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find plan %s: %w", id, err)
	}
	return record, nil
}

// Delete removes a saved plan
func (h *PlanHistory) Delete(ctx context.Context, id string) error {
	if err := h.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete plan %s: %w", id, err)
	}
	return nil
}

func toDecimal(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value).Round(recordedPlaces)
}
