package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/throughput-go/internal/application/common"
	"github.com/andrescamacho/throughput-go/internal/application/planner"
	"github.com/andrescamacho/throughput-go/internal/domain/production"
)

// PlanTargetsHandler - Handles multi-target plan commands
type PlanTargetsHandler struct {
	catalog *production.Catalog
	batch   *planner.BatchPlanner
}

// NewPlanTargetsHandler creates a new plan targets handler
func NewPlanTargetsHandler(catalog *production.Catalog, batch *planner.BatchPlanner) *PlanTargetsHandler {
	return &PlanTargetsHandler{
		catalog: catalog,
		batch:   batch,
	}
}

// Handle executes the plan targets command
func (h *PlanTargetsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*PlanTargetsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	targets := cmd.Targets
	if len(targets) == 0 {
		targets = h.catalog.TargetItems()
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no targets given and the catalog declares none")
	}

	result, err := h.batch.PlanTargets(ctx, targets, cmd.Rate)
	if err != nil {
		return nil, err
	}

	return &PlanTargetsResponse{Targets: targets, Result: result}, nil
}
