package commands

import (
	"github.com/andrescamacho/throughput-go/internal/application/common"
	"github.com/andrescamacho/throughput-go/internal/application/planner"
	"github.com/andrescamacho/throughput-go/internal/domain/production"
)

// Handlers bundles the planner services the command handlers dispatch to
type Handlers struct {
	Catalog    *production.Catalog
	Propagator *planner.ThroughputPropagator
	Expander   *planner.RecipeExpander
	Batch      *planner.BatchPlanner
	History    HistoryProvider
}

// Register wires every planner command handler into the mediator
func Register(m common.Mediator, h Handlers) error {
	if err := common.RegisterHandler[*ComputeThroughputCommand](m, NewComputeThroughputHandler(h.Propagator, h.History)); err != nil {
		return err
	}
	if err := common.RegisterHandler[*ComputeExpansionCommand](m, NewComputeExpansionHandler(h.Expander, h.History)); err != nil {
		return err
	}
	return common.RegisterHandler[*PlanTargetsCommand](m, NewPlanTargetsHandler(h.Catalog, h.Batch))
}
