package commands

import (
	"github.com/andrescamacho/throughput-go/internal/application/planner"
	"github.com/andrescamacho/throughput-go/internal/domain/production"
)

// HistoryProvider returns the plan history, opening its storage on first use
type HistoryProvider func() (*planner.PlanHistory, error)

// ComputeThroughputCommand requests a throughput plan for one item
type ComputeThroughputCommand struct {
	Item string
	Rate float64
	Save bool
}

// ComputeThroughputResponse carries the plan and, when saved, its history record
type ComputeThroughputResponse struct {
	Plan   *production.ThroughputPlan
	Record *production.PlanRecord
}

// ComputeExpansionCommand requests the ingredient expansion of a batch
type ComputeExpansionCommand struct {
	Item  string
	Count float64
	Save  bool
}

// ComputeExpansionResponse carries the expansion and, when saved, its history record
type ComputeExpansionResponse struct {
	Expansion *production.Expansion
	Record    *production.PlanRecord
}

// PlanTargetsCommand requests plans for several targets at one rate.
// An empty Targets list plans the catalog's target items.
type PlanTargetsCommand struct {
	Targets []string
	Rate    float64
}

// PlanTargetsResponse carries the batch result
type PlanTargetsResponse struct {
	Targets []string
	Result  *planner.BatchResult
}
