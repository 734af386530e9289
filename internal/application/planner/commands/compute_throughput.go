package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/throughput-go/internal/application/common"
	"github.com/andrescamacho/throughput-go/internal/application/planner"
)

// ComputeThroughputHandler - Handles throughput plan commands
type ComputeThroughputHandler struct {
	propagator *planner.ThroughputPropagator
	history    HistoryProvider
}

// NewComputeThroughputHandler creates a new compute throughput handler
func NewComputeThroughputHandler(
	propagator *planner.ThroughputPropagator,
	history HistoryProvider,
) *ComputeThroughputHandler {
	return &ComputeThroughputHandler{
		propagator: propagator,
		history:    history,
	}
}

// Handle executes the compute throughput command
func (h *ComputeThroughputHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ComputeThroughputCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	plan, err := h.propagator.ComputeThroughput(ctx, cmd.Item, cmd.Rate)
	if err != nil {
		return nil, err
	}

	response := &ComputeThroughputResponse{Plan: plan}
	if !cmd.Save {
		return response, nil
	}

	history, err := openHistory(h.history)
	if err != nil {
		return nil, err
	}
	response.Record, err = history.SaveThroughput(ctx, plan)
	if err != nil {
		return nil, err
	}

	return response, nil
}

func openHistory(provider HistoryProvider) (*planner.PlanHistory, error) {
	if provider == nil {
		return nil, fmt.Errorf("plan history is not configured")
	}
	return provider()
}
