package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/throughput-go/internal/application/common"
	"github.com/andrescamacho/throughput-go/internal/application/planner"
)

// ComputeExpansionHandler - Handles recipe expansion commands
type ComputeExpansionHandler struct {
	expander *planner.RecipeExpander
	history  HistoryProvider
}

// NewComputeExpansionHandler creates a new compute expansion handler
func NewComputeExpansionHandler(
	expander *planner.RecipeExpander,
	history HistoryProvider,
) *ComputeExpansionHandler {
	return &ComputeExpansionHandler{
		expander: expander,
		history:  history,
	}
}

// Handle executes the compute expansion command
func (h *ComputeExpansionHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ComputeExpansionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	expansion, err := h.expander.ComputeExpansion(ctx, cmd.Item, cmd.Count)
	if err != nil {
		return nil, err
	}

	response := &ComputeExpansionResponse{Expansion: expansion}
	if !cmd.Save {
		return response, nil
	}

	history, err := openHistory(h.history)
	if err != nil {
		return nil, err
	}
	response.Record, err = history.SaveExpansion(ctx, expansion)
	if err != nil {
		return nil, err
	}

	return response, nil
}
