package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/throughput-go/internal/application/planner"
)

// NewTiersCommand creates the tiers command
func NewTiersCommand() *cobra.Command {
	var rate float64

	cmd := &cobra.Command{
		Use:   "tiers <item>",
		Short: "Group a plan by distance from raw materials",
		Long: `Plan an item and group its requirements into production tiers.

Tier 0 holds the raw materials; every other item sits one tier above its
deepest ingredient. Each tier shows the machines it needs.

Example:
  throughput tiers utility-science-pack --rate 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item := args[0]
			if !cmd.Flags().Changed("rate") {
				rate = env.cfg.Planner.DefaultRate
			}

			ctx := env.context(cmd.Context())
			plan, err := env.propagator().ComputeThroughput(ctx, item, rate)
			if err != nil {
				return fmt.Errorf("failed to plan %s: %w", item, err)
			}

			analyzer := planner.NewTierAnalyzer(env.catalog)
			tiers := analyzer.IdentifyTiers(plan)

			out := cmd.OutOrStdout()
			formatter := NewPlanFormatter(3)
			fmt.Fprintf(out, "%s at %v/s: %d tiers\n\n", formatter.DisplayName(item), rate, len(tiers))
			fmt.Fprint(out, formatter.FormatTiers(tiers))
			fmt.Fprintf(out, "\nTotal machines: %.2f\n", analyzer.TotalMachines(tiers))

			return nil
		},
	}

	cmd.Flags().Float64Var(&rate, "rate", 0, "Target rate in items/second (default: planner.default_rate)")

	return cmd
}
