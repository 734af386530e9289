package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/throughput-go/internal/application/planner/commands"
)

// NewTargetsCommand creates the targets command
func NewTargetsCommand() *cobra.Command {
	var (
		rate      float64
		tree      bool
		precision int
	)

	cmd := &cobra.Command{
		Use:   "targets [item...]",
		Short: "Plan every target item of the catalog at the same rate",
		Long: `Plan several items at the same rate and merge their requirements.

Without arguments the catalog's target items (the science packs of the
built-in catalog) are planned. Each target gets its own summary; the
combined table sums the rate of every item across all targets and counts
machines once from that sum.

Examples:
  throughput targets
  throughput targets --rate 45 --tree
  throughput targets automation-science-pack logistic-science-pack --rate 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("rate") {
				rate = env.cfg.Planner.DefaultRate
			}

			ctx := env.context(cmd.Context())
			response, err := env.mediator.Send(ctx, &commands.PlanTargetsCommand{
				Targets: args,
				Rate:    rate,
			})
			if err != nil {
				return err
			}
			result := response.(*commands.PlanTargetsResponse).Result

			out := cmd.OutOrStdout()
			formatter := NewPlanFormatter(precision)

			for _, plan := range result.Plans {
				fmt.Fprintf(out, "== %s ==\n", formatter.DisplayName(plan.TargetItem))
				if tree {
					fmt.Fprintln(out, formatter.FormatThroughputTree(plan))
				}
				fmt.Fprintln(out, formatter.FormatThroughputSummary(plan))
				fmt.Fprintln(out)
			}

			fmt.Fprintf(out, "Combined requirements for %d targets at %v/s\n\n", len(result.Plans), rate)
			fmt.Fprint(out, formatter.FormatThroughputTotals(result.Combined))

			return nil
		},
	}

	cmd.Flags().Float64Var(&rate, "rate", 0, "Rate for every target in items/second (default: planner.default_rate)")
	cmd.Flags().BoolVar(&tree, "tree", false, "Print the nested tree of every target")
	cmd.Flags().IntVar(&precision, "precision", 3, "Decimal places shown for rates and machine counts")

	return cmd
}
