package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/throughput-go/internal/application/planner/commands"
)

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	var (
		rate      float64
		save      bool
		flat      bool
		precision int
	)

	cmd := &cobra.Command{
		Use:   "plan <item>",
		Short: "Compute the machines and raw materials needed for a production rate",
		Long: `Propagate a target rate (items/second) through the recipe graph.

For every crafted item the plan shows the rate it must be produced at, the
number of machines needed and the productivity modules installed in them.
Demand for an item shared by several consumers is summed before machines
are counted.

The nested tree lists every branch; the totals table lists every unique
item once.

Examples:
  throughput plan automation-science-pack --rate 45
  throughput plan electronic-circuit --rate 10 --flat
  throughput plan rocket-part --rate 1 --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item := args[0]
			if !cmd.Flags().Changed("rate") {
				rate = env.cfg.Planner.DefaultRate
			}

			ctx := env.context(cmd.Context())
			response, err := env.mediator.Send(ctx, &commands.ComputeThroughputCommand{
				Item: item,
				Rate: rate,
				Save: save,
			})
			if err != nil {
				return fmt.Errorf("failed to plan %s: %w", item, err)
			}
			result := response.(*commands.ComputeThroughputResponse)
			plan := result.Plan

			out := cmd.OutOrStdout()
			formatter := NewPlanFormatter(precision)

			fmt.Fprintf(out, "%s at %v/s\n\n", formatter.DisplayName(item), rate)
			if !flat {
				fmt.Fprintln(out, formatter.FormatThroughputTree(plan))
			}
			fmt.Fprintln(out, formatter.FormatThroughputTotals(plan.Totals))
			fmt.Fprintln(out, "Machines by producer:")
			fmt.Fprint(out, formatter.FormatMachinesByProducer(plan))
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.FormatThroughputSummary(plan))

			if result.Record != nil {
				fmt.Fprintf(out, "\n✓ Plan saved: %s\n", result.Record.ID)
			}

			return nil
		},
	}

	cmd.Flags().Float64Var(&rate, "rate", 0, "Target rate in items/second (default: planner.default_rate)")
	cmd.Flags().BoolVar(&save, "save", false, "Save the plan to history")
	cmd.Flags().BoolVar(&flat, "flat", false, "Only print the totals, not the nested tree")
	cmd.Flags().IntVar(&precision, "precision", 3, "Decimal places shown for rates and machine counts")

	return cmd
}
