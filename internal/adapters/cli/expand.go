package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/throughput-go/internal/application/planner/commands"
)

// NewExpandCommand creates the expand command
func NewExpandCommand() *cobra.Command {
	var (
		count     float64
		save      bool
		flat      bool
		precision int
	)

	cmd := &cobra.Command{
		Use:   "expand <item>",
		Short: "Expand a count of an item into the ingredients it consumes",
		Long: `Expand a count of an item into absolute ingredient quantities.

Quantities ignore machines and productivity modules: crafting 10 of an item
needs exactly what its recipes say, scaled by yield.

Examples:
  throughput expand electronic-circuit --count 10
  throughput expand rocket-part --count 100 --flat`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item := args[0]

			ctx := env.context(cmd.Context())
			response, err := env.mediator.Send(ctx, &commands.ComputeExpansionCommand{
				Item:  item,
				Count: count,
				Save:  save,
			})
			if err != nil {
				return fmt.Errorf("failed to expand %s: %w", item, err)
			}
			result := response.(*commands.ComputeExpansionResponse)
			expansion := result.Expansion

			out := cmd.OutOrStdout()
			formatter := NewPlanFormatter(precision)

			fmt.Fprintf(out, "%v × %s\n\n", count, formatter.DisplayName(item))
			if !flat {
				fmt.Fprintln(out, formatter.FormatExpansionTree(expansion))
			}
			fmt.Fprint(out, formatter.FormatExpansionTotals(expansion))

			if result.Record != nil {
				fmt.Fprintf(out, "\n✓ Expansion saved: %s\n", result.Record.ID)
			}

			return nil
		},
	}

	cmd.Flags().Float64Var(&count, "count", 1, "Number of items to craft")
	cmd.Flags().BoolVar(&save, "save", false, "Save the expansion to history")
	cmd.Flags().BoolVar(&flat, "flat", false, "Only print the totals, not the nested tree")
	cmd.Flags().IntVar(&precision, "precision", 3, "Decimal places shown for quantities")

	return cmd
}
