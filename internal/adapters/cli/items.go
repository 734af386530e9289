package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/throughput-go/internal/domain/production"
)

// NewItemsCommand creates the items command
func NewItemsCommand() *cobra.Command {
	var (
		producer string
		rawOnly  bool
	)

	cmd := &cobra.Command{
		Use:   "items",
		Short: "List the items of the catalog",
		Long: `List every item of the catalog with its producer and recipe.

Examples:
  throughput items
  throughput items --producer chemical-plant
  throughput items --raw`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if producer != "" {
				if _, ok := env.catalog.Producer(producer); !ok {
					return fmt.Errorf("unknown producer: %s", producer)
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ITEM\tPRODUCER\tYIELD\tTIME\tEXEMPT\tRECIPE")
			fmt.Fprintln(w, "----\t--------\t-----\t----\t------\t------")

			for _, item := range env.catalog.Items() {
				if producer != "" && item.Producer != producer {
					continue
				}
				if rawOnly && item.IsCrafted() {
					continue
				}

				marker := ""
				if item.BoostExempt {
					marker = "yes"
				}
				if env.catalog.IsTarget(item.Name) {
					marker = strings.TrimSpace(marker + " target")
				}

				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
					item.Name,
					orDash(item.Producer),
					item.YieldCount,
					strconv.FormatFloat(item.CraftTime, 'f', -1, 64),
					orDash(marker),
					formatRecipe(item.Recipe),
				)
			}

			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&producer, "producer", "", "Only list items made by this producer")
	cmd.Flags().BoolVar(&rawOnly, "raw", false, "Only list raw materials, fluids and byproducts")

	return cmd
}

// NewProducersCommand creates the producers command
func NewProducersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "producers",
		Short: "List the producers of the catalog",
		Long: `List every producer with its craft speed, productivity module slots and the
modifiers a full module loadout applies.

Example:
  throughput producers`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRODUCER\tCRAFT SPEED\tSLOTS\tPRODUCTIVITY\tEFFECTIVE SPEED")
			fmt.Fprintln(w, "--------\t-----------\t-----\t------------\t---------------")

			for _, p := range env.catalog.Producers() {
				m := p.ModifiersFor(false)
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
					p.Name,
					strconv.FormatFloat(p.CraftSpeed, 'f', -1, 64),
					p.MaxProductivitySlots,
					strconv.FormatFloat(m.Productivity, 'f', 2, 64),
					strconv.FormatFloat(p.EffectiveCraftSpeed(m), 'f', 4, 64),
				)
			}

			return w.Flush()
		},
	}

	return cmd
}

func formatRecipe(recipe []production.Ingredient) string {
	if len(recipe) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(recipe))
	for _, ingredient := range recipe {
		parts = append(parts, strconv.FormatFloat(ingredient.Quantity, 'f', -1, 64)+" "+ingredient.Item)
	}
	return strings.Join(parts, ", ")
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
