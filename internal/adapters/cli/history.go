package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command with subcommands
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage saved plans",
		Long: `Manage plans saved with --save.

Plans are stored in the configured database (SQLite by default, PostgreSQL
when database.type is postgres).

Examples:
  throughput history list
  throughput history show throughput-rocket-part-a3f8e2b1
  throughput history delete throughput-rocket-part-a3f8e2b1`,
	}

	// Add subcommands
	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryShowCommand())
	cmd.AddCommand(newHistoryDeleteCommand())

	return cmd
}

// newHistoryListCommand creates the history list subcommand
func newHistoryListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved plans, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := env.history()
			if err != nil {
				return err
			}

			records, err := history.Recent(env.context(cmd.Context()), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No saved plans")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tKIND\tITEM\tQUANTITY\tCREATED")
			fmt.Fprintln(w, "--\t----\t----\t--------\t-------")
			for _, record := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					record.ID,
					record.Kind,
					record.TargetItem,
					record.Quantity.String(),
					record.CreatedAt.Format("2006-01-02 15:04"),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of plans to list (0 = all)")

	return cmd
}

// newHistoryShowCommand creates the history show subcommand
func newHistoryShowCommand() *cobra.Command {
	var precision int

	cmd := &cobra.Command{
		Use:   "show <plan-id>",
		Short: "Show a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := env.history()
			if err != nil {
				return err
			}

			record, err := history.Find(env.context(cmd.Context()), args[0])
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), NewPlanFormatter(precision).FormatRecord(record))
			return nil
		},
	}

	cmd.Flags().IntVar(&precision, "precision", 3, "Decimal places shown for amounts")

	return cmd
}

// newHistoryDeleteCommand creates the history delete subcommand
func newHistoryDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <plan-id>",
		Short: "Delete a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := env.history()
			if err != nil {
				return err
			}

			if err := history.Delete(env.context(cmd.Context()), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Plan %s deleted\n", args[0])
			return nil
		},
	}

	return cmd
}
