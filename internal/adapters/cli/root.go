package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath  string
	catalogPath string
	verbose     bool

	// env is built once per invocation by the root PersistentPreRunE
	env *environment
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "throughput",
		Short: "Factory throughput planner",
		Long: `Throughput computes how many machines and how much raw material a
factory needs to sustain a target output rate.

Rates propagate down the recipe graph, productivity modules reduce
ingredient draw, and every item's demand is aggregated across all of its
consumers before machines are counted.

Examples:
  throughput plan automation-science-pack --rate 45
  throughput expand electronic-circuit --count 10
  throughput targets --rate 45
  throughput tiers utility-science-pack --rate 10
  throughput items --producer chemical-plant
  throughput history list`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnvironment(configPath, catalogPath, verbose)
			if err != nil {
				return err
			}
			env = e
			return nil
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: throughput.yaml in ., ./configs or ~/.throughput)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "",
		"Path to a catalog YAML document (default: built-in catalog)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewExpandCommand())
	rootCmd.AddCommand(NewTargetsCommand())
	rootCmd.AddCommand(NewTiersCommand())
	rootCmd.AddCommand(NewItemsCommand())
	rootCmd.AddCommand(NewProducersCommand())
	rootCmd.AddCommand(NewHistoryCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	err := rootCmd.Execute()

	if closeErr := closeEnvironment(); closeErr != nil {
		fmt.Fprintln(os.Stderr, closeErr)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// closeEnvironment flushes metrics and releases the database and log file
func closeEnvironment() error {
	if env == nil {
		return nil
	}
	err := env.close()
	env = nil
	return err
}
