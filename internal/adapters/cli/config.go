package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect throughput configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (TP_* prefix, DATABASE_URL)
2. Config file (throughput.yaml)
3. Default values

Example:
  throughput config show`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := env.cfg
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Throughput Configuration")
			fmt.Fprintln(out, "========================")

			fmt.Fprintln(out, "\nCatalog:")
			if cfg.Catalog.Path != "" {
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Catalog.Path)
			} else {
				fmt.Fprintf(out, "  Path:             (built-in)\n")
			}
			fmt.Fprintf(out, "  Items:            %d\n", env.catalog.Len())
			fmt.Fprintf(out, "  Producers:        %d\n", len(env.catalog.Producers()))
			fmt.Fprintf(out, "  Targets:          %d\n", len(env.catalog.TargetItems()))
			fmt.Fprintf(out, "  Max Depth:        %d\n", cfg.Catalog.MaxDepth)

			fmt.Fprintln(out, "\nPlanner:")
			fmt.Fprintf(out, "  Default Rate:     %v/s\n", cfg.Planner.DefaultRate)
			fmt.Fprintf(out, "  Parallel:         %v\n", cfg.Planner.Parallel)

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			if cfg.Database.Type == "postgres" {
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
				fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)
			} else {
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			}

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %v\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Fprintf(out, "  Textfile:         %s\n", cfg.Metrics.TextfilePath)
			}

			return nil
		},
	}

	return cmd
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); !ok {
		return raw
	}
	u.User = url.UserPassword(u.User.Username(), "xxxxx")
	return u.String()
}
