package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/numconform/internal/harness"
	"github.com/roach88/numconform/internal/scenario"
)

// GapsOptions holds flags for the gaps command.
type GapsOptions struct {
	*RootOptions
	Backends []string
}

// NewGapsCommand creates the gaps command.
func NewGapsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GapsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "gaps <suite.yaml>",
		Short: "List fields each backend cannot apply",
		Long: `List, per scenario, the configuration fields each backend has no way to
express. No operation is run. Defaults to every available backend.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGaps(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Backends, "backend", "b", nil, "backends to inspect")

	return cmd
}

func runGaps(opts *GapsOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		return formatter.commandError(ErrCodeConfig, "failed to load config", err)
	}
	// Without --backend every registered backend is inspected, whatever
	// the config selects.
	cfg.Backends = opts.Backends
	adapters, err := opts.registry(cfg).Select(cfg.BackendIDs()...)
	if err != nil {
		return formatter.commandError(ErrCodeBackend, "failed to select backends", err)
	}

	suite, err := scenario.LoadSuite(path)
	if err != nil {
		return formatter.commandError(ErrCodeSuite, "failed to load suite", err)
	}

	rows := harness.CollectGaps(suite, adapters)
	if formatter.JSON() {
		if err := formatter.Success(rows); err != nil {
			return WrapExitError(ExitCommandError, "failed to write output", err)
		}
		return nil
	}

	w := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(w, "No capability gaps.")
		return nil
	}
	for _, row := range rows {
		fmt.Fprintln(w, row.Scenario)
		for _, a := range adapters {
			if fields, ok := row.Gaps[a.ID()]; ok {
				fmt.Fprintf(w, "  %-8s %s\n", a.ID(), strings.Join(fields, ", "))
			}
		}
	}
	return nil
}
