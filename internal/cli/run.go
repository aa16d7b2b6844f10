package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/roach88/numconform/internal/harness"
	"github.com/roach88/numconform/internal/scenario"
	"github.com/roach88/numconform/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Backends  []string
	Database  string
	Scenarios []string

	// StoreOptions are passed to store.Open (for testing).
	StoreOptions []store.Option
}

// RunResult is one report, with its ledger ID when recorded.
type RunResult struct {
	RunID  string          `json:"run_id,omitempty"`
	Report *harness.Report `json:"report"`
}

// RunOutput is the JSON payload of the run command.
type RunOutput struct {
	Runs []RunResult `json:"runs"`
}

var recordedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <suite.yaml>...",
		Short: "Run scenario suites against backends",
		Long: `Run every scenario of each suite against each selected backend.

Backends come from --backend, then the config file, then the default
(platform). With --db, or a database in the config file, every report is
recorded in the verdict ledger.

Exit codes:
  0 - No fail or error verdicts
  1 - One or more fail or error verdicts
  2 - Command error (missing suite, unknown backend, etc.)

Examples:
  numconform run suites/decimal.yaml
  numconform run suites/*.yaml --backend legacy,pattern --db verdicts.db
  numconform run suites/currency.yaml --scenario euro-cash --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuites(opts, args, cmd)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Backends, "backend", "b", nil, "backends to run (legacy, platform, pattern)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record reports in this SQLite database")
	cmd.Flags().StringSliceVar(&opts.Scenarios, "scenario", nil, "run only the named scenarios")

	return cmd
}

func runSuites(opts *RunOptions, paths []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.logger(cmd.ErrOrStderr())

	cfg, err := opts.loadConfig()
	if err != nil {
		return formatter.commandError(ErrCodeConfig, "failed to load config", err)
	}
	if cmd.Flags().Changed("backend") {
		cfg.Backends = opts.Backends
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}

	adapters, err := opts.registry(cfg).Select(cfg.BackendIDs()...)
	if err != nil {
		return formatter.commandError(ErrCodeBackend, "failed to select backends", err)
	}

	suites := make([]*scenario.Suite, 0, len(paths))
	for _, path := range paths {
		suite, err := scenario.LoadSuite(path)
		if err != nil {
			return formatter.commandError(ErrCodeSuite, "failed to load suite", err)
		}
		suites = append(suites, suite)
	}

	var st *store.Store
	if cfg.Database != "" {
		st, err = store.Open(cfg.Database, opts.StoreOptions...)
		if err != nil {
			return formatter.commandError(ErrCodeDatabase, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := RunOutput{Runs: []RunResult{}}
	failed, incomplete := false, false
	for _, suite := range suites {
		for _, a := range adapters {
			logger.Info("running suite", "suite", suite.Name, "backend", string(a.ID()), "scenarios", len(suite.Scenarios))
			report := harness.Run(ctx, suite, a,
				harness.WithLogger(logger),
				harness.WithScenarios(opts.Scenarios...),
			)
			res := RunResult{Report: report}
			if st != nil {
				if res.RunID, err = st.SaveReport(ctx, report); err != nil {
					return formatter.commandError(ErrCodeDatabase, "failed to record report", err)
				}
			}
			out.Runs = append(out.Runs, res)
			failed = failed || report.FailedUnder(cfg.FailOnError)
			incomplete = incomplete || report.Incomplete
		}
	}

	if err := writeRunOutput(formatter, out, failed, cfg.FailOnError); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}

	switch {
	case incomplete:
		return NewExitError(ExitCommandError, "run cancelled")
	case failed:
		return NewExitError(ExitFailure, "conformance failures")
	}
	return nil
}

func writeRunOutput(f *OutputFormatter, out RunOutput, failed, failOnError bool) error {
	if f.JSON() {
		if failed {
			return f.Failure(out)
		}
		return f.Success(out)
	}
	for _, res := range out.Runs {
		textOpts := harness.TextOptions{Verbose: f.Verbose, IgnoreErrors: !failOnError}
		if err := res.Report.WriteText(f.Writer, textOpts); err != nil {
			return err
		}
		if res.RunID != "" {
			fmt.Fprintln(f.Writer, recordedStyle.Render("recorded run "+res.RunID))
		}
	}
	return nil
}
