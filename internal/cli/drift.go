package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/numconform/internal/backend"
	"github.com/roach88/numconform/internal/harness"
	"github.com/roach88/numconform/internal/store"
)

// DriftOptions holds flags for the drift and runs commands.
type DriftOptions struct {
	*RootOptions
	Database string
	Suite    string
	Backend  string
}

// DriftResult is the JSON payload of the drift command.
type DriftResult struct {
	From        string         `json:"from"`
	To          string         `json:"to"`
	Changes     []store.Change `json:"changes"`
	Regressions int            `json:"regressions"`
}

// NewDriftCommand creates the drift command.
func NewDriftCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DriftOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "drift <from-run> <to-run>",
		Short: "Compare verdicts between two recorded runs",
		Long: `Compare two runs from the verdict ledger and list every scenario
operation whose status changed.

Exits 1 when a verdict moved into fail or error.

Example:
  numconform drift --db verdicts.db 0190f3c2-... 0190f3d8-...`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDrift(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")

	return cmd
}

// openLedger opens the database named by --db or the config file.
func (o *DriftOptions) openLedger(f *OutputFormatter) (*store.Store, error) {
	path := o.Database
	if path == "" {
		cfg, err := o.loadConfig()
		if err != nil {
			return nil, f.commandError(ErrCodeConfig, "failed to load config", err)
		}
		path = cfg.Database
	}
	if path == "" {
		_ = f.Error(ErrCodeDatabase, "no database: pass --db or set database in the config", nil)
		return nil, NewExitError(ExitCommandError, "no database")
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, f.commandError(ErrCodeDatabase, "failed to open database", err)
	}
	return st, nil
}

func runDrift(opts *DriftOptions, from, to string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := opts.openLedger(formatter)
	if err != nil {
		return err
	}
	defer st.Close()

	changes, err := st.Drift(cmd.Context(), from, to)
	if err != nil {
		return formatter.commandError(ErrCodeDatabase, "failed to compare runs", err)
	}

	result := DriftResult{From: from, To: to, Changes: changes}
	for _, c := range changes {
		if c.Regression() {
			result.Regressions++
		}
	}

	if formatter.JSON() {
		write := formatter.Success
		if result.Regressions > 0 {
			write = formatter.Failure
		}
		if err := write(result); err != nil {
			return WrapExitError(ExitCommandError, "failed to write output", err)
		}
	} else {
		w := cmd.OutOrStdout()
		if len(changes) == 0 {
			fmt.Fprintln(w, "No verdict changes.")
		}
		for _, c := range changes {
			fmt.Fprintf(w, "%s %s: %s -> %s\n", c.Scenario, c.Op, statusOrAbsent(c.Before), statusOrAbsent(c.After))
		}
		if result.Regressions > 0 {
			fmt.Fprintf(w, "%d regression(s)\n", result.Regressions)
		}
	}

	if result.Regressions > 0 {
		return NewExitError(ExitFailure, "verdict regressions")
	}
	return nil
}

func statusOrAbsent(s harness.Status) string {
	if s == "" {
		return "(absent)"
	}
	return string(s)
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DriftOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "runs",
		Short:         "List recorded runs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().StringVar(&opts.Suite, "suite", "", "only runs of this suite")
	cmd.Flags().StringVar(&opts.Backend, "backend", "", "only runs on this backend")

	return cmd
}

func runList(opts *DriftOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := opts.openLedger(formatter)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(cmd.Context(), store.RunFilter{Suite: opts.Suite, Backend: backend.ID(opts.Backend)})
	if err != nil {
		return formatter.commandError(ErrCodeDatabase, "failed to list runs", err)
	}

	if formatter.JSON() {
		if err := formatter.Success(runs); err != nil {
			return WrapExitError(ExitCommandError, "failed to write output", err)
		}
		return nil
	}

	w := cmd.OutOrStdout()
	for _, r := range runs {
		s := r.Summary
		fmt.Fprintf(w, "%-4d %s  %s  %s/%s  %d pass, %d fail, %d error\n",
			r.Seq, r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Suite, r.Backend, s.Pass, s.Fail, s.Error)
	}
	return nil
}
