package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/numconform/internal/backend"
	"github.com/roach88/numconform/internal/config"
	"github.com/roach88/numconform/internal/engine"
	"github.com/roach88/numconform/internal/platform"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	legacy   engine.LegacyFactory
	platform engine.PlatformFactory
	pattern  engine.PropertiesEngine
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Option configures the root command.
type Option func(*RootOptions)

// WithLegacyEngine binds the legacy backend to a setter-driven engine.
// Without it the legacy backend is not registered.
func WithLegacyEngine(f engine.LegacyFactory) Option {
	return func(o *RootOptions) { o.legacy = f }
}

// WithPlatformEngine replaces the x/text binding of the platform backend.
func WithPlatformEngine(f engine.PlatformFactory) Option {
	return func(o *RootOptions) { o.platform = f }
}

// WithPatternEngine binds the pattern backend to a property-record engine.
// Without it the pattern backend is not registered.
func WithPatternEngine(e engine.PropertiesEngine) Option {
	return func(o *RootOptions) { o.pattern = e }
}

// NewRootCommand creates the root command for the numconform CLI.
func NewRootCommand(options ...Option) *cobra.Command {
	opts := &RootOptions{platform: platform.New}
	for _, o := range options {
		o(opts)
	}

	cmd := &cobra.Command{
		Use:   "numconform",
		Short: "Conformance oracle for locale-aware number formatting",
		Long: `Run declarative number-formatting scenarios against formatting
backends and report where each backend diverges from the expected output.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.numconform/config.yaml)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewGapsCommand(opts))
	cmd.AddCommand(NewDriftCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))

	return cmd
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // keeps JSON on stdout clean
		Verbose:   o.Verbose,
	}
}

// logger writes structured logs to w: debug and up under --verbose,
// warnings otherwise.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (o *RootOptions) loadConfig() (*config.Config, error) {
	return config.LoadConfig(o.ConfigPath)
}

// registry holds the platform backend plus whichever engine backends were
// bound.
func (o *RootOptions) registry(cfg *config.Config) *backend.Registry {
	adapterOpts := cfg.AdapterOptions()
	reg := backend.NewRegistry()
	if o.legacy != nil {
		_ = reg.Register(backend.NewLegacy(o.legacy, adapterOpts...))
	}
	_ = reg.Register(backend.NewPlatform(o.platform, adapterOpts...))
	if o.pattern != nil {
		_ = reg.Register(backend.NewPattern(o.pattern, adapterOpts...))
	}
	return reg
}
