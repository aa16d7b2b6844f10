package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/numconform/internal/scenario"
)

// FileValidation holds the validation result of one suite file.
type FileValidation struct {
	Path   string   `json:"path"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidationResult holds validation results for every file.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <suite.yaml>...",
		Short: "Check suite files without running them",
		Long: `Check suite files against the suite schema, then decode them with the
structural rules a run applies (unique names, paired inputs and
expectations, known fields).

Every schema violation is reported, with its position.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	result := ValidationResult{Valid: true, Files: make([]FileValidation, 0, len(paths))}
	for _, path := range paths {
		fv := validateFile(path)
		result.Valid = result.Valid && fv.Valid
		result.Files = append(result.Files, fv)
	}

	if formatter.JSON() {
		var err error
		if result.Valid {
			err = formatter.Success(result)
		} else {
			err = formatter.Failure(result)
		}
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to write output", err)
		}
	} else {
		w := cmd.OutOrStdout()
		for _, fv := range result.Files {
			if fv.Valid {
				fmt.Fprintf(w, "✓ %s\n", fv.Path)
				continue
			}
			fmt.Fprintf(w, "✗ %s\n", fv.Path)
			for _, e := range fv.Errors {
				fmt.Fprintf(w, "  %s\n", e)
			}
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, "invalid suite files")
	}
	return nil
}

// validateFile runs the schema first. Decoding runs only on a file the
// schema accepts, so each problem is reported once.
func validateFile(path string) FileValidation {
	fv := FileValidation{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		fv.Errors = []string{fmt.Sprintf("failed to read suite file: %v", err)}
		return fv
	}

	for _, err := range scenario.ValidateSchema(path, data) {
		fv.Errors = append(fv.Errors, err.Error())
	}
	if len(fv.Errors) > 0 {
		return fv
	}

	if _, err := scenario.DecodeSuite(data); err != nil {
		fv.Errors = []string{err.Error()}
		return fv
	}
	fv.Valid = true
	return fv
}
