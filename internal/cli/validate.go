package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tablestate/internal/config"
)

// ValidationIssue is one problem found in a table config.
type ValidationIssue struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool              `json:"valid"`
	Columns int               `json:"columns,omitempty"`
	Errors  []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config>",
		Short: "Validate a table config",
		Long: `Validate a table config without loading any rows.

The config may be a .cue, .yaml, .yml or .json file, or a directory holding
a CUE package. Every problem is reported, not just the first. Sorter and
filter types and collation locales are checked by building the table.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// A config that cannot be read at all is a command error.
	cfg, err := config.Read(path)
	if err != nil {
		var le *config.LoadError
		if errors.As(err, &le) && le.Code != config.ErrCodeNotFound && le.Code != config.ErrCodeFormat {
			return outputValidationErrors(formatter, []ValidationIssue{issueFrom(err)})
		}
		return outputValidateError(formatter, errorCode(err), errorMessage(err))
	}
	formatter.VerboseLog("Read %d top-level column(s) from %s", len(cfg.Columns), path)

	var issues []ValidationIssue
	for _, verr := range config.Validate(cfg) {
		issues = append(issues, issueFrom(verr))
	}
	if len(issues) == 0 {
		if _, err := config.Build(cfg); err != nil {
			issues = append(issues, issueFrom(err))
		}
	}

	if len(issues) > 0 {
		return outputValidationErrors(formatter, issues)
	}
	return outputValidateSuccess(formatter, len(cfg.Columns))
}

func issueFrom(err error) ValidationIssue {
	var le *config.LoadError
	if !errors.As(err, &le) {
		return ValidationIssue{Code: ErrCodeGeneric, Message: err.Error()}
	}
	issue := ValidationIssue{Code: le.Code, Field: le.Field, Message: le.Message}
	if le.Pos.IsValid() {
		issue.Line = le.Pos.Line()
	}
	return issue
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, columns int) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Columns: columns})
	}

	fmt.Fprintf(formatter.Writer, "✓ Config valid (%d column(s))\n", columns)
	return nil
}

// outputValidateError outputs a single command-level error.
func outputValidateError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, issues []ValidationIssue) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: issues},
			Error: &CLIError{
				Code:    issues[0].Code,
				Message: issues[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, issue := range issues {
		if issue.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", issue.Line)
		}
		if issue.Field != "" {
			fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", issue.Code, issue.Field, issue.Message)
			continue
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", issue.Code, issue.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))
}
