package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/tablestate/internal/config"
	"github.com/roach88/tablestate/internal/record"
	"github.com/roach88/tablestate/internal/source"
	"github.com/roach88/tablestate/internal/table"
)

// CLI error codes. Config problems keep the config.LoadError code and
// rejected table operations keep the table error code.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeSource      = "E301" // Row source could not be parsed or read
	ErrCodeFlag        = "E302" // Malformed flag value
	ErrCodeJournal     = "E303" // Journal could not be opened, read or written
)

// LoadError reports a problem preparing a table from a config and a row
// source.
type LoadError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// loadedTable is a table built from a config file and filled from a
// source.
type loadedTable struct {
	Config *config.TableConfig
	Source source.Spec
	Table  *table.Table
	// DataHash is the record.Fingerprint of the loaded rows.
	DataHash string
}

// loadTable reads and validates the config at configPath, loads rows from
// rawSource and builds the table.
func loadTable(ctx context.Context, configPath, rawSource string, logger *slog.Logger) (*loadedTable, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	props, err := config.Build(cfg)
	if err != nil {
		return nil, err
	}

	spec, err := source.Parse(rawSource)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeSource, Message: "invalid source", Err: err}
	}
	rows, err := source.Load(ctx, spec)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeSource, Message: "reading rows failed", Err: err}
	}
	props.DataSource = rows
	hash, err := record.Fingerprint(rows)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeSource, Message: "fingerprinting rows failed", Err: err}
	}

	logger.Debug("table loaded",
		"config", configPath,
		"source", spec.String(),
		"rows", len(rows),
		"columns", len(cfg.Columns),
		"data_hash", hash,
	)
	return &loadedTable{
		Config:   cfg,
		Source:   spec,
		Table:    table.New(props, table.WithLogger(logger)),
		DataHash: hash,
	}, nil
}

// errorCode picks the code reported for err.
func errorCode(err error) string {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	var ce *config.LoadError
	if errors.As(err, &ce) {
		return ce.Code
	}
	if code := table.ErrorCode(err); code != "" {
		return string(code)
	}
	return ErrCodeGeneric
}

// errorMessage is err's message without the code errorCode reports.
func errorMessage(err error) string {
	var le *LoadError
	if errors.As(err, &le) && le.Err != nil {
		return fmt.Sprintf("%s: %v", le.Message, le.Err)
	}
	if le != nil {
		return le.Message
	}
	var ce *config.LoadError
	if errors.As(err, &ce) && !ce.Pos.IsValid() {
		if ce.Field != "" {
			return ce.Field + ": " + ce.Message
		}
		return ce.Message
	}
	return err.Error()
}

// failCommand reports err through the formatter and turns it into a
// command error (exit code 2).
func failCommand(formatter *OutputFormatter, err error) error {
	code := errorCode(err)
	_ = formatter.Error(code, errorMessage(err), nil)
	return WrapExitError(ExitCommandError, code, err)
}
