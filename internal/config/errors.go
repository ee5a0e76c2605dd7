package config

import (
	"errors"
	"fmt"

	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// LoadError reports a configuration problem. Pos is set when the problem
// came from CUE and a source position is known.
type LoadError struct {
	Code    string
	Message string
	Field   string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Error codes shared by every configuration loader.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeParseFailed = "E004" // File could not be parsed
	ErrCodeBuildFailed = "E006" // CUE build or schema unification failed
	ErrCodeFormat      = "E008" // Unsupported file extension

	ErrCodeNoColumns      = "E201" // No columns declared
	ErrCodeDuplicateKey   = "E202" // Two columns resolve to the same key
	ErrCodeSorterType     = "E203" // Unknown sorter type
	ErrCodeFilterType     = "E204" // Unknown filter type
	ErrCodeSortOrder      = "E205" // Invalid sort order or direction
	ErrCodeSelectionType  = "E206" // Invalid selection type
	ErrCodeLocale         = "E207" // Unparseable collate locale
	ErrCodeGroupBehaviour = "E208" // Sorter or filter on a column group
	ErrCodeRule           = "E209" // Selection rule without a condition
	ErrCodeItemAction     = "E210" // Unknown selection item action
)

// IsLoadError reports whether err is a *LoadError with the given code.
func IsLoadError(err error, code string) bool {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code == code
	}
	return false
}

// fromCUE converts a CUE error into a LoadError, keeping the first
// position CUE reports.
func fromCUE(code string, err error) *LoadError {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error()}
	}
	first := errs[0]
	le := &LoadError{Code: code, Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
