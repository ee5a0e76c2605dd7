package table

import (
	"errors"
	"fmt"
)

// OpError reports a table operation rejected because of bad caller input.
//
// Bad data never produces an OpError: empty data, missing columns or a
// missing selection config degrade to passthrough behavior. OpError is
// reserved for requests that name something that does not exist, such as
// an unknown column key or a row index outside the current page.
type OpError struct {
	// Code identifies the error category.
	Code OpErrorCode

	// Message is a human-readable description.
	Message string

	// Details contains additional context.
	Details map[string]string
}

// OpErrorCode categorizes operation errors.
type OpErrorCode string

const (
	// ErrCodeUnknownColumn indicates a key that names no column.
	ErrCodeUnknownColumn OpErrorCode = "UNKNOWN_COLUMN"

	// ErrCodeNotSortable indicates a sort on a column without a sorter.
	ErrCodeNotSortable OpErrorCode = "NOT_SORTABLE"

	// ErrCodeNotFilterable indicates a filter on a column group.
	ErrCodeNotFilterable OpErrorCode = "NOT_FILTERABLE"

	// ErrCodeRowOutOfRange indicates a row index outside the current page.
	ErrCodeRowOutOfRange OpErrorCode = "ROW_OUT_OF_RANGE"

	// ErrCodeSelectionDisabled indicates a selection operation on a table
	// without RowSelection.
	ErrCodeSelectionDisabled OpErrorCode = "SELECTION_DISABLED"

	// ErrCodePaginationDisabled indicates a page change on a table with
	// pagination turned off.
	ErrCodePaginationDisabled OpErrorCode = "PAGINATION_DISABLED"

	// ErrCodeInvalidPageSize indicates a page size below 1.
	ErrCodeInvalidPageSize OpErrorCode = "INVALID_PAGE_SIZE"

	// ErrCodeUnknownSelection indicates a custom selection key that no
	// SelectionItem declares.
	ErrCodeUnknownSelection OpErrorCode = "UNKNOWN_SELECTION"

	// ErrCodeInvalidOp indicates an unknown bulk operation name.
	ErrCodeInvalidOp OpErrorCode = "INVALID_OP"
)

// Error implements the error interface.
func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func opError(code OpErrorCode, format string, args ...any) *OpError {
	return &OpError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsOpError reports whether err is an OpError with the given code.
// Uses errors.As to handle wrapped errors.
func IsOpError(err error, code OpErrorCode) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Code == code
	}
	return false
}

// ErrorCode extracts the OpErrorCode from err, or "" if err is not an
// OpError.
func ErrorCode(err error) OpErrorCode {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Code
	}
	return ""
}
