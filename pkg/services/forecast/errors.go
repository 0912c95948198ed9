package forecast

import "fmt"

// ValidationError reports malformed caller input or a malformed stored month.
type ValidationError struct {
	Field string
	Value string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// DataUnavailableError reports an empty series after filtering.
type DataUnavailableError struct {
	Msg string
}

func (e *DataUnavailableError) Error() string {
	return e.Msg
}

// InternalError wraps any other failure during aggregation or fitting.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

func validationErrorf(field, value, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Value: value, Msg: fmt.Sprintf(format, args...)}
}

var errNoHistory = &DataUnavailableError{Msg: "No sales history available. Load Northwind first."}

var errNonFinite = fmt.Errorf("trend produced a non-finite value")
