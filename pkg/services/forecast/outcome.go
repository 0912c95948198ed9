package forecast

import "errors"

// Outcome classifies an error returned by the pipeline for metrics and logs.
func Outcome(err error) string {
	var (
		validationErr *ValidationError
		unavailErr    *DataUnavailableError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &validationErr):
		return "validation_error"
	case errors.As(err, &unavailErr):
		return "data_unavailable"
	default:
		return "internal_error"
	}
}
