package catalog

// QueryRejectedError reports a query refused before execution.
type QueryRejectedError struct {
	Msg string
}

func (e *QueryRejectedError) Error() string {
	return e.Msg
}

// QueryError reports a query the database failed to run.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
