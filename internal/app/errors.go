package app

import "fmt"

// AppError is the exit-code-carrying error type returned by command
// handlers. Printed marks an error whose message has already been rendered
// to the user (typically via a Printer), so the top-level error renderer
// must not print it a second time.
type AppError struct {
	Code    int
	Err     error
	Printed bool
}

func (e AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e AppError) Unwrap() error { return e.Err }

// Wrap attaches an exit code to err. A nil err yields a nil error.
func Wrap(code int, err error) error {
	if err == nil {
		return nil
	}
	return AppError{Code: code, Err: err}
}

// WrapPrinted is like Wrap but marks the error as already rendered, so
// renderTopLevelError skips it.
func WrapPrinted(code int, err error) error {
	if err == nil {
		return nil
	}
	return AppError{Code: code, Err: err, Printed: true}
}

// ExitCode extracts the process exit code carried by err, defaulting to 1
// for any non-AppError and 0 for nil.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if e, ok := err.(AppError); ok {
		return e.Code
	}
	return 1
}
