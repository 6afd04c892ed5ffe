package runtime

import "fmt"

// validationError rejects a request before any computation (HTTP 400).
type validationError struct{ msg string }

func (e validationError) Error() string { return e.msg }

// ErrValidation constructs a validationError.
func ErrValidation(format string, args ...any) error {
	return validationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool {
	_, ok := err.(validationError)
	return ok
}

// tooBusyError signals queue overflow or wait timeout for 503 mapping.
type tooBusyError struct{}

func (tooBusyError) Error() string { return "generation queue is full" }

var errTooBusy = tooBusyError{}

// ErrTooBusy constructs a tooBusyError.
func ErrTooBusy() error { return errTooBusy }

// IsTooBusy reports whether err indicates admission backpressure.
func IsTooBusy(err error) bool {
	_, ok := err.(tooBusyError)
	return ok
}

// unavailableError marks the runtime unable to serve (draining or failed).
type unavailableError struct{ msg string }

func (e unavailableError) Error() string { return e.msg }

// ErrUnavailable constructs an unavailableError.
func ErrUnavailable(format string, args ...any) error {
	return unavailableError{msg: fmt.Sprintf(format, args...)}
}

// IsUnavailable reports whether err indicates the runtime cannot serve.
func IsUnavailable(err error) bool {
	_, ok := err.(unavailableError)
	return ok
}
