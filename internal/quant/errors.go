package quant

import "fmt"

// unsupportedPrecisionError signals an unknown quantization mode.
type unsupportedPrecisionError struct{ value string }

func (e unsupportedPrecisionError) Error() string {
	return "unsupported precision: " + e.value + " (expected int4, int8 or none)"
}

// ErrUnsupportedPrecision constructs an unsupportedPrecisionError.
func ErrUnsupportedPrecision(value string) error { return unsupportedPrecisionError{value: value} }

// IsUnsupportedPrecision reports whether err indicates an unknown precision.
func IsUnsupportedPrecision(err error) bool {
	_, ok := err.(unsupportedPrecisionError)
	return ok
}

// incompatibleError signals that the model manifest describes components
// whose dimensions cannot be wired together.
type incompatibleError struct{ msg string }

func (e incompatibleError) Error() string { return "model incompatible: " + e.msg }

// ErrModelIncompatible constructs an incompatibleError.
func ErrModelIncompatible(format string, args ...any) error {
	return incompatibleError{msg: fmt.Sprintf(format, args...)}
}

// IsModelIncompatible reports whether err indicates mismatched component dimensions.
func IsModelIncompatible(err error) bool {
	_, ok := err.(incompatibleError)
	return ok
}
