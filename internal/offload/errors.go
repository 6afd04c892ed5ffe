package offload

import "fmt"

// insufficientMemoryError signals that a component cannot fit in the
// accelerator budget even after evicting everything evictable.
type insufficientMemoryError struct {
	component string
	need      int64
	free      int64
	budget    int64
}

func (e insufficientMemoryError) Error() string {
	return fmt.Sprintf("insufficient accelerator memory: component %s needs %d bytes, %d free of %d budget",
		e.component, e.need, e.free, e.budget)
}

// ErrInsufficientMemory constructs an insufficientMemoryError.
func ErrInsufficientMemory(component string, need, free, budget int64) error {
	return insufficientMemoryError{component: component, need: need, free: free, budget: budget}
}

// IsInsufficientMemory reports whether err indicates the budget cannot
// hold a required component.
func IsInsufficientMemory(err error) bool {
	_, ok := err.(insufficientMemoryError)
	return ok
}
