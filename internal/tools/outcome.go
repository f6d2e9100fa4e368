package tools

import "fmt"

// ValidationError reports a rejected request: input the model can correct and
// retry. It is distinct from a failure inside the store, which surfaces as a
// plain error.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
