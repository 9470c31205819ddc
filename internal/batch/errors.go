package batch

import "fmt"

// MissingInputError marks an input that does not exist. It is reported as a
// warning and the batch moves on.
type MissingInputError struct {
	Input string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("input %s not found", e.Input)
}

// ProcessingError wraps a decode, compose or encode failure for one input.
// Category is empty when the input could not be decoded at all.
type ProcessingError struct {
	Input    string
	Category string
	Err      error
}

func (e *ProcessingError) Error() string {
	if e.Category == "" {
		return fmt.Sprintf("process %s: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("process %s for %s: %v", e.Input, e.Category, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}
