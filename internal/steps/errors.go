package steps

import "fmt"

// APICallError represents an error from the model API
type APICallError struct {
	Step    string
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s step failed: %s: %v", e.Step, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s step failed: %s", e.Step, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}
