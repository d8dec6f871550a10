// Package compositing merges rendered letter content onto company
// letterhead backgrounds.
package compositing

import "fmt"

// CompositeError represents a letterhead that could not be used as a
// background: unparsable bytes or an empty document.
type CompositeError struct {
	Message string
	Cause   error
}

func (e *CompositeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("composite error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("composite error: %s", e.Message)
}

func (e *CompositeError) Unwrap() error {
	return e.Cause
}
