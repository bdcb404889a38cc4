// Package matching maps observed form questions to canonical catalog templates.
package matching

import "fmt"

// InvalidInputError represents an observed question that cannot be matched
// because its text is empty or otherwise malformed. It is rejected
// synchronously and never retried.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Message)
}
