// Package engine wires the catalog, matcher, resolver and scorer over
// the persistence boundary.
package engine

import "fmt"

// NotFoundError indicates a referenced entity does not exist. It is a
// normal branch for callers, distinct from a store failure.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}
