package domain

import "fmt"

// CollectionFetchError is returned when the document store fails to load a
// whole collection. It is fatal for the computation that needed it: no
// partial results are derived from a fetch the engine knows is incomplete.
type CollectionFetchError struct {
	Collection string
	Err        error
}

func (e *CollectionFetchError) Error() string {
	return fmt.Sprintf("fetch collection %q: %v", e.Collection, e.Err)
}

func (e *CollectionFetchError) Unwrap() error { return e.Err }

// EmployeeNotFoundError is returned when a report is requested for an
// employee ID that has no record. Dangling references inside records are not
// errors; they fall back to the raw identifier instead.
type EmployeeNotFoundError struct {
	EmployeeID string
}

func (e *EmployeeNotFoundError) Error() string {
	return fmt.Sprintf("employee not found: %s", e.EmployeeID)
}
