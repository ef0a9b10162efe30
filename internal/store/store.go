// Package store is the record-loader boundary. The external document store
// is mirrored into Postgres as one jsonb document table per collection;
// queries support only field equality and membership, mirroring the source
// store's predicate model.
package store

import (
	"context"

	"github.com/GOKULKRISHNA7868/tas-insight/internal/domain"
)

// Collection names. They double as table names and cache keys.
const (
	CollectionEmployees = "employees"
	CollectionProjects  = "projects"
	CollectionTeams     = "teams"
	CollectionTasks     = "tasks"
)

// Filter is a single predicate on a top-level document field. Exactly one of
// Eq or In should be set.
type Filter struct {
	Field string
	Eq    string
	In    []string
}

// FieldEq builds an equality filter.
func FieldEq(field, value string) Filter { return Filter{Field: field, Eq: value} }

// FieldIn builds a membership filter.
func FieldIn(field string, values []string) Filter { return Filter{Field: field, In: values} }

// Loader fetches collections from the document store. Implementations wrap
// failures in domain.CollectionFetchError; callers abort the whole
// computation on any fetch failure rather than working from a snapshot they
// know is incomplete.
type Loader interface {
	Employees(ctx context.Context, filters ...Filter) ([]domain.Employee, error)
	Projects(ctx context.Context, filters ...Filter) ([]domain.Project, error)
	Teams(ctx context.Context, filters ...Filter) ([]domain.Team, error)
	Tasks(ctx context.Context, filters ...Filter) ([]domain.Task, error)
}
