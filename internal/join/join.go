// Package join resolves the foreign-key fields of task documents against
// independently fetched reference sets. Resolution never fails: a reference
// that does not match a loaded record keeps its raw identifier as the
// display name, so downstream views degrade gracefully.
package join

import (
	"sort"
	"strings"

	"github.com/GOKULKRISHNA7868/tas-insight/internal/domain"
)

// EnrichedComment carries the resolved author name next to the raw comment.
type EnrichedComment struct {
	domain.Comment
	UserName string `json:"userName"`
}

// EnrichedTask is a task annotated with display names for its references.
// The raw identifiers stay available on the embedded Task for lookups.
type EnrichedTask struct {
	domain.Task
	AssignedToName string            `json:"assigned_to_name,omitempty"`
	CreatedByName  string            `json:"created_by_name,omitempty"`
	ProjectName    string            `json:"project_name,omitempty"`
	Comments       []EnrichedComment `json:"comments,omitempty"`
}

// ReferencedEmployeeIDs collects every employee identifier a task set refers
// to (assignees, creators, comment authors), de-duplicated and sorted. The
// caller issues one membership query for the whole batch instead of a lookup
// per task.
func ReferencedEmployeeIDs(tasks []domain.Task) []string {
	seen := make(map[string]struct{})
	for _, t := range tasks {
		for _, id := range []string{t.AssignedTo, t.CreatedBy} {
			if id = strings.TrimSpace(id); id != "" {
				seen[id] = struct{}{}
			}
		}
		for _, c := range t.Comments {
			if id := strings.TrimSpace(c.UserID); id != "" {
				seen[id] = struct{}{}
			}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ReferencedProjectIDs collects the distinct project identifiers of a task
// set, sorted.
func ReferencedProjectIDs(tasks []domain.Task) []string {
	seen := make(map[string]struct{})
	for _, t := range tasks {
		if id := strings.TrimSpace(t.ProjectID); id != "" {
			seen[id] = struct{}{}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Tasks produces enriched copies of tasks with assignee, creator, project and
// comment-author names resolved against the given reference sets. It is a
// pure function: inputs are not mutated and repeated calls yield identical
// output.
func Tasks(tasks []domain.Task, employees []domain.Employee, projects []domain.Project) []EnrichedTask {
	names := employeeNames(employees)
	projectNames := make(map[string]string, len(projects))
	for _, p := range projects {
		projectNames[strings.TrimSpace(p.ID)] = p.Name
	}

	out := make([]EnrichedTask, 0, len(tasks))
	for _, t := range tasks {
		et := EnrichedTask{
			Task:           t,
			AssignedToName: resolve(names, t.AssignedTo),
			CreatedByName:  resolve(names, t.CreatedBy),
			ProjectName:    resolve(projectNames, t.ProjectID),
		}
		if len(t.Comments) > 0 {
			et.Comments = make([]EnrichedComment, 0, len(t.Comments))
			for _, c := range t.Comments {
				et.Comments = append(et.Comments, EnrichedComment{
					Comment:  c,
					UserName: resolve(names, c.UserID),
				})
			}
		}
		out = append(out, et)
	}
	return out
}

// EmployeeName resolves one employee ID to a display name, falling back to
// the identifier itself.
func EmployeeName(employees []domain.Employee, id string) string {
	return resolve(employeeNames(employees), id)
}

func employeeNames(employees []domain.Employee) map[string]string {
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[strings.TrimSpace(e.ID)] = e.Name
	}
	return names
}

// resolve looks up a trimmed identifier and falls back to the raw value when
// it is unknown or the resolved name is empty.
func resolve(names map[string]string, id string) string {
	if name, ok := names[strings.TrimSpace(id)]; ok && name != "" {
		return name
	}
	return id
}
