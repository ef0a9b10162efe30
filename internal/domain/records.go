package domain

// Employee is a read-only personnel record. Team membership is implicit via
// Team.Members.
type Employee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Title      string `json:"title,omitempty"`
	Department string `json:"department,omitempty"`
	Role       string `json:"role,omitempty"`
	// ActiveProjects is an optional counter maintained by the mutation layer.
	ActiveProjects int `json:"activeProjects,omitempty"`
}

// ProjectStatus partitions projects for the dashboard stats.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectDelayed   ProjectStatus = "delayed"
)

// Project groups tasks under an owning team.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	StartDate   string        `json:"startDate,omitempty"`
	Deadline    string        `json:"deadline,omitempty"`
	TeamID      string        `json:"teamId,omitempty"`
	CreatedBy   string        `json:"created_by,omitempty"`
	Status      ProjectStatus `json:"status"`
}

// Team holds an unordered set of member employee IDs. Members may contain
// identifiers that no longer resolve to an Employee.
type Team struct {
	ID          string   `json:"id"`
	TeamName    string   `json:"teamName"`
	Description string   `json:"description,omitempty"`
	CreatedBy   string   `json:"created_by,omitempty"`
	Leader      string   `json:"leader,omitempty"`
	Members     []string `json:"members,omitempty"`
}
