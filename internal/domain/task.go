package domain

import "time"

// ProgressStatus represents the assignee-driven lifecycle of a task.
// Transitions happen in the external mutation layer; this engine only reads it.
type ProgressStatus string

const (
	ProgressPending    ProgressStatus = "pending"
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed"
)

// IsCompleted returns true once the assignee has marked the task done.
func (s ProgressStatus) IsCompleted() bool { return s == ProgressCompleted }

// ReviewStatus is the reviewer-driven status, tracked independently of
// ProgressStatus.
type ReviewStatus string

const (
	ReviewPending   ReviewStatus = "pending"
	ReviewCompleted ReviewStatus = "completed"
)

// Comment is a single remark on a task. UserID references an Employee but is
// not guaranteed to resolve.
type Comment struct {
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ReassignEvent marks one assignee change. The count of these events
// penalizes the task score.
type ReassignEvent struct {
	From string    `json:"from,omitempty"`
	To   string    `json:"to,omitempty"`
	At   time.Time `json:"at,omitempty"`
}

// Task is a raw task document as stored by the external document store.
// DueDate is a calendar date string (YYYY-MM-DD) and may be empty or
// malformed; use DueDay to read it safely.
type Task struct {
	ID                  string          `json:"id"`
	TaskID              string          `json:"task_id"`
	Title               string          `json:"title"`
	Description         string          `json:"description,omitempty"`
	ProjectID           string          `json:"project_id,omitempty"`
	CreatedBy           string          `json:"created_by,omitempty"`
	AssignedTo          string          `json:"assigned_to,omitempty"`
	DueDate             string          `json:"due_date,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	ProgressStatus      ProgressStatus  `json:"progress_status"`
	Status              ReviewStatus    `json:"status"`
	ProgressDescription string          `json:"progress_description,omitempty"`
	ProgressLink        string          `json:"progress_link,omitempty"`
	ProgressUpdatedAt   *time.Time      `json:"progress_updated_at,omitempty"`
	ReassignHistory     []ReassignEvent `json:"reassign_history,omitempty"`
	Comments            []Comment       `json:"comments,omitempty"`
}

// Reassignments is the number of recorded assignee changes.
func (t *Task) Reassignments() int { return len(t.ReassignHistory) }

// DueDay parses the task's due date. ok is false when the date is absent or
// malformed; such tasks are excluded from date-dependent computations.
func (t *Task) DueDay() (time.Time, bool) { return ParseDueDate(t.DueDate) }
