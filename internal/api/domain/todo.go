package domain

import "time"

// Status enumerates the todo lifecycle. There is no in-progress state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// ValidStatus reports whether s is one of the enumerated statuses.
func ValidStatus(s Status) bool {
	return s == StatusPending || s == StatusCompleted
}

// Subtask is one entry in a todo's ordered subtask list.
type Subtask struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Todo is a task record owned by exactly one user. Only the owner may read,
// mutate or delete it; every store operation on todos is filtered by owner.
type Todo struct {
	ID          string
	UserID      string // owning user, required
	Title       string
	Description string
	Status      Status
	Subtasks    []Subtask // ordered, may be empty
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TodoPatch is a partial-field update. Nil fields are left untouched.
// Last write wins at the field level; there is no optimistic concurrency
// token, which is a documented race for same-user concurrent updates.
type TodoPatch struct {
	Title       *string
	Description *string
	Status      *Status
	Subtasks    *[]Subtask
}

// Empty reports whether the patch changes nothing.
func (p TodoPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.Subtasks == nil
}
