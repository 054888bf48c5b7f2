package domain

import "time"

// Well-known task statuses.
const (
	TaskStatusTodo       = "Todo"
	TaskStatusInProgress = "In Progress"
	TaskStatusCompleted  = "Completed"
)

// Task is a unit of work inside a project. ProjectID and AssignedTo are soft references.
type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Status      string
	Priority    string
	AssignedTo  *string
	CreatedAt   time.Time
	DueDate     *time.Time
}

// Clone returns a copy whose optional fields point to fresh values.
func (t Task) Clone() Task {
	if t.AssignedTo != nil {
		assignee := *t.AssignedTo
		t.AssignedTo = &assignee
	}
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}
