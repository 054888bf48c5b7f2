package domain

import (
	"slices"
	"time"
)

// Well-known project statuses. Status is an open set; other values are stored as given.
const (
	ProjectStatusPlanning   = "Planning"
	ProjectStatusInProgress = "In Progress"
	ProjectStatusCompleted  = "Completed"
)

// Project groups tasks under an owner. OwnerID is a soft reference to a User.
type Project struct {
	ID           string
	Title        string
	Description  string
	Status       string
	OwnerID      string
	CreatedAt    time.Time
	Technologies []string
	Progress     int
}

// Clone returns a copy that shares no mutable state with p.
func (p Project) Clone() Project {
	p.Technologies = slices.Clone(p.Technologies)
	return p
}
