package dto

import "time"

// CreateProjectRequest payload. Status, progress, id and created_at are server-assigned.
type CreateProjectRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Technologies []string `json:"technologies"`
	OwnerID      *string  `json:"owner_id"`
}

// MissingFields lists required fields absent from the payload. A null technologies list counts as missing.
func (r CreateProjectRequest) MissingFields() []string {
	var missing []string
	if r.Title == nil {
		missing = append(missing, "title")
	}
	if r.Description == nil {
		missing = append(missing, "description")
	}
	if r.Technologies == nil {
		missing = append(missing, "technologies")
	}
	if r.OwnerID == nil {
		missing = append(missing, "owner_id")
	}
	return missing
}

// ProjectResponse represents a project.
type ProjectResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	OwnerID      string    `json:"owner_id"`
	CreatedAt    time.Time `json:"created_at"`
	Technologies []string  `json:"technologies"`
	Progress     int       `json:"progress"`
}
