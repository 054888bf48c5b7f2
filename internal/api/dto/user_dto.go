package dto

import "time"

// CreateUserRequest payload. Pointers tell a missing field apart from an empty one.
type CreateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

// MissingFields lists required fields absent from the payload.
func (r CreateUserRequest) MissingFields() []string {
	var missing []string
	if r.Name == nil {
		missing = append(missing, "name")
	}
	if r.Email == nil {
		missing = append(missing, "email")
	}
	if r.Role == nil {
		missing = append(missing, "role")
	}
	return missing
}

// UserResponse represents a user.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}
