package domain

import "time"

// User is a board member. Role is free text.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
	IsActive  bool
}
