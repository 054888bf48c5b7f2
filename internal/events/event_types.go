package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated    EventType = "user_created"
	EventProjectCreated EventType = "project_created"
)

// Event represents a board change emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	EntityID  string    `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ProjectCreatedPayload payload.
type ProjectCreatedPayload struct {
	Title        string   `json:"title"`
	OwnerID      string   `json:"owner_id"`
	Technologies []string `json:"technologies"`
}
