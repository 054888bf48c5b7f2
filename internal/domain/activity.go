package domain

import "time"

// ActivityEntry is an append-only audit record of a board change.
type ActivityEntry struct {
	ID         string
	EventType  string
	EntityID   string
	Payload    []byte
	OccurredAt time.Time
}
