package events

import (
	"time"

	"github.com/spec-kit/directory-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered    EventType = "user_registered"
	EventDepartmentCreated EventType = "department_created"
	EventDepartmentUpdated EventType = "department_updated"
	EventDepartmentDeleted EventType = "department_deleted"
)

// Actor identifies who triggered an event.
type Actor struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// DepartmentCreatedPayload payload.
type DepartmentCreatedPayload struct {
	DepartmentID string `json:"department_id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
}

// DepartmentUpdatedPayload payload.
type DepartmentUpdatedPayload struct {
	DepartmentID string `json:"department_id"`
}

// DepartmentDeletedPayload payload.
type DepartmentDeletedPayload struct {
	DepartmentID string `json:"department_id"`
	Code         string `json:"code"`
}
