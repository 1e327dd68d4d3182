package service

import (
	"context"
	"time"
)

type UserEventType string

const (
	UserEventCreated UserEventType = "user.created"
	UserEventUpdated UserEventType = "user.updated"
	UserEventDeleted UserEventType = "user.deleted"
)

type UserEvent struct {
	EventType  UserEventType `json:"event_type"`
	UserID     string        `json:"user_id"`
	ZipCode    string        `json:"zip_code,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// EventPublisher announces user changes to other processes.
type EventPublisher interface {
	PublishUserEvent(ctx context.Context, e UserEvent) error
}
