package service

import (
	"context"
	"time"
)

// IdentityRegisteredEvent is published after a new identity has been persisted.
type IdentityRegisteredEvent struct {
	RequestID    string    `json:"request_id,omitempty"` // For distributed tracing
	IdentityID   int64     `json:"identity_id"`
	Role         string    `json:"role"`
	Email        string    `json:"email"`
	DocumentURL  string    `json:"document_url"`
	RegisteredAt time.Time `json:"registered_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishIdentityRegistered publishes a registration event for downstream consumers
	PublishIdentityRegistered(ctx context.Context, event *IdentityRegisteredEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
