// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"campus/internal/domain/entity"
)

// ErrIdentityNotFound is returned when no identity matches within the requested partition.
var ErrIdentityNotFound = errors.New("identity not found")

// ErrUnknownPartition is returned when an operation names a role with no partition.
var ErrUnknownPartition = errors.New("unknown identity partition")

// IdentityRepository is the credential store. Each role is an independent
// partition; an email is unique inside a partition but may appear in both.
type IdentityRepository interface {
	// FindByEmail retrieves the identity with the given email from the role's partition.
	FindByEmail(ctx context.Context, role entity.Role, email string) (*entity.Identity, error)

	// Create inserts the identity into the partition named by identity.Role and sets its ID.
	Create(ctx context.Context, identity *entity.Identity) error
}
