// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"authcore/internal/domain/entity"
)

// ErrIdentityNotFound is returned when no identity matches the lookup.
var ErrIdentityNotFound = errors.New("identity not found")

// ErrIdentityConflict is returned when a write violates username or email uniqueness.
var ErrIdentityConflict = errors.New("identity username or email already taken")

// IdentityRepository is the credential store.
type IdentityRepository interface {
	// FindByUsername loads an identity with its roles.
	FindByUsername(ctx context.Context, username string) (*entity.Identity, error)

	// FindByID loads an identity with its roles.
	FindByID(ctx context.Context, id int64) (*entity.Identity, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create inserts the identity with the caller-assigned ID and links its roles.
	Create(ctx context.Context, identity *entity.Identity) error

	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error

	// LockForUpdate takes a row lock on the identity for the rest of the transaction.
	// Concurrent logins for the same identity serialize on this lock.
	LockForUpdate(ctx context.Context, id int64) error
}

// ErrRoleNotFound is returned when a role name has no reference row.
var ErrRoleNotFound = errors.New("role not found")

// RoleRepository reads role reference data.
type RoleRepository interface {
	FindByName(ctx context.Context, name entity.RoleName) (*entity.Role, error)
}
