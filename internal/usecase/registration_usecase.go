package usecase

import (
	"context"
	"time"

	"authcore/internal/domain/entity"
)

// RegisterInput defines the data required to register a new identity.
type RegisterInput struct {
	Username  string
	Surname   string
	Password  string
	BirthDate time.Time
	Email     string
}

// RegisterOutput returns the identity as it was committed locally.
type RegisterOutput struct {
	Identity *entity.Identity
}

// RegistrationUsecase creates identities across the local store and the remote profile service.
type RegistrationUsecase interface {
	Register(ctx context.Context, input *RegisterInput, roleName entity.RoleName) (*RegisterOutput, error)
}
