package service

import (
	"context"
	"fmt"

	"authcore/internal/domain/entity"
)

// ProfileClient talks to the remote profile service, the id authority for identities.
// Implementations are expected to be safe to retry.
type ProfileClient interface {
	CreateProfile(ctx context.Context, fields entity.ProfileFields, bearer string) (*entity.RemoteProfile, error)

	// DeleteProfile succeeds when the profile is confirmed gone.
	DeleteProfile(ctx context.Context, id int64, bearer string) error
}

// RemoteCallError is a non-2xx answer from the profile service.
type RemoteCallError struct {
	StatusCode int
	Payload    string
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("profile service responded %d: %s", e.StatusCode, e.Payload)
}
