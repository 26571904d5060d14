package usecase

import (
	"context"

	"cookbook/internal/domain/entity"
)

// SessionUsecase bridges browser sessions and users. Only the user id is kept
// in the session; the user is re-read on every Deserialize.
type SessionUsecase interface {
	// Serialize opens a new session for the user.
	Serialize(ctx context.Context, user *entity.User) (*entity.Session, error)

	// Deserialize returns the session's user, or nil when the session is
	// unknown or its user no longer exists.
	Deserialize(ctx context.Context, key string) (*entity.User, error)

	// Destroy ends the session. Unknown keys are not an error.
	Destroy(ctx context.Context, key string) error
}
