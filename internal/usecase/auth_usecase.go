package usecase

import (
	"context"

	"cookbook/internal/domain/entity"
)

// LoginOutput is the result of a completed provider login.
type LoginOutput struct {
	User    *entity.User
	Token   string
	Session *entity.Session
}

// AuthUsecase orchestrates the provider login and bearer authentication.
type AuthUsecase interface {
	// LoginURL returns the provider consent URL for the given CSRF state.
	LoginURL(state string) string

	// CompleteLogin exchanges the provider code, resolves the user, issues a
	// bearer token and opens a session.
	CompleteLogin(ctx context.Context, code string) (*LoginOutput, error)

	// Authenticate resolves a bearer token to its user.
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}
