// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "cookbook/internal/delivery/context"
	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/errors"
	"cookbook/internal/usecase"

	"go.uber.org/fx"
)

// directoryService implements the UserDirectory interface.
type directoryService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
	now      func() time.Time
}

// DirectoryServiceParams holds dependencies for DirectoryService, injected by Fx.
type DirectoryServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewDirectoryService is the constructor for directoryService.
func NewDirectoryService(params DirectoryServiceParams) usecase.UserDirectory {
	return &directoryService{
		userRepo: params.UserRepo,
		logger:   params.Logger,
		now:      time.Now,
	}
}

func (srv *directoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ResolveOrCreate looks the identity up by provider subject, then by email,
// and only creates a user when neither matches.
func (srv *directoryService) ResolveOrCreate(ctx context.Context, input usecase.ResolveIdentityInput) (*entity.User, error) {
	if input.GoogleID == "" {
		return nil, errors.WithStack(domainerrors.ErrAuthProvider.WithDetails("provider subject missing"))
	}

	user, err := srv.userRepo.FindByGoogleID(ctx, input.GoogleID)
	if err == nil {
		return user, nil
	}

	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by google id")
	}

	email := entity.NormalizeEmail(input.Email)
	if email == "" {
		return nil, errors.WithStack(domainerrors.ErrMissingIdentityField)
	}

	user, err = srv.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return srv.linkExisting(ctx, user, input)
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return srv.create(ctx, email, input)
}

func (srv *directoryService) linkExisting(ctx context.Context, user *entity.User, input usecase.ResolveIdentityInput) (*entity.User, error) {
	if user.IsLinked() {
		// Same email already tied to another provider subject; keep the record as it is.
		srv.log(ctx).Warn("Email matches a user linked to a different Google account",
			slog.String("user_id", user.ID))

		return user, nil
	}

	linked, err := srv.userRepo.LinkGoogleID(ctx, user.ID, input.GoogleID, displayNameOf(input))
	if err == nil {
		srv.log(ctx).Info("Linked Google account to existing user", slog.String("user_id", linked.ID))

		return linked, nil
	}

	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to link google id")
	}

	// A concurrent login linked the record first. Only the same subject may use it.
	return srv.resolveRace(ctx, input.GoogleID, err)
}

func (srv *directoryService) create(ctx context.Context, email string, input usecase.ResolveIdentityInput) (*entity.User, error) {
	user := &entity.User{
		GoogleID:    input.GoogleID,
		DisplayName: displayNameOf(input),
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       email,
		CreatedAt:   srv.now().UTC(),
	}

	err := srv.userRepo.Create(ctx, user)
	if err == nil {
		srv.log(ctx).Info("Created user from Google login", slog.String("user_id", user.ID))

		return user, nil
	}

	if !errors.Is(err, domainerrors.ErrDuplicateAccount) {
		return nil, errors.Wrap(err, "failed to create user")
	}

	// A concurrent login inserted between lookup and insert.
	return srv.resolveRace(ctx, input.GoogleID, err)
}

// resolveRace resolves a lost race. The record is returned only when the winner
// registered the same Google subject; anything else is a duplicate account.
func (srv *directoryService) resolveRace(ctx context.Context, googleID string, cause error) (*entity.User, error) {
	user, err := srv.userRepo.FindByGoogleID(ctx, googleID)
	if err == nil {
		return user, nil
	}

	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to reload user")
	}

	srv.log(ctx).Warn("Concurrent login registered a conflicting account", slog.Any("error", cause))

	return nil, errors.WithStack(domainerrors.ErrDuplicateAccount)
}

// FindUser returns the user with the given id.
func (srv *directoryService) FindUser(ctx context.Context, id string) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.IsAny(err, repository.ErrUserNotFound, repository.ErrInvalidID) {
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

func displayNameOf(input usecase.ResolveIdentityInput) string {
	if name := strings.TrimSpace(input.DisplayName); name != "" {
		return name
	}

	return strings.TrimSpace(input.FirstName + " " + input.LastName)
}
