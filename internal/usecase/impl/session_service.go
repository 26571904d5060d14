package impl

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"time"

	"cookbook/config"
	deliverycontext "cookbook/internal/delivery/context"
	"cookbook/internal/domain/entity"
	"cookbook/internal/domain/repository"
	"cookbook/internal/errors"
	"cookbook/internal/usecase"

	"go.uber.org/fx"
)

const sessionKeyBytes = 32

type sessionService struct {
	store    repository.SessionStore
	userRepo repository.UserRepository
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	Store    repository.SessionStore
	UserRepo repository.UserRepository
	Config   *config.Config
	Logger   *slog.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	var ttl time.Duration
	if params.Config != nil && params.Config.Session != nil {
		ttl = params.Config.Session.TTL
	}

	return &sessionService{
		store:    params.Store,
		userRepo: params.UserRepo,
		ttl:      ttl,
		now:      time.Now,
		logger:   params.Logger,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Serialize stores the user id under a fresh random key.
func (srv *sessionService) Serialize(ctx context.Context, user *entity.User) (*entity.Session, error) {
	if user == nil || user.ID == "" {
		return nil, errors.New("cannot serialize a session without a user id")
	}

	key, err := newSessionKey()
	if err != nil {
		return nil, err
	}

	if err := srv.store.Set(ctx, key, user.ID); err != nil {
		return nil, errors.Wrap(err, "failed to store session")
	}

	session := &entity.Session{Key: key, UserID: user.ID}
	if srv.ttl > 0 {
		session.ExpiresAt = srv.now().Add(srv.ttl)
	}

	return session, nil
}

// Deserialize re-reads the session's user. A session whose user is gone is
// dropped and treated as absent.
func (srv *sessionService) Deserialize(ctx context.Context, key string) (*entity.User, error) {
	if key == "" {
		return nil, nil
	}

	userID, found, err := srv.store.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read session")
	}

	if !found {
		return nil, nil
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err == nil {
		return user, nil
	}

	if !errors.IsAny(err, repository.ErrUserNotFound, repository.ErrInvalidID) {
		return nil, errors.Wrap(err, "failed to load session user")
	}

	srv.log(ctx).Info("Dropping session of missing user", slog.String("user_id", userID))

	if err := srv.store.Delete(ctx, key); err != nil {
		srv.log(ctx).Warn("Failed to drop stale session", slog.Any("error", err))
	}

	return nil, nil
}

// Destroy removes the session. Unknown keys are ignored.
func (srv *sessionService) Destroy(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	return errors.Wrap(srv.store.Delete(ctx, key), "failed to delete session")
}

func newSessionKey() (string, error) {
	buf := make([]byte, sessionKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate session key")
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
