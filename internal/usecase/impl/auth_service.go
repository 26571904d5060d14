package impl

import (
	"context"
	"log/slog"

	deliverycontext "cookbook/internal/delivery/context"
	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/service"
	"cookbook/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type authService struct {
	provider  service.IdentityProvider
	tokens    service.TokenService
	directory usecase.UserDirectory
	sessions  usecase.SessionUsecase
	metrics   service.AuthMetrics
	logger    *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Provider  service.IdentityProvider
	Tokens    service.TokenService
	Directory usecase.UserDirectory
	Sessions  usecase.SessionUsecase
	Metrics   service.AuthMetrics `optional:"true"`
	Logger    *slog.Logger
}

// NewAuthService wires the login flow.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		provider:  params.Provider,
		tokens:    params.Tokens,
		directory: params.Directory,
		sessions:  params.Sessions,
		metrics:   params.Metrics,
		logger:    params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *authService) LoginURL(state string) string {
	return srv.provider.AuthCodeURL(state)
}

// CompleteLogin runs the callback half of the provider login.
func (srv *authService) CompleteLogin(ctx context.Context, code string) (*usecase.LoginOutput, error) {
	output, err := srv.completeLogin(ctx, code)
	if err != nil {
		srv.recordLogin(service.LoginOutcomeFailure)

		return nil, err
	}

	srv.recordLogin(service.LoginOutcomeSuccess)
	srv.log(ctx).Info("User logged in", slog.String("user_id", output.User.ID))

	return output, nil
}

func (srv *authService) completeLogin(ctx context.Context, code string) (*usecase.LoginOutput, error) {
	identity, err := srv.provider.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "provider exchange failed")
	}

	user, err := srv.directory.ResolveOrCreate(ctx, usecase.ResolveIdentityInput{
		GoogleID:    identity.ProviderUserID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		FirstName:   identity.GivenName,
		LastName:    identity.FamilyName,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve user")
	}

	token, err := srv.tokens.Issue(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	session, err := srv.sessions.Serialize(ctx, user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open session")
	}

	return &usecase.LoginOutput{User: user, Token: token, Session: session}, nil
}

// Authenticate verifies the token and loads its subject. A subject that no
// longer resolves to a user is rejected even when the signature is valid.
func (srv *authService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	userID, err := srv.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := srv.directory.FindUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return nil, err
		}

		return nil, errors.Wrap(err, "failed to load token subject")
	}

	return user, nil
}

func (srv *authService) recordLogin(outcome string) {
	if srv.metrics != nil {
		srv.metrics.RecordLogin(outcome)
	}
}
