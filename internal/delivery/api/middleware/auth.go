package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "cookbook/internal/delivery/context"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/service"
	"cookbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const bearerPrefix = "Bearer "

// AuthMiddleware guards routes behind a bearer token.
type AuthMiddleware struct {
	auth    usecase.AuthUsecase
	metrics service.AuthMetrics
	logger  *slog.Logger
}

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	Auth    usecase.AuthUsecase
	Metrics service.AuthMetrics `optional:"true"`
	Logger  *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		auth:    params.Auth,
		metrics: params.Metrics,
		logger:  params.Logger,
	}
}

// Authenticate requires `Authorization: Bearer <token>`, verifies the token,
// loads its user and stores it on the context. Every failure ends the request
// with 401 before the handler runs.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, headerErr := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if headerErr != nil {
			return m.reject(c, headerErr)
		}

		user, err := m.auth.Authenticate(c.Request().Context(), token)
		if err != nil {
			var baseErr *domainerrors.BaseError
			if !errors.As(err, &baseErr) || baseErr.HTTPCode() != domainerrors.ErrInvalidToken.HTTPCode() {
				return errors.WithStack(err)
			}

			if errors.Is(err, domainerrors.ErrInvalidToken) {
				return m.reject(c, tokenFailed(baseErr))
			}

			return m.reject(c, baseErr)
		}

		deliverycontext.SetUser(c, user)

		return next(c)
	}
}

func (m *AuthMiddleware) reject(c echo.Context, err *domainerrors.BaseError) error {
	if m.metrics != nil {
		m.metrics.RecordAuthRejection(err.ErrorCode())
	}

	deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Debug("Request rejected",
		slog.String("reason", err.ErrorCode()),
		slog.String("path", c.Request().URL.Path))

	return errors.WithStack(err)
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, *domainerrors.BaseError) {
	if strings.TrimSpace(header) == "" {
		return "", domainerrors.ErrNoToken
	}

	if !strings.HasPrefix(header, bearerPrefix) {
		return "", domainerrors.ErrMalformedAuthHeader.WithDetails("expected Bearer scheme")
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return "", domainerrors.ErrMalformedAuthHeader.WithDetails("empty token")
	}

	if strings.ContainsAny(token, " \t") {
		return "", domainerrors.ErrMalformedAuthHeader.WithDetails("unexpected whitespace in token")
	}

	return token, nil
}

func tokenFailed(err *domainerrors.BaseError) *domainerrors.BaseError {
	if err.Details() == "" {
		return err
	}

	return err.WithMessagef("%s (%s)", domainerrors.ErrInvalidToken.Message(), err.Details())
}
