package handler

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cookbook/config"
	"cookbook/internal/delivery/api/middleware"
	"cookbook/internal/delivery/api/response"
	deliverycontext "cookbook/internal/delivery/context"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	stateCookieName = "cookbook_oauth_state"
	stateTTL        = 5 * time.Minute

	defaultFailureMessage = "Google authentication failed. Please try again."
	logoutMessage         = "Logged Out"
)

// AuthHandler serves the provider login, logout and profile endpoints.
type AuthHandler struct {
	auth     usecase.AuthUsecase
	sessions usecase.SessionUsecase
	cookie   *middleware.SessionCookie
	ui       *config.UIConfig
	secure   bool
	logger   *slog.Logger
}

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	Auth     usecase.AuthUsecase
	Sessions usecase.SessionUsecase
	Cookie   *middleware.SessionCookie
	Config   *config.Config
	Logger   *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	h := &AuthHandler{
		auth:     params.Auth,
		sessions: params.Sessions,
		cookie:   params.Cookie,
		ui:       params.Config.UI,
		logger:   params.Logger,
	}
	if params.Config.Session != nil {
		h.secure = params.Config.Session.CookieSecure
	}

	if h.ui == nil {
		h.ui = &config.UIConfig{HomeURL: "/", SuccessURL: "/", FailureURL: "/auth/failed"}
	}

	return h
}

func (h *AuthHandler) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)
}

// GoogleLogin redirects the browser to the provider consent page.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	state, err := h.issueState(c)
	if err != nil {
		return err
	}

	return c.Redirect(http.StatusFound, h.auth.LoginURL(state))
}

// GoogleCallback completes the login. On success the browser is sent to the UI
// with the bearer token in the query and a session cookie set; on failure to
// the failure page with an error message.
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	if providerErr := c.QueryParam("error"); providerErr != "" {
		h.log(c).Info("Provider returned an error", slog.String("error", providerErr))

		return h.fail(c, domainerrors.ErrAuthProvider.Message())
	}

	if !h.consumeState(c) {
		return h.fail(c, domainerrors.ErrOAuthStateMismatch.Message())
	}

	output, err := h.auth.CompleteLogin(c.Request().Context(), c.QueryParam("code"))
	if err != nil {
		var appErr domainerrors.AppError
		if !errors.As(err, &appErr) || appErr.HTTPCode() >= http.StatusInternalServerError {
			h.log(c).Error("Login failed", slog.Any("error", err))

			return h.fail(c, domainerrors.ErrAuthProvider.Message())
		}

		h.log(c).Warn("Login rejected", slog.String("code", appErr.ErrorCode()), slog.Any("error", err))

		return h.fail(c, appErr.Message())
	}

	h.cookie.Write(c, output.Session.Key)

	return c.Redirect(http.StatusFound, withQuery(h.ui.SuccessURL, "token", output.Token))
}

// Failed reports a failed login.
func (h *AuthHandler) Failed(c echo.Context) error {
	message := c.QueryParam("error")
	if message == "" {
		message = defaultFailureMessage
	}

	return response.Unauthorized(c, domainerrors.ErrAuthProvider.ErrorCode(), message)
}

// Logout ends the session and redirects home.
func (h *AuthHandler) Logout(c echo.Context) error {
	if key, ok := h.cookie.Read(c); ok {
		if err := h.sessions.Destroy(c.Request().Context(), key); err != nil {
			return errors.WithStack(err)
		}
	}

	h.cookie.Clear(c)

	return c.Redirect(http.StatusFound, withQuery(h.ui.HomeURL, "message", logoutMessage))
}

// Profile returns the bearer-authenticated user.
func (h *AuthHandler) Profile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toUserResponse(user))
}

func (h *AuthHandler) fail(c echo.Context, message string) error {
	return c.Redirect(http.StatusFound, withQuery(h.ui.FailureURL, "error", message))
}

func (h *AuthHandler) issueState(c echo.Context) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate oauth state")
	}

	state := base64.RawURLEncoding.EncodeToString(buf)

	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/auth",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(stateTTL.Seconds()),
	})

	return state, nil
}

// consumeState checks the state parameter against the cookie and clears it.
func (h *AuthHandler) consumeState(c echo.Context) bool {
	cookie, err := c.Cookie(stateCookieName)
	if err != nil {
		return false
	}

	c.SetCookie(&http.Cookie{Name: stateCookieName, Path: "/auth", MaxAge: -1, HttpOnly: true, Secure: h.secure})

	state := c.QueryParam("state")

	return state != "" && state == cookie.Value
}

// withQuery appends key=value to target, encoding spaces as %20.
func withQuery(target, key, value string) string {
	u, err := url.Parse(target)
	if err != nil {
		u = &url.URL{Path: "/"}
	}

	q := u.Query()
	q.Set(key, value)
	u.RawQuery = strings.ReplaceAll(q.Encode(), "+", "%20")

	return u.String()
}
