package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cookbook/config"
	deliverycontext "cookbook/internal/delivery/context"
	"cookbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SessionCookieName is the cookie carrying the signed session key.
const SessionCookieName = "cookbook_session"

// SessionCookie reads and writes session keys signed with the session secret.
// The cookie value is "<key>.<signature>".
type SessionCookie struct {
	secret []byte
	secure bool
	ttl    time.Duration
}

// NewSessionCookie builds the codec from the session settings.
func NewSessionCookie(cfg *config.Config) *SessionCookie {
	cookie := &SessionCookie{secret: []byte(cfg.SecretKey.Session)}
	if cfg.Session != nil {
		cookie.secure = cfg.Session.CookieSecure
		cookie.ttl = cfg.Session.TTL
	}

	return cookie
}

func (s *SessionCookie) sign(key string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(key))

	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Write sets the cookie for the given session key.
func (s *SessionCookie) Write(c echo.Context, key string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    key + "." + s.sign(key),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})
}

// Read returns the session key when the cookie is present and its signature holds.
func (s *SessionCookie) Read(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return "", false
	}

	key, sig, found := strings.Cut(cookie.Value, ".")
	if !found || key == "" {
		return "", false
	}

	if !hmac.Equal([]byte(sig), []byte(s.sign(key))) {
		return "", false
	}

	return key, true
}

// Clear expires the cookie in the browser.
func (s *SessionCookie) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// SessionMiddleware resolves the session cookie to a user. It never rejects a
// request; routes that need a user use the bearer middleware.
type SessionMiddleware struct {
	sessions usecase.SessionUsecase
	cookie   *SessionCookie
	logger   *slog.Logger
}

// SessionMiddlewareParams holds dependencies for SessionMiddleware, injected by Fx.
type SessionMiddlewareParams struct {
	fx.In

	Sessions usecase.SessionUsecase
	Cookie   *SessionCookie
	Logger   *slog.Logger
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(params SessionMiddlewareParams) *SessionMiddleware {
	return &SessionMiddleware{
		sessions: params.Sessions,
		cookie:   params.Cookie,
		logger:   params.Logger,
	}
}

// Load attaches the session user, if any, to the context.
func (m *SessionMiddleware) Load(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key, ok := m.cookie.Read(c)
		if !ok {
			return next(c)
		}

		user, err := m.sessions.Deserialize(c.Request().Context(), key)
		switch {
		case err != nil:
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Warn("Session lookup failed",
				slog.Any("error", err))
		case user == nil:
			m.cookie.Clear(c)
		default:
			deliverycontext.SetSessionUser(c, user)
		}

		return next(c)
	}
}
