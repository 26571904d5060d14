// Package context carries per-request state between the HTTP layer and the
// services: the request id, a request-scoped logger and the signed-in user.
package context

import (
	"context"
	"log/slog"

	"cookbook/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey namespaces the values this package stores.
type ContextKey string

const (
	KeyRequestID   ContextKey = "request_id"
	KeyLogger      ContextKey = "logger"
	KeyUser        ContextKey = "user"
	KeySessionUser ContextKey = "session_user"

	// HeaderXRequestID is echoed on every response.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID returns the id assigned by the request id middleware. Responses
// written outside that middleware get a fresh id so meta.request_id is never empty.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok && id != "" {
		return id
	}

	return uuid.NewString()
}

func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext returns "" outside a request.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)

	return id
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLogger returns the request-scoped logger, or nil.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(KeyLogger).(*slog.Logger)

	return logger
}

// GetLoggerOrDefault is what services call; background work has no request
// logger and falls back to the injected one.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// SetUser stores the bearer-authenticated user. The request logger is tagged
// with the user id so service logs for the rest of the request carry it.
func SetUser(c echo.Context, user *entity.User) {
	c.Set(string(KeyUser), user)
	if user == nil {
		return
	}

	ctx := c.Request().Context()
	if logger := GetLogger(ctx); logger != nil {
		c.SetRequest(c.Request().WithContext(WithLogger(ctx, logger.With(slog.String("user_id", user.ID)))))
	}
}

// GetUser returns the bearer-authenticated user, if any.
func GetUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(string(KeyUser)).(*entity.User)

	return user, ok && user != nil
}

// SetSessionUser stores the user behind the session cookie. Only the
// login flow reads it, so the logger is left alone.
func SetSessionUser(c echo.Context, user *entity.User) {
	c.Set(string(KeySessionUser), user)
}

// GetSessionUser returns the user behind the session cookie, if any.
func GetSessionUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(string(KeySessionUser)).(*entity.User)

	return user, ok && user != nil
}

// CurrentUserID returns the id of whichever user the request carries, bearer
// first, or "".
func CurrentUserID(c echo.Context) string {
	if user, ok := GetUser(c); ok {
		return user.ID
	}
	if user, ok := GetSessionUser(c); ok {
		return user.ID
	}

	return ""
}
