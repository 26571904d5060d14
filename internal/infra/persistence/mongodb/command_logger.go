package mongodb

import (
	"context"
	"log/slog"
	"time"

	"cookbook/config"

	"go.mongodb.org/mongo-driver/event"
)

const defaultSlowCommandThreshold = 200 * time.Millisecond

// commandLogger reports MongoDB command outcomes through slog: failures at
// error level, slow commands at warn, everything else only in debug mode.
type commandLogger struct {
	logger        *slog.Logger
	slowThreshold time.Duration
	debug         bool
}

func newCommandLogger(baseLogger *slog.Logger, cfg *config.Config) *commandLogger {
	return &commandLogger{
		logger:        baseLogger,
		slowThreshold: defaultSlowCommandThreshold,
		debug:         cfg != nil && cfg.Env.Debug,
	}
}

// Monitor returns the driver hook that feeds this logger.
func (l *commandLogger) Monitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: l.succeeded,
		Failed:    l.failed,
	}
}

func (l *commandLogger) succeeded(ctx context.Context, evt *event.CommandSucceededEvent) {
	if l.logger == nil {
		return
	}

	switch {
	case l.shouldLogSlow(evt.Duration):
		attrs := append(l.commandAttrs(evt.CommandFinishedEvent), slog.Duration("slowThreshold", l.slowThreshold))
		l.logger.LogAttrs(ctx, slog.LevelWarn, "MongoDB slow command", attrs...)
	case l.debug:
		l.logger.LogAttrs(ctx, slog.LevelDebug, "MongoDB command", l.commandAttrs(evt.CommandFinishedEvent)...)
	}
}

func (l *commandLogger) failed(ctx context.Context, evt *event.CommandFailedEvent) {
	if l.logger == nil {
		return
	}

	attrs := append(l.commandAttrs(evt.CommandFinishedEvent), slog.String("error", evt.Failure))
	l.logger.LogAttrs(ctx, slog.LevelError, "MongoDB command failed", attrs...)
}

func (l *commandLogger) commandAttrs(evt event.CommandFinishedEvent) []slog.Attr {
	return []slog.Attr{
		slog.String("command", evt.CommandName),
		slog.String("database", evt.DatabaseName),
		slog.Int64("requestID", evt.RequestID),
		slog.Duration("elapsed", evt.Duration),
	}
}

func (l *commandLogger) shouldLogSlow(elapsed time.Duration) bool {
	return l.slowThreshold > 0 && elapsed > l.slowThreshold
}
