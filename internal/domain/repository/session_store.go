package repository

import "context"

// SessionStore is the key-value store behind browser sessions. Keys are opaque
// session keys and values are user ids. Implementations expire entries on
// their own schedule.
type SessionStore interface {
	Get(ctx context.Context, key string) (userID string, found bool, err error)
	Set(ctx context.Context, key, userID string) error
	Delete(ctx context.Context, key string) error
}
