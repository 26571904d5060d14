package entity

import "time"

// Session binds an opaque browser session key to a user id. Only the id is
// stored; the user is re-read on every lookup.
type Session struct {
	Key       string
	UserID    string
	ExpiresAt time.Time
}
