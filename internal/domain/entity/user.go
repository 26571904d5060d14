// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"
)

// User is a person known to the service. A user is created on the first provider
// login and linked to the provider identity when an email-matched account logs in.
type User struct {
	ID          string    // Hex object id assigned by the store.
	GoogleID    string    // Provider subject; empty until the account is linked.
	DisplayName string    // Name shown to other users.
	FirstName   string    // Given name from the provider.
	LastName    string    // Family name from the provider.
	Email       string    // Always lower-cased; unique across users.
	CreatedAt   time.Time // When the account was first created.
}

// IsLinked reports whether the user already carries a provider identity.
func (u *User) IsLinked() bool {
	return u.GoogleID != ""
}

// NormalizeEmail lower-cases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
