package service

import "time"

// TokenTTL is the fixed lifetime of an issued bearer token.
const TokenTTL = 24 * time.Hour

// TokenService issues and verifies stateless bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue returns a signed token whose subject is userID.
	Issue(userID string) (string, error)

	// Verify returns the subject of a valid token. Expired tokens yield
	// ErrExpiredToken; every other failure yields ErrInvalidToken.
	Verify(token string) (string, error)
}
