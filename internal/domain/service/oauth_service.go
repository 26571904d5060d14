package service

import "context"

// ExternalIdentity is what the identity provider tells us about the person
// who completed the login.
type ExternalIdentity struct {
	ProviderUserID string // Provider subject (Google's 'sub' claim)
	Email          string
	DisplayName    string
	GivenName      string
	FamilyName     string
}

// IdentityProvider drives the authorization-code flow against an external provider.
type IdentityProvider interface {
	// AuthCodeURL returns the provider consent URL carrying the given state.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for the caller's identity.
	// Provider failures are reported as ErrAuthProvider; a missing email as ErrMissingIdentityField.
	Exchange(ctx context.Context, code string) (*ExternalIdentity, error)
}
