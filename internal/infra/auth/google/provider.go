// Package google adapts Google's OpenID Connect endpoints to the IdentityProvider contract.
package google

import (
	"context"
	"log/slog"
	"strings"

	"cookbook/config"
	deliverycontext "cookbook/internal/delivery/context"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/service"
	"cookbook/internal/errors"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.uber.org/fx"
	"golang.org/x/oauth2"
)

// Provider runs the authorization-code flow and reads the caller's profile
// from the provider's userinfo endpoint.
type Provider struct {
	oauthConfig  *oauth2.Config
	oidcProvider *oidc.Provider
	logger       *slog.Logger
}

// ProviderParams holds dependencies for Provider, injected by Fx.
type ProviderParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewProvider discovers the issuer's endpoints. Startup fails when discovery does.
func NewProvider(params ProviderParams) (service.IdentityProvider, error) {
	return newProvider(params.Ctx, params.Config.GoogleOAuth, params.Logger)
}

func newProvider(ctx context.Context, cfg *config.GoogleOAuthConfig, logger *slog.Logger) (*Provider, error) {
	if cfg == nil || cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURI == "" {
		return nil, errors.New("google oauth config missing required fields")
	}

	oidcProvider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to discover oidc provider %s", cfg.Issuer)
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "profile", "email"}
	}

	return &Provider{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint:     oidcProvider.Endpoint(),
			Scopes:       scopes,
		},
		oidcProvider: oidcProvider,
		logger:       logger,
	}, nil
}

func (p *Provider) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, p.logger)
}

// AuthCodeURL builds the consent URL for the given state.
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

type profileClaims struct {
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// Exchange trades the code for a token and resolves the caller's profile.
func (p *Provider) Exchange(ctx context.Context, code string) (*service.ExternalIdentity, error) {
	if code == "" {
		return nil, domainerrors.ErrAuthProvider.WithDetails("authorization code missing")
	}

	token, err := p.oauthConfig.Exchange(ctx, code)
	if err != nil {
		p.log(ctx).Warn("Google token exchange failed", slog.Any("error", err))

		return nil, errors.WithStack(domainerrors.ErrAuthProvider.WithDetails("token exchange failed"))
	}

	info, err := p.oidcProvider.UserInfo(ctx, p.oauthConfig.TokenSource(ctx, token))
	if err != nil {
		p.log(ctx).Warn("Google userinfo request failed", slog.Any("error", err))

		return nil, errors.WithStack(domainerrors.ErrAuthProvider.WithDetails("userinfo request failed"))
	}

	var claims profileClaims
	if err := info.Claims(&claims); err != nil {
		return nil, errors.WithStack(domainerrors.ErrAuthProvider.WithDetails("userinfo claims unreadable"))
	}

	if info.Subject == "" {
		return nil, errors.WithStack(domainerrors.ErrAuthProvider.WithDetails("userinfo missing subject"))
	}

	if strings.TrimSpace(info.Email) == "" {
		p.log(ctx).Warn("Google profile has no email", slog.String("subject", info.Subject))

		return nil, errors.WithStack(domainerrors.ErrMissingIdentityField.WithDetails("email"))
	}

	identity := &service.ExternalIdentity{
		ProviderUserID: info.Subject,
		Email:          info.Email,
		DisplayName:    displayName(claims),
		GivenName:      claims.GivenName,
		FamilyName:     claims.FamilyName,
	}

	p.log(ctx).Debug("Google identity resolved",
		slog.String("subject", identity.ProviderUserID),
		slog.Bool("email_verified", info.EmailVerified))

	return identity, nil
}

func displayName(c profileClaims) string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}

	return strings.TrimSpace(c.GivenName + " " + c.FamilyName)
}
