// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"cookbook/config"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/service"
	"cookbook/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte           // Secret key for signing tokens.
	ttl    time.Duration    // Time-to-live for issued tokens.
	now    func() time.Time // Clock used for both issuing and validation.
}

// NewJWTService is the constructor for jwtService.
// The service refuses to exist without a signing secret.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	return newJWTService(cfg.SecretKey.Token, time.Now)
}

func newJWTService(secret string, now func() time.Time) (*jwtService, error) {
	if secret == "" {
		return nil, errors.New("jwt token secret must be provided")
	}

	return &jwtService{
		secret: []byte(secret),
		ttl:    service.TokenTTL,
		now:    now,
	}, nil
}

// Issue creates a token whose subject is the user id.
func (s *jwtService) Issue(userID string) (string, error) {
	issuedAt := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify checks signature, algorithm and expiry, and returns the subject.
func (s *jwtService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", domainerrors.ErrExpiredToken
	case err != nil:
		return "", domainerrors.ErrInvalidToken.WithDetails(err.Error())
	case claims.Subject == "":
		return "", domainerrors.ErrInvalidToken.WithDetails("token has no subject")
	}

	return claims.Subject, nil
}
