// Package auth provides session token signing, password hashing, and the OAuth
// provider integrations for the wiki API.
//
// SESSION MODEL:
// A successful login issues a signed JWT carrying the account's id and email.
// The token lives in the "auth-token" HttpOnly cookie and is self-contained —
// the server keeps no session table. Verifying the signature is all that's
// needed to trust the id/email for the token's lifetime (7 days, or 30 when
// the user asked to be remembered).
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session lifetimes. rememberMe at login picks the longer one.
const (
	SessionDuration  = 7 * 24 * time.Hour
	RememberDuration = 30 * 24 * time.Hour
)

const issuer = "game-wiki"

// TokenService signs and verifies session tokens.
//
// It holds the HMAC secret key used for both operations — the same secret must
// be used to sign and verify.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
// Example: JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload. The account id rides in the standard "sub" claim;
// the email is a custom claim so /api/auth/me can answer without a DB lookup.
type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Session is what a verified token decodes to.
type Session struct {
	UserID string
	Email  string
}

// Generate creates and signs a session token for the given account.
//
// rememberMe stretches the expiry from 7 to 30 days. The cookie max-age set by
// the login handler must match the token expiry, otherwise the browser keeps
// sending a token the server rejects.
func (s *TokenService) Generate(userID, email string, rememberMe bool) (string, error) {
	d := SessionDuration
	if rememberMe {
		d = RememberDuration
	}
	return s.GenerateWithDuration(userID, email, d)
}

// GenerateWithDuration creates a token with a custom expiry duration.
// Used in tests to mint already-expired tokens.
func (s *TokenService) GenerateWithDuration(userID, email string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a session token string.
//
// Checks performed by the jwt library: signature, expiry, issuer, and that the
// algorithm is HS256 (jwt.WithValidMethods closes the algorithm-confusion
// hole where an attacker submits a token signed with "none").
func (s *TokenService) Validate(tokenStr string) (*Session, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("auth: token expired")
		}
		return nil, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("auth: invalid token claims")
	}

	if c.Subject == "" {
		return nil, fmt.Errorf("auth: token has no subject")
	}

	return &Session{UserID: c.Subject, Email: c.Email}, nil
}
