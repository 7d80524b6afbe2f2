// Package service contains the business logic layer: validation rules, the
// token lifecycles, and the listing/search semantics. Handlers parse HTTP and
// delegate here; repositories only see already-validated values.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakif/game-wiki/internal/apperror"
	"github.com/sakif/game-wiki/internal/auth"
	"github.com/sakif/game-wiki/internal/model"
	"github.com/sakif/game-wiki/internal/repository"
)

// MinPasswordLength applies to signup and password reset alike.
const MinPasswordLength = 8

// ResetTokenTTL is how long a password-reset token stays redeemable.
const ResetTokenTTL = 15 * time.Minute

// loginFailedMsg is deliberately identical for "no such account" and "wrong
// password" — distinct messages would let an attacker enumerate registered
// emails.
const loginFailedMsg = "이메일 또는 비밀번호가 올바르지 않습니다"

// AuthService implements the credential and session rules.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the public account fields with the issued session token
// so the handler can set the cookie and respond in one step.
type AuthResult struct {
	User       model.PublicUser
	Token      string
	RememberMe bool
}

// Signup registers a new account. It does NOT establish a session — the
// caller logs in afterwards.
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (model.PublicUser, error) {
	var zero model.PublicUser

	if email == "" || password == "" || name == "" {
		return zero, apperror.ValidationFailed("", "이메일, 비밀번호, 이름을 모두 입력해주세요")
	}
	if len(password) < MinPasswordLength {
		return zero, apperror.ValidationFailed("password", "비밀번호는 최소 8자 이상이어야 합니다")
	}

	// Friendly duplicate check; the UNIQUE constraint in the repository
	// backstops the race between check and insert.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return zero, apperror.Conflict("이미 사용 중인 이메일입니다")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return zero, fmt.Errorf("service/auth: checking email: %w", err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return zero, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return zero, fmt.Errorf("service/auth: creating user: %w", err)
	}

	s.logger.Info("user signed up", slog.String("userID", user.ID))

	return user.Public(), nil
}

// Login verifies the credentials and issues a session token. rememberMe
// stretches the expiry from 7 to 30 days.
func (s *AuthService) Login(ctx context.Context, email, password string, rememberMe bool) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, apperror.ValidationFailed("", "이메일과 비밀번호를 입력해주세요")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized(loginFailedMsg)
		}
		return nil, fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.Unauthorized(loginFailedMsg)
	}

	token, err := s.tokens.Generate(user.ID, user.Email, rememberMe)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token: %w", err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	return &AuthResult{User: user.Public(), Token: token, RememberMe: rememberMe}, nil
}

// LoginOrRegisterOAuth completes a delegated login: upserts the account by
// the provider-reported email and issues a regular session token. The
// account has no password; it can only ever log in via OAuth (or after a
// password reset).
func (s *AuthService) LoginOrRegisterOAuth(ctx context.Context, profile *auth.Profile) (*AuthResult, error) {
	if profile == nil {
		return nil, fmt.Errorf("service/auth: OAuth profile must not be nil")
	}
	if profile.Email == "" {
		// Provider hid the email; without it there is no stable account key.
		return nil, apperror.Unauthorized("소셜 계정에서 이메일을 확인할 수 없습니다")
	}

	user := &model.User{
		Email: profile.Email,
		Name:  profile.Name,
	}
	if err := s.users.UpsertByEmail(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: upserting OAuth user: %w", err)
	}

	token, err := s.tokens.Generate(user.ID, user.Email, false)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token: %w", err)
	}

	s.logger.Info("user logged in via OAuth", slog.String("userID", user.ID))

	return &AuthResult{User: user.Public(), Token: token}, nil
}

// CurrentUser decodes a session token into the id/email it carries. The
// token is trusted as-is for its lifetime — no account re-fetch, so a
// deleted account keeps a working token until expiry.
func (s *AuthService) CurrentUser(token string) (*auth.Session, error) {
	if token == "" {
		return nil, apperror.Unauthorized("로그인이 필요합니다")
	}

	sess, err := s.tokens.Validate(token)
	if err != nil {
		return nil, apperror.Unauthorized("인증 토큰이 유효하지 않습니다")
	}

	return sess, nil
}

// ResetTicket is an issued password-reset token. It is only ever shown to
// the caller outside production, as a stand-in for sending email.
type ResetTicket struct {
	Token     string
	ExpiresAt time.Time
}

// RequestPasswordReset issues a reset token for a registered email.
//
// Returns (nil, nil) when the email is not registered — the handler responds
// with the same generic success message either way, so the endpoint cannot
// be used to probe which emails exist.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*ResetTicket, error) {
	if email == "" {
		return nil, apperror.ValidationFailed("email", "이메일을 입력해주세요")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("service/auth: looking up user: %w", err)
	}

	// 32 random bytes, hex-encoded: unguessable and URL-safe.
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("service/auth: generating reset token: %w", err)
	}
	token := hex.EncodeToString(buf)
	expires := time.Now().Add(ResetTokenTTL)

	if err := s.users.SetResetToken(ctx, user.ID, token, expires); err != nil {
		return nil, fmt.Errorf("service/auth: storing reset token: %w", err)
	}

	s.logger.Info("password reset requested", slog.String("userID", user.ID))

	return &ResetTicket{Token: token, ExpiresAt: expires}, nil
}

// RedeemPasswordReset exchanges a valid, unexpired reset token for a new
// password. The token is single-use: UpdatePassword clears it, so a second
// redemption fails validation. No session is issued — the user logs in again.
func (s *AuthService) RedeemPasswordReset(ctx context.Context, token, password, confirmPassword string) error {
	if token == "" {
		return apperror.ValidationFailed("token", "토큰이 유효하지 않습니다")
	}
	if password == "" || confirmPassword == "" {
		return apperror.ValidationFailed("password", "새 비밀번호를 모두 입력해주세요")
	}
	if password != confirmPassword {
		return apperror.ValidationFailed("confirmPassword", "비밀번호가 일치하지 않습니다")
	}
	if len(password) < MinPasswordLength {
		return apperror.ValidationFailed("password", "비밀번호는 최소 8자 이상이어야 합니다")
	}

	user, err := s.users.GetByValidResetToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.ValidationFailed("token", "토큰이 만료되었거나 유효하지 않습니다")
		}
		return fmt.Errorf("service/auth: looking up reset token: %w", err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return fmt.Errorf("service/auth: hashing password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("service/auth: updating password: %w", err)
	}

	s.logger.Info("password reset completed", slog.String("userID", user.ID))

	return nil
}
