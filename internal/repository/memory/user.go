// Package memory provides an in-memory user store, used when no database is
// configured. Accounts live for the lifetime of the process only — useful
// for local development and tests, not for real deployments.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/game-wiki/internal/apperror"
	"github.com/sakif/game-wiki/internal/model"
	"github.com/sakif/game-wiki/internal/repository"
)

// compile-time check that *UserStore implements repository.UserRepository
var _ repository.UserRepository = (*UserStore)(nil)

// UserStore is a mutex-guarded map of accounts keyed by id. All mutating
// operations copy in and copy out, so callers never share memory with the
// store.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]model.User
}

// NewUserStore creates an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]model.User)}
}

// Create adds a new account, enforcing email uniqueness.
func (s *UserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return apperror.Conflict("이미 사용 중인 이메일입니다")
		}
	}

	user.ID = xid.New().String()
	user.CreatedAt = time.Now()
	s.users[user.ID] = *user

	return nil
}

// GetByEmail returns the account registered under email.
func (s *UserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, apperror.NotFound("사용자를 찾을 수 없습니다")
}

// GetByID returns the account with the given internal id.
func (s *UserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperror.NotFound("사용자를 찾을 수 없습니다")
	}
	user := u
	return &user, nil
}

// UpsertByEmail inserts on first OAuth login and refreshes the name on
// subsequent logins, keeping the internal id and password hash.
func (s *UserStore) UpsertByEmail(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, u := range s.users {
		if u.Email == user.Email {
			user.ID = id
			user.PasswordHash = u.PasswordHash
			user.CreatedAt = u.CreatedAt
			u.Name = user.Name
			s.users[id] = u
			return nil
		}
	}

	user.ID = xid.New().String()
	user.CreatedAt = time.Now()
	s.users[user.ID] = *user

	return nil
}

// SetResetToken stores a pending password-reset token, replacing any
// previous one.
func (s *UserStore) SetResetToken(_ context.Context, userID, token string, expires time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return apperror.NotFound("사용자를 찾을 수 없습니다")
	}

	u.ResetToken = &token
	u.ResetTokenExpires = &expires
	s.users[userID] = u

	return nil
}

// GetByValidResetToken returns the account holding an unexpired token.
func (s *UserStore) GetByValidResetToken(_ context.Context, token string, now time.Time) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if strings.TrimSpace(token) == "" {
		return nil, apperror.NotFound("사용자를 찾을 수 없습니다")
	}

	for _, u := range s.users {
		if u.ResetToken != nil && *u.ResetToken == token &&
			u.ResetTokenExpires != nil && u.ResetTokenExpires.After(now) {
			user := u
			return &user, nil
		}
	}
	return nil, apperror.NotFound("사용자를 찾을 수 없습니다")
}

// UpdatePassword stores the new hash and clears the reset token, enforcing
// single-use redemption.
func (s *UserStore) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return apperror.NotFound("사용자를 찾을 수 없습니다")
	}

	u.PasswordHash = passwordHash
	u.ResetToken = nil
	u.ResetTokenExpires = nil
	s.users[userID] = u

	return nil
}
