// Package repository defines the storage interfaces the service layer depends
// on. The sqlite subpackage is the only implementation; tests substitute
// in-memory fakes.
package repository

import (
	"context"
	"time"

	"github.com/sakif/game-wiki/internal/model"
)

// ListOptions is LIMIT/OFFSET pagination at the storage level.
type ListOptions struct {
	Limit  int
	Offset int
}

// SkillFilter holds the exact-match skill listing filters. Empty fields are
// not applied; set fields combine with AND semantics.
type SkillFilter struct {
	Class     string
	Type      string
	UsageType string
}

// UserRepository persists accounts and the password-reset token lifecycle.
type UserRepository interface {
	// Create inserts a new account. The email must not be registered yet.
	Create(ctx context.Context, user *model.User) error
	// GetByEmail returns the account for an email, or ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetByID returns the account for an internal id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.User, error)
	// UpsertByEmail creates the account on first OAuth login and refreshes
	// the display name on subsequent logins. The internal id is stable.
	UpsertByEmail(ctx context.Context, user *model.User) error
	// SetResetToken stores a pending reset token and its expiry.
	SetResetToken(ctx context.Context, userID, token string, expires time.Time) error
	// GetByValidResetToken returns the account holding token with an expiry
	// after now, or ErrNotFound.
	GetByValidResetToken(ctx context.Context, token string, now time.Time) (*model.User, error)
	// UpdatePassword stores a new password hash and clears any pending
	// reset token — redemption is single-use.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// SkillRepository persists skill records. The skill methods carry the entity
// name so one store can implement this interface and UserRepository side by
// side without the method sets colliding.
type SkillRepository interface {
	CreateSkill(ctx context.Context, skill *model.Skill) error
	GetSkillByID(ctx context.Context, id string) (*model.Skill, error)
	// ListSkills returns one page of skills plus the post-filter total count.
	// Ordering: level descending, then name ascending.
	ListSkills(ctx context.Context, filter SkillFilter, opts ListOptions) ([]model.Skill, int, error)
	// UpdateSkill fully replaces the record with the given id.
	UpdateSkill(ctx context.Context, skill *model.Skill) error
	// DeleteSkill removes the record and returns it, or ErrNotFound.
	DeleteSkill(ctx context.Context, id string) (*model.Skill, error)
}
