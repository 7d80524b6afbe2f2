package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/game-wiki/internal/apperror"
	"github.com/sakif/game-wiki/internal/model"
	"github.com/sakif/game-wiki/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

const userColumns = `id, email, password_hash, name, created_at, reset_token, reset_token_expires`

// Create inserts a new account. The service layer checks for a registered
// email first; the UNIQUE constraint backstops it against races, and a
// constraint violation is still reported as a conflict.
func (db *DB) Create(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	user.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, name, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperror.Conflict("이미 사용 중인 이메일입니다")
		}
		return fmt.Errorf("sqlite: creating user: %w", err)
	}

	return nil
}

// GetByEmail returns the account registered under email.
func (db *DB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return db.getUserWhere(ctx, "email = ?", email)
}

// GetByID returns the account with the given internal id.
func (db *DB) GetByID(ctx context.Context, id string) (*model.User, error) {
	return db.getUserWhere(ctx, "id = ?", id)
}

// UpsertByEmail backs the OAuth login path: first login inserts an account
// with no password, later logins keep the internal id and refresh the name.
func (db *DB) UpsertByEmail(ctx context.Context, user *model.User) error {
	existing, err := db.GetByEmail(ctx, user.Email)
	if err == nil {
		user.ID = existing.ID
		user.PasswordHash = existing.PasswordHash
		user.CreatedAt = existing.CreatedAt
		_, err = db.conn.ExecContext(ctx,
			`UPDATE users SET name = ? WHERE id = ?`,
			user.Name, user.ID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: updating user %s: %w", user.ID, err)
		}
		return nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return err
	}

	return db.Create(ctx, user)
}

// SetResetToken stores a pending password-reset token. Any previous token is
// overwritten — only the most recent request is redeemable.
func (db *DB) SetResetToken(ctx context.Context, userID, token string, expires time.Time) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE users SET reset_token = ?, reset_token_expires = ? WHERE id = ?`,
		token, expires, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: setting reset token for user %s: %w", userID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("사용자를 찾을 수 없습니다")
	}

	return nil
}

// GetByValidResetToken returns the account holding an unexpired token.
// An expired token is indistinguishable from an unknown one — both are
// ErrNotFound, which the service reports as "invalid or expired".
func (db *DB) GetByValidResetToken(ctx context.Context, token string, now time.Time) (*model.User, error) {
	return db.getUserWhere(ctx,
		"reset_token = ? AND reset_token_expires IS NOT NULL AND reset_token_expires > ?",
		token, now,
	)
}

// UpdatePassword stores the new hash and clears the reset token in the same
// statement, enforcing single-use redemption.
func (db *DB) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE users
		 SET password_hash = ?, reset_token = NULL, reset_token_expires = NULL
		 WHERE id = ?`,
		passwordHash, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating password for user %s: %w", userID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("사용자를 찾을 수 없습니다")
	}

	return nil
}

func (db *DB) getUserWhere(ctx context.Context, where string, args ...any) (*model.User, error) {
	var (
		u       model.User
		token   sql.NullString
		expires sql.NullTime
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where, args...,
	).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.CreatedAt,
		&token,
		&expires,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("사용자를 찾을 수 없습니다")
		}
		return nil, fmt.Errorf("sqlite: getting user: %w", err)
	}

	if token.Valid {
		u.ResetToken = &token.String
	}
	if expires.Valid {
		u.ResetTokenExpires = &expires.Time
	}

	return &u, nil
}
