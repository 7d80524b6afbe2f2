package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/game-wiki/internal/apperror"
	"github.com/sakif/game-wiki/internal/model"
	"github.com/sakif/game-wiki/internal/repository"
)

// compile-time check that *DB implements repository.SkillRepository
var _ repository.SkillRepository = (*DB)(nil)

const skillColumns = `id, name, class, level, type, usage_type, element, cooldown,
	mp_cost, "range", cast_time, description, groggy_gauge, max_charge, tags, target,
	specialization, effects, icon, created_at, updated_at`

// CreateSkill inserts a new skill record. The id is server-assigned here; the
// caller's struct gets it back through the pointer.
func (db *DB) CreateSkill(ctx context.Context, skill *model.Skill) error {
	skill.ID = xid.New().String()

	row, err := skill.ToRow()
	if err != nil {
		return err
	}

	now := time.Now()
	row.CreatedAt = now
	row.UpdatedAt = now

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO skills (`+skillColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID, row.Name, row.Class, row.Level, row.Type, row.UsageType,
		row.Element, row.Cooldown, row.MPCost, row.Range, row.CastTime,
		row.Description, row.GroggyGauge, row.MaxCharge, row.Tags, row.Target,
		row.Specialization, row.Effects, row.Icon, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating skill: %w", err)
	}

	return nil
}

// GetSkillByID retrieves a single skill record.
func (db *DB) GetSkillByID(ctx context.Context, id string) (*model.Skill, error) {
	row, err := db.scanSkillRow(db.conn.QueryRowContext(ctx,
		`SELECT `+skillColumns+` FROM skills WHERE id = ?`, id,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("스킬을 찾을 수 없습니다.")
		}
		return nil, fmt.Errorf("sqlite: getting skill %s: %w", id, err)
	}

	return model.SkillFromRow(row)
}

// ListSkills returns one page of skills matching the filter plus the post-filter
// total. Filters are exact matches combined with AND; ordering is level
// descending then name ascending.
func (db *DB) ListSkills(ctx context.Context, filter repository.SkillFilter, opts repository.ListOptions) ([]model.Skill, int, error) {
	where, args := buildSkillFilter(filter)

	var total int
	if err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM skills`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("sqlite: counting skills: %w", err)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+skillColumns+` FROM skills`+where+`
		 ORDER BY level DESC, name ASC
		 LIMIT ? OFFSET ?`,
		append(args, limit, offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: listing skills: %w", err)
	}
	defer rows.Close()

	skills := make([]model.Skill, 0, limit)
	for rows.Next() {
		row, err := db.scanSkillRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("sqlite: scanning skill row: %w", err)
		}
		skill, err := model.SkillFromRow(row)
		if err != nil {
			return nil, 0, err
		}
		skills = append(skills, *skill)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("sqlite: iterating skills: %w", err)
	}

	return skills, total, nil
}

// UpdateSkill fully replaces the record with skill.ID.
func (db *DB) UpdateSkill(ctx context.Context, skill *model.Skill) error {
	row, err := skill.ToRow()
	if err != nil {
		return err
	}
	row.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE skills
		 SET name = ?, class = ?, level = ?, type = ?, usage_type = ?, element = ?,
		     cooldown = ?, mp_cost = ?, "range" = ?, cast_time = ?, description = ?,
		     groggy_gauge = ?, max_charge = ?, tags = ?, target = ?,
		     specialization = ?, effects = ?, icon = ?, updated_at = ?
		 WHERE id = ?`,
		row.Name, row.Class, row.Level, row.Type, row.UsageType, row.Element,
		row.Cooldown, row.MPCost, row.Range, row.CastTime, row.Description,
		row.GroggyGauge, row.MaxCharge, row.Tags, row.Target,
		row.Specialization, row.Effects, row.Icon, row.UpdatedAt,
		row.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating skill %s: %w", skill.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("스킬을 찾을 수 없습니다.")
	}

	return nil
}

// DeleteSkill removes a skill record and returns the removed record, matching the
// API contract of echoing what was deleted.
func (db *DB) DeleteSkill(ctx context.Context, id string) (*model.Skill, error) {
	skill, err := db.GetSkillByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := db.conn.ExecContext(ctx,
		`DELETE FROM skills WHERE id = ?`, id,
	); err != nil {
		return nil, fmt.Errorf("sqlite: deleting skill %s: %w", id, err)
	}

	return skill, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (db *DB) scanSkillRow(s scanner) (*model.SkillRow, error) {
	var row model.SkillRow
	err := s.Scan(
		&row.ID, &row.Name, &row.Class, &row.Level, &row.Type, &row.UsageType,
		&row.Element, &row.Cooldown, &row.MPCost, &row.Range, &row.CastTime,
		&row.Description, &row.GroggyGauge, &row.MaxCharge, &row.Tags, &row.Target,
		&row.Specialization, &row.Effects, &row.Icon, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// buildSkillFilter renders the WHERE clause for the set filters.
func buildSkillFilter(filter repository.SkillFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	if filter.Class != "" {
		clauses = append(clauses, "class = ?")
		args = append(args, filter.Class)
	}
	if filter.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, filter.Type)
	}
	if filter.UsageType != "" {
		clauses = append(clauses, "usage_type = ?")
		args = append(args, filter.UsageType)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
