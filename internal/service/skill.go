package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/sakif/game-wiki/internal/apperror"
	"github.com/sakif/game-wiki/internal/gamedata"
	"github.com/sakif/game-wiki/internal/model"
	"github.com/sakif/game-wiki/internal/repository"
)

// skillRequiredFields is checked in this exact order; the error names the
// FIRST missing field.
var skillRequiredFields = []string{
	"name", "class", "level", "type", "usageType",
	"cooldown", "mpCost", "range", "castTime", "description",
}

// SkillService serves skill reads and writes.
//
// The repository is optional: with repo == nil (no database configured) reads
// fall back to the fixed in-memory skill set and every write fails with a
// configuration error, mirroring a deployment that has browsing enabled but
// no admin store attached.
type SkillService struct {
	repo   repository.SkillRepository
	logger *slog.Logger
}

// NewSkillService creates a SkillService. repo may be nil.
func NewSkillService(repo repository.SkillRepository, logger *slog.Logger) *SkillService {
	return &SkillService{repo: repo, logger: logger}
}

// ValidateSkillPayload turns a loosely-typed payload into a typed skill.
//
// Required fields are checked for presence first (absent, null, or empty
// string all count as missing), then values are coerced: numeric-looking
// strings become numbers, castTime stays a number or a non-empty trimmed
// label, and class/type/element must come from the shared enumerations.
// Optional fields that were not supplied stay absent — never zero-valued.
func ValidateSkillPayload(payload map[string]any) (*model.Skill, error) {
	if payload == nil {
		return nil, apperror.ValidationFailed("", "요청 본문이 올바르지 않습니다.")
	}

	for _, field := range skillRequiredFields {
		v, ok := payload[field]
		if !ok || v == nil || v == "" {
			return nil, apperror.ValidationFailed(field, fmt.Sprintf("%s 값은 필수입니다.", field))
		}
	}

	skill := &model.Skill{
		Name:        strings.TrimSpace(stringValue(payload["name"])),
		Class:       stringValue(payload["class"]),
		Type:        stringValue(payload["type"]),
		UsageType:   stringValue(payload["usageType"]),
		Description: strings.TrimSpace(stringValue(payload["description"])),
	}
	if id, ok := payload["id"]; ok {
		skill.ID = stringValue(id)
	}

	var err error
	if skill.Level, err = coerceNumber(payload["level"], "level"); err != nil {
		return nil, err
	}
	if skill.Cooldown, err = coerceNumber(payload["cooldown"], "cooldown"); err != nil {
		return nil, err
	}
	if skill.MPCost, err = coerceNumber(payload["mpCost"], "mpCost"); err != nil {
		return nil, err
	}
	if skill.Range, err = coerceNumber(payload["range"], "range"); err != nil {
		return nil, err
	}
	if skill.CastTime, err = coerceCastTime(payload["castTime"]); err != nil {
		return nil, err
	}

	if !model.ValidEnum(skill.Class, model.CharacterClasses) {
		return nil, apperror.ValidationFailed("class", "class 값이 올바르지 않습니다.")
	}
	if !model.ValidEnum(skill.Type, model.SkillTypes) {
		return nil, apperror.ValidationFailed("type", "type 값이 올바르지 않습니다.")
	}

	if v, ok := payload["element"]; ok && v != nil && v != "" {
		skill.Element = stringValue(v)
		if !model.ValidEnum(skill.Element, model.Elements) {
			return nil, apperror.ValidationFailed("element", "element 값이 올바르지 않습니다.")
		}
	}

	if v, ok := payload["groggyGauge"]; ok && v != nil {
		n, err := coerceNumber(v, "groggyGauge")
		if err != nil {
			return nil, err
		}
		skill.GroggyGauge = &n
	}
	if v, ok := payload["maxCharge"]; ok && v != nil {
		n, err := coerceNumber(v, "maxCharge")
		if err != nil {
			return nil, err
		}
		skill.MaxCharge = &n
	}

	skill.Tags = coerceStringList(payload["tags"])
	skill.Specialization = coerceStringList(payload["specialization"])

	if v, ok := payload["target"]; ok && v != nil && v != "" {
		skill.Target = strings.TrimSpace(stringValue(v))
	}
	if v, ok := payload["icon"]; ok && v != nil && v != "" {
		skill.Icon = strings.TrimSpace(stringValue(v))
	}

	if effects, err := coerceEffects(payload["effects"]); err != nil {
		return nil, err
	} else {
		skill.Effects = effects
	}

	return skill, nil
}

// List returns one page of skills matching the filter. Ordering is level
// descending then name ascending on both the database and fallback paths.
func (s *SkillService) List(ctx context.Context, filter repository.SkillFilter, page, pageSize int) (Paginated[model.Skill], error) {
	page, pageSize = clampPaging(page, pageSize)

	if s.repo == nil {
		skills := filterFallbackSkills(filter)
		return paginate(skills, page, pageSize), nil
	}

	items, total, err := s.repo.ListSkills(ctx, filter, repository.ListOptions{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		return Paginated[model.Skill]{}, err
	}
	if items == nil {
		items = []model.Skill{}
	}

	return Paginated[model.Skill]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

// Get returns a single skill by id, from the database or the fallback set.
func (s *SkillService) Get(ctx context.Context, id string) (*model.Skill, error) {
	if s.repo == nil {
		for i := range gamedata.Skills {
			if gamedata.Skills[i].ID == id {
				skill := gamedata.Skills[i]
				return &skill, nil
			}
		}
		return nil, apperror.NotFound("스킬을 찾을 수 없습니다.")
	}

	return s.repo.GetSkillByID(ctx, id)
}

// Create validates the payload and inserts a new skill. Requires a database.
func (s *SkillService) Create(ctx context.Context, payload map[string]any) (*model.Skill, error) {
	skill, err := ValidateSkillPayload(payload)
	if err != nil {
		return nil, err
	}

	if s.repo == nil {
		return nil, apperror.NotConfigured("데이터베이스")
	}

	if err := s.repo.CreateSkill(ctx, skill); err != nil {
		return nil, err
	}

	s.logger.Info("skill created", slog.String("skillID", skill.ID), slog.String("name", skill.Name))

	// Read back so the response reflects the persisted (rounded) values.
	return s.repo.GetSkillByID(ctx, skill.ID)
}

// Update validates the payload and fully replaces the skill with the given id.
func (s *SkillService) Update(ctx context.Context, id string, payload map[string]any) (*model.Skill, error) {
	skill, err := ValidateSkillPayload(payload)
	if err != nil {
		return nil, err
	}
	skill.ID = id

	if s.repo == nil {
		return nil, apperror.NotConfigured("데이터베이스")
	}

	if err := s.repo.UpdateSkill(ctx, skill); err != nil {
		return nil, err
	}

	s.logger.Info("skill updated", slog.String("skillID", id))

	return s.repo.GetSkillByID(ctx, id)
}

// Delete removes a skill and returns the removed record.
func (s *SkillService) Delete(ctx context.Context, id string) (*model.Skill, error) {
	if s.repo == nil {
		return nil, apperror.NotConfigured("데이터베이스")
	}

	skill, err := s.repo.DeleteSkill(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("skill deleted", slog.String("skillID", id))

	return skill, nil
}

// filterFallbackSkills applies the exact-match filters to the fixed skill set
// and sorts with the same policy the database uses.
func filterFallbackSkills(filter repository.SkillFilter) []model.Skill {
	skills := make([]model.Skill, 0, len(gamedata.Skills))
	for _, skill := range gamedata.Skills {
		if filter.Class != "" && skill.Class != filter.Class {
			continue
		}
		if filter.Type != "" && skill.Type != filter.Type {
			continue
		}
		if filter.UsageType != "" && skill.UsageType != filter.UsageType {
			continue
		}
		skills = append(skills, skill)
	}

	sort.SliceStable(skills, func(i, j int) bool {
		if skills[i].Level != skills[j].Level {
			return skills[i].Level > skills[j].Level
		}
		return skills[i].Name < skills[j].Name
	})

	return skills
}

// stringValue renders any scalar as its string form, matching how a loosely
// typed client would have stringified it.
func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// coerceNumber accepts a JSON number or a numeric-looking string.
func coerceNumber(v any, field string) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, apperror.ValidationFailed(field, fmt.Sprintf("%s 값이 올바르지 않습니다.", field))
		}
		return n, nil
	default:
		return 0, apperror.ValidationFailed(field, fmt.Sprintf("%s 값이 올바르지 않습니다.", field))
	}
}

// coerceCastTime accepts a number of seconds or a non-empty label.
func coerceCastTime(v any) (model.CastTime, error) {
	switch t := v.(type) {
	case float64:
		return model.CastTimeSeconds(t), nil
	case string:
		label := strings.TrimSpace(t)
		if label == "" {
			break
		}
		// Numeric text is the numeric variant: "1.5" and 1.5 are the same cast time.
		if n, err := strconv.ParseFloat(label, 64); err == nil {
			return model.CastTimeSeconds(n), nil
		}
		return model.CastTimeLabel(label), nil
	}
	return model.CastTime{}, apperror.ValidationFailed("castTime", "시전 시간 값이 올바르지 않습니다.")
}

// coerceStringList accepts an array of values (stringified item by item) or a
// comma-separated string (split and trimmed). Absent or empty input yields
// nil — an absent field, not an empty list.
func coerceStringList(v any) []string {
	switch t := v.(type) {
	case []any:
		if len(t) == 0 {
			return nil
		}
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, stringValue(item))
		}
		return out
	case []string:
		if len(t) == 0 {
			return nil
		}
		return t
	case string:
		var out []string
		for _, part := range strings.Split(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return nil
	}
}

// coerceEffects decodes the optional structured effect entries.
func coerceEffects(v any) ([]model.SkillEffect, error) {
	if v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, apperror.ValidationFailed("effects", "effects 값이 올바르지 않습니다.")
	}
	if len(items) == 0 {
		return nil, nil
	}

	effects := make([]model.SkillEffect, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, apperror.ValidationFailed("effects", "effects 값이 올바르지 않습니다.")
		}

		effect := model.SkillEffect{
			Type:        stringValue(entry["type"]),
			Description: stringValue(entry["description"]),
		}
		if raw, ok := entry["value"]; ok && raw != nil {
			n, err := coerceNumber(raw, "effects")
			if err != nil {
				return nil, err
			}
			effect.Value = n
		}
		if raw, ok := entry["duration"]; ok && raw != nil {
			n, err := coerceNumber(raw, "effects")
			if err != nil {
				return nil, err
			}
			effect.Duration = &n
		}
		effects = append(effects, effect)
	}

	return effects, nil
}
