package model

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Skill is a game ability's full metadata — the only entity with a write path.
//
// This is the EXTERNAL shape: camelCase JSON, optional fields genuinely absent
// (omitempty / nil pointers) rather than zero-valued. GroggyGauge and MaxCharge
// are pointers because "not applicable" and "zero" mean different things for
// them; a pointer-nil serializes to an absent field.
type Skill struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Class          string        `json:"class"`
	Level          float64       `json:"level"`
	Type           string        `json:"type"`
	UsageType      string        `json:"usageType"`
	Element        string        `json:"element,omitempty"`
	Cooldown       float64       `json:"cooldown"`
	MPCost         float64       `json:"mpCost"`
	Range          float64       `json:"range"`
	CastTime       CastTime      `json:"castTime"`
	Description    string        `json:"description"`
	GroggyGauge    *float64      `json:"groggyGauge,omitempty"`
	MaxCharge      *float64      `json:"maxCharge,omitempty"`
	Tags           []string      `json:"tags,omitempty"`
	Target         string        `json:"target,omitempty"`
	Specialization []string      `json:"specialization,omitempty"`
	Effects        []SkillEffect `json:"effects,omitempty"`
	Icon           string        `json:"icon,omitempty"`
}

// SkillEffect is one structured effect entry on a skill.
type SkillEffect struct {
	Type        string   `json:"type"`
	Value       float64  `json:"value"`
	Duration    *float64 `json:"duration,omitempty"`
	Description string   `json:"description"`
}

// CastTime is either a numeric value in seconds or a free-text label such as
// "즉시 시전". It is the one skill field allowed to be non-numeric, so it needs
// a tagged variant rather than a plain float64.
type CastTime struct {
	Seconds float64
	Label   string
	IsLabel bool
}

// CastTimeSeconds returns the numeric variant.
func CastTimeSeconds(s float64) CastTime {
	return CastTime{Seconds: s}
}

// CastTimeLabel returns the free-text variant.
func CastTimeLabel(label string) CastTime {
	return CastTime{Label: label, IsLabel: true}
}

// MarshalJSON encodes the numeric variant as a JSON number and the label
// variant as a JSON string.
func (c CastTime) MarshalJSON() ([]byte, error) {
	if c.IsLabel {
		return json.Marshal(c.Label)
	}
	return json.Marshal(c.Seconds)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (c *CastTime) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*c = CastTimeSeconds(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("model: castTime must be a number or a string")
	}
	*c = CastTimeLabel(s)
	return nil
}

// storageText is the TEXT representation persisted for cast_time.
func (c CastTime) storageText() string {
	if c.IsLabel {
		return c.Label
	}
	return strconv.FormatFloat(c.Seconds, 'f', -1, 64)
}

// ParseCastTimeText converts the persisted TEXT back into the variant form.
// Numeric text becomes the numeric variant again, so a numeric cast time
// round-trips through storage as the same number.
func ParseCastTimeText(text string) CastTime {
	if n, err := strconv.ParseFloat(text, 64); err == nil {
		return CastTimeSeconds(n)
	}
	return CastTimeLabel(text)
}

// SkillRow is the STORAGE shape of a skill: snake_case columns, integer-rounded
// numerics, and explicit NULL for every absent optional — the persisted row has
// no concept of "field absent", only "field null". Tags, specialization, and
// effects are stored as JSON text.
type SkillRow struct {
	ID             string
	Name           string
	Class          string
	Level          int64
	Type           string
	UsageType      string
	Element        sql.NullString
	Cooldown       int64
	MPCost         int64
	Range          int64
	CastTime       string
	Description    string
	GroggyGauge    sql.NullInt64
	MaxCharge      sql.NullInt64
	Tags           sql.NullString
	Target         sql.NullString
	Specialization sql.NullString
	Effects        sql.NullString
	Icon           sql.NullString
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ToRow maps a validated skill to its storage shape. Integer-typed numeric
// fields are rounded to the nearest integer here, at the persistence boundary.
func (s *Skill) ToRow() (*SkillRow, error) {
	row := &SkillRow{
		ID:          s.ID,
		Name:        s.Name,
		Class:       s.Class,
		Level:       int64(math.Round(s.Level)),
		Type:        s.Type,
		UsageType:   s.UsageType,
		Element:     nullString(s.Element),
		Cooldown:    int64(math.Round(s.Cooldown)),
		MPCost:      int64(math.Round(s.MPCost)),
		Range:       int64(math.Round(s.Range)),
		CastTime:    s.CastTime.storageText(),
		Description: s.Description,
		Target:      nullString(s.Target),
		Icon:        nullString(s.Icon),
	}

	if s.GroggyGauge != nil {
		row.GroggyGauge = sql.NullInt64{Int64: int64(math.Round(*s.GroggyGauge)), Valid: true}
	}
	if s.MaxCharge != nil {
		row.MaxCharge = sql.NullInt64{Int64: int64(math.Round(*s.MaxCharge)), Valid: true}
	}

	var err error
	if row.Tags, err = nullJSON(s.Tags); err != nil {
		return nil, fmt.Errorf("model: encoding tags: %w", err)
	}
	if row.Specialization, err = nullJSON(s.Specialization); err != nil {
		return nil, fmt.Errorf("model: encoding specialization: %w", err)
	}
	if row.Effects, err = nullJSON(s.Effects); err != nil {
		return nil, fmt.Errorf("model: encoding effects: %w", err)
	}

	return row, nil
}

// SkillFromRow is the inverse mapping: a persisted NULL becomes an absent field
// in the external shape.
func SkillFromRow(row *SkillRow) (*Skill, error) {
	s := &Skill{
		ID:          row.ID,
		Name:        row.Name,
		Class:       row.Class,
		Level:       float64(row.Level),
		Type:        row.Type,
		UsageType:   row.UsageType,
		Element:     row.Element.String,
		Cooldown:    float64(row.Cooldown),
		MPCost:      float64(row.MPCost),
		Range:       float64(row.Range),
		CastTime:    ParseCastTimeText(row.CastTime),
		Description: row.Description,
		Target:      row.Target.String,
		Icon:        row.Icon.String,
	}

	if row.GroggyGauge.Valid {
		v := float64(row.GroggyGauge.Int64)
		s.GroggyGauge = &v
	}
	if row.MaxCharge.Valid {
		v := float64(row.MaxCharge.Int64)
		s.MaxCharge = &v
	}

	if row.Tags.Valid {
		if err := json.Unmarshal([]byte(row.Tags.String), &s.Tags); err != nil {
			return nil, fmt.Errorf("model: decoding tags for skill %s: %w", row.ID, err)
		}
	}
	if row.Specialization.Valid {
		if err := json.Unmarshal([]byte(row.Specialization.String), &s.Specialization); err != nil {
			return nil, fmt.Errorf("model: decoding specialization for skill %s: %w", row.ID, err)
		}
	}
	if row.Effects.Valid {
		if err := json.Unmarshal([]byte(row.Effects.String), &s.Effects); err != nil {
			return nil, fmt.Errorf("model: decoding effects for skill %s: %w", row.ID, err)
		}
	}

	return s, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullJSON encodes a slice as JSON text, or NULL when the slice is nil or empty.
func nullJSON(v any) (sql.NullString, error) {
	switch t := v.(type) {
	case []string:
		if len(t) == 0 {
			return sql.NullString{}, nil
		}
	case []SkillEffect:
		if len(t) == 0 {
			return sql.NullString{}, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
