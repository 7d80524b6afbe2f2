package model

// Shared enumerations for the reference data.
//
// These lists are the single source of truth — skill validation, the seed data,
// and the frontend filter dropdowns all consume the same values. Keeping them in
// one place means a new class or element is added exactly once.

// CharacterClasses are the eight playable skill classes.
var CharacterClasses = []string{"검성", "수호성", "살성", "궁성", "마도성", "정령성", "호법성", "치유성"}

// SkillTypes describe what a skill does.
var SkillTypes = []string{"공격", "방어", "버프", "디버프", "회복", "소환", "이동", "기타", "강화"}

// Elements are the optional elemental affinities. A skill without an affinity
// simply omits the field.
var Elements = []string{"불", "물", "바람", "땅", "신성", "어둠"}

// ItemTypes and ItemGrades classify equipment and consumables.
var (
	ItemTypes  = []string{"weapon", "armor", "accessory", "consumable", "material"}
	ItemGrades = []string{"common", "uncommon", "rare", "epic", "legendary"}
)

// ValidEnum reports whether value is one of the allowed values.
func ValidEnum(value string, allowed []string) bool {
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	return false
}
