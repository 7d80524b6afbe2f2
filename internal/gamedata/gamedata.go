// Package gamedata holds the fixed reference collections served by the list
// and search endpoints. Characters, items, and guides have no write path at
// all; the skill set here is the read-only fallback used when no database is
// configured.
//
// The slices are package-level and must be treated as immutable — callers
// filter and page over them but never modify them.
package gamedata

import "github.com/sakif/game-wiki/internal/model"

// Characters are the playable archetypes shown on the character list.
var Characters = []model.Character{
	{ID: "1", Name: "글라디에이터", Class: "전사", Level: 65,
		Stats: model.CharacterStats{HP: 15200, MP: 3200, Attack: 1850, Defense: 1420, Accuracy: 890, Evasion: 650}},
	{ID: "2", Name: "템플러", Class: "전사", Level: 65,
		Stats: model.CharacterStats{HP: 14800, MP: 3800, Attack: 1720, Defense: 1580, Accuracy: 850, Evasion: 620}},
	{ID: "3", Name: "어쌔신", Class: "도적", Level: 65,
		Stats: model.CharacterStats{HP: 11200, MP: 2800, Attack: 1920, Defense: 980, Accuracy: 1120, Evasion: 1420}},
	{ID: "4", Name: "레인저", Class: "도적", Level: 65,
		Stats: model.CharacterStats{HP: 10800, MP: 3200, Attack: 1880, Defense: 920, Accuracy: 1180, Evasion: 1380}},
	{ID: "5", Name: "소서러", Class: "마법사", Level: 65,
		Stats: model.CharacterStats{HP: 9800, MP: 5200, Attack: 1980, Defense: 780, Accuracy: 1120, Evasion: 580}},
	{ID: "6", Name: "스피릿마스터", Class: "마법사", Level: 65,
		Stats: model.CharacterStats{HP: 10200, MP: 4800, Attack: 1750, Defense: 850, Accuracy: 1080, Evasion: 620}},
	{ID: "7", Name: "클레릭", Class: "사제", Level: 65,
		Stats: model.CharacterStats{HP: 10800, MP: 4800, Attack: 1420, Defense: 1020, Accuracy: 980, Evasion: 720}},
	{ID: "8", Name: "챈터", Class: "사제", Level: 65,
		Stats: model.CharacterStats{HP: 11200, MP: 4200, Attack: 1580, Defense: 1180, Accuracy: 920, Evasion: 780}},
}

// Items are the equipment and consumables shown on the item list.
var Items = []model.Item{
	{ID: "1", Name: "천둥의 검", Type: "weapon", Grade: "legendary",
		Description: "천둥의 힘을 담은 전설의 검. 높은 공격력을 제공합니다.",
		Stats:       map[string]int{"attack": 285, "accuracy": 120}},
	{ID: "2", Name: "용의 가죽 갑옷", Type: "armor", Grade: "epic",
		Description: "용의 가죽으로 만든 강력한 방어구.",
		Stats:       map[string]int{"defense": 195, "hp": 850}},
	{ID: "3", Name: "마력의 목걸이", Type: "accessory", Grade: "epic",
		Description: "마법 공격력을 크게 향상시키는 액세서리.",
		Stats:       map[string]int{"attack": 95, "mp": 420}},
	{ID: "4", Name: "회복 물약", Type: "consumable", Grade: "common",
		Description: "HP를 500 회복시킵니다.",
		Stats:       map[string]int{"hp": 500}},
	{ID: "5", Name: "정신력 물약", Type: "consumable", Grade: "common",
		Description: "MP를 300 회복시킵니다.",
		Stats:       map[string]int{"mp": 300}},
	{ID: "6", Name: "영웅의 투구", Type: "armor", Grade: "legendary",
		Description: "전설의 영웅이 착용했던 투구. 강력한 방어력을 제공합니다.",
		Stats:       map[string]int{"defense": 145, "hp": 650, "accuracy": 85}},
	{ID: "7", Name: "마법 지팡이", Type: "weapon", Grade: "epic",
		Description: "마법사용 지팡이. 마법 공격력이 크게 향상됩니다.",
		Stats:       map[string]int{"attack": 265, "mp": 380}},
	{ID: "8", Name: "민첩의 반지", Type: "accessory", Grade: "rare",
		Description: "민첩성을 향상시키는 반지.",
		Stats:       map[string]int{"evasion": 180, "accuracy": 95}},
	{ID: "9", Name: "철광석", Type: "material", Grade: "common",
		Description: "장비 제작에 사용되는 기본 재료."},
	{ID: "10", Name: "정화의 물약", Type: "consumable", Grade: "uncommon",
		Description: "모든 상태이상을 제거합니다."},
}

// Guides are the editorial help articles.
var Guides = []model.Guide{
	{ID: "1", Title: "초보자 가이드", Category: "시작하기",
		Content: "아이온2를 처음 시작하는 분들을 위한 기본 가이드입니다.", Thumbnail: "/images/guide-beginner.jpg"},
	{ID: "2", Title: "직업 선택 가이드", Category: "캐릭터",
		Content: "각 직업의 특징과 추천 직업을 안내합니다.", Thumbnail: "/images/guide-class.jpg"},
	{ID: "3", Title: "장비 강화 가이드", Category: "아이템",
		Content: "장비 강화 방법과 최적의 타이밍을 설명합니다.", Thumbnail: "/images/guide-enhance.jpg"},
	{ID: "4", Title: "던전 공략 가이드", Category: "던전",
		Content: "주요 던전의 공략 방법과 보상 정보를 제공합니다.", Thumbnail: "/images/guide-dungeon.jpg"},
	{ID: "5", Title: "PvP 전투 가이드", Category: "PvP",
		Content: "플레이어 간 전투에서 승리하는 전략을 소개합니다.", Thumbnail: "/images/guide-pvp.jpg"},
}

// Skills is the read-only fallback skill set, used when DB_PATH is unset.
// The seed command loads the same set into a fresh database.
var Skills = []model.Skill{
	{ID: "1", Name: "천뢰참", Class: "검성", Level: 45, Type: "공격", UsageType: "액티브",
		Element: "바람", Cooldown: 12, MPCost: 180, Range: 5,
		CastTime: model.CastTimeLabel("즉시 시전"),
		Description: "검에 뇌기를 실어 전방의 적을 베어 큰 피해를 입힙니다.",
		Tags:        []string{"근접", "광역"}, Target: "전방의 적"},
	{ID: "2", Name: "수호의 방패", Class: "수호성", Level: 40, Type: "방어", UsageType: "액티브",
		Cooldown: 30, MPCost: 220, Range: 0,
		CastTime: model.CastTimeSeconds(1),
		Description: "거대한 방패를 전개해 받는 피해를 크게 줄입니다.",
		Effects: []model.SkillEffect{{Type: "피해감소", Value: 40, Duration: floatPtr(8), Description: "받는 피해 40% 감소"}}},
	{ID: "3", Name: "그림자 일격", Class: "살성", Level: 50, Type: "공격", UsageType: "액티브",
		Element: "어둠", Cooldown: 18, MPCost: 160, Range: 3,
		CastTime: model.CastTimeLabel("즉시 시전"),
		Description: "적의 등 뒤로 순간이동해 치명적인 일격을 가합니다.",
		GroggyGauge: floatPtr(150), Tags: []string{"근접", "단일"}},
	{ID: "4", Name: "폭풍의 화살", Class: "궁성", Level: 42, Type: "공격", UsageType: "액티브",
		Element: "바람", Cooldown: 8, MPCost: 140, Range: 20,
		CastTime: model.CastTimeSeconds(1.5),
		Description: "바람의 힘을 모아 관통 화살을 날립니다.",
		MaxCharge: floatPtr(3), Tags: []string{"원거리", "관통"}},
	{ID: "5", Name: "화염 폭발", Class: "마도성", Level: 55, Type: "공격", UsageType: "액티브",
		Element: "불", Cooldown: 25, MPCost: 320, Range: 15,
		CastTime: model.CastTimeSeconds(2.5),
		Description: "지정 지역에 거대한 화염 폭발을 일으킵니다.",
		Tags: []string{"원거리", "광역"}, Target: "지정 지역"},
	{ID: "6", Name: "치유의 빛", Class: "치유성", Level: 38, Type: "회복", UsageType: "액티브",
		Element: "신성", Cooldown: 6, MPCost: 200, Range: 12,
		CastTime: model.CastTimeSeconds(1),
		Description: "아군 하나의 생명력을 회복시킵니다.",
		Effects: []model.SkillEffect{{Type: "회복", Value: 1200, Description: "HP 1200 회복"}}},
	{ID: "7", Name: "정령 소환", Class: "정령성", Level: 48, Type: "소환", UsageType: "액티브",
		Cooldown: 60, MPCost: 400, Range: 0,
		CastTime: model.CastTimeSeconds(3),
		Description: "계약한 정령을 소환해 함께 싸웁니다.",
		Specialization: []string{"불의 정령", "물의 정령"}},
	{ID: "8", Name: "수호의 룬", Class: "호법성", Level: 35, Type: "버프", UsageType: "패시브",
		Cooldown: 0, MPCost: 0, Range: 0,
		CastTime: model.CastTimeLabel("즉시 시전"),
		Description: "주변 아군의 방어력을 지속적으로 올립니다.",
		Effects: []model.SkillEffect{{Type: "방어증가", Value: 15, Description: "방어력 15% 증가"}}},
}

func floatPtr(v float64) *float64 {
	return &v
}
