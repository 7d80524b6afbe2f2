package model

// Read-only reference entities. None of these have a write path — they are
// served from the fixed in-memory collections in internal/gamedata.

// Character is a playable character archetype.
type Character struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Class string         `json:"class"`
	Level int            `json:"level"`
	Stats CharacterStats `json:"stats"`
}

// CharacterStats are the base combat stats of a character.
type CharacterStats struct {
	HP       int `json:"hp"`
	MP       int `json:"mp"`
	Attack   int `json:"attack"`
	Defense  int `json:"defense"`
	Accuracy int `json:"accuracy"`
	Evasion  int `json:"evasion"`
}

// Item is a piece of equipment or a consumable.
type Item struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Grade       string         `json:"grade"`
	Description string         `json:"description"`
	Stats       map[string]int `json:"stats,omitempty"`
}

// Guide is an editorial help article.
type Guide struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Content   string `json:"content"`
	Thumbnail string `json:"thumbnail,omitempty"`
}
