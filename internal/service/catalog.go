package service

import (
	"fmt"
	"strings"

	"github.com/sakif/game-wiki/internal/apperror"
	"github.com/sakif/game-wiki/internal/gamedata"
	"github.com/sakif/game-wiki/internal/model"
)

// CatalogService serves the read-only reference collections: characters,
// items, and guides, plus the unified search over all three. All of it runs
// against the fixed in-memory data — these collections have no write path.
type CatalogService struct{}

// NewCatalogService creates a CatalogService.
func NewCatalogService() *CatalogService {
	return &CatalogService{}
}

// SearchResult is one unified search hit: the kind tag, display fields, and
// the original record.
type SearchResult struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Data        any    `json:"data"`
}

// ListCharacters returns one page of characters, optionally filtered by class.
func (s *CatalogService) ListCharacters(class string, page, pageSize int) Paginated[model.Character] {
	matched := make([]model.Character, 0, len(gamedata.Characters))
	for _, c := range gamedata.Characters {
		if class != "" && c.Class != class {
			continue
		}
		matched = append(matched, c)
	}
	return paginate(matched, page, pageSize)
}

// ListItems returns one page of items. Type and grade filters combine with
// AND semantics.
func (s *CatalogService) ListItems(itemType, grade string, page, pageSize int) Paginated[model.Item] {
	matched := make([]model.Item, 0, len(gamedata.Items))
	for _, item := range gamedata.Items {
		if itemType != "" && item.Type != itemType {
			continue
		}
		if grade != "" && item.Grade != grade {
			continue
		}
		matched = append(matched, item)
	}
	return paginate(matched, page, pageSize)
}

// ListGuides returns one page of guides, optionally filtered by category.
func (s *CatalogService) ListGuides(category string, page, pageSize int) Paginated[model.Guide] {
	matched := make([]model.Guide, 0, len(gamedata.Guides))
	for _, g := range gamedata.Guides {
		if category != "" && g.Category != category {
			continue
		}
		matched = append(matched, g)
	}
	return paginate(matched, page, pageSize)
}

// Search runs a case-insensitive substring match over the reference
// collections and unions the hits into one flat, paginated list.
//
// typeScope narrows the search to one kind ("character", "item", "guide");
// empty or "all" searches everything. Kinds are appended in a fixed order
// (characters, items, guides) so the result order is stable.
func (s *CatalogService) Search(query, typeScope string, page, pageSize int) (Paginated[SearchResult], error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return Paginated[SearchResult]{}, apperror.ValidationFailed("q", "검색어를 입력해주세요")
	}
	if typeScope == "" {
		typeScope = "all"
	}

	var results []SearchResult

	if typeScope == "all" || typeScope == "character" {
		for _, c := range gamedata.Characters {
			if containsFold(needle, c.Name, c.Class) {
				results = append(results, SearchResult{
					ID:          "character-" + c.ID,
					Type:        "character",
					Title:       c.Name,
					Description: fmt.Sprintf("%s · Lv.%d", c.Class, c.Level),
					Data:        c,
				})
			}
		}
	}

	if typeScope == "all" || typeScope == "item" {
		for _, item := range gamedata.Items {
			if containsFold(needle, item.Name, item.Description, item.Type, item.Grade) {
				results = append(results, SearchResult{
					ID:          "item-" + item.ID,
					Type:        "item",
					Title:       item.Name,
					Description: item.Description,
					Data:        item,
				})
			}
		}
	}

	if typeScope == "all" || typeScope == "guide" {
		for _, g := range gamedata.Guides {
			if containsFold(needle, g.Title, g.Content, g.Category) {
				results = append(results, SearchResult{
					ID:          "guide-" + g.ID,
					Type:        "guide",
					Title:       g.Title,
					Description: g.Content,
					Data:        g,
				})
			}
		}
	}

	return paginate(results, page, pageSize), nil
}

// containsFold reports whether any of the fields contains the lowercased
// needle, case-insensitively.
func containsFold(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
