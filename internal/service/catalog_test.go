package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/sakif/game-wiki/internal/apperror"
	"github.com/sakif/game-wiki/internal/gamedata"
)

// =========================================================================
// PAGINATION TESTS
// =========================================================================

func TestPaginate_TotalPagesIsCeilOfTotalOverPageSize(t *testing.T) {
	tests := []struct {
		total          int
		pageSize       int
		wantTotalPages int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{45, 10, 5},
		{46, 10, 5},
		{51, 10, 6},
	}

	for _, tt := range tests {
		items := make([]int, tt.total)
		result := paginate(items, 1, tt.pageSize)
		if result.TotalPages != tt.wantTotalPages {
			t.Errorf("paginate(N=%d, P=%d).TotalPages = %d, want %d",
				tt.total, tt.pageSize, result.TotalPages, tt.wantTotalPages)
		}
		if result.Total != tt.total {
			t.Errorf("Total = %d, want %d", result.Total, tt.total)
		}
	}
}

func TestPaginate_PagePastEndIsEmptyNotError(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	result := paginate(items, 4, 2) // totalPages is 3
	if len(result.Items) != 0 {
		t.Errorf("Items = %v, want empty", result.Items)
	}
	if result.Items == nil {
		t.Error("Items must be an empty slice, not nil (JSON [] vs null)")
	}
	if result.Total != 5 || result.TotalPages != 3 {
		t.Errorf("Total/TotalPages = %d/%d, want 5/3", result.Total, result.TotalPages)
	}
}

func TestPaginate_SlicesTheRequestedPage(t *testing.T) {
	items := []int{10, 20, 30, 40, 50}

	result := paginate(items, 2, 2)
	if len(result.Items) != 2 || result.Items[0] != 30 || result.Items[1] != 40 {
		t.Errorf("page 2 items = %v, want [30 40]", result.Items)
	}
}

func TestClampPaging_Defaults(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"zero values", 0, 0, DefaultPage, DefaultPageSize},
		{"negative values", -3, -1, DefaultPage, DefaultPageSize},
		{"oversized pageSize", 1, 100000, 1, MaxPageSize},
		{"valid values pass through", 3, 50, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := clampPaging(tt.page, tt.pageSize)
			if page != tt.wantPage || pageSize != tt.wantPageSize {
				t.Errorf("clampPaging(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.pageSize, page, pageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

// =========================================================================
// LISTING TESTS
// =========================================================================

func TestListCharacters_FiltersByClass(t *testing.T) {
	svc := NewCatalogService()

	result := svc.ListCharacters("전사", 0, 0)
	if result.Total == 0 {
		t.Fatal("expected at least one 전사 character")
	}
	for _, c := range result.Items {
		if c.Class != "전사" {
			t.Errorf("character %q has class %q, want 전사", c.Name, c.Class)
		}
	}

	unfiltered := svc.ListCharacters("", 0, 0)
	if unfiltered.Total != len(gamedata.Characters) {
		t.Errorf("unfiltered Total = %d, want %d", unfiltered.Total, len(gamedata.Characters))
	}
}

func TestListItems_TypeAndGradeCombineWithAND(t *testing.T) {
	svc := NewCatalogService()

	result := svc.ListItems("consumable", "common", 0, 0)
	for _, item := range result.Items {
		if item.Type != "consumable" || item.Grade != "common" {
			t.Errorf("item %q is %s/%s, want consumable/common", item.Name, item.Type, item.Grade)
		}
	}
	if result.Total == 0 {
		t.Error("expected at least one common consumable in the fixture set")
	}

	// AND semantics: filtering on a grade that exists only for other types
	// must exclude everything.
	none := svc.ListItems("material", "legendary", 0, 0)
	if none.Total != 0 {
		t.Errorf("material+legendary Total = %d, want 0", none.Total)
	}
}

func TestListGuides_FiltersByCategory(t *testing.T) {
	svc := NewCatalogService()

	result := svc.ListGuides("던전", 0, 0)
	if result.Total != 1 {
		t.Fatalf("Total = %d, want 1", result.Total)
	}
	if result.Items[0].Category != "던전" {
		t.Errorf("Category = %q, want 던전", result.Items[0].Category)
	}
}

// =========================================================================
// SEARCH TESTS
// =========================================================================

func TestSearch_EmptyQueryRejected(t *testing.T) {
	svc := NewCatalogService()

	for _, q := range []string{"", "   ", "\t"} {
		_, err := svc.Search(q, "all", 0, 0)
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("Search(%q) error = %v, want ErrValidation", q, err)
		}
	}
}

func TestSearch_AllScopeReturnsUnionAcrossKinds(t *testing.T) {
	svc := NewCatalogService()

	// "마법" appears in item names/descriptions (마법 지팡이) and in the
	// 마법사 character class, but matches no guide — the union must include
	// both matching kinds.
	result, err := svc.Search("마법", "all", 1, 100)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	kinds := map[string]int{}
	for _, hit := range result.Items {
		kinds[hit.Type]++
	}
	if kinds["item"] == 0 {
		t.Error("expected item hits for 마법")
	}
	if kinds["character"] == 0 {
		t.Error("expected character hits for 마법")
	}
}

func TestSearch_SwordQueryMatchesItems(t *testing.T) {
	svc := NewCatalogService()

	result, err := svc.Search("검", "all", 1, 100)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total == 0 {
		t.Fatal("expected hits for 검")
	}
	for _, hit := range result.Items {
		if hit.Type == "item" {
			return
		}
	}
	t.Error("expected an item hit (천둥의 검) for 검")
}

func TestSearch_ScopeNarrowsToOneKind(t *testing.T) {
	svc := NewCatalogService()

	result, err := svc.Search("검", "item", 1, 100)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total == 0 {
		t.Fatal("expected item hits for 검")
	}
	for _, hit := range result.Items {
		if hit.Type != "item" {
			t.Errorf("hit %q has type %q, want item", hit.Title, hit.Type)
		}
	}
}

func TestSearch_CaseInsensitive(t *testing.T) {
	svc := NewCatalogService()

	// Item types are stored lowercase ("weapon"); an uppercase query must
	// still match.
	result, err := svc.Search("WEAPON", "item", 1, 100)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total == 0 {
		t.Error("expected weapon-type items for uppercase query")
	}
}

func TestSearch_ResultShape(t *testing.T) {
	svc := NewCatalogService()

	result, err := svc.Search("글라디에이터", "character", 1, 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("Total = %d, want 1", result.Total)
	}

	hit := result.Items[0]
	if !strings.HasPrefix(hit.ID, "character-") {
		t.Errorf("ID = %q, want character- prefix", hit.ID)
	}
	if hit.Title != "글라디에이터" {
		t.Errorf("Title = %q, want 글라디에이터", hit.Title)
	}
	// Display description is "<class> · Lv.<level>".
	if hit.Description != "전사 · Lv.65" {
		t.Errorf("Description = %q, want 전사 · Lv.65", hit.Description)
	}
	if hit.Data == nil {
		t.Error("Data must carry the original record")
	}
}

func TestSearch_Paginates(t *testing.T) {
	svc := NewCatalogService()

	all, err := svc.Search("가이드", "guide", 1, 100)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if all.Total < 3 {
		t.Skipf("fixture set has %d guide hits, need at least 3", all.Total)
	}

	page, err := svc.Search("가이드", "guide", 2, 2)
	if err != nil {
		t.Fatalf("Search() page 2 error = %v", err)
	}
	if page.Total != all.Total {
		t.Errorf("paged Total = %d, want %d", page.Total, all.Total)
	}
	if page.Page != 2 || page.PageSize != 2 {
		t.Errorf("page/pageSize = %d/%d, want 2/2", page.Page, page.PageSize)
	}
}
