package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/game-wiki/internal/apperror"
	"github.com/sakif/game-wiki/internal/model"
	"github.com/sakif/game-wiki/internal/repository"
)

// newTestDB returns a DB backed by an in-memory SQLite database that is
// closed when the test finishes.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// testSkill returns a valid skill with all optional fields populated.
func testSkill(name string, level float64) *model.Skill {
	groggy := 150.0
	maxCharge := 3.0
	duration := 8.0
	return &model.Skill{
		Name:        name,
		Class:       "검성",
		Level:       level,
		Type:        "공격",
		UsageType:   "액티브",
		Element:     "바람",
		Cooldown:    12,
		MPCost:      180,
		Range:       5,
		CastTime:    model.CastTimeSeconds(1.5),
		Description: "테스트용 스킬입니다.",
		GroggyGauge: &groggy,
		MaxCharge:   &maxCharge,
		Tags:        []string{"근접", "광역"},
		Target:      "전방의 적",
		Specialization: []string{
			"강화 분기",
		},
		Effects: []model.SkillEffect{
			{Type: "피해", Value: 420, Duration: &duration, Description: "지속 피해"},
		},
		Icon: "/icons/test.png",
	}
}

// =========================================================================
// CREATE / GET TESTS
// =========================================================================

// One connection serves accounts and skills at the same time — the server
// wires a single *DB as both repositories, so both method sets must coexist
// on the type.
func TestDBServesBothRepositories(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	var userRepo repository.UserRepository = db
	var skillRepo repository.SkillRepository = db

	user := createTestUser(t, db, "both@example.com")
	skill := testSkill("동시 저장 스킬", 45)
	if err := skillRepo.CreateSkill(ctx, skill); err != nil {
		t.Fatalf("CreateSkill() error = %v", err)
	}

	if _, err := userRepo.GetByID(ctx, user.ID); err != nil {
		t.Errorf("GetByID() error = %v", err)
	}
	if _, err := skillRepo.GetSkillByID(ctx, skill.ID); err != nil {
		t.Errorf("GetSkillByID() error = %v", err)
	}
}

func TestSkillCreate_AssignsID(t *testing.T) {
	db := newTestDB(t)

	skill := testSkill("천뢰참", 45)
	if err := db.CreateSkill(context.Background(), skill); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if skill.ID == "" {
		t.Fatal("Create() did not set skill.ID")
	}
}

func TestSkillGetByID_RoundTripsAllFields(t *testing.T) {
	db := newTestDB(t)

	created := testSkill("천뢰참", 45)
	if err := db.CreateSkill(context.Background(), created); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := db.GetSkillByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if found.Name != created.Name {
		t.Errorf("Name = %q, want %q", found.Name, created.Name)
	}
	if found.Element != "바람" {
		t.Errorf("Element = %q, want 바람", found.Element)
	}
	if found.CastTime.IsLabel || found.CastTime.Seconds != 1.5 {
		t.Errorf("CastTime = %+v, want numeric 1.5", found.CastTime)
	}
	if found.GroggyGauge == nil || *found.GroggyGauge != 150 {
		t.Errorf("GroggyGauge = %v, want 150", found.GroggyGauge)
	}
	if len(found.Tags) != 2 || found.Tags[0] != "근접" {
		t.Errorf("Tags = %v, want [근접 광역]", found.Tags)
	}
	if len(found.Effects) != 1 || found.Effects[0].Value != 420 {
		t.Errorf("Effects = %+v, want one entry with value 420", found.Effects)
	}
}

func TestSkillGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetSkillByID(context.Background(), "nonexistent-id")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestSkillCreate_RoundsFractionalNumerics(t *testing.T) {
	db := newTestDB(t)

	skill := testSkill("반올림 스킬", 45.6)
	skill.Cooldown = 12.4
	if err := db.CreateSkill(context.Background(), skill); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := db.GetSkillByID(context.Background(), skill.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Level != 46 {
		t.Errorf("Level = %v, want 46 (rounded)", found.Level)
	}
	if found.Cooldown != 12 {
		t.Errorf("Cooldown = %v, want 12 (rounded)", found.Cooldown)
	}
}

func TestSkillCreate_AbsentOptionalsStayAbsent(t *testing.T) {
	db := newTestDB(t)

	skill := &model.Skill{
		Name:        "최소 스킬",
		Class:       "수호성",
		Level:       30,
		Type:        "방어",
		UsageType:   "패시브",
		Cooldown:    0,
		MPCost:      0,
		Range:       0,
		CastTime:    model.CastTimeLabel("즉시 시전"),
		Description: "옵션 필드가 전혀 없는 스킬.",
	}
	if err := db.CreateSkill(context.Background(), skill); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := db.GetSkillByID(context.Background(), skill.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if found.Element != "" {
		t.Errorf("Element = %q, want absent", found.Element)
	}
	if found.GroggyGauge != nil || found.MaxCharge != nil {
		t.Error("optional numerics should stay nil")
	}
	if found.Tags != nil || found.Specialization != nil || found.Effects != nil {
		t.Error("optional lists should stay nil")
	}
	if !found.CastTime.IsLabel || found.CastTime.Label != "즉시 시전" {
		t.Errorf("CastTime = %+v, want label 즉시 시전", found.CastTime)
	}
}

// =========================================================================
// LIST TESTS
// =========================================================================

func TestSkillList_OrdersByLevelDescThenNameAsc(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, s := range []*model.Skill{
		testSkill("나중 스킬", 40),
		testSkill("가나다 스킬", 50),
		testSkill("마지막 스킬", 50),
	} {
		if err := db.CreateSkill(ctx, s); err != nil {
			t.Fatalf("Create(%s): %v", s.Name, err)
		}
	}

	skills, total, err := db.ListSkills(ctx, repository.SkillFilter{}, repository.ListOptions{Limit: 10})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}

	wantOrder := []string{"가나다 스킬", "마지막 스킬", "나중 스킬"}
	for i, want := range wantOrder {
		if skills[i].Name != want {
			t.Errorf("skills[%d].Name = %q, want %q", i, skills[i].Name, want)
		}
	}
}

func TestSkillList_FiltersCombineWithAND(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	attack := testSkill("공격 스킬", 45)
	defense := testSkill("방어 스킬", 45)
	defense.Type = "방어"
	passive := testSkill("패시브 공격", 45)
	passive.UsageType = "패시브"

	for _, s := range []*model.Skill{attack, defense, passive} {
		if err := db.CreateSkill(ctx, s); err != nil {
			t.Fatalf("Create(%s): %v", s.Name, err)
		}
	}

	skills, total, err := db.ListSkills(ctx,
		repository.SkillFilter{Type: "공격", UsageType: "액티브"},
		repository.ListOptions{Limit: 10},
	)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 {
		t.Fatalf("total = %d, want 1", total)
	}
	if skills[0].Name != "공격 스킬" {
		t.Errorf("matched %q, want 공격 스킬", skills[0].Name)
	}
}

func TestSkillList_PaginatesWithTotalUnchanged(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		s := testSkill("스킬"+string(rune('A'+i)), float64(40+i))
		if err := db.CreateSkill(ctx, s); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	skills, total, err := db.ListSkills(ctx, repository.SkillFilter{}, repository.ListOptions{Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(skills) != 1 {
		t.Errorf("len(skills) = %d, want 1 (last page)", len(skills))
	}
}

// =========================================================================
// UPDATE / DELETE TESTS
// =========================================================================

func TestSkillUpdate_ReplacesRecord(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	skill := testSkill("수정 전", 45)
	if err := db.CreateSkill(ctx, skill); err != nil {
		t.Fatalf("Create: %v", err)
	}

	skill.Name = "수정 후"
	skill.Level = 60
	skill.Tags = nil // full replace clears dropped optionals
	if err := db.UpdateSkill(ctx, skill); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := db.GetSkillByID(ctx, skill.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.Name != "수정 후" || found.Level != 60 {
		t.Errorf("got %q lv%v, want 수정 후 lv60", found.Name, found.Level)
	}
	if found.Tags != nil {
		t.Errorf("Tags = %v, want nil after replace", found.Tags)
	}
}

func TestSkillUpdate_NotFound(t *testing.T) {
	db := newTestDB(t)

	skill := testSkill("유령 스킬", 45)
	skill.ID = "nonexistent-id"
	err := db.UpdateSkill(context.Background(), skill)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestSkillDelete_ReturnsDeletedRecord(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	skill := testSkill("삭제될 스킬", 45)
	if err := db.CreateSkill(ctx, skill); err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, err := db.DeleteSkill(ctx, skill.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted.Name != "삭제될 스킬" {
		t.Errorf("deleted.Name = %q, want 삭제될 스킬", deleted.Name)
	}

	if _, err := db.GetSkillByID(ctx, skill.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID after delete = %v, want ErrNotFound", err)
	}
}

func TestSkillDelete_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.DeleteSkill(context.Background(), "nonexistent-id")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}
