package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sakif/game-wiki/internal/apperror"
	"github.com/sakif/game-wiki/internal/repository"
	"github.com/sakif/game-wiki/internal/service"
)

// SkillHandler exposes the skill collection: a filtered, paginated listing
// plus the admin write path (create, full replace, delete).
type SkillHandler struct {
	service *service.SkillService
	logger  *slog.Logger
}

// NewSkillHandler creates a SkillHandler.
func NewSkillHandler(svc *service.SkillService, logger *slog.Logger) *SkillHandler {
	return &SkillHandler{service: svc, logger: logger}
}

// HandleList returns one page of skills.
//
// HTTP: GET /api/skills?page=1&pageSize=20&class=검성&type=공격&usageType=액티브
//
// Filters combine with AND semantics; each is an exact match.
func (h *SkillHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	filter := repository.SkillFilter{
		Class:     r.URL.Query().Get("class"),
		Type:      r.URL.Query().Get("type"),
		UsageType: r.URL.Query().Get("usageType"),
	}

	result, err := h.service.List(r.Context(), filter, page, pageSize)
	if err != nil {
		h.logger.Error("listing skills failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, "")
}

// HandleGetByID returns a single skill.
//
// HTTP: GET /api/skills/{id}
func (h *SkillHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	skill, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, skill, "")
}

// HandleCreate validates and inserts a new skill.
//
// HTTP: POST /api/skills
//
// The body is decoded as a loose map rather than a typed struct: validation
// must distinguish "field absent" from "field zero-valued", and a typed
// decode erases that difference.
func (h *SkillHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperror.ValidationFailed("", "요청 본문이 올바르지 않습니다."))
		return
	}

	skill, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, skill, "")
}

// HandleUpdate fully replaces the skill with the path id.
//
// HTTP: PUT /api/skills/{id}
func (h *SkillHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperror.ValidationFailed("", "요청 본문이 올바르지 않습니다."))
		return
	}

	skill, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, skill, "")
}

// HandleDelete removes a skill and echoes the removed record.
//
// HTTP: DELETE /api/skills/{id}
func (h *SkillHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	skill, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, skill, "스킬이 삭제되었습니다.")
}
