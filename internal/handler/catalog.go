package handler

import (
	"net/http"

	"github.com/sakif/game-wiki/internal/service"
)

// CatalogHandler serves the read-only reference collections and the unified
// search.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// HandleCharacters returns one page of characters.
//
// HTTP: GET /api/characters?page=1&pageSize=20&class=전사
func (h *CatalogHandler) HandleCharacters(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	result := h.service.ListCharacters(r.URL.Query().Get("class"), page, pageSize)
	writeSuccess(w, http.StatusOK, result, "")
}

// HandleItems returns one page of items, filtered by type and grade.
//
// HTTP: GET /api/items?page=1&pageSize=20&type=weapon&grade=epic
func (h *CatalogHandler) HandleItems(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	result := h.service.ListItems(
		r.URL.Query().Get("type"),
		r.URL.Query().Get("grade"),
		page, pageSize,
	)
	writeSuccess(w, http.StatusOK, result, "")
}

// HandleGuides returns one page of guides.
//
// HTTP: GET /api/guides?page=1&pageSize=20&category=던전
func (h *CatalogHandler) HandleGuides(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	result := h.service.ListGuides(r.URL.Query().Get("category"), page, pageSize)
	writeSuccess(w, http.StatusOK, result, "")
}

// HandleSearch runs the unified search.
//
// HTTP: GET /api/search?q=검&type=all&page=1&pageSize=20
func (h *CatalogHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	result, err := h.service.Search(
		r.URL.Query().Get("q"),
		r.URL.Query().Get("type"),
		page, pageSize,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, "")
}
