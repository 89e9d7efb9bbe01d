package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gabrielmazz/finances-app-sub000/internal/common"
	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

// --- Category handlers ---

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		owners, err := s.app.Storage.PersonStore().RelatedOwnerIDs(r.Context(), common.ResolvePersonID(r.Context()))
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		categories, err := s.app.Storage.CategoryStore().ListByOwners(r.Context(), owners)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})

	case http.MethodPost:
		var req struct {
			Name     string   `json:"name"`
			Keywords []string `json:"keywords"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			WriteErrorWithCode(w, http.StatusBadRequest, "category name is required", "invalid_input")
			return
		}

		category := &models.Category{
			ID:        uuid.NewString(),
			PersonID:  common.ResolvePersonID(r.Context()),
			Name:      strings.TrimSpace(req.Name),
			Keywords:  req.Keywords,
			CreatedAt: time.Now(),
		}
		if err := s.app.Storage.CategoryStore().Save(r.Context(), category); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, category)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleCategoryByID(w http.ResponseWriter, r *http.Request) {
	categoryID := PathParam(r, "/api/categories/", "")
	if categoryID == "" {
		WriteError(w, http.StatusBadRequest, "category id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		category, err := s.app.Storage.CategoryStore().Get(r.Context(), categoryID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, category)

	case http.MethodDelete:
		if err := s.app.Storage.CategoryStore().Delete(r.Context(), categoryID); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"deleted": categoryID})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodDelete)
	}
}
