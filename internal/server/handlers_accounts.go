package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gabrielmazz/finances-app-sub000/internal/common"
	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

// --- Account handlers ---

// ownedBy reports whether personID belongs to the caller's relation graph.
func (s *Server) ownedBy(r *http.Request, personID string) (bool, error) {
	owners, err := s.app.Storage.PersonStore().RelatedOwnerIDs(r.Context(), common.ResolvePersonID(r.Context()))
	if err != nil {
		return false, err
	}
	for _, owner := range owners {
		if owner == personID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		owners, err := s.app.Storage.PersonStore().RelatedOwnerIDs(r.Context(), common.ResolvePersonID(r.Context()))
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		accounts, err := s.app.Storage.AccountStore().ListByOwners(r.Context(), owners)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"accounts": accounts})

	case http.MethodPost:
		var req struct {
			Name  string `json:"name"`
			Color string `json:"color"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			WriteErrorWithCode(w, http.StatusBadRequest, "account name is required", "invalid_input")
			return
		}

		now := time.Now()
		account := &models.Account{
			ID:        uuid.NewString(),
			PersonID:  common.ResolvePersonID(r.Context()),
			Name:      strings.TrimSpace(req.Name),
			Color:     req.Color,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.app.Storage.AccountStore().Save(r.Context(), account); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, account)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleAccountByID(w http.ResponseWriter, r *http.Request) {
	accountID := PathParam(r, "/api/accounts/", "")
	if accountID == "" {
		WriteError(w, http.StatusBadRequest, "account id is required")
		return
	}

	account, err := s.app.Storage.AccountStore().Get(r.Context(), accountID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	ok, err := s.ownedBy(r, account.PersonID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if !ok {
		WriteServiceError(w, models.ErrAccountNotAccessible)
		return
	}

	switch r.Method {
	case http.MethodGet:
		WriteJSON(w, http.StatusOK, account)

	case http.MethodPut:
		var req struct {
			Name  string `json:"name"`
			Color string `json:"color"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Name) != "" {
			account.Name = strings.TrimSpace(req.Name)
		}
		if req.Color != "" {
			account.Color = req.Color
		}
		account.UpdatedAt = time.Now()
		if err := s.app.Storage.AccountStore().Save(r.Context(), account); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, account)

	case http.MethodDelete:
		if err := s.app.Storage.AccountStore().Delete(r.Context(), accountID); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"deleted": accountID})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}
