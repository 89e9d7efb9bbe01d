package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gabrielmazz/finances-app-sub000/internal/interfaces"
	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

// --- Obligation handlers ---

type obligationRequest struct {
	Kind             string `json:"kind"`
	Name             string `json:"name"`
	AmountCents      int64  `json:"amount_cents"`
	DueDay           int    `json:"due_day"`
	CategoryID       string `json:"category_id"`
	RemindersEnabled bool   `json:"reminders_enabled"`
}

func (req *obligationRequest) toTemplate() *models.ObligationTemplate {
	return &models.ObligationTemplate{
		Kind:             models.EntryKind(req.Kind),
		Name:             req.Name,
		AmountCents:      req.AmountCents,
		DueDay:           req.DueDay,
		CategoryID:       req.CategoryID,
		RemindersEnabled: req.RemindersEnabled,
	}
}

func (s *Server) handleObligations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		templates, err := s.app.ObligationService.ListTemplates(r.Context())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"obligations": templates})

	case http.MethodPost:
		var req obligationRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		template, err := s.app.ObligationService.CreateTemplate(r.Context(), req.toTemplate())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, template)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeObligations dispatches /api/obligations/{id} and its sub-resources.
func (s *Server) routeObligations(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/obligations/")
	switch {
	case strings.HasSuffix(rest, "/settle"):
		s.handleObligationSettle(w, r, strings.TrimSuffix(rest, "/settle"))
	case strings.HasSuffix(rest, "/reclaim"):
		s.handleObligationReclaim(w, r, strings.TrimSuffix(rest, "/reclaim"))
	case strings.HasSuffix(rest, "/status"):
		s.handleObligationStatus(w, r, strings.TrimSuffix(rest, "/status"))
	default:
		s.handleObligationByID(w, r, rest)
	}
}

func (s *Server) handleObligationByID(w http.ResponseWriter, r *http.Request, templateID string) {
	if templateID == "" {
		WriteError(w, http.StatusBadRequest, "obligation id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		template, err := s.app.ObligationService.GetTemplate(r.Context(), templateID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, template)

	case http.MethodPut:
		var req obligationRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		template := req.toTemplate()
		template.ID = templateID
		updated, err := s.app.ObligationService.UpdateTemplate(r.Context(), template)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.app.ObligationService.DeleteTemplate(r.Context(), templateID); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"deleted": templateID})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (s *Server) handleObligationSettle(w http.ResponseWriter, r *http.Request, templateID string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	// An empty body means "settle with template defaults". The body is
	// decoded regardless of Content-Length so chunked requests keep their
	// overrides; only a genuinely absent payload falls through.
	var req struct {
		AccountID   string    `json:"account_id"`
		AmountCents int64     `json:"amount_cents"`
		Date        time.Time `json:"date"`
		Note        string    `json:"note"`
	}
	if r.Body != nil {
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			WriteError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
			return
		}
	}

	settlement, err := s.app.ObligationService.Settle(r.Context(), templateID, interfaces.SettleOptions{
		AccountID:   req.AccountID,
		AmountCents: req.AmountCents,
		Date:        req.Date,
		Note:        req.Note,
	}, time.Now())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, settlement)
}

func (s *Server) handleObligationReclaim(w http.ResponseWriter, r *http.Request, templateID string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if err := s.app.ObligationService.Reclaim(r.Context(), templateID); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"reclaimed": templateID})
}

func (s *Server) handleObligationStatus(w http.ResponseWriter, r *http.Request, templateID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	status, err := s.app.ObligationService.Status(r.Context(), templateID, time.Now())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, status)
}
