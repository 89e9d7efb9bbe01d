package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

// --- Investment handlers ---

type investmentRequest struct {
	Name           string  `json:"name"`
	AccountID      string  `json:"account_id"`
	PrincipalCents int64   `json:"principal_cents"`
	AnnualPercent  float64 `json:"annual_percent"`
	RedemptionTerm string  `json:"redemption_term"`
}

func (req *investmentRequest) toInvestment() *models.Investment {
	return &models.Investment{
		Name:           req.Name,
		AccountID:      req.AccountID,
		PrincipalCents: req.PrincipalCents,
		AnnualPercent:  req.AnnualPercent,
		RedemptionTerm: models.RedemptionTerm(req.RedemptionTerm),
	}
}

func (s *Server) handleInvestments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		investments, err := s.app.InvestmentService.List(r.Context())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"investments": investments})

	case http.MethodPost:
		var req investmentRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		investment, err := s.app.InvestmentService.Create(r.Context(), req.toInvestment())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, investment)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeInvestments dispatches /api/investments/{id} and its sub-resources.
func (s *Server) routeInvestments(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/investments/")
	switch {
	case strings.HasSuffix(rest, "/projection"):
		s.handleInvestmentProjection(w, r, strings.TrimSuffix(rest, "/projection"))
	case strings.HasSuffix(rest, "/sync"):
		s.handleInvestmentSync(w, r, strings.TrimSuffix(rest, "/sync"))
	case strings.HasSuffix(rest, "/adjust"):
		s.handleInvestmentAdjust(w, r, strings.TrimSuffix(rest, "/adjust"))
	default:
		s.handleInvestmentByID(w, r, rest)
	}
}

func (s *Server) handleInvestmentByID(w http.ResponseWriter, r *http.Request, investmentID string) {
	if investmentID == "" {
		WriteError(w, http.StatusBadRequest, "investment id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		investment, err := s.app.InvestmentService.Get(r.Context(), investmentID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, investment)

	case http.MethodDelete:
		if err := s.app.InvestmentService.Delete(r.Context(), investmentID); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"deleted": investmentID})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodDelete)
	}
}

func (s *Server) handleInvestmentProjection(w http.ResponseWriter, r *http.Request, investmentID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	projection, err := s.app.InvestmentService.Projection(r.Context(), investmentID, time.Now())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, projection)
}

func (s *Server) handleInvestmentSync(w http.ResponseWriter, r *http.Request, investmentID string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		AmountCents int64 `json:"amount_cents"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	investment, err := s.app.InvestmentService.Sync(r.Context(), investmentID, req.AmountCents, time.Now())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, investment)
}

func (s *Server) handleInvestmentAdjust(w http.ResponseWriter, r *http.Request, investmentID string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		DeltaCents int64 `json:"delta_cents"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	investment, err := s.app.InvestmentService.Adjust(r.Context(), investmentID, req.DeltaCents, time.Now())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, investment)
}
