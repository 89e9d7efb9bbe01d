package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

// --- Transfer handlers ---

func (s *Server) handleTransfers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		transfers, err := s.app.TransferService.List(r.Context())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		if transfers == nil {
			transfers = []*models.Transfer{}
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"transfers": transfers})

	case http.MethodPost:
		var req struct {
			SourceAccountID string    `json:"source_account_id"`
			TargetAccountID string    `json:"target_account_id"`
			AmountCents     int64     `json:"amount_cents"`
			Date            time.Time `json:"date"`
			Description     string    `json:"description"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if req.Date.IsZero() {
			req.Date = time.Now()
		}

		// check_funds=true verifies the source account can cover the amount
		// before anything is written. A month with no registered opening
		// snapshot has an unknown balance and passes the check; unknown is
		// never treated as zero.
		if r.URL.Query().Get("check_funds") == "true" {
			balance, err := s.app.BalanceService.CurrentBalance(r.Context(), req.SourceAccountID, req.Date.Year(), int(req.Date.Month()))
			if err != nil {
				WriteServiceError(w, err)
				return
			}
			if balance != nil && balance.BalanceCents < req.AmountCents {
				WriteServiceError(w, fmt.Errorf("source account holds %d cents, transfer needs %d: %w",
					balance.BalanceCents, req.AmountCents, models.ErrInsufficientBalance))
				return
			}
		}

		result, err := s.app.TransferService.Transfer(r.Context(), req.SourceAccountID, req.TargetAccountID, req.AmountCents, req.Date, req.Description)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, result)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleTransferByID(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	transferID := PathParam(r, "/api/transfers/", "")
	if transferID == "" {
		WriteError(w, http.StatusBadRequest, "transfer id is required")
		return
	}

	transfer, err := s.app.TransferService.Get(r.Context(), transferID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, transfer)
}
