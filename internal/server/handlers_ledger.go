package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gabrielmazz/finances-app-sub000/internal/interfaces"
	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

// --- Ledger handlers ---

type entryRequest struct {
	Kind           string    `json:"kind"`
	AccountID      string    `json:"account_id"`
	AmountCents    int64     `json:"amount_cents"`
	OccurredAt     time.Time `json:"occurred_at"`
	CategoryID     string    `json:"category_id"`
	Note           string    `json:"note"`
	PaidInCash     bool      `json:"paid_in_cash"`
	InvestmentFlow bool      `json:"investment_flow"`
}

func (req *entryRequest) toEntry() *models.LedgerEntry {
	return &models.LedgerEntry{
		Kind:           models.EntryKind(req.Kind),
		AccountID:      req.AccountID,
		AmountCents:    req.AmountCents,
		OccurredAt:     req.OccurredAt,
		CategoryID:     req.CategoryID,
		Note:           req.Note,
		PaidInCash:     req.PaidInCash,
		InvestmentFlow: req.InvestmentFlow,
	}
}

// parseDateParam parses a query date in RFC 3339 or plain YYYY-MM-DD form.
func parseDateParam(value string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		filter := interfaces.LedgerFilter{}
		q := r.URL.Query()

		if accounts := q.Get("accounts"); accounts != "" {
			filter.AccountIDs = strings.Split(accounts, ",")
		}
		filter.CashOnly = q.Get("cash") == "true"
		filter.Kind = models.EntryKind(q.Get("kind"))
		if start := q.Get("start"); start != "" {
			t, ok := parseDateParam(start)
			if !ok {
				WriteError(w, http.StatusBadRequest, "invalid start date")
				return
			}
			filter.Start = t
		}
		if end := q.Get("end"); end != "" {
			t, ok := parseDateParam(end)
			if !ok {
				WriteError(w, http.StatusBadRequest, "invalid end date")
				return
			}
			filter.End = t
		}
		if limit := q.Get("limit"); limit != "" {
			n, err := strconv.Atoi(limit)
			if err != nil || n < 0 {
				WriteError(w, http.StatusBadRequest, "invalid limit")
				return
			}
			filter.Limit = n
		}

		entries, err := s.app.LedgerService.ListEntries(r.Context(), filter)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})

	case http.MethodPost:
		var req entryRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		entry, err := s.app.LedgerService.CreateEntry(r.Context(), req.toEntry())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, entry)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleEntryByID(w http.ResponseWriter, r *http.Request) {
	entryID := PathParam(r, "/api/ledger/entries/", "")
	if entryID == "" {
		WriteError(w, http.StatusBadRequest, "entry id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		entry, err := s.app.LedgerService.GetEntry(r.Context(), entryID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, entry)

	case http.MethodPut:
		var req entryRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		entry := req.toEntry()
		entry.ID = entryID
		updated, err := s.app.LedgerService.UpdateEntry(r.Context(), entry)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.app.LedgerService.DeleteEntry(r.Context(), entryID); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"deleted": entryID})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// handleLedgerSummary returns aggregated totals for an inclusive date range.
// Omitting accounts restricts to cash entries.
func (s *Server) handleLedgerSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	start, ok := parseDateParam(q.Get("start"))
	if !ok {
		WriteError(w, http.StatusBadRequest, "invalid or missing start date")
		return
	}
	end, ok := parseDateParam(q.Get("end"))
	if !ok {
		WriteError(w, http.StatusBadRequest, "invalid or missing end date")
		return
	}

	var accountIDs []string
	if accounts := q.Get("accounts"); accounts != "" {
		accountIDs = strings.Split(accounts, ",")
	}

	totals, err := s.app.LedgerService.SumByAccountAndRange(r.Context(), accountIDs, start, end)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, totals)
}
