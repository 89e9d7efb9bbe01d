package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// --- Balance handlers ---

// parseYearMonth reads year/month query params, defaulting to the current
// calendar month when absent.
func parseYearMonth(r *http.Request) (int, int, bool) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	q := r.URL.Query()
	if y := q.Get("year"); y != "" {
		n, err := strconv.Atoi(y)
		if err != nil {
			return 0, 0, false
		}
		year = n
	}
	if m := q.Get("month"); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil {
			return 0, 0, false
		}
		month = n
	}
	if month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}

// routeBalances dispatches /api/balances/{accountID} and its chart sub-resource.
func (s *Server) routeBalances(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/balances/")
	if strings.HasSuffix(rest, "/chart") {
		s.handleBalanceChart(w, r, strings.TrimSuffix(rest, "/chart"))
		return
	}
	s.handleBalance(w, r, rest)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request, accountID string) {
	if accountID == "" {
		WriteError(w, http.StatusBadRequest, "account id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		year, month, ok := parseYearMonth(r)
		if !ok {
			WriteError(w, http.StatusBadRequest, "invalid year or month")
			return
		}
		balance, err := s.app.BalanceService.CurrentBalance(r.Context(), accountID, year, month)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		// A nil balance means no opening snapshot is registered for the
		// month. The client must distinguish that from a zero balance.
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"registered": balance != nil,
			"balance":    balance,
		})

	case http.MethodPut:
		var req struct {
			Year        int   `json:"year"`
			Month       int   `json:"month"`
			AmountCents int64 `json:"amount_cents"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		snapshot, err := s.app.BalanceService.UpsertOpeningBalance(r.Context(), accountID, req.Year, req.Month, req.AmountCents)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, snapshot)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut)
	}
}

func (s *Server) handleBalanceChart(w http.ResponseWriter, r *http.Request, accountID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if accountID == "" {
		WriteError(w, http.StatusBadRequest, "account id is required")
		return
	}

	months := 12
	if m := r.URL.Query().Get("months"); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil || n < 2 {
			WriteError(w, http.StatusBadRequest, "months must be at least 2")
			return
		}
		months = n
	}

	png, err := s.app.ReportService.BalanceChart(r.Context(), accountID, months)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
