package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postEntry(t *testing.T, s *Server, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/ledger/entries", body, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody(t, rec)
}

func TestEntries_CreateAndGet(t *testing.T) {
	s := newTestServer(t)
	accountID := createAccount(t, s, "Checking")

	created := postEntry(t, s, map[string]interface{}{
		"kind":         "expense",
		"account_id":   accountID,
		"amount_cents": 4500,
		"occurred_at":  time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		"note":         "lunch",
	})
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	rec := doJSON(t, s, http.MethodGet, "/api/ledger/entries/"+id, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "expense", body["kind"])
	assert.Equal(t, float64(4500), body["amount_cents"])
}

func TestEntries_CreateRejectsNonPositiveAmount(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/ledger/entries", map[string]interface{}{
		"kind":         "expense",
		"amount_cents": 0,
		"occurred_at":  time.Now(),
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "non_positive_amount", decodeBody(t, rec)["code"])
}

func TestEntries_ListByKind(t *testing.T) {
	s := newTestServer(t)
	accountID := createAccount(t, s, "Checking")

	postEntry(t, s, map[string]interface{}{
		"kind": "expense", "account_id": accountID, "amount_cents": 100,
		"occurred_at": time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	postEntry(t, s, map[string]interface{}{
		"kind": "gain", "account_id": accountID, "amount_cents": 200,
		"occurred_at": time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	})

	rec := doJSON(t, s, http.MethodGet, "/api/ledger/entries?kind=gain", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries, ok := decodeBody(t, rec)["entries"].([]interface{})
	require.True(t, ok)
	require.Len(t, entries, 1)
	assert.Equal(t, "gain", entries[0].(map[string]interface{})["kind"])
}

func TestEntries_InvalidDateParam(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/ledger/entries?start=yesterday", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummary_AccountTotals(t *testing.T) {
	s := newTestServer(t)
	accountID := createAccount(t, s, "Checking")

	postEntry(t, s, map[string]interface{}{
		"kind": "expense", "account_id": accountID, "amount_cents": 3000,
		"occurred_at": time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC),
	})
	postEntry(t, s, map[string]interface{}{
		"kind": "gain", "account_id": accountID, "amount_cents": 9000,
		"occurred_at": time.Date(2026, 5, 20, 23, 59, 0, 0, time.UTC),
	})
	// Outside the range, must not be counted.
	postEntry(t, s, map[string]interface{}{
		"kind": "expense", "account_id": accountID, "amount_cents": 777,
		"occurred_at": time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	rec := doJSON(t, s, http.MethodGet, "/api/ledger/summary?start=2026-05-01&end=2026-05-31&accounts="+accountID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, float64(3000), body["expense_cents"])
	assert.Equal(t, float64(9000), body["gain_cents"])
}

func TestSummary_RequiresRange(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/ledger/summary", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummary_EndBeforeStart(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/ledger/summary?start=2026-05-31&end=2026-05-01", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_date_range", decodeBody(t, rec)["code"])
}

func TestSummary_CashOnlyWhenNoAccounts(t *testing.T) {
	s := newTestServer(t)
	accountID := createAccount(t, s, "Checking")

	postEntry(t, s, map[string]interface{}{
		"kind": "expense", "account_id": accountID, "amount_cents": 5000,
		"occurred_at": time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC),
	})
	postEntry(t, s, map[string]interface{}{
		"kind": "expense", "amount_cents": 1200, "paid_in_cash": true,
		"occurred_at": time.Date(2026, 5, 6, 0, 0, 0, 0, time.UTC),
	})

	rec := doJSON(t, s, http.MethodGet, "/api/ledger/summary?start=2026-05-01&end=2026-05-31", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1200), decodeBody(t, rec)["expense_cents"])
}
