package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransfers_CreateLinksTriple(t *testing.T) {
	s := newTestServer(t)
	source := createAccount(t, s, "Checking")
	target := createAccount(t, s, "Savings")

	rec := doJSON(t, s, http.MethodPost, "/api/transfers", map[string]interface{}{
		"source_account_id": source,
		"target_account_id": target,
		"amount_cents":      25000,
		"date":              time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)

	transferID, _ := body["transfer_id"].(string)
	expenseID, _ := body["expense_entry_id"].(string)
	gainID, _ := body["gain_entry_id"].(string)
	require.NotEmpty(t, transferID)
	require.NotEmpty(t, expenseID)
	require.NotEmpty(t, gainID)

	rec = doJSON(t, s, http.MethodGet, "/api/transfers/"+transferID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	transfer := decodeBody(t, rec)
	assert.Equal(t, expenseID, transfer["expense_entry_id"])
	assert.Equal(t, gainID, transfer["gain_entry_id"])
	assert.Equal(t, "Transfer from Checking to Savings", transfer["description"])

	// Both legs exist as ledger entries and cross-reference each other.
	rec = doJSON(t, s, http.MethodGet, "/api/ledger/entries/"+expenseID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	expense := decodeBody(t, rec)
	assert.Equal(t, "expense", expense["kind"])
	assert.Equal(t, source, expense["account_id"])
	assert.Equal(t, gainID, expense["counterpart_id"])
	assert.Equal(t, transferID, expense["transfer_id"])

	rec = doJSON(t, s, http.MethodGet, "/api/ledger/entries/"+gainID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	gain := decodeBody(t, rec)
	assert.Equal(t, "gain", gain["kind"])
	assert.Equal(t, target, gain["account_id"])
	assert.Equal(t, expenseID, gain["counterpart_id"])
}

func TestTransfers_SameAccountRejected(t *testing.T) {
	s := newTestServer(t)
	account := createAccount(t, s, "Checking")

	rec := doJSON(t, s, http.MethodPost, "/api/transfers", map[string]interface{}{
		"source_account_id": account,
		"target_account_id": account,
		"amount_cents":      1000,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "same_account", decodeBody(t, rec)["code"])
}

func TestTransfers_NonPositiveAmountRejected(t *testing.T) {
	s := newTestServer(t)
	source := createAccount(t, s, "Checking")
	target := createAccount(t, s, "Savings")

	rec := doJSON(t, s, http.MethodPost, "/api/transfers", map[string]interface{}{
		"source_account_id": source,
		"target_account_id": target,
		"amount_cents":      -500,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "non_positive_amount", decodeBody(t, rec)["code"])

	// Nothing was written.
	rec = doJSON(t, s, http.MethodGet, "/api/transfers", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	transfers, ok := decodeBody(t, rec)["transfers"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, transfers)
}

func TestTransfers_CheckFundsRejectsInsufficientBalance(t *testing.T) {
	s := newTestServer(t)
	source := createAccount(t, s, "Checking")
	target := createAccount(t, s, "Savings")

	now := time.Now()
	putOpeningBalance(t, s, source, now.Year(), int(now.Month()), 10000)

	rec := doJSON(t, s, http.MethodPost, "/api/transfers?check_funds=true", map[string]interface{}{
		"source_account_id": source,
		"target_account_id": target,
		"amount_cents":      25000,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "insufficient_balance", decodeBody(t, rec)["code"])

	// Nothing was written.
	rec = doJSON(t, s, http.MethodGet, "/api/transfers", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	transfers, ok := decodeBody(t, rec)["transfers"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, transfers)
}

func TestTransfers_CheckFundsAllowsCoveredAmount(t *testing.T) {
	s := newTestServer(t)
	source := createAccount(t, s, "Checking")
	target := createAccount(t, s, "Savings")

	now := time.Now()
	putOpeningBalance(t, s, source, now.Year(), int(now.Month()), 10000)

	rec := doJSON(t, s, http.MethodPost, "/api/transfers?check_funds=true", map[string]interface{}{
		"source_account_id": source,
		"target_account_id": target,
		"amount_cents":      5000,
	}, nil)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestTransfers_CheckFundsSkipsUnknownBalance(t *testing.T) {
	s := newTestServer(t)
	source := createAccount(t, s, "Checking")
	target := createAccount(t, s, "Savings")

	// No opening snapshot for the month: the balance is unknown, not zero,
	// so the funds check does not block.
	rec := doJSON(t, s, http.MethodPost, "/api/transfers?check_funds=true", map[string]interface{}{
		"source_account_id": source,
		"target_account_id": target,
		"amount_cents":      999999,
	}, nil)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestTransfers_InaccessibleAccountRejected(t *testing.T) {
	s := newTestServer(t)
	source := createAccount(t, s, "Checking")
	target := createAccount(t, s, "Savings")

	rec := doJSON(t, s, http.MethodPost, "/api/transfers", map[string]interface{}{
		"source_account_id": source,
		"target_account_id": target,
		"amount_cents":      1000,
	}, map[string]string{"X-Person-ID": "stranger"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "account_not_accessible", decodeBody(t, rec)["code"])
}
