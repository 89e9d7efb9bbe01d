package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gabrielmazz/finances-app-sub000/internal/app"
	"github.com/gabrielmazz/finances-app-sub000/internal/clients/notify"
	"github.com/gabrielmazz/finances-app-sub000/internal/common"
	"github.com/gabrielmazz/finances-app-sub000/internal/services/balance"
	"github.com/gabrielmazz/finances-app-sub000/internal/services/investment"
	"github.com/gabrielmazz/finances-app-sub000/internal/services/ledger"
	"github.com/gabrielmazz/finances-app-sub000/internal/services/obligation"
	"github.com/gabrielmazz/finances-app-sub000/internal/services/report"
	"github.com/gabrielmazz/finances-app-sub000/internal/services/statement"
	"github.com/gabrielmazz/finances-app-sub000/internal/services/transfer"
	"github.com/gabrielmazz/finances-app-sub000/internal/storage/memory"
)

const testJWTSecret = "test-secret"

// newTestServer wires the full middleware and route stack over in-memory
// storage so handler tests exercise the same path production requests take.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	store := memory.NewManager()
	logger := common.NewSilentLogger()

	config := common.NewDefaultConfig()
	config.Auth.JWTSecret = testJWTSecret

	notifyClient := notify.NewNoopClient()
	ledgerService := ledger.NewService(store, logger)
	balanceService := balance.NewService(store, ledgerService, logger)

	a := &app.App{
		Config:            config,
		Logger:            logger,
		Storage:           store,
		NotifyClient:      notifyClient,
		LedgerService:     ledgerService,
		ObligationService: obligation.NewService(store, notifyClient, logger),
		InvestmentService: investment.NewService(store, logger),
		BalanceService:    balanceService,
		TransferService:   transfer.NewService(store, logger),
		StatementService:  statement.NewService(store, logger),
		ReportService:     report.NewService(store, balanceService, logger),
		StartupTime:       time.Now(),
	}

	return NewServer(a)
}

// doJSON performs a request against the server's handler stack and returns
// the recorded response.
func doJSON(t *testing.T, s *Server, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals the recorded JSON body into a generic map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// createAccount creates an account for the default person and returns its id.
func createAccount(t *testing.T, s *Server, name string) string {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/accounts", map[string]interface{}{"name": name}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	return id
}
