package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postMultipart(t *testing.T, s *Server, fields map[string]string, fileField, fileName string, fileData []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/statements/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestStatementImport_RequiresAccountID(t *testing.T) {
	s := newTestServer(t)

	rec := postMultipart(t, s, nil, "statement", "statement.pdf", []byte("%PDF-1.4"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatementImport_RequiresFile(t *testing.T) {
	s := newTestServer(t)
	accountID := createAccount(t, s, "Checking")

	rec := postMultipart(t, s, map[string]string{"account_id": accountID}, "", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatementImport_UnknownAccount(t *testing.T) {
	s := newTestServer(t)

	rec := postMultipart(t, s, map[string]string{"account_id": "nope"}, "statement", "statement.pdf", []byte("%PDF-1.4"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatementImport_RejectsGet(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/statements/import", nil, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
