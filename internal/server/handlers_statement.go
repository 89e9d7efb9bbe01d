package server

import (
	"io"
	"net/http"
)

// maxStatementSize caps uploaded statement PDFs at 10 MB.
const maxStatementSize = 10 << 20

// handleStatementImport accepts a multipart PDF upload and returns parsed
// candidate entries. Nothing is written to the ledger; confirmation happens
// through the regular entry endpoints.
func (s *Server) handleStatementImport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxStatementSize)
	if err := r.ParseMultipartForm(maxStatementSize); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	accountID := r.FormValue("account_id")
	if accountID == "" {
		WriteError(w, http.StatusBadRequest, "account_id is required")
		return
	}

	file, _, err := r.FormFile("statement")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "statement file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "failed to read statement file")
		return
	}

	result, err := s.app.StatementService.Import(r.Context(), accountID, data)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}
