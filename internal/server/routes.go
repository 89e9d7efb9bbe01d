package server

import "net/http"

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)

	// Accounts
	mux.HandleFunc("/api/accounts", s.handleAccounts)
	mux.HandleFunc("/api/accounts/", s.handleAccountByID)

	// Ledger
	mux.HandleFunc("/api/ledger/entries", s.handleEntries)
	mux.HandleFunc("/api/ledger/entries/", s.handleEntryByID)
	mux.HandleFunc("/api/ledger/summary", s.handleLedgerSummary)

	// Transfers
	mux.HandleFunc("/api/transfers", s.handleTransfers)
	mux.HandleFunc("/api/transfers/", s.handleTransferByID)

	// Obligations
	mux.HandleFunc("/api/obligations", s.handleObligations)
	mux.HandleFunc("/api/obligations/", s.routeObligations)

	// Balances
	mux.HandleFunc("/api/balances/", s.routeBalances)

	// Investments
	mux.HandleFunc("/api/investments", s.handleInvestments)
	mux.HandleFunc("/api/investments/", s.routeInvestments)

	// Statements
	mux.HandleFunc("/api/statements/import", s.handleStatementImport)

	// Categories
	mux.HandleFunc("/api/categories", s.handleCategories)
	mux.HandleFunc("/api/categories/", s.handleCategoryByID)
}
