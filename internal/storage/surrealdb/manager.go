// Package surrealdb implements the storage contracts against SurrealDB.
package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/gabrielmazz/finances-app-sub000/internal/common"
	"github.com/gabrielmazz/finances-app-sub000/internal/interfaces"
)

// Manager implements interfaces.StorageManager using SurrealDB.
type Manager struct {
	db     *surrealdb.DB
	logger *common.Logger

	personStore     *PersonStore
	accountStore    *AccountStore
	ledgerStore     *LedgerStore
	transferStore   *TransferStore
	obligationStore *ObligationStore
	investmentStore *InvestmentStore
	balanceStore    *BalanceStore
	categoryStore   *CategoryStore
}

// tables lists every document collection; SurrealDB v3 errors on querying
// tables that were never defined.
var tables = []string{
	"person", "account", "ledger_entry", "transfer",
	"obligation", "investment", "balance_snapshot", "category",
}

// NewManager creates a new StorageManager connected to SurrealDB.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ctx := context.Background()

	db, err := surrealdb.New(config.Storage.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Storage.Username,
		"pass": config.Storage.Password,
	}); err != nil {
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Storage.Namespace, config.Storage.Database); err != nil {
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	m, err := newManagerWithDB(db, logger)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("address", config.Storage.Address).
		Str("namespace", config.Storage.Namespace).
		Str("database", config.Storage.Database).
		Msg("SurrealDB storage manager initialized")

	return m, nil
}

// newManagerWithDB wires stores onto an already-connected database.
func newManagerWithDB(db *surrealdb.DB, logger *common.Logger) (*Manager, error) {
	ctx := context.Background()

	for _, table := range tables {
		sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", table)
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return nil, fmt.Errorf("failed to define table %s: %w", table, err)
		}
	}

	m := &Manager{
		db:     db,
		logger: logger,
	}

	m.personStore = NewPersonStore(db, logger)
	m.accountStore = NewAccountStore(db, logger)
	m.ledgerStore = NewLedgerStore(db, logger)
	m.transferStore = NewTransferStore(db, logger)
	m.obligationStore = NewObligationStore(db, logger)
	m.investmentStore = NewInvestmentStore(db, logger)
	m.balanceStore = NewBalanceStore(db, logger)
	m.categoryStore = NewCategoryStore(db, logger)

	return m, nil
}

func (m *Manager) PersonStore() interfaces.PersonStore {
	return m.personStore
}

func (m *Manager) AccountStore() interfaces.AccountStore {
	return m.accountStore
}

func (m *Manager) LedgerStore() interfaces.LedgerStore {
	return m.ledgerStore
}

func (m *Manager) TransferStore() interfaces.TransferStore {
	return m.transferStore
}

func (m *Manager) ObligationStore() interfaces.ObligationStore {
	return m.obligationStore
}

func (m *Manager) InvestmentStore() interfaces.InvestmentStore {
	return m.investmentStore
}

func (m *Manager) BalanceStore() interfaces.BalanceStore {
	return m.balanceStore
}

func (m *Manager) CategoryStore() interfaces.CategoryStore {
	return m.categoryStore
}

func (m *Manager) Close() error {
	return m.db.Close(context.Background())
}
