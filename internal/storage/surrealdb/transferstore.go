package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/gabrielmazz/finances-app-sub000/internal/common"
	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

type TransferStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewTransferStore(db *surrealdb.DB, logger *common.Logger) *TransferStore {
	return &TransferStore{db: db, logger: logger}
}

func (s *TransferStore) Get(ctx context.Context, transferID string) (*models.Transfer, error) {
	transfer, err := surrealdb.Select[models.Transfer](ctx, s.db, surrealmodels.NewRecordID("transfer", transferID))
	if err != nil {
		return nil, fmt.Errorf("failed to select transfer: %w", err)
	}
	if transfer == nil || transfer.ID == "" {
		return nil, models.NewNotFound("transfer", transferID)
	}
	return transfer, nil
}

func (s *TransferStore) ListByOwners(ctx context.Context, owners []string) ([]*models.Transfer, error) {
	sql := "SELECT * FROM transfer WHERE person_id IN $owners ORDER BY date DESC"
	vars := map[string]any{"owners": owners}

	transfers, err := queryList[models.Transfer](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	return transfers, nil
}

// CreateTriple writes the transfer record and both ledger entry legs inside
// one SurrealDB transaction. Either all three records exist afterwards or
// none do.
func (s *TransferStore) CreateTriple(ctx context.Context, transfer *models.Transfer, expense, gain *models.LedgerEntry) error {
	sql := `BEGIN TRANSACTION;
CREATE type::record('ledger_entry', $expense_id) CONTENT $expense;
CREATE type::record('ledger_entry', $gain_id) CONTENT $gain;
CREATE type::record('transfer', $transfer_id) CONTENT $transfer;
COMMIT TRANSACTION;`

	vars := map[string]any{
		"expense_id":  expense.ID,
		"expense":     expense,
		"gain_id":     gain.ID,
		"gain":        gain,
		"transfer_id": transfer.ID,
		"transfer":    transfer,
	}

	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to create transfer triple: %w", err)
	}
	return nil
}
