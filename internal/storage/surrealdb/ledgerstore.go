package surrealdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/gabrielmazz/finances-app-sub000/internal/common"
	"github.com/gabrielmazz/finances-app-sub000/internal/interfaces"
	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

type LedgerStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewLedgerStore(db *surrealdb.DB, logger *common.Logger) *LedgerStore {
	return &LedgerStore{db: db, logger: logger}
}

func (s *LedgerStore) Get(ctx context.Context, entryID string) (*models.LedgerEntry, error) {
	entry, err := surrealdb.Select[models.LedgerEntry](ctx, s.db, surrealmodels.NewRecordID("ledger_entry", entryID))
	if err != nil {
		return nil, fmt.Errorf("failed to select ledger entry: %w", err)
	}
	if entry == nil || entry.ID == "" {
		return nil, models.NewNotFound("ledger entry", entryID)
	}
	return entry, nil
}

func (s *LedgerStore) Create(ctx context.Context, entry *models.LedgerEntry) error {
	sql := "CREATE type::record('ledger_entry', $id) CONTENT $entry"
	vars := map[string]any{"id": entry.ID, "entry": entry}

	if _, err := surrealdb.Query[[]models.LedgerEntry](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}
	return nil
}

func (s *LedgerStore) Update(ctx context.Context, entry *models.LedgerEntry) error {
	sql := "UPDATE type::record('ledger_entry', $id) CONTENT $entry"
	vars := map[string]any{"id": entry.ID, "entry": entry}

	if _, err := surrealdb.Query[[]models.LedgerEntry](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to update ledger entry: %w", err)
	}
	return nil
}

func (s *LedgerStore) Delete(ctx context.Context, entryID string) error {
	_, err := surrealdb.Delete[models.LedgerEntry](ctx, s.db, surrealmodels.NewRecordID("ledger_entry", entryID))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}
	return nil
}

// Query fetches entries matching the filter. Owners is mandatory; kind,
// account scope and date bounds are applied when set.
func (s *LedgerStore) Query(ctx context.Context, filter interfaces.LedgerFilter) ([]*models.LedgerEntry, error) {
	var conds []string
	vars := map[string]any{"owners": filter.Owners}

	conds = append(conds, "person_id IN $owners")

	if filter.Kind != "" {
		conds = append(conds, "kind = $kind")
		vars["kind"] = string(filter.Kind)
	}
	if filter.CashOnly {
		conds = append(conds, "(account_id IS NONE OR account_id = '')")
	} else if len(filter.AccountIDs) > 0 {
		conds = append(conds, "account_id IN $accounts")
		vars["accounts"] = filter.AccountIDs
	}
	if !filter.Start.IsZero() {
		conds = append(conds, "occurred_at >= $start")
		vars["start"] = filter.Start
	}
	if !filter.End.IsZero() {
		conds = append(conds, "occurred_at <= $end")
		vars["end"] = filter.End
	}

	sql := "SELECT * FROM ledger_entry WHERE " + strings.Join(conds, " AND ") + " ORDER BY occurred_at ASC"
	if filter.Limit > 0 {
		sql += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	entries, err := queryList[models.LedgerEntry](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	return entries, nil
}
