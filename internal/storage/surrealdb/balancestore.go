package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/gabrielmazz/finances-app-sub000/internal/common"
	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

type BalanceStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewBalanceStore(db *surrealdb.DB, logger *common.Logger) *BalanceStore {
	return &BalanceStore{db: db, logger: logger}
}

// snapshotRecordID builds the composite record id for one (person, account,
// month) snapshot. One record per key keeps Upsert naturally idempotent.
func snapshotRecordID(personID, accountID string, year, month int) string {
	return fmt.Sprintf("%s_%s_%04d-%02d", personID, accountID, year, month)
}

// Get returns the snapshot for the composite key, or nil without error when
// no snapshot is registered for that month.
func (s *BalanceStore) Get(ctx context.Context, personID, accountID string, year, month int) (*models.MonthlyBalanceSnapshot, error) {
	recordID := snapshotRecordID(personID, accountID, year, month)
	snapshot, err := surrealdb.Select[models.MonthlyBalanceSnapshot](ctx, s.db, surrealmodels.NewRecordID("balance_snapshot", recordID))
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select balance snapshot: %w", err)
	}
	if snapshot == nil || snapshot.AccountID == "" {
		return nil, nil
	}
	return snapshot, nil
}

// Upsert writes the snapshot for its composite key, preserving CreatedAt on
// an existing record and stamping UpdatedAt on every write.
func (s *BalanceStore) Upsert(ctx context.Context, snapshot *models.MonthlyBalanceSnapshot) error {
	existing, err := s.Get(ctx, snapshot.PersonID, snapshot.AccountID, snapshot.Year, snapshot.Month)
	if err != nil {
		return err
	}

	now := time.Now()
	if existing != nil {
		snapshot.CreatedAt = existing.CreatedAt
	} else if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = now
	}
	snapshot.UpdatedAt = now

	recordID := snapshotRecordID(snapshot.PersonID, snapshot.AccountID, snapshot.Year, snapshot.Month)
	sql := "UPSERT type::record('balance_snapshot', $id) CONTENT $snapshot"
	vars := map[string]any{"id": recordID, "snapshot": snapshot}

	if _, err := surrealdb.Query[[]models.MonthlyBalanceSnapshot](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to upsert balance snapshot: %w", err)
	}
	return nil
}

// ListByAccount returns snapshots oldest first. A positive limit keeps only
// the most recent months.
func (s *BalanceStore) ListByAccount(ctx context.Context, personID, accountID string, limit int) ([]*models.MonthlyBalanceSnapshot, error) {
	sql := "SELECT * FROM balance_snapshot WHERE person_id = $person_id AND account_id = $account_id ORDER BY year DESC, month DESC"
	vars := map[string]any{"person_id": personID, "account_id": accountID}
	if limit > 0 {
		sql += fmt.Sprintf(" LIMIT %d", limit)
	}

	snapshots, err := queryList[models.MonthlyBalanceSnapshot](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list balance snapshots: %w", err)
	}
	for i, j := 0, len(snapshots)-1; i < j; i, j = i+1, j-1 {
		snapshots[i], snapshots[j] = snapshots[j], snapshots[i]
	}
	return snapshots, nil
}
