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

type ObligationStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewObligationStore(db *surrealdb.DB, logger *common.Logger) *ObligationStore {
	return &ObligationStore{db: db, logger: logger}
}

func (s *ObligationStore) Get(ctx context.Context, templateID string) (*models.ObligationTemplate, error) {
	template, err := surrealdb.Select[models.ObligationTemplate](ctx, s.db, surrealmodels.NewRecordID("obligation", templateID))
	if err != nil {
		return nil, fmt.Errorf("failed to select obligation template: %w", err)
	}
	if template == nil || template.ID == "" {
		return nil, models.NewNotFound("obligation template", templateID)
	}
	return template, nil
}

func (s *ObligationStore) Save(ctx context.Context, template *models.ObligationTemplate) error {
	sql := "UPSERT type::record('obligation', $id) CONTENT $template"
	vars := map[string]any{"id": template.ID, "template": template}

	if _, err := surrealdb.Query[[]models.ObligationTemplate](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save obligation template: %w", err)
	}
	return nil
}

func (s *ObligationStore) Delete(ctx context.Context, templateID string) error {
	_, err := surrealdb.Delete[models.ObligationTemplate](ctx, s.db, surrealmodels.NewRecordID("obligation", templateID))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete obligation template: %w", err)
	}
	return nil
}

func (s *ObligationStore) ListByOwners(ctx context.Context, owners []string) ([]*models.ObligationTemplate, error) {
	sql := "SELECT * FROM obligation WHERE person_id IN $owners ORDER BY due_day ASC"
	vars := map[string]any{"owners": owners}

	templates, err := queryList[models.ObligationTemplate](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list obligation templates: %w", err)
	}
	return templates, nil
}

func (s *ObligationStore) FindBySettlementEntry(ctx context.Context, entryID string) (*models.ObligationTemplate, error) {
	sql := "SELECT * FROM obligation WHERE settlement.entry_id = $entry_id LIMIT 1"
	vars := map[string]any{"entry_id": entryID}

	template, err := queryOne[models.ObligationTemplate](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to find obligation by settlement entry: %w", err)
	}
	return template, nil
}

// CreateEntryAndLock persists the settlement entry and sets the lock in one
// transaction, so the lock can never exist without its entry.
func (s *ObligationStore) CreateEntryAndLock(ctx context.Context, templateID string, entry *models.LedgerEntry, settlement *models.Settlement) error {
	sql := `BEGIN TRANSACTION;
CREATE type::record('ledger_entry', $entry_id) CONTENT $entry;
UPDATE type::record('obligation', $template_id) SET settlement = $settlement, updated_at = $now;
COMMIT TRANSACTION;`

	vars := map[string]any{
		"entry_id":    entry.ID,
		"entry":       entry,
		"template_id": templateID,
		"settlement":  settlement,
		"now":         time.Now(),
	}

	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to settle obligation: %w", err)
	}
	return nil
}

// DeleteEntryAndUnlock removes the linked entry and clears the lock in one
// transaction. A failed entry deletion aborts the whole batch, leaving the
// lock intact.
func (s *ObligationStore) DeleteEntryAndUnlock(ctx context.Context, templateID, entryID string) error {
	sql := `BEGIN TRANSACTION;
DELETE type::record('ledger_entry', $entry_id);
UPDATE type::record('obligation', $template_id) SET settlement = NONE, updated_at = $now;
COMMIT TRANSACTION;`

	vars := map[string]any{
		"entry_id":    entryID,
		"template_id": templateID,
		"now":         time.Now(),
	}

	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to reclaim obligation: %w", err)
	}
	return nil
}
