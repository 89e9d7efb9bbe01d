package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/gabrielmazz/finances-app-sub000/internal/common"
	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

type AccountStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewAccountStore(db *surrealdb.DB, logger *common.Logger) *AccountStore {
	return &AccountStore{db: db, logger: logger}
}

func (s *AccountStore) Get(ctx context.Context, accountID string) (*models.Account, error) {
	account, err := surrealdb.Select[models.Account](ctx, s.db, surrealmodels.NewRecordID("account", accountID))
	if err != nil {
		return nil, fmt.Errorf("failed to select account: %w", err)
	}
	if account == nil || account.ID == "" {
		return nil, models.NewNotFound("account", accountID)
	}
	return account, nil
}

func (s *AccountStore) Save(ctx context.Context, account *models.Account) error {
	sql := "UPSERT type::record('account', $id) CONTENT $account"
	vars := map[string]any{"id": account.ID, "account": account}

	if _, err := surrealdb.Query[[]models.Account](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// Delete removes the account document only. Ledger entries referencing it
// are left in place.
func (s *AccountStore) Delete(ctx context.Context, accountID string) error {
	_, err := surrealdb.Delete[models.Account](ctx, s.db, surrealmodels.NewRecordID("account", accountID))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func (s *AccountStore) ListByOwners(ctx context.Context, owners []string) ([]*models.Account, error) {
	sql := "SELECT * FROM account WHERE person_id IN $owners ORDER BY name ASC"
	vars := map[string]any{"owners": owners}

	accounts, err := queryList[models.Account](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}
