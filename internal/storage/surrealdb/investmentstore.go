package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/gabrielmazz/finances-app-sub000/internal/common"
	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

type InvestmentStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewInvestmentStore(db *surrealdb.DB, logger *common.Logger) *InvestmentStore {
	return &InvestmentStore{db: db, logger: logger}
}

func (s *InvestmentStore) Get(ctx context.Context, investmentID string) (*models.Investment, error) {
	investment, err := surrealdb.Select[models.Investment](ctx, s.db, surrealmodels.NewRecordID("investment", investmentID))
	if err != nil {
		return nil, fmt.Errorf("failed to select investment: %w", err)
	}
	if investment == nil || investment.ID == "" {
		return nil, models.NewNotFound("investment", investmentID)
	}
	return investment, nil
}

func (s *InvestmentStore) Save(ctx context.Context, investment *models.Investment) error {
	sql := "UPSERT type::record('investment', $id) CONTENT $investment"
	vars := map[string]any{"id": investment.ID, "investment": investment}

	if _, err := surrealdb.Query[[]models.Investment](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save investment: %w", err)
	}
	return nil
}

func (s *InvestmentStore) Delete(ctx context.Context, investmentID string) error {
	_, err := surrealdb.Delete[models.Investment](ctx, s.db, surrealmodels.NewRecordID("investment", investmentID))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete investment: %w", err)
	}
	return nil
}

func (s *InvestmentStore) ListByOwners(ctx context.Context, owners []string) ([]*models.Investment, error) {
	sql := "SELECT * FROM investment WHERE person_id IN $owners ORDER BY created_at ASC"
	vars := map[string]any{"owners": owners}

	investments, err := queryList[models.Investment](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	return investments, nil
}
