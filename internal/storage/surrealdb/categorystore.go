package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/gabrielmazz/finances-app-sub000/internal/common"
	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

type CategoryStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewCategoryStore(db *surrealdb.DB, logger *common.Logger) *CategoryStore {
	return &CategoryStore{db: db, logger: logger}
}

func (s *CategoryStore) Get(ctx context.Context, categoryID string) (*models.Category, error) {
	category, err := surrealdb.Select[models.Category](ctx, s.db, surrealmodels.NewRecordID("category", categoryID))
	if err != nil {
		return nil, fmt.Errorf("failed to select category: %w", err)
	}
	if category == nil || category.ID == "" {
		return nil, models.NewNotFound("category", categoryID)
	}
	return category, nil
}

func (s *CategoryStore) Save(ctx context.Context, category *models.Category) error {
	sql := "UPSERT type::record('category', $id) CONTENT $category"
	vars := map[string]any{"id": category.ID, "category": category}

	if _, err := surrealdb.Query[[]models.Category](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

func (s *CategoryStore) Delete(ctx context.Context, categoryID string) error {
	_, err := surrealdb.Delete[models.Category](ctx, s.db, surrealmodels.NewRecordID("category", categoryID))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (s *CategoryStore) ListByOwners(ctx context.Context, owners []string) ([]*models.Category, error) {
	sql := "SELECT * FROM category WHERE person_id IN $owners ORDER BY name ASC"
	vars := map[string]any{"owners": owners}

	categories, err := queryList[models.Category](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
