package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/gabrielmazz/finances-app-sub000/internal/common"
	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

type PersonStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewPersonStore(db *surrealdb.DB, logger *common.Logger) *PersonStore {
	return &PersonStore{db: db, logger: logger}
}

func (s *PersonStore) Get(ctx context.Context, personID string) (*models.Person, error) {
	person, err := surrealdb.Select[models.Person](ctx, s.db, surrealmodels.NewRecordID("person", personID))
	if err != nil {
		return nil, fmt.Errorf("failed to select person: %w", err)
	}
	if person == nil || person.ID == "" {
		return nil, models.NewNotFound("person", personID)
	}
	return person, nil
}

func (s *PersonStore) Save(ctx context.Context, person *models.Person) error {
	sql := "UPSERT type::record('person', $id) CONTENT $person"
	vars := map[string]any{"id": person.ID, "person": person}

	if _, err := surrealdb.Query[[]models.Person](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save person: %w", err)
	}
	return nil
}

func (s *PersonStore) Delete(ctx context.Context, personID string) error {
	_, err := surrealdb.Delete[models.Person](ctx, s.db, surrealmodels.NewRecordID("person", personID))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	return nil
}

// RelatedOwnerIDs expands a person to the full shared household: the person
// plus every person they declare a relation to. An unknown person id yields
// just itself, so aggregation still works in single-tenant mode.
func (s *PersonStore) RelatedOwnerIDs(ctx context.Context, personID string) ([]string, error) {
	person, err := surrealdb.Select[models.Person](ctx, s.db, surrealmodels.NewRecordID("person", personID))
	if err != nil {
		return nil, fmt.Errorf("failed to select person: %w", err)
	}
	owners := []string{personID}
	if person == nil {
		return owners, nil
	}
	seen := map[string]bool{personID: true}
	for _, rel := range person.Relations {
		if rel != "" && !seen[rel] {
			seen[rel] = true
			owners = append(owners, rel)
		}
	}
	return owners, nil
}
