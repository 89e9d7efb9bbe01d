// Package transfer performs atomic dual-entry transfers between accounts.
package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gabrielmazz/finances-app-sub000/internal/common"
	"github.com/gabrielmazz/finances-app-sub000/internal/interfaces"
	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

// Compile-time interface check
var _ interfaces.TransferService = (*Service)(nil)

// Service implements TransferService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new transfer service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// accessibleAccount resolves an account owned by anyone in the caller's
// relation graph.
func (s *Service) accessibleAccount(ctx context.Context, accountID string, owners []string) (*models.Account, error) {
	account, err := s.storage.AccountStore().Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	for _, owner := range owners {
		if owner == account.PersonID {
			return account, nil
		}
	}
	return nil, fmt.Errorf("account %s: %w", accountID, models.ErrAccountNotAccessible)
}

// Transfer validates and writes the transfer record plus its expense and
// gain legs as one atomic batch. Balance sufficiency is checked by the
// calling workflow beforehand, keeping validation separate from the write.
func (s *Service) Transfer(ctx context.Context, sourceAccountID, targetAccountID string, amountCents int64, date time.Time, description string) (*models.TransferResult, error) {
	if sourceAccountID == targetAccountID {
		return nil, models.ErrSameAccountTransfer
	}
	if amountCents <= 0 {
		return nil, models.ErrNonPositiveAmount
	}

	personID := common.ResolvePersonID(ctx)
	owners, err := s.storage.PersonStore().RelatedOwnerIDs(ctx, personID)
	if err != nil {
		return nil, err
	}

	source, err := s.accessibleAccount(ctx, sourceAccountID, owners)
	if err != nil {
		return nil, err
	}
	target, err := s.accessibleAccount(ctx, targetAccountID, owners)
	if err != nil {
		return nil, err
	}

	if description == "" {
		description = fmt.Sprintf("Transfer from %s to %s", source.Name, target.Name)
	}
	if date.IsZero() {
		date = time.Now()
	}

	now := time.Now()
	transferID := uuid.NewString()
	expense := &models.LedgerEntry{
		ID:          uuid.NewString(),
		Kind:        models.EntryExpense,
		PersonID:    source.PersonID,
		AccountID:   source.ID,
		AmountCents: amountCents,
		OccurredAt:  date,
		Note:        description,
		TransferLeg: true,
		TransferID:  transferID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	gain := &models.LedgerEntry{
		ID:          uuid.NewString(),
		Kind:        models.EntryGain,
		PersonID:    target.PersonID,
		AccountID:   target.ID,
		AmountCents: amountCents,
		OccurredAt:  date,
		Note:        description,
		TransferLeg: true,
		TransferID:  transferID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	expense.CounterpartID = gain.ID
	gain.CounterpartID = expense.ID

	record := &models.Transfer{
		ID:              transferID,
		PersonID:        personID,
		SourceAccountID: source.ID,
		TargetAccountID: target.ID,
		AmountCents:     amountCents,
		Date:            date,
		Description:     description,
		ExpenseEntryID:  expense.ID,
		GainEntryID:     gain.ID,
		CreatedAt:       now,
	}

	if err := s.storage.TransferStore().CreateTriple(ctx, record, expense, gain); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("transfer_id", transferID).
		Str("source", source.ID).
		Str("target", target.ID).
		Int64("amount_cents", amountCents).
		Msg("transfer completed")

	return &models.TransferResult{
		TransferID:     transferID,
		ExpenseEntryID: expense.ID,
		GainEntryID:    gain.ID,
	}, nil
}

func (s *Service) Get(ctx context.Context, transferID string) (*models.Transfer, error) {
	return s.storage.TransferStore().Get(ctx, transferID)
}

func (s *Service) List(ctx context.Context) ([]*models.Transfer, error) {
	owners, err := s.storage.PersonStore().RelatedOwnerIDs(ctx, common.ResolvePersonID(ctx))
	if err != nil {
		return nil, err
	}
	return s.storage.TransferStore().ListByOwners(ctx, owners)
}
