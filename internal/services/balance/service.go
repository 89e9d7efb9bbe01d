// Package balance reconciles monthly opening snapshots with ledger totals.
package balance

import (
	"context"
	"fmt"
	"time"

	"github.com/gabrielmazz/finances-app-sub000/internal/common"
	"github.com/gabrielmazz/finances-app-sub000/internal/interfaces"
	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

// Compile-time interface check
var _ interfaces.BalanceService = (*Service)(nil)

// Service implements BalanceService
type Service struct {
	storage interfaces.StorageManager
	ledger  interfaces.LedgerService
	logger  *common.Logger
}

// NewService creates a new balance service
func NewService(storage interfaces.StorageManager, ledger interfaces.LedgerService, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		ledger:  ledger,
		logger:  logger,
	}
}

// accessibleAccount resolves the account and checks it belongs to the
// caller's relation graph.
func (s *Service) accessibleAccount(ctx context.Context, accountID string) (*models.Account, error) {
	account, err := s.storage.AccountStore().Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	owners, err := s.storage.PersonStore().RelatedOwnerIDs(ctx, common.ResolvePersonID(ctx))
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

func monthBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

// reconcile combines one snapshot with the ledger totals of its month.
// Expense entries flagged as investment flows are reported separately but
// reduce the balance like any other expense.
func (s *Service) reconcile(ctx context.Context, account *models.Account, snapshot *models.MonthlyBalanceSnapshot) (*models.AccountBalance, error) {
	start, end := monthBounds(snapshot.Year, snapshot.Month)
	totals, err := s.ledger.SumByAccountAndRange(ctx, []string{account.ID}, start, end)
	if err != nil {
		return nil, err
	}

	var invested int64
	for _, e := range totals.Expenses {
		if e.InvestmentFlow {
			invested += e.AmountCents
		}
	}

	return &models.AccountBalance{
		AccountID:          account.ID,
		Year:               snapshot.Year,
		Month:              snapshot.Month,
		OpeningCents:       snapshot.OpeningCents,
		GainCents:          totals.GainCents,
		ExpenseCents:       totals.ExpenseCents - invested,
		InvestedDeltaCents: invested,
		BalanceCents:       snapshot.OpeningCents + totals.GainCents - totals.ExpenseCents,
	}, nil
}

// CurrentBalance returns the reconciled balance for one account and month,
// or nil when no opening snapshot is registered for that month.
func (s *Service) CurrentBalance(ctx context.Context, accountID string, year, month int) (*models.AccountBalance, error) {
	account, err := s.accessibleAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.storage.BalanceStore().Get(ctx, account.PersonID, accountID, year, month)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, nil
	}
	return s.reconcile(ctx, account, snapshot)
}

func (s *Service) UpsertOpeningBalance(ctx context.Context, accountID string, year, month int, amountCents int64) (*models.MonthlyBalanceSnapshot, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", models.ErrInvalidInput)
	}

	account, err := s.accessibleAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	snapshot := &models.MonthlyBalanceSnapshot{
		PersonID:     account.PersonID,
		AccountID:    accountID,
		Year:         year,
		Month:        month,
		OpeningCents: amountCents,
	}
	if err := s.storage.BalanceStore().Upsert(ctx, snapshot); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("account_id", accountID).
		Int("year", year).
		Int("month", month).
		Int64("opening_cents", amountCents).
		Msg("opening balance registered")
	return snapshot, nil
}

// History reconciles the trailing months that have a registered snapshot,
// oldest first. Months without a snapshot are simply absent.
func (s *Service) History(ctx context.Context, accountID string, months int) ([]*models.AccountBalance, error) {
	account, err := s.accessibleAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	snapshots, err := s.storage.BalanceStore().ListByAccount(ctx, account.PersonID, accountID, months)
	if err != nil {
		return nil, err
	}

	history := make([]*models.AccountBalance, 0, len(snapshots))
	for _, snapshot := range snapshots {
		balance, err := s.reconcile(ctx, account, snapshot)
		if err != nil {
			return nil, err
		}
		history = append(history, balance)
	}
	return history, nil
}
