// Package ledger provides ledger entry maintenance and range aggregation.
package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gabrielmazz/finances-app-sub000/internal/common"
	"github.com/gabrielmazz/finances-app-sub000/internal/cycle"
	"github.com/gabrielmazz/finances-app-sub000/internal/interfaces"
	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

// Compile-time interface check
var _ interfaces.LedgerService = (*Service)(nil)

// Service implements LedgerService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new ledger service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// startOfDay normalizes a bound to 00:00:00.000 of its calendar day.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay normalizes a bound to the last instant of its calendar day.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func (s *Service) owners(ctx context.Context) ([]string, error) {
	return s.storage.PersonStore().RelatedOwnerIDs(ctx, common.ResolvePersonID(ctx))
}

// SumByAccountAndRange fetches expense, gain and cash-withdrawal entries for
// the inclusive range and sums them. The three kind queries run concurrently.
// A nil accountIDs slice restricts to cash entries. Transfer legs count like
// any other flow; only the paired Transfer record is special for display.
func (s *Service) SumByAccountAndRange(ctx context.Context, accountIDs []string, start, end time.Time) (*models.LedgerTotals, error) {
	start = startOfDay(start)
	end = endOfDay(end)
	if end.Before(start) {
		return nil, models.ErrInvalidDateRange
	}

	owners, err := s.owners(ctx)
	if err != nil {
		return nil, err
	}

	baseFilter := interfaces.LedgerFilter{
		Owners:     owners,
		AccountIDs: accountIDs,
		CashOnly:   accountIDs == nil,
		Start:      start,
		End:        end,
	}

	kinds := []models.EntryKind{models.EntryExpense, models.EntryGain, models.EntryCashWithdrawal}
	results := make([][]*models.LedgerEntry, len(kinds))
	errs := make([]error, len(kinds))

	var wg sync.WaitGroup
	for i, kind := range kinds {
		wg.Add(1)
		go func(i int, kind models.EntryKind) {
			defer wg.Done()
			filter := baseFilter
			filter.Kind = kind
			results[i], errs[i] = s.storage.LedgerStore().Query(ctx, filter)
		}(i, kind)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	totals := &models.LedgerTotals{
		Expenses:        results[0],
		Gains:           results[1],
		CashWithdrawals: results[2],
	}
	for _, e := range totals.Expenses {
		totals.ExpenseCents += e.AmountCents
	}
	for _, e := range totals.Gains {
		totals.GainCents += e.AmountCents
	}
	for _, e := range totals.CashWithdrawals {
		totals.CashWithdrawalCents += e.AmountCents
	}
	return totals, nil
}

func validateEntry(entry *models.LedgerEntry) error {
	if !models.ValidEntryKind(entry.Kind) {
		return fmt.Errorf("%w: unknown entry kind %q", models.ErrInvalidInput, entry.Kind)
	}
	if entry.AmountCents <= 0 {
		return models.ErrNonPositiveAmount
	}
	if entry.OccurredAt.IsZero() {
		return fmt.Errorf("%w: occurred_at is required", models.ErrInvalidInput)
	}
	return nil
}

func (s *Service) CreateEntry(ctx context.Context, entry *models.LedgerEntry) (*models.LedgerEntry, error) {
	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	now := time.Now()
	entry.ID = uuid.NewString()
	entry.PersonID = common.ResolvePersonID(ctx)
	entry.CreatedAt = now
	entry.UpdatedAt = now

	if err := s.storage.LedgerStore().Create(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("entry_id", entry.ID).
		Str("kind", string(entry.Kind)).
		Int64("amount_cents", entry.AmountCents).
		Msg("ledger entry created")
	return entry, nil
}

func (s *Service) GetEntry(ctx context.Context, entryID string) (*models.LedgerEntry, error) {
	return s.storage.LedgerStore().Get(ctx, entryID)
}

// guardSettlementLock rejects mutation of an entry that a currently-settled
// obligation references. Past-cycle locks do not block edits.
func (s *Service) guardSettlementLock(ctx context.Context, entryID string) error {
	template, err := s.storage.ObligationStore().FindBySettlementEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if template != nil && template.Settlement != nil && cycle.IsCurrent(template.Settlement.CycleKey, time.Now()) {
		return fmt.Errorf("entry %s settles obligation %s: %w", entryID, template.ID, models.ErrObligationLocked)
	}
	return nil
}

func (s *Service) UpdateEntry(ctx context.Context, entry *models.LedgerEntry) (*models.LedgerEntry, error) {
	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	existing, err := s.storage.LedgerStore().Get(ctx, entry.ID)
	if err != nil {
		return nil, err
	}
	if err := s.guardSettlementLock(ctx, entry.ID); err != nil {
		return nil, err
	}

	entry.PersonID = existing.PersonID
	entry.CreatedAt = existing.CreatedAt
	entry.UpdatedAt = time.Now()

	if err := s.storage.LedgerStore().Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) DeleteEntry(ctx context.Context, entryID string) error {
	if _, err := s.storage.LedgerStore().Get(ctx, entryID); err != nil {
		return err
	}
	if err := s.guardSettlementLock(ctx, entryID); err != nil {
		return err
	}
	return s.storage.LedgerStore().Delete(ctx, entryID)
}

func (s *Service) ListEntries(ctx context.Context, filter interfaces.LedgerFilter) ([]*models.LedgerEntry, error) {
	owners, err := s.owners(ctx)
	if err != nil {
		return nil, err
	}
	filter.Owners = owners
	if !filter.Start.IsZero() && !filter.End.IsZero() {
		filter.Start = startOfDay(filter.Start)
		filter.End = endOfDay(filter.End)
		if filter.End.Before(filter.Start) {
			return nil, models.ErrInvalidDateRange
		}
	}
	return s.storage.LedgerStore().Query(ctx, filter)
}
