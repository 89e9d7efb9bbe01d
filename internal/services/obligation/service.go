// Package obligation tracks recurring obligation templates and their
// once-per-cycle settlement lock.
package obligation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gabrielmazz/finances-app-sub000/internal/common"
	"github.com/gabrielmazz/finances-app-sub000/internal/cycle"
	"github.com/gabrielmazz/finances-app-sub000/internal/interfaces"
	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

// Reminder delivery time on the due day.
const (
	reminderHour   = 9
	reminderMinute = 0
)

// Compile-time interface check
var _ interfaces.ObligationService = (*Service)(nil)

// Service implements ObligationService
type Service struct {
	storage interfaces.StorageManager
	notify  interfaces.NotifyClient
	logger  *common.Logger
}

// NewService creates a new obligation service
func NewService(storage interfaces.StorageManager, notify interfaces.NotifyClient, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		notify:  notify,
		logger:  logger,
	}
}

func validateTemplate(template *models.ObligationTemplate) error {
	if strings.TrimSpace(template.Name) == "" {
		return fmt.Errorf("%w: name is required", models.ErrInvalidInput)
	}
	if !models.ValidEntryKind(template.Kind) || template.Kind == models.EntryCashWithdrawal {
		return fmt.Errorf("%w: obligation kind must be expense or gain", models.ErrInvalidInput)
	}
	if template.AmountCents <= 0 {
		return models.ErrNonPositiveAmount
	}
	if template.DueDay < 1 || template.DueDay > 31 {
		return fmt.Errorf("%w: due day must be between 1 and 31", models.ErrInvalidInput)
	}
	return nil
}

// scheduleReminder registers the monthly reminder for a template. Reminder
// failures are logged, not returned; the template write already succeeded.
func (s *Service) scheduleReminder(ctx context.Context, template *models.ObligationTemplate) {
	body := fmt.Sprintf("%s is due today", template.Name)
	if err := s.notify.Schedule(ctx, template.ID, template.Name, body, template.DueDay, reminderHour, reminderMinute); err != nil {
		s.logger.Warn().Err(err).Str("template_id", template.ID).Msg("failed to schedule reminder")
	}
}

func (s *Service) cancelReminder(ctx context.Context, templateID string) {
	if err := s.notify.Cancel(ctx, templateID); err != nil {
		s.logger.Warn().Err(err).Str("template_id", templateID).Msg("failed to cancel reminder")
	}
}

func (s *Service) CreateTemplate(ctx context.Context, template *models.ObligationTemplate) (*models.ObligationTemplate, error) {
	if err := validateTemplate(template); err != nil {
		return nil, err
	}

	now := time.Now()
	template.ID = uuid.NewString()
	template.PersonID = common.ResolvePersonID(ctx)
	template.Settlement = nil
	template.CreatedAt = now
	template.UpdatedAt = now

	if err := s.storage.ObligationStore().Save(ctx, template); err != nil {
		return nil, err
	}

	if template.RemindersEnabled {
		s.scheduleReminder(ctx, template)
	}

	s.logger.Info().Str("template_id", template.ID).Str("name", template.Name).Msg("obligation template created")
	return template, nil
}

func (s *Service) GetTemplate(ctx context.Context, templateID string) (*models.ObligationTemplate, error) {
	return s.storage.ObligationStore().Get(ctx, templateID)
}

func (s *Service) UpdateTemplate(ctx context.Context, template *models.ObligationTemplate) (*models.ObligationTemplate, error) {
	if err := validateTemplate(template); err != nil {
		return nil, err
	}

	existing, err := s.storage.ObligationStore().Get(ctx, template.ID)
	if err != nil {
		return nil, err
	}

	// The settlement lock only moves via Settle/Reclaim.
	template.Settlement = existing.Settlement
	template.PersonID = existing.PersonID
	template.CreatedAt = existing.CreatedAt
	template.UpdatedAt = time.Now()

	if err := s.storage.ObligationStore().Save(ctx, template); err != nil {
		return nil, err
	}

	switch {
	case template.RemindersEnabled:
		s.scheduleReminder(ctx, template)
	case existing.RemindersEnabled:
		s.cancelReminder(ctx, template.ID)
	}

	return template, nil
}

func (s *Service) DeleteTemplate(ctx context.Context, templateID string) error {
	template, err := s.storage.ObligationStore().Get(ctx, templateID)
	if err != nil {
		return err
	}
	if template.RemindersEnabled {
		s.cancelReminder(ctx, templateID)
	}
	return s.storage.ObligationStore().Delete(ctx, templateID)
}

func (s *Service) ListTemplates(ctx context.Context) ([]*models.ObligationTemplate, error) {
	owners, err := s.storage.PersonStore().RelatedOwnerIDs(ctx, common.ResolvePersonID(ctx))
	if err != nil {
		return nil, err
	}
	return s.storage.ObligationStore().ListByOwners(ctx, owners)
}

func (s *Service) Status(ctx context.Context, templateID string, now time.Time) (*models.ObligationStatus, error) {
	template, err := s.storage.ObligationStore().Get(ctx, templateID)
	if err != nil {
		return nil, err
	}

	status := &models.ObligationStatus{
		TemplateID:    template.ID,
		CycleKey:      cycle.KeyFor(now),
		SuggestedDate: cycle.SuggestOccurrence(template.DueDay, now),
	}
	if template.Settlement != nil && cycle.IsCurrent(template.Settlement.CycleKey, now) {
		status.SettledThisCycle = true
		status.SettlementEntryID = template.Settlement.EntryID
		date := template.Settlement.Date
		status.SettlementDate = &date
	}
	return status, nil
}

// Settle creates the settlement ledger entry and sets the lock in one atomic
// store batch, so the lock can never reference an entry that was not written.
// A stale lock from a previous cycle is overwritten; its entry stays in the
// ledger as that month's payment.
func (s *Service) Settle(ctx context.Context, templateID string, opts interfaces.SettleOptions, now time.Time) (*models.Settlement, error) {
	template, err := s.storage.ObligationStore().Get(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if template.Settlement != nil && cycle.IsCurrent(template.Settlement.CycleKey, now) {
		return nil, fmt.Errorf("template %s: %w", templateID, models.ErrAlreadySettledThisCycle)
	}

	amount := template.AmountCents
	if opts.AmountCents > 0 {
		amount = opts.AmountCents
	}
	date := opts.Date
	if date.IsZero() {
		date = cycle.SuggestOccurrence(template.DueDay, now)
	}
	note := opts.Note
	if note == "" {
		note = template.Name
	}

	entry := &models.LedgerEntry{
		ID:          uuid.NewString(),
		Kind:        template.Kind,
		PersonID:    template.PersonID,
		AccountID:   opts.AccountID,
		AmountCents: amount,
		OccurredAt:  date,
		CategoryID:  template.CategoryID,
		Note:        note,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	settlement := &models.Settlement{
		EntryID:  entry.ID,
		CycleKey: cycle.KeyFor(now),
		Date:     date,
	}

	if err := s.storage.ObligationStore().CreateEntryAndLock(ctx, templateID, entry, settlement); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("template_id", templateID).
		Str("entry_id", entry.ID).
		Str("cycle_key", settlement.CycleKey).
		Msg("obligation settled")
	return settlement, nil
}

// Reclaim deletes the linked entry and clears the lock atomically. The lock
// is never cleared while its entry still exists.
func (s *Service) Reclaim(ctx context.Context, templateID string) error {
	template, err := s.storage.ObligationStore().Get(ctx, templateID)
	if err != nil {
		return err
	}
	if template.Settlement == nil {
		return fmt.Errorf("template %s: %w", templateID, models.ErrNotSettled)
	}

	if err := s.storage.ObligationStore().DeleteEntryAndUnlock(ctx, templateID, template.Settlement.EntryID); err != nil {
		return err
	}

	s.logger.Info().Str("template_id", templateID).Msg("obligation settlement reclaimed")
	return nil
}
