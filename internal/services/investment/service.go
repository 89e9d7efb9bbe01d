package investment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gabrielmazz/finances-app-sub000/internal/common"
	"github.com/gabrielmazz/finances-app-sub000/internal/interfaces"
	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

// Compile-time interface check
var _ interfaces.InvestmentService = (*Service)(nil)

// Service implements InvestmentService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new investment service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

func validateInvestment(inv *models.Investment) error {
	if strings.TrimSpace(inv.Name) == "" {
		return fmt.Errorf("%w: name is required", models.ErrInvalidInput)
	}
	if inv.PrincipalCents <= 0 {
		return fmt.Errorf("%w: principal must be positive", models.ErrNonPositiveAmount)
	}
	if !models.ValidRedemptionTerm(inv.RedemptionTerm) {
		return fmt.Errorf("%w: unknown redemption term %q", models.ErrInvalidInput, inv.RedemptionTerm)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, inv *models.Investment) (*models.Investment, error) {
	if err := validateInvestment(inv); err != nil {
		return nil, err
	}

	inv.ID = uuid.NewString()
	inv.PersonID = common.ResolvePersonID(ctx)
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now()
	}
	inv.Checkpoint = nil

	if err := s.storage.InvestmentStore().Save(ctx, inv); err != nil {
		return nil, err
	}

	s.logger.Info().Str("investment_id", inv.ID).Str("name", inv.Name).Msg("investment created")
	return inv, nil
}

func (s *Service) Get(ctx context.Context, investmentID string) (*models.Investment, error) {
	return s.storage.InvestmentStore().Get(ctx, investmentID)
}

func (s *Service) Delete(ctx context.Context, investmentID string) error {
	if _, err := s.storage.InvestmentStore().Get(ctx, investmentID); err != nil {
		return err
	}
	return s.storage.InvestmentStore().Delete(ctx, investmentID)
}

func (s *Service) List(ctx context.Context) ([]*models.Investment, error) {
	owners, err := s.storage.PersonStore().RelatedOwnerIDs(ctx, common.ResolvePersonID(ctx))
	if err != nil {
		return nil, err
	}
	return s.storage.InvestmentStore().ListByOwners(ctx, owners)
}

func (s *Service) Projection(ctx context.Context, investmentID string, now time.Time) (*models.InvestmentProjection, error) {
	inv, err := s.storage.InvestmentStore().Get(ctx, investmentID)
	if err != nil {
		return nil, err
	}
	return Project(inv, now), nil
}

// Sync records a manual checkpoint. All future projection compounds from the
// new base; growth already projected before the sync is not rewritten.
func (s *Service) Sync(ctx context.Context, investmentID string, amountCents int64, now time.Time) (*models.Investment, error) {
	if amountCents < 0 {
		return nil, fmt.Errorf("%w: sync amount must not be negative", models.ErrNonPositiveAmount)
	}

	inv, err := s.storage.InvestmentStore().Get(ctx, investmentID)
	if err != nil {
		return nil, err
	}

	inv.Checkpoint = &models.SyncCheckpoint{AmountCents: amountCents, Date: now}
	if err := s.storage.InvestmentStore().Save(ctx, inv); err != nil {
		return nil, err
	}

	s.logger.Info().Str("investment_id", inv.ID).Int64("amount_cents", amountCents).Msg("investment synced")
	return inv, nil
}

// Adjust applies a signed deposit or redemption delta against the projected
// value at now, then syncs the result as the new base.
func (s *Service) Adjust(ctx context.Context, investmentID string, deltaCents int64, now time.Time) (*models.Investment, error) {
	inv, err := s.storage.InvestmentStore().Get(ctx, investmentID)
	if err != nil {
		return nil, err
	}

	current := ProjectedValue(inv, now)
	newBase := current + deltaCents
	if newBase < 0 {
		return nil, fmt.Errorf("redemption of %d exceeds projected value %d: %w", -deltaCents, current, models.ErrInsufficientBalance)
	}

	return s.Sync(ctx, investmentID, newBase, now)
}
