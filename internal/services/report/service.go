package report

import (
	"context"

	"github.com/gabrielmazz/finances-app-sub000/internal/common"
	"github.com/gabrielmazz/finances-app-sub000/internal/interfaces"
)

// Compile-time interface check
var _ interfaces.ReportService = (*Service)(nil)

// Service implements ReportService
type Service struct {
	storage interfaces.StorageManager
	balance interfaces.BalanceService
	logger  *common.Logger
}

// NewService creates a new report service
func NewService(storage interfaces.StorageManager, balance interfaces.BalanceService, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		balance: balance,
		logger:  logger,
	}
}

// BalanceChart renders a PNG timeline of the account's reconciled balances
// over the trailing months that have a registered opening snapshot.
func (s *Service) BalanceChart(ctx context.Context, accountID string, months int) ([]byte, error) {
	account, err := s.storage.AccountStore().Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	history, err := s.balance.History(ctx, accountID, months)
	if err != nil {
		return nil, err
	}

	return renderBalanceChart(account.Name, history)
}
