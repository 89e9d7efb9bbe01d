package interfaces

import (
	"context"
	"time"

	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

// LedgerService aggregates and maintains ledger entries. The acting person is
// resolved from the request context; every read expands to the person's full
// relation graph.
type LedgerService interface {
	// SumByAccountAndRange fetches and sums expense/gain/cash-withdrawal
	// entries for the inclusive date range. Bounds are normalized to the
	// start/end of their calendar day before comparison. A nil accountIDs
	// slice means "cash only" (entries with no account attached). Transfer
	// legs are included: a transfer's expense leg counts as an expense of
	// the source account.
	SumByAccountAndRange(ctx context.Context, accountIDs []string, start, end time.Time) (*models.LedgerTotals, error)

	CreateEntry(ctx context.Context, entry *models.LedgerEntry) (*models.LedgerEntry, error)
	GetEntry(ctx context.Context, entryID string) (*models.LedgerEntry, error)
	UpdateEntry(ctx context.Context, entry *models.LedgerEntry) (*models.LedgerEntry, error)
	DeleteEntry(ctx context.Context, entryID string) error
	ListEntries(ctx context.Context, filter LedgerFilter) ([]*models.LedgerEntry, error)
}

// SettleOptions overrides template defaults when settling an obligation.
// Zero values fall back to the template amount, the suggested occurrence
// date for the current cycle, and a cash entry.
type SettleOptions struct {
	AccountID   string
	AmountCents int64
	Date        time.Time
	Note        string
}

// ObligationService tracks recurring obligation templates and their
// at-most-one-settlement-per-cycle lock.
type ObligationService interface {
	CreateTemplate(ctx context.Context, template *models.ObligationTemplate) (*models.ObligationTemplate, error)
	GetTemplate(ctx context.Context, templateID string) (*models.ObligationTemplate, error)
	UpdateTemplate(ctx context.Context, template *models.ObligationTemplate) (*models.ObligationTemplate, error)
	DeleteTemplate(ctx context.Context, templateID string) error
	ListTemplates(ctx context.Context) ([]*models.ObligationTemplate, error)

	Status(ctx context.Context, templateID string, now time.Time) (*models.ObligationStatus, error)

	// Settle creates the settlement ledger entry and sets the lock in one
	// atomic operation. Fails with ErrAlreadySettledThisCycle when the
	// template is already settled for the cycle containing now.
	Settle(ctx context.Context, templateID string, opts SettleOptions, now time.Time) (*models.Settlement, error)

	// Reclaim reverses a settlement: deletes the linked entry and clears the
	// lock atomically. Fails with ErrNotSettled when no lock is held.
	Reclaim(ctx context.Context, templateID string) error
}

// InvestmentService manages investments and their growth simulation.
type InvestmentService interface {
	Create(ctx context.Context, investment *models.Investment) (*models.Investment, error)
	Get(ctx context.Context, investmentID string) (*models.Investment, error)
	Delete(ctx context.Context, investmentID string) error
	List(ctx context.Context) ([]*models.Investment, error)

	Projection(ctx context.Context, investmentID string, now time.Time) (*models.InvestmentProjection, error)

	// Sync records a manual checkpoint; all future projection compounds from
	// the new base. Prior growth is not retroactively altered.
	Sync(ctx context.Context, investmentID string, amountCents int64, now time.Time) (*models.Investment, error)

	// Adjust applies a signed deposit/redemption delta to the current base
	// value and re-syncs at now.
	Adjust(ctx context.Context, investmentID string, deltaCents int64, now time.Time) (*models.Investment, error)
}

// BalanceService reconciles opening-balance snapshots with ledger totals.
type BalanceService interface {
	// CurrentBalance returns nil (no error) when no opening-balance snapshot
	// exists for the month. Not registered is never treated as zero.
	CurrentBalance(ctx context.Context, accountID string, year, month int) (*models.AccountBalance, error)

	UpsertOpeningBalance(ctx context.Context, accountID string, year, month int, amountCents int64) (*models.MonthlyBalanceSnapshot, error)

	// History returns reconciled balances for the trailing months that have a
	// registered snapshot, oldest first.
	History(ctx context.Context, accountID string, months int) ([]*models.AccountBalance, error)
}

// TransferService performs atomic dual-entry transfers between accounts.
type TransferService interface {
	// Transfer validates and persists the Transfer + expense leg + gain leg
	// triple atomically, returning the three new ids. Balance sufficiency is
	// the caller's concern, validated via BalanceService before invoking.
	Transfer(ctx context.Context, sourceAccountID, targetAccountID string, amountCents int64, date time.Time, description string) (*models.TransferResult, error)

	Get(ctx context.Context, transferID string) (*models.Transfer, error)
	List(ctx context.Context) ([]*models.Transfer, error)
}

// StatementService parses uploaded bank statement PDFs into candidate
// ledger entries.
type StatementService interface {
	Import(ctx context.Context, accountID string, pdfData []byte) (*models.StatementImport, error)
}

// ReportService renders balance reports.
type ReportService interface {
	// BalanceChart renders a PNG timeline of opening and reconciled balances
	// for the trailing months of one account.
	BalanceChart(ctx context.Context, accountID string, months int) ([]byte, error)
}
