// Package interfaces defines service and storage contracts for the finances server
package interfaces

import (
	"context"
	"time"

	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

// StorageManager coordinates all document collections in the store.
type StorageManager interface {
	PersonStore() PersonStore
	AccountStore() AccountStore
	LedgerStore() LedgerStore
	TransferStore() TransferStore
	ObligationStore() ObligationStore
	InvestmentStore() InvestmentStore
	BalanceStore() BalanceStore
	CategoryStore() CategoryStore

	Close() error
}

// PersonStore manages persons and their bidirectional relations.
type PersonStore interface {
	Get(ctx context.Context, personID string) (*models.Person, error)
	Save(ctx context.Context, person *models.Person) error
	Delete(ctx context.Context, personID string) error

	// RelatedOwnerIDs returns the person plus all persons they declare a
	// relation to, the allowed owner id set every aggregation expands to.
	RelatedOwnerIDs(ctx context.Context, personID string) ([]string, error)
}

// AccountStore manages bank accounts.
type AccountStore interface {
	Get(ctx context.Context, accountID string) (*models.Account, error)
	Save(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, accountID string) error
	ListByOwners(ctx context.Context, owners []string) ([]*models.Account, error)
}

// LedgerFilter configures ledger entry queries. Start/End bounds are
// inclusive; CashOnly restricts to entries with no account attached.
type LedgerFilter struct {
	Owners     []string
	AccountIDs []string
	CashOnly   bool
	Kind       models.EntryKind
	Start      time.Time
	End        time.Time
	Limit      int
}

// LedgerStore manages ledger entry documents.
type LedgerStore interface {
	Get(ctx context.Context, entryID string) (*models.LedgerEntry, error)
	Create(ctx context.Context, entry *models.LedgerEntry) error
	Update(ctx context.Context, entry *models.LedgerEntry) error
	Delete(ctx context.Context, entryID string) error
	Query(ctx context.Context, filter LedgerFilter) ([]*models.LedgerEntry, error)
}

// TransferStore manages transfer documents.
type TransferStore interface {
	Get(ctx context.Context, transferID string) (*models.Transfer, error)
	ListByOwners(ctx context.Context, owners []string) ([]*models.Transfer, error)

	// CreateTriple persists the transfer and its two ledger entry legs as one
	// atomic batch: all three records are written or none are.
	CreateTriple(ctx context.Context, transfer *models.Transfer, expense, gain *models.LedgerEntry) error
}

// ObligationStore manages obligation template documents and their settlement
// lock transitions.
type ObligationStore interface {
	Get(ctx context.Context, templateID string) (*models.ObligationTemplate, error)
	Save(ctx context.Context, template *models.ObligationTemplate) error
	Delete(ctx context.Context, templateID string) error
	ListByOwners(ctx context.Context, owners []string) ([]*models.ObligationTemplate, error)

	// FindBySettlementEntry returns the template whose settlement lock
	// references entryID, or nil when no template does.
	FindBySettlementEntry(ctx context.Context, entryID string) (*models.ObligationTemplate, error)

	// CreateEntryAndLock persists the settlement ledger entry and sets the
	// template's settlement lock in one atomic batch.
	CreateEntryAndLock(ctx context.Context, templateID string, entry *models.LedgerEntry, settlement *models.Settlement) error

	// DeleteEntryAndUnlock deletes the linked ledger entry and clears the
	// template's settlement lock in one atomic batch. The lock is never
	// cleared if the entry deletion fails.
	DeleteEntryAndUnlock(ctx context.Context, templateID, entryID string) error
}

// InvestmentStore manages investment documents.
type InvestmentStore interface {
	Get(ctx context.Context, investmentID string) (*models.Investment, error)
	Save(ctx context.Context, investment *models.Investment) error
	Delete(ctx context.Context, investmentID string) error
	ListByOwners(ctx context.Context, owners []string) ([]*models.Investment, error)
}

// BalanceStore manages monthly opening-balance snapshots.
type BalanceStore interface {
	// Get returns the snapshot for the composite key, or nil (no error) when
	// no snapshot is registered. A missing snapshot means unknown, not zero.
	Get(ctx context.Context, personID, accountID string, year, month int) (*models.MonthlyBalanceSnapshot, error)
	Upsert(ctx context.Context, snapshot *models.MonthlyBalanceSnapshot) error
	ListByAccount(ctx context.Context, personID, accountID string, limit int) ([]*models.MonthlyBalanceSnapshot, error)
}

// CategoryStore manages category tag documents.
type CategoryStore interface {
	Get(ctx context.Context, categoryID string) (*models.Category, error)
	Save(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, categoryID string) error
	ListByOwners(ctx context.Context, owners []string) ([]*models.Category, error)
}
