// Package memory provides an in-memory StorageManager. It backs service
// tests and ephemeral single-process runs; data does not survive a restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gabrielmazz/finances-app-sub000/internal/interfaces"
	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

// Manager implements interfaces.StorageManager over process memory.
type Manager struct {
	mu sync.RWMutex

	persons     map[string]*models.Person
	accounts    map[string]*models.Account
	entries     map[string]*models.LedgerEntry
	transfers   map[string]*models.Transfer
	obligations map[string]*models.ObligationTemplate
	investments map[string]*models.Investment
	snapshots   map[snapshotKey]*models.MonthlyBalanceSnapshot
	categories  map[string]*models.Category
}

type snapshotKey struct {
	personID  string
	accountID string
	year      int
	month     int
}

var _ interfaces.StorageManager = (*Manager)(nil)

// NewManager creates an empty in-memory storage manager.
func NewManager() *Manager {
	return &Manager{
		persons:     make(map[string]*models.Person),
		accounts:    make(map[string]*models.Account),
		entries:     make(map[string]*models.LedgerEntry),
		transfers:   make(map[string]*models.Transfer),
		obligations: make(map[string]*models.ObligationTemplate),
		investments: make(map[string]*models.Investment),
		snapshots:   make(map[snapshotKey]*models.MonthlyBalanceSnapshot),
		categories:  make(map[string]*models.Category),
	}
}

func (m *Manager) PersonStore() interfaces.PersonStore         { return (*personStore)(m) }
func (m *Manager) AccountStore() interfaces.AccountStore       { return (*accountStore)(m) }
func (m *Manager) LedgerStore() interfaces.LedgerStore         { return (*ledgerStore)(m) }
func (m *Manager) TransferStore() interfaces.TransferStore     { return (*transferStore)(m) }
func (m *Manager) ObligationStore() interfaces.ObligationStore { return (*obligationStore)(m) }
func (m *Manager) InvestmentStore() interfaces.InvestmentStore { return (*investmentStore)(m) }
func (m *Manager) BalanceStore() interfaces.BalanceStore       { return (*balanceStore)(m) }
func (m *Manager) CategoryStore() interfaces.CategoryStore     { return (*categoryStore)(m) }

func (m *Manager) Close() error { return nil }

func contains(owners []string, id string) bool {
	for _, o := range owners {
		if o == id {
			return true
		}
	}
	return false
}

// --- persons ---

type personStore Manager

func (s *personStore) Get(ctx context.Context, personID string) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.persons[personID]
	if !ok {
		return nil, models.NewNotFound("person", personID)
	}
	cp := *p
	return &cp, nil
}

func (s *personStore) Save(ctx context.Context, person *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *person
	s.persons[person.ID] = &cp
	return nil
}

func (s *personStore) Delete(ctx context.Context, personID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.persons, personID)
	return nil
}

func (s *personStore) RelatedOwnerIDs(ctx context.Context, personID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owners := []string{personID}
	p, ok := s.persons[personID]
	if !ok {
		return owners, nil
	}
	seen := map[string]bool{personID: true}
	for _, rel := range p.Relations {
		if rel != "" && !seen[rel] {
			seen[rel] = true
			owners = append(owners, rel)
		}
	}
	return owners, nil
}

// --- accounts ---

type accountStore Manager

func (s *accountStore) Get(ctx context.Context, accountID string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[accountID]
	if !ok {
		return nil, models.NewNotFound("account", accountID)
	}
	cp := *a
	return &cp, nil
}

func (s *accountStore) Save(ctx context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *account
	s.accounts[account.ID] = &cp
	return nil
}

func (s *accountStore) Delete(ctx context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, accountID)
	return nil
}

func (s *accountStore) ListByOwners(ctx context.Context, owners []string) ([]*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Account
	for _, a := range s.accounts {
		if contains(owners, a.PersonID) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- ledger entries ---

type ledgerStore Manager

func (s *ledgerStore) Get(ctx context.Context, entryID string) (*models.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[entryID]
	if !ok {
		return nil, models.NewNotFound("ledger entry", entryID)
	}
	cp := *e
	return &cp, nil
}

func (s *ledgerStore) Create(ctx context.Context, entry *models.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *entry
	s.entries[entry.ID] = &cp
	return nil
}

func (s *ledgerStore) Update(ctx context.Context, entry *models.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.ID]; !ok {
		return models.NewNotFound("ledger entry", entry.ID)
	}
	cp := *entry
	s.entries[entry.ID] = &cp
	return nil
}

func (s *ledgerStore) Delete(ctx context.Context, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, entryID)
	return nil
}

func matchesFilter(e *models.LedgerEntry, filter interfaces.LedgerFilter) bool {
	if !contains(filter.Owners, e.PersonID) {
		return false
	}
	if filter.Kind != "" && e.Kind != filter.Kind {
		return false
	}
	if filter.CashOnly {
		if e.AccountID != "" {
			return false
		}
	} else if len(filter.AccountIDs) > 0 && !contains(filter.AccountIDs, e.AccountID) {
		return false
	}
	if !filter.Start.IsZero() && e.OccurredAt.Before(filter.Start) {
		return false
	}
	if !filter.End.IsZero() && e.OccurredAt.After(filter.End) {
		return false
	}
	return true
}

func (s *ledgerStore) Query(ctx context.Context, filter interfaces.LedgerFilter) ([]*models.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.LedgerEntry
	for _, e := range s.entries {
		if matchesFilter(e, filter) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// --- transfers ---

type transferStore Manager

func (s *transferStore) Get(ctx context.Context, transferID string) (*models.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.transfers[transferID]
	if !ok {
		return nil, models.NewNotFound("transfer", transferID)
	}
	cp := *t
	return &cp, nil
}

func (s *transferStore) ListByOwners(ctx context.Context, owners []string) ([]*models.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Transfer
	for _, t := range s.transfers {
		if contains(owners, t.PersonID) {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *transferStore) CreateTriple(ctx context.Context, transfer *models.Transfer, expense, gain *models.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ec, gc, tc := *expense, *gain, *transfer
	s.entries[expense.ID] = &ec
	s.entries[gain.ID] = &gc
	s.transfers[transfer.ID] = &tc
	return nil
}

// --- obligations ---

type obligationStore Manager

func (s *obligationStore) Get(ctx context.Context, templateID string) (*models.ObligationTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.obligations[templateID]
	if !ok {
		return nil, models.NewNotFound("obligation template", templateID)
	}
	cp := *t
	return &cp, nil
}

func (s *obligationStore) Save(ctx context.Context, template *models.ObligationTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *template
	s.obligations[template.ID] = &cp
	return nil
}

func (s *obligationStore) Delete(ctx context.Context, templateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.obligations, templateID)
	return nil
}

func (s *obligationStore) ListByOwners(ctx context.Context, owners []string) ([]*models.ObligationTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.ObligationTemplate
	for _, t := range s.obligations {
		if contains(owners, t.PersonID) {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDay < out[j].DueDay })
	return out, nil
}

func (s *obligationStore) FindBySettlementEntry(ctx context.Context, entryID string) (*models.ObligationTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.obligations {
		if t.Settlement != nil && t.Settlement.EntryID == entryID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *obligationStore) CreateEntryAndLock(ctx context.Context, templateID string, entry *models.LedgerEntry, settlement *models.Settlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.obligations[templateID]
	if !ok {
		return models.NewNotFound("obligation template", templateID)
	}
	ec := *entry
	s.entries[entry.ID] = &ec
	sc := *settlement
	t.Settlement = &sc
	t.UpdatedAt = time.Now()
	return nil
}

func (s *obligationStore) DeleteEntryAndUnlock(ctx context.Context, templateID, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.obligations[templateID]
	if !ok {
		return models.NewNotFound("obligation template", templateID)
	}
	delete(s.entries, entryID)
	t.Settlement = nil
	t.UpdatedAt = time.Now()
	return nil
}

// --- investments ---

type investmentStore Manager

func (s *investmentStore) Get(ctx context.Context, investmentID string) (*models.Investment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.investments[investmentID]
	if !ok {
		return nil, models.NewNotFound("investment", investmentID)
	}
	cp := *i
	return &cp, nil
}

func (s *investmentStore) Save(ctx context.Context, investment *models.Investment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *investment
	s.investments[investment.ID] = &cp
	return nil
}

func (s *investmentStore) Delete(ctx context.Context, investmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.investments, investmentID)
	return nil
}

func (s *investmentStore) ListByOwners(ctx context.Context, owners []string) ([]*models.Investment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Investment
	for _, i := range s.investments {
		if contains(owners, i.PersonID) {
			cp := *i
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// --- balance snapshots ---

type balanceStore Manager

func (s *balanceStore) Get(ctx context.Context, personID, accountID string, year, month int) (*models.MonthlyBalanceSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[snapshotKey{personID, accountID, year, month}]
	if !ok {
		return nil, nil
	}
	cp := *snap
	return &cp, nil
}

func (s *balanceStore) Upsert(ctx context.Context, snapshot *models.MonthlyBalanceSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := snapshotKey{snapshot.PersonID, snapshot.AccountID, snapshot.Year, snapshot.Month}
	now := time.Now()
	if existing, ok := s.snapshots[key]; ok {
		snapshot.CreatedAt = existing.CreatedAt
	} else if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = now
	}
	snapshot.UpdatedAt = now
	cp := *snapshot
	s.snapshots[key] = &cp
	return nil
}

func (s *balanceStore) ListByAccount(ctx context.Context, personID, accountID string, limit int) ([]*models.MonthlyBalanceSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.MonthlyBalanceSnapshot
	for key, snap := range s.snapshots {
		if key.personID == personID && key.accountID == accountID {
			cp := *snap
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// --- categories ---

type categoryStore Manager

func (s *categoryStore) Get(ctx context.Context, categoryID string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[categoryID]
	if !ok {
		return nil, models.NewNotFound("category", categoryID)
	}
	cp := *c
	return &cp, nil
}

func (s *categoryStore) Save(ctx context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *category
	s.categories[category.ID] = &cp
	return nil
}

func (s *categoryStore) Delete(ctx context.Context, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.categories, categoryID)
	return nil
}

func (s *categoryStore) ListByOwners(ctx context.Context, owners []string) ([]*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Category
	for _, c := range s.categories {
		if contains(owners, c.PersonID) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
