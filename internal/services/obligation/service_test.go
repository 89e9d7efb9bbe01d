package obligation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielmazz/finances-app-sub000/internal/clients/notify"
	"github.com/gabrielmazz/finances-app-sub000/internal/common"
	"github.com/gabrielmazz/finances-app-sub000/internal/cycle"
	"github.com/gabrielmazz/finances-app-sub000/internal/interfaces"
	"github.com/gabrielmazz/finances-app-sub000/internal/models"
	"github.com/gabrielmazz/finances-app-sub000/internal/storage/memory"
)

// recordingNotify captures schedule/cancel calls for assertions.
type recordingNotify struct {
	scheduled []string
	cancelled []string
}

func (r *recordingNotify) Schedule(ctx context.Context, templateID, title, body string, day, hour, minute int) error {
	r.scheduled = append(r.scheduled, templateID)
	return nil
}

func (r *recordingNotify) Cancel(ctx context.Context, templateID string) error {
	r.cancelled = append(r.cancelled, templateID)
	return nil
}

func newTestService() (*Service, interfaces.StorageManager, context.Context) {
	storage := memory.NewManager()
	svc := NewService(storage, notify.NewNoopClient(), common.NewSilentLogger())
	ctx := common.WithPersonContext(context.Background(), &common.PersonContext{PersonID: "alice"})
	return svc, storage, ctx
}

func rentTemplate() *models.ObligationTemplate {
	return &models.ObligationTemplate{
		Kind:        models.EntryExpense,
		Name:        "Rent",
		AmountCents: 150000,
		DueDay:      5,
	}
}

func TestCreateTemplateValidation(t *testing.T) {
	svc, _, ctx := newTestService()

	tmpl := rentTemplate()
	tmpl.Name = ""
	_, err := svc.CreateTemplate(ctx, tmpl)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	tmpl = rentTemplate()
	tmpl.Kind = models.EntryCashWithdrawal
	_, err = svc.CreateTemplate(ctx, tmpl)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	tmpl = rentTemplate()
	tmpl.AmountCents = -5
	_, err = svc.CreateTemplate(ctx, tmpl)
	assert.ErrorIs(t, err, models.ErrNonPositiveAmount)

	tmpl = rentTemplate()
	tmpl.DueDay = 32
	_, err = svc.CreateTemplate(ctx, tmpl)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestSettleTwiceSameCycleConflicts(t *testing.T) {
	svc, _, ctx := newTestService()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tmpl, err := svc.CreateTemplate(ctx, rentTemplate())
	require.NoError(t, err)

	settlement, err := svc.Settle(ctx, tmpl.ID, interfaces.SettleOptions{AccountID: "acct-1"}, now)
	require.NoError(t, err)
	assert.Equal(t, "2025-03", settlement.CycleKey)

	_, err = svc.Settle(ctx, tmpl.ID, interfaces.SettleOptions{}, now)
	assert.ErrorIs(t, err, models.ErrAlreadySettledThisCycle)
}

func TestSettleReclaimSettleProducesFreshLock(t *testing.T) {
	svc, storage, ctx := newTestService()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tmpl, err := svc.CreateTemplate(ctx, rentTemplate())
	require.NoError(t, err)

	first, err := svc.Settle(ctx, tmpl.ID, interfaces.SettleOptions{}, now)
	require.NoError(t, err)

	require.NoError(t, svc.Reclaim(ctx, tmpl.ID))

	// Reclaim removed the entry and cleared the lock.
	_, err = storage.LedgerStore().Get(ctx, first.EntryID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	got, err := svc.GetTemplate(ctx, tmpl.ID)
	require.NoError(t, err)
	assert.False(t, got.Settled())

	second, err := svc.Settle(ctx, tmpl.ID, interfaces.SettleOptions{}, now)
	require.NoError(t, err)
	assert.NotEqual(t, first.EntryID, second.EntryID)
	assert.Equal(t, first.CycleKey, second.CycleKey)
}

func TestReclaimUnsettledFails(t *testing.T) {
	svc, _, ctx := newTestService()

	tmpl, err := svc.CreateTemplate(ctx, rentTemplate())
	require.NoError(t, err)

	err = svc.Reclaim(ctx, tmpl.ID)
	assert.ErrorIs(t, err, models.ErrNotSettled)
}

func TestSettleOverwritesStaleLock(t *testing.T) {
	svc, storage, ctx := newTestService()

	tmpl, err := svc.CreateTemplate(ctx, rentTemplate())
	require.NoError(t, err)

	february := time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)
	first, err := svc.Settle(ctx, tmpl.ID, interfaces.SettleOptions{}, february)
	require.NoError(t, err)

	march := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	second, err := svc.Settle(ctx, tmpl.ID, interfaces.SettleOptions{}, march)
	require.NoError(t, err)
	assert.Equal(t, "2025-03", second.CycleKey)

	// February's payment entry is untouched by the new settlement.
	_, err = storage.LedgerStore().Get(ctx, first.EntryID)
	assert.NoError(t, err)
}

func TestSettleDefaultsFromTemplate(t *testing.T) {
	svc, storage, ctx := newTestService()
	now := time.Date(2025, 2, 20, 12, 0, 0, 0, time.UTC)

	tmpl := rentTemplate()
	tmpl.DueDay = 31
	created, err := svc.CreateTemplate(ctx, tmpl)
	require.NoError(t, err)

	settlement, err := svc.Settle(ctx, created.ID, interfaces.SettleOptions{}, now)
	require.NoError(t, err)

	entry, err := storage.LedgerStore().Get(ctx, settlement.EntryID)
	require.NoError(t, err)
	assert.Equal(t, int64(150000), entry.AmountCents)
	assert.Equal(t, "Rent", entry.Note)
	// Due day 31 clamps to Feb 28; the stored template keeps 31.
	assert.Equal(t, 28, entry.OccurredAt.Day())
	got, err := svc.GetTemplate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 31, got.DueDay)
}

func TestStatusReflectsSettlement(t *testing.T) {
	svc, _, ctx := newTestService()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tmpl, err := svc.CreateTemplate(ctx, rentTemplate())
	require.NoError(t, err)

	status, err := svc.Status(ctx, tmpl.ID, now)
	require.NoError(t, err)
	assert.False(t, status.SettledThisCycle)
	assert.Equal(t, cycle.KeyFor(now), status.CycleKey)
	assert.Equal(t, 5, status.SuggestedDate.Day())

	settlement, err := svc.Settle(ctx, tmpl.ID, interfaces.SettleOptions{}, now)
	require.NoError(t, err)

	status, err = svc.Status(ctx, tmpl.ID, now)
	require.NoError(t, err)
	assert.True(t, status.SettledThisCycle)
	assert.Equal(t, settlement.EntryID, status.SettlementEntryID)

	// Next month the same lock reads as unsettled.
	status, err = svc.Status(ctx, tmpl.ID, now.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.False(t, status.SettledThisCycle)
}

// reclaimFailingStorage wraps a StorageManager so DeleteEntryAndUnlock
// always fails, exercising the reclaim abort path.
type reclaimFailingStorage struct {
	interfaces.StorageManager
}

func (s *reclaimFailingStorage) ObligationStore() interfaces.ObligationStore {
	return &reclaimFailingObligations{s.StorageManager.ObligationStore()}
}

type reclaimFailingObligations struct {
	interfaces.ObligationStore
}

func (s *reclaimFailingObligations) DeleteEntryAndUnlock(ctx context.Context, templateID, entryID string) error {
	return errors.New("entry deletion rejected")
}

func TestReclaimFailureLeavesLockIntact(t *testing.T) {
	storage := memory.NewManager()
	svc := NewService(storage, notify.NewNoopClient(), common.NewSilentLogger())
	ctx := common.WithPersonContext(context.Background(), &common.PersonContext{PersonID: "alice"})
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tmpl, err := svc.CreateTemplate(ctx, rentTemplate())
	require.NoError(t, err)
	settlement, err := svc.Settle(ctx, tmpl.ID, interfaces.SettleOptions{}, now)
	require.NoError(t, err)

	failing := NewService(&reclaimFailingStorage{storage}, notify.NewNoopClient(), common.NewSilentLogger())
	err = failing.Reclaim(ctx, tmpl.ID)
	require.Error(t, err)

	// The aborted reclaim changed nothing: the lock is still fully set and
	// the settlement entry still exists.
	got, err := svc.GetTemplate(ctx, tmpl.ID)
	require.NoError(t, err)
	require.True(t, got.Settled())
	assert.Equal(t, settlement.EntryID, got.Settlement.EntryID)
	assert.Equal(t, settlement.CycleKey, got.Settlement.CycleKey)
	assert.False(t, got.Settlement.Date.IsZero())
	_, err = storage.LedgerStore().Get(ctx, settlement.EntryID)
	assert.NoError(t, err)

	// A reclaim against the intact store still succeeds afterwards.
	require.NoError(t, svc.Reclaim(ctx, tmpl.ID))
}

func TestUpdateTemplatePreservesLockAndManagesReminders(t *testing.T) {
	storage := memory.NewManager()
	notifier := &recordingNotify{}
	svc := NewService(storage, notifier, common.NewSilentLogger())
	ctx := common.WithPersonContext(context.Background(), &common.PersonContext{PersonID: "alice"})
	now := time.Now()

	tmpl, err := svc.CreateTemplate(ctx, rentTemplate())
	require.NoError(t, err)
	assert.Empty(t, notifier.scheduled)

	_, err = svc.Settle(ctx, tmpl.ID, interfaces.SettleOptions{}, now)
	require.NoError(t, err)

	// Update with reminders on: settlement survives, reminder scheduled.
	tmpl.RemindersEnabled = true
	tmpl.AmountCents = 160000
	updated, err := svc.UpdateTemplate(ctx, tmpl)
	require.NoError(t, err)
	assert.True(t, updated.Settled())
	assert.Equal(t, []string{tmpl.ID}, notifier.scheduled)

	// Turning reminders off cancels.
	updated.RemindersEnabled = false
	_, err = svc.UpdateTemplate(ctx, updated)
	require.NoError(t, err)
	assert.Equal(t, []string{tmpl.ID}, notifier.cancelled)
}
