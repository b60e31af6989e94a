package audit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickly/internal/domain"
)

// fakeStore keeps entries in memory in insertion order with ascending IDs.
type fakeStore struct {
	nextID  int64
	entries []domain.AuditLog
}

func (s *fakeStore) ListByEntityAsc(_ context.Context, linkedID int64, linkedTable string) ([]domain.AuditLog, error) {
	var out []domain.AuditLog
	for _, e := range s.entries {
		if e.LinkedID == linkedID && e.LinkedTable == linkedTable {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeStore) DeleteByIDs(_ context.Context, ids []int64) error {
	drop := map[int64]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	var kept []domain.AuditLog
	for _, e := range s.entries {
		if !drop[e.ID] {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	return nil
}

func (s *fakeStore) Insert(_ context.Context, log *domain.AuditLog) error {
	s.nextID++
	log.ID = s.nextID
	s.entries = append(s.entries, *log)
	return nil
}

func (s *fakeStore) ListByEntity(ctx context.Context, linkedID int64, linkedTable string) ([]domain.AuditLog, error) {
	asc, err := s.ListByEntityAsc(ctx, linkedID, linkedTable)
	if err != nil {
		return nil, err
	}
	desc := make([]domain.AuditLog, 0, len(asc))
	for i := len(asc) - 1; i >= 0; i-- {
		desc = append(desc, asc[i])
	}
	return desc, nil
}

func TestTracker_RecordCreate(t *testing.T) {
	store := &fakeStore{}
	tr := NewTracker(store)
	ctx := context.Background()

	err := tr.Record(ctx, 1, 10, domain.TableTicket, domain.ActionCreate, nil)
	require.NoError(t, err)

	logs, _ := store.ListByEntityAsc(ctx, 10, domain.TableTicket)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.ActionCreate, logs[0].Action)
	assert.Equal(t, int64(1), logs[0].UserID)
	assert.Empty(t, logs[0].Values)
}

func TestTracker_UpdateWithNoRealChangesIsNoOp(t *testing.T) {
	store := &fakeStore{}
	tr := NewTracker(store)
	ctx := context.Background()

	fields := []domain.FieldChange{
		{Field: "title", PreviousValue: strPtr("same"), NewValue: strPtr("same")},
		{Field: "description", PreviousValue: nil, NewValue: strPtr("")},
	}

	err := tr.Record(ctx, 1, 10, domain.TableTicket, domain.ActionUpdate, fields)
	require.NoError(t, err)

	logs, _ := store.ListByEntityAsc(ctx, 10, domain.TableTicket)
	assert.Empty(t, logs, "an update without surviving changes must not write an entry")
}

func TestTracker_UpdateKeepsValueOrder(t *testing.T) {
	store := &fakeStore{}
	tr := NewTracker(store)
	ctx := context.Background()

	fields := []domain.FieldChange{
		{Field: "title", PreviousValue: strPtr("a"), NewValue: strPtr("b")},
		{Field: "status", PreviousValue: strPtr("OPEN"), NewValue: strPtr("OPEN")},
		{Field: "priority", PreviousValue: strPtr("LOW"), NewValue: strPtr("HIGH")},
	}

	require.NoError(t, tr.Record(ctx, 2, 10, domain.TableTicket, domain.ActionUpdate, fields))

	logs, _ := store.ListByEntityAsc(ctx, 10, domain.TableTicket)
	require.Len(t, logs, 1)
	require.Len(t, logs[0].Values, 2)
	assert.Equal(t, "title", logs[0].Values[0].Field)
	assert.Equal(t, "priority", logs[0].Values[1].Field)
}

func TestTracker_RetentionEvictsOldestDownToCap(t *testing.T) {
	store := &fakeStore{}
	tr := NewTracker(store)
	ctx := context.Background()

	// Seed 55 entries directly, simulating a backlog beyond the cap.
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 55; i++ {
		store.nextID++
		store.entries = append(store.entries, domain.AuditLog{
			ID:               store.nextID,
			UserID:           1,
			LinkedID:         10,
			LinkedTable:      domain.TableTicket,
			Action:           domain.ActionUpdate,
			ModificationDate: base.Add(time.Duration(i) * time.Minute),
		})
	}

	fields := []domain.FieldChange{
		{Field: "title", PreviousValue: strPtr("a"), NewValue: strPtr("b")},
	}
	require.NoError(t, tr.Record(ctx, 1, 10, domain.TableTicket, domain.ActionUpdate, fields))

	logs, _ := store.ListByEntityAsc(ctx, 10, domain.TableTicket)
	require.Len(t, logs, RetentionCap)

	// The six oldest (55 - 49) must be gone and the new entry must be last.
	assert.Equal(t, int64(7), logs[0].ID)
	assert.Equal(t, int64(56), logs[len(logs)-1].ID)
}

func TestTracker_RetentionAtExactlyCap(t *testing.T) {
	store := &fakeStore{}
	tr := NewTracker(store)
	ctx := context.Background()

	for i := 0; i < RetentionCap; i++ {
		fields := []domain.FieldChange{
			{Field: "title", PreviousValue: strPtr("v"), NewValue: strPtr(fmt.Sprintf("v%d", i))},
		}
		require.NoError(t, tr.Record(ctx, 1, 20, domain.TableStructure, domain.ActionUpdate, fields))
	}

	logs, _ := store.ListByEntityAsc(ctx, 20, domain.TableStructure)
	require.Len(t, logs, RetentionCap)

	// One more insert evicts exactly one.
	fields := []domain.FieldChange{
		{Field: "title", PreviousValue: strPtr("x"), NewValue: strPtr("y")},
	}
	require.NoError(t, tr.Record(ctx, 1, 20, domain.TableStructure, domain.ActionUpdate, fields))

	logs, _ = store.ListByEntityAsc(ctx, 20, domain.TableStructure)
	require.Len(t, logs, RetentionCap)
	assert.Equal(t, int64(2), logs[0].ID)
}

func TestTracker_RetentionIsPerEntity(t *testing.T) {
	store := &fakeStore{}
	tr := NewTracker(store)
	ctx := context.Background()

	fields := func(i int) []domain.FieldChange {
		return []domain.FieldChange{
			{Field: "title", PreviousValue: strPtr("v"), NewValue: strPtr(fmt.Sprintf("v%d", i))},
		}
	}

	for i := 0; i < RetentionCap; i++ {
		require.NoError(t, tr.Record(ctx, 1, 30, domain.TableTicket, domain.ActionUpdate, fields(i)))
	}
	// Same ID, different table: must not interfere.
	require.NoError(t, tr.Record(ctx, 1, 30, domain.TableUser, domain.ActionCreate, nil))

	ticketLogs, _ := store.ListByEntityAsc(ctx, 30, domain.TableTicket)
	userLogs, _ := store.ListByEntityAsc(ctx, 30, domain.TableUser)
	assert.Len(t, ticketLogs, RetentionCap)
	assert.Len(t, userLogs, 1)
}

func TestTracker_ListReturnsNewestFirst(t *testing.T) {
	store := &fakeStore{}
	tr := NewTracker(store)
	ctx := context.Background()

	require.NoError(t, tr.Record(ctx, 1, 40, domain.TableTicket, domain.ActionCreate, nil))
	require.NoError(t, tr.Record(ctx, 1, 40, domain.TableTicket, domain.ActionUpdate, []domain.FieldChange{
		{Field: "title", PreviousValue: strPtr("a"), NewValue: strPtr("b")},
	}))

	logs, err := tr.List(ctx, 40, domain.TableTicket)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, domain.ActionUpdate, logs[0].Action)
	assert.Equal(t, domain.ActionCreate, logs[1].Action)
}
