package audit

import (
	"context"
	"time"

	"tickly/internal/domain"
)

// RetentionCap is the maximum number of audit entries kept per
// (linked_id, linked_table) pair. Inserting past the cap evicts the oldest
// entries first. The cap is a soft bound: concurrent writers to the same
// entity can transiently exceed it unless the surrounding transaction runs
// serializable.
const RetentionCap = 50

// Store is the persistence surface the tracker needs. The repository layer
// implements it; a transaction-scoped repository keeps evict+insert atomic
// with the entity write.
type Store interface {
	ListByEntityAsc(ctx context.Context, linkedID int64, linkedTable string) ([]domain.AuditLog, error)
	DeleteByIDs(ctx context.Context, ids []int64) error
	Insert(ctx context.Context, log *domain.AuditLog) error
	ListByEntity(ctx context.Context, linkedID int64, linkedTable string) ([]domain.AuditLog, error)
}

type Tracker interface {
	Record(ctx context.Context, actorID, linkedID int64, linkedTable, action string, fields []domain.FieldChange) error
	List(ctx context.Context, linkedID int64, linkedTable string) ([]domain.AuditLog, error)
}

type tracker struct {
	store Store
	now   func() time.Time
}

func NewTracker(store Store) Tracker {
	return &tracker{store: store, now: time.Now}
}

// Record normalizes the candidate fields, applies the retention cap and
// persists one entry plus its surviving field values in input order.
// An UPDATE whose candidates all normalize away is a deliberate no-op:
// no entry, no eviction, no error.
func (t *tracker) Record(ctx context.Context, actorID, linkedID int64, linkedTable, action string, fields []domain.FieldChange) error {
	kept := Normalize(fields)

	if action == domain.ActionUpdate && len(kept) == 0 {
		return nil
	}

	if err := t.evict(ctx, linkedID, linkedTable); err != nil {
		return err
	}

	log := &domain.AuditLog{
		UserID:           actorID,
		LinkedID:         linkedID,
		LinkedTable:      linkedTable,
		Action:           action,
		ModificationDate: t.now(),
	}
	for _, f := range kept {
		log.Values = append(log.Values, domain.AuditLogValue{
			Field:         f.Field,
			PreviousValue: f.PreviousValue,
			NewValue:      f.NewValue,
		})
	}

	return t.store.Insert(ctx, log)
}

// evict deletes the oldest entries for the key so that after the upcoming
// insert the total is exactly RetentionCap.
func (t *tracker) evict(ctx context.Context, linkedID int64, linkedTable string) error {
	existing, err := t.store.ListByEntityAsc(ctx, linkedID, linkedTable)
	if err != nil {
		return err
	}
	if len(existing) < RetentionCap {
		return nil
	}

	surplus := len(existing) - (RetentionCap - 1)
	ids := make([]int64, 0, surplus)
	for _, log := range existing[:surplus] {
		ids = append(ids, log.ID)
	}
	return t.store.DeleteByIDs(ctx, ids)
}

// List returns the surviving entries for the key newest-first, each with its
// field values and the actor's display name resolved.
func (t *tracker) List(ctx context.Context, linkedID int64, linkedTable string) ([]domain.AuditLog, error) {
	return t.store.ListByEntity(ctx, linkedID, linkedTable)
}
