package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"tickly/internal/domain"
)

// AuditLogRepository satisfies audit.Store. Entries and their values are
// created together and deleted together; values never outlive their entry.
type AuditLogRepository interface {
	ListByEntityAsc(ctx context.Context, linkedID int64, linkedTable string) ([]domain.AuditLog, error)
	DeleteByIDs(ctx context.Context, ids []int64) error
	Insert(ctx context.Context, log *domain.AuditLog) error
	ListByEntity(ctx context.Context, linkedID int64, linkedTable string) ([]domain.AuditLog, error)
}

type auditLogRepository struct {
	db sqlx.ExtContext
}

func NewAuditLogRepository(db sqlx.ExtContext) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) ListByEntityAsc(ctx context.Context, linkedID int64, linkedTable string) ([]domain.AuditLog, error) {
	query := `
		SELECT id, user_id, linked_id, linked_table, action, modification_date
		FROM audit_logs
		WHERE linked_id = $1 AND linked_table = $2
		ORDER BY modification_date ASC, id ASC`

	var logs []domain.AuditLog
	err := sqlx.SelectContext(ctx, r.db, &logs, query, linkedID, linkedTable)
	return logs, err
}

func (r *auditLogRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM audit_logs WHERE id = ANY($1)`, pq.Array(ids))
	return err
}

func (r *auditLogRepository) Insert(ctx context.Context, log *domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (user_id, linked_id, linked_table, action, modification_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	row := r.db.QueryRowxContext(ctx, query,
		log.UserID, log.LinkedID, log.LinkedTable, log.Action, log.ModificationDate)
	if err := row.Scan(&log.ID); err != nil {
		return err
	}

	for i := range log.Values {
		value := &log.Values[i]
		value.AuditLogID = log.ID
		row := r.db.QueryRowxContext(ctx, `
			INSERT INTO audit_log_values (audit_log_id, field, previous_value, new_value)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			value.AuditLogID, value.Field, value.PreviousValue, value.NewValue)
		if err := row.Scan(&value.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *auditLogRepository) ListByEntity(ctx context.Context, linkedID int64, linkedTable string) ([]domain.AuditLog, error) {
	query := `
		SELECT
			al.id, al.user_id, al.linked_id, al.linked_table, al.action, al.modification_date,
			u.firstname || ' ' || u.lastname AS user_name
		FROM audit_logs al
		LEFT JOIN users u ON u.id = al.user_id
		WHERE al.linked_id = $1 AND al.linked_table = $2
		ORDER BY al.modification_date DESC, al.id DESC`

	var logs []domain.AuditLog
	if err := sqlx.SelectContext(ctx, r.db, &logs, query, linkedID, linkedTable); err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return logs, nil
	}

	ids := make([]int64, len(logs))
	index := make(map[int64]*domain.AuditLog, len(logs))
	for i := range logs {
		ids[i] = logs[i].ID
		index[logs[i].ID] = &logs[i]
	}

	var values []domain.AuditLogValue
	err := sqlx.SelectContext(ctx, r.db, &values, `
		SELECT id, audit_log_id, field, previous_value, new_value
		FROM audit_log_values
		WHERE audit_log_id = ANY($1)
		ORDER BY id ASC`, pq.Array(ids))
	if err != nil {
		return nil, err
	}

	for _, value := range values {
		log := index[value.AuditLogID]
		log.Values = append(log.Values, value)
	}
	return logs, nil
}
