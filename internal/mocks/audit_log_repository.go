package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tickly/internal/domain"
)

type AuditLogRepository struct {
	mock.Mock
}

func (m *AuditLogRepository) ListByEntityAsc(ctx context.Context, linkedID int64, linkedTable string) ([]domain.AuditLog, error) {
	args := m.Called(ctx, linkedID, linkedTable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

func (m *AuditLogRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *AuditLogRepository) Insert(ctx context.Context, log *domain.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditLogRepository) ListByEntity(ctx context.Context, linkedID int64, linkedTable string) ([]domain.AuditLog, error) {
	args := m.Called(ctx, linkedID, linkedTable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}
