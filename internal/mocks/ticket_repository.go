package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"tickly/internal/domain"
)

type TicketRepository struct {
	mock.Mock
}

func (m *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *TicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *TicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *TicketRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TicketRepository) ListByStructure(ctx context.Context, structureID int64) ([]domain.Ticket, error) {
	args := m.Called(ctx, structureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *TicketRepository) ListByAuthor(ctx context.Context, authorID int64) ([]domain.Ticket, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *TicketRepository) ListByStatus(ctx context.Context, status string) ([]domain.Ticket, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *TicketRepository) ListAssignees(ctx context.Context, ticketID int64) ([]domain.User, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *TicketRepository) AddAssignee(ctx context.Context, ticketID, userID int64) error {
	args := m.Called(ctx, ticketID, userID)
	return args.Error(0)
}

func (m *TicketRepository) RemoveAssignee(ctx context.Context, ticketID, userID int64) error {
	args := m.Called(ctx, ticketID, userID)
	return args.Error(0)
}

func (m *TicketRepository) TopAuthors(ctx context.Context, limit int) ([]domain.TicketCountByAuthor, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TicketCountByAuthor), args.Error(1)
}

func (m *TicketRepository) TopStructures(ctx context.Context, limit int) ([]domain.TicketCountByStructure, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TicketCountByStructure), args.Error(1)
}

func (m *TicketRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TicketRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TicketRepository) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryCount), args.Error(1)
}

func (m *TicketRepository) CountByPriority(ctx context.Context) ([]domain.PriorityCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PriorityCount), args.Error(1)
}
