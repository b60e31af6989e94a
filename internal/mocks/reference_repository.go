package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tickly/internal/domain"
)

type CategoryRepository struct {
	mock.Mock
}

func (m *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *CategoryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

type PriorityRepository struct {
	mock.Mock
}

func (m *PriorityRepository) Create(ctx context.Context, priority *domain.Priority) error {
	args := m.Called(ctx, priority)
	return args.Error(0)
}

func (m *PriorityRepository) GetByID(ctx context.Context, id int64) (*domain.Priority, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Priority), args.Error(1)
}

func (m *PriorityRepository) Update(ctx context.Context, priority *domain.Priority) error {
	args := m.Called(ctx, priority)
	return args.Error(0)
}

func (m *PriorityRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PriorityRepository) List(ctx context.Context) ([]domain.Priority, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Priority), args.Error(1)
}

type StatusRepository struct {
	mock.Mock
}

func (m *StatusRepository) Create(ctx context.Context, status *domain.Status) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *StatusRepository) GetByID(ctx context.Context, id int64) (*domain.Status, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Status), args.Error(1)
}

func (m *StatusRepository) Update(ctx context.Context, status *domain.Status) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *StatusRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *StatusRepository) List(ctx context.Context) ([]domain.Status, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Status), args.Error(1)
}
