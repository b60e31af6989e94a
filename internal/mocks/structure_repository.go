package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tickly/internal/domain"
)

type StructureRepository struct {
	mock.Mock
}

func (m *StructureRepository) Create(ctx context.Context, structure *domain.Structure) error {
	args := m.Called(ctx, structure)
	return args.Error(0)
}

func (m *StructureRepository) GetByID(ctx context.Context, id int64) (*domain.Structure, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Structure), args.Error(1)
}

func (m *StructureRepository) Update(ctx context.Context, structure *domain.Structure) error {
	args := m.Called(ctx, structure)
	return args.Error(0)
}

func (m *StructureRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *StructureRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.Structure, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Structure), args.Error(1)
}

func (m *StructureRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Structure, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Structure), args.Error(1)
}

func (m *StructureRepository) SetAvatar(ctx context.Context, structureID int64, avatarURL string) error {
	args := m.Called(ctx, structureID, avatarURL)
	return args.Error(0)
}
