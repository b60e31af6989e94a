package reference_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tickly/internal/domain"
	"tickly/internal/mocks"
	"tickly/internal/repository"
	"tickly/internal/service/reference"
)

type referenceMocks struct {
	categoryRepo *mocks.CategoryRepository
	priorityRepo *mocks.PriorityRepository
	statusRepo   *mocks.StatusRepository
}

func newReferenceService() (reference.Service, *referenceMocks) {
	m := &referenceMocks{
		categoryRepo: new(mocks.CategoryRepository),
		priorityRepo: new(mocks.PriorityRepository),
		statusRepo:   new(mocks.StatusRepository),
	}
	repos := &repository.Repositories{
		Category: m.categoryRepo,
		Priority: m.priorityRepo,
		Status:   m.statusRepo,
	}
	return reference.NewService(repos), m
}

func TestReferenceService_GetCategoryNotFound(t *testing.T) {
	svc, m := newReferenceService()
	ctx := context.Background()

	m.categoryRepo.On("GetByID", ctx, int64(404)).Return(nil, nil).Once()

	_, err := svc.GetCategory(ctx, 404)
	assert.ErrorIs(t, err, reference.ErrNotFound)
}

func TestReferenceService_GetCategory(t *testing.T) {
	svc, m := newReferenceService()
	ctx := context.Background()

	m.categoryRepo.On("GetByID", ctx, int64(3)).Return(&domain.Category{ID: 3, Category: "HARDWARE"}, nil).Once()

	category, err := svc.GetCategory(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "HARDWARE", category.Category)
}

func TestReferenceService_UpdateCategory(t *testing.T) {
	svc, m := newReferenceService()
	ctx := context.Background()

	m.categoryRepo.On("GetByID", ctx, int64(3)).Return(&domain.Category{ID: 3, Category: "HARDWARE"}, nil).Once()
	m.categoryRepo.On("Update", ctx, mock.MatchedBy(func(c *domain.Category) bool {
		return c.ID == 3 && c.Category == "NETWORK"
	})).Return(nil).Once()

	updated, err := svc.UpdateCategory(ctx, 3, domain.CreateCategoryInput{Category: "NETWORK"})
	require.NoError(t, err)
	assert.Equal(t, "NETWORK", updated.Category)
	m.categoryRepo.AssertExpectations(t)
}

func TestReferenceService_UpdatePriorityNotFound(t *testing.T) {
	svc, m := newReferenceService()
	ctx := context.Background()

	m.priorityRepo.On("GetByID", ctx, int64(404)).Return(nil, nil).Once()

	_, err := svc.UpdatePriority(ctx, 404, domain.CreatePriorityInput{Priority: "URGENT"})
	assert.ErrorIs(t, err, reference.ErrNotFound)
	m.priorityRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestReferenceService_GetStatus(t *testing.T) {
	svc, m := newReferenceService()
	ctx := context.Background()

	m.statusRepo.On("GetByID", ctx, int64(2)).Return(&domain.Status{ID: 2, Status: "RESOLVED"}, nil).Once()

	status, err := svc.GetStatus(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "RESOLVED", status.Status)
}

func TestReferenceService_UpdateStatus(t *testing.T) {
	svc, m := newReferenceService()
	ctx := context.Background()

	m.statusRepo.On("GetByID", ctx, int64(2)).Return(&domain.Status{ID: 2, Status: "RESOLVED"}, nil).Once()
	m.statusRepo.On("Update", ctx, mock.MatchedBy(func(s *domain.Status) bool {
		return s.ID == 2 && s.Status == "CLOSED"
	})).Return(nil).Once()

	updated, err := svc.UpdateStatus(ctx, 2, domain.CreateStatusInput{Status: "CLOSED"})
	require.NoError(t, err)
	assert.Equal(t, "CLOSED", updated.Status)
}

func TestReferenceService_DeleteStatusNotFound(t *testing.T) {
	svc, m := newReferenceService()
	ctx := context.Background()

	m.statusRepo.On("GetByID", ctx, int64(404)).Return(nil, nil).Once()

	err := svc.DeleteStatus(ctx, 404)
	assert.ErrorIs(t, err, reference.ErrNotFound)
	m.statusRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
