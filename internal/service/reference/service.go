package reference

import (
	"context"
	"errors"

	"tickly/internal/domain"
	"tickly/internal/repository"
)

var ErrNotFound = errors.New("reference value not found")

// Service manages the selectable ticket reference values: categories,
// priorities and statuses.
type Service interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	CreateCategory(ctx context.Context, input domain.CreateCategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, input domain.CreateCategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListPriorities(ctx context.Context) ([]domain.Priority, error)
	GetPriority(ctx context.Context, id int64) (*domain.Priority, error)
	CreatePriority(ctx context.Context, input domain.CreatePriorityInput) (*domain.Priority, error)
	UpdatePriority(ctx context.Context, id int64, input domain.CreatePriorityInput) (*domain.Priority, error)
	DeletePriority(ctx context.Context, id int64) error

	ListStatuses(ctx context.Context) ([]domain.Status, error)
	GetStatus(ctx context.Context, id int64) (*domain.Status, error)
	CreateStatus(ctx context.Context, input domain.CreateStatusInput) (*domain.Status, error)
	UpdateStatus(ctx context.Context, id int64, input domain.CreateStatusInput) (*domain.Status, error)
	DeleteStatus(ctx context.Context, id int64) error
}

type service struct {
	repos *repository.Repositories
}

func NewService(repos *repository.Repositories) Service {
	return &service{repos: repos}
}

func (s *service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repos.Category.List(ctx)
}

func (s *service) CreateCategory(ctx context.Context, input domain.CreateCategoryInput) (*domain.Category, error) {
	category := &domain.Category{Category: input.Category}
	if err := s.repos.Category.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *service) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.repos.Category.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

func (s *service) UpdateCategory(ctx context.Context, id int64, input domain.CreateCategoryInput) (*domain.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Category = input.Category
	if err := s.repos.Category.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *service) DeleteCategory(ctx context.Context, id int64) error {
	category, err := s.repos.Category.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}
	return s.repos.Category.Delete(ctx, id)
}

func (s *service) ListPriorities(ctx context.Context) ([]domain.Priority, error) {
	return s.repos.Priority.List(ctx)
}

func (s *service) CreatePriority(ctx context.Context, input domain.CreatePriorityInput) (*domain.Priority, error) {
	priority := &domain.Priority{Priority: input.Priority}
	if err := s.repos.Priority.Create(ctx, priority); err != nil {
		return nil, err
	}
	return priority, nil
}

func (s *service) GetPriority(ctx context.Context, id int64) (*domain.Priority, error) {
	priority, err := s.repos.Priority.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if priority == nil {
		return nil, ErrNotFound
	}
	return priority, nil
}

func (s *service) UpdatePriority(ctx context.Context, id int64, input domain.CreatePriorityInput) (*domain.Priority, error) {
	priority, err := s.GetPriority(ctx, id)
	if err != nil {
		return nil, err
	}
	priority.Priority = input.Priority
	if err := s.repos.Priority.Update(ctx, priority); err != nil {
		return nil, err
	}
	return priority, nil
}

func (s *service) DeletePriority(ctx context.Context, id int64) error {
	priority, err := s.repos.Priority.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if priority == nil {
		return ErrNotFound
	}
	return s.repos.Priority.Delete(ctx, id)
}

func (s *service) ListStatuses(ctx context.Context) ([]domain.Status, error) {
	return s.repos.Status.List(ctx)
}

func (s *service) CreateStatus(ctx context.Context, input domain.CreateStatusInput) (*domain.Status, error) {
	status := &domain.Status{Status: input.Status}
	if err := s.repos.Status.Create(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}

func (s *service) GetStatus(ctx context.Context, id int64) (*domain.Status, error) {
	status, err := s.repos.Status.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, ErrNotFound
	}
	return status, nil
}

func (s *service) UpdateStatus(ctx context.Context, id int64, input domain.CreateStatusInput) (*domain.Status, error) {
	status, err := s.GetStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	status.Status = input.Status
	if err := s.repos.Status.Update(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}

func (s *service) DeleteStatus(ctx context.Context, id int64) error {
	status, err := s.repos.Status.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if status == nil {
		return ErrNotFound
	}
	return s.repos.Status.Delete(ctx, id)
}
