package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"tickly/internal/domain"
)

// Reference repositories back the category/priority/status selection tables.
// They are deliberately plain: id + one text column each.

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Category, error)
}

type PriorityRepository interface {
	Create(ctx context.Context, priority *domain.Priority) error
	GetByID(ctx context.Context, id int64) (*domain.Priority, error)
	Update(ctx context.Context, priority *domain.Priority) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Priority, error)
}

type StatusRepository interface {
	Create(ctx context.Context, status *domain.Status) error
	GetByID(ctx context.Context, id int64) (*domain.Status, error)
	Update(ctx context.Context, status *domain.Status) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Status, error)
}

type categoryRepository struct {
	db sqlx.ExtContext
}

func NewCategoryRepository(db sqlx.ExtContext) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	return r.db.QueryRowxContext(ctx,
		`INSERT INTO categories (category) VALUES ($1) RETURNING id`, category.Category,
	).Scan(&category.ID)
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var category domain.Category
	err := sqlx.GetContext(ctx, r.db, &category, `SELECT * FROM categories WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE categories SET category = $2 WHERE id = $1`, category.ID, category.Category)
	return err
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := sqlx.SelectContext(ctx, r.db, &categories, `SELECT * FROM categories ORDER BY category`)
	return categories, err
}

type priorityRepository struct {
	db sqlx.ExtContext
}

func NewPriorityRepository(db sqlx.ExtContext) PriorityRepository {
	return &priorityRepository{db: db}
}

func (r *priorityRepository) Create(ctx context.Context, priority *domain.Priority) error {
	return r.db.QueryRowxContext(ctx,
		`INSERT INTO priorities (priority) VALUES ($1) RETURNING id`, priority.Priority,
	).Scan(&priority.ID)
}

func (r *priorityRepository) GetByID(ctx context.Context, id int64) (*domain.Priority, error) {
	var priority domain.Priority
	err := sqlx.GetContext(ctx, r.db, &priority, `SELECT * FROM priorities WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &priority, nil
}

func (r *priorityRepository) Update(ctx context.Context, priority *domain.Priority) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE priorities SET priority = $2 WHERE id = $1`, priority.ID, priority.Priority)
	return err
}

func (r *priorityRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM priorities WHERE id = $1`, id)
	return err
}

func (r *priorityRepository) List(ctx context.Context) ([]domain.Priority, error) {
	var priorities []domain.Priority
	err := sqlx.SelectContext(ctx, r.db, &priorities, `SELECT * FROM priorities ORDER BY priority`)
	return priorities, err
}

type statusRepository struct {
	db sqlx.ExtContext
}

func NewStatusRepository(db sqlx.ExtContext) StatusRepository {
	return &statusRepository{db: db}
}

func (r *statusRepository) Create(ctx context.Context, status *domain.Status) error {
	return r.db.QueryRowxContext(ctx,
		`INSERT INTO statuses (status) VALUES ($1) RETURNING id`, status.Status,
	).Scan(&status.ID)
}

func (r *statusRepository) GetByID(ctx context.Context, id int64) (*domain.Status, error) {
	var status domain.Status
	err := sqlx.GetContext(ctx, r.db, &status, `SELECT * FROM statuses WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *statusRepository) Update(ctx context.Context, status *domain.Status) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE statuses SET status = $2 WHERE id = $1`, status.ID, status.Status)
	return err
}

func (r *statusRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM statuses WHERE id = $1`, id)
	return err
}

func (r *statusRepository) List(ctx context.Context) ([]domain.Status, error) {
	var statuses []domain.Status
	err := sqlx.SelectContext(ctx, r.db, &statuses, `SELECT * FROM statuses ORDER BY status`)
	return statuses, err
}
