package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"tickly/internal/domain"
)

type MediaRepository interface {
	Create(ctx context.Context, media *domain.Media) error
	GetByID(ctx context.Context, id int64) (*domain.Media, error)
	GetByComment(ctx context.Context, commentID int64) (*domain.Media, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Media, int64, error)
}

type mediaRepository struct {
	db sqlx.ExtContext
}

func NewMediaRepository(db sqlx.ExtContext) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(ctx context.Context, media *domain.Media) error {
	query := `
		INSERT INTO media (filename, typemime, url, storage_path, ticket_id, user_id, structure_id, comment_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	return r.db.QueryRowxContext(ctx, query,
		media.Filename, media.Typemime, media.URL, media.StoragePath,
		media.TicketID, media.UserID, media.StructureID, media.CommentID,
	).Scan(&media.ID, &media.CreatedAt)
}

func (r *mediaRepository) GetByID(ctx context.Context, id int64) (*domain.Media, error) {
	var media domain.Media
	err := sqlx.GetContext(ctx, r.db, &media, `SELECT * FROM media WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *mediaRepository) GetByComment(ctx context.Context, commentID int64) (*domain.Media, error) {
	var media domain.Media
	err := sqlx.GetContext(ctx, r.db, &media,
		`SELECT * FROM media WHERE comment_id = $1 ORDER BY id LIMIT 1`, commentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *mediaRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE id = $1`, id)
	return err
}

func (r *mediaRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Media, int64, error) {
	params.Validate()

	var total int64
	if err := sqlx.GetContext(ctx, r.db, &total, `SELECT COUNT(*) FROM media`); err != nil {
		return nil, 0, err
	}

	var media []domain.Media
	err := sqlx.SelectContext(ctx, r.db, &media,
		`SELECT * FROM media ORDER BY id DESC LIMIT $1 OFFSET $2`, params.PageSize, params.Offset())
	return media, total, err
}
