package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"tickly/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id int64) error
	ListByTicket(ctx context.Context, ticketID int64, params domain.PaginationParams) ([]domain.Comment, int64, error)
	SetMediaURL(ctx context.Context, commentID int64, mediaURL string) error
}

type commentRepository struct {
	db sqlx.ExtContext
}

func NewCommentRepository(db sqlx.ExtContext) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (content, ticket_id, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		comment.Content, comment.TicketID, comment.AuthorID,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment domain.Comment
	err := sqlx.GetContext(ctx, r.db, &comment, `SELECT * FROM comments WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	return r.db.QueryRowxContext(ctx,
		`UPDATE comments SET content = $2, updated_at = NOW() WHERE id = $1 RETURNING updated_at`,
		comment.ID, comment.Content,
	).Scan(&comment.UpdatedAt)
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	return err
}

func (r *commentRepository) ListByTicket(ctx context.Context, ticketID int64, params domain.PaginationParams) ([]domain.Comment, int64, error) {
	params.Validate()

	var total int64
	if err := sqlx.GetContext(ctx, r.db, &total,
		`SELECT COUNT(*) FROM comments WHERE ticket_id = $1`, ticketID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			c.*,
			u.firstname || ' ' || u.lastname AS author_name
		FROM comments c
		LEFT JOIN users u ON u.id = c.author_id
		WHERE c.ticket_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3`

	var comments []domain.Comment
	err := sqlx.SelectContext(ctx, r.db, &comments, query, ticketID, params.PageSize, params.Offset())
	return comments, total, err
}

func (r *commentRepository) SetMediaURL(ctx context.Context, commentID int64, mediaURL string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE comments SET media_url = $2, updated_at = NOW() WHERE id = $1`, commentID, mediaURL)
	return err
}
