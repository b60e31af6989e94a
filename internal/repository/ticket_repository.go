package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"tickly/internal/domain"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, id int64) error
	ListByStructure(ctx context.Context, structureID int64) ([]domain.Ticket, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]domain.Ticket, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Ticket, error)
	ListAssignees(ctx context.Context, ticketID int64) ([]domain.User, error)
	AddAssignee(ctx context.Context, ticketID, userID int64) error
	RemoveAssignee(ctx context.Context, ticketID, userID int64) error

	TopAuthors(ctx context.Context, limit int) ([]domain.TicketCountByAuthor, error)
	TopStructures(ctx context.Context, limit int) ([]domain.TicketCountByStructure, error)
	CountAll(ctx context.Context) (int64, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountByCategory(ctx context.Context) ([]domain.CategoryCount, error)
	CountByPriority(ctx context.Context) ([]domain.PriorityCount, error)
}

type ticketRepository struct {
	db sqlx.ExtContext
}

func NewTicketRepository(db sqlx.ExtContext) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	query := `
		INSERT INTO tickets (title, description, status, priority, category, author_id, structure_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		ticket.Title, ticket.Description, ticket.Status, ticket.Priority,
		pq.Array([]string(ticket.Category)), ticket.AuthorID, ticket.StructureID,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	var ticket domain.Ticket
	err := sqlx.GetContext(ctx, r.db, &ticket, `SELECT * FROM tickets WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	query := `
		UPDATE tickets
		SET title = $2, description = $3, status = $4, priority = $5, category = $6,
			structure_id = $7, archived_at = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		ticket.ID, ticket.Title, ticket.Description, ticket.Status, ticket.Priority,
		pq.Array([]string(ticket.Category)), ticket.StructureID, ticket.ArchivedAt,
	).Scan(&ticket.UpdatedAt)
}

func (r *ticketRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	return err
}

func (r *ticketRepository) ListByStructure(ctx context.Context, structureID int64) ([]domain.Ticket, error) {
	var tickets []domain.Ticket
	err := sqlx.SelectContext(ctx, r.db, &tickets,
		`SELECT * FROM tickets WHERE structure_id = $1 ORDER BY id DESC`, structureID)
	return tickets, err
}

func (r *ticketRepository) ListByAuthor(ctx context.Context, authorID int64) ([]domain.Ticket, error) {
	var tickets []domain.Ticket
	err := sqlx.SelectContext(ctx, r.db, &tickets,
		`SELECT * FROM tickets WHERE author_id = $1 ORDER BY id DESC`, authorID)
	return tickets, err
}

func (r *ticketRepository) ListByStatus(ctx context.Context, status string) ([]domain.Ticket, error) {
	var tickets []domain.Ticket
	err := sqlx.SelectContext(ctx, r.db, &tickets,
		`SELECT * FROM tickets WHERE status = $1 ORDER BY id DESC`, status)
	return tickets, err
}

func (r *ticketRepository) ListAssignees(ctx context.Context, ticketID int64) ([]domain.User, error) {
	query := `
		SELECT u.* FROM users u
		JOIN ticket_assignees ta ON ta.user_id = u.id
		WHERE ta.ticket_id = $1
		ORDER BY u.id`

	var users []domain.User
	err := sqlx.SelectContext(ctx, r.db, &users, query, ticketID)
	return users, err
}

func (r *ticketRepository) AddAssignee(ctx context.Context, ticketID, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ticket_assignees (ticket_id, user_id) VALUES ($1, $2)`, ticketID, userID)
	return err
}

func (r *ticketRepository) RemoveAssignee(ctx context.Context, ticketID, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM ticket_assignees WHERE ticket_id = $1 AND user_id = $2`, ticketID, userID)
	return err
}

func (r *ticketRepository) TopAuthors(ctx context.Context, limit int) ([]domain.TicketCountByAuthor, error) {
	query := `
		SELECT author_id, COUNT(*) AS ticket_count
		FROM tickets
		GROUP BY author_id
		ORDER BY ticket_count DESC
		LIMIT $1`

	var counts []domain.TicketCountByAuthor
	err := sqlx.SelectContext(ctx, r.db, &counts, query, limit)
	return counts, err
}

func (r *ticketRepository) TopStructures(ctx context.Context, limit int) ([]domain.TicketCountByStructure, error) {
	query := `
		SELECT structure_id, COUNT(*) AS ticket_count
		FROM tickets
		WHERE structure_id IS NOT NULL
		GROUP BY structure_id
		ORDER BY ticket_count DESC
		LIMIT $1`

	var counts []domain.TicketCountByStructure
	err := sqlx.SelectContext(ctx, r.db, &counts, query, limit)
	return counts, err
}

func (r *ticketRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := sqlx.GetContext(ctx, r.db, &count, `SELECT COUNT(*) FROM tickets`)
	return count, err
}

func (r *ticketRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := sqlx.GetContext(ctx, r.db, &count,
		`SELECT COUNT(*) FROM tickets WHERE created_at >= $1 AND created_at < $2`, from, to)
	return count, err
}

func (r *ticketRepository) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	query := `
		SELECT c AS category, COUNT(*) AS count
		FROM tickets t, unnest(t.category) AS c
		GROUP BY c
		ORDER BY count DESC`

	var counts []domain.CategoryCount
	err := sqlx.SelectContext(ctx, r.db, &counts, query)
	return counts, err
}

func (r *ticketRepository) CountByPriority(ctx context.Context) ([]domain.PriorityCount, error) {
	query := `
		SELECT priority, COUNT(*) AS count
		FROM tickets
		GROUP BY priority
		ORDER BY count DESC`

	var counts []domain.PriorityCount
	err := sqlx.SelectContext(ctx, r.db, &counts, query)
	return counts, err
}
