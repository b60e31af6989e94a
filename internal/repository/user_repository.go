package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"tickly/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
	ListByIDs(ctx context.Context, ids []int64) ([]domain.User, error)
	ListByStructure(ctx context.Context, structureID int64) ([]domain.User, error)
	AddToStructure(ctx context.Context, structureID, userID int64) error
	RemoveFromStructure(ctx context.Context, structureID, userID int64) error
	ListStructures(ctx context.Context, userID int64) ([]domain.Structure, error)
	SetAvatar(ctx context.Context, userID int64, avatarURL string) error
}

type userRepository struct {
	db sqlx.ExtContext
}

func NewUserRepository(db sqlx.ExtContext) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (firstname, lastname, login, password, email, phone, roles, job_type, address_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		user.Firstname, user.Lastname, user.Login, user.Password,
		user.Email, user.Phone, pq.Array([]string(user.Roles)), user.JobType, user.AddressID,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := sqlx.GetContext(ctx, r.db, &user, `SELECT * FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	var user domain.User
	err := sqlx.GetContext(ctx, r.db, &user, `SELECT * FROM users WHERE login = $1`, login)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET firstname = $2, lastname = $3, login = $4, password = $5,
			email = $6, phone = $7, roles = $8, job_type = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		user.ID, user.Firstname, user.Lastname, user.Login, user.Password,
		user.Email, user.Phone, pq.Array([]string(user.Roles)), user.JobType,
	).Scan(&user.UpdatedAt)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (r *userRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []domain.User
	err := sqlx.SelectContext(ctx, r.db, &users,
		`SELECT * FROM users WHERE id = ANY($1) ORDER BY id`, pq.Array(ids))
	return users, err
}

func (r *userRepository) ListByStructure(ctx context.Context, structureID int64) ([]domain.User, error) {
	query := `
		SELECT u.* FROM users u
		JOIN structure_users su ON su.user_id = u.id
		WHERE su.structure_id = $1
		ORDER BY u.id`

	var users []domain.User
	err := sqlx.SelectContext(ctx, r.db, &users, query, structureID)
	return users, err
}

func (r *userRepository) AddToStructure(ctx context.Context, structureID, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO structure_users (structure_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		structureID, userID)
	return err
}

func (r *userRepository) RemoveFromStructure(ctx context.Context, structureID, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM structure_users WHERE structure_id = $1 AND user_id = $2`,
		structureID, userID)
	return err
}

func (r *userRepository) ListStructures(ctx context.Context, userID int64) ([]domain.Structure, error) {
	query := `
		SELECT s.* FROM structures s
		JOIN structure_users su ON su.structure_id = s.id
		WHERE su.user_id = $1
		ORDER BY s.id`

	var structures []domain.Structure
	err := sqlx.SelectContext(ctx, r.db, &structures, query, userID)
	return structures, err
}

func (r *userRepository) SetAvatar(ctx context.Context, userID int64, avatarURL string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET avatar_url = $2, updated_at = NOW() WHERE id = $1`, userID, avatarURL)
	return err
}
