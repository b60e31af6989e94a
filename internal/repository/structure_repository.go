package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"tickly/internal/domain"
)

type StructureRepository interface {
	Create(ctx context.Context, structure *domain.Structure) error
	GetByID(ctx context.Context, id int64) (*domain.Structure, error)
	Update(ctx context.Context, structure *domain.Structure) error
	Delete(ctx context.Context, id int64) error
	ListByIDs(ctx context.Context, ids []int64) ([]domain.Structure, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Structure, error)
	SetAvatar(ctx context.Context, structureID int64, avatarURL string) error
}

type structureRepository struct {
	db sqlx.ExtContext
}

func NewStructureRepository(db sqlx.ExtContext) StructureRepository {
	return &structureRepository{db: db}
}

func (r *structureRepository) Create(ctx context.Context, structure *domain.Structure) error {
	query := `
		INSERT INTO structures (name, type, service, email, phone, address_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		structure.Name, structure.Type, structure.Service,
		structure.Email, structure.Phone, structure.AddressID,
	).Scan(&structure.ID, &structure.CreatedAt, &structure.UpdatedAt)
}

func (r *structureRepository) GetByID(ctx context.Context, id int64) (*domain.Structure, error) {
	var structure domain.Structure
	err := sqlx.GetContext(ctx, r.db, &structure, `SELECT * FROM structures WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &structure, nil
}

func (r *structureRepository) Update(ctx context.Context, structure *domain.Structure) error {
	query := `
		UPDATE structures
		SET name = $2, type = $3, service = $4, email = $5, phone = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		structure.ID, structure.Name, structure.Type, structure.Service,
		structure.Email, structure.Phone,
	).Scan(&structure.UpdatedAt)
}

func (r *structureRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM structures WHERE id = $1`, id)
	return err
}

func (r *structureRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.Structure, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var structures []domain.Structure
	err := sqlx.SelectContext(ctx, r.db, &structures,
		`SELECT * FROM structures WHERE id = ANY($1) ORDER BY id`, pq.Array(ids))
	return structures, err
}

func (r *structureRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Structure, error) {
	query := `
		SELECT s.* FROM structures s
		JOIN structure_users su ON su.structure_id = s.id
		WHERE su.user_id = $1
		ORDER BY s.id`

	var structures []domain.Structure
	err := sqlx.SelectContext(ctx, r.db, &structures, query, userID)
	return structures, err
}

func (r *structureRepository) SetAvatar(ctx context.Context, structureID int64, avatarURL string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE structures SET avatar_url = $2, updated_at = NOW() WHERE id = $1`, structureID, avatarURL)
	return err
}
