package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"tickly/internal/domain"
)

type AddressRepository interface {
	Create(ctx context.Context, address *domain.Address) error
	GetByID(ctx context.Context, id int64) (*domain.Address, error)
	Update(ctx context.Context, address *domain.Address) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Address, int64, error)
}

type addressRepository struct {
	db sqlx.ExtContext
}

func NewAddressRepository(db sqlx.ExtContext) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(ctx context.Context, address *domain.Address) error {
	query := `
		INSERT INTO addresses (country, city, street_l1, street_l2, postcode, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	return r.db.QueryRowxContext(ctx, query,
		address.Country, address.City, address.StreetL1, address.StreetL2,
		address.Postcode, address.Latitude, address.Longitude,
	).Scan(&address.ID)
}

func (r *addressRepository) GetByID(ctx context.Context, id int64) (*domain.Address, error) {
	var address domain.Address
	err := sqlx.GetContext(ctx, r.db, &address, `SELECT * FROM addresses WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) Update(ctx context.Context, address *domain.Address) error {
	query := `
		UPDATE addresses
		SET country = $2, city = $3, street_l1 = $4, street_l2 = $5,
			postcode = $6, latitude = $7, longitude = $8
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		address.ID, address.Country, address.City, address.StreetL1, address.StreetL2,
		address.Postcode, address.Latitude, address.Longitude)
	return err
}

func (r *addressRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	return err
}

func (r *addressRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Address, int64, error) {
	params.Validate()

	var total int64
	if err := sqlx.GetContext(ctx, r.db, &total, `SELECT COUNT(*) FROM addresses`); err != nil {
		return nil, 0, err
	}

	var addresses []domain.Address
	err := sqlx.SelectContext(ctx, r.db, &addresses,
		`SELECT * FROM addresses ORDER BY id LIMIT $1 OFFSET $2`, params.PageSize, params.Offset())
	return addresses, total, err
}
