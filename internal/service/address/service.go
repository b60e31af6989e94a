package address

import (
	"context"

	"tickly/internal/domain"
	"tickly/internal/repository"
)

type Service interface {
	Create(ctx context.Context, input domain.CreateAddressInput) (*domain.Address, error)
	GetByID(ctx context.Context, id int64) (*domain.Address, error)
	Update(ctx context.Context, id int64, input domain.UpdateAddressInput) (*domain.Address, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Address], error)
}

type service struct {
	repos *repository.Repositories
}

func NewService(repos *repository.Repositories) Service {
	return &service{repos: repos}
}

func (s *service) Create(ctx context.Context, input domain.CreateAddressInput) (*domain.Address, error) {
	address := &domain.Address{
		Country:   input.Country,
		City:      input.City,
		StreetL1:  input.StreetL1,
		StreetL2:  input.StreetL2,
		Postcode:  input.Postcode,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	}
	if err := s.repos.Address.Create(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.Address, error) {
	address, err := s.repos.Address.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, domain.ErrAddressNotFound
	}
	return address, nil
}

func (s *service) Update(ctx context.Context, id int64, input domain.UpdateAddressInput) (*domain.Address, error) {
	address, err := s.repos.Address.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, domain.ErrAddressNotFound
	}

	if input.Country != nil {
		address.Country = *input.Country
	}
	if input.City != nil {
		address.City = *input.City
	}
	if input.StreetL1 != nil {
		address.StreetL1 = *input.StreetL1
	}
	if input.StreetL2 != nil {
		address.StreetL2 = input.StreetL2
	}
	if input.Postcode != nil {
		address.Postcode = *input.Postcode
	}
	if input.Latitude != nil {
		address.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		address.Longitude = input.Longitude
	}

	if err := s.repos.Address.Update(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	address, err := s.repos.Address.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if address == nil {
		return domain.ErrAddressNotFound
	}
	return s.repos.Address.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Address], error) {
	params.Validate()
	addresses, total, err := s.repos.Address.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Address]{}, err
	}
	return domain.NewPaginatedResponse(addresses, params.Page, params.PageSize, total), nil
}
