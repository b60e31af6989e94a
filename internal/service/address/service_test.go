package address_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tickly/internal/domain"
	"tickly/internal/mocks"
	"tickly/internal/repository"
	"tickly/internal/service/address"
)

func newAddressService() (address.Service, *mocks.AddressRepository) {
	addressRepo := new(mocks.AddressRepository)
	repos := &repository.Repositories{Address: addressRepo}
	return address.NewService(repos), addressRepo
}

func TestAddressService_Create(t *testing.T) {
	svc, addressRepo := newAddressService()
	ctx := context.Background()

	addressRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.Address) bool {
		return a.City == "Paris" && a.Country == "France" && a.Postcode == "75001"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Address).ID = 3
	}).Return(nil).Once()

	created, err := svc.Create(ctx, domain.CreateAddressInput{
		Country:  "France",
		City:     "Paris",
		StreetL1: "1 rue de Rivoli",
		Postcode: "75001",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	addressRepo.AssertExpectations(t)
}

func TestAddressService_DeleteNotFound(t *testing.T) {
	svc, addressRepo := newAddressService()
	ctx := context.Background()

	addressRepo.On("GetByID", ctx, int64(404)).Return(nil, nil).Once()

	err := svc.Delete(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrAddressNotFound)
	addressRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAddressService_Delete(t *testing.T) {
	svc, addressRepo := newAddressService()
	ctx := context.Background()

	addressRepo.On("GetByID", ctx, int64(3)).Return(&domain.Address{ID: 3}, nil).Once()
	addressRepo.On("Delete", ctx, int64(3)).Return(nil).Once()

	require.NoError(t, svc.Delete(ctx, 3))
	addressRepo.AssertExpectations(t)
}

func TestAddressService_UpdateMergesFields(t *testing.T) {
	svc, addressRepo := newAddressService()
	ctx := context.Background()

	existing := &domain.Address{ID: 3, Country: "France", City: "Paris", StreetL1: "1 rue de Rivoli", Postcode: "75001"}
	addressRepo.On("GetByID", ctx, int64(3)).Return(existing, nil).Once()
	addressRepo.On("Update", ctx, mock.MatchedBy(func(a *domain.Address) bool {
		return a.City == "Lyon" && a.Country == "France"
	})).Return(nil).Once()

	newCity := "Lyon"
	updated, err := svc.Update(ctx, 3, domain.UpdateAddressInput{City: &newCity})

	require.NoError(t, err)
	assert.Equal(t, "Lyon", updated.City)
	assert.Equal(t, "France", updated.Country)
}
