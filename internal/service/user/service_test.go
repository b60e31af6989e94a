package user_test

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tickly/internal/domain"
	"tickly/internal/mocks"
	"tickly/internal/repository"
	"tickly/internal/service/user"
)

type userMocks struct {
	userRepo      *mocks.UserRepository
	structureRepo *mocks.StructureRepository
	addressRepo   *mocks.AddressRepository
	auditRepo     *mocks.AuditLogRepository
}

func newUserService() (user.Service, *userMocks) {
	m := &userMocks{
		userRepo:      new(mocks.UserRepository),
		structureRepo: new(mocks.StructureRepository),
		addressRepo:   new(mocks.AddressRepository),
		auditRepo:     new(mocks.AuditLogRepository),
	}
	repos := &repository.Repositories{
		User:      m.userRepo,
		Structure: m.structureRepo,
		Address:   m.addressRepo,
		AuditLog:  m.auditRepo,
	}
	return user.NewService(repos, nil), m
}

func (m *userMocks) expectHydration() {
	m.addressRepo.On("GetByID", mock.Anything, mock.Anything).Return(&domain.Address{ID: 1}, nil).Maybe()
	m.userRepo.On("ListStructures", mock.Anything, mock.Anything).Return([]domain.Structure(nil), nil).Maybe()
}

func validAddress() *domain.CreateAddressInput {
	return &domain.CreateAddressInput{
		Country:  "France",
		City:     "Lyon",
		StreetL1: "2 place Bellecour",
		Postcode: "69002",
	}
}

func TestUserService_CreateEmployeeNeedsStructure(t *testing.T) {
	svc, m := newUserService()

	_, err := svc.Create(context.Background(), 1, domain.CreateUserInput{
		Firstname: "Ada",
		Lastname:  "Lovelace",
		Login:     "ada",
		Password:  "engine1234",
		JobType:   domain.JobTypeEmployee,
	})

	assert.ErrorIs(t, err, domain.ErrStructureRequired)
	m.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_CreateNonEmployeeNeedsAddress(t *testing.T) {
	svc, m := newUserService()

	_, err := svc.Create(context.Background(), 1, domain.CreateUserInput{
		Firstname: "Ada",
		Lastname:  "Lovelace",
		Login:     "ada",
		Password:  "engine1234",
		JobType:   domain.JobTypeFreelancer,
	})

	assert.ErrorIs(t, err, domain.ErrAddressRequired)
	m.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_CreateLoginTaken(t *testing.T) {
	svc, m := newUserService()
	ctx := context.Background()

	m.userRepo.On("GetByLogin", ctx, "ada").Return(&domain.User{ID: 9, Login: "ada"}, nil).Once()

	_, err := svc.Create(ctx, 1, domain.CreateUserInput{
		Firstname: "Ada",
		Lastname:  "Lovelace",
		Login:     "ada",
		Password:  "engine1234",
		Address:   validAddress(),
	})

	assert.ErrorIs(t, err, domain.ErrLoginTaken)
}

func TestUserService_CreateDefaultsAndHashing(t *testing.T) {
	svc, m := newUserService()
	ctx := context.Background()

	m.userRepo.On("GetByLogin", ctx, "ada").Return(nil, nil).Once()
	m.addressRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Address).ID = 3
	}).Return(nil).Once()

	var stored *domain.User
	m.userRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.User)
		stored.ID = 7
	}).Return(nil).Once()

	m.auditRepo.On("ListByEntityAsc", ctx, int64(7), domain.TableUser).Return([]domain.AuditLog(nil), nil).Once()
	m.auditRepo.On("Insert", ctx, mock.MatchedBy(func(l *domain.AuditLog) bool {
		return l.Action == domain.ActionCreate && l.LinkedTable == domain.TableUser
	})).Return(nil).Once()
	m.expectHydration()

	created, err := svc.Create(ctx, 1, domain.CreateUserInput{
		Firstname: "Ada",
		Lastname:  "Lovelace",
		Login:     "ada",
		Password:  "engine1234",
		Address:   validAddress(),
	})

	require.NoError(t, err)
	assert.Equal(t, pq.StringArray{domain.RoleClient}, created.Roles)
	assert.Equal(t, domain.JobTypeFreelancer, created.JobType)
	require.NotNil(t, stored)
	assert.NotEqual(t, "engine1234", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("engine1234")))
	m.auditRepo.AssertExpectations(t)
}

func TestUserService_CreateEmployeeValidatesStructures(t *testing.T) {
	svc, m := newUserService()
	ctx := context.Background()

	m.userRepo.On("GetByLogin", ctx, "ada").Return(nil, nil).Once()
	m.userRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 7
	}).Return(nil).Once()
	m.structureRepo.On("GetByID", ctx, int64(404)).Return(nil, nil).Once()

	_, err := svc.Create(ctx, 1, domain.CreateUserInput{
		Firstname:    "Ada",
		Lastname:     "Lovelace",
		Login:        "ada",
		Password:     "engine1234",
		JobType:      domain.JobTypeEmployee,
		StructureIDs: []int64{404},
	})

	assert.ErrorIs(t, err, domain.ErrStructureNotFound)
	m.userRepo.AssertNotCalled(t, "AddToStructure", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_UpdateLoginConflict(t *testing.T) {
	svc, m := newUserService()
	ctx := context.Background()

	existing := &domain.User{ID: 7, Login: "ada"}
	m.userRepo.On("GetByID", ctx, int64(7)).Return(existing, nil).Once()
	m.userRepo.On("GetByLogin", ctx, "grace").Return(&domain.User{ID: 8, Login: "grace"}, nil).Once()

	newLogin := "grace"
	_, err := svc.Update(ctx, 7, 1, domain.UpdateUserInput{Login: &newLogin})

	assert.ErrorIs(t, err, domain.ErrLoginTaken)
	m.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_UpdatePasswordIsNotAudited(t *testing.T) {
	svc, m := newUserService()
	ctx := context.Background()

	existing := &domain.User{ID: 7, Login: "ada", Firstname: "Ada", Lastname: "Lovelace"}
	m.userRepo.On("GetByID", ctx, int64(7)).Return(existing, nil).Once()
	m.userRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
	m.expectHydration()

	newPassword := "newsecret123"
	_, err := svc.Update(ctx, 7, 1, domain.UpdateUserInput{Password: &newPassword})

	require.NoError(t, err)
	// A password-only update carries no auditable field change.
	m.auditRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(existing.Password), []byte("newsecret123")))
}

func TestUserService_UpdateRolesAuditedAsJoinedList(t *testing.T) {
	svc, m := newUserService()
	ctx := context.Background()

	existing := &domain.User{ID: 7, Login: "ada", Roles: []string{domain.RoleClient}}
	m.userRepo.On("GetByID", ctx, int64(7)).Return(existing, nil).Once()
	m.userRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
	m.auditRepo.On("ListByEntityAsc", ctx, int64(7), domain.TableUser).Return([]domain.AuditLog(nil), nil).Once()

	var recorded *domain.AuditLog
	m.auditRepo.On("Insert", ctx, mock.Anything).Run(func(args mock.Arguments) {
		recorded = args.Get(1).(*domain.AuditLog)
	}).Return(nil).Once()
	m.expectHydration()

	_, err := svc.Update(ctx, 7, 1, domain.UpdateUserInput{Roles: []string{"CLIENT", "ADMIN"}})

	require.NoError(t, err)
	require.NotNil(t, recorded)
	require.Len(t, recorded.Values, 1)
	assert.Equal(t, "roles", recorded.Values[0].Field)
	assert.Equal(t, "CLIENT", *recorded.Values[0].PreviousValue)
	assert.Equal(t, "CLIENT,ADMIN", *recorded.Values[0].NewValue)
}

func TestUserService_ListByStructureUnknownStructure(t *testing.T) {
	svc, m := newUserService()
	ctx := context.Background()

	m.structureRepo.On("GetByID", ctx, int64(404)).Return(nil, nil).Once()

	_, err := svc.ListByStructure(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrStructureNotFound)
}
