package user

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"tickly/internal/audit"
	"tickly/internal/domain"
	"tickly/internal/query"
	"tickly/internal/repository"
)

type Service interface {
	Create(ctx context.Context, actorID int64, input domain.CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	List(ctx context.Context, params query.Params) (domain.PaginatedResponse[domain.User], error)
	Update(ctx context.Context, id, actorID int64, input domain.UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	ListByStructure(ctx context.Context, structureID int64) ([]domain.User, error)
}

type service struct {
	repos   *repository.Repositories
	builder *query.Builder
}

func NewService(repos *repository.Repositories, builder *query.Builder) Service {
	return &service{repos: repos, builder: builder}
}

func (s *service) Create(ctx context.Context, actorID int64, input domain.CreateUserInput) (*domain.User, error) {
	// Employees are attached to at least one structure; everyone else
	// must carry a personal address.
	if input.JobType == domain.JobTypeEmployee {
		if len(input.StructureIDs) == 0 {
			return nil, domain.ErrStructureRequired
		}
	} else if input.Address == nil {
		return nil, domain.ErrAddressRequired
	}

	existing, err := s.repos.User.GetByLogin(ctx, input.Login)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrLoginTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Firstname: input.Firstname,
		Lastname:  input.Lastname,
		Login:     input.Login,
		Password:  string(hashed),
		Email:     input.Email,
		Phone:     input.Phone,
		Roles:     []string{domain.RoleClient},
		JobType:   input.JobType,
	}
	if user.JobType == "" {
		user.JobType = domain.JobTypeFreelancer
	}

	err = s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		if input.Address != nil {
			address := &domain.Address{
				Country:   input.Address.Country,
				City:      input.Address.City,
				StreetL1:  input.Address.StreetL1,
				StreetL2:  input.Address.StreetL2,
				Postcode:  input.Address.Postcode,
				Latitude:  input.Address.Latitude,
				Longitude: input.Address.Longitude,
			}
			if err := tx.Address.Create(ctx, address); err != nil {
				return err
			}
			user.AddressID = &address.ID
			user.Address = address
		}

		if err := tx.User.Create(ctx, user); err != nil {
			return err
		}

		for _, structureID := range input.StructureIDs {
			structure, err := tx.Structure.GetByID(ctx, structureID)
			if err != nil {
				return err
			}
			if structure == nil {
				return domain.ErrStructureNotFound
			}
			if err := tx.User.AddToStructure(ctx, structureID, user.ID); err != nil {
				return err
			}
		}

		tracker := audit.NewTracker(tx.AuditLog)
		return tracker.Record(ctx, actorID, user.ID, domain.TableUser, domain.ActionCreate, nil)
	})
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, user)
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repos.User.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return s.hydrate(ctx, user)
}

func (s *service) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	user, err := s.repos.User.GetByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return s.hydrate(ctx, user)
}

func (s *service) List(ctx context.Context, params query.Params) (domain.PaginatedResponse[domain.User], error) {
	var users []domain.User
	total, err := s.builder.List(ctx, query.KindUsers, &users, params)
	if err != nil {
		return domain.PaginatedResponse[domain.User]{}, err
	}

	for i := range users {
		if _, err := s.hydrate(ctx, &users[i]); err != nil {
			return domain.PaginatedResponse[domain.User]{}, err
		}
	}

	return domain.NewPaginatedResponse(users, params.Pagination.Page, params.Pagination.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, id, actorID int64, input domain.UpdateUserInput) (*domain.User, error) {
	var updated *domain.User

	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		existing, err := tx.User.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrUserNotFound
		}

		if input.Login != nil && *input.Login != existing.Login {
			taken, err := tx.User.GetByLogin(ctx, *input.Login)
			if err != nil {
				return err
			}
			if taken != nil {
				return domain.ErrLoginTaken
			}
		}

		changes, err := applyUpdate(existing, input)
		if err != nil {
			return err
		}

		if err := tx.User.Update(ctx, existing); err != nil {
			return err
		}

		tracker := audit.NewTracker(tx.AuditLog)
		if err := tracker.Record(ctx, actorID, existing.ID, domain.TableUser, domain.ActionUpdate, changes); err != nil {
			return err
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, updated)
}

func applyUpdate(user *domain.User, input domain.UpdateUserInput) ([]domain.FieldChange, error) {
	var changes []domain.FieldChange

	if input.Firstname != nil {
		changes = append(changes, audit.Change("firstname", user.Firstname, *input.Firstname))
		user.Firstname = *input.Firstname
	}
	if input.Lastname != nil {
		changes = append(changes, audit.Change("lastname", user.Lastname, *input.Lastname))
		user.Lastname = *input.Lastname
	}
	if input.Login != nil {
		changes = append(changes, audit.Change("login", user.Login, *input.Login))
		user.Login = *input.Login
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}
	if input.Email != nil {
		changes = append(changes, audit.Change("email", user.Email, input.Email))
		user.Email = input.Email
	}
	if input.Phone != nil {
		changes = append(changes, audit.Change("phone", user.Phone, input.Phone))
		user.Phone = input.Phone
	}
	if input.JobType != nil {
		changes = append(changes, audit.Change("jobType", user.JobType, *input.JobType))
		user.JobType = *input.JobType
	}
	if input.Roles != nil {
		changes = append(changes, audit.Change("roles",
			strings.Join(user.Roles, ","), strings.Join(input.Roles, ",")))
		user.Roles = input.Roles
	}

	return changes, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	existing, err := s.repos.User.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrUserNotFound
	}
	return s.repos.User.Delete(ctx, id)
}

func (s *service) ListByStructure(ctx context.Context, structureID int64) ([]domain.User, error) {
	structure, err := s.repos.Structure.GetByID(ctx, structureID)
	if err != nil {
		return nil, err
	}
	if structure == nil {
		return nil, domain.ErrStructureNotFound
	}
	return s.repos.User.ListByStructure(ctx, structureID)
}

func (s *service) hydrate(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.AddressID != nil {
		address, err := s.repos.Address.GetByID(ctx, *user.AddressID)
		if err != nil {
			return nil, err
		}
		user.Address = address
	}

	structures, err := s.repos.User.ListStructures(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Structures = structures

	return user, nil
}
