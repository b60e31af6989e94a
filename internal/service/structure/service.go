package structure

import (
	"context"

	"tickly/internal/audit"
	"tickly/internal/domain"
	"tickly/internal/query"
	"tickly/internal/repository"
)

type Service interface {
	Create(ctx context.Context, actorID int64, input domain.CreateStructureInput) (*domain.Structure, error)
	GetByID(ctx context.Context, id int64) (*domain.Structure, error)
	List(ctx context.Context, params query.Params) (domain.PaginatedResponse[domain.Structure], error)
	Update(ctx context.Context, id, actorID int64, input domain.UpdateStructureInput) (*domain.Structure, error)
	Delete(ctx context.Context, id int64) error
	AddUser(ctx context.Context, structureID, userID, actorID int64) (*domain.Structure, error)
	RemoveUser(ctx context.Context, structureID, userID, actorID int64) (*domain.Structure, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Structure, error)
}

type service struct {
	repos   *repository.Repositories
	builder *query.Builder
}

func NewService(repos *repository.Repositories, builder *query.Builder) Service {
	return &service{repos: repos, builder: builder}
}

func (s *service) Create(ctx context.Context, actorID int64, input domain.CreateStructureInput) (*domain.Structure, error) {
	if input.Address == nil {
		return nil, domain.ErrAddressRequired
	}

	structure := &domain.Structure{
		Name:    input.Name,
		Type:    input.Type,
		Service: input.Service,
		Email:   input.Email,
		Phone:   input.Phone,
	}

	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
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

		structure.AddressID = address.ID
		structure.Address = address
		if err := tx.Structure.Create(ctx, structure); err != nil {
			return err
		}

		tracker := audit.NewTracker(tx.AuditLog)
		return tracker.Record(ctx, actorID, structure.ID, domain.TableStructure, domain.ActionCreate, nil)
	})
	if err != nil {
		return nil, err
	}
	return structure, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.Structure, error) {
	structure, err := s.repos.Structure.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if structure == nil {
		return nil, domain.ErrStructureNotFound
	}
	return s.hydrate(ctx, structure)
}

func (s *service) List(ctx context.Context, params query.Params) (domain.PaginatedResponse[domain.Structure], error) {
	var structures []domain.Structure
	total, err := s.builder.List(ctx, query.KindStructures, &structures, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Structure]{}, err
	}

	for i := range structures {
		if _, err := s.hydrate(ctx, &structures[i]); err != nil {
			return domain.PaginatedResponse[domain.Structure]{}, err
		}
	}

	return domain.NewPaginatedResponse(structures, params.Pagination.Page, params.Pagination.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, id, actorID int64, input domain.UpdateStructureInput) (*domain.Structure, error) {
	var updated *domain.Structure

	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		existing, err := tx.Structure.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrStructureNotFound
		}

		changes := applyUpdate(existing, input)

		if err := tx.Structure.Update(ctx, existing); err != nil {
			return err
		}

		if input.Address != nil {
			if err := s.updateAddress(ctx, tx, existing.AddressID, input.Address); err != nil {
				return err
			}
		}

		tracker := audit.NewTracker(tx.AuditLog)
		if err := tracker.Record(ctx, actorID, existing.ID, domain.TableStructure, domain.ActionUpdate, changes); err != nil {
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

func applyUpdate(structure *domain.Structure, input domain.UpdateStructureInput) []domain.FieldChange {
	var changes []domain.FieldChange

	if input.Name != nil {
		changes = append(changes, audit.Change("name", structure.Name, *input.Name))
		structure.Name = *input.Name
	}
	if input.Type != nil {
		changes = append(changes, audit.Change("type", structure.Type, *input.Type))
		structure.Type = *input.Type
	}
	if input.Service != nil {
		changes = append(changes, audit.Change("service", structure.Service, input.Service))
		structure.Service = input.Service
	}
	if input.Email != nil {
		changes = append(changes, audit.Change("email", structure.Email, input.Email))
		structure.Email = input.Email
	}
	if input.Phone != nil {
		changes = append(changes, audit.Change("phone", structure.Phone, input.Phone))
		structure.Phone = input.Phone
	}

	return changes
}

func (s *service) updateAddress(ctx context.Context, tx *repository.Repositories, addressID int64, input *domain.UpdateAddressInput) error {
	address, err := tx.Address.GetByID(ctx, addressID)
	if err != nil {
		return err
	}
	if address == nil {
		return domain.ErrAddressNotFound
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

	return tx.Address.Update(ctx, address)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	existing, err := s.repos.Structure.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrStructureNotFound
	}
	return s.repos.Structure.Delete(ctx, id)
}

func (s *service) AddUser(ctx context.Context, structureID, userID, actorID int64) (*domain.Structure, error) {
	var structure *domain.Structure

	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		existing, err := tx.Structure.GetByID(ctx, structureID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrStructureNotFound
		}

		user, err := tx.User.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}

		if err := tx.User.AddToStructure(ctx, structureID, userID); err != nil {
			return err
		}

		tracker := audit.NewTracker(tx.AuditLog)
		if err := tracker.Record(ctx, actorID, structureID, domain.TableStructure, domain.ActionAddUser,
			[]domain.FieldChange{audit.Change("users", "", user.DisplayName())},
		); err != nil {
			return err
		}

		structure = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, structure)
}

func (s *service) RemoveUser(ctx context.Context, structureID, userID, actorID int64) (*domain.Structure, error) {
	var structure *domain.Structure

	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		existing, err := tx.Structure.GetByID(ctx, structureID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrStructureNotFound
		}

		user, err := tx.User.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}

		if err := tx.User.RemoveFromStructure(ctx, structureID, userID); err != nil {
			return err
		}

		tracker := audit.NewTracker(tx.AuditLog)
		if err := tracker.Record(ctx, actorID, structureID, domain.TableStructure, domain.ActionRemoveUser,
			[]domain.FieldChange{audit.Change("users", user.DisplayName(), "")},
		); err != nil {
			return err
		}

		structure = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, structure)
}

func (s *service) ListByUser(ctx context.Context, userID int64) ([]domain.Structure, error) {
	structures, err := s.repos.Structure.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range structures {
		if _, err := s.hydrate(ctx, &structures[i]); err != nil {
			return nil, err
		}
	}
	return structures, nil
}

func (s *service) hydrate(ctx context.Context, structure *domain.Structure) (*domain.Structure, error) {
	address, err := s.repos.Address.GetByID(ctx, structure.AddressID)
	if err != nil {
		return nil, err
	}
	structure.Address = address

	users, err := s.repos.User.ListByStructure(ctx, structure.ID)
	if err != nil {
		return nil, err
	}
	structure.Users = users

	return structure, nil
}
