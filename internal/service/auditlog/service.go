package auditlog

import (
	"context"

	"tickly/internal/audit"
	"tickly/internal/domain"
	"tickly/internal/repository"
)

// Service exposes the change history recorded for an entity.
type Service interface {
	ListForTicket(ctx context.Context, ticketID int64) ([]domain.AuditLog, error)
	ListForStructure(ctx context.Context, structureID int64) ([]domain.AuditLog, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.AuditLog, error)
}

type service struct {
	repos   *repository.Repositories
	tracker audit.Tracker
}

func NewService(repos *repository.Repositories) Service {
	return &service{repos: repos, tracker: audit.NewTracker(repos.AuditLog)}
}

func (s *service) ListForTicket(ctx context.Context, ticketID int64) ([]domain.AuditLog, error) {
	ticket, err := s.repos.Ticket.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrTicketNotFound
	}
	return s.tracker.List(ctx, ticketID, domain.TableTicket)
}

func (s *service) ListForStructure(ctx context.Context, structureID int64) ([]domain.AuditLog, error) {
	structure, err := s.repos.Structure.GetByID(ctx, structureID)
	if err != nil {
		return nil, err
	}
	if structure == nil {
		return nil, domain.ErrStructureNotFound
	}
	return s.tracker.List(ctx, structureID, domain.TableStructure)
}

func (s *service) ListForUser(ctx context.Context, userID int64) ([]domain.AuditLog, error) {
	user, err := s.repos.User.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return s.tracker.List(ctx, userID, domain.TableUser)
}
