package ticket

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"tickly/internal/audit"
	"tickly/internal/domain"
	"tickly/internal/query"
	"tickly/internal/repository"
	"tickly/internal/service/email"
)

const (
	statsCacheKey = "tickets:stats"
	statsCacheTTL = 5 * time.Minute
)

type Service interface {
	Create(ctx context.Context, actorID int64, input domain.CreateTicketInput) (*domain.Ticket, error)
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	List(ctx context.Context, params query.Params) (domain.PaginatedResponse[domain.Ticket], error)
	Update(ctx context.Context, id, actorID int64, input domain.UpdateTicketInput) (*domain.Ticket, error)
	Delete(ctx context.Context, id, actorID int64) error
	AssignUser(ctx context.Context, ticketID, userID, actorID int64) (*domain.Ticket, error)
	UnassignUser(ctx context.Context, ticketID, userID, actorID int64) (*domain.Ticket, error)
	ListByStructure(ctx context.Context, structureID int64) ([]domain.Ticket, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]domain.Ticket, error)
	OpenTickets(ctx context.Context) (int, []domain.Ticket, error)
	Stats(ctx context.Context) (*domain.TicketStats, error)
}

type service struct {
	repos    *repository.Repositories
	builder  *query.Builder
	redis    *redis.Client
	emailSvc email.Service
	log      *logrus.Logger
}

func NewService(repos *repository.Repositories, builder *query.Builder, redisClient *redis.Client, emailSvc email.Service, log *logrus.Logger) Service {
	return &service{
		repos:    repos,
		builder:  builder,
		redis:    redisClient,
		emailSvc: emailSvc,
		log:      log,
	}
}

func (s *service) Create(ctx context.Context, actorID int64, input domain.CreateTicketInput) (*domain.Ticket, error) {
	ticket := &domain.Ticket{
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.TicketStatusOpen,
		Priority:    input.Priority,
		Category:    input.Category,
		AuthorID:    actorID,
		StructureID: input.StructureID,
	}

	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		if err := tx.Ticket.Create(ctx, ticket); err != nil {
			return err
		}
		tracker := audit.NewTracker(tx.AuditLog)
		return tracker.Record(ctx, actorID, ticket.ID, domain.TableTicket, domain.ActionCreate, nil)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return s.hydrate(ctx, ticket)
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.repos.Ticket.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrTicketNotFound
	}

	assignees, err := s.repos.Ticket.ListAssignees(ctx, id)
	if err != nil {
		return nil, err
	}
	ticket.Assignees = assignees

	return s.hydrate(ctx, ticket)
}

func (s *service) List(ctx context.Context, params query.Params) (domain.PaginatedResponse[domain.Ticket], error) {
	var tickets []domain.Ticket
	total, err := s.builder.List(ctx, query.KindTickets, &tickets, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Ticket]{}, err
	}

	if err := s.hydrateAll(ctx, tickets); err != nil {
		return domain.PaginatedResponse[domain.Ticket]{}, err
	}

	return domain.NewPaginatedResponse(tickets, params.Pagination.Page, params.Pagination.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, id, actorID int64, input domain.UpdateTicketInput) (*domain.Ticket, error) {
	var updated *domain.Ticket
	var statusChanged bool

	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		existing, err := tx.Ticket.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrTicketNotFound
		}

		statusChanged = input.Status != nil && *input.Status != existing.Status
		changes := applyUpdate(existing, input)

		if err := tx.Ticket.Update(ctx, existing); err != nil {
			return err
		}

		tracker := audit.NewTracker(tx.AuditLog)
		if err := tracker.Record(ctx, actorID, existing.ID, domain.TableTicket, domain.ActionUpdate, changes); err != nil {
			return err
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	hydrated, err := s.hydrate(ctx, updated)
	if err != nil {
		return nil, err
	}
	if statusChanged {
		s.notifyStatusChange(hydrated)
	}
	return hydrated, nil
}

// applyUpdate copies the provided fields onto the ticket and returns the
// candidate audit pairs for exactly those fields, previous values taken
// before mutation.
func applyUpdate(ticket *domain.Ticket, input domain.UpdateTicketInput) []domain.FieldChange {
	var changes []domain.FieldChange

	if input.Title != nil {
		changes = append(changes, audit.Change("title", ticket.Title, *input.Title))
		ticket.Title = *input.Title
	}
	if input.Description != nil {
		changes = append(changes, audit.Change("description", ticket.Description, *input.Description))
		ticket.Description = *input.Description
	}
	if input.Status != nil {
		changes = append(changes, audit.Change("status", ticket.Status, *input.Status))
		ticket.Status = *input.Status
	}
	if input.Priority != nil {
		changes = append(changes, audit.Change("priority", ticket.Priority, *input.Priority))
		ticket.Priority = *input.Priority
	}
	if input.Category != nil {
		changes = append(changes, audit.Change("category", []string(ticket.Category), input.Category))
		ticket.Category = input.Category
	}
	if input.ArchivedAt != nil {
		changes = append(changes, audit.Change("archivedAt", ticket.ArchivedAt, input.ArchivedAt))
		ticket.ArchivedAt = input.ArchivedAt
	}
	if input.StructureID != nil {
		changes = append(changes, audit.Change("structureId", ticket.StructureID, input.StructureID))
		ticket.StructureID = input.StructureID
	}

	return changes
}

func (s *service) Delete(ctx context.Context, id, actorID int64) error {
	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		existing, err := tx.Ticket.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrTicketNotFound
		}

		if err := tx.Ticket.Delete(ctx, id); err != nil {
			return err
		}

		tracker := audit.NewTracker(tx.AuditLog)
		return tracker.Record(ctx, actorID, id, domain.TableTicket, domain.ActionDelete, nil)
	})
	if err != nil {
		return err
	}

	s.invalidateStats(ctx)
	return nil
}

func (s *service) AssignUser(ctx context.Context, ticketID, userID, actorID int64) (*domain.Ticket, error) {
	var ticket *domain.Ticket
	var assignee *domain.User

	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		existing, err := tx.Ticket.GetByID(ctx, ticketID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrTicketNotFound
		}

		assignees, err := tx.Ticket.ListAssignees(ctx, ticketID)
		if err != nil {
			return err
		}
		for _, assigned := range assignees {
			if assigned.ID == userID {
				return domain.ErrUserAlreadyAssigned
			}
		}

		assignee, err = tx.User.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if assignee == nil {
			return domain.ErrUserNotFound
		}

		if err := tx.Ticket.AddAssignee(ctx, ticketID, userID); err != nil {
			return err
		}

		tracker := audit.NewTracker(tx.AuditLog)
		if err := tracker.Record(ctx, actorID, ticketID, domain.TableTicket, domain.ActionAssignUser,
			[]domain.FieldChange{audit.Change("assignedUsers", displayNames(assignees), assignee.DisplayName())},
		); err != nil {
			return err
		}

		existing.Assignees = append(assignees, *assignee)
		ticket = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	s.notifyAssignment(ticket, assignee)
	return s.hydrate(ctx, ticket)
}

func (s *service) UnassignUser(ctx context.Context, ticketID, userID, actorID int64) (*domain.Ticket, error) {
	var ticket *domain.Ticket

	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		existing, err := tx.Ticket.GetByID(ctx, ticketID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrTicketNotFound
		}

		assignees, err := tx.Ticket.ListAssignees(ctx, ticketID)
		if err != nil {
			return err
		}

		assigned := false
		for _, a := range assignees {
			if a.ID == userID {
				assigned = true
				break
			}
		}
		// Unassigning someone who was never assigned is a silent no-op.
		if !assigned {
			existing.Assignees = assignees
			ticket = existing
			return nil
		}

		if err := tx.Ticket.RemoveAssignee(ctx, ticketID, userID); err != nil {
			return err
		}

		remaining := make([]domain.User, 0, len(assignees)-1)
		for _, a := range assignees {
			if a.ID != userID {
				remaining = append(remaining, a)
			}
		}

		newValue := "null"
		if len(remaining) > 0 {
			newValue = displayNames(remaining)
		}

		tracker := audit.NewTracker(tx.AuditLog)
		if err := tracker.Record(ctx, actorID, ticketID, domain.TableTicket, domain.ActionUnassignUser,
			[]domain.FieldChange{audit.Change("assignedUsers", displayNames(assignees), newValue)},
		); err != nil {
			return err
		}

		existing.Assignees = remaining
		ticket = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return s.hydrate(ctx, ticket)
}

func (s *service) ListByStructure(ctx context.Context, structureID int64) ([]domain.Ticket, error) {
	tickets, err := s.repos.Ticket.ListByStructure(ctx, structureID)
	if err != nil {
		return nil, err
	}
	if len(tickets) == 0 {
		return nil, domain.ErrTicketNotFound
	}
	if err := s.hydrateAll(ctx, tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *service) ListByAuthor(ctx context.Context, authorID int64) ([]domain.Ticket, error) {
	tickets, err := s.repos.Ticket.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if len(tickets) == 0 {
		return nil, domain.ErrTicketNotFound
	}
	if err := s.hydrateAll(ctx, tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *service) OpenTickets(ctx context.Context) (int, []domain.Ticket, error) {
	tickets, err := s.repos.Ticket.ListByStatus(ctx, domain.TicketStatusOpen)
	if err != nil {
		return 0, nil, err
	}
	if err := s.hydrateAll(ctx, tickets); err != nil {
		return 0, nil, err
	}
	return len(tickets), tickets, nil
}

func (s *service) Stats(ctx context.Context) (*domain.TicketStats, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var stats domain.TicketStats
			if err := json.Unmarshal(cached, &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.computeStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.redis.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
				s.log.WithError(err).Warn("failed to cache ticket stats")
			}
		}
	}
	return stats, nil
}

func (s *service) computeStats(ctx context.Context) (*domain.TicketStats, error) {
	topAuthors, err := s.repos.Ticket.TopAuthors(ctx, 5)
	if err != nil {
		return nil, err
	}
	authorIDs := make([]int64, 0, len(topAuthors))
	for _, c := range topAuthors {
		authorIDs = append(authorIDs, c.AuthorID)
	}
	authors, err := s.repos.User.ListByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	for i := range topAuthors {
		for j := range authors {
			if authors[j].ID == topAuthors[i].AuthorID {
				topAuthors[i].Author = &authors[j]
				break
			}
		}
	}

	topStructures, err := s.repos.Ticket.TopStructures(ctx, 5)
	if err != nil {
		return nil, err
	}
	structureIDs := make([]int64, 0, len(topStructures))
	for _, c := range topStructures {
		structureIDs = append(structureIDs, c.StructureID)
	}
	structures, err := s.repos.Structure.ListByIDs(ctx, structureIDs)
	if err != nil {
		return nil, err
	}
	for i := range topStructures {
		for j := range structures {
			if structures[j].ID == topStructures[i].StructureID {
				topStructures[i].Structure = &structures[j]
				break
			}
		}
	}

	averages, err := s.computeAverages(ctx)
	if err != nil {
		return nil, err
	}

	byCategory, err := s.repos.Ticket.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.repos.Ticket.CountByPriority(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.TicketStats{
		TopTicketsByUser:      topAuthors,
		TopTicketsByStructure: topStructures,
		AverageTicketsCreated: *averages,
		TicketsByCategory:     byCategory,
		TicketsByPriority:     byPriority,
	}, nil
}

func (s *service) computeAverages(ctx context.Context) (*domain.TicketAverages, error) {
	total, err := s.repos.Ticket.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return &domain.TicketAverages{}, nil
	}

	now := time.Now()
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	yearEnd := yearStart.AddDate(1, 0, 0)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)
	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -int(now.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 7)

	yearCount, err := s.repos.Ticket.CountCreatedBetween(ctx, yearStart, yearEnd)
	if err != nil {
		return nil, err
	}
	monthCount, err := s.repos.Ticket.CountCreatedBetween(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	weekCount, err := s.repos.Ticket.CountCreatedBetween(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	return &domain.TicketAverages{
		AveragePerYear:  roundDiv(yearCount, int64(now.Year())),
		AveragePerMonth: roundDiv(monthCount, int64(now.Day())),
		AveragePerWeek:  roundDiv(weekCount, 7),
	}, nil
}

func roundDiv(count, divisor int64) int64 {
	if divisor == 0 {
		return 0
	}
	return (count + divisor/2) / divisor
}

func (s *service) invalidateStats(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, statsCacheKey).Err()
	}
}

// notifyStatusChange emails the ticket author when the status moves,
// best-effort.
func (s *service) notifyStatusChange(ticket *domain.Ticket) {
	if s.emailSvc == nil || ticket.Author == nil || ticket.Author.Email == nil {
		return
	}
	author := ticket.Author
	go func() {
		if err := s.emailSvc.SendTicketStatusChanged(context.Background(),
			*author.Email, author.DisplayName(), ticket.Title, ticket.Status); err != nil {
			s.log.WithError(err).Warn("failed to send status change email")
		}
	}()
}

func (s *service) notifyAssignment(ticket *domain.Ticket, assignee *domain.User) {
	if s.emailSvc == nil || assignee == nil || assignee.Email == nil {
		return
	}
	go func() {
		if err := s.emailSvc.SendTicketAssigned(context.Background(), *assignee.Email, assignee.DisplayName(), ticket.Title); err != nil {
			s.log.WithError(err).Warn("failed to send assignment email")
		}
	}()
}

// hydrate attaches the author and structure to a single ticket.
func (s *service) hydrate(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	tickets := []domain.Ticket{*ticket}
	if err := s.hydrateAll(ctx, tickets); err != nil {
		return nil, err
	}
	return &tickets[0], nil
}

func (s *service) hydrateAll(ctx context.Context, tickets []domain.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	authorIDs := make([]int64, 0, len(tickets))
	var structureIDs []int64
	for _, t := range tickets {
		authorIDs = append(authorIDs, t.AuthorID)
		if t.StructureID != nil {
			structureIDs = append(structureIDs, *t.StructureID)
		}
	}

	authors, err := s.repos.User.ListByIDs(ctx, authorIDs)
	if err != nil {
		return err
	}
	structures, err := s.repos.Structure.ListByIDs(ctx, structureIDs)
	if err != nil {
		return err
	}

	authorsByID := make(map[int64]*domain.User, len(authors))
	for i := range authors {
		authorsByID[authors[i].ID] = &authors[i]
	}
	structuresByID := make(map[int64]*domain.Structure, len(structures))
	for i := range structures {
		structuresByID[structures[i].ID] = &structures[i]
	}

	for i := range tickets {
		tickets[i].Author = authorsByID[tickets[i].AuthorID]
		if tickets[i].StructureID != nil {
			tickets[i].Structure = structuresByID[*tickets[i].StructureID]
		}
	}
	return nil
}

func displayNames(users []domain.User) string {
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.DisplayName())
	}
	return strings.Join(names, ", ")
}
