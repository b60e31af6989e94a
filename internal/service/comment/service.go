package comment

import (
	"context"

	"github.com/sirupsen/logrus"

	"tickly/internal/domain"
	"tickly/internal/repository"
	"tickly/internal/service/email"
)

type Service interface {
	Create(ctx context.Context, ticketID, authorID int64, input domain.CreateCommentInput) (*domain.Comment, error)
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	ListByTicket(ctx context.Context, ticketID int64, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error)
	Update(ctx context.Context, id, actorID int64, input domain.UpdateCommentInput) (*domain.Comment, error)
	Delete(ctx context.Context, id, actorID int64) error
}

type service struct {
	repos    *repository.Repositories
	emailSvc email.Service
	log      *logrus.Logger
}

func NewService(repos *repository.Repositories, emailSvc email.Service, log *logrus.Logger) Service {
	return &service{repos: repos, emailSvc: emailSvc, log: log}
}

func (s *service) Create(ctx context.Context, ticketID, authorID int64, input domain.CreateCommentInput) (*domain.Comment, error) {
	ticket, err := s.repos.Ticket.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrTicketNotFound
	}

	comment := &domain.Comment{
		Content:  input.Content,
		TicketID: ticketID,
		AuthorID: authorID,
	}
	if err := s.repos.Comment.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.notifyAuthor(ticket, comment)
	return comment, nil
}

// notifyAuthor emails the ticket author about a new comment on their ticket,
// unless they wrote it themselves. Delivery failures are logged, not returned.
func (s *service) notifyAuthor(ticket *domain.Ticket, comment *domain.Comment) {
	if s.emailSvc == nil || ticket.AuthorID == comment.AuthorID {
		return
	}
	go func() {
		author, err := s.repos.User.GetByID(context.Background(), ticket.AuthorID)
		if err != nil || author == nil || author.Email == nil {
			return
		}
		commenter, err := s.repos.User.GetByID(context.Background(), comment.AuthorID)
		if err != nil || commenter == nil {
			return
		}
		if err := s.emailSvc.SendNewCommentEmail(context.Background(),
			*author.Email, author.DisplayName(), commenter.DisplayName(), ticket.Title); err != nil && s.log != nil {
			s.log.WithError(err).Warn("failed to send comment notification")
		}
	}()
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	comment, err := s.repos.Comment.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, domain.ErrCommentNotFound
	}
	return comment, nil
}

func (s *service) ListByTicket(ctx context.Context, ticketID int64, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error) {
	ticket, err := s.repos.Ticket.GetByID(ctx, ticketID)
	if err != nil {
		return domain.PaginatedResponse[domain.Comment]{}, err
	}
	if ticket == nil {
		return domain.PaginatedResponse[domain.Comment]{}, domain.ErrTicketNotFound
	}

	params.Validate()
	comments, total, err := s.repos.Comment.ListByTicket(ctx, ticketID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Comment]{}, err
	}
	return domain.NewPaginatedResponse(comments, params.Page, params.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, id, actorID int64, input domain.UpdateCommentInput) (*domain.Comment, error) {
	comment, err := s.repos.Comment.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, domain.ErrCommentNotFound
	}
	if comment.AuthorID != actorID {
		return nil, domain.ErrNotCommentAuthor
	}

	comment.Content = input.Content
	if err := s.repos.Comment.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *service) Delete(ctx context.Context, id, actorID int64) error {
	comment, err := s.repos.Comment.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comment == nil {
		return domain.ErrCommentNotFound
	}
	if comment.AuthorID != actorID {
		return domain.ErrNotCommentAuthor
	}
	return s.repos.Comment.Delete(ctx, id)
}
