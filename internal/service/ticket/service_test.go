package ticket_test

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tickly/internal/domain"
	"tickly/internal/mocks"
	"tickly/internal/repository"
	"tickly/internal/service/ticket"
)

type ticketMocks struct {
	ticketRepo    *mocks.TicketRepository
	userRepo      *mocks.UserRepository
	structureRepo *mocks.StructureRepository
	auditRepo     *mocks.AuditLogRepository
}

func newTicketService() (ticket.Service, *ticketMocks) {
	svc, m, _ := newTicketServiceWithEmail(nil)
	return svc, m
}

func newTicketServiceWithEmail(emailSvc *mocks.EmailService) (ticket.Service, *ticketMocks, *mocks.EmailService) {
	m := &ticketMocks{
		ticketRepo:    new(mocks.TicketRepository),
		userRepo:      new(mocks.UserRepository),
		structureRepo: new(mocks.StructureRepository),
		auditRepo:     new(mocks.AuditLogRepository),
	}
	repos := &repository.Repositories{
		Ticket:    m.ticketRepo,
		User:      m.userRepo,
		Structure: m.structureRepo,
		AuditLog:  m.auditRepo,
	}
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	if emailSvc == nil {
		return ticket.NewService(repos, nil, nil, nil, log), m, nil
	}
	return ticket.NewService(repos, nil, nil, emailSvc, log), m, emailSvc
}

func author(id int64) *domain.User {
	return &domain.User{ID: id, Firstname: "Jane", Lastname: "Doe"}
}

func (m *ticketMocks) expectHydration() {
	m.userRepo.On("ListByIDs", mock.Anything, mock.Anything).Return([]domain.User{*author(1)}, nil).Maybe()
	m.structureRepo.On("ListByIDs", mock.Anything, mock.Anything).Return([]domain.Structure(nil), nil).Maybe()
}

func TestTicketService_Create(t *testing.T) {
	svc, m := newTicketService()
	ctx := context.Background()

	m.ticketRepo.On("Create", ctx, mock.MatchedBy(func(tk *domain.Ticket) bool {
		return tk.Title == "Broken printer" && tk.Status == domain.TicketStatusOpen && tk.AuthorID == 1
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Ticket).ID = 10
	}).Return(nil).Once()

	m.auditRepo.On("ListByEntityAsc", ctx, int64(10), domain.TableTicket).Return([]domain.AuditLog(nil), nil).Once()
	m.auditRepo.On("Insert", ctx, mock.MatchedBy(func(l *domain.AuditLog) bool {
		return l.Action == domain.ActionCreate && l.LinkedID == 10 && len(l.Values) == 0
	})).Return(nil).Once()
	m.expectHydration()

	created, err := svc.Create(ctx, 1, domain.CreateTicketInput{
		Title:       "Broken printer",
		Description: "It is on fire",
		Priority:    "HIGH",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ID)
	assert.Equal(t, domain.TicketStatusOpen, created.Status)
	m.ticketRepo.AssertExpectations(t)
	m.auditRepo.AssertExpectations(t)
}

func TestTicketService_UpdateWithoutRealChangesSkipsAudit(t *testing.T) {
	svc, m := newTicketService()
	ctx := context.Background()

	existing := &domain.Ticket{ID: 10, Title: "Same title", Status: "OPEN", Priority: "LOW", AuthorID: 1}
	m.ticketRepo.On("GetByID", ctx, int64(10)).Return(existing, nil).Once()
	m.ticketRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
	m.expectHydration()

	sameTitle := "Same title"
	_, err := svc.Update(ctx, 10, 1, domain.UpdateTicketInput{Title: &sameTitle})

	require.NoError(t, err)
	m.auditRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	m.auditRepo.AssertNotCalled(t, "ListByEntityAsc", mock.Anything, mock.Anything, mock.Anything)
}

func TestTicketService_UpdateRecordsChangedFields(t *testing.T) {
	svc, m := newTicketService()
	ctx := context.Background()

	existing := &domain.Ticket{ID: 10, Title: "Old", Status: "OPEN", Priority: "LOW", AuthorID: 1}
	m.ticketRepo.On("GetByID", ctx, int64(10)).Return(existing, nil).Once()
	m.ticketRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
	m.auditRepo.On("ListByEntityAsc", ctx, int64(10), domain.TableTicket).Return([]domain.AuditLog(nil), nil).Once()

	var recorded *domain.AuditLog
	m.auditRepo.On("Insert", ctx, mock.Anything).Run(func(args mock.Arguments) {
		recorded = args.Get(1).(*domain.AuditLog)
	}).Return(nil).Once()
	m.expectHydration()

	newTitle := "New"
	newStatus := "OPEN" // unchanged, must be dropped
	updated, err := svc.Update(ctx, 10, 2, domain.UpdateTicketInput{Title: &newTitle, Status: &newStatus})

	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	require.NotNil(t, recorded)
	assert.Equal(t, domain.ActionUpdate, recorded.Action)
	require.Len(t, recorded.Values, 1)
	assert.Equal(t, "title", recorded.Values[0].Field)
	assert.Equal(t, "Old", *recorded.Values[0].PreviousValue)
	assert.Equal(t, "New", *recorded.Values[0].NewValue)
}

func TestTicketService_UpdateStatusChangeEmailsAuthor(t *testing.T) {
	svc, m, emailSvc := newTicketServiceWithEmail(new(mocks.EmailService))
	ctx := context.Background()

	existing := &domain.Ticket{ID: 10, Title: "Broken printer", Status: "OPEN", AuthorID: 1}
	m.ticketRepo.On("GetByID", ctx, int64(10)).Return(existing, nil).Once()
	m.ticketRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
	m.auditRepo.On("ListByEntityAsc", ctx, int64(10), domain.TableTicket).Return([]domain.AuditLog(nil), nil).Once()
	m.auditRepo.On("Insert", ctx, mock.Anything).Return(nil).Once()

	authorEmail := "jane@corp.test"
	m.userRepo.On("ListByIDs", mock.Anything, mock.Anything).
		Return([]domain.User{{ID: 1, Firstname: "Jane", Lastname: "Doe", Email: &authorEmail}}, nil).Maybe()
	m.structureRepo.On("ListByIDs", mock.Anything, mock.Anything).Return([]domain.Structure(nil), nil).Maybe()

	sent := make(chan struct{})
	emailSvc.On("SendTicketStatusChanged", mock.Anything, "jane@corp.test", "Jane Doe", "Broken printer", "RESOLVED").
		Run(func(mock.Arguments) { close(sent) }).Return(nil).Once()

	newStatus := "RESOLVED"
	_, err := svc.Update(ctx, 10, 2, domain.UpdateTicketInput{Status: &newStatus})
	require.NoError(t, err)

	select {
	case <-sent:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a status change email to the ticket author")
	}
	emailSvc.AssertExpectations(t)
}

func TestTicketService_UpdateSameStatusSendsNoEmail(t *testing.T) {
	svc, m, emailSvc := newTicketServiceWithEmail(new(mocks.EmailService))
	ctx := context.Background()

	existing := &domain.Ticket{ID: 10, Title: "Broken printer", Status: "OPEN", AuthorID: 1}
	m.ticketRepo.On("GetByID", ctx, int64(10)).Return(existing, nil).Once()
	m.ticketRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
	m.expectHydration()

	sameStatus := "OPEN"
	_, err := svc.Update(ctx, 10, 2, domain.UpdateTicketInput{Status: &sameStatus})
	require.NoError(t, err)

	emailSvc.AssertNotCalled(t, "SendTicketStatusChanged",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTicketService_UpdateNotFound(t *testing.T) {
	svc, m := newTicketService()
	ctx := context.Background()

	m.ticketRepo.On("GetByID", ctx, int64(99)).Return(nil, nil).Once()

	newTitle := "x"
	_, err := svc.Update(ctx, 99, 1, domain.UpdateTicketInput{Title: &newTitle})
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestTicketService_AssignUserConflict(t *testing.T) {
	svc, m := newTicketService()
	ctx := context.Background()

	existing := &domain.Ticket{ID: 10, Title: "T", AuthorID: 1}
	m.ticketRepo.On("GetByID", ctx, int64(10)).Return(existing, nil).Once()
	m.ticketRepo.On("ListAssignees", ctx, int64(10)).Return([]domain.User{{ID: 5}}, nil).Once()

	_, err := svc.AssignUser(ctx, 10, 5, 1)

	assert.ErrorIs(t, err, domain.ErrUserAlreadyAssigned)
	m.ticketRepo.AssertNotCalled(t, "AddAssignee", mock.Anything, mock.Anything, mock.Anything)
	m.auditRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestTicketService_AssignUserRecordsAudit(t *testing.T) {
	svc, m := newTicketService()
	ctx := context.Background()

	existing := &domain.Ticket{ID: 10, Title: "T", AuthorID: 1}
	current := domain.User{ID: 5, Firstname: "Ada", Lastname: "Lovelace"}
	assignee := &domain.User{ID: 6, Firstname: "Alan", Lastname: "Turing"}

	m.ticketRepo.On("GetByID", ctx, int64(10)).Return(existing, nil).Once()
	m.ticketRepo.On("ListAssignees", ctx, int64(10)).Return([]domain.User{current}, nil).Once()
	m.userRepo.On("GetByID", ctx, int64(6)).Return(assignee, nil).Once()
	m.ticketRepo.On("AddAssignee", ctx, int64(10), int64(6)).Return(nil).Once()
	m.auditRepo.On("ListByEntityAsc", ctx, int64(10), domain.TableTicket).Return([]domain.AuditLog(nil), nil).Once()

	var recorded *domain.AuditLog
	m.auditRepo.On("Insert", ctx, mock.Anything).Run(func(args mock.Arguments) {
		recorded = args.Get(1).(*domain.AuditLog)
	}).Return(nil).Once()
	m.expectHydration()

	updated, err := svc.AssignUser(ctx, 10, 6, 1)

	require.NoError(t, err)
	assert.Len(t, updated.Assignees, 2)
	require.NotNil(t, recorded)
	assert.Equal(t, domain.ActionAssignUser, recorded.Action)
	require.Len(t, recorded.Values, 1)
	assert.Equal(t, "assignedUsers", recorded.Values[0].Field)
	assert.Equal(t, "Ada Lovelace", *recorded.Values[0].PreviousValue)
	assert.Equal(t, "Alan Turing", *recorded.Values[0].NewValue)
}

func TestTicketService_UnassignUserSilentNoOp(t *testing.T) {
	svc, m := newTicketService()
	ctx := context.Background()

	existing := &domain.Ticket{ID: 10, Title: "T", AuthorID: 1}
	m.ticketRepo.On("GetByID", ctx, int64(10)).Return(existing, nil).Once()
	m.ticketRepo.On("ListAssignees", ctx, int64(10)).Return([]domain.User{{ID: 5}}, nil).Once()
	m.expectHydration()

	_, err := svc.UnassignUser(ctx, 10, 99, 1)

	require.NoError(t, err)
	m.ticketRepo.AssertNotCalled(t, "RemoveAssignee", mock.Anything, mock.Anything, mock.Anything)
	m.auditRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestTicketService_UnassignLastUserWritesNullLiteral(t *testing.T) {
	svc, m := newTicketService()
	ctx := context.Background()

	existing := &domain.Ticket{ID: 10, Title: "T", AuthorID: 1}
	last := domain.User{ID: 5, Firstname: "Ada", Lastname: "Lovelace"}

	m.ticketRepo.On("GetByID", ctx, int64(10)).Return(existing, nil).Once()
	m.ticketRepo.On("ListAssignees", ctx, int64(10)).Return([]domain.User{last}, nil).Once()
	m.ticketRepo.On("RemoveAssignee", ctx, int64(10), int64(5)).Return(nil).Once()
	m.auditRepo.On("ListByEntityAsc", ctx, int64(10), domain.TableTicket).Return([]domain.AuditLog(nil), nil).Once()

	var recorded *domain.AuditLog
	m.auditRepo.On("Insert", ctx, mock.Anything).Run(func(args mock.Arguments) {
		recorded = args.Get(1).(*domain.AuditLog)
	}).Return(nil).Once()
	m.expectHydration()

	updated, err := svc.UnassignUser(ctx, 10, 5, 1)

	require.NoError(t, err)
	assert.Empty(t, updated.Assignees)
	require.NotNil(t, recorded)
	assert.Equal(t, domain.ActionUnassignUser, recorded.Action)
	require.Len(t, recorded.Values, 1)
	assert.Equal(t, "Ada Lovelace", *recorded.Values[0].PreviousValue)
	assert.Equal(t, "null", *recorded.Values[0].NewValue)
}

func TestTicketService_ListByAuthorEmptyIsNotFound(t *testing.T) {
	svc, m := newTicketService()
	ctx := context.Background()

	m.ticketRepo.On("ListByAuthor", ctx, int64(7)).Return([]domain.Ticket{}, nil).Once()

	_, err := svc.ListByAuthor(ctx, 7)
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestTicketService_GetByIDNotFound(t *testing.T) {
	svc, m := newTicketService()
	ctx := context.Background()

	m.ticketRepo.On("GetByID", ctx, int64(404)).Return(nil, nil).Once()

	_, err := svc.GetByID(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}
