package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendTicketAssigned(ctx context.Context, toEmail, recipientName, ticketTitle string) error {
	args := m.Called(ctx, toEmail, recipientName, ticketTitle)
	return args.Error(0)
}

func (m *EmailService) SendTicketStatusChanged(ctx context.Context, toEmail, recipientName, ticketTitle, status string) error {
	args := m.Called(ctx, toEmail, recipientName, ticketTitle, status)
	return args.Error(0)
}

func (m *EmailService) SendNewCommentEmail(ctx context.Context, toEmail, recipientName, authorName, ticketTitle string) error {
	args := m.Called(ctx, toEmail, recipientName, authorName, ticketTitle)
	return args.Error(0)
}
