package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"tickly/internal/config"
)

type Service interface {
	SendTicketAssigned(ctx context.Context, toEmail, recipientName, ticketTitle string) error
	SendTicketStatusChanged(ctx context.Context, toEmail, recipientName, ticketTitle, status string) error
	SendNewCommentEmail(ctx context.Context, toEmail, recipientName, authorName, ticketTitle string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

var assignedTemplate = template.Must(template.New("assigned").Parse(`
<h2>Hi {{.Name}},</h2>
<p>You have been assigned to the ticket <strong>{{.Title}}</strong>.</p>
<p><a href="{{.Link}}">Open the ticket</a> to get started.</p>`))

var statusTemplate = template.Must(template.New("status").Parse(`
<h2>Hi {{.Name}},</h2>
<p>The ticket <strong>{{.Title}}</strong> moved to status <strong>{{.Status}}</strong>.</p>
<p><a href="{{.Link}}">Open the ticket</a> for details.</p>`))

var commentTemplate = template.Must(template.New("comment").Parse(`
<h2>Hi {{.Name}},</h2>
<p>{{.Author}} commented on the ticket <strong>{{.Title}}</strong>.</p>
<p><a href="{{.Link}}">Read the comment</a>.</p>`))

func (s *service) sendEmail(toEmail, subject string, tmpl *template.Template, data interface{}) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Tickly <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendTicketAssigned(ctx context.Context, toEmail, recipientName, ticketTitle string) error {
	data := struct {
		Name  string
		Title string
		Link  string
	}{
		Name:  recipientName,
		Title: ticketTitle,
		Link:  fmt.Sprintf("http://%s/tickets", s.config.Domain),
	}
	return s.sendEmail(toEmail, fmt.Sprintf("You were assigned to %q", ticketTitle), assignedTemplate, data)
}

func (s *service) SendTicketStatusChanged(ctx context.Context, toEmail, recipientName, ticketTitle, status string) error {
	data := struct {
		Name   string
		Title  string
		Status string
		Link   string
	}{
		Name:   recipientName,
		Title:  ticketTitle,
		Status: status,
		Link:   fmt.Sprintf("http://%s/tickets", s.config.Domain),
	}
	return s.sendEmail(toEmail, fmt.Sprintf("Ticket %q is now %s", ticketTitle, status), statusTemplate, data)
}

func (s *service) SendNewCommentEmail(ctx context.Context, toEmail, recipientName, authorName, ticketTitle string) error {
	data := struct {
		Name   string
		Author string
		Title  string
		Link   string
	}{
		Name:   recipientName,
		Author: authorName,
		Title:  ticketTitle,
		Link:   fmt.Sprintf("http://%s/tickets", s.config.Domain),
	}
	return s.sendEmail(toEmail, fmt.Sprintf("New comment on %q", ticketTitle), commentTemplate, data)
}
