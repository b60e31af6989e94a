package handler

import (
	"tickly/internal/config"
	"tickly/internal/service"
)

type Handlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	Structure *StructureHandler
	Ticket    *TicketHandler
	Comment   *CommentHandler
	Address   *AddressHandler
	Media     *MediaHandler
	Reference *ReferenceHandler
	AuditLog  *AuditLogHandler
}

func NewHandlers(services *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(services.Auth, cfg),
		User:      NewUserHandler(services.User, services.AuditLog),
		Structure: NewStructureHandler(services.Structure, services.User, services.AuditLog),
		Ticket:    NewTicketHandler(services.Ticket, services.AuditLog),
		Comment:   NewCommentHandler(services.Comment),
		Address:   NewAddressHandler(services.Address),
		Media:     NewMediaHandler(services.Media),
		Reference: NewReferenceHandler(services.Reference),
		AuditLog:  NewAuditLogHandler(services.AuditLog),
	}
}
