package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"tickly/internal/domain"
	"tickly/internal/middleware"
	"tickly/internal/service/auditlog"
)

type AuditLogHandler struct {
	auditService auditlog.Service
}

func NewAuditLogHandler(auditService auditlog.Service) *AuditLogHandler {
	return &AuditLogHandler{auditService: auditService}
}

// List serves the change history of any tracked entity, addressed by
// table name and id.
func (h *AuditLogHandler) List(c *fiber.Ctx) error {
	id, err := parseID(c, "linkedId")
	if err != nil {
		return err
	}

	var logs []domain.AuditLog
	switch strings.ToUpper(c.Params("linkedTable")) {
	case domain.TableTicket, "TICKETS":
		logs, err = h.auditService.ListForTicket(c.Context(), id)
	case domain.TableStructure, "STRUCTURES":
		logs, err = h.auditService.ListForStructure(c.Context(), id)
	case domain.TableUser, "USERS":
		logs, err = h.auditService.ListForUser(c.Context(), id)
	default:
		return middleware.BadRequest("Unknown audit log table")
	}
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(logs)
}
