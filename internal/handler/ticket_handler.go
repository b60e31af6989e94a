package handler

import (
	"github.com/gofiber/fiber/v2"

	"tickly/internal/domain"
	"tickly/internal/middleware"
	"tickly/internal/service/auditlog"
	"tickly/internal/service/ticket"
)

type TicketHandler struct {
	ticketService ticket.Service
	auditService  auditlog.Service
}

func NewTicketHandler(ticketService ticket.Service, auditService auditlog.Service) *TicketHandler {
	return &TicketHandler{ticketService: ticketService, auditService: auditService}
}

func (h *TicketHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateTicketInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Title == "" || input.Description == "" || input.Priority == "" {
		return middleware.BadRequest("Title, description and priority are required")
	}

	created, err := h.ticketService.Create(c.Context(), middleware.GetCurrentUserID(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *TicketHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	found, err := h.ticketService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *TicketHandler) List(c *fiber.Ctx) error {
	result, err := h.ticketService.List(c.Context(), parseListParams(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *TicketHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdateTicketInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.ticketService.Update(c.Context(), id, middleware.GetCurrentUserID(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *TicketHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.ticketService.Delete(c.Context(), id, middleware.GetCurrentUserID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *TicketHandler) AssignUser(c *fiber.Ctx) error {
	ticketID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}

	updated, err := h.ticketService.AssignUser(c.Context(), ticketID, userID, middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *TicketHandler) UnassignUser(c *fiber.Ctx) error {
	ticketID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}

	updated, err := h.ticketService.UnassignUser(c.Context(), ticketID, userID, middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *TicketHandler) ListByStructure(c *fiber.Ctx) error {
	structureID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	tickets, err := h.ticketService.ListByStructure(c.Context(), structureID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(tickets)
}

func (h *TicketHandler) ListByAuthor(c *fiber.Ctx) error {
	authorID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	tickets, err := h.ticketService.ListByAuthor(c.Context(), authorID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(tickets)
}

func (h *TicketHandler) OpenTickets(c *fiber.Ctx) error {
	count, tickets, err := h.ticketService.OpenTickets(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count":   count,
		"tickets": tickets,
	})
}

func (h *TicketHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.ticketService.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

func (h *TicketHandler) AuditLogs(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	logs, err := h.auditService.ListForTicket(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(logs)
}
