package handler

import (
	"github.com/gofiber/fiber/v2"

	"tickly/internal/domain"
	"tickly/internal/middleware"
	"tickly/internal/service/auditlog"
	"tickly/internal/service/structure"
	"tickly/internal/service/user"
)

type StructureHandler struct {
	structureService structure.Service
	userService      user.Service
	auditService     auditlog.Service
}

func NewStructureHandler(structureService structure.Service, userService user.Service, auditService auditlog.Service) *StructureHandler {
	return &StructureHandler{
		structureService: structureService,
		userService:      userService,
		auditService:     auditService,
	}
}

func (h *StructureHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateStructureInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Name == "" || input.Type == "" {
		return middleware.BadRequest("Name and type are required")
	}

	created, err := h.structureService.Create(c.Context(), middleware.GetCurrentUserID(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *StructureHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	found, err := h.structureService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *StructureHandler) List(c *fiber.Ctx) error {
	result, err := h.structureService.List(c.Context(), parseListParams(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *StructureHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdateStructureInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.structureService.Update(c.Context(), id, middleware.GetCurrentUserID(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *StructureHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.structureService.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *StructureHandler) AddUser(c *fiber.Ctx) error {
	structureID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}

	updated, err := h.structureService.AddUser(c.Context(), structureID, userID, middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *StructureHandler) RemoveUser(c *fiber.Ctx) error {
	structureID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}

	updated, err := h.structureService.RemoveUser(c.Context(), structureID, userID, middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *StructureHandler) ListUsers(c *fiber.Ctx) error {
	structureID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	users, err := h.userService.ListByStructure(c.Context(), structureID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

func (h *StructureHandler) AuditLogs(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	logs, err := h.auditService.ListForStructure(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(logs)
}
