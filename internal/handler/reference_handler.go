package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tickly/internal/domain"
	"tickly/internal/middleware"
	"tickly/internal/service/reference"
)

type ReferenceHandler struct {
	referenceService reference.Service
}

func NewReferenceHandler(referenceService reference.Service) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService}
}

func (h *ReferenceHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.referenceService.ListCategories(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(categories)
}

func (h *ReferenceHandler) CreateCategory(c *fiber.Ctx) error {
	var input domain.CreateCategoryInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Category == "" {
		return middleware.BadRequest("Category is required")
	}

	created, err := h.referenceService.CreateCategory(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ReferenceHandler) GetCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	category, err := h.referenceService.GetCategory(c.Context(), id)
	if err != nil {
		return refError(err)
	}
	return c.Status(fiber.StatusOK).JSON(category)
}

func (h *ReferenceHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input domain.CreateCategoryInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Category == "" {
		return middleware.BadRequest("Category is required")
	}

	updated, err := h.referenceService.UpdateCategory(c.Context(), id, input)
	if err != nil {
		return refError(err)
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *ReferenceHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.referenceService.DeleteCategory(c.Context(), id); err != nil {
		return refError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ReferenceHandler) ListPriorities(c *fiber.Ctx) error {
	priorities, err := h.referenceService.ListPriorities(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(priorities)
}

func (h *ReferenceHandler) CreatePriority(c *fiber.Ctx) error {
	var input domain.CreatePriorityInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Priority == "" {
		return middleware.BadRequest("Priority is required")
	}

	created, err := h.referenceService.CreatePriority(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ReferenceHandler) GetPriority(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	priority, err := h.referenceService.GetPriority(c.Context(), id)
	if err != nil {
		return refError(err)
	}
	return c.Status(fiber.StatusOK).JSON(priority)
}

func (h *ReferenceHandler) UpdatePriority(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input domain.CreatePriorityInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Priority == "" {
		return middleware.BadRequest("Priority is required")
	}

	updated, err := h.referenceService.UpdatePriority(c.Context(), id, input)
	if err != nil {
		return refError(err)
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *ReferenceHandler) DeletePriority(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.referenceService.DeletePriority(c.Context(), id); err != nil {
		return refError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ReferenceHandler) ListStatuses(c *fiber.Ctx) error {
	statuses, err := h.referenceService.ListStatuses(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(statuses)
}

func (h *ReferenceHandler) CreateStatus(c *fiber.Ctx) error {
	var input domain.CreateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Status == "" {
		return middleware.BadRequest("Status is required")
	}

	created, err := h.referenceService.CreateStatus(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ReferenceHandler) GetStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	status, err := h.referenceService.GetStatus(c.Context(), id)
	if err != nil {
		return refError(err)
	}
	return c.Status(fiber.StatusOK).JSON(status)
}

func (h *ReferenceHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input domain.CreateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Status == "" {
		return middleware.BadRequest("Status is required")
	}

	updated, err := h.referenceService.UpdateStatus(c.Context(), id, input)
	if err != nil {
		return refError(err)
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *ReferenceHandler) DeleteStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.referenceService.DeleteStatus(c.Context(), id); err != nil {
		return refError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func refError(err error) error {
	if errors.Is(err, reference.ErrNotFound) {
		return middleware.NotFound(err.Error())
	}
	return err
}
