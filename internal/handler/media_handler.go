package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"tickly/internal/domain"
	"tickly/internal/middleware"
	"tickly/internal/service/media"
)

type MediaHandler struct {
	mediaService media.Service
}

func NewMediaHandler(mediaService media.Service) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	var input domain.CreateMediaInput
	input.TicketID = formID(c, "ticket_id")
	input.UserID = formID(c, "user_id")
	input.StructureID = formID(c, "structure_id")
	input.CommentID = formID(c, "comment_id")

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Unable to read uploaded file")
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	uploaded, err := h.mediaService.Upload(c.Context(), input, fileHeader.Filename, fileHeader.Size, mimeType, file)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(uploaded)
}

func formID(c *fiber.Ctx, name string) *int64 {
	value := c.FormValue(name)
	if value == "" {
		return nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

func (h *MediaHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	found, err := h.mediaService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *MediaHandler) List(c *fiber.Ctx) error {
	result, err := h.mediaService.List(c.Context(), parsePagination(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.mediaService.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
