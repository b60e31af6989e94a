package handler

import (
	"github.com/gofiber/fiber/v2"

	"tickly/internal/domain"
	"tickly/internal/middleware"
	"tickly/internal/service/address"
)

type AddressHandler struct {
	addressService address.Service
}

func NewAddressHandler(addressService address.Service) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

func (h *AddressHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateAddressInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Country == "" || input.City == "" || input.StreetL1 == "" || input.Postcode == "" {
		return middleware.BadRequest("Country, city, street and postcode are required")
	}

	created, err := h.addressService.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *AddressHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	found, err := h.addressService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *AddressHandler) List(c *fiber.Ctx) error {
	result, err := h.addressService.List(c.Context(), parsePagination(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AddressHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdateAddressInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.addressService.Update(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.addressService.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
