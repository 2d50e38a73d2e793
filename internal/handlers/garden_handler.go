package handlers

import (
	"log"

	"sproutlog/internal/middleware"
	"sproutlog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// GardenHandler serves gardens and the species list.
type GardenHandler struct {
	service *services.GardenService
}

func NewGardenHandler(service *services.GardenService) *GardenHandler {
	return &GardenHandler{service: service}
}

func (h *GardenHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/gardens", h.HandleListGardens)
	router.Post("/gardens", h.HandleCreateGarden)
	router.Get("/species", h.HandleListSpecies)
}

func (h *GardenHandler) HandleListGardens(c *fiber.Ctx) error {
	gardens, err := h.service.ListGardens(middleware.UserID(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve gardens")
	}
	return c.JSON(gardens)
}

func (h *GardenHandler) HandleCreateGarden(c *fiber.Ctx) error {
	var req services.CreateGardenRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing request body: %v", err)
		return badRequest(c, "Invalid request body", err)
	}
	garden, err := h.service.CreateGarden(middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err, "Could not create garden")
	}
	return c.Status(fiber.StatusCreated).JSON(garden)
}

func (h *GardenHandler) HandleListSpecies(c *fiber.Ctx) error {
	species, err := h.service.ListSpecies()
	if err != nil {
		return respondError(c, err, "Could not retrieve species")
	}
	return c.JSON(species)
}
