package handlers

import (
	"fmt"
	"log"

	"sproutlog/internal/middleware"
	"sproutlog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// InventoryHandler handles HTTP requests for the plant inventory.
type InventoryHandler struct {
	service *services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(service *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// RegisterRoutes registers the inventory routes. router must already carry
// AuthRequired.
func (h *InventoryHandler) RegisterRoutes(router fiber.Router) {
	inventoryRoutes := router.Group("/inventory")
	inventoryRoutes.Get("/", h.HandleList)
	inventoryRoutes.Post("/", h.HandleAdd)
	inventoryRoutes.Patch("/:id/harvest", h.HandleHarvest)
	inventoryRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList lists the caller's plants; ?nickname= filters by substring.
func (h *InventoryHandler) HandleList(c *fiber.Ctx) error {
	rows, err := h.service.List(middleware.UserID(c), c.Query("nickname"))
	if err != nil {
		return respondError(c, err, "Could not retrieve inventory")
	}
	return c.JSON(rows)
}

// HandleAdd plants a new entry.
func (h *InventoryHandler) HandleAdd(c *fiber.Ctx) error {
	var req services.AddPlantRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing request body: %v", err)
		return badRequest(c, "Invalid request body", err)
	}

	entry, err := h.service.Add(middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err, "Could not add plant")
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// HandleHarvest marks a plant as harvested.
func (h *InventoryHandler) HandleHarvest(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err.Error(), nil)
	}
	if err := h.service.Harvest(middleware.UserID(c), id); err != nil {
		return respondError(c, err, fmt.Sprintf("Could not harvest plant %d", id))
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Plant %d marked as harvested", id),
	})
}

// HandleDelete removes a plant.
func (h *InventoryHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err.Error(), nil)
	}
	if err := h.service.Remove(middleware.UserID(c), id); err != nil {
		return respondError(c, err, fmt.Sprintf("Could not delete plant %d", id))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
