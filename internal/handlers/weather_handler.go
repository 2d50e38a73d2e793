package handlers

import (
	"sproutlog/internal/middleware"
	"sproutlog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// WeatherHandler exposes the stored daily weather for the session zip.
type WeatherHandler struct {
	service *services.WeatherService
}

func NewWeatherHandler(service *services.WeatherService) *WeatherHandler {
	return &WeatherHandler{service: service}
}

func (h *WeatherHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/weather/today", h.HandleToday)
}

// HandleToday returns today's record or 404 when none was stored.
func (h *WeatherHandler) HandleToday(c *fiber.Ctx) error {
	record, err := h.service.Today(middleware.Zip(c))
	if err != nil {
		return respondError(c, err, "No weather recorded today")
	}
	return c.JSON(record)
}
