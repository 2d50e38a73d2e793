package app

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"sproutlog/internal/config"
	"sproutlog/internal/database"
	"sproutlog/internal/handlers"
	"sproutlog/internal/middleware"
	"sproutlog/internal/repositories"
	"sproutlog/internal/services"
	"sproutlog/internal/weather/providers"
	"sproutlog/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// App owns the long-lived resources of one process and the services built
// on top of them.
type App struct {
	Config *config.Config
	DB     *gorm.DB

	Weather    *services.WeatherService
	Onboarding *services.OnboardingService
	Inventory  *services.InventoryService
	Gardens    *services.GardenService
	Tokens     *services.TokenService

	mq *rabbitmq.Client
}

// New opens the database and, when configured, the RabbitMQ connection. A
// broker that cannot be reached only disables events.
func New(cfg *config.Config) (*App, error) {
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	var mq *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mq, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: events disabled: %v", err)
			mq = nil
		}
	}

	var events services.EventPublisher
	if mq != nil {
		events = mq
	}
	a := NewWithDB(cfg, db, events)
	a.mq = mq
	return a, nil
}

// NewWithDB wires services over an already opened database.
func NewWithDB(cfg *config.Config, db *gorm.DB, events services.EventPublisher) *App {
	userRepo := repositories.NewGORMUserRepository(db)
	gardenRepo := repositories.NewGORMGardenRepository(db)
	speciesRepo := repositories.NewGORMSpeciesRepository(db)
	inventoryRepo := repositories.NewGORMInventoryRepository(db)
	weatherRepo := repositories.NewGORMWeatherRepository(db)

	httpCfg := providers.HTTPClientConfig{
		Client:  &http.Client{},
		Timeout: cfg.LookupTimeout,
	}
	geocoder := providers.NewZippopotamGeocoder(httpCfg, cfg.GeocoderBaseURL, cfg.FallbackLatitude, cfg.FallbackLongitude)
	forecaster := providers.NewOpenMeteoForecaster(httpCfg, cfg.ForecastBaseURL)

	weatherService := services.NewWeatherService(geocoder, forecaster, weatherRepo, events)
	return &App{
		Config:     cfg,
		DB:         db,
		Weather:    weatherService,
		Onboarding: services.NewOnboardingService(userRepo, gardenRepo, weatherService, events),
		Inventory:  services.NewInventoryService(inventoryRepo, gardenRepo, speciesRepo, events),
		Gardens:    services.NewGardenService(gardenRepo, speciesRepo),
		Tokens:     services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
	}
}

// EventsEnabled reports whether a broker connection is held.
func (a *App) EventsEnabled() bool {
	return a.mq != nil
}

// Router builds the HTTP API.
func (a *App) Router() *fiber.App {
	router := fiber.New(fiber.Config{AppName: "sproutlog"})
	router.Use(recover.New())
	router.Use(logger.New())

	router.Get("/health", a.handleHealth)

	apiV1 := router.Group("/api/v1")
	handlers.NewOnboardingHandler(a.Onboarding, a.Tokens).RegisterRoutes(apiV1)

	protectedRoutes := apiV1.Group("", middleware.AuthRequired(a.Tokens))
	handlers.NewInventoryHandler(a.Inventory).RegisterRoutes(protectedRoutes)
	handlers.NewGardenHandler(a.Gardens).RegisterRoutes(protectedRoutes)
	handlers.NewWeatherHandler(a.Weather).RegisterRoutes(protectedRoutes)

	return router
}

func (a *App) handleHealth(c *fiber.Ctx) error {
	status, health, dbState := fiber.StatusOK, "healthy", "connected"
	if sqlDB, err := a.DB.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
		status, health, dbState = fiber.StatusServiceUnavailable, "degraded", "unreachable"
	}
	eventsState := "disabled"
	if a.EventsEnabled() {
		eventsState = "connected"
	}
	return c.Status(status).JSON(fiber.Map{
		"status":   health,
		"time":     time.Now().Format(time.RFC3339),
		"database": dbState,
		"events":   eventsState,
	})
}

// Close releases the broker and database connections.
func (a *App) Close() error {
	var errs []error
	if a.mq != nil {
		if err := a.mq.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := database.Close(a.DB); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors while closing app: %v", errs)
	}
	return nil
}
