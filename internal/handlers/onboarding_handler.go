package handlers

import (
	"log"

	"sproutlog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OnboardingHandler handles HTTP requests for signup.
type OnboardingHandler struct {
	onboarding *services.OnboardingService
	tokens     *services.TokenService
}

// NewOnboardingHandler creates a new OnboardingHandler.
func NewOnboardingHandler(onboarding *services.OnboardingService, tokens *services.TokenService) *OnboardingHandler {
	return &OnboardingHandler{onboarding: onboarding, tokens: tokens}
}

// RegisterRoutes registers the public signup route.
func (h *OnboardingHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/signup", h.HandleSignup)
}

// HandleSignup registers a user, or logs in a returning one, and answers
// with a dashboard token.
func (h *OnboardingHandler) HandleSignup(c *fiber.Ctx) error {
	var req services.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing signup request body: %v", err)
		return badRequest(c, "Invalid request body", err)
	}

	sess := services.NewSession()
	if err := h.onboarding.Signup(c.UserContext(), sess, req); err != nil {
		return respondError(c, err, "Could not complete signup")
	}

	token, err := h.tokens.Issue(sess)
	if err != nil {
		return respondError(c, err, "Could not issue token")
	}

	status := fiber.StatusCreated
	message := "Signup successful"
	if sess.Returning {
		status = fiber.StatusOK
		message = "Welcome back"
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"token":   token,
		"session": sess,
		"banner":  sess.Banner(),
	})
}
