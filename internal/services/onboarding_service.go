package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sproutlog/internal/models"
	"sproutlog/internal/repositories"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// SignupRequest is what the operator types on the signup form.
type SignupRequest struct {
	Email       string   `json:"email" validate:"required,email,max=255"`
	DisplayName string   `json:"display_name" validate:"required,max=100"`
	Password    string   `json:"password" validate:"required,max=72"`
	ZipCode     string   `json:"zip_code" validate:"required,max=10"`
	Gardens     []string `json:"gardens" validate:"omitempty,dive,required,max=100"`
}

func (r *SignupRequest) normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.DisplayName = strings.TrimSpace(r.DisplayName)
	r.ZipCode = strings.TrimSpace(r.ZipCode)
	for i, name := range r.Gardens {
		r.Gardens[i] = strings.TrimSpace(name)
	}
}

type userRegisteredEvent struct {
	UserID  uint     `json:"user_id"`
	Email   string   `json:"email"`
	ZipCode string   `json:"zip_code"`
	Gardens []string `json:"gardens"`
}

// OnboardingService drives a Session from LoggedOut to the dashboard.
type OnboardingService struct {
	users    repositories.UserRepository
	gardens  repositories.GardenRepository
	weather  *WeatherService
	events   EventPublisher
	validate *validator.Validate
}

// NewOnboardingService creates a new OnboardingService.
func NewOnboardingService(users repositories.UserRepository, gardens repositories.GardenRepository, weather *WeatherService, events EventPublisher) *OnboardingService {
	return &OnboardingService{
		users:    users,
		gardens:  gardens,
		weather:  weather,
		events:   events,
		validate: validator.New(),
	}
}

// Signup registers a new user with their gardens and moves sess to the
// dashboard. An email that is already registered is treated as a login:
// the password must match, gardens and weather are left alone. On any other error sess is left in
// Onboarding, or untouched when the input did not validate.
func (s *OnboardingService) Signup(ctx context.Context, sess *Session, req SignupRequest) error {
	req.normalize()
	if err := validateStruct(s.validate, req); err != nil {
		return err
	}
	sess.State = StateOnboarding

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PasswordHash: string(hashedPassword),
		ZipCode:      req.ZipCode,
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return s.resume(sess, req)
		}
		return err
	}

	names := req.Gardens
	if len(names) == 0 {
		names = models.DefaultGardenNames
	}
	for _, name := range names {
		if err := s.gardens.Create(&models.Garden{UserID: user.ID, Name: name}); err != nil {
			return err
		}
	}

	loc, summary := s.weather.Refresh(ctx, req.ZipCode)

	sess.UserID = user.ID
	sess.Email = user.Email
	sess.ZipCode = req.ZipCode
	sess.LocationName = loc.Display()
	sess.Weather = summary
	sess.Returning = false
	sess.State = StateDashboard

	publishEvent(s.events, EventUserRegistered, userRegisteredEvent{
		UserID:  user.ID,
		Email:   user.Email,
		ZipCode: user.ZipCode,
		Gardens: names,
	})
	return nil
}

func (s *OnboardingService) resume(sess *Session, req SignupRequest) error {
	existing, err := s.users.GetByEmail(req.Email)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(req.Password)); err != nil {
		return ErrInvalidCredentials
	}

	sess.UserID = existing.ID
	sess.Email = existing.Email
	sess.ZipCode = req.ZipCode
	sess.LocationName = ExistingUserLocation
	sess.Weather = nil
	sess.Returning = true
	sess.State = StateDashboard
	return nil
}
