package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"sproutlog/internal/models"
	"sproutlog/internal/repositories"
	"sproutlog/internal/services"
	"sproutlog/internal/weather"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2024, time.May, 14, 9, 30, 0, 0, time.UTC)

type onboardingFixture struct {
	users      *MockUserRepository
	gardens    *MockGardenRepository
	weatherDB  *MockWeatherRepository
	geocoder   *MockGeocoder
	forecaster *MockForecaster
	events     *MockPublisher
	service    *services.OnboardingService
}

func newOnboardingFixture() *onboardingFixture {
	f := &onboardingFixture{
		users:      new(MockUserRepository),
		gardens:    new(MockGardenRepository),
		weatherDB:  new(MockWeatherRepository),
		geocoder:   new(MockGeocoder),
		forecaster: new(MockForecaster),
		events:     new(MockPublisher),
	}
	ws := services.NewWeatherService(f.geocoder, f.forecaster, f.weatherDB, f.events)
	ws.SetClock(func() time.Time { return fixedNow })
	f.service = services.NewOnboardingService(f.users, f.gardens, ws, f.events)
	return f
}

func validSignup() services.SignupRequest {
	return services.SignupRequest{
		Email:       "ada@example.com",
		DisplayName: "Ada",
		Password:    "s3cret",
		ZipCode:     "10001",
	}
}

func TestOnboardingService_Signup_InvalidInput(t *testing.T) {
	f := newOnboardingFixture()
	sess := services.NewSession()

	req := validSignup()
	req.Email = "   "
	req.ZipCode = ""

	err := f.service.Signup(context.Background(), sess, req)

	var vErr *services.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "Email")
	assert.Contains(t, vErr.Fields, "ZipCode")
	assert.Equal(t, services.StateLoggedOut, sess.State)
	f.users.AssertNotCalled(t, "Create", mock.Anything)
	f.geocoder.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestOnboardingService_Signup_NewUser(t *testing.T) {
	f := newOnboardingFixture()
	sess := services.NewSession()
	summary := &weather.DailySummary{MaxF: 78.4, MinF: 60.1, RainIn: 0.12, WindMph: 9.5}

	var created *models.User
	f.users.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.User)
		created.ID = 7
	}).Return(nil).Once()
	var gardenNames []string
	f.gardens.On("Create", mock.AnythingOfType("*models.Garden")).Run(func(args mock.Arguments) {
		g := args.Get(0).(*models.Garden)
		assert.Equal(t, uint(7), g.UserID)
		gardenNames = append(gardenNames, g.Name)
	}).Return(nil).Times(4)
	f.geocoder.On("Resolve", mock.Anything, "10001").
		Return(weather.Location{Latitude: 40.75, Longitude: -73.99, PlaceName: "New York City", State: "NY"}).Once()
	f.forecaster.On("Fetch", mock.Anything, 40.75, -73.99).Return(summary, nil).Once()
	f.weatherDB.On("Upsert", mock.MatchedBy(func(r *models.DailyWeather) bool {
		return r.ZipCode == "10001" &&
			r.RecordDate.Equal(time.Date(2024, time.May, 14, 0, 0, 0, 0, time.UTC)) &&
			r.TempMaxF == 78.4 && r.TempMinF == 60.1 &&
			r.PrecipitationInches == 0.12 && r.WindSpeedMph == 9.5
	})).Return(nil).Once()
	f.events.On("Publish", services.EventWeatherRecorded, mock.Anything).Return(nil).Once()
	f.events.On("Publish", services.EventUserRegistered, mock.Anything).Return(nil).Once()

	err := f.service.Signup(context.Background(), sess, validSignup())
	require.NoError(t, err)

	assert.Equal(t, services.StateDashboard, sess.State)
	assert.Equal(t, uint(7), sess.UserID)
	assert.Equal(t, "10001", sess.ZipCode)
	assert.Equal(t, "New York City, NY", sess.LocationName)
	assert.Equal(t, summary, sess.Weather)
	assert.False(t, sess.Returning)
	assert.Equal(t, models.DefaultGardenNames, gardenNames)

	require.NotNil(t, created)
	assert.NotEqual(t, "s3cret", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret")))

	f.users.AssertExpectations(t)
	f.gardens.AssertExpectations(t)
	f.weatherDB.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func TestOnboardingService_Signup_CustomGardens(t *testing.T) {
	f := newOnboardingFixture()
	sess := services.NewSession()
	req := validSignup()
	req.Gardens = []string{" Allotment "}

	f.users.On("Create", mock.Anything).Return(nil).Once()
	f.gardens.On("Create", mock.MatchedBy(func(g *models.Garden) bool { return g.Name == "Allotment" })).Return(nil).Once()
	f.geocoder.On("Resolve", mock.Anything, "10001").Return(weather.Location{Latitude: 1, Longitude: 2, PlaceName: "X"}).Once()
	f.forecaster.On("Fetch", mock.Anything, 1.0, 2.0).Return(nil, weather.ErrUnavailable).Once()
	f.events.On("Publish", services.EventUserRegistered, mock.Anything).Return(nil).Once()

	require.NoError(t, f.service.Signup(context.Background(), sess, req))
	f.gardens.AssertExpectations(t)
}

func TestOnboardingService_Signup_WeatherUnavailable(t *testing.T) {
	f := newOnboardingFixture()
	sess := services.NewSession()

	f.users.On("Create", mock.Anything).Return(nil).Once()
	f.gardens.On("Create", mock.Anything).Return(nil)
	f.geocoder.On("Resolve", mock.Anything, "10001").
		Return(weather.Location{Latitude: 39.32, Longitude: -82.10, PlaceName: weather.UnknownPlace}).Once()
	f.forecaster.On("Fetch", mock.Anything, 39.32, -82.10).
		Return(nil, fmt.Errorf("status 502: %w", weather.ErrUnavailable)).Once()
	// Publish failures never fail the signup.
	f.events.On("Publish", services.EventUserRegistered, mock.Anything).Return(errors.New("broker down")).Once()

	err := f.service.Signup(context.Background(), sess, validSignup())
	require.NoError(t, err)

	assert.Equal(t, services.StateDashboard, sess.State)
	assert.Nil(t, sess.Weather)
	assert.Equal(t, "unknown", sess.LocationName)
	assert.Equal(t, "Weather Data Unavailable", sess.Banner())
	f.weatherDB.AssertNotCalled(t, "Upsert", mock.Anything)
}

func TestOnboardingService_Signup_WeatherWriteFails(t *testing.T) {
	f := newOnboardingFixture()
	sess := services.NewSession()
	summary := &weather.DailySummary{MaxF: 70, MinF: 50}

	f.users.On("Create", mock.Anything).Return(nil).Once()
	f.gardens.On("Create", mock.Anything).Return(nil)
	f.geocoder.On("Resolve", mock.Anything, "10001").Return(weather.Location{PlaceName: "Here"}).Once()
	f.forecaster.On("Fetch", mock.Anything, 0.0, 0.0).Return(summary, nil).Once()
	f.weatherDB.On("Upsert", mock.Anything).Return(errors.New("disk full")).Once()
	f.events.On("Publish", services.EventUserRegistered, mock.Anything).Return(nil).Once()

	require.NoError(t, f.service.Signup(context.Background(), sess, validSignup()))
	assert.Equal(t, services.StateDashboard, sess.State)
	assert.Equal(t, summary, sess.Weather)
	f.events.AssertNotCalled(t, "Publish", services.EventWeatherRecorded, mock.Anything)
}

func TestOnboardingService_Signup_DuplicateEmail(t *testing.T) {
	f := newOnboardingFixture()
	sess := services.NewSession()

	f.users.On("Create", mock.Anything).
		Return(fmt.Errorf("failed to create user: %w", repositories.ErrDuplicateKey)).Once()
	f.users.On("GetByEmail", "ada@example.com").
		Return(existingUser(t, "s3cret"), nil).Once()

	err := f.service.Signup(context.Background(), sess, validSignup())
	require.NoError(t, err)

	assert.Equal(t, services.StateDashboard, sess.State)
	assert.Equal(t, uint(3), sess.UserID)
	assert.Equal(t, services.ExistingUserLocation, sess.LocationName)
	assert.Nil(t, sess.Weather)
	assert.True(t, sess.Returning)
	f.gardens.AssertNotCalled(t, "Create", mock.Anything)
	f.geocoder.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	f.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func existingUser(t *testing.T, password string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{ID: 3, Email: "ada@example.com", ZipCode: "45701", PasswordHash: string(hash)}
}

func TestOnboardingService_Signup_DuplicateEmailWrongPassword(t *testing.T) {
	f := newOnboardingFixture()
	sess := services.NewSession()

	f.users.On("Create", mock.Anything).Return(repositories.ErrDuplicateKey).Once()
	f.users.On("GetByEmail", "ada@example.com").Return(existingUser(t, "another-password"), nil).Once()

	err := f.service.Signup(context.Background(), sess, validSignup())
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	assert.Equal(t, services.StateOnboarding, sess.State)
	assert.Zero(t, sess.UserID)
	f.gardens.AssertNotCalled(t, "Create", mock.Anything)
}

func TestOnboardingService_Signup_PersistenceFailure(t *testing.T) {
	f := newOnboardingFixture()
	sess := services.NewSession()
	dbErr := errors.New("connection refused")

	f.users.On("Create", mock.Anything).Return(dbErr).Once()

	err := f.service.Signup(context.Background(), sess, validSignup())
	assert.Equal(t, dbErr, err)
	assert.Equal(t, services.StateOnboarding, sess.State)

	// A garden failure after the user exists also stops the flow.
	f2 := newOnboardingFixture()
	sess2 := services.NewSession()
	f2.users.On("Create", mock.Anything).Return(nil).Once()
	f2.gardens.On("Create", mock.Anything).Return(dbErr).Once()

	err = f2.service.Signup(context.Background(), sess2, validSignup())
	assert.Equal(t, dbErr, err)
	assert.Equal(t, services.StateOnboarding, sess2.State)
	f2.geocoder.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestOnboardingService_Signup_DuplicateLookupFails(t *testing.T) {
	f := newOnboardingFixture()
	sess := services.NewSession()
	lookupErr := fmt.Errorf("user with email ada@example.com: %w", repositories.ErrNotFound)

	f.users.On("Create", mock.Anything).Return(repositories.ErrDuplicateKey).Once()
	f.users.On("GetByEmail", "ada@example.com").Return(nil, lookupErr).Once()

	err := f.service.Signup(context.Background(), sess, validSignup())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Equal(t, services.StateOnboarding, sess.State)
}
