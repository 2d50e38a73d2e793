package services

import "sproutlog/internal/weather"

// State is a step of the onboarding flow.
type State string

const (
	StateLoggedOut  State = "logged_out"
	StateOnboarding State = "onboarding"
	StateDashboard  State = "dashboard"
)

// ExistingUserLocation is shown instead of a geocoded place when a returning
// user skips the weather refresh.
const ExistingUserLocation = "Existing User Location"

// Session is the state carried by one operator from signup to the dashboard.
type Session struct {
	State        State                 `json:"state"`
	UserID       uint                  `json:"user_id"`
	Email        string                `json:"email"`
	ZipCode      string                `json:"zip_code"`
	LocationName string                `json:"location_name"`
	Weather      *weather.DailySummary `json:"weather"`
	Returning    bool                  `json:"returning"`
}

func NewSession() *Session {
	return &Session{State: StateLoggedOut}
}

// Banner is the one-line weather header of the dashboard.
func (s *Session) Banner() string {
	return weather.Banner(s.LocationName, s.ZipCode, s.Weather)
}
