package services

import "time"

func (s *WeatherService) SetClock(now func() time.Time)   { s.now = now }
func (s *InventoryService) SetClock(now func() time.Time) { s.now = now }
func (s *TokenService) SetClock(now func() time.Time)     { s.now = now }
