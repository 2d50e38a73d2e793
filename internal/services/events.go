package services

import (
	"encoding/json"
	"log"
)

// Routing keys for domain events.
const (
	EventUserRegistered  = "user.registered"
	EventWeatherRecorded = "weather.recorded"
	EventPlantAdded      = "inventory.planted"
	EventPlantHarvested  = "inventory.harvested"
	EventPlantRemoved    = "inventory.removed"
)

// EventPublisher is satisfied by the RabbitMQ client. A nil publisher turns
// events off.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// publishEvent never fails the calling operation; problems are only logged.
func publishEvent(pub EventPublisher, routingKey string, payload interface{}) {
	if pub == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := pub.Publish(routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", routingKey, err)
	}
}
