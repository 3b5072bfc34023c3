// Package events defines the event types published on the pet topic.
package events

import "time"

// TopicPetEvents carries all pet lifecycle events.
const TopicPetEvents = "pet.events"

// Event types.
const (
	PetRegistered = "pet.registered"
	PetAdopted    = "pet.adopted"
)

// PetRegisteredEvent is published after a pet listing is persisted.
type PetRegisteredEvent struct {
	PetID      uint      `json:"pet_id"`
	OwnerID    uint      `json:"owner_id"`
	Nickname   string    `json:"nickname"`
	Species    string    `json:"species"`
	ImageCount int       `json:"image_count"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PetAdoptedEvent is published after an owner marks a pet adopted.
type PetAdoptedEvent struct {
	PetID      uint      `json:"pet_id"`
	OwnerID    uint      `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
