package player

import (
	"fmt"
	"time"
)

// Player is a club member that can hold registrations.
type Player struct {
	ID         string
	ExternalID string
	Name       string
	Gender     string
	ClubID     string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.ExternalID == "" {
		return fmt.Errorf("player external id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	return nil
}

// Replacement is the record kept for a player brought in through a
// replacement request, keyed by external id.
type Replacement struct {
	ExternalID string
	Name       string
	Gender     string
	ClubID     string
	UpdatedAt  time.Time
}
