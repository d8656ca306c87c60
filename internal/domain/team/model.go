package team

import "fmt"

// Team is a club's entry in one sport's bracket.
type Team struct {
	ID      string
	ClubID  string
	SportID string
	Name    string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.SportID == "" {
		return fmt.Errorf("team sport id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
