package registration

import (
	"github.com/riskibarqy/league-portal/internal/domain/player"
	"github.com/riskibarqy/league-portal/internal/domain/sport"
)

// Registration enters one player into one sport on behalf of a club.
type Registration struct {
	ID         string
	PlayerID   string
	SportID    string
	ClubID     string
	MainPlayer bool
}

// Detail is a registration joined with its player and sport.
type Detail struct {
	Registration
	Player player.Player
	Sport  sport.Sport
}
