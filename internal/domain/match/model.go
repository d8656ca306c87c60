package match

import (
	"strings"
	"time"
)

// Placeholder is the display name of a team slot that has not been decided.
const Placeholder = "TBD"

// Slot identifies one of the two team positions of a match.
type Slot int

const (
	Slot1 Slot = 1
	Slot2 Slot = 2
)

// Match is one node of a single-elimination bracket. Empty reference fields
// mean the reference is unset.
type Match struct {
	ID             string
	SportID        string
	Team1ID        string
	Team2ID        string
	Team1Name      string
	Team2Name      string
	Team1Score     int
	Team2Score     int
	RoundID        int
	MatchOrder     int
	ParentMatch1ID string
	ParentMatch2ID string
	StartTime      *time.Time
}

// HasTeams reports whether both slots hold a real team.
func (m Match) HasTeams() bool {
	return isSet(m.Team1ID) && isSet(m.Team2ID)
}

func isSet(teamID string) bool {
	v := strings.TrimSpace(teamID)
	return v != "" && !strings.EqualFold(v, Placeholder)
}

// Winner returns the winning team id, or false when the result is a draw or
// either side has not scored.
func Winner(team1ID, team2ID string, score1, score2 int) (string, bool) {
	if score1 == score2 || score1 == 0 || score2 == 0 {
		return "", false
	}
	if score1 > score2 {
		return team1ID, true
	}
	return team2ID, true
}
